package anki

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AddMedia copies the given files into the staging directory under the next
// contiguous integer names and records them in the media manifest. Manifest
// values are the original base names, prefixed with an underscore unless
// already prefixed, which keeps Anki's template runtime from treating them
// as playable attachments.
func (p *Package) AddMedia(paths ...string) error {
	if p.stagingDir == "" {
		return fmt.Errorf("package is not initialized")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	manifest, err := p.readManifest()
	if err != nil {
		return err
	}

	next := 0
	for key := range manifest {
		n, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("media manifest has non-integer key %q", key)
		}
		if n > next {
			next = n
		}
	}

	for _, path := range paths {
		next++
		if err := copyFile(path, filepath.Join(p.stagingDir, strconv.Itoa(next))); err != nil {
			return err
		}
		name := filepath.Base(path)
		if !strings.HasPrefix(name, "_") {
			name = "_" + name
		}
		manifest[strconv.Itoa(next)] = name
	}

	return p.writeManifest(manifest)
}

// HasMedia reports whether a file of the given manifest name (underscore
// prefix included) has already been added.
func (p *Package) HasMedia(name string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	manifest, err := p.readManifest()
	if err != nil {
		return false, err
	}
	for _, existing := range manifest {
		if existing == name {
			return true, nil
		}
	}
	return false, nil
}

func (p *Package) readManifest() (map[string]string, error) {
	raw, err := os.ReadFile(p.mediaFile)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(media manifest) > %w", err)
	}
	manifest := map[string]string{}
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("media manifest is not valid JSON: %w", err)
	}
	return manifest, nil
}

// writeManifest replaces the manifest through a temp file and rename so a
// crash mid-write never leaves a half-updated manifest behind.
func (p *Package) writeManifest(manifest map[string]string) error {
	raw, err := json.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("json.Marshal(media manifest) > %w", err)
	}
	tmp := p.mediaFile + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("os.WriteFile(media manifest) > %w", err)
	}
	if err := os.Rename(tmp, p.mediaFile); err != nil {
		return fmt.Errorf("os.Rename(media manifest) > %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("os.Open(%s) > %w", src, err)
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("io.Copy(%s) > %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}
	return nil
}
