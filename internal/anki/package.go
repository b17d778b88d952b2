package anki

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/jmoiron/sqlx"
)

const (
	// CollectionFileName is the database file name Anki expects inside the archive.
	CollectionFileName = "collection.anki2"
	// MediaFileName is the manifest file name Anki expects inside the archive.
	MediaFileName = "media"
)

// Package writes one .apkg archive. All entities are created during a
// single generation run; the staging directory and the database file are
// consumed into the archive by Finalize and discarded.
//
// The registry and writer methods serialize their col-row mutations through
// an internal mutex, so callers may parallelize lookups and downloads while
// funnelling all writes through one Package.
type Package struct {
	outputPath     string
	stagingDir     string
	collectionFile string
	mediaFile      string

	db *sqlx.DB

	mu         sync.Mutex
	models     map[int64]Model
	noteModels map[int64]int64
}

// NewPackage prepares a writer that will produce outputPath using
// stagingDir for intermediate files. Nothing touches the disk until Init.
func NewPackage(outputPath, stagingDir string) *Package {
	return &Package{
		outputPath:     outputPath,
		stagingDir:     stagingDir,
		collectionFile: filepath.Join(stagingDir, CollectionFileName),
		mediaFile:      filepath.Join(stagingDir, MediaFileName),
		models:         map[int64]Model{},
		noteModels:     map[int64]int64{},
	}
}

// Init creates the staging directory, an empty media manifest and the
// collection database with its fixed schema and singleton col row. It must
// be called before any registry, writer or media operation.
func (p *Package) Init(ctx context.Context) error {
	if err := os.MkdirAll(p.stagingDir, 0755); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	if err := p.writeManifest(map[string]string{}); err != nil {
		return err
	}

	db, err := openCollection(p.collectionFile)
	if err != nil {
		return err
	}
	p.db = db

	if err := p.bootstrapCollection(ctx); err != nil {
		_ = p.db.Close()
		p.db = nil
		return err
	}
	return nil
}

// Close releases the database connection. Finalize calls it implicitly.
func (p *Package) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

// Discard releases the database and deletes the staging directory with its
// half-written contents. It is the abort counterpart of Finalize; after a
// successful Finalize the staging directory is already gone and Discard
// does nothing.
func (p *Package) Discard() error {
	closeErr := p.Close()
	if err := os.RemoveAll(p.stagingDir); err != nil {
		return fmt.Errorf("remove staging directory: %w", err)
	}
	return closeErr
}

// Finalize closes the database, folds every staging file flat into the
// output archive and removes the staging directory. It returns the path of
// the written package.
func (p *Package) Finalize(ctx context.Context) (string, error) {
	if err := p.Close(); err != nil {
		return "", fmt.Errorf("close collection database: %w", err)
	}

	entries, err := os.ReadDir(p.stagingDir)
	if err != nil {
		return "", fmt.Errorf("os.ReadDir(%s) > %w", p.stagingDir, err)
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("staging directory %s is empty; was the package initialized?", p.stagingDir)
	}

	out, err := os.Create(p.outputPath)
	if err != nil {
		return "", fmt.Errorf("os.Create(%s) > %w", p.outputPath, err)
	}

	// Anki requires a flat file list: base names only, no directories.
	zw := zip.NewWriter(out)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			_ = zw.Close()
			_ = out.Close()
			return "", err
		}
		if entry.IsDir() {
			continue
		}
		if err := addZipEntry(zw, filepath.Join(p.stagingDir, entry.Name()), entry.Name()); err != nil {
			_ = zw.Close()
			_ = out.Close()
			return "", err
		}
	}
	if err := zw.Close(); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("close archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", p.outputPath, err)
	}

	if err := os.RemoveAll(p.stagingDir); err != nil {
		return "", fmt.Errorf("remove staging directory: %w", err)
	}
	return p.outputPath, nil
}

func addZipEntry(zw *zip.Writer, path, name string) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = in.Close()
	}()

	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("add %s to archive: %w", name, err)
	}
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("write %s to archive: %w", name, err)
	}
	return nil
}
