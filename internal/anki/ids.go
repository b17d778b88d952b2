package anki

import (
	"crypto/rand"
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// newID returns a uniformly random positive 63-bit identifier. Decks, option
// groups, models, notes and cards all share this generator, so entities
// created within the same second cannot collide the way timestamp-derived
// ids do.
func newID() (int64, error) {
	var buf [8]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return 0, fmt.Errorf("read random bytes: %w", err)
		}
		id := int64(binary.BigEndian.Uint64(buf[:]) >> 1)
		if id != 0 {
			return id, nil
		}
	}
}

// newGUID returns a note sync identity: 16 random bytes, hex encoded.
func newGUID() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf[:]), nil
}

// FieldChecksum computes the duplicate-detection checksum of a note field:
// the first 8 hex digits of the field's SHA-1 digest, read as a hexadecimal
// integer. Anki uses it for duplicate lookups, not for integrity.
func FieldChecksum(text string) int64 {
	sum := sha1.Sum([]byte(text))
	return int64(binary.BigEndian.Uint32(sum[:4]))
}
