package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"io"

	"www.github.com/Wanderer0074348/SheetGrader/src/models"
)

// Key is the hex-encoded SHA-256 digest identifying one grading request:
// same document, mode and criteria always map to the same key.
type Key string

// ComputeKey derives the cache key from the full grading request. Each field
// is length-framed before hashing so a byte cannot migrate between fields
// (e.g. a document ending in "strict" vs. the strict mode itself).
func ComputeKey(document []byte, mode models.Mode, criteria string) Key {
	h := sha256.New()
	writeFramed(h, document)
	writeFramed(h, []byte(mode))
	writeFramed(h, []byte(criteria))
	return Key(hex.EncodeToString(h.Sum(nil)))
}

func writeFramed(h io.Writer, field []byte) {
	var size [8]byte
	binary.BigEndian.PutUint64(size[:], uint64(len(field)))
	h.Write(size[:])
	h.Write(field)
}
