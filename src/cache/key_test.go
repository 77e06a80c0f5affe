package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"www.github.com/Wanderer0074348/SheetGrader/src/models"
)

func TestComputeKey_Deterministic(t *testing.T) {
	doc := []byte("%PDF-1.4 fake answer sheet")

	k1 := ComputeKey(doc, models.ModeStandard, "Q1: photosynthesis (10 marks)")
	k2 := ComputeKey(doc, models.ModeStandard, "Q1: photosynthesis (10 marks)")

	assert.Equal(t, k1, k2)
	assert.Len(t, string(k1), 64) // hex sha256
}

func TestComputeKey_DocumentSensitive(t *testing.T) {
	k1 := ComputeKey([]byte("document one"), models.ModeStandard, "")
	k2 := ComputeKey([]byte("document two"), models.ModeStandard, "")

	assert.NotEqual(t, k1, k2)
}

func TestComputeKey_SingleByteFlip(t *testing.T) {
	doc := []byte("%PDF-1.4 scanned pages")
	flipped := make([]byte, len(doc))
	copy(flipped, doc)
	flipped[len(flipped)-1] ^= 0x01

	assert.NotEqual(t,
		ComputeKey(doc, models.ModeStrict, "scheme"),
		ComputeKey(flipped, models.ModeStrict, "scheme"))
}

func TestComputeKey_ModeSensitive(t *testing.T) {
	doc := []byte("same document")

	k1 := ComputeKey(doc, models.ModeStandard, "same criteria")
	k2 := ComputeKey(doc, models.ModeStrict, "same criteria")
	k3 := ComputeKey(doc, models.ModeRange, "same criteria")

	assert.NotEqual(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.NotEqual(t, k2, k3)
}

func TestComputeKey_CriteriaSensitive(t *testing.T) {
	doc := []byte("same document")

	k1 := ComputeKey(doc, models.ModeStandard, "")
	k2 := ComputeKey(doc, models.ModeStandard, "Part A: Q1-10 (3 marks each)")

	assert.NotEqual(t, k1, k2)
}

// A byte must not be able to migrate between fields: a document that happens
// to end with the mode name is not the same request as the shorter document
// with that mode.
func TestComputeKey_FieldBoundariesFramed(t *testing.T) {
	k1 := ComputeKey([]byte("docstrict"), models.ModeStandard, "")
	k2 := ComputeKey([]byte("doc"), models.ModeStrict, "")

	assert.NotEqual(t, k1, k2)

	k3 := ComputeKey([]byte("doc"), models.ModeStandard, "x")
	k4 := ComputeKey([]byte("docx"), models.ModeStandard, "")

	assert.NotEqual(t, k3, k4)
}

func TestComputeKey_EmptyInputs(t *testing.T) {
	// Total function: always produces a well-formed key.
	k := ComputeKey(nil, "", "")
	assert.Len(t, string(k), 64)
}
