package kmerlut

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProbeFindsInsertedSequence(t *testing.T) {
	lut := New(12, 12, 2)
	seq := []byte("ACGTACGTACGT")
	lut.Insert(seq)
	assert.True(t, lut.Probe(seq), "a sequence must probe positive against its own lookup table")
}

func TestProbeNoFalseNegativeWithinWindow(t *testing.T) {
	// Insert a sequence, then probe with a single-base substitution: a
	// k-mer slice that does not span the mutated base must still hit. The
	// mutation is at the very first base, which only the head slice covers.
	lut := New(16, 16, 1)
	original := []byte("AAAACCCCGGGGTTTT")
	lut.Insert(original)

	mutated := make([]byte, len(original))
	copy(mutated, original)
	mutated[0] = 'T' // mutate the very first base only.

	assert.True(t, lut.Probe(mutated), "mutating one base must not eliminate every shared k-mer")
}

func TestSeq2IDPacksMostSignificantBaseFirst(t *testing.T) {
	id, ok := seq2id([]byte("AC"))
	assert.True(t, ok)
	assert.Equal(t, 1, id) // A=00, C=01 -> 0b0001

	id, ok = seq2id([]byte("TT"))
	assert.True(t, ok)
	assert.Equal(t, 0b1111, id)
}

func TestSeq2IDRejectsUnknownBase(t *testing.T) {
	_, ok := seq2id([]byte("ACN"))
	assert.False(t, ok)
}

func TestSeq2IDTreatsPadAsA(t *testing.T) {
	withPad, ok := seq2id([]byte(" C"))
	assert.True(t, ok)
	withA, _ := seq2id([]byte("AC"))
	assert.Equal(t, withA, withPad)
}

func TestNewSizesKmersFromMedianNotHeight(t *testing.T) {
	// height is much larger than median, as happens when one long outlier
	// sequence pads the whole bag. The k-mer lengths must come from
	// median (8), not height (20): kmers=2, k=8/2=4, rem=1-8%2=1, so
	// klen=[3,4]. Sizing from height instead would give klen=[9,10].
	lut := New(20, 8, 1)
	assert.Equal(t, []int{3, 4}, lut.klen)
	assert.Equal(t, 20, lut.seqLen, "the offset Insert/Probe walk back from must still be height")
}

func TestProbeEmptyLUTNeverMatches(t *testing.T) {
	lut := New(12, 12, 2)
	assert.False(t, lut.Probe([]byte("ACGTACGTACGT")))
}
