package barcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBagAddAndTotalCount(t *testing.T) {
	b := NewBag()
	b.Add([]byte("ACGT"), 3, "")
	b.Add([]byte("TTTT"), 1, "info")
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 4, b.TotalCount())
}

func TestAddCopiesSeq(t *testing.T) {
	b := NewBag()
	seq := []byte("ACGT")
	b.Add(seq, 1, "")
	seq[0] = 'T'
	assert.Equal(t, "ACGT", string(b.Records[0].Seq), "Add must copy the sequence, not alias the caller's slice")
}

func TestUnpad(t *testing.T) {
	assert.Equal(t, "ACGT", string(Unpad([]byte("  ACGT"))))
	assert.Equal(t, "ACGT", string(Unpad([]byte("ACGT"))))
	assert.Equal(t, "", string(Unpad([]byte("   "))))
}

func TestRecordLabel(t *testing.T) {
	r := &Record{Seq: []byte("  ACGT")}
	assert.Equal(t, "ACGT", r.Label())

	r2 := &Record{Seq: []byte("  ACGT"), Info: "read1/read2"}
	assert.Equal(t, "read1/read2", r2.Label())
}
