package seqbag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/seqcluster/barcode"
)

func TestReadRawDefaultsCountToOne(t *testing.T) {
	b := barcode.NewBag()
	err := ReadRaw(strings.NewReader("ACGT\nTTTT\t3\n"), b)
	assert.NoError(t, err)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, "ACGT", string(b.Records[0].Seq))
	assert.Equal(t, 1, b.Records[0].Count)
	assert.Equal(t, "TTTT", string(b.Records[1].Seq))
	assert.Equal(t, 3, b.Records[1].Count)
}

func TestReadRawSkipsBlankLines(t *testing.T) {
	b := barcode.NewBag()
	err := ReadRaw(strings.NewReader("ACGT\n\nTTTT\n"), b)
	assert.NoError(t, err)
	assert.Equal(t, 2, b.Len())
}

func TestReadRawRejectsInvalidBase(t *testing.T) {
	b := barcode.NewBag()
	err := ReadRaw(strings.NewReader("ACGN\n"), b)
	assert.Error(t, err)
}

func TestReadFASTAKeepsHeaderAsInfo(t *testing.T) {
	b := barcode.NewBag()
	err := ReadFASTA(strings.NewReader(">seq1\nACGT\n>seq2\nTTTT\n"), b)
	assert.NoError(t, err)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, "seq1", b.Records[0].Info)
	assert.Equal(t, "ACGT", string(b.Records[0].Seq))
}

func TestReadFASTARejectsSequenceWithoutHeader(t *testing.T) {
	b := barcode.NewBag()
	err := ReadFASTA(strings.NewReader("ACGT\n"), b)
	assert.Error(t, err)
}

func TestReadFASTQKeepsOnlySequenceLine(t *testing.T) {
	b := barcode.NewBag()
	err := ReadFASTQ(strings.NewReader("@r1\nACGT\n+\nIIII\n@r2\nTTTT\n+\nIIII\n"), b)
	assert.NoError(t, err)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, "ACGT", string(b.Records[0].Seq))
	assert.Equal(t, "TTTT", string(b.Records[1].Seq))
}

func TestReadFASTQRejectsMalformedHeader(t *testing.T) {
	b := barcode.NewBag()
	err := ReadFASTQ(strings.NewReader("r1\nACGT\n+\nIIII\n"), b)
	assert.Error(t, err)
}

func TestReadPairedFASTQJoinsMatesWithSeparator(t *testing.T) {
	r1 := "@r1\nAAAA\n+\nIIII\n"
	r2 := "@r1\nTTTT\n+\nIIII\n"
	b := barcode.NewBag()
	err := ReadPairedFASTQ(strings.NewReader(r1), strings.NewReader(r2), b)
	assert.NoError(t, err)
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, "AAAA"+pairSep+"TTTT", string(b.Records[0].Seq))
	assert.Equal(t, "AAAA/TTTT", b.Records[0].Info)
}

func TestReadPairedFASTQRejectsUnequalRecordCounts(t *testing.T) {
	r1 := "@r1\nAAAA\n+\nIIII\n@r2\nCCCC\n+\nIIII\n"
	r2 := "@r1\nTTTT\n+\nIIII\n"
	b := barcode.NewBag()
	err := ReadPairedFASTQ(strings.NewReader(r1), strings.NewReader(r2), b)
	assert.Error(t, err)
}

func TestReadDispatchesOnFormat(t *testing.T) {
	b := barcode.NewBag()
	err := Read(Raw, strings.NewReader("ACGT\n"), nil, b)
	assert.NoError(t, err)
	assert.Equal(t, 1, b.Len())
}

func TestReadUnknownFormatErrors(t *testing.T) {
	b := barcode.NewBag()
	err := Read(Unknown, strings.NewReader(""), nil, b)
	assert.Error(t, err)
}
