package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/seqcluster/barcode"
)

func buildTrie(t *testing.T, seqs []string, tau int) (*Trie, []*barcode.Record) {
	t.Helper()
	height := len(seqs[0])
	recs := make([]*barcode.Record, len(seqs))
	for i, s := range seqs {
		recs[i] = &barcode.Record{Seq: []byte(s), Count: 1}
	}
	nnodes := CountNodes(recs, 0, len(recs))
	tr := NewTrie(height, nnodes)
	for _, r := range recs {
		slot := tr.ReserveSlot(r.Seq)
		Commit(slot, r)
	}
	return tr, recs
}

func TestSearchFindsExactNeighbors(t *testing.T) {
	seqs := []string{"AAAA", "AAAT", "CCCC", "GGGG"}
	tr, recs := buildTrie(t, seqs, 1)

	tower := NewHitTower(1, 16)
	tr.Search([]byte("AAAA"), 1, tower)

	hits := tower.Hits(1)
	assert.Len(t, hits, 1)
	assert.Equal(t, recs[1], hits[0])
	assert.Empty(t, tower.Hits(0), "a committed record can never match itself at distance 0")
}

func TestSearchRespectsTau(t *testing.T) {
	tr, _ := buildTrie(t, []string{"AAAA", "AATT", "CCCC"}, 2)

	tower := NewHitTower(1, 16)
	tr.Search([]byte("AAAA"), 1, tower)
	assert.Empty(t, tower.Hits(1), "AATT is distance 2 from AAAA, beyond tau=1")

	tower2 := NewHitTower(2, 16)
	tr.Search([]byte("AAAA"), 2, tower2)
	assert.Len(t, tower2.Hits(2), 1)
}

func TestCountNodesMatchesManualInsertion(t *testing.T) {
	recs := []*barcode.Record{
		{Seq: []byte("AAAA")},
		{Seq: []byte("AAAT")},
		{Seq: []byte("AATT")},
	}
	n := CountNodes(recs, 0, len(recs))
	tr := NewTrie(4, n)
	for _, r := range recs {
		slot := tr.ReserveSlot(r.Seq)
		Commit(slot, r)
	}
	assert.Equal(t, n, tr.cursor, "CountNodes must size the arena exactly, with no slack")
}

func TestReserveSlotTwiceForSameSequencePanics(t *testing.T) {
	tr := NewTrie(4, CountNodes([]*barcode.Record{{Seq: []byte("AAAA")}}, 0, 1))
	slot := tr.ReserveSlot([]byte("AAAA"))
	Commit(slot, &barcode.Record{Seq: []byte("AAAA")})

	assert.Panics(t, func() {
		tr.ReserveSlot([]byte("AAAA"))
	})
}

func TestSearchSupportsPairedEndSeparator(t *testing.T) {
	// Two paired-end pseudo-sequences that differ only in the second mate.
	a := "AAAA---AAAA"
	b := "AAAA---AAAT"
	tr, recs := buildTrie(t, []string{a, b}, 1)

	tower := NewHitTower(1, 16)
	tr.Search([]byte(a), 1, tower)
	assert.Equal(t, []*barcode.Record{recs[1]}, tower.Hits(1))
}
