package barcode

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortAndMergeDedupesAndSumsCounts(t *testing.T) {
	b := NewBag()
	b.Add([]byte("AAAA"), 2, "")
	b.Add([]byte("CCCC"), 1, "")
	b.Add([]byte("AAAA"), 5, "")
	b.Add([]byte("GG"), 1, "")

	totalBefore := b.TotalCount()
	unique := SortAndMerge(b, 4)

	assert.Equal(t, 3, unique)
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, totalBefore, b.TotalCount(), "SortAndMerge must preserve the sum of counts")

	// Shorter sequences sort first; among equal lengths, lexicographic order.
	assert.Equal(t, "GG", string(b.Records[0].Seq))
	assert.Equal(t, "AAAA", string(b.Records[1].Seq))
	assert.Equal(t, "CCCC", string(b.Records[2].Seq))

	for _, r := range b.Records {
		if string(r.Seq) == "AAAA" {
			assert.Equal(t, 7, r.Count)
		}
	}
}

func TestSortAndMergeNoDuplicates(t *testing.T) {
	b := NewBag()
	seqs := []string{"TTTT", "AAAA", "CCCC", "GGGG"}
	for _, s := range seqs {
		b.Add([]byte(s), 1, "")
	}
	unique := SortAndMerge(b, 1)
	assert.Equal(t, 4, unique)
	for i := 1; i < b.Len(); i++ {
		assert.True(t, cmp(b.Records[i-1], b.Records[i]) < 0, "records must be strictly increasing after dedup")
	}
}

func TestSortAndMergeIndependentOfWorkerBudget(t *testing.T) {
	var seqs []string
	for i := 0; i < 37; i++ {
		seqs = append(seqs, fmt.Sprintf("ACGT%02d", i%11))
	}

	budgets := []int{1, 2, 3, 8, 64}
	var reference []string
	for _, budget := range budgets {
		b := NewBag()
		for _, s := range seqs {
			b.Add([]byte(s), 1, "")
		}
		SortAndMerge(b, budget)
		var got []string
		for _, r := range b.Records {
			got = append(got, fmt.Sprintf("%s:%d", r.Seq, r.Count))
		}
		if reference == nil {
			reference = got
		} else {
			assert.Equal(t, reference, got, "result must not depend on the worker budget")
		}
	}
}

func TestSortAndMergeSmallInputs(t *testing.T) {
	b0 := NewBag()
	assert.Equal(t, 0, SortAndMerge(b0, 4))

	b1 := NewBag()
	b1.Add([]byte("A"), 1, "")
	assert.Equal(t, 1, SortAndMerge(b1, 4))
}
