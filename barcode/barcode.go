// Package barcode holds the data model shared by the clustering core: the
// deduplicated, padded multiset of DNA sequences that the trie index and
// scheduler operate on.
package barcode

// Pad is the padding byte used to left-pad sequences to a common length.
const Pad = ' '

// Record is one unique input sequence after deduplication. Seq is the
// sequence bytes; after Pad runs, every Record in a Bag shares the same
// length. Ref is an opaque slot for callers; no package in this module
// reads or writes it (the trie keeps its own pointer to the Record in the
// terminal node).
type Record struct {
	Seq   []byte
	Count int
	Info  string // optional opaque label, carried through verbatim.
	Ref   interface{}
}

// Label returns the string used when emitting this record in a pair: Info
// if present, else the sequence with padding stripped.
func (r *Record) Label() string {
	if r.Info != "" {
		return r.Info
	}
	return string(Unpad(r.Seq))
}

// Unpad strips leading Pad bytes from seq.
func Unpad(seq []byte) []byte {
	i := 0
	for i < len(seq) && seq[i] == Pad {
		i++
	}
	return seq[i:]
}

// Bag is an ordered collection of Records, owned by the caller for its
// entire lifecycle: built by a reader, mutated in place by SortAndMerge and
// Pad, and handed to the clustering engine.
type Bag struct {
	Records []*Record
}

// NewBag creates an empty bag.
func NewBag() *Bag {
	return &Bag{}
}

// Add appends a new record with the given sequence, count and info.
func (b *Bag) Add(seq []byte, count int, info string) {
	cp := make([]byte, len(seq))
	copy(cp, seq)
	b.Records = append(b.Records, &Record{Seq: cp, Count: count, Info: info})
}

// Len returns the number of records currently in the bag.
func (b *Bag) Len() int { return len(b.Records) }

// TotalCount sums the Count field across all records, used to check the
// "sum of counts is preserved by sort/merge" invariant in tests.
func (b *Bag) TotalCount() int {
	total := 0
	for _, r := range b.Records {
		total += r.Count
	}
	return total
}
