// Package trie implements the per-partition approximate-match index: a
// fixed-depth trie over equal-length, padded DNA sequences (plus the
// paired-end separator symbol), with a
// bounded Levenshtein-distance search grounded on the teacher's row-major
// Levenshtein DP (util.Levenshtein), generalized to trie descent so that
// the DP rows for a shared prefix are computed once no matter how many
// sequences share it.
//
// Every indexed sequence and every query has been left-padded to the same
// height, but the distance Search reports must equal the edit distance
// between the original, unpadded sequences. The DP treats the leading
// padding as a cost-free gap: inserting or deleting a padding byte costs
// nothing, while substituting a padding byte for a real base costs the
// same as any other mismatch (see nextRow in search.go). This makes the
// padded DP's result identical to running the same DP on the unpadded
// strings directly, since an optimal alignment never substitutes a gap
// for a base when deleting or inserting it through is free and no more
// expensive.
//
// spec.md treats the trie search primitive as a black box; this package is
// the concrete implementation a runnable repository needs, per
// SPEC_FULL.md §4.2.
package trie

import (
	"fmt"

	"github.com/grailbio/seqcluster/barcode"
)

// pairSep is the separator byte starcode.c's read_PE_fastq splices between
// two mates of a paired-end read before indexing the pair as one sequence.
// A run of tau+1 of them (SPEC_FULL.md §4.6) guarantees no edit path of
// radius tau can align a base in one mate against a base in the other, so
// the trie needs a fifth symbol for it alongside A/C/G/T.
const pairSep = '-'

// baseCode encodes A/C/G/T (case-insensitive), the paired-end separator
// and the padding byte as a code in 0..5. Padding gets its own code,
// distinct from A: unlike the k-mer lookup table (kmerlut.seq2id), which
// treats padding as an A purely to size its bitmap, the trie's distance
// computation needs to tell the two apart so it can make padding
// cost-free to insert or delete (see nextRow) without also making it
// free to substitute for a real base.
func baseCode(c byte) (int, bool) {
	switch c {
	case 'A', 'a':
		return 0, true
	case 'C', 'c':
		return 1, true
	case 'G', 'g':
		return 2, true
	case 'T', 't':
		return 3, true
	case pairSep:
		return 4, true
	case barcode.Pad:
		return 5, true
	default:
		return 0, false
	}
}

// alphabet lists the byte each baseCode index represents, used to drive a
// DP row update from a code without a reverse switch.
var alphabet = [6]byte{'A', 'C', 'G', 'T', pairSep, barcode.Pad}

// NumCodes is the number of distinct symbols the trie indexes on.
const NumCodes = 6

// Node is one trie node. Child pointers are nil until inserted. Terminal is
// nil until Commit assigns it, which is how the trie's "a terminal is
// populated only after the search for that sequence has completed"
// invariant (spec.md §3) is enforced: the caller controls exactly when
// Commit runs.
type Node struct {
	children [NumCodes]*Node
	terminal *barcode.Record
}

// Trie is a per-partition index over sequences of a fixed length, built
// into a preallocated node arena so that ReserveSlot never allocates on the
// hot path, matching spec.md §3's "node arena is sized by an exact upfront
// count ... so insertions never reallocate" invariant.
type Trie struct {
	Height int
	root   *Node
	arena  []Node
	cursor int
}

// NewTrie allocates a trie for sequences of the given height, with an
// arena large enough for nodeCount additional nodes (the exact count the
// scheduler computes via CountNodes).
func NewTrie(height, nodeCount int) *Trie {
	return &Trie{
		Height: height,
		root:   &Node{},
		arena:  make([]Node, nodeCount),
	}
}

func (t *Trie) allocNode() *Node {
	if t.cursor >= len(t.arena) {
		// The arena was undersized relative to CountNodes' estimate: this
		// is an internal invariant breach, not a runtime condition a
		// caller can recover from (spec.md §7: allocation failure is
		// fatal).
		panic(fmt.Sprintf("trie: node arena exhausted (capacity %d)", len(t.arena)))
	}
	n := &t.arena[t.cursor]
	t.cursor++
	return n
}

// ReserveSlot walks (and extends, as needed) the path for seq and returns
// its terminal node with Terminal left nil. It is a programming error to
// call ReserveSlot twice for the same seq; the second call's node already
// has Terminal set by the time the first Commit runs, violating spec.md
// §3's per-terminal invariant, so ReserveSlot panics if it finds the slot
// already committed.
func (t *Trie) ReserveSlot(seq []byte) *Node {
	if len(seq) != t.Height {
		panic(fmt.Sprintf("trie: sequence length %d, want %d", len(seq), t.Height))
	}
	n := t.root
	for _, c := range seq {
		code, ok := baseCode(c)
		if !ok {
			panic(fmt.Sprintf("trie: invalid base %q", c))
		}
		child := n.children[code]
		if child == nil {
			child = t.allocNode()
			n.children[code] = child
		}
		n = child
	}
	if n.terminal != nil {
		panic("trie: slot already committed")
	}
	return n
}

// Commit assigns rec to node's terminal slot, making it visible to future
// Search calls. It must be called exactly once, after the search for rec
// has completed, so rec can never match itself.
func Commit(node *Node, rec *barcode.Record) {
	node.terminal = rec
}

// CountNodes computes the exact number of nodes a trie needs to hold the
// sorted, equal-length sequences seqs[start:end]: the first sequence's
// full root-to-leaf path (height nodes, since the root itself is
// preallocated outside the arena), plus, for every subsequent sequence,
// one new node for every byte past its common prefix with its
// predecessor. This is starcode.c's count_trie_nodes sum-of-
// (height - common_prefix_length) with the base case adjusted by one:
// starcode.c's node_t inlines a leaf's data pointer into its parent
// rather than allocating a distinct node for it, so its formula starts
// at height-1; this package always allocates one node per path position,
// including the leaf, so it starts at height.
func CountNodes(seqs []*barcode.Record, start, end int) int {
	if end <= start {
		return 0
	}
	height := len(seqs[start].Seq)
	count := height
	for i := start + 1; i < end; i++ {
		a, b := seqs[i-1].Seq, seqs[i].Seq
		prefix := 0
		for prefix < len(a) && a[prefix] == b[prefix] {
			prefix++
		}
		count += height - prefix
	}
	return count
}
