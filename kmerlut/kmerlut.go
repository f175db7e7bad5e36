// Package kmerlut implements the no-false-negative k-mer prefilter that
// lets a worker skip a trie search entirely when it is certain the search
// cannot find a match, grounded on starcode.c's lookup_t/new_lookup/
// lut_insert/lut_search/seq2id (SPEC_FULL.md §4.3).
package kmerlut

import "github.com/bits-and-blooms/bitset"

// maxK bounds the k-mer length used for a lookup table, matching
// starcode.c's MAX_K_FOR_LOOKUP: a k-mer of this length has 2^(2*maxK)
// possible ids, which keeps memory bounded even for very long, low-tau
// sequences. starcode.c's own definition of this constant lives in a
// header this pack does not carry; 12 is the value used by every released
// starcode build. New preallocates 2^(2*k-3) bits per bitmap and the
// bitset grows as higher ids are set, so the largest bitmap can reach
// 2^24 bits (2MiB).
const maxK = 12

// LUT is a bank of tau+1 k-mer bitmaps, one per k-mer slice, checked
// before a trie search to rule out sequences that provably cannot match.
// It is not a general-purpose k-mer index: Probe only ever returns whether
// some k-mer might be present, never which sequence contributed it.
type LUT struct {
	seqLen int
	klen   []int
	bitmap []*bitset.BitSet
}

// New builds an empty LUT for sequences padded to height, targeting a
// search radius of tau. It mirrors new_lookup(medianlen, height, tau): the
// k-mer lengths are sized from the bag's median unpadded length, not
// height, while height is only the fixed offset Insert and Probe walk
// k-mers back from. Sizing from the median (rather than the often much
// longer padded height) keeps k-mers close to the length they would have
// if every sequence were its own unpadded length, which is what makes the
// prefilter's no-false-negative guarantee hold in practice for a bag of
// mixed lengths.
func New(height, median, tau int) *LUT {
	kmers := tau + 1
	k := median / kmers
	rem := tau - median%kmers

	klen := make([]int, kmers)
	if k > maxK {
		for i := range klen {
			klen[i] = maxK
		}
	} else {
		for i := range klen {
			klen[i] = k
			if rem > 0 {
				klen[i]--
				rem--
			}
		}
	}

	bitmap := make([]*bitset.BitSet, kmers)
	for i, kl := range klen {
		bitmap[i] = bitset.New(uint(1) << uint(maxInt(0, 2*kl-3)))
	}

	return &LUT{seqLen: height, klen: klen, bitmap: bitmap}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Insert marks every one of seq's tau+1 k-mers present in the
// corresponding bitmap, matching lut_insert. seq must have length
// l.seqLen.
func (l *LUT) Insert(seq []byte) {
	offset := l.seqLen
	for i := len(l.klen) - 1; i >= 0; i-- {
		offset -= l.klen[i]
		id, ok := seq2id(seq[offset : offset+l.klen[i]])
		if ok {
			l.bitmap[i].Set(uint(id))
		}
	}
}

// Probe reports whether any of seq's k-mers, allowed to slide within a
// distance-dependent window to tolerate indels, is present in the LUT. A
// false result proves no trie search against this LUT's sequences can
// find seq within tau edits; a true result is only a hint, matching
// lut_search's contract exactly (no false negatives, occasional false
// positives).
func (l *LUT) Probe(seq []byte) bool {
	offset := l.seqLen
	kmers := len(l.klen)
	for i := kmers - 1; i >= 0; i-- {
		offset -= l.klen[i]
		window := kmers - 1 - i
		for j := -window; j <= window; j++ {
			start := offset + j
			if start < 0 || start+l.klen[i] > len(seq) {
				continue
			}
			id, ok := seq2id(seq[start : start+l.klen[i]])
			if !ok {
				continue
			}
			if l.bitmap[i].Test(uint(id)) {
				return true
			}
		}
	}
	return false
}

// seq2id packs a k-mer into a 2-bit-per-base integer, A=0 C=1 G=2 T=3,
// most-significant base first, with the padding byte treated as an A
// (starcode.c notes this only risks extra false positives, never a false
// negative). It returns ok=false if seq contains a base it cannot encode
// (e.g. an 'N').
func seq2id(seq []byte) (id int, ok bool) {
	for _, c := range seq {
		var code int
		switch c {
		case 'A', 'a', ' ':
			code = 0
		case 'C', 'c':
			code = 1
		case 'G', 'g':
			code = 2
		case 'T', 't':
			code = 3
		default:
			return 0, false
		}
		id = id<<2 | code
	}
	return id, true
}
