package trie

import "github.com/grailbio/seqcluster/barcode"

// HitTower collects the records a Search call finds within a bounded edit
// distance, bucketed by exact distance 0..Tau, mirroring starcode.c's
// hit_t stack-of-stacks (one fixed-capacity stack per distance). Capacity
// is bounded so a pathological query (e.g. a long run of the same base)
// cannot make a single search call consume unbounded memory; once a
// bucket is full, further hits at that distance are dropped and the
// bucket is marked Overflowed, which callers should treat as a warning,
// not a fatal error (spec.md §4.4, §7).
type HitTower struct {
	buckets    [][]*barcode.Record
	overflowed []bool
	capacity   int
}

// NewHitTower allocates a tower with tau+1 buckets (distances 0..tau),
// each able to hold up to capacity records before overflowing.
func NewHitTower(tau, capacity int) *HitTower {
	return &HitTower{
		buckets:    make([][]*barcode.Record, tau+1),
		overflowed: make([]bool, tau+1),
		capacity:   capacity,
	}
}

// Reset empties every bucket so the tower can be reused for the next
// query without reallocating its backing arrays.
func (h *HitTower) Reset() {
	for i := range h.buckets {
		h.buckets[i] = h.buckets[i][:0]
		h.overflowed[i] = false
	}
}

// push records rec as a hit at the given exact distance. It returns false
// (and marks the bucket overflowed) once capacity is reached.
func (h *HitTower) push(dist int, rec *barcode.Record) bool {
	if dist < 0 || dist >= len(h.buckets) {
		return false
	}
	if len(h.buckets[dist]) >= h.capacity {
		h.overflowed[dist] = true
		return false
	}
	h.buckets[dist] = append(h.buckets[dist], rec)
	return true
}

// Hits returns the records found at exactly the given distance.
func (h *HitTower) Hits(dist int) []*barcode.Record {
	if dist < 0 || dist >= len(h.buckets) {
		return nil
	}
	return h.buckets[dist]
}

// Overflowed reports whether the bucket for dist dropped hits.
func (h *HitTower) Overflowed(dist int) bool {
	if dist < 0 || dist >= len(h.overflowed) {
		return false
	}
	return h.overflowed[dist]
}

// Tau returns the maximum distance this tower buckets.
func (h *HitTower) Tau() int { return len(h.buckets) - 1 }
