package cluster

import (
	"github.com/grailbio/seqcluster/barcode"
	"github.com/grailbio/seqcluster/kmerlut"
	"github.com/grailbio/seqcluster/trie"
)

// job is one (block, trie) query assignment, equivalent to starcode.c's
// mtjob_t without the pthread bookkeeping, which the scheduler owns
// instead.
type job struct {
	start, end int  // inclusive range into plan.seqs
	build      bool // true iff this job also builds the trie/lut
}

// mtTrie is one partition's private trie and lookup table, plus the
// sequential job list the scheduler drains one at a time, mirroring
// starcode.c's mttrie_t.
type mtTrie struct {
	trie *trie.Trie
	lut  *kmerlut.LUT
	jobs []job

	// Mutated only by the scheduler, under its mutex.
	busy       bool
	done       bool
	currentJob int
}

// Plan is a fully built multi-trie search schedule over a sorted, padded,
// deduplicated bag of sequences. It is built once by NewPlan and run once
// by Run: the run fills the tries and consumes every job list, so a Plan
// cannot be run a second time.
type Plan struct {
	seqs   []*barcode.Record
	tau    int
	height int
	tries  []*mtTrie
}

// NewPlan builds the diagonal schedule described in starcode.c's plan_mt:
// nTries partitions of seqs, each with its own trie and lookup table, and
// a job list per partition such that every pair of partitions is compared
// exactly once and each partition's own trie is built from exactly one of
// its jobs.
//
// nTries must be odd (callers derive it via NumTries, which guarantees
// this). height is the common padded sequence length, median the median
// unpadded length used to size the k-mer lookup tables.
func NewPlan(seqs []*barcode.Record, height, median, tau, nTries int) *Plan {
	n := len(seqs)
	q, r := n/nTries, n%nTries
	bounds := make([]int, nTries+1)
	for i := range bounds {
		m := i
		if m > r {
			m = r
		}
		bounds[i] = q*i + m
	}

	tries := make([]*mtTrie, nTries)
	njobsPerTrie := (nTries + 1) / 2
	for i := 0; i < nTries; i++ {
		nnodes := trie.CountNodes(seqs, bounds[i], bounds[i+1])
		mt := &mtTrie{
			trie: trie.NewTrie(height, nnodes),
			lut:  kmerlut.New(height, median, tau),
			jobs: make([]job, njobsPerTrie),
		}
		for j := 0; j < njobsPerTrie; j++ {
			idx := (i + j) % nTries
			mt.jobs[j] = job{
				start: bounds[idx],
				end:   bounds[idx+1] - 1,
				build: j == 0,
			}
		}
		tries[i] = mt
	}

	return &Plan{seqs: seqs, tau: tau, height: height, tries: tries}
}

// NumTries computes the diagonal schedule's partition count for a worker
// budget of threads, matching starcode.c's "3*thrmax + (thrmax even)"
// formula: the schedule's assumption that the partition count is odd only
// holds if threads contributes an odd multiple, so an even thread count
// gets bumped by one trie. If there are fewer sequences than that many
// partitions, a single partition (and a single thread) is used instead,
// since splitting further would create empty, pointless jobs.
func NumTries(threads, nSeqs int) (nTries, effectiveThreads int) {
	n := 3*threads + b2i(threads%2 == 0)
	if nSeqs < n {
		return 1, 1
	}
	return n, threads
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
