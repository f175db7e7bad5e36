package cluster

import (
	"github.com/grailbio/base/log"

	"github.com/grailbio/seqcluster/barcode"
)

// Result summarizes one clustering run's derived parameters, for callers
// that want to report them (the CLI prints them when -verbose is set).
type Result struct {
	Unique int // records remaining after dedup
	Height int // padded sequence length
	Median int // median unpadded sequence length
	Tau    int // edit-distance radius actually used (after AutoTau resolution)
	NTries int // number of trie partitions used
}

// Run executes one full clustering pass over b: sort-and-merge exact
// duplicates, pad to a common length, build the diagonal multi-trie
// search plan, run it with cfg's worker budget, and emit every matched
// pair to sink. b is left in its original (unpadded) sequence form when
// Run returns, so callers can inspect or re-cluster it afterward.
func Run(b *barcode.Bag, cfg Config, sink PairSink) Result {
	threads := cfg.threads()

	unique := barcode.SortAndMerge(b, threads)
	if cfg.Verbose {
		log.Printf("seqcluster: %d unique sequences after merging duplicates", unique)
	}

	height, median := b.Pad()
	defer b.UnpadAll()

	tau := cfg.Tau
	if tau == AutoTau {
		tau = AutoTauFor(median)
		if cfg.Verbose {
			log.Printf("seqcluster: auto tau set to %d (median length %d)", tau, median)
		}
	}

	nTries, effectiveThreads := NumTries(threads, b.Len())
	if cfg.Verbose {
		log.Printf("seqcluster: running with %d thread(s), %d trie partition(s)", effectiveThreads, nTries)
	}

	plan := NewPlan(b.Records, height, median, tau, nTries)
	runCfg := cfg
	runCfg.Threads = effectiveThreads
	runCfg.Tau = tau
	plan.Run(runCfg, sink)

	return Result{
		Unique: unique,
		Height: height,
		Median: median,
		Tau:    tau,
		NTries: nTries,
	}
}
