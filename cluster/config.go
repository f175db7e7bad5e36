// Package cluster wires the barcode, trie and kmerlut packages into the
// diagonal multi-trie search engine: it builds a Plan from a deduplicated,
// padded Bag and runs it with a bounded worker pool, grounded on
// starcode.c's plan_mt/run_plan/do_query (SPEC_FULL.md §4.4, §5).
package cluster

// AutoTau is the sentinel Config.Tau value that asks Run to derive tau
// from the bag's median sequence length, matching starcode.c's "tau < 0
// means auto" convention.
const AutoTau = -1

// Config controls one clustering run.
type Config struct {
	// Tau is the maximum edit distance two sequences may differ by and
	// still be reported as a pair. AutoTau derives it from the median
	// unpadded sequence length.
	Tau int

	// Threads bounds the number of jobs running concurrently. Threads<=0
	// is treated as 1.
	Threads int

	// Verbose enables progress logging.
	Verbose bool

	// HitCapacity bounds how many hits a single search call may record at
	// a given distance before it starts dropping them (and reports an
	// overflow warning instead of failing outright). Zero selects a
	// generous default.
	HitCapacity int
}

// AutoTauFor derives tau from the median unpadded sequence length, exactly
// as starcode() does when tau is not supplied on the command line: 8 for
// a median over 160, else 2 plus a thirtieth of the median.
func AutoTauFor(median int) int {
	if median > 160 {
		return 8
	}
	return 2 + median/30
}

func (c Config) threads() int {
	if c.Threads <= 0 {
		return 1
	}
	return c.Threads
}

func (c Config) hitCapacity() int {
	if c.HitCapacity <= 0 {
		return 1 << 16
	}
	return c.HitCapacity
}
