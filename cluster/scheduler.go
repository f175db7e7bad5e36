package cluster

import (
	"sync"

	"github.com/grailbio/base/log"

	"github.com/grailbio/seqcluster/barcode"
	"github.com/grailbio/seqcluster/trie"
)

// PairSink receives one matched pair at a time. Emit may be called
// concurrently from multiple worker goroutines; implementations must
// synchronize internally if they are not otherwise safe for concurrent
// use (TSVSink does this with a mutex, following the teacher's
// pamwriter.go pattern of a single mutex guarding a buffered writer).
type PairSink interface {
	Emit(query, match *barcode.Record, dist int)
}

// Run drains every job in the plan, fanning out across up to cfg.threads()
// goroutines. It blocks until every partition's job list is exhausted.
//
// The scheduling loop is a direct translation of starcode.c's run_plan: it
// cycles through the partitions in turn, and for each one that is free
// and has a job left, dispatches that job on a new goroutine while a
// worker slot is available. A busy partition is skipped on that pass; the
// loop waits on a condition variable only while every worker slot is
// taken. Each partition serializes its
// own jobs (so a partition's build job, which must run first, always
// completes before any of that partition's query jobs start), while
// different partitions run in full parallel, mirroring the teacher's
// mutex+cond coordination in encoding/pam/pamwriter.go.
func (p *Plan) Run(cfg Config, sink PairSink) {
	threads := cfg.threads()
	hitCap := cfg.hitCapacity()

	var mu sync.Mutex
	cond := sync.NewCond(&mu)
	active := 0
	triesDone := 0

	idx := -1
	for triesDone < len(p.tries) {
		idx = (idx + 1) % len(p.tries)
		mt := p.tries[idx]

		mu.Lock()
		if !mt.busy && !mt.done && active < threads {
			if mt.currentJob == len(mt.jobs) {
				mt.done = true
				triesDone++
			} else {
				j := mt.jobs[mt.currentJob]
				mt.currentJob++
				mt.busy = true
				active++

				go func(mt *mtTrie, j job) {
					runJob(p, mt, j, cfg.Tau, hitCap, sink)

					mu.Lock()
					active--
					mt.busy = false
					cond.Broadcast()
					mu.Unlock()
				}(mt, j)
			}
		}

		for active == threads {
			cond.Wait()
		}
		mu.Unlock()
	}
}

// runJob executes one job: optionally building the partition's trie and
// lookup table as it goes, and (unless the k-mer prefilter rules it out)
// searching for every query in [j.start, j.end], emitting pairs at every
// distance from 1 to tau. Distance 0 is never emitted: the bag has
// already been deduplicated, so it can only arise from a sequence
// matching itself, which the reserve/commit split on the trie makes
// impossible.
func runJob(p *Plan, mt *mtTrie, j job, tau, hitCap int, sink PairSink) {
	tower := trie.NewHitTower(tau, hitCap)

	for i := j.start; i <= j.end; i++ {
		query := p.seqs[i]
		canMatch := mt.lut.Probe(query.Seq)

		var slot *trie.Node
		if j.build {
			mt.lut.Insert(query.Seq)
			slot = mt.trie.ReserveSlot(query.Seq)
		}

		if canMatch {
			tower.Reset()
			mt.trie.Search(query.Seq, tau, tower)

			for dist := 0; dist <= tau; dist++ {
				if tower.Overflowed(dist) {
					log.Printf("seqcluster: search for %s incomplete: more than %d hits at distance %d", query.Label(), hitCap, dist)
					break
				}
			}
			for dist := 1; dist <= tau; dist++ {
				for _, match := range tower.Hits(dist) {
					sink.Emit(query, match, dist)
				}
			}
		}

		if j.build {
			trie.Commit(slot, query)
		}
	}
}
