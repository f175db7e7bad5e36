package cluster

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/grailbio/seqcluster/barcode"
)

// TSVSink is a PairSink that writes one tab-separated "query\tmatch\tdist"
// line per pair to a buffered writer, guarded by a mutex so many worker
// goroutines can call Emit concurrently, following the mutex-guarded
// buffer pattern the teacher uses around its asynchronous flush buffers
// in encoding/pam/pamwriter.go.
type TSVSink struct {
	mu  sync.Mutex
	w   *bufio.Writer
	err error
}

// NewTSVSink wraps w in a buffered, mutex-guarded sink.
func NewTSVSink(w io.Writer) *TSVSink {
	return &TSVSink{w: bufio.NewWriterSize(w, 1<<20)}
}

// Emit writes one pair. Errors are latched (the first one wins) and
// surfaced by Flush, following the teacher's single-error-wins convention
// (grailbio/base/errors.Once).
func (s *TSVSink) Emit(query, match *barcode.Record, dist int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, "%s\t%s\t%d\n", query.Label(), match.Label(), dist)
}

// Flush flushes the underlying writer and returns the first error Emit or
// Flush itself encountered.
func (s *TSVSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	return s.w.Flush()
}
