package seqbag

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// GzipWriter wraps w so every byte written to it is gzip-compressed,
// using klauspost/compress/gzip as a drop-in compress/gzip replacement
// exactly as the teacher does for its own writers (encoding/bam/
// gindex.go, encoding/converter/convert.go use the same package for
// reading; NewWriter is the same API, used here on the output side).
// Close must be called to flush the gzip trailer.
func GzipWriter(w io.Writer) io.WriteCloser {
	return gzip.NewWriter(w)
}
