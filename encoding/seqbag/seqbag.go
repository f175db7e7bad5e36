// Package seqbag reads the input formats the clustering engine accepts
// into a barcode.Bag, grounded on starcode.c's read_file/read_rawseq/
// read_fasta/read_fastq/read_PE_fastq (SPEC_FULL.md §4.6), using the
// teacher's bufio.Scanner-based reader idiom from encoding/fastq/
// scanner.go.
package seqbag

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Format identifies an input's layout.
type Format int

const (
	// Unknown is the zero Format; Detect never returns it for a
	// non-empty stream.
	Unknown Format = iota
	Raw
	FASTA
	FASTQ
	PairedFASTQ
)

func (f Format) String() string {
	switch f {
	case Raw:
		return "raw"
	case FASTA:
		return "fasta"
	case FASTQ:
		return "fastq"
	case PairedFASTQ:
		return "paired-fastq"
	default:
		return "unknown"
	}
}

// MaxTau is the largest edit distance radius the engine supports, the
// same ceiling as AutoTauFor's output. The paired-end reader splices this
// many separator bytes between mates, which is enough to guarantee no
// edit path of any supported tau can align a base of one mate against a
// base of the other.
const MaxTau = 8

// PairSeparator is the byte seqbag splices MaxTau+1 times between the two
// mates of a paired-end read, matching starcode.c's read_PE_fastq. It
// must agree with the trie package's paired-end separator symbol.
const PairSeparator = '-'

// pairSep is the fixed separator run spliced between mates.
var pairSep = strings.Repeat(string(PairSeparator), MaxTau+1)

// Detect peeks at the first byte of r to guess its format, without
// consuming it, matching starcode.c's read_file: '>' means FASTA, '@'
// means FASTQ, anything else means Raw. It returns Unknown only for an
// empty stream.
func Detect(r *bufio.Reader) (Format, error) {
	b, err := r.Peek(1)
	if err == io.EOF {
		return Unknown, nil
	}
	if err != nil {
		return Unknown, err
	}
	switch b[0] {
	case '>':
		return FASTA, nil
	case '@':
		return FASTQ, nil
	default:
		return Raw, nil
	}
}

// validateDNA rejects any byte that is not an upper- or lower-case A, C,
// G or T, matching starcode.c's valid_DNA_char table.
func validateDNA(seq string) error {
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'A', 'C', 'G', 'T', 'a', 'c', 'g', 't':
		default:
			return fmt.Errorf("seqbag: invalid base %q in sequence %q", seq[i], seq)
		}
	}
	return nil
}

// splitCount splits a raw-format line into a sequence and an optional
// trailing tab-separated count, mirroring starcode.c's
// sscanf(line, "%s\t%d", ...): if the line has no parseable trailing
// integer field the whole line is the sequence and the count defaults to
// one.
func splitCount(line string) (seq string, count int) {
	if tab := strings.IndexByte(line, '\t'); tab >= 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(line[tab+1:])); err == nil {
			return line[:tab], n
		}
	}
	return line, 1
}
