package seqbag

import (
	"bufio"
	"fmt"
	"io"

	"github.com/grailbio/seqcluster/barcode"
)

// ReadRaw reads one sequence per line, each optionally followed by a tab
// and an integer count (default 1 when absent), appending every record to
// b. It mirrors starcode.c's read_rawseq.
func ReadRaw(r io.Reader, b *barcode.Bag) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		seq, count := splitCount(line)
		if err := validateDNA(seq); err != nil {
			return err
		}
		b.Add([]byte(seq), count, "")
	}
	return sc.Err()
}

// ReadFASTA reads a two-line-per-record FASTA stream (header, sequence),
// ignoring header content beyond using it as an optional Info label. It
// mirrors starcode.c's read_fasta, which in fact ignores headers
// entirely; seqbag keeps them since Bag.Record.Info is otherwise unused
// for this format and they make useful pair output.
func ReadFASTA(r io.Reader, b *barcode.Bag) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	var header string
	haveHeader := false
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if line[0] == '>' {
			header = line[1:]
			haveHeader = true
			continue
		}
		if !haveHeader {
			return fmt.Errorf("seqbag: FASTA sequence line without preceding header")
		}
		if err := validateDNA(line); err != nil {
			return err
		}
		b.Add([]byte(line), 1, header)
		haveHeader = false
	}
	return sc.Err()
}

// ReadFASTQ reads a four-line-per-record FASTQ stream (header, sequence,
// separator, quality), keeping only the sequence, matching starcode.c's
// read_fastq.
func ReadFASTQ(r io.Reader, b *barcode.Bag) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := sc.Text()
		switch lineno % 4 {
		case 1:
			if len(line) == 0 || line[0] != '@' {
				return fmt.Errorf("seqbag: malformed FASTQ header %q", line)
			}
		case 2:
			if err := validateDNA(line); err != nil {
				return err
			}
			b.Add([]byte(line), 1, "")
		}
	}
	return sc.Err()
}

// ReadPairedFASTQ reads two FASTQ streams in lockstep, indexing each pair
// as a single sequence formed by mate1 + a run of dashes + mate2, so a
// single trie and a single search radius cover both mates at once without
// ever matching a base of one mate against a base of the other. It
// mirrors starcode.c's read_PE_fastq, whose Info field holds
// "mate1/mate2" instead of the original read headers.
func ReadPairedFASTQ(r1, r2 io.Reader, b *barcode.Bag) error {
	sc1 := bufio.NewScanner(r1)
	sc1.Buffer(make([]byte, 0, 64*1024), 1<<20)
	sc2 := bufio.NewScanner(r2)
	sc2.Buffer(make([]byte, 0, 64*1024), 1<<20)

	lineno := 0
	var mate1, mate2 string
	for sc1.Scan() {
		if !sc2.Scan() {
			return fmt.Errorf("seqbag: non conformable paired-end FASTQ files")
		}
		lineno++
		line1, line2 := sc1.Text(), sc2.Text()
		switch lineno % 4 {
		case 1:
			if len(line1) == 0 || line1[0] != '@' || len(line2) == 0 || line2[0] != '@' {
				return fmt.Errorf("seqbag: input is not a pair of FASTQ files")
			}
		case 2:
			if err := validateDNA(line1); err != nil {
				return err
			}
			if err := validateDNA(line2); err != nil {
				return err
			}
			mate1, mate2 = line1, line2
		case 0:
			info := mate1 + "/" + mate2
			seq := mate1 + pairSep + mate2
			b.Add([]byte(seq), 1, info)
		}
	}
	if sc2.Scan() {
		return fmt.Errorf("seqbag: non conformable paired-end FASTQ files")
	}
	if err := sc1.Err(); err != nil {
		return err
	}
	return sc2.Err()
}

// Read dispatches to the reader matching format.
func Read(format Format, r1, r2 io.Reader, b *barcode.Bag) error {
	switch format {
	case Raw:
		return ReadRaw(r1, b)
	case FASTA:
		return ReadFASTA(r1, b)
	case FASTQ:
		return ReadFASTQ(r1, b)
	case PairedFASTQ:
		return ReadPairedFASTQ(r1, r2, b)
	default:
		return fmt.Errorf("seqbag: unknown format %v", format)
	}
}
