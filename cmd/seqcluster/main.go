// Command seqcluster clusters DNA barcode sequences by bounded edit
// distance, printing every pair found within that distance as a
// tab-separated "sequence1\tsequence2\tdistance" line.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/grailbio/seqcluster/barcode"
	"github.com/grailbio/seqcluster/cluster"
	"github.com/grailbio/seqcluster/encoding/seqbag"
)

func usage() {
	fmt.Fprint(os.Stderr, `
seqcluster clusters a set of DNA sequences by bounded edit distance and
prints every matching pair with its distance.

Examples:

1. Cluster a raw barcode list, distance chosen automatically

    seqcluster -input barcodes.txt -output pairs.tsv

2. Cluster paired-end FASTQ reads within distance 2, using 8 threads

    seqcluster -input r1.fastq.gz -input2 r2.fastq.gz -tau 2 -threads 8 -output pairs.tsv

3. Snap noisy barcodes onto a whitelist before clustering

    seqcluster -input barcodes.txt -known-barcodes whitelist.txt -output pairs.tsv

Usage:
  seqcluster [flags]
`)
	panic("")
}

func main() {
	flag.Usage = usage

	input := flag.String("input", "", "Input file (raw, FASTA or FASTQ; may be gzip-compressed). Required.")
	input2 := flag.String("input2", "", "Second FASTQ file for paired-end mode. If set, -input and -input2 are read as mate 1 and mate 2.")
	format := flag.String("format", "auto", "Input format: auto, raw, fasta or fastq. Ignored (forced to paired-fastq) when -input2 is set.")
	output := flag.String("output", "", "Output file for matched pairs. Defaults to stdout.")
	gzipOut := flag.Bool("gzip", false, "Gzip-compress the output.")
	knownBarcodes := flag.String("known-barcodes", "", "Optional file of one known barcode per line. Input sequences are snapped onto the closest entry before clustering.")
	tau := flag.Int("tau", cluster.AutoTau, "Maximum edit distance between paired sequences. Negative selects it automatically from the median sequence length.")
	threads := flag.Int("threads", 1, "Number of worker threads.")
	verbose := flag.Bool("verbose", false, "Log progress to stderr.")
	flag.Parse()

	if *input == "" {
		log.Fatal("seqcluster: -input is required")
	}

	cleanup := grail.Init()
	defer cleanup()
	ctx := vcontext.Background()

	bag := barcode.NewBag()
	readInput(ctx, *input, *input2, *format, bag, *verbose)
	if bag.Len() == 0 {
		log.Fatal("seqcluster: no sequences read from input")
	}

	if *knownBarcodes != "" {
		applyKnownBarcodes(ctx, *knownBarcodes, bag, *verbose)
	}

	sink, closeSink := openOutput(ctx, *output, *gzipOut)
	defer closeSink()

	cfg := cluster.Config{Tau: *tau, Threads: *threads, Verbose: *verbose}
	result := cluster.Run(bag, cfg, sink)
	if err := sink.Flush(); err != nil {
		log.Panicf("seqcluster: flushing output: %v", err)
	}

	if *verbose {
		log.Printf("seqcluster: done: %d unique sequences, height %d, median %d, tau %d, %d trie partitions",
			result.Unique, result.Height, result.Median, result.Tau, result.NTries)
	}
}

// readInput opens path (and, for paired-end mode, path2) and reads it
// into bag, transparently decompressing gzip input exactly as
// cmd/bio-fusion/main.go's readFASTQ does via compress.NewReaderPath.
func readInput(ctx context.Context, path, path2, format string, bag *barcode.Bag, verbose bool) {
	in1, err := file.Open(ctx, path)
	if err != nil {
		log.Panicf("seqcluster: open %v: %v", path, err)
	}
	r1 := wrapCompressed(in1.Reader(ctx), in1.Name())

	if path2 != "" {
		in2, err := file.Open(ctx, path2)
		if err != nil {
			log.Panicf("seqcluster: open %v: %v", path2, err)
		}
		r2 := wrapCompressed(in2.Reader(ctx), in2.Name())
		if verbose {
			log.Printf("seqcluster: paired-fastq format detected (two input files)")
		}
		if err := seqbag.Read(seqbag.PairedFASTQ, r1, r2, bag); err != nil {
			log.Panic(err)
		}
		once := errors.Once{}
		once.Set(in1.Close(ctx))
		once.Set(in2.Close(ctx))
		if err := once.Err(); err != nil {
			log.Panicf("seqcluster: close %v,%v: %v", path, path2, err)
		}
		return
	}

	// resolveFormat peeks through this same buffered reader, so the bytes
	// it looks at are still there for seqbag.Read.
	br := bufio.NewReader(r1)
	fmtt := resolveFormat(format, br, verbose)
	if err := seqbag.Read(fmtt, br, nil, bag); err != nil {
		log.Panic(err)
	}
	if err := in1.Close(ctx); err != nil {
		log.Panicf("seqcluster: close %v: %v", path, err)
	}
}

func resolveFormat(requested string, r io.Reader, verbose bool) seqbag.Format {
	switch requested {
	case "raw":
		return seqbag.Raw
	case "fasta":
		return seqbag.FASTA
	case "fastq":
		return seqbag.FASTQ
	case "auto", "":
		br := bufio.NewReader(r)
		f, err := seqbag.Detect(br)
		if err != nil {
			log.Panicf("seqcluster: detecting input format: %v", err)
		}
		if verbose {
			log.Printf("seqcluster: %s format detected", f)
		}
		return f
	default:
		log.Panicf("seqcluster: unknown -format %q", requested)
		return seqbag.Unknown
	}
}

func applyKnownBarcodes(ctx context.Context, path string, bag *barcode.Bag, verbose bool) {
	in, err := file.Open(ctx, path)
	if err != nil {
		log.Panicf("seqcluster: open %v: %v", path, err)
	}
	var whitelist []string
	sc := bufio.NewScanner(in.Reader(ctx))
	for sc.Scan() {
		if line := sc.Text(); line != "" {
			whitelist = append(whitelist, line)
		}
	}
	if err := sc.Err(); err != nil {
		log.Panicf("seqcluster: reading %v: %v", path, err)
	}
	if err := in.Close(ctx); err != nil {
		log.Panicf("seqcluster: close %v: %v", path, err)
	}

	corrector, err := barcode.NewCorrector(whitelist)
	if err != nil {
		log.Panicf("seqcluster: %v", err)
	}
	corrector.ApplyToBag(bag)
	if verbose {
		log.Printf("seqcluster: snapped sequences onto %d known barcodes", len(whitelist))
	}
}

// openOutput returns a TSVSink writing to path (or stdout when path is
// empty) and a cleanup function the caller must defer, which flushes and
// closes any wrapping gzip stream before closing the underlying file.
func openOutput(ctx context.Context, path string, gzipOut bool) (*cluster.TSVSink, func()) {
	if path == "" {
		var w io.Writer = os.Stdout
		if gzipOut {
			gw := seqbag.GzipWriter(w)
			return cluster.NewTSVSink(gw), func() {
				if err := gw.Close(); err != nil {
					log.Panicf("seqcluster: closing gzip output: %v", err)
				}
			}
		}
		return cluster.NewTSVSink(w), func() {}
	}

	out, err := file.Create(ctx, path)
	if err != nil {
		log.Panicf("seqcluster: create %v: %v", path, err)
	}
	var w io.Writer = out.Writer(ctx)
	var gw io.WriteCloser
	if gzipOut {
		gw = seqbag.GzipWriter(w)
		w = gw
	}
	sink := cluster.NewTSVSink(w)
	return sink, func() {
		once := errors.Once{}
		if gw != nil {
			once.Set(gw.Close())
		}
		once.Set(out.Close(ctx))
		if err := once.Err(); err != nil {
			log.Panicf("seqcluster: closing %v: %v", path, err)
		}
	}
}

func wrapCompressed(r io.Reader, name string) io.Reader {
	if u := compress.NewReaderPath(r, name); u != nil {
		return u
	}
	return r
}
