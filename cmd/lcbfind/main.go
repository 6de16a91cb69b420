// lcbfind finds locally-collinear blocks in a compacted de Bruijn graph of
// DNA k-mer junctions, reproducing the SibeliaZ-LCB path-extension algorithm.
//
// Usage:
//
//	lcbfind --infile junctions.bin --gfile genome.fa [flags]
//
// See the flag descriptions below for defaults and constraints.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/lcb/blockio"
	"github.com/grailbio/lcb/blocks"
	"github.com/grailbio/lcb/graph"
	"github.com/klauspost/compress/gzip"
)

type cliFlags struct {
	k         int
	maxBranch int64
	minBlock  int64
	depth     int
	threads   int
	abundance int
	infile    string
	gfile     string
	outDir    string
}

func (f cliFlags) validate() error {
	if f.k%2 == 0 {
		return fmt.Errorf("-k must be odd, got %d", f.k)
	}
	if f.maxBranch <= 0 {
		return fmt.Errorf("-b must be positive, got %d", f.maxBranch)
	}
	if f.minBlock <= 0 {
		return fmt.Errorf("-m must be positive, got %d", f.minBlock)
	}
	if f.depth <= 0 {
		return fmt.Errorf("--depth must be positive, got %d", f.depth)
	}
	if f.threads <= 0 {
		return fmt.Errorf("-t must be positive, got %d", f.threads)
	}
	if f.abundance <= 0 {
		return fmt.Errorf("--abundance must be positive, got %d", f.abundance)
	}
	if f.infile == "" {
		return fmt.Errorf("--infile is required")
	}
	if f.gfile == "" {
		return fmt.Errorf("--gfile is required")
	}
	return nil
}

func parseFlags(args []string) (cliFlags, error) {
	var f cliFlags
	fs := flag.NewFlagSet("lcbfind", flag.ContinueOnError)
	fs.IntVar(&f.k, "k", 25, "k-mer size (must be odd)")
	fs.Int64Var(&f.maxBranch, "b", 200, "max branch size, in base pairs")
	fs.Int64Var(&f.minBlock, "m", 50, "min block size, in base pairs")
	fs.IntVar(&f.depth, "depth", 8, "DFS looking depth")
	fs.IntVar(&f.threads, "t", 1, "worker threads")
	fs.IntVar(&f.abundance, "abundance", 150, "max per-vertex occurrences")
	fs.StringVar(&f.infile, "infile", "", "junctions binary (required)")
	fs.StringVar(&f.gfile, "gfile", "", "FASTA genome file (required)")
	fs.StringVar(&f.outDir, "o", "out", "output directory")
	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}
	if err := f.validate(); err != nil {
		return cliFlags{}, err
	}
	return f, nil
}

// openInput opens path through grailbio/base/file (so --infile/--gfile may
// live on any backend file.Open supports, not just local disk) and
// transparently gunzips it when fileio.DetermineType recognizes the
// extension, matching pileup.LoadFa's treatment of .fa/.fa.gz inputs.
func openInput(ctx context.Context, path string) (f file.File, r io.Reader, err error) {
	f, err = file.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	r = f.Reader(ctx)
	if fileio.DetermineType(path) == fileio.Gzip {
		if r, err = gzip.NewReader(r); err != nil {
			file.CloseAndReport(ctx, f, &err)
			return nil, nil, err
		}
	}
	return f, r, nil
}

func run(ctx context.Context, f cliFlags) (err error) {
	infile, r, err := openInput(ctx, f.infile)
	if err != nil {
		return fmt.Errorf("opening --infile: %w", err)
	}
	defer file.CloseAndReport(ctx, infile, &err)
	records, err := blockio.ReadJunctions(r)
	if err != nil {
		return err
	}

	gfile, r, err := openInput(ctx, f.gfile)
	if err != nil {
		return fmt.Errorf("opening --gfile: %w", err)
	}
	defer file.CloseAndReport(ctx, gfile, &err)
	chromosomes, err := blockio.LoadChromosomes(r)
	if err != nil {
		return err
	}

	storage, err := graph.NewStorage(f.k, f.abundance, chromosomes, records)
	if err != nil {
		return err
	}

	finder := blocks.NewFinder(storage, blocks.Config{
		MaxBranchSize: f.maxBranch,
		MinBlockSize:  f.minBlock,
		LookingDepth:  f.depth,
		Threads:       f.threads,
	})
	log.Printf("lcbfind: starting search over %d chromosomes, %d threads", storage.NumChromosomes(), f.threads)
	instances := finder.Run()
	log.Printf("lcbfind: committed %d instances", len(instances))

	if err := os.MkdirAll(f.outDir, 0o755); err != nil {
		return fmt.Errorf("creating -o directory: %w", err)
	}
	if err := writeOutput(ctx, filepath.Join(f.outDir, "coverage_report.txt"), func(w io.Writer) error {
		return blockio.WriteCoverageReport(w, storage, instances, f.minBlock)
	}); err != nil {
		return err
	}
	if err := writeOutput(ctx, filepath.Join(f.outDir, "blocks_coords.txt"), func(w io.Writer) error {
		return blockio.WriteCoords(w, instances)
	}); err != nil {
		return err
	}
	if err := writeOutput(ctx, filepath.Join(f.outDir, "blocks_sequences.fasta"), func(w io.Writer) error {
		return blockio.WriteSequences(w, storage, instances)
	}); err != nil {
		return err
	}
	return nil
}

// writeOutput mirrors pileup/snp/output.go's convertPileupRowsToTSV: create
// the destination through grailbio/base/file and report any close error
// back through the named return if the write itself succeeded.
func writeOutput(ctx context.Context, path string, write func(io.Writer) error) (err error) {
	w, err := file.Create(ctx, path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.CloseAndReport(ctx, w, &err)
	return write(w.Writer(ctx))
}

func main() {
	cleanup := grail.Init()
	defer cleanup()
	ctx := vcontext.Background()

	f, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := run(ctx, f); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
