// Package main provides the benchmark and verification driver for the
// initializable-array implementations. The default mode sweeps every
// implementation over the configured sizes and scenarios and writes a CSV
// of measurements; -verify runs a randomized differential check of one
// implementation against the shadow oracle.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/scigolib/initarray"
	"github.com/scigolib/initarray/internal/bench"
	"github.com/scigolib/initarray/internal/utils"
	"github.com/scigolib/initarray/internal/verify"
)

func main() {
	verifyImpl := flag.String("verify", "", "verify one implementation (variant2|variant4) instead of benchmarking; optional args: [N] [seed]")
	nsFlag := flag.String("Ns", "", "comma-separated array sizes, k/m/g suffixes allowed (default 10k,100k,1m)")
	repsFlag := flag.Int("reps", 0, "repetitions per configuration (default 3)")
	seedFlag := flag.Int64("seed", 0, "random seed (default 42)")
	implsFlag := flag.String("impls", "", "comma-separated implementations (default reference,variant2,variant4,slice_direct)")
	outFlag := flag.String("outfile", "", "output CSV file (default results.csv)")
	configFlag := flag.String("config", "", "YAML suite file; flags override its values")
	archiveFlag := flag.String("archive", "", "bolt database collecting result history")
	flag.Parse()

	if *verifyImpl != "" {
		runVerify(*verifyImpl, flag.Args())
		return
	}

	suite := bench.DefaultSuite()
	if *configFlag != "" {
		var err error
		suite, err = bench.LoadSuite(*configFlag)
		if err != nil {
			log.Fatalf("Failed to load suite config: %v", err)
		}
	}
	if *nsFlag != "" {
		suite.Ns = utils.SplitList(*nsFlag)
	}
	if *repsFlag > 0 {
		suite.Reps = *repsFlag
	}
	if *seedFlag != 0 {
		suite.Seed = *seedFlag
	}
	if *implsFlag != "" {
		suite.Impls = utils.SplitList(*implsFlag)
	}
	if *outFlag != "" {
		suite.Outfile = *outFlag
	}
	if *archiveFlag != "" {
		suite.Archive = *archiveFlag
	}
	if err := suite.Validate(); err != nil {
		log.Fatalf("Invalid suite: %v", err)
	}

	out, err := os.Create(suite.Outfile)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", suite.Outfile, err)
	}
	defer func() {
		if err := out.Close(); err != nil {
			log.Printf("Failed to close %s: %v", suite.Outfile, err)
		}
	}()

	csvOut, err := bench.NewCSVWriter(out)
	if err != nil {
		log.Fatalf("Failed to write CSV header: %v", err)
	}

	var archive *bench.Archive
	if suite.Archive != "" {
		archive, err = bench.OpenArchive(suite.Archive)
		if err != nil {
			log.Fatalf("Failed to open archive: %v", err)
		}
		defer func() {
			if err := archive.Close(); err != nil {
				log.Printf("Failed to close archive: %v", err)
			}
		}()
	}

	runner := &bench.Runner{
		Suite:   suite,
		New:     initarray.New,
		Out:     csvOut,
		Archive: archive,
		Logf:    log.Printf,
	}
	if err := runner.Run(); err != nil {
		log.Fatalf("Benchmark sweep failed: %v", err)
	}
	fmt.Printf("Experiment suite finished. Results saved to %s\n", suite.Outfile)
}

func runVerify(impl string, args []string) {
	n := verify.DefaultN
	seed := int64(verify.DefaultSeed)

	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			log.Fatalf("Invalid N %q: %v", args[0], err)
		}
		n = v
	}
	if len(args) > 1 {
		v, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			log.Fatalf("Invalid seed %q: %v", args[1], err)
		}
		seed = v
	}

	fmt.Printf("--- Running correctness verification for %s with N=%d seed=%d ---\n", impl, n, seed)
	arr, err := initarray.New(impl, n)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", impl, err)
	}
	if err := verify.Run(arr, verify.DefaultOps, seed, os.Stderr); err != nil {
		fmt.Printf("--- Correctness verification for %s FAILED: %v ---\n", impl, err)
		os.Exit(1)
	}
	fmt.Printf("--- Correctness verification for %s PASSED ---\n", impl)
}
