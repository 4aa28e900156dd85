package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JakubSarnik/pdrtpa/aiger"
	"github.com/JakubSarnik/pdrtpa/internal/verbosity"
	"github.com/JakubSarnik/pdrtpa/simplify"
	"github.com/JakubSarnik/pdrtpa/verifier"
	"github.com/JakubSarnik/pdrtpa/witness"
	"github.com/JakubSarnik/pdrtpa/z"
)

var verbose = flag.Bool("v", false, "print one line per major phase")
var debug = flag.Bool("d", false, "print per-obligation detail (implies -v)")
var seed = flag.Uint("s", 1, "seed for the verifier's tie-breaking PRNG")

const usage = `usage: %s [-v|--verbose] [-d|--debug] [-s<uint>] <input.aig>

Decides whether the bad/output literal of an AIGER circuit is reachable
from its initial states, printing either "0" (safe) or "1" followed by a
counterexample trace.
`

func main() {
	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)
	flag.BoolVar(verbose, "verbose", false, "alias for -v")
	flag.BoolVar(debug, "debug", false, "alias for -d")
	flag.Usage = func() {
		p := filepath.Base(os.Args[0])
		fmt.Fprintf(os.Stderr, usage, p)
		flag.PrintDefaults()
	}
	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	level := verbosity.Silent
	if *debug {
		level = verbosity.Debug
	} else if *verbose {
		level = verbosity.Loud
	}
	logger := verbosity.New(os.Stderr, "c [pdrtpa] ", level)

	if err := run(flag.Arg(0), uint32(*seed), logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, seed uint32, logger *verbosity.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("pdrtpa: %w", err)
	}
	defer f.Close()

	logger.Verbosef("parsing %s", path)
	g, err := aiger.Parse(f)
	if err != nil {
		return fmt.Errorf("pdrtpa: malformed AIGER input: %w", err)
	}

	store := z.NewStore()
	logger.Verbosef("building transition system")
	sys, err := aiger.Build(store, g)
	if err != nil {
		return fmt.Errorf("pdrtpa: %w", err)
	}

	logger.Debugf("state_vars=%d input_vars=%d aux_vars=%d",
		sys.StateVars().Size(), sys.InputVars().Size(), sys.AuxVars().Size())

	simplified := simplify.System(sys)

	logger.Verbosef("running verifier (seed=%d)", seed)
	v := verifier.New(simplified, store, seed)
	v.SetLogger(logger)
	result := v.Run()

	if result.Safe {
		logger.Verbosef("result: safe")
	} else {
		logger.Verbosef("result: unsafe, counterexample of length %d", len(result.Rows))
	}

	return witness.Print(os.Stdout, simplified.InputVars(), simplified.InitialCube(), *result)
}
