package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chess-legality/legal"
	"chess-legality/oracle"
)

func main() {
	fen := flag.String("fen", legal.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	verify := flag.String("verify", "", "Compare node counts with a reference generator ("+fmt.Sprint(oracle.Names())+")")
	stats := flag.Bool("stats", false, "Print engine recomputation counters after the run")
	suite := flag.String("suite", "", "Run every position of a perft suite file up to -depth")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	if *suite != "" {
		os.Exit(runSuite(*suite, *depth))
	}

	game, err := legal.NewEngine(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	var ref oracle.Reference
	if *verify != "" {
		ref, err = oracle.Lookup(*verify)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	if *divide {
		os.Exit(runDivide(game, *depth, ref))
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	// Timing loop
	var totalNodes uint64
	var counters legal.Stats
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		nodes, s := legal.PerftStats(game, *depth)
		totalNodes += nodes
		counters.Add(s)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *stats {
		_, _ = counters.WriteTo(os.Stdout)
	}

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}

	if ref != nil {
		want, err := ref.Perft(game.FEN(), *depth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", ref.Name(), err)
			os.Exit(2)
		}
		perRun := totalNodes / uint64(*repeat)
		if perRun != want {
			fmt.Printf("MISMATCH: %s counts %d\n", ref.Name(), want)
			os.Exit(1)
		}
		fmt.Printf("ok: %s agrees\n", ref.Name())
	}
}

// runDivide prints per-move counts sorted by move text and, with a
// reference, the moves whose subtree sizes disagree.
func runDivide(game *legal.Engine, depth int, ref oracle.Reference) int {
	div := legal.PerftDivide(game, depth)
	moves := maps.Keys(div)
	names := make([]string, len(moves))
	byName := make(map[string]legal.Move, len(moves))
	for i, m := range moves {
		names[i] = m.String()
		byName[names[i]] = m
	}
	slices.Sort(names)

	var sum uint64
	code := 0
	for _, name := range names {
		n := div[byName[name]]
		sum += n
		if ref == nil {
			fmt.Printf("%s: %d\n", name, n)
			continue
		}
		child := game.Clone()
		if err := child.Play(byName[name]); err != nil {
			fmt.Fprintf(os.Stderr, "replay %s: %v\n", name, err)
			return 2
		}
		want, err := ref.Perft(child.FEN(), depth-1)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", ref.Name(), err)
			return 2
		}
		if want != n {
			fmt.Printf("%s: %d (%s %d)\n", name, n, ref.Name(), want)
			code = 1
			continue
		}
		fmt.Printf("%s: %d\n", name, n)
	}
	fmt.Printf("Total: %d\n", sum)
	return code
}

// runSuite checks each suite position and prints one line per failure.
func runSuite(path string, maxDepth int) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening suite: %v\n", err)
		return 2
	}
	defer f.Close()
	entries, err := oracle.ParseSuite(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading suite: %v\n", err)
		return 2
	}
	code := 0
	for _, entry := range entries {
		failures, err := entry.Run(maxDepth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "line %d: %v\n", entry.Line, err)
			return 2
		}
		for _, msg := range failures {
			fmt.Println(msg)
			code = 1
		}
	}
	fmt.Printf("%d positions checked\n", len(entries))
	return code
}
