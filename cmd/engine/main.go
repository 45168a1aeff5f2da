// Command engine loads a position and NNUE weights, runs a fixed-depth
// search and prints the result in a UCI-like "info"/"bestmove" form.
//
// The full UCI command loop (isready, position, go wtime/btime, ponder,
// stop) is intentionally left to a dispatcher built on top of the
// engine package; this binary only exercises the public search API.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/zurichess/nnue-counter/engine"
	"github.com/zurichess/nnue-counter/internal/logging"
)

var (
	buildVersion = "(devel)"

	fen        = flag.String("fen", engine.FENStartPos, "position to search, in FEN")
	weightsArg = flag.String("weights", "weights.nn", "NNUE weights file")
	depth      = flag.Int("depth", 10, "maximum search depth")
	hashSize   = flag.Int("hash", 64, "transposition table size, in megabytes")
	version    = flag.Bool("version", false, "only print version and exit")
)

func main() {
	flag.Parse()
	logLog := logging.GetLog("main")

	fmt.Printf("engine %v, running on %v/%v\n", buildVersion, runtime.GOOS, runtime.GOARCH)
	if *version {
		return
	}

	pos, err := engine.PositionFromFEN(*fen)
	if err != nil {
		log.Fatalf("bad fen: %v", err)
	}

	weightsPath, err := engine.FindNNUEWeightsFile(*weightsArg)
	if err != nil {
		logLog.Warningf("could not locate nnue weights (%v), exiting", err)
		os.Exit(1)
	}
	weights, err := engine.LoadNNUEWeights(weightsPath)
	if err != nil {
		log.Fatalf("loading nnue weights: %v", err)
	}

	tt := engine.NewTransTable(*hashSize)
	evaluator := engine.NewNNUEEvaluator(weights)
	tc := engine.NewTimeControl(pos)
	tc.Depth = *depth
	tc.Start()

	eng := engine.NewEngine(tt, evaluator, tc, nil)
	info := eng.Search(pos, *depth)

	fmt.Printf("info depth %d score cp %d nodes %d time %d\n",
		info.Depth, info.Score, info.Nodes, info.Duration.Milliseconds())
	if len(info.MainLine) > 0 {
		fmt.Printf("bestmove %s\n", info.MainLine[0].UCI())
	} else {
		fmt.Println("bestmove 0000")
	}
}
