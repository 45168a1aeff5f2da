// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// nnue.go is the incrementally updated neural network evaluator: a
// single 768->512 dense layer with ReLU, whose hidden accumulator is
// pushed and popped in lockstep with Position.DoMove/UndoMove rather
// than recomputed from scratch at every leaf.

package engine

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

const (
	nnueInputSize  = 64 * 12
	nnueHiddenSize = 512
	nnueMaxPlies   = MaxHeight + 1
)

// nnueInputIndex maps (piece, square) to a row of the hidden weight
// matrix: the side-relative piece plane (0..11, white pieces first)
// shifted above the square bits.
func nnueInputIndex(pi Piece, sq Square) int {
	piece12 := int(pi.Figure()) - int(Pawn)
	if pi.Color() == Black {
		piece12 += 6
	}
	return int(sq) ^ (piece12 << 6)
}

// NNUEWeights holds the weight matrices loaded from a .nn file.
type NNUEWeights struct {
	HiddenWeights []float32 // [nnueInputSize][nnueHiddenSize], row-major
	HiddenBiases  [nnueHiddenSize]float32
	OutputWeights [nnueHiddenSize]float32
	OutputBias    float32
}

// nnueFileHeaderSize is the number of leading bytes skipped before the
// weight matrices in a .nn file.
const nnueFileHeaderSize = 24

// LoadNNUEWeights reads a .nn weights file: a 24-byte header followed by
// little-endian float32 hidden weights, hidden biases, output weights
// and a single output bias.
func LoadNNUEWeights(path string) (*NNUEWeights, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if _, err := f.Seek(nnueFileHeaderSize, os.SEEK_SET); err != nil {
		return nil, err
	}

	w := &NNUEWeights{HiddenWeights: make([]float32, nnueInputSize*nnueHiddenSize)}
	if err := binary.Read(f, binary.LittleEndian, w.HiddenWeights); err != nil {
		return nil, fmt.Errorf("nnue: reading hidden weights: %w", err)
	}
	if err := binary.Read(f, binary.LittleEndian, &w.HiddenBiases); err != nil {
		return nil, fmt.Errorf("nnue: reading hidden biases: %w", err)
	}
	if err := binary.Read(f, binary.LittleEndian, &w.OutputWeights); err != nil {
		return nil, fmt.Errorf("nnue: reading output weights: %w", err)
	}
	if err := binary.Read(f, binary.LittleEndian, &w.OutputBias); err != nil {
		return nil, fmt.Errorf("nnue: reading output bias: %w", err)
	}
	return w, nil
}

// FindNNUEWeightsFile looks for name in the current working directory,
// then next to the running binary, then in $HOME/chess/.
func FindNNUEWeightsFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, "chess", name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("nnue: weights file %q not found", name)
}

// NNUEEvaluator is an IEvaluator backed by the dense network: it keeps
// a stack of hidden-layer accumulators, one per ply, so DoMove only
// needs to apply the move's piece-square delta instead of
// recomputing the whole accumulator.
type NNUEEvaluator struct {
	weights *NNUEWeights
	accum   [nnueMaxPlies][nnueHiddenSize]float32
	current int
}

// NewNNUEEvaluator builds an evaluator around a loaded weight set.
func NewNNUEEvaluator(weights *NNUEWeights) *NNUEEvaluator {
	return &NNUEEvaluator{weights: weights}
}

func (n *NNUEEvaluator) addRow(acc *[nnueHiddenSize]float32, input int, sign float32) {
	base := input * nnueHiddenSize
	row := n.weights.HiddenWeights[base : base+nnueHiddenSize]
	for i := range acc {
		acc[i] += sign * row[i]
	}
}

// Init rebuilds the accumulator from scratch for pos, becoming ply 0 of
// the accumulator stack.
func (n *NNUEEvaluator) Init(pos *Position) {
	n.current = 0
	n.accum[0] = n.weights.HiddenBiases

	all := pos.AllPieces()
	for all != 0 {
		sq := all.Pop()
		pi := pos.Get(sq)
		n.addRow(&n.accum[0], nnueInputIndex(pi, sq), 1)
	}
}

// MakeMove pushes a new accumulator ply and applies update's piece-square
// deltas. A null move (an empty update) still pushes a copy unchanged.
func (n *NNUEEvaluator) MakeMove(update *netUpdate) {
	n.accum[n.current+1] = n.accum[n.current]
	n.current++

	acc := &n.accum[n.current]
	for i := int8(0); i < update.nRemoved; i++ {
		n.subtractRow(acc, update.removed[i])
	}
	for i := int8(0); i < update.nAdded; i++ {
		n.addRow(acc, update.added[i], 1)
	}
}

func (n *NNUEEvaluator) subtractRow(acc *[nnueHiddenSize]float32, input int) {
	n.addRow(acc, input, -1)
}

// UnmakeMove pops the top accumulator ply.
func (n *NNUEEvaluator) UnmakeMove() {
	n.current--
}

// QuickEvaluate runs the output layer over the current accumulator:
// ReLU then a dot product with the output weights.
func (n *NNUEEvaluator) QuickEvaluate(pos *Position) int {
	const maxOutput = 15000
	acc := &n.accum[n.current]
	var output float32
	for i, w := range n.weights.OutputWeights {
		h := acc[i]
		if h < 0 {
			h = 0
		}
		output += h * w
	}
	v := int(output + n.weights.OutputBias)
	if v > maxOutput {
		v = maxOutput
	}
	if v < -maxOutput {
		v = -maxOutput
	}
	return v
}
