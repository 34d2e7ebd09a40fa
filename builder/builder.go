//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package builder implements the append-only circuit builder: base
// Xor/And/Not gates plus the derived bitwise and fixed bit-width
// arithmetic operations, compiled down to a circuit.Circuit.
//
// A Builder never removes or rewrites a gate once appended; a Wire
// returned by one of its methods is simply that gate's position in
// the final gate list and stays valid for the life of the Builder.
package builder

import (
	"github.com/markkurossi/gc2pc/circuit"
	"github.com/markkurossi/gc2pc/mpc"
	pkgmath "github.com/markkurossi/gc2pc/pkg/math"
)

// maxGates bounds the number of gates a single circuit can hold: a
// circuit.Wire is a uint32 gate index, so every assigned index stays
// below MaxUint32.
const maxGates = pkgmath.MaxUint32

// Builder accumulates gates for a single circuit. The zero value is
// not usable; create one with New.
type Builder struct {
	gates   []circuit.Gate
	outputs []circuit.Wire

	contributorInputs int
	evaluatorInputs   int
	andCount          int
}

// New creates an empty Builder.
func New() *Builder {
	return &Builder{}
}

func (b *Builder) append(g circuit.Gate) (circuit.Wire, error) {
	if len(b.gates) >= maxGates {
		return 0, mpc.Errorf(mpc.CircuitOverflow,
			"circuit exceeds %d gates", maxGates)
	}
	w := circuit.Wire(len(b.gates))
	b.gates = append(b.gates, g)
	if g.Op == circuit.And {
		b.andCount++
	}
	return w, nil
}

// AddContributorInput appends one input-leaf gate for the garbler's
// (contributor's) side and returns its wire.
func (b *Builder) AddContributorInput() (circuit.Wire, error) {
	w, err := b.append(circuit.Gate{Op: circuit.InputContributor})
	if err != nil {
		return 0, err
	}
	b.contributorInputs++
	return w, nil
}

// AddEvaluatorInput appends one input-leaf gate for the evaluator's
// side and returns its wire.
func (b *Builder) AddEvaluatorInput() (circuit.Wire, error) {
	w, err := b.append(circuit.Gate{Op: circuit.InputEvaluator})
	if err != nil {
		return 0, err
	}
	b.evaluatorInputs++
	return w, nil
}

// Xor appends a free-XOR gate computing a^b.
func (b *Builder) Xor(a, c circuit.Wire) (circuit.Wire, error) {
	return b.append(circuit.Gate{Op: circuit.Xor, A: a, B: c})
}

// And appends an And gate computing a&b.
func (b *Builder) And(a, c circuit.Wire) (circuit.Wire, error) {
	return b.append(circuit.Gate{Op: circuit.And, A: a, B: c})
}

// Not appends a Not gate computing !a.
func (b *Builder) Not(a circuit.Wire) (circuit.Wire, error) {
	return b.append(circuit.Gate{Op: circuit.Not, A: a})
}

// Or computes a|b as a^b^(a&b), the only one of the derived bitwise
// ops that does not reduce to a single base gate.
func (b *Builder) Or(a, c circuit.Wire) (circuit.Wire, error) {
	x, err := b.Xor(a, c)
	if err != nil {
		return 0, err
	}
	y, err := b.And(a, c)
	if err != nil {
		return 0, err
	}
	return b.Xor(x, y)
}

// Nand computes !(a&b).
func (b *Builder) Nand(a, c circuit.Wire) (circuit.Wire, error) {
	w, err := b.And(a, c)
	if err != nil {
		return 0, err
	}
	return b.Not(w)
}

// Nor computes !(a|b).
func (b *Builder) Nor(a, c circuit.Wire) (circuit.Wire, error) {
	w, err := b.Or(a, c)
	if err != nil {
		return 0, err
	}
	return b.Not(w)
}

// Xnor computes !(a^b).
func (b *Builder) Xnor(a, c circuit.Wire) (circuit.Wire, error) {
	w, err := b.Xor(a, c)
	if err != nil {
		return 0, err
	}
	return b.Not(w)
}

// Mux selects a when s is 1 and c (the "else" operand) when s is 0,
// computed as c^(s&(a^c)) so it costs a single And gate.
func (b *Builder) Mux(s, a, c circuit.Wire) (circuit.Wire, error) {
	w1, err := b.Xor(c, a)
	if err != nil {
		return 0, err
	}
	w2, err := b.And(w1, s)
	if err != nil {
		return 0, err
	}
	return b.Xor(w2, c)
}

// MarkOutput declares w as one of the circuit's output wires, in the
// order outputs should be returned to the caller.
func (b *Builder) MarkOutput(w circuit.Wire) {
	b.outputs = append(b.outputs, w)
}

// MarkOutputs declares ws as consecutive output wires.
func (b *Builder) MarkOutputs(ws WireBundle) {
	for _, w := range ws {
		b.MarkOutput(w)
	}
}

// Compile freezes the accumulated gates into an immutable
// circuit.Circuit. The Builder remains usable afterward; further
// calls extend a circuit independent of the one already returned,
// since Compile copies the gate and output lists.
func (b *Builder) Compile() *circuit.Circuit {
	gates := make([]circuit.Gate, len(b.gates))
	copy(gates, b.gates)
	outputs := make([]circuit.Wire, len(b.outputs))
	copy(outputs, b.outputs)

	return &circuit.Circuit{
		Gates:             gates,
		Outputs:           outputs,
		ContributorInputs: b.contributorInputs,
		EvaluatorInputs:   b.evaluatorInputs,
		ANDCount:          b.andCount,
	}
}
