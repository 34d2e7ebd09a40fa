//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"crypto/rand"
	"testing"

	"github.com/markkurossi/gc2pc/ot"
)

// andCircuit builds the three-gate circuit computing the AND of one
// contributor input bit and one evaluator input bit.
func andCircuit() *Circuit {
	return &Circuit{
		Gates: []Gate{
			{Op: InputContributor},
			{Op: InputEvaluator},
			{Op: And, A: 0, B: 1},
		},
		Outputs:           []Wire{2},
		ContributorInputs: 1,
		EvaluatorInputs:   1,
		ANDCount:          1,
	}
}

func TestEvalPlainAnd(t *testing.T) {
	c := andCircuit()

	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			ca := a != 0
			cb := b != 0
			out, err := c.EvalPlain([]bool{ca}, []bool{cb})
			if err != nil {
				t.Fatalf("EvalPlain failed: %s", err)
			}
			if len(out) != 1 {
				t.Fatalf("EvalPlain returned %d outputs, want 1", len(out))
			}
			want := ca && cb
			if out[0] != want {
				t.Errorf("EvalPlain(%v,%v) = %v, want %v", ca, cb, out[0], want)
			}
		}
	}
}

func TestGarbleEvalAnd(t *testing.T) {
	c := andCircuit()

	var key [16]byte
	if _, err := rand.Read(key[:]); err != nil {
		t.Fatalf("Failed to create key: %s", err)
	}

	garbled, err := c.Garble(rand.Reader, key[:])
	if err != nil {
		t.Fatalf("Garble failed: %s", err)
	}

	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			wires := make([]ot.Label, len(c.Gates))

			contributorWire := garbled.Wires[0]
			if a == 0 {
				wires[0] = contributorWire.L0
			} else {
				wires[0] = contributorWire.L1
			}

			evaluatorWire := garbled.Wires[1]
			if b == 0 {
				wires[1] = evaluatorWire.L0
			} else {
				wires[1] = evaluatorWire.L1
			}

			if err := c.Eval(key[:], wires, garbled.Gates); err != nil {
				t.Fatalf("Eval failed: %s", err)
			}

			outWire := garbled.OutputWire(c.Outputs[0])
			got := wires[c.Outputs[0]]

			want := (a != 0) && (b != 0)
			var expected ot.Label
			if want {
				expected = outWire.L1
			} else {
				expected = outWire.L0
			}
			if !got.Equal(expected) {
				t.Errorf("Eval(a=%d,b=%d) produced unexpected output label", a, b)
			}
		}
	}
}
