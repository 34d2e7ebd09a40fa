//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/markkurossi/gc2pc/ot"
)

// Eval evaluates the garbled circuit given one label per input wire
// (both parties', in wire order) and the per-gate garbled tables,
// filling in wires with the output label of every gate as it goes.
// wires must be pre-sized to len(c.Gates) with the input wire entries
// already populated by the caller; Eval fills in the rest.
func (c *Circuit) Eval(key []byte, wires []ot.Label,
	garbled [][]ot.Label) error {

	alg, err := aes.NewCipher(key)
	if err != nil {
		return err
	}

	var data ot.LabelData
	for i := range c.Gates {
		gate := &c.Gates[i]

		switch gate.Op {
		case InputContributor, InputEvaluator:
			// Already populated by the caller.

		case Xor:
			a := wires[gate.A]
			b := wires[gate.B]
			a.Xor(b)
			wires[i] = a

		case And:
			a := wires[gate.A]
			b := wires[gate.B]
			row := garbled[i]
			if len(row) != 2 {
				return fmt.Errorf(
					"circuit: invalid and-gate table length %d at gate %d",
					len(row), i)
			}
			wires[i] = evalHalfGatesAnd(alg, a, b, uint32(i), row, &data)

		case Not:
			a := wires[gate.A]
			row := garbled[i]
			index := idxUnary(a)
			if index >= len(row) {
				return fmt.Errorf(
					"circuit: corrupted garbled table at gate %d: index %d >= len %d",
					i, index, len(row))
			}
			wires[i] = decrypt(alg, a, ot.Label{}, uint32(i), row[index], &data)

		default:
			return fmt.Errorf("circuit: invalid gate operation %s", gate.Op)
		}
	}

	return nil
}

// evalHalfGatesAnd evaluates one half-gates And gate from its
// two-row garbled table and the evaluator's two actual input labels,
// following Zahur-Rosulek-Evans (the same construction Gate.garble
// uses on the garbling side).
func evalHalfGatesAnd(alg cipher.Block, a, b ot.Label, id uint32,
	row []ot.Label, data *ot.LabelData) ot.Label {

	j0 := 2 * id
	j1 := 2*id + 1

	wg := encryptHalf(alg, a, j0, data)
	if a.S() {
		wg.Xor(row[0])
	}

	we := encryptHalf(alg, b, j1, data)
	if b.S() {
		we.Xor(row[1])
		we.Xor(a)
	}

	wg.Xor(we)
	return wg
}

// idxUnary and decrypt/encryptHalf are shared with garble.go.
