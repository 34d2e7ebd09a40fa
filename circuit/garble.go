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
	"io"

	"github.com/markkurossi/gc2pc/ot"
)

func idxUnary(l0 ot.Label) int {
	if l0.S() {
		return 1
	}
	return 0
}

func encrypt(alg cipher.Block, a, b, c ot.Label, t uint32,
	data *ot.LabelData) ot.Label {

	k := makeK(a, b, t)

	k.GetData(data)
	alg.Encrypt(data[:], data[:])

	var pi ot.Label
	pi.SetData(data)

	pi.Xor(k)
	pi.Xor(c)

	return pi
}

func decrypt(alg cipher.Block, a, b ot.Label, t uint32, c ot.Label,
	data *ot.LabelData) ot.Label {

	k := makeK(a, b, t)

	k.GetData(data)
	alg.Encrypt(data[:], data[:])

	var crypted ot.Label
	crypted.SetData(data)

	c.Xor(crypted)
	c.Xor(k)

	return c
}

func makeK(a, b ot.Label, t uint32) ot.Label {
	a.Mul2()

	b.Mul4()
	a.Xor(b)

	a.Xor(ot.NewTweak(t))

	return a
}

// encryptHalf is the hash function for half gates: Hπ(x, i) = π(K) ⊕
// K where K = 2x ⊕ i.
func encryptHalf(alg cipher.Block, x ot.Label, i uint32,
	data *ot.LabelData) ot.Label {

	k := makeKHalf(x, i)

	k.GetData(data)
	alg.Encrypt(data[:], data[:])

	var pi ot.Label
	pi.SetData(data)

	pi.Xor(k)

	return pi
}

// makeKHalf computes K = 2x ⊕ i.
func makeKHalf(x ot.Label, i uint32) ot.Label {
	x.Mul2()
	x.Xor(ot.NewTweak(i))
	return x
}

func makeLabels(rnd io.Reader, r ot.Label) (ot.Wire, error) {
	l0, err := ot.NewLabel(rnd)
	if err != nil {
		return ot.Wire{}, err
	}
	l1 := l0
	l1.Xor(r)

	return ot.Wire{
		L0: l0,
		L1: l1,
	}, nil
}

// Garbled holds everything the garbler produces from garbling a
// circuit: the free-XOR global offset R, the 0/1 label pair for every
// wire (the garbler's private view), and the per-gate garbled table
// (empty for the free Xor gates).
type Garbled struct {
	R     ot.Label
	Wires []ot.Wire
	Gates [][]ot.Label
}

// OutputWire returns the garbler's label pair for the given output
// wire, used to build the decoding table sent to the evaluator.
func (g *Garbled) OutputWire(w Wire) ot.Wire {
	return g.Wires[int(w)]
}

// Garble garbles the circuit under the given AES key and source of
// randomness, assigning fresh label pairs to every input wire (both
// parties') and a garbled table to every And/Not gate; Xor gates are
// free and get an empty table.
func (c *Circuit) Garble(rnd io.Reader, key []byte) (*Garbled, error) {
	r, err := ot.NewLabel(rnd)
	if err != nil {
		return nil, err
	}
	r.SetS(true)

	alg, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	wires := make([]ot.Wire, len(c.Gates))
	garbled := make([][]ot.Label, len(c.Gates))

	var data ot.LabelData
	for i := range c.Gates {
		gate := &c.Gates[i]
		table, err := gate.garble(wires, alg, rnd, r, uint32(i), &data)
		if err != nil {
			return nil, err
		}
		garbled[i] = table
	}

	return &Garbled{
		R:     r,
		Wires: wires,
		Gates: garbled,
	}, nil
}

// garble computes the output label pair and, for And/Not, the
// garbled table for one gate. wires holds the already-computed label
// pairs for every wire below g's position; the wire-order invariant
// guarantees g's operands are already present.
func (g *Gate) garble(wires []ot.Wire, enc cipher.Block, rnd io.Reader,
	r ot.Label, id uint32, data *ot.LabelData) ([]ot.Label, error) {

	var a, b ot.Wire
	var c ot.Wire
	var err error
	var table [2]ot.Label
	var count int

	switch g.Op {
	case InputContributor, InputEvaluator:
		c, err = makeLabels(rnd, r)
		if err != nil {
			return nil, err
		}

	case Xor:
		a = wires[g.A]
		b = wires[g.B]

		l0 := a.L0
		l0.Xor(b.L0)

		l1 := l0
		l1.Xor(r)
		c = ot.Wire{L0: l0, L1: l1}
		// Free XOR: no garbled table.

	case And:
		a = wires[g.A]
		b = wires[g.B]

		pa := a.L0.S()
		pb := b.L0.S()

		j0 := 2 * id
		j1 := 2*id + 1

		// First half gate.
		tg := encryptHalf(enc, a.L0, j0, data)
		tg.Xor(encryptHalf(enc, a.L1, j0, data))
		if pb {
			tg.Xor(r)
		}
		wg0 := encryptHalf(enc, a.L0, j0, data)
		if pa {
			wg0.Xor(tg)
		}

		// Second half gate.
		te := encryptHalf(enc, b.L0, j1, data)
		te.Xor(encryptHalf(enc, b.L1, j1, data))
		te.Xor(a.L0)
		we0 := encryptHalf(enc, b.L0, j1, data)
		if pb {
			we0.Xor(te)
			we0.Xor(a.L0)
		}

		l0 := wg0
		l0.Xor(we0)

		l1 := l0
		l1.Xor(r)
		c = ot.Wire{L0: l0, L1: l1}

		table[0] = tg
		table[1] = te
		count = 2

	case Not:
		a = wires[g.A]

		c, err = makeLabels(rnd, r)
		if err != nil {
			return nil, err
		}

		// a c
		// ---
		// 0 1
		// 1 0
		table[idxUnary(a.L0)] = encrypt(enc, a.L0, ot.Label{}, c.L1, id, data)
		table[idxUnary(a.L1)] = encrypt(enc, a.L1, ot.Label{}, c.L0, id, data)
		count = 2

	default:
		return nil, fmt.Errorf("circuit: invalid gate operation %s", g.Op)
	}

	wires[id] = c
	return table[:count], nil
}
