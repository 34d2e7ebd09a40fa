//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package mpc

import (
	"crypto/sha256"
	"hash"

	"github.com/markkurossi/gc2pc/circuit"
	"github.com/markkurossi/gc2pc/env"
	"github.com/markkurossi/gc2pc/ot"

	"golang.org/x/crypto/hkdf"
)

// garbleKeyInfo is the HKDF info label that derives the garbling AES
// key from a session's CSPRNG seed, kept distinct from any other
// string a future derived key under the same seed might use.
var garbleKeyInfo = []byte("gc2pc garble key")

func newSHA256() hash.Hash {
	return sha256.New()
}

// gcSteps is the fixed number of next rounds a session takes: one
// round to move the evaluator's OT selection to the garbler and the
// garbler's encrypted OT replies back, one more to move the evaluated
// output labels to the garbler and the decoded output bits back.
const gcSteps = 2

// Garbler drives the garbling side of a two-party session: it
// garbles the circuit once in Start, offers its own input labels and
// the evaluator's via oblivious transfer, and at the end decodes the
// evaluator's computed output labels into plaintext bits.
type Garbler struct {
	circuit *circuit.Circuit
	garbled *circuit.Garbled
	key     []byte

	otSenders []*ot.COSenderXfer

	stepsRemaining int
}

// Start garbles circuit under a fresh key drawn from cfg's entropy
// source, builds the first message to the evaluator, and returns the
// new Garbler state. len(input) must equal
// circuit.ContributorInputs.
func Start(c *circuit.Circuit, cfg *env.Config, input []bool) (
	*Garbler, []byte, error) {

	if len(input) != c.ContributorInputs {
		return nil, nil, Errorf(InputLengthMismatch,
			"garbler input length %d, want %d", len(input), c.ContributorInputs)
	}

	rnd := cfg.GetRandom()

	var seed [32]byte
	if _, err := rnd.Read(seed[:]); err != nil {
		return nil, nil, err
	}
	key := make([]byte, 16)
	kdf := hkdf.New(newSHA256, seed[:], nil, garbleKeyInfo)
	if _, err := kdf.Read(key); err != nil {
		return nil, nil, err
	}

	garbled, err := c.Garble(rnd, key)
	if err != nil {
		return nil, nil, err
	}

	g := &Garbler{
		circuit:        c,
		garbled:        garbled,
		key:            key,
		stepsRemaining: gcSteps,
	}

	w := &msgWriter{}

	// The AES key underlying the garbling scheme is not itself secret:
	// as in fixed-key AES garbling, it is used only as a public
	// correlation-robust permutation, with all secrecy carried by the
	// wire labels. The evaluator needs it to decrypt garbled tables.
	w.bytes(key)

	// Garbled tables, one per gate (empty for Xor/input gates).
	for _, row := range garbled.Gates {
		w.u32(uint32(len(row)))
		var data ot.LabelData
		for _, label := range row {
			w.raw(label.Bytes(&data))
		}
	}

	// Garbler's own input labels, selected by its actual input bits.
	var data ot.LabelData
	ci := 0
	for i := range c.Gates {
		if c.Gates[i].Op != circuit.InputContributor {
			continue
		}
		wire := garbled.Wires[i]
		var label ot.Label
		if input[ci] {
			label = wire.L1
		} else {
			label = wire.L0
		}
		w.raw(label.Bytes(&data))
		ci++
	}

	// One OT sender transfer per evaluator input wire, offering that
	// wire's (L0, L1) pair as (m0, m1).
	sender := ot.NewCOSender()
	g.otSenders = make([]*ot.COSenderXfer, 0, c.EvaluatorInputs)
	for i := range c.Gates {
		if c.Gates[i].Op != circuit.InputEvaluator {
			continue
		}
		wire := garbled.Wires[i]
		m0 := wire.L0.Bytes(&data)
		m0Copy := append([]byte(nil), m0...)
		m1 := wire.L1.Bytes(&data)
		m1Copy := append([]byte(nil), m1...)

		xfer, err := sender.NewTransfer(m0Copy, m1Copy)
		if err != nil {
			return nil, nil, err
		}
		g.otSenders = append(g.otSenders, xfer)

		ax, ay := xfer.A()
		w.bytes(ax)
		w.bytes(ay)
	}

	return g, w.Bytes(), nil
}

// StepsRemaining reports the number of next rounds left before the
// session completes.
func (g *Garbler) StepsRemaining() int {
	return g.stepsRemaining
}

// IsComplete reports whether the Garbler has no more rounds left.
func (g *Garbler) IsComplete() bool {
	return g.stepsRemaining == 0
}

// Next consumes one message from the evaluator and produces the
// garbler's reply, advancing the session by one round.
func (g *Garbler) Next(incoming []byte) ([]byte, error) {
	if g.IsComplete() {
		return nil, Errorf(StateAfterCompletion,
			"Garbler.Next called after session completed")
	}

	r := newMsgReader(incoming)
	w := &msgWriter{}

	switch g.stepsRemaining {
	case 2:
		// Round 1: the evaluator sent its OT selection points B; reply
		// with the encrypted OT messages E.
		for _, xfer := range g.otSenders {
			x, err := r.bytes()
			if err != nil {
				return nil, err
			}
			y, err := r.bytes()
			if err != nil {
				return nil, err
			}
			xfer.ReceiveB(x, y)
			e0, e1 := xfer.E()
			w.raw(e0)
			w.raw(e1)
		}
		if err := r.done(); err != nil {
			return nil, err
		}

	case 1:
		// Round 2: the evaluator sent the circuit's output labels;
		// decode each against the garbler's private 0/1 pair.
		var data ot.LabelData
		bits := make([]byte, len(g.circuit.Outputs))
		for i, wireIdx := range g.circuit.Outputs {
			raw, err := r.raw(16)
			if err != nil {
				return nil, err
			}
			var label ot.Label
			copy(data[:], raw)
			label.SetData(&data)

			pair := g.garbled.OutputWire(wireIdx)
			switch {
			case label.Equal(pair.L0):
				bits[i] = 0
			case label.Equal(pair.L1):
				bits[i] = 1
			default:
				return nil, Errorf(MalformedMessage,
					"output label for wire %s matches neither decoding", wireIdx)
			}
		}
		if err := r.done(); err != nil {
			return nil, err
		}
		w.raw(bits)

	default:
		return nil, Errorf(ProtocolDesync,
			"Garbler.Next called with steps_remaining=%d", g.stepsRemaining)
	}

	g.stepsRemaining--
	return w.Bytes(), nil
}
