//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package mpc

import (
	"crypto/elliptic"

	"github.com/markkurossi/gc2pc/circuit"
	"github.com/markkurossi/gc2pc/env"
	"github.com/markkurossi/gc2pc/ot"
)

// Evaluator drives the evaluating side of a two-party session: it
// receives the garbled circuit and the garbler's input labels in the
// first round, recovers its own input labels via oblivious transfer,
// evaluates the circuit locally, and hands the resulting output
// labels back for the garbler to decode.
type Evaluator struct {
	circuit *circuit.Circuit
	input   []bool

	otReceivers []*ot.COReceiverXfer

	key     []byte
	tables  [][]ot.Label
	wires   []ot.Label
	ready   bool // true once round 1 has populated key/tables/wires

	stepsRemaining int
}

// New creates the evaluator side of a session for circuit, to be
// driven by Next as the corresponding Garbler's messages arrive.
// len(input) must equal circuit.EvaluatorInputs.
func New(c *circuit.Circuit, cfg *env.Config, input []bool) (*Evaluator, error) {
	if len(input) != c.EvaluatorInputs {
		return nil, Errorf(InputLengthMismatch,
			"evaluator input length %d, want %d", len(input), c.EvaluatorInputs)
	}

	receiver := ot.NewCOReceiver(elliptic.P256())
	receivers := make([]*ot.COReceiverXfer, 0, c.EvaluatorInputs)
	for _, bit := range input {
		var b uint
		if bit {
			b = 1
		}
		xfer, err := receiver.NewTransfer(b)
		if err != nil {
			return nil, err
		}
		receivers = append(receivers, xfer)
	}

	return &Evaluator{
		circuit:        c,
		input:          input,
		otReceivers:    receivers,
		wires:          make([]ot.Label, len(c.Gates)),
		stepsRemaining: gcSteps,
	}, nil
}

// StepsRemaining reports the number of next rounds left before the
// session completes.
func (e *Evaluator) StepsRemaining() int {
	return e.stepsRemaining
}

// IsComplete reports whether the Evaluator has no more rounds left.
func (e *Evaluator) IsComplete() bool {
	return e.stepsRemaining == 0
}

// Next consumes one message from the garbler and produces the
// evaluator's reply, advancing the session by one round.
func (e *Evaluator) Next(incoming []byte) ([]byte, error) {
	if e.IsComplete() {
		return nil, Errorf(StateAfterCompletion,
			"Evaluator.Next called after session completed")
	}

	r := newMsgReader(incoming)
	w := &msgWriter{}

	switch e.stepsRemaining {
	case 2:
		// Round 1: the garbler sent the AES key, the garbled tables,
		// its own input labels, and the OT "A" messages for the
		// evaluator's input wires. Reply with the OT "B" messages.
		key, err := r.bytes()
		if err != nil {
			return nil, err
		}
		e.key = key

		e.tables = make([][]ot.Label, len(e.circuit.Gates))
		var data ot.LabelData
		for i := range e.circuit.Gates {
			n, err := r.u32()
			if err != nil {
				return nil, err
			}
			row := make([]ot.Label, n)
			for j := range row {
				raw, err := r.raw(16)
				if err != nil {
					return nil, err
				}
				copy(data[:], raw)
				row[j].SetData(&data)
			}
			e.tables[i] = row
		}

		var ci int
		for i := range e.circuit.Gates {
			if e.circuit.Gates[i].Op != circuit.InputContributor {
				continue
			}
			raw, err := r.raw(16)
			if err != nil {
				return nil, err
			}
			copy(data[:], raw)
			var label ot.Label
			label.SetData(&data)
			e.wires[i] = label
			ci++
		}
		if ci != e.circuit.ContributorInputs {
			return nil, Errorf(MalformedMessage,
				"message carried %d contributor labels, want %d",
				ci, e.circuit.ContributorInputs)
		}

		for _, xfer := range e.otReceivers {
			ax, err := r.bytes()
			if err != nil {
				return nil, err
			}
			ay, err := r.bytes()
			if err != nil {
				return nil, err
			}
			xfer.ReceiveA(ax, ay)
			bx, by := xfer.B()
			w.bytes(bx)
			w.bytes(by)
		}
		if err := r.done(); err != nil {
			return nil, err
		}
		e.ready = true

	case 1:
		// Round 2: the garbler sent the OT "E" messages; recover the
		// evaluator's own input labels, evaluate the circuit, and send
		// the resulting output-wire labels back.
		if !e.ready {
			return nil, Errorf(ProtocolDesync,
				"Evaluator.Next round 2 called before round 1 completed")
		}
		var data ot.LabelData
		var ei int
		for i := range e.circuit.Gates {
			if e.circuit.Gates[i].Op != circuit.InputEvaluator {
				continue
			}
			e0, err := r.raw(16)
			if err != nil {
				return nil, err
			}
			e1, err := r.raw(16)
			if err != nil {
				return nil, err
			}
			selected := e.otReceivers[ei].ReceiveE(e0, e1)
			copy(data[:], selected)
			var label ot.Label
			label.SetData(&data)
			e.wires[i] = label
			ei++
		}
		if err := r.done(); err != nil {
			return nil, err
		}

		if err := e.circuit.Eval(e.key, e.wires, e.tables); err != nil {
			return nil, err
		}

		for _, wireIdx := range e.circuit.Outputs {
			w.raw(e.wires[wireIdx].Bytes(&data))
		}

	default:
		return nil, Errorf(ProtocolDesync,
			"Evaluator.Next called with steps_remaining=%d", e.stepsRemaining)
	}

	e.stepsRemaining--
	return w.Bytes(), nil
}

// Output parses the garbler's final message into the circuit's output
// bits, in circuit.Outputs order. It may only be called once
// IsComplete is true.
func (e *Evaluator) Output(final []byte) ([]bool, error) {
	if !e.IsComplete() {
		return nil, Errorf(ProtocolDesync,
			"Evaluator.Output called before session completed")
	}
	if len(final) != len(e.circuit.Outputs) {
		return nil, Errorf(MalformedMessage,
			"final message carried %d bits, want %d",
			len(final), len(e.circuit.Outputs))
	}
	out := make([]bool, len(final))
	for i, b := range final {
		out[i] = b != 0
	}
	return out, nil
}
