//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package mpc

import (
	"github.com/markkurossi/gc2pc/circuit"
	"github.com/markkurossi/gc2pc/env"
)

// Run drives a Garbler and an Evaluator through the full two-party
// protocol in-process and returns the circuit's plaintext output
// bits. It is the convenience entry point for callers that hold both
// parties' inputs locally; a real two-process deployment instead runs
// a Garbler on one side and an Evaluator on the other, relaying
// Next's messages over a package transport connection between them.
func Run(c *circuit.Circuit, cfg *env.Config,
	garblerInput, evaluatorInput []bool) ([]bool, error) {

	g, mToE, err := Start(c, cfg, garblerInput)
	if err != nil {
		return nil, err
	}
	e, err := New(c, cfg, evaluatorInput)
	if err != nil {
		return nil, err
	}

	if g.StepsRemaining() != e.StepsRemaining() {
		return nil, Errorf(ProtocolDesync,
			"garbler steps_remaining=%d, evaluator steps_remaining=%d",
			g.StepsRemaining(), e.StepsRemaining())
	}
	steps := g.StepsRemaining()

	for i := 0; i < steps; i++ {
		mToG, err := e.Next(mToE)
		if err != nil {
			return nil, err
		}
		mToE, err = g.Next(mToG)
		if err != nil {
			return nil, err
		}
	}

	if !e.IsComplete() || !g.IsComplete() {
		return nil, Errorf(ProtocolDesync, "session did not reach completion")
	}

	return e.Output(mToE)
}
