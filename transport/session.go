//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package transport

import (
	"github.com/markkurossi/gc2pc/mpc"
)

// DriveGarbler runs a Garbler's remaining rounds over conn, sending
// first (the message Start returned) and then alternating Receive
// and Next until the session completes. It is the two-process
// counterpart of mpc.Run's garbler side: the evaluator is assumed to
// be driven by DriveEvaluator over the other end of conn, in another
// process or goroutine.
func DriveGarbler(g *mpc.Garbler, first []byte, conn Conn) error {
	msg := first
	for {
		if err := conn.Send(msg); err != nil {
			return err
		}
		if g.IsComplete() {
			return nil
		}
		reply, err := conn.Receive()
		if err != nil {
			return err
		}
		msg, err = g.Next(reply)
		if err != nil {
			return err
		}
	}
}

// DriveEvaluator runs an Evaluator's remaining rounds over conn,
// receiving the garbler's messages and replying until the session
// completes, and returns the circuit's plaintext output bits.
func DriveEvaluator(e *mpc.Evaluator, conn Conn) ([]bool, error) {
	for {
		msg, err := conn.Receive()
		if err != nil {
			return nil, err
		}
		if e.IsComplete() {
			return e.Output(msg)
		}
		reply, err := e.Next(msg)
		if err != nil {
			return nil, err
		}
		if err := conn.Send(reply); err != nil {
			return nil, err
		}
	}
}
