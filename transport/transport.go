//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package transport carries the opaque byte-string messages a Garbler
// and an Evaluator exchange between next calls. The core protocol
// state machines in package mpc know nothing about sockets or timing;
// a transport is whatever moves one message to the peer and whatever
// delivers the peer's next message back.
package transport

// Conn is one endpoint of a two-party message channel. A session
// drives it by alternating Send (the side that just produced a
// next message) and Receive (the other side, about to consume it),
// mirroring the "suspension only at message boundaries" contract
// the mpc package's Garbler/Evaluator rely on.
type Conn interface {
	// Send transmits msg to the peer. It must not return until the
	// message is fully handed to the underlying channel.
	Send(msg []byte) error

	// Receive blocks until the peer's next message is available.
	Receive() ([]byte, error)

	// Close releases any resources held by the connection (sockets,
	// pipes, timers). It is safe to call more than once.
	Close() error
}
