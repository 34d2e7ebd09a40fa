//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package transport

import (
	"math"
	"sync"
	"time"

	"github.com/markkurossi/gc2pc/mpc"
)

// DefaultBandwidth is the simulated link speed a LocalTransport pair
// uses when NewLocalPair is given a zero bandwidth.
const DefaultBandwidth = 50 * 1024 * 1024 // 50 MiB/s

// LocalTransport is one endpoint of an in-process connection between
// a Garbler and an Evaluator running in the same process (or the same
// test). Messages are handed over unmodified; Send only adds a
// simulated transmission delay so that timing-sensitive callers (cost
// estimation, benchmark harnesses) see a link with a bounded
// bandwidth instead of the zero-cost channel a bare Go channel would
// otherwise offer.
type LocalTransport struct {
	bandwidth uint64
	out       chan<- []byte
	in        <-chan []byte

	closeOnce sync.Once
	closed    chan struct{}
}

// NewLocalPair returns two connected LocalTransport endpoints,
// anything sent on one is received on the other and vice versa.
// bandwidth is in bytes per second; zero selects DefaultBandwidth.
func NewLocalPair(bandwidth uint64) (Conn, Conn) {
	if bandwidth == 0 {
		bandwidth = DefaultBandwidth
	}
	ab := make(chan []byte, 1)
	ba := make(chan []byte, 1)
	closed := make(chan struct{})

	a := &LocalTransport{bandwidth: bandwidth, out: ab, in: ba, closed: closed}
	b := &LocalTransport{bandwidth: bandwidth, out: ba, in: ab, closed: make(chan struct{})}
	return a, b
}

// Send hands msg to the peer and then sleeps for the time a link of
// the configured bandwidth would take to carry it. The bytes placed
// on the channel are msg's own backing array's contents, copied once
// so the caller remains free to reuse its buffer.
func (t *LocalTransport) Send(msg []byte) error {
	cp := make([]byte, len(msg))
	copy(cp, msg)

	select {
	case t.out <- cp:
	case <-t.closed:
		return mpc.Errorf(mpc.TransportError, "send on closed local transport")
	}

	millis := math.Ceil(float64(len(msg)) / float64(t.bandwidth) * 1000)
	time.Sleep(time.Duration(millis) * time.Millisecond)
	return nil
}

// Receive blocks until the peer's next message arrives.
func (t *LocalTransport) Receive() ([]byte, error) {
	select {
	case msg := <-t.in:
		return msg, nil
	case <-t.closed:
		return nil, mpc.Errorf(mpc.TransportError, "receive on closed local transport")
	}
}

// Close marks this endpoint closed. It does not close the peer's
// endpoint; a blocked peer Receive is left to its own timeout policy.
func (t *LocalTransport) Close() error {
	t.closeOnce.Do(func() { close(t.closed) })
	return nil
}
