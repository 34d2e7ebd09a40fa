//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package transport

import (
	"bufio"
	"encoding/binary"
	"io"
	"net"
	"time"

	"github.com/markkurossi/gc2pc/mpc"
)

// Remote is a Conn backed by a TCP connection to an external
// collaborator. Each message is framed as a little-endian uint32
// length followed by exactly that many payload bytes; the length is
// the payload size, never including the header itself.
type Remote struct {
	conn net.Conn
	r    *bufio.Reader
	w    *bufio.Writer
}

// NewRemote wraps an already-established net.Conn (from DialRemote,
// a Listener's Accept, or any other source) as a Conn.
func NewRemote(conn net.Conn) *Remote {
	return &Remote{
		conn: conn,
		r:    bufio.NewReader(conn),
		w:    bufio.NewWriter(conn),
	}
}

// DialRemote connects to a peer's ListenRemote address and returns
// the resulting Conn.
func DialRemote(addr string, timeout time.Duration) (*Remote, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, mpc.Errorf(mpc.TransportError, "dial %s: %s", addr, err)
	}
	return NewRemote(conn), nil
}

// ListenRemote opens a TCP listener for a Garbler or Evaluator that
// waits for its peer to connect.
func ListenRemote(addr string) (net.Listener, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, mpc.Errorf(mpc.TransportError, "listen %s: %s", addr, err)
	}
	return l, nil
}

// Send writes one length-prefixed message and flushes it to the
// underlying connection.
func (c *Remote) Send(msg []byte) error {
	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(len(msg)))

	if _, err := c.w.Write(hdr[:]); err != nil {
		return mpc.Errorf(mpc.TransportError, "write length header: %s", err)
	}
	if _, err := c.w.Write(msg); err != nil {
		return mpc.Errorf(mpc.TransportError, "write payload: %s", err)
	}
	if err := c.w.Flush(); err != nil {
		return mpc.Errorf(mpc.TransportError, "flush: %s", err)
	}
	return nil
}

// Receive reads one length-prefixed message from the underlying
// connection, blocking until it is fully available.
func (c *Remote) Receive() ([]byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(c.r, hdr[:]); err != nil {
		return nil, mpc.Errorf(mpc.TransportError, "read length header: %s", err)
	}
	n := binary.LittleEndian.Uint32(hdr[:])

	msg := make([]byte, n)
	if _, err := io.ReadFull(c.r, msg); err != nil {
		return nil, mpc.Errorf(mpc.TransportError, "read payload: %s", err)
	}
	return msg, nil
}

// Close closes the underlying TCP connection.
func (c *Remote) Close() error {
	return c.conn.Close()
}
