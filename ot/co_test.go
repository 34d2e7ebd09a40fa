//
// co_test.go
//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package ot

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestCOTransfer(t *testing.T) {
	for _, bit := range []uint{0, 1} {
		l0, err := NewLabel(rand.Reader)
		if err != nil {
			t.Fatalf("NewLabel: %s", err)
		}
		l1, err := NewLabel(rand.Reader)
		if err != nil {
			t.Fatalf("NewLabel: %s", err)
		}

		sender := NewCOSender()
		receiver := NewCOReceiver(sender.Curve())

		var l0Buf, l1Buf LabelData
		m0 := l0.Bytes(&l0Buf)
		m1 := l1.Bytes(&l1Buf)

		sXfer, err := sender.NewTransfer(m0, m1)
		if err != nil {
			t.Fatalf("COSender.NewTransfer: %s", err)
		}
		rXfer, err := receiver.NewTransfer(bit)
		if err != nil {
			t.Fatalf("COReceiver.NewTransfer: %s", err)
		}

		rXfer.ReceiveA(sXfer.A())
		sXfer.ReceiveB(rXfer.B())
		result := rXfer.ReceiveE(sXfer.E())

		want := m0
		if bit != 0 {
			want = m1
		}
		if !bytes.Equal(result, want) {
			t.Errorf("bit=%d: transfer returned %x, want %x", bit, result, want)
		}
	}
}

func BenchmarkCOTransfer(b *testing.B) {
	l0, _ := NewLabel(rand.Reader)
	l1, _ := NewLabel(rand.Reader)

	sender := NewCOSender()
	receiver := NewCOReceiver(sender.Curve())

	var l0Buf, l1Buf LabelData
	m0 := l0.Bytes(&l0Buf)
	m1 := l1.Bytes(&l1Buf)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sXfer, err := sender.NewTransfer(append([]byte(nil), m0...), append([]byte(nil), m1...))
		if err != nil {
			b.Fatalf("COSender.NewTransfer: %s", err)
		}
		rXfer, err := receiver.NewTransfer(1)
		if err != nil {
			b.Fatalf("COReceiver.NewTransfer: %s", err)
		}
		rXfer.ReceiveA(sXfer.A())
		sXfer.ReceiveB(rXfer.B())
		rXfer.ReceiveE(sXfer.E())
	}
}
