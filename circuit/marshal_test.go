//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"
	"testing"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	c := andCircuit()

	var buf bytes.Buffer
	if err := c.Marshal(&buf); err != nil {
		t.Fatalf("Marshal failed: %s", err)
	}

	got, err := Unmarshal(&buf)
	if err != nil {
		t.Fatalf("Unmarshal failed: %s", err)
	}

	if len(got.Gates) != len(c.Gates) {
		t.Fatalf("got %d gates, want %d", len(got.Gates), len(c.Gates))
	}
	for i := range c.Gates {
		if got.Gates[i] != c.Gates[i] {
			t.Errorf("gate %d: got %v, want %v", i, got.Gates[i], c.Gates[i])
		}
	}
	if len(got.Outputs) != len(c.Outputs) || got.Outputs[0] != c.Outputs[0] {
		t.Errorf("got outputs %v, want %v", got.Outputs, c.Outputs)
	}
	if got.ContributorInputs != c.ContributorInputs {
		t.Errorf("got ContributorInputs %d, want %d",
			got.ContributorInputs, c.ContributorInputs)
	}
	if got.EvaluatorInputs != c.EvaluatorInputs {
		t.Errorf("got EvaluatorInputs %d, want %d",
			got.EvaluatorInputs, c.EvaluatorInputs)
	}
	if got.ANDCount != c.ANDCount {
		t.Errorf("got ANDCount %d, want %d", got.ANDCount, c.ANDCount)
	}
}

func TestFingerprintStable(t *testing.T) {
	c := andCircuit()

	f1, err := c.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint failed: %s", err)
	}
	f2, err := c.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint failed: %s", err)
	}
	if f1 != f2 {
		t.Errorf("Fingerprint is not deterministic")
	}

	other := andCircuit()
	other.Outputs = []Wire{2, 1}
	f3, err := other.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint failed: %s", err)
	}
	if f1 == f3 {
		t.Errorf("Fingerprint did not change with a different output list")
	}
}

func TestMarshalLittleEndian(t *testing.T) {
	c := &Circuit{
		Gates:   []Gate{{Op: InputContributor}},
		Outputs: []Wire{0},
	}

	var buf bytes.Buffer
	if err := c.Marshal(&buf); err != nil {
		t.Fatalf("Marshal failed: %s", err)
	}

	want := []byte{
		0x01, 0x00, 0x00, 0x00, // gate count = 1
		0x00,                   // InputContributor tag
		0x01, 0x00, 0x00, 0x00, // output count = 1
		0x00, 0x00, 0x00, 0x00, // output wire 0
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("Marshal encoding = %x, want %x", buf.Bytes(), want)
	}
}
