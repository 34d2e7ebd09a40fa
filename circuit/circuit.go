//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"os"

	"github.com/markkurossi/tabulate"
)

// Circuit is the immutable compiled artifact produced by
// builder.Builder.Compile: the gate list, the declared output wires,
// and the metadata cached at compile time. Once compiled, a Circuit
// is never mutated and may be shared freely across goroutines and
// sessions.
type Circuit struct {
	Gates   []Gate
	Outputs []Wire

	// ContributorInputs and EvaluatorInputs are the number of leaf
	// input wires appended for each party, in the order they were
	// requested from the builder.
	ContributorInputs int
	EvaluatorInputs   int

	// ANDCount caches the number of And gates, the only gate shape
	// whose garbled table costs more than a label XOR.
	ANDCount int
}

// NumWires returns the number of wires in the circuit, equal to the
// length of Gates since every gate appends exactly one wire.
func (c *Circuit) NumWires() int {
	return len(c.Gates)
}

// String summarizes the circuit's gate counts.
func (c *Circuit) String() string {
	var xor, and, not, inC, inE int
	for _, g := range c.Gates {
		switch g.Op {
		case Xor:
			xor++
		case And:
			and++
		case Not:
			not++
		case InputContributor:
			inC++
		case InputEvaluator:
			inE++
		}
	}
	return fmt.Sprintf("#gates=%d (xor=%d and=%d not=%d in_c=%d in_e=%d) #w=%d",
		len(c.Gates), xor, and, not, inC, inE, c.NumWires())
}

// Cost estimates the garbled-circuit transfer cost in label-sized
// units: two ciphertexts per And gate (half-gates), two per Not gate
// (point-and-permute), nothing for Xor (free-XOR).
func (c *Circuit) Cost() int {
	var cost int
	for _, g := range c.Gates {
		switch g.Op {
		case And:
			cost += 2
		case Not:
			cost += 2
		}
	}
	return cost
}

// Dump prints the circuit's gate list and a tabulated gate-count
// summary to stdout.
func (c *Circuit) Dump() {
	fmt.Printf("circuit %s\n", c)
	for id, gate := range c.Gates {
		fmt.Printf("%04d\t%s\n", id, gate)
	}

	tab := tabulate.New(tabulate.Github)
	tab.Header("XOR").SetAlign(tabulate.MR)
	tab.Header("AND").SetAlign(tabulate.MR)
	tab.Header("NOT").SetAlign(tabulate.MR)
	tab.Header("Gates").SetAlign(tabulate.MR)
	tab.Header("Wires").SetAlign(tabulate.MR)

	var xor, and, not int
	for _, g := range c.Gates {
		switch g.Op {
		case Xor:
			xor++
		case And:
			and++
		case Not:
			not++
		}
	}
	row := tab.Row()
	row.Column(fmt.Sprintf("%d", xor))
	row.Column(fmt.Sprintf("%d", and))
	row.Column(fmt.Sprintf("%d", not))
	row.Column(fmt.Sprintf("%d", len(c.Gates)))
	row.Column(fmt.Sprintf("%d", c.NumWires()))
	tab.Print(os.Stdout)
}
