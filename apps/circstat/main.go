//
// main.go
//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

// Command circstat prints a tabulated gate-count summary for one or
// more compiled circuit files, the way apps/garbled's objdump did for
// the Bristol-format era circuits.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/markkurossi/gc2pc/circuit"
	"github.com/markkurossi/tabulate"
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no circuit files specified")
		os.Exit(1)
	}

	if err := dumpStats(files); err != nil {
		log.Fatal(err)
	}
}

func dumpStats(files []string) error {
	type named struct {
		name string
		c    *circuit.Circuit
	}
	var circuits []named

	for _, file := range files {
		c, err := loadCircuit(file)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		circuits = append(circuits, named{name: file, c: c})
	}

	tab := tabulate.New(tabulate.Github)
	tab.Header("File")
	tab.Header("In-C").SetAlign(tabulate.MR)
	tab.Header("In-E").SetAlign(tabulate.MR)
	tab.Header("XOR").SetAlign(tabulate.MR)
	tab.Header("AND").SetAlign(tabulate.MR)
	tab.Header("NOT").SetAlign(tabulate.MR)
	tab.Header("Gates").SetAlign(tabulate.MR)
	tab.Header("Wires").SetAlign(tabulate.MR)
	tab.Header("Cost").SetAlign(tabulate.MR)

	for _, nc := range circuits {
		var xor, and, not int
		for _, g := range nc.c.Gates {
			switch g.Op {
			case circuit.Xor:
				xor++
			case circuit.And:
				and++
			case circuit.Not:
				not++
			}
		}
		row := tab.Row()
		row.Column(nc.name)
		row.Column(fmt.Sprintf("%d", nc.c.ContributorInputs))
		row.Column(fmt.Sprintf("%d", nc.c.EvaluatorInputs))
		row.Column(fmt.Sprintf("%d", xor))
		row.Column(fmt.Sprintf("%d", and))
		row.Column(fmt.Sprintf("%d", not))
		row.Column(fmt.Sprintf("%d", len(nc.c.Gates)))
		row.Column(fmt.Sprintf("%d", nc.c.NumWires()))
		row.Column(fmt.Sprintf("%d", nc.c.Cost()))
	}

	tab.Print(os.Stdout)
	return nil
}

func loadCircuit(file string) (*circuit.Circuit, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return circuit.Unmarshal(f)
}
