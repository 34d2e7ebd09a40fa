//
// main.go
//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

// Command circdot renders a compiled circuit file as a Graphviz dot
// graph, one node per wire and one box per gate, for inspecting small
// circuits visually.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/markkurossi/gc2pc/circuit"
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	for _, file := range flag.Args() {
		if err := render(file); err != nil {
			log.Fatalf("%s: %s", file, err)
		}
	}
}

func render(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	c, err := circuit.Unmarshal(f)
	if err != nil {
		return err
	}

	fmt.Printf("digraph circuit\n{\n")
	fmt.Printf("  overlap=scale;\n")
	fmt.Printf("  node\t[fontname=\"Helvetica\"];\n")

	fmt.Printf("  {\n    node [shape=plaintext];\n")
	for w := 0; w < c.NumWires(); w++ {
		fmt.Printf("    w%d\t[label=\"%d\"];\n", w, w)
	}
	fmt.Printf("  }\n")

	fmt.Printf("  {\n    node [shape=box];\n")
	for idx, gate := range c.Gates {
		fmt.Printf("    g%d\t[label=\"%s\"];\n", idx, gate.Op)
	}
	fmt.Printf("  }\n")

	for idx, gate := range c.Gates {
		switch gate.Op.NumOperands() {
		case 2:
			fmt.Printf("  w%d -> g%d;\n", gate.A, idx)
			fmt.Printf("  w%d -> g%d;\n", gate.B, idx)
		case 1:
			fmt.Printf("  w%d -> g%d;\n", gate.A, idx)
		}
		fmt.Printf("  g%d -> w%d;\n", idx, idx)
	}
	fmt.Printf("}\n")

	return nil
}
