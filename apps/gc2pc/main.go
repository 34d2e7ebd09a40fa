//
// main.go
//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

// Command gc2pc runs one side of a two-party garbled-circuit session
// over a TCP connection to a peer running the same binary in the
// opposite role: the garbler listens, the evaluator dials.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/markkurossi/gc2pc/circuit"
	"github.com/markkurossi/gc2pc/env"
	"github.com/markkurossi/gc2pc/fixedwidth"
	"github.com/markkurossi/gc2pc/mpc"
	"github.com/markkurossi/gc2pc/transport"
)

func main() {
	garbler := flag.Bool("g", false,
		"run as garbler (listens); default runs as evaluator (dials)")
	file := flag.String("c", "", "compiled circuit file")
	addr := flag.String("a", ":8080", "listen/dial address")
	input := flag.Uint64("i", 0, "this party's input value")
	flag.Parse()

	log.SetFlags(0)

	if len(*file) == 0 {
		fmt.Fprintln(os.Stderr, "circuit file not specified (-c)")
		os.Exit(1)
	}

	circ, err := loadCircuit(*file)
	if err != nil {
		log.Fatalf("failed to load circuit '%s': %s", *file, err)
	}
	fmt.Printf("circuit: %s\n", circ)

	cfg := &env.Config{}

	if *garbler {
		err = runGarbler(circ, cfg, *addr, *input)
	} else {
		err = runEvaluator(circ, cfg, *addr, *input)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func loadCircuit(file string) (*circuit.Circuit, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return circuit.Unmarshal(f)
}

func runGarbler(circ *circuit.Circuit, cfg *env.Config, addr string,
	input uint64) error {

	own := fixedwidth.FromUint64(circ.ContributorInputs, input)

	ln, err := transport.ListenRemote(addr)
	if err != nil {
		return err
	}
	defer ln.Close()
	fmt.Printf("listening on %s\n", addr)

	nc, err := ln.Accept()
	if err != nil {
		return err
	}
	fmt.Printf("connection from %s\n", nc.RemoteAddr())

	conn := transport.NewRemote(nc)
	defer conn.Close()

	g, first, err := mpc.Start(circ, cfg, own.Bits())
	if err != nil {
		return err
	}
	if err := transport.DriveGarbler(g, first, conn); err != nil {
		return err
	}
	fmt.Printf("session complete\n")
	return nil
}

func runEvaluator(circ *circuit.Circuit, cfg *env.Config, addr string,
	input uint64) error {

	own := fixedwidth.FromUint64(circ.EvaluatorInputs, input)

	conn, err := transport.DialRemote(addr, 10*time.Second)
	if err != nil {
		return err
	}
	defer conn.Close()

	e, err := mpc.New(circ, cfg, own.Bits())
	if err != nil {
		return err
	}
	result, err := transport.DriveEvaluator(e, conn)
	if err != nil {
		return err
	}
	fmt.Printf("result: %d\n", fixedwidth.FromBits(result).Uint64())
	return nil
}
