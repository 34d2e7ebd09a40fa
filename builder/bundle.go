//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package builder

import (
	"github.com/markkurossi/gc2pc/circuit"
	"github.com/markkurossi/gc2pc/mpc"
)

// WireBundle is a fixed bit-width integer under construction: a
// little-endian vector of wires, bit 0 (WireBundle[0]) the least
// significant. All operations on two bundles require equal width.
type WireBundle []circuit.Wire

// Width returns the number of bits in the bundle.
func (wb WireBundle) Width() int {
	return len(wb)
}

func sameWidth(kind string, a, c WireBundle) error {
	if len(a) != len(c) {
		return mpc.Errorf(mpc.WidthMismatch,
			"%s: operands have width %d and %d", kind, len(a), len(c))
	}
	return nil
}

// AddContributorInputBundle appends width input-leaf gates for the
// contributor, bit 0 first.
func (b *Builder) AddContributorInputBundle(width int) (WireBundle, error) {
	wb := make(WireBundle, width)
	for i := 0; i < width; i++ {
		w, err := b.AddContributorInput()
		if err != nil {
			return nil, err
		}
		wb[i] = w
	}
	return wb, nil
}

// AddEvaluatorInputBundle appends width input-leaf gates for the
// evaluator, bit 0 first.
func (b *Builder) AddEvaluatorInputBundle(width int) (WireBundle, error) {
	wb := make(WireBundle, width)
	for i := 0; i < width; i++ {
		w, err := b.AddEvaluatorInput()
		if err != nil {
			return nil, err
		}
		wb[i] = w
	}
	return wb, nil
}

// bitwiseBundle applies a single-gate binary op bitwise over two
// equal-width bundles.
func (b *Builder) bitwiseBundle(kind string, a, c WireBundle,
	op func(a, c circuit.Wire) (circuit.Wire, error)) (WireBundle, error) {

	if err := sameWidth(kind, a, c); err != nil {
		return nil, err
	}
	out := make(WireBundle, len(a))
	for i := range a {
		w, err := op(a[i], c[i])
		if err != nil {
			return nil, err
		}
		out[i] = w
	}
	return out, nil
}

// XorBundle computes the bitwise XOR of two equal-width bundles.
func (b *Builder) XorBundle(a, c WireBundle) (WireBundle, error) {
	return b.bitwiseBundle("xor", a, c, b.Xor)
}

// AndBundle computes the bitwise AND of two equal-width bundles.
func (b *Builder) AndBundle(a, c WireBundle) (WireBundle, error) {
	return b.bitwiseBundle("and", a, c, b.And)
}

// OrBundle computes the bitwise OR of two equal-width bundles.
func (b *Builder) OrBundle(a, c WireBundle) (WireBundle, error) {
	return b.bitwiseBundle("or", a, c, b.Or)
}

// NandBundle computes the bitwise NAND of two equal-width bundles.
func (b *Builder) NandBundle(a, c WireBundle) (WireBundle, error) {
	return b.bitwiseBundle("nand", a, c, b.Nand)
}

// NorBundle computes the bitwise NOR of two equal-width bundles.
func (b *Builder) NorBundle(a, c WireBundle) (WireBundle, error) {
	return b.bitwiseBundle("nor", a, c, b.Nor)
}

// XnorBundle computes the bitwise XNOR of two equal-width bundles.
func (b *Builder) XnorBundle(a, c WireBundle) (WireBundle, error) {
	return b.bitwiseBundle("xnor", a, c, b.Xnor)
}

// NotBundle computes the bitwise complement of a bundle.
func (b *Builder) NotBundle(a WireBundle) (WireBundle, error) {
	out := make(WireBundle, len(a))
	for i, w := range a {
		nw, err := b.Not(w)
		if err != nil {
			return nil, err
		}
		out[i] = nw
	}
	return out, nil
}

// MuxBundle selects a, bit for bit, when s is 1 and c when s is 0.
func (b *Builder) MuxBundle(s circuit.Wire, a, c WireBundle) (WireBundle, error) {
	if err := sameWidth("mux", a, c); err != nil {
		return nil, err
	}
	out := make(WireBundle, len(a))
	for i := range a {
		w, err := b.Mux(s, a[i], c[i])
		if err != nil {
			return nil, err
		}
		out[i] = w
	}
	return out, nil
}
