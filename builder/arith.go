//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package builder

import (
	"github.com/markkurossi/gc2pc/circuit"
)

// Zero returns a wire that always carries 0, derived from ref by
// XORing it with itself. ref may be any wire already in the circuit;
// its own value does not matter.
func (b *Builder) Zero(ref circuit.Wire) (circuit.Wire, error) {
	return b.Xor(ref, ref)
}

// One returns a wire that always carries 1, the complement of Zero.
func (b *Builder) One(ref circuit.Wire) (circuit.Wire, error) {
	z, err := b.Zero(ref)
	if err != nil {
		return 0, err
	}
	return b.Not(z)
}

func (b *Builder) halfAdder(a, c circuit.Wire) (sum, carry circuit.Wire, err error) {
	sum, err = b.Xor(a, c)
	if err != nil {
		return 0, 0, err
	}
	carry, err = b.And(a, c)
	if err != nil {
		return 0, 0, err
	}
	return sum, carry, nil
}

func (b *Builder) fullAdder(a, c, cin circuit.Wire) (sum, cout circuit.Wire, err error) {
	w1, err := b.Xor(c, cin)
	if err != nil {
		return 0, 0, err
	}
	sum, err = b.Xor(a, w1)
	if err != nil {
		return 0, 0, err
	}
	w2, err := b.Xor(a, cin)
	if err != nil {
		return 0, 0, err
	}
	w3, err := b.And(w1, w2)
	if err != nil {
		return 0, 0, err
	}
	cout, err = b.Xor(cin, w3)
	if err != nil {
		return 0, 0, err
	}
	return sum, cout, nil
}

// addBundleCarry ripples a full adder across x and y, width n each,
// with explicit carry-in, returning the width-n sum and the carry out
// of the top bit. AddBundle and SubBundle both build on this and
// discard the carry, giving the usual two's-complement wraparound for
// a fixed-width integer type.
func (b *Builder) addBundleCarry(x, y WireBundle, cin circuit.Wire) (
	sum WireBundle, cout circuit.Wire, err error) {

	if err := sameWidth("add", x, y); err != nil {
		return nil, 0, err
	}
	sum = make(WireBundle, len(x))
	c := cin
	for i := range x {
		var s circuit.Wire
		s, c, err = b.fullAdder(x[i], y[i], c)
		if err != nil {
			return nil, 0, err
		}
		sum[i] = s
	}
	return sum, c, nil
}

// AddBundle computes x+y mod 2^width, the overflow carry dropped.
func (b *Builder) AddBundle(x, y WireBundle) (WireBundle, error) {
	if len(x) == 0 {
		return nil, nil
	}
	zero, err := b.Zero(x[0])
	if err != nil {
		return nil, err
	}
	sum, _, err := b.addBundleCarry(x, y, zero)
	return sum, err
}

// SubBundle computes x-y mod 2^width via the two's-complement
// identity x-y = x+(^y)+1, the borrow dropped.
func (b *Builder) SubBundle(x, y WireBundle) (WireBundle, error) {
	if err := sameWidth("sub", x, y); err != nil {
		return nil, err
	}
	if len(x) == 0 {
		return nil, nil
	}
	yInv, err := b.NotBundle(y)
	if err != nil {
		return nil, err
	}
	one, err := b.One(x[0])
	if err != nil {
		return nil, err
	}
	diff, _, err := b.addBundleCarry(x, yInv, one)
	return diff, err
}

// shiftLeftBundle returns x shifted left by n bits, truncated back to
// its original width, with zero shifted into the low bits.
func (b *Builder) shiftLeftBundle(x WireBundle, n int, zero circuit.Wire) WireBundle {
	w := len(x)
	out := make(WireBundle, w)
	for i := 0; i < w; i++ {
		if i < n {
			out[i] = zero
		} else {
			out[i] = x[i-n]
		}
	}
	return out
}

// MulBundle computes x*y mod 2^width as a sum of shifted, conditioned
// copies of x, one per set bit of y, each accumulated through
// AddBundle so the result truncates the same way AddBundle does.
func (b *Builder) MulBundle(x, y WireBundle) (WireBundle, error) {
	if err := sameWidth("mul", x, y); err != nil {
		return nil, err
	}
	n := len(x)
	if n == 0 {
		return nil, nil
	}
	zero, err := b.Zero(x[0])
	if err != nil {
		return nil, err
	}
	zeroBundle := make(WireBundle, n)
	for i := range zeroBundle {
		zeroBundle[i] = zero
	}

	acc := zeroBundle
	for i := 0; i < n; i++ {
		shifted := b.shiftLeftBundle(x, i, zero)
		term, err := b.MuxBundle(y[i], shifted, zeroBundle)
		if err != nil {
			return nil, err
		}
		acc, err = b.AddBundle(acc, term)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// DivRemBundle computes the unsigned quotient and remainder of x/y,
// both width-n, using restoring division: x's bits are folded into
// the running remainder from the most to the least significant, each
// step trial-subtracting y (via add-complement-plus-one) and keeping
// the subtraction only when it did not borrow.
//
// Division by zero is not checked here; like add/sub/mul it is the
// caller's responsibility to avoid it or to interpret the all-ones
// quotient and unchanged-dividend remainder division by zero produces.
func (b *Builder) DivRemBundle(x, y WireBundle) (q, r WireBundle, err error) {
	if err := sameWidth("div", x, y); err != nil {
		return nil, nil, err
	}
	n := len(x)
	if n == 0 {
		return nil, nil, nil
	}

	zero, err := b.Zero(x[0])
	if err != nil {
		return nil, nil, err
	}
	one, err := b.One(x[0])
	if err != nil {
		return nil, nil, err
	}

	yInv, err := b.NotBundle(y)
	if err != nil {
		return nil, nil, err
	}

	rOut := make(WireBundle, n+1)
	for i := range rOut {
		rOut[i] = zero
	}

	q = make(WireBundle, n)

	for k := n - 1; k >= 0; k-- {
		rIn := make(WireBundle, n+1)
		rIn[0] = x[k]
		copy(rIn[1:], rOut[:n])

		cin := one
		rNew := make(WireBundle, n+1)
		for col := 0; col < n+1; col++ {
			var bw circuit.Wire
			if col < n {
				bw = yInv[col]
			} else {
				bw = one
			}
			var sum circuit.Wire
			sum, cin, err = b.fullAdder(rIn[col], bw, cin)
			if err != nil {
				return nil, nil, err
			}
			rNew[col] = sum
		}
		// cin now holds the carry out of the top column: 1 means the
		// trial subtraction did not borrow, i.e. the remainder-so-far
		// was at least y, which is exactly the quotient bit.
		q[k] = cin

		newROut := make(WireBundle, n+1)
		for col := 0; col <= n; col++ {
			ro, err := b.Mux(cin, rNew[col], rIn[col])
			if err != nil {
				return nil, nil, err
			}
			newROut[col] = ro
		}
		rOut = newROut
	}

	r = make(WireBundle, n)
	copy(r, rOut[:n])
	return q, r, nil
}

// DivBundle computes the unsigned quotient of x/y, width-n, as the
// quotient half of DivRemBundle.
func (b *Builder) DivBundle(x, y WireBundle) (WireBundle, error) {
	q, _, err := b.DivRemBundle(x, y)
	return q, err
}

// RemBundle computes x mod y, width-n, as the remainder half of
// DivRemBundle; callers that need both the quotient and the remainder
// should call DivRemBundle directly instead of paying for the
// division twice.
func (b *Builder) RemBundle(x, y WireBundle) (WireBundle, error) {
	_, r, err := b.DivRemBundle(x, y)
	return r, err
}

func (b *Builder) halfLt(a, c circuit.Wire) (circuit.Wire, error) {
	w1, err := b.Not(a)
	if err != nil {
		return 0, err
	}
	return b.And(w1, c)
}

func (b *Builder) fullLt(a, c, bin circuit.Wire) (circuit.Wire, error) {
	w3, err := b.Xor(a, c)
	if err != nil {
		return 0, err
	}
	w4, err := b.Not(a)
	if err != nil {
		return 0, err
	}
	w5, err := b.And(c, w4)
	if err != nil {
		return 0, err
	}
	w6, err := b.Not(w3)
	if err != nil {
		return 0, err
	}
	w7, err := b.And(bin, w6)
	if err != nil {
		return 0, err
	}
	return b.Or(w5, w7)
}

// LtBundle computes x<y as a single wire, folding a borrow bit from
// the least to the most significant bit.
func (b *Builder) LtBundle(x, y WireBundle) (circuit.Wire, error) {
	if err := sameWidth("lt", x, y); err != nil {
		return 0, err
	}
	if len(x) == 0 {
		return 0, nil
	}
	bout, err := b.halfLt(x[0], y[0])
	if err != nil {
		return 0, err
	}
	for i := 1; i < len(x); i++ {
		bout, err = b.fullLt(x[i], y[i], bout)
		if err != nil {
			return 0, err
		}
	}
	return bout, nil
}

// GtBundle computes x>y as y<x.
func (b *Builder) GtBundle(x, y WireBundle) (circuit.Wire, error) {
	return b.LtBundle(y, x)
}

// LeBundle computes x<=y as !(y<x).
func (b *Builder) LeBundle(x, y WireBundle) (circuit.Wire, error) {
	w, err := b.LtBundle(y, x)
	if err != nil {
		return 0, err
	}
	return b.Not(w)
}

// GeBundle computes x>=y as !(x<y).
func (b *Builder) GeBundle(x, y WireBundle) (circuit.Wire, error) {
	w, err := b.LtBundle(x, y)
	if err != nil {
		return 0, err
	}
	return b.Not(w)
}

// EqBundle computes x==y by AND-reducing the bitwise XNOR of x and y.
func (b *Builder) EqBundle(x, y WireBundle) (circuit.Wire, error) {
	bits, err := b.XnorBundle(x, y)
	if err != nil {
		return 0, err
	}
	if len(bits) == 0 {
		return 0, nil
	}
	acc := bits[0]
	for i := 1; i < len(bits); i++ {
		acc, err = b.And(acc, bits[i])
		if err != nil {
			return 0, err
		}
	}
	return acc, nil
}

// NeBundle computes x!=y as !(x==y).
func (b *Builder) NeBundle(x, y WireBundle) (circuit.Wire, error) {
	w, err := b.EqBundle(x, y)
	if err != nil {
		return 0, err
	}
	return b.Not(w)
}
