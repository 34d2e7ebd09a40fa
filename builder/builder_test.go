//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package builder

import (
	"math/big"
	"testing"

	"github.com/markkurossi/gc2pc/fixedwidth"
)

// evalUint compiles b, evaluates it in plaintext against the given
// contributor and evaluator input bundles, and returns the output
// bundle's value as a big.Int.
func evalUint(t *testing.T, b *Builder, width int,
	contributor, evaluator []bool) *big.Int {
	t.Helper()

	c := b.Compile()
	out, err := c.EvalPlain(contributor, evaluator)
	if err != nil {
		t.Fatalf("EvalPlain failed: %s", err)
	}
	if len(out) != width {
		t.Fatalf("output width = %d, want %d", len(out), width)
	}
	return fixedwidth.FromBits(out).BigInt()
}

func TestAddBundle(t *testing.T) {
	const width = 8

	b := New()
	x, err := b.AddContributorInputBundle(width)
	if err != nil {
		t.Fatalf("AddContributorInputBundle failed: %s", err)
	}
	y, err := b.AddEvaluatorInputBundle(width)
	if err != nil {
		t.Fatalf("AddEvaluatorInputBundle failed: %s", err)
	}
	sum, err := b.AddBundle(x, y)
	if err != nil {
		t.Fatalf("AddBundle failed: %s", err)
	}
	b.MarkOutputs(sum)

	tests := []struct {
		a, c uint64
		want uint64
	}{
		{3, 4, 7},
		{200, 100, 44}, // wraps mod 256
		{0, 0, 0},
		{255, 1, 0},
	}
	for _, test := range tests {
		av := fixedwidth.FromUint64(width, test.a)
		cv := fixedwidth.FromUint64(width, test.c)
		got := evalUint(t, b, width, av.Bits(), cv.Bits())
		if got.Uint64() != test.want {
			t.Errorf("%d+%d = %d, want %d", test.a, test.c, got.Uint64(), test.want)
		}
	}
}

func TestSubBundle(t *testing.T) {
	const width = 8

	b := New()
	x, _ := b.AddContributorInputBundle(width)
	y, _ := b.AddEvaluatorInputBundle(width)
	diff, err := b.SubBundle(x, y)
	if err != nil {
		t.Fatalf("SubBundle failed: %s", err)
	}
	b.MarkOutputs(diff)

	tests := []struct {
		a, c uint64
		want uint64
	}{
		{10, 3, 7},
		{3, 10, 249}, // wraps mod 256
		{0, 0, 0},
	}
	for _, test := range tests {
		av := fixedwidth.FromUint64(width, test.a)
		cv := fixedwidth.FromUint64(width, test.c)
		got := evalUint(t, b, width, av.Bits(), cv.Bits())
		if got.Uint64() != test.want {
			t.Errorf("%d-%d = %d, want %d", test.a, test.c, got.Uint64(), test.want)
		}
	}
}

func TestMulBundle(t *testing.T) {
	const width = 8

	b := New()
	x, _ := b.AddContributorInputBundle(width)
	y, _ := b.AddEvaluatorInputBundle(width)
	prod, err := b.MulBundle(x, y)
	if err != nil {
		t.Fatalf("MulBundle failed: %s", err)
	}
	b.MarkOutputs(prod)

	tests := []struct {
		a, c uint64
		want uint64
	}{
		{3, 4, 12},
		{16, 16, 0}, // 256 truncates to 0 mod 256
		{0, 200, 0},
	}
	for _, test := range tests {
		av := fixedwidth.FromUint64(width, test.a)
		cv := fixedwidth.FromUint64(width, test.c)
		got := evalUint(t, b, width, av.Bits(), cv.Bits())
		if got.Uint64() != test.want {
			t.Errorf("%d*%d = %d, want %d", test.a, test.c, got.Uint64(), test.want)
		}
	}
}

func TestDivRemBundle(t *testing.T) {
	const width = 8

	b := New()
	x, _ := b.AddContributorInputBundle(width)
	y, _ := b.AddEvaluatorInputBundle(width)
	q, r, err := b.DivRemBundle(x, y)
	if err != nil {
		t.Fatalf("DivRemBundle failed: %s", err)
	}
	b.MarkOutputs(q)
	b.MarkOutputs(r)

	c := b.Compile()

	tests := []struct {
		a, c     uint64
		wantQ, wantR uint64
	}{
		{17, 5, 3, 2},
		{100, 10, 10, 0},
		{7, 7, 1, 0},
	}
	for _, test := range tests {
		av := fixedwidth.FromUint64(width, test.a)
		cv := fixedwidth.FromUint64(width, test.c)
		out, err := c.EvalPlain(av.Bits(), cv.Bits())
		if err != nil {
			t.Fatalf("EvalPlain failed: %s", err)
		}
		if len(out) != 2*width {
			t.Fatalf("output width = %d, want %d", len(out), 2*width)
		}
		gotQ := fixedwidth.FromBits(out[:width]).BigInt().Uint64()
		gotR := fixedwidth.FromBits(out[width:]).BigInt().Uint64()
		if gotQ != test.wantQ || gotR != test.wantR {
			t.Errorf("%d/%d = (q=%d,r=%d), want (q=%d,r=%d)",
				test.a, test.c, gotQ, gotR, test.wantQ, test.wantR)
		}
	}
}

func TestCompareBundle(t *testing.T) {
	const width = 8

	b := New()
	x, _ := b.AddContributorInputBundle(width)
	y, _ := b.AddEvaluatorInputBundle(width)

	lt, err := b.LtBundle(x, y)
	if err != nil {
		t.Fatalf("LtBundle failed: %s", err)
	}
	eq, err := b.EqBundle(x, y)
	if err != nil {
		t.Fatalf("EqBundle failed: %s", err)
	}
	b.MarkOutput(lt)
	b.MarkOutput(eq)

	c := b.Compile()

	tests := []struct {
		a, c         uint64
		wantLt, wantEq bool
	}{
		{3, 5, true, false},
		{5, 3, false, false},
		{5, 5, false, true},
	}
	for _, test := range tests {
		av := fixedwidth.FromUint64(width, test.a)
		cv := fixedwidth.FromUint64(width, test.c)
		out, err := c.EvalPlain(av.Bits(), cv.Bits())
		if err != nil {
			t.Fatalf("EvalPlain failed: %s", err)
		}
		if out[0] != test.wantLt || out[1] != test.wantEq {
			t.Errorf("compare(%d,%d) = (lt=%v,eq=%v), want (lt=%v,eq=%v)",
				test.a, test.c, out[0], out[1], test.wantLt, test.wantEq)
		}
	}
}

func TestMuxBundle(t *testing.T) {
	const width = 4

	b := New()
	s, err := b.AddContributorInput()
	if err != nil {
		t.Fatalf("AddContributorInput failed: %s", err)
	}
	a, _ := b.AddContributorInputBundle(width)
	c, _ := b.AddEvaluatorInputBundle(width)

	out, err := b.MuxBundle(s, a, c)
	if err != nil {
		t.Fatalf("MuxBundle failed: %s", err)
	}
	b.MarkOutputs(out)

	circ := b.Compile()

	av := fixedwidth.FromUint64(width, 9)
	cv := fixedwidth.FromUint64(width, 3)

	res, err := circ.EvalPlain(append([]bool{true}, av.Bits()...), cv.Bits())
	if err != nil {
		t.Fatalf("EvalPlain failed: %s", err)
	}
	if fixedwidth.FromBits(res).BigInt().Uint64() != 9 {
		t.Errorf("mux(s=1) = %d, want 9", fixedwidth.FromBits(res).BigInt().Uint64())
	}

	res, err = circ.EvalPlain(append([]bool{false}, av.Bits()...), cv.Bits())
	if err != nil {
		t.Fatalf("EvalPlain failed: %s", err)
	}
	if fixedwidth.FromBits(res).BigInt().Uint64() != 3 {
		t.Errorf("mux(s=0) = %d, want 3", fixedwidth.FromBits(res).BigInt().Uint64())
	}
}
