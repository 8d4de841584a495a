package utils

import (
	"testing"
)

func TestB2s(t *testing.T) {
	cases := []struct {
		in   []byte
		want string
	}{
		{nil, ""},
		{[]byte(""), ""},
		{[]byte("TICK"), "TICK"},
		{[]byte("100.05"), "100.05"},
	}
	for _, c := range cases {
		if got := B2s(c.in); got != c.want {
			t.Errorf("B2s(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSplitFields(t *testing.T) {
	line := []byte("TICK EXA BTCUSD 100.00 100.05 1 0")
	var out [8][]byte
	n := SplitFields(line, out[:])
	if n != 7 {
		t.Fatalf("SplitFields returned %d fields, want 7", n)
	}
	want := []string{"TICK", "EXA", "BTCUSD", "100.00", "100.05", "1", "0"}
	for i, w := range want {
		if B2s(out[i]) != w {
			t.Errorf("field %d = %q, want %q", i, out[i], w)
		}
	}
}

func TestSplitFields_ExtraWhitespace(t *testing.T) {
	line := []byte("  TICK   EXA  BTCUSD\t100.00 100.05 1 0  ")
	var out [8][]byte
	n := SplitFields(line, out[:])
	if n != 7 {
		t.Fatalf("SplitFields returned %d fields, want 7", n)
	}
}

func TestSplitFields_FewerThanSix(t *testing.T) {
	line := []byte("TICK EXA BTCUSD 100.00")
	var out [8][]byte
	n := SplitFields(line, out[:])
	if n != 4 {
		t.Fatalf("SplitFields returned %d fields, want 4", n)
	}
}

func TestParseUint64ASCII(t *testing.T) {
	cases := []struct {
		in    string
		want  uint64
		valid bool
	}{
		{"0", 0, true},
		{"12345", 12345, true},
		{"", 0, false},
		{"12a", 0, false},
		{"-1", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseUint64ASCII([]byte(c.in))
		if ok != c.valid || (ok && got != c.want) {
			t.Errorf("ParseUint64ASCII(%q) = (%d, %v), want (%d, %v)", c.in, got, ok, c.want, c.valid)
		}
	}
}

func TestParseFloatASCII(t *testing.T) {
	cases := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"100.05", 100.05, true},
		{"0", 0, true},
		{"-1.5", -1.5, true},
		{"nope", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseFloatASCII([]byte(c.in))
		if ok != c.valid || (ok && got != c.want) {
			t.Errorf("ParseFloatASCII(%q) = (%v, %v), want (%v, %v)", c.in, got, ok, c.want, c.valid)
		}
	}
}

func TestSplitFields_ZeroAllocation(t *testing.T) {
	line := []byte("TICK EXA BTCUSD 100.00 100.05 1 0")
	var out [8][]byte
	allocs := testing.AllocsPerRun(1000, func() {
		SplitFields(line, out[:])
	})
	if allocs > 0 {
		t.Errorf("SplitFields allocated %.2f allocs/op, want 0", allocs)
	}
}
