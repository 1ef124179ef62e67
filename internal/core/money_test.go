package core

import "testing"

func TestParseFloatOr(t *testing.T) {
	cases := []struct {
		in  string
		def float64
		out float64
	}{
		{"1", 0, 1},
		{"1.25", 0, 1.25},
		{"1,25", 0, 1.25},
		{" 2.50 ", 0, 2.5},
		{"", 0, 0},
		{"", 7, 7},
		{"abc", 0, 0},
		{"abc", -1, -1},
		{"NaN", 0, 0},
		{"Inf", 0, 0},
		{"1.2.3", 0, 0},
		{"-4", 0, -4},
	}
	for _, tc := range cases {
		if got := ParseFloatOr(tc.in, tc.def); got != tc.out {
			t.Fatalf("ParseFloatOr(%q, %v) = %v, want %v", tc.in, tc.def, got, tc.out)
		}
	}
}

func TestParseIntOr(t *testing.T) {
	cases := []struct {
		in  string
		def int
		out int
	}{
		{"12", 0, 12},
		{" 3 ", 0, 3},
		{"3.7", 0, 3},
		{"", 0, 0},
		{"x", 0, 0},
		{"x", 5, 5},
		{"1e30", 0, 0},
	}
	for _, tc := range cases {
		if got := ParseIntOr(tc.in, tc.def); got != tc.out {
			t.Fatalf("ParseIntOr(%q, %v) = %v, want %v", tc.in, tc.def, got, tc.out)
		}
	}
}

func TestFormatting(t *testing.T) {
	if got := FormatMoney(12.345); got != "12.35 €" && got != "12.34 €" {
		t.Fatalf("FormatMoney = %q", got)
	}
	if got := FormatMoney(-3); got != "-3.00 €" {
		t.Fatalf("FormatMoney(-3) = %q", got)
	}
	if got := FormatHours(8); got != "8.00 h" {
		t.Fatalf("FormatHours(8) = %q", got)
	}
}
