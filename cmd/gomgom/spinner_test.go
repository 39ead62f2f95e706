package main

import "testing"

func TestParseSpinnerVariant(t *testing.T) {
	cases := []struct {
		in      string
		want    SpinnerVariant
		wantErr bool
	}{
		{"", SpinnerDots, false},
		{"dots", SpinnerDots, false},
		{"paws", SpinnerPaws, false},
		{"bar", SpinnerBar, false},
		{"rainbow", SpinnerDots, true},
	}
	for _, tc := range cases {
		got, err := ParseSpinnerVariant(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: got %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestEveryVariantHasFrames(t *testing.T) {
	for _, v := range []SpinnerVariant{SpinnerDots, SpinnerPaws, SpinnerBar} {
		if len(v.frames()) == 0 {
			t.Fatalf("variant %v has no frames", v)
		}
	}
}
