package utils

import (
	"testing"

	"pgregory.net/rapid"
)

// Scores and health adjustments anywhere in the system must stay inside their
// configured bounds, so Clamp has to hold for arbitrary inputs.
func TestClampProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lo := rapid.IntRange(-1000, 1000).Draw(t, "lo")
		hi := rapid.IntRange(lo, lo+2000).Draw(t, "hi")
		v := rapid.IntRange(-10000, 10000).Draw(t, "v")

		got := Clamp(v, lo, hi)

		if got < lo || got > hi {
			t.Fatalf("Clamp(%d, %d, %d) = %d, out of range", v, lo, hi, got)
		}
		if v >= lo && v <= hi && got != v {
			t.Fatalf("Clamp(%d, %d, %d) = %d, in-range value changed", v, lo, hi, got)
		}
	})
}

func TestClampEdges(t *testing.T) {
	if Clamp(105, 0, 100) != 100 {
		t.Error("expected upper bound")
	}
	if Clamp(-5, 0, 100) != 0 {
		t.Error("expected lower bound")
	}
	if Clamp(50, 0, 100) != 50 {
		t.Error("expected passthrough")
	}
}
