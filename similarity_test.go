package main

import (
	"math"
	"testing"
)

func TestSequenceRatio(t *testing.T) {
	tests := []struct {
		a, b     string
		expected float64
	}{
		{"open calculator", "open calculator", 1.0},
		{"", "", 1.0},
		{"abc", "xyz", 0.0},
		{"abc", "", 0.0},
		// "open calc" shares all 9 characters: 2*9/(9+15)
		{"open calc", "open calculator", 0.75},
	}

	for _, test := range tests {
		got := sequenceRatio(test.a, test.b)
		if math.Abs(got-test.expected) > 1e-9 {
			t.Errorf("sequenceRatio(%q, %q) = %v, expected %v", test.a, test.b, got, test.expected)
		}
	}
}

func TestSequenceRatioSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"open calc", "open calculator"},
		{"take a screenshot", "take screenshot"},
		{"search for photos", "search for music"},
	}

	for _, pair := range pairs {
		ab := sequenceRatio(pair[0], pair[1])
		ba := sequenceRatio(pair[1], pair[0])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("sequenceRatio not symmetric for %q/%q: %v vs %v", pair[0], pair[1], ab, ba)
		}
	}
}

func TestSequenceRatioOrdering(t *testing.T) {
	// A near-complete input must score higher than a shorter prefix
	near := sequenceRatio("open calculato", "open calculator")
	short := sequenceRatio("open calc", "open calculator")

	if near <= short {
		t.Errorf("expected %v (near miss) > %v (short prefix)", near, short)
	}
	if near < similarityThreshold {
		t.Errorf("near miss %v unexpectedly below suggestion threshold", near)
	}
}

func TestSequenceRatioBounds(t *testing.T) {
	pairs := [][2]string{
		{"a", "b"},
		{"open firefox please", "close firefox"},
		{"hello", "hello world"},
	}

	for _, pair := range pairs {
		got := sequenceRatio(pair[0], pair[1])
		if got < 0.0 || got > 1.0 {
			t.Errorf("sequenceRatio(%q, %q) = %v out of [0,1]", pair[0], pair[1], got)
		}
	}
}
