package mathutil

import (
	"math"
	"testing"
)

func TestWeightedMean(t *testing.T) {
	got := WeightedMean([]Weighted{
		{Value: 7, Weight: 9},
		{Value: 5, Weight: 3},
		{Value: 8, Weight: 2},
		{Value: 4, Weight: 1},
	})
	want := 98.0 / 15.0
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestWeightedMeanSinglePoint(t *testing.T) {
	if got := WeightedMean([]Weighted{{Value: 873.15, Weight: 2400}}); got != 873.15 {
		t.Fatalf("expected 873.15, got %v", got)
	}
}

func TestWeightedMeanZeroTotalWeight(t *testing.T) {
	if got := WeightedMean([]Weighted{{Value: 10, Weight: 0}}); got != 0 {
		t.Fatalf("expected 0 for zero total weight, got %v", got)
	}
	if got := WeightedMean(nil); got != 0 {
		t.Fatalf("expected 0 for no points, got %v", got)
	}
}
