package mathutil

import (
	"errors"
	"testing"
)

func TestNewBoundedFloatRejectsInvertedBounds(t *testing.T) {
	_, err := NewBoundedFloat(0, 5, 1)
	if !errors.Is(err, ErrInvalidBounds) {
		t.Fatalf("expected ErrInvalidBounds, got %v", err)
	}
}

func TestNewBoundedFloatRejectsValueBelowMin(t *testing.T) {
	_, err := NewBoundedFloat(-1, 0, 10)
	if !errors.Is(err, ErrTooLow) {
		t.Fatalf("expected ErrTooLow, got %v", err)
	}
}

func TestNewBoundedFloatRejectsValueAboveMax(t *testing.T) {
	_, err := NewBoundedFloat(11, 0, 10)
	if !errors.Is(err, ErrTooHigh) {
		t.Fatalf("expected ErrTooHigh, got %v", err)
	}
}

func TestAddSaturatesAtMax(t *testing.T) {
	b, err := NewZeroMin(0, 2)
	if err != nil {
		t.Fatalf("new zero min: %v", err)
	}
	if got := b.Add(5).Current(); got != 2 {
		t.Fatalf("expected add to saturate at 2, got %v", got)
	}
}

func TestSubSaturatesAtMin(t *testing.T) {
	b, err := NewZeroMin(1, 2)
	if err != nil {
		t.Fatalf("new zero min: %v", err)
	}
	if got := b.Sub(5).Current(); got != 0 {
		t.Fatalf("expected sub to saturate at 0, got %v", got)
	}
}

func TestMulAndDivSaturate(t *testing.T) {
	b, err := NewBoundedFloat(4, 1, 10)
	if err != nil {
		t.Fatalf("new bounded float: %v", err)
	}
	if got := b.Mul(100).Current(); got != 10 {
		t.Fatalf("expected mul to saturate at 10, got %v", got)
	}
	if got := b.Div(100).Current(); got != 1 {
		t.Fatalf("expected div to saturate at 1, got %v", got)
	}
	if got := b.Mul(2).Current(); got != 8 {
		t.Fatalf("expected in-range mul to yield 8, got %v", got)
	}
}

func TestArithmeticDoesNotMutateReceiver(t *testing.T) {
	b, err := NewZeroMin(5, 10)
	if err != nil {
		t.Fatalf("new zero min: %v", err)
	}
	_ = b.Add(3)
	if b.Current() != 5 {
		t.Fatalf("expected receiver to stay at 5, got %v", b.Current())
	}
}

func TestWithMaxReclampsCurrent(t *testing.T) {
	b, err := NewZeroMin(8, 10)
	if err != nil {
		t.Fatalf("new zero min: %v", err)
	}
	shrunk, err := b.WithMax(6)
	if err != nil {
		t.Fatalf("with max: %v", err)
	}
	if shrunk.Current() != 6 || shrunk.Max() != 6 {
		t.Fatalf("expected current and max of 6, got current=%v max=%v", shrunk.Current(), shrunk.Max())
	}
}

func TestWithMaxRejectsInversion(t *testing.T) {
	b, err := NewBoundedFloat(5, 2, 10)
	if err != nil {
		t.Fatalf("new bounded float: %v", err)
	}
	if _, err := b.WithMax(1); !errors.Is(err, ErrInvalidBounds) {
		t.Fatalf("expected ErrInvalidBounds, got %v", err)
	}
}

func TestWithMinReclampsCurrent(t *testing.T) {
	b, err := NewZeroMin(1, 10)
	if err != nil {
		t.Fatalf("new zero min: %v", err)
	}
	raised, err := b.WithMin(3)
	if err != nil {
		t.Fatalf("with min: %v", err)
	}
	if raised.Current() != 3 || raised.Min() != 3 {
		t.Fatalf("expected current and min of 3, got current=%v min=%v", raised.Current(), raised.Min())
	}
	if _, err := b.WithMin(11); !errors.Is(err, ErrInvalidBounds) {
		t.Fatalf("expected ErrInvalidBounds, got %v", err)
	}
}

func TestRemainingReportsHeadroom(t *testing.T) {
	b, err := NewZeroMin(3, 10)
	if err != nil {
		t.Fatalf("new zero min: %v", err)
	}
	if got := b.Remaining(); got != 7 {
		t.Fatalf("expected remaining of 7, got %v", got)
	}
}
