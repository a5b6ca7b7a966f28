package spacedrep

import (
	"errors"
	"testing"
)

func TestFibonacciInterval(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{1, 1},
		{2, 1},
		{3, 2},
		{4, 3},
		{5, 5},
		{6, 8},
		{7, 13},
		{10, 55},
	}

	for _, tt := range tests {
		got, err := FibonacciInterval(tt.n)
		if err != nil {
			t.Fatalf("FibonacciInterval(%d): %v", tt.n, err)
		}
		if got != tt.want {
			t.Errorf("FibonacciInterval(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestFibonacciIntervalRejectsNonPositive(t *testing.T) {
	for _, n := range []int{0, -1, -10} {
		_, err := FibonacciInterval(n)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("FibonacciInterval(%d) error = %v, want ErrInvalidArgument", n, err)
		}
	}
}
