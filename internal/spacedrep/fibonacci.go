package spacedrep

import "fmt"

// FibonacciInterval returns the n-th term of the Fibonacci sequence seeded
// 1, 1 (1-indexed): 1, 1, 2, 3, 5, 8, ... The term is used as a gap in days.
func FibonacciInterval(n int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("%w: fibonacci index %d must be >= 1", ErrInvalidArgument, n)
	}
	a, b := 1, 1
	for i := 2; i < n; i++ {
		a, b = b, a+b
	}
	if n == 1 {
		return a, nil
	}
	return b, nil
}
