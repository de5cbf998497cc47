package common

import "cmp"

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Clamp limits v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - T: v limited to [lo, hi]
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CeilRoot returns the smallest non-negative integer g such that g^degree >= n.
// Integer-exact, so perfect powers never round up a step from floating-point error.
//
// Parameters:
//   - n: the value to take the root of
//   - degree: 2 for square root, 3 for cube root
//
// Returns:
//   - int: the ceiling of the integer root, or 0 if n <= 0
func CeilRoot(n, degree int) int {
	if n <= 0 {
		return 0
	}
	pow := func(g int) int {
		p := 1
		for range degree {
			p *= g
		}
		return p
	}
	g := 1
	for pow(g) < n {
		g *= 2
	}
	lo, hi := g/2, g
	for lo < hi {
		mid := (lo + hi) / 2
		if pow(mid) >= n {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
