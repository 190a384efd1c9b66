package evolve

import "math/bits"

// Encode converts n to a big-endian bit sequence of exactly places digits,
// zero-padded on the left. Bits above places are dropped.
func Encode(n, places int) []int {
	out := make([]int, places)
	for i := places - 1; i >= 0; i-- {
		out[i] = n & 1
		n >>= 1
	}
	return out
}

// Decode converts a big-endian bit sequence back to an integer.
func Decode(digits []int) int {
	n := 0
	for _, d := range digits {
		n = n<<1 | (d & 1)
	}
	return n
}

// BitWidth returns the number of bits needed to represent every value in
// [0, maxNumber]. maxNumber below 1 is treated as 1.
func BitWidth(maxNumber int) int {
	if maxNumber < 1 {
		maxNumber = 1
	}
	return bits.Len(uint(maxNumber))
}
