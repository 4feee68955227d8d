// Package perm enumerates permutations for the exhaustive rank-ordering
// search in the crossing minimizer.
//
// Ranks small enough for an exact search (seven members or fewer) are
// reordered by trying every permutation of their slots. The search stops
// the moment a zero-crossing ordering is found, so the enumerator hands
// each permutation to a callback instead of materializing the full n!
// slice up front.
package perm

// Seq returns the identity permutation [0, 1, ..., n-1].
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	result := make([]int, max(n, 0))
	for i := range result {
		result[i] = i
	}
	return result
}

// Factorial returns n!, the product 1 × 2 × ... × n.
// For n <= 1, Factorial returns 1.
//
// Factorials grow extremely fast: 13! already exceeds a 32-bit int.
// Callers bounding a permutation search should cap n well below that.
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// Each invokes fn with every permutation of [0, 1, ..., n-1], generated
// with Heap's algorithm. Enumeration stops early when fn returns false.
//
// The slice passed to fn is reused between invocations; callers that need
// to keep a permutation must copy it. Permutations arrive in Heap's
// non-lexicographic order, each exactly once. The first permutation is
// always the identity, so a caller comparing candidates against the
// current order sees it first.
//
// For n == 0, fn is called once with an empty slice.
func Each(n int, fn func(p []int) bool) {
	if n <= 0 {
		fn(nil)
		return
	}

	p := Seq(n)
	if !fn(p) {
		return
	}

	state := make([]int, n)
	for i := 0; i < n; {
		if state[i] < i {
			if i&1 == 0 {
				p[0], p[i] = p[i], p[0]
			} else {
				p[state[i]], p[i] = p[i], p[state[i]]
			}
			if !fn(p) {
				return
			}
			state[i]++
			i = 0
		} else {
			state[i] = 0
			i++
		}
	}
}
