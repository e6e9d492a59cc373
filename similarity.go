package main

// sequenceRatio returns a similarity ratio in [0.0, 1.0] between two
// strings: twice the total length of their matching blocks divided by the
// combined length. 1.0 means identical. Used by the suggestion ranker to
// find historical commands close to partial input.
func sequenceRatio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra)+len(rb) == 0 {
		return 1.0
	}
	matched := matchingBlockTotal(ra, rb)
	return 2.0 * float64(matched) / float64(len(ra)+len(rb))
}

// matchingBlockTotal sums the lengths of the matching blocks found by
// recursively splitting around the longest common substring
func matchingBlockTotal(a, b []rune) int {
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += matchingBlockTotal(a[:ai], b[:bi])
	total += matchingBlockTotal(a[ai+size:], b[bi+size:])
	return total
}

// longestMatch finds the longest common substring of a and b, returning
// its start offsets and length. Ties go to the earliest position in a,
// then the earliest in b.
func longestMatch(a, b []rune) (int, int, int) {
	bestA, bestB, bestSize := 0, 0, 0

	// lengths[j] is the match length ending at a[i-1], b[j-1] for the
	// previous row of the scan
	prev := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		current := make([]int, len(b)+1)
		for j := 1; j <= len(b); j++ {
			if a[i-1] != b[j-1] {
				continue
			}
			current[j] = prev[j-1] + 1
			if current[j] > bestSize {
				bestSize = current[j]
				bestA = i - current[j]
				bestB = j - current[j]
			}
		}
		prev = current
	}

	return bestA, bestB, bestSize
}
