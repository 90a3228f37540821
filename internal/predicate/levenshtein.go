package predicate

import "unicode/utf16"

// Levenshtein returns the minimum number of insertions, deletions and
// substitutions needed to turn a into b, comparing by UTF-16 code unit
// (matching how Windows represents file names) rather than by rune.
//
// This uses the standard two-row iterative algorithm. An earlier revision
// of this tool returned v0[len(b)-2], a stale index left over from a
// refactor; the correct final value is v0[len(b)].
func Levenshtein(a, b string) int {
	au := utf16.Encode([]rune(a))
	bu := utf16.Encode([]rune(b))
	m, n := len(au), len(bu)

	v0 := make([]int, n+1)
	v1 := make([]int, n+1)
	for j := 0; j <= n; j++ {
		v0[j] = j
	}

	for i := 0; i < m; i++ {
		v1[0] = i + 1
		for j := 0; j < n; j++ {
			deletionCost := v0[j+1] + 1
			insertionCost := v1[j] + 1
			substitutionCost := v0[j]
			if au[i] != bu[j] {
				substitutionCost++
			}
			v1[j+1] = min3(deletionCost, insertionCost, substitutionCost)
		}
		v0, v1 = v1, v0
	}

	return v0[n]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
