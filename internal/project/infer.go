package project

import "math"

// Guess scoring weights. Directory proximity dominates; a matching
// file-name suffix only breaks ties.
const (
	matchPrefixWeight       = 100
	mismatchDirectoryWeight = 100
	matchPostfixWeight      = 1
)

// ComputeGuessScore rates how well two paths match for argument
// guessing. Matching prefix characters raise the score; every path
// separator in either mismatched suffix lowers it; a shared trailing
// suffix adds a small bonus so that files with the same naming
// convention win when directory distance is equal.
func ComputeGuessScore(a, b string) int {
	score := 0

	i := 0
	for ; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			break
		}
		score += matchPrefixWeight
	}

	for j := i; j < len(a); j++ {
		if a[j] == '/' {
			score -= mismatchDirectoryWeight
		}
	}
	for j := i; j < len(b); j++ {
		if b[j] == '/' {
			score -= mismatchDirectoryWeight
		}
	}

	for offset := 1; offset <= len(a) && offset <= len(b); offset++ {
		if a[len(a)-offset] != b[len(b)-offset] {
			break
		}
		score += matchPostfixWeight
	}

	return score
}

// inferEntry linearly scans all entries and copies the args of the
// best-scoring one into a synthetic entry for filename. Ties keep the
// first-seen entry. With no entries at all the result has empty args.
func (p *Project) inferEntry(filename string) Entry {
	bestScore := math.MinInt
	bestIndex := -1
	for i := range p.Entries {
		if score := ComputeGuessScore(filename, p.Entries[i].Filename); score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}

	entry := Entry{Filename: filename, IsInferred: true}
	if bestIndex >= 0 {
		entry.Args = append([]string(nil), p.Entries[bestIndex].Args...)
	}
	return entry
}
