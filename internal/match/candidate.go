package match

import (
	"sort"
)

// SuggestThreshold is the minimum similarity for a key to be suggested.
const SuggestThreshold = 0.5

// Candidate represents a known key ranked against an unknown one.
type Candidate struct {
	Key string

	// Score is the normalized Levenshtein similarity (0-1).
	Score float64

	// Metadata for debugging/explanation
	NormalizedKey    string
	NormalizedTarget string
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates ranks known keys by similarity to target.
// Returns candidates sorted by score (descending).
func RankCandidates(target string, keys []string) CandidateList {
	candidates := make(CandidateList, 0, len(keys))

	targetNorm := NormalizeIdent(target)

	for _, k := range keys {
		keyNorm := NormalizeIdent(k)

		candidates = append(candidates, Candidate{
			Key:              k,
			Score:            LevenshteinNormalized(keyNorm, targetNorm),
			NormalizedKey:    keyNorm,
			NormalizedTarget: targetNorm,
		})
	}

	// Sort by score (descending), then by key for determinism
	sort.Sort(candidates)

	return candidates
}

// Suggest returns at most n known keys similar enough to target, best first.
func Suggest(target string, keys []string, n int) []string {
	return RankCandidates(target, keys).AboveThreshold(SuggestThreshold).Top(n).Keys()
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by key for determinism.
func (c CandidateList) Less(i, j int) bool {
	// Higher score comes first
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}
	// Tie-breaker: alphabetical by key
	return c[i].Key < c[j].Key
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}
	return c[:n]
}

// AboveThreshold returns candidates with score above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList
	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}
	return result
}

// Keys returns the candidate keys in rank order.
func (c CandidateList) Keys() []string {
	if len(c) == 0 {
		return nil
	}

	keys := make([]string, len(c))
	for i, cand := range c {
		keys[i] = cand.Key
	}

	return keys
}
