// Package match provides name normalization, Levenshtein distance
// calculation and candidate ranking used to suggest the intended key when
// a child path or model key is misspelled.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers and keys for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - RankCandidates: ranks known keys against an unknown one
//   - Suggest: returns the closest known keys
package match
