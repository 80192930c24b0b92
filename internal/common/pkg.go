package common

import "strings"

// ScopeName returns the last element of a scope path, splitting on '/'
// and '.'. Returns empty string if scopePath is empty.
func ScopeName(scopePath string) string {
	if i := strings.LastIndexAny(scopePath, "/."); i >= 0 {
		return scopePath[i+1:]
	}

	return scopePath
}

// SplitQualified splits "a.b.C" into the scope "a.b" and the name "C".
// A name without a dot has an empty scope.
func SplitQualified(qualified string) (scope, name string) {
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[:i], qualified[i+1:]
	}

	return "", qualified
}
