package service

import "strings"

// IsCorrect reports whether a submitted answer matches the canonical answer.
// Both sides are trimmed and compared case-insensitively. The canonical
// answer may contain several acceptable literals separated by "/"; the
// submission is correct if it matches any of them. There is no fuzzy
// matching: exact-after-normalization only.
//
// Every mode uses this predicate, including multiple choice, where the
// selected option string is compared against the question's answer.
func IsCorrect(submitted, canonical string) bool {
	submitted = strings.TrimSpace(submitted)
	for _, alt := range strings.Split(canonical, "/") {
		if strings.EqualFold(submitted, strings.TrimSpace(alt)) {
			return true
		}
	}
	return false
}
