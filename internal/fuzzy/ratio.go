// Package fuzzy provides approximate string similarity scores on a 0-100 scale.
package fuzzy

import (
	fuzzywuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Ratio returns the normalized indel similarity of a and b, rounded to a
// whole number in [0, 100]. It is 0 when either string is empty.
func Ratio(a, b string) float64 {
	return float64(fuzzywuzzy.Ratio(a, b))
}

// TokenSetRatio compares the whitespace-separated token sets of a and b, so
// word order and duplicated words do not lower the score. Input is compared
// as given: punctuation is significant, so "c++" and "c#" stay distinct.
func TokenSetRatio(a, b string) float64 {
	return float64(fuzzywuzzy.TokenSetRatio(a, b))
}
