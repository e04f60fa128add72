package sanitizer

import (
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var searchTermPipeline = Pipeline{
	TrimAndNormalize,
	strings.ToLower,
}

// SearchTerm folds free text for case-insensitive substring matching.
func SearchTerm(s string) string {
	return searchTermPipeline.Apply(s)
}

// JoinNonEmpty joins the normalized, non-empty parts with sep, dropping
// case-insensitive duplicates so "Nairobi, nairobi" renders once.
func JoinNonEmpty(sep string, parts ...string) string {
	return strings.Join(NormalizeStringSlice(parts, TrimAndNormalize), sep)
}
