// Package search filters fetched content locally as the user types.
package search

import (
	"sort"
	"strings"
	"unicode"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"
)

// Item is one filterable entry. Detail is secondary text (excerpt,
// description, venue) searched only when the title does not match.
type Item struct {
	Title  string
	Detail string
}

// Result is a matching item
type Result struct {
	Index          int   // Position in the filtered slice
	MatchedIndexes []int // Title byte offsets to highlight; empty for detail matches
	Score          int   // Higher is better
	InDetail       bool
}

// titleIndex implements sahilm/fuzzy.Source over pre-lowered titles
type titleIndex []string

func (t titleIndex) String(i int) string { return t[i] }
func (t titleIndex) Len() int            { return len(t) }

// Filter matches query against items. Title matches rank first by fuzzy
// score; detail matches follow in their original order.
func Filter(query string, items []Item) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	titles := make(titleIndex, len(items))
	for i, item := range items {
		titles[i] = strings.ToLower(item.Title)
	}

	matches := fuzzy.FindFrom(query, titles)
	results := make([]Result, 0, len(matches))
	matched := make(map[int]bool, len(matches))
	for _, m := range matches {
		results = append(results, Result{
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		})
		matched[m.Index] = true
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	queryWords := words(query)
	for i, item := range items {
		if matched[i] || item.Detail == "" {
			continue
		}
		if detailMatches(queryWords, words(item.Detail)) {
			results = append(results, Result{Index: i, InDetail: true})
		}
	}

	return results
}

// detailMatches requires every query word to match some detail word by
// prefix or within a small edit distance
func detailMatches(queryWords, detailWords []string) bool {
	if len(queryWords) == 0 || len(detailWords) == 0 {
		return false
	}
	for _, q := range queryWords {
		found := false
		for _, d := range detailWords {
			if strings.HasPrefix(d, q) || lfuzzy.LevenshteinDistance(q, d) <= maxTypos(q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// maxTypos scales typo tolerance with word length
func maxTypos(word string) int {
	n := len([]rune(word))
	switch {
	case n <= 3:
		return 0
	case n <= 6:
		return 1
	default:
		return 2
	}
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
