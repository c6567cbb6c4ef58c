// Package search filters an already-loaded book collection locally, with no
// network call. It backs type-ahead filtering over the catalog holder's
// collection or the offline snapshot.
package search

import (
	"sort"
	"strings"

	rank "github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"

	"github.com/readerly/circulate/internal/domain"
)

// Match is one filtered book with ranking metadata. MatchedIndexes points at
// rune positions in the "Title Author" target string for highlighting.
type Match struct {
	Book           domain.Book
	Score          int // lower is better
	MatchedIndexes []int
}

// target is the string a book is matched against.
func target(b domain.Book) string {
	return b.Title + " " + b.Author
}

// Filter matches query against title and author of every book. Subsequence
// matches (with highlight positions) come first; a second case- and
// diacritic-folding pass catches matches the first one misses, ranked by
// edit distance. Results are ordered best match first.
func Filter(query string, books []domain.Book) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	targets := make([]string, len(books))
	for i, b := range books {
		targets[i] = target(b)
	}

	matched := make(map[int]bool)
	var matches []Match

	for _, m := range sahilm.Find(query, targets) {
		matched[m.Index] = true
		matches = append(matches, Match{
			Book:           books[m.Index],
			Score:          -m.Score, // sahilm scores higher-is-better
			MatchedIndexes: m.MatchedIndexes,
		})
	}

	// Folding fallback for books the exact-case pass missed.
	for _, r := range rank.RankFindNormalizedFold(query, targets) {
		if matched[r.OriginalIndex] {
			continue
		}
		matches = append(matches, Match{
			Book:  books[r.OriginalIndex],
			Score: 1000 + r.Distance,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score < matches[j].Score
	})
	return matches
}
