// Package view refines note collections for presentation: text filtering,
// tag filtering, and ordering, applied in memory after the store query.
package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/inkwellapp/inkwell-server/internal/domain"
)

// Sort identifies an ordering for a refined collection.
type Sort string

const (
	SortNewest    Sort = "newest"
	SortOldest    Sort = "oldest"
	SortTitleAsc  Sort = "title-asc"
	SortTitleDesc Sort = "title-desc"
)

// ValidSort reports whether s names a supported ordering.
func ValidSort(s Sort) bool {
	switch s {
	case SortNewest, SortOldest, SortTitleAsc, SortTitleDesc:
		return true
	}
	return false
}

// Options describes one refinement pass. Zero values are no-ops: an empty
// Search filters nothing, empty Tags filter nothing, and an empty Sort
// preserves the input order.
type Options struct {
	// Search keeps notes whose title or content contains the term,
	// case-insensitively. Tags are not consulted here; use Tags for that.
	Search string
	// Tags keeps notes carrying every listed tag.
	Tags []string
	// Sort orders the result. Ties keep their relative input order.
	Sort Sort
}

// titleCollator compares titles the way a reader would, so "apple" sorts
// next to "Apple" rather than after "Zebra".
var titleCollator = collate.New(language.English, collate.IgnoreCase)

// Refine filters and orders notes according to opts. The input slice and its
// elements are never mutated; the result is a fresh slice sharing the
// surviving elements.
func Refine(notes []*domain.Note, opts Options) []*domain.Note {
	out := make([]*domain.Note, 0, len(notes))
	term := strings.ToLower(strings.TrimSpace(opts.Search))

	for _, n := range notes {
		if term != "" && !matchesSearch(n, term) {
			continue
		}
		if !hasAllTags(n, opts.Tags) {
			continue
		}
		out = append(out, n)
	}

	sortNotes(out, opts.Sort)
	return out
}

func matchesSearch(n *domain.Note, term string) bool {
	return strings.Contains(strings.ToLower(n.Title), term) ||
		strings.Contains(strings.ToLower(n.Content), term)
}

func hasAllTags(n *domain.Note, want []string) bool {
	for _, w := range want {
		found := false
		for _, t := range n.Tags {
			if t == w {
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

func sortNotes(notes []*domain.Note, s Sort) {
	switch s {
	case SortNewest:
		sort.SliceStable(notes, func(i, j int) bool {
			return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
		})
	case SortOldest:
		sort.SliceStable(notes, func(i, j int) bool {
			return notes[i].UpdatedAt.Before(notes[j].UpdatedAt)
		})
	case SortTitleAsc:
		sort.SliceStable(notes, func(i, j int) bool {
			return titleCollator.CompareString(notes[i].Title, notes[j].Title) < 0
		})
	case SortTitleDesc:
		sort.SliceStable(notes, func(i, j int) bool {
			return titleCollator.CompareString(notes[i].Title, notes[j].Title) > 0
		})
	}
}
