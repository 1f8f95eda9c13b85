package convert

import (
	"sort"
	"strings"

	"github.com/seradine/daybook/internal/journal"
)

// MergeByDay groups entries sharing a calendar date (in each entry's
// local time zone) and combines every multi-entry group into one
// composite entry: bodies concatenated in chronological order, joined
// with separator verbatim, carrying the earliest entry's metadata.
// Single-entry groups pass through unchanged.
//
// The returned slice is ordered chronologically by group. The input is
// not modified.
func MergeByDay(entries []*journal.Entry, separator string) []*journal.Entry {
	ordered := make([]*journal.Entry, len(entries))
	copy(ordered, entries)
	// Stable: entries with identical timestamps keep document order.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreationDate.Before(ordered[j].CreationDate)
	})

	var merged []*journal.Entry
	groups := make(map[string]int)
	for _, e := range ordered {
		day := e.Day()
		idx, seen := groups[day]
		if !seen {
			groups[day] = len(merged)
			merged = append(merged, e)
			continue
		}
		merged[idx] = combine(merged[idx], e, separator)
	}

	return merged
}

// combine appends the later entry's body to the group's composite. The
// composite keeps the earliest entry's metadata fields.
func combine(earliest, later *journal.Entry, separator string) *journal.Entry {
	composite := *earliest
	composite.Text = strings.Join([]string{earliest.Text, later.Text}, separator)
	return &composite
}
