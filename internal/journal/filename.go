package journal

import "path/filepath"

// FileName derives the output file name for an entry's calendar day and
// its same-day ordinal. The first entry of a day gets the plain date
// name; later ones (when merging is off) get an alphabetic suffix:
//
//	2024-03-09.md, 2024-03-09a.md, 2024-03-09b.md, ...
func FileName(day string, ordinal int) string {
	if ordinal == 0 {
		return day + ".md"
	}
	return day + string(rune('a'+ordinal-1)) + ".md"
}

// SubDir returns the year/year-month directory an entry's file lives
// in, relative to the journal's output directory.
func SubDir(e *Entry) string {
	return filepath.Join(e.CreationDate.Format("2006"), e.CreationDate.Format("2006-01"))
}
