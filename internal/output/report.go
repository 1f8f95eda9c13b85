package output

import "fmt"

// Report accumulates non-fatal problems encountered during a conversion
// run: skipped entries and attachment references that could not be
// resolved. Fatal errors abort the run and never land here.
type Report struct {
	warnings []string
	skipped  int
	misses   int
}

// Warnf records a generic warning.
func (r *Report) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

// SkipEntry records an entry that failed to render and was skipped.
func (r *Report) SkipEntry(uuid string, err error) {
	r.skipped++
	r.warnings = append(r.warnings, fmt.Sprintf("entry %s skipped: %v", uuid, err))
}

// MissAttachment records an attachment reference that was not found in
// the export's manifest. The original marker is left in the body.
func (r *Report) MissAttachment(kind, identifier string) {
	r.misses++
	r.warnings = append(r.warnings, fmt.Sprintf("%s attachment %s not found in export, reference left as-is", kind, identifier))
}

// Warnings returns the accumulated warning messages in order.
func (r *Report) Warnings() []string {
	return r.warnings
}

// SkippedEntries returns the number of entries skipped.
func (r *Report) SkippedEntries() int {
	return r.skipped
}

// Empty returns true when the run produced no warnings.
func (r *Report) Empty() bool {
	return len(r.warnings) == 0
}

// Summarize writes the accumulated warnings through the printer.
// No output when the report is empty.
func (r *Report) Summarize(p *Printer) {
	if r.Empty() {
		return
	}
	if p.IsJSON() {
		_ = p.WriteJSON(map[string]any{
			"warnings":        r.warnings,
			"skipped_entries": r.skipped,
		})
		return
	}
	p.Section(fmt.Sprintf("%d warnings", len(r.warnings)))
	for _, w := range r.warnings {
		p.Warn("%s", w)
	}
}
