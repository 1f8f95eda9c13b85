// Package export drives a conversion run: it discovers Day One JSON
// exports in a folder, converts each journal's entries to markdown
// files in the vault, copies referenced attachments, and marks each
// processed export so re-runs skip it.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/seradine/daybook/internal/config"
	"github.com/seradine/daybook/internal/convert"
	"github.com/seradine/daybook/internal/journal"
	"github.com/seradine/daybook/internal/output"
)

// Driver orchestrates one conversion run. Configuration and the
// manifest are read-only once constructed; entries flow through the
// pipeline strictly sequentially.
type Driver struct {
	cfg     *config.Config
	printer *output.Printer
	report  *output.Report
}

// Summary counts what a run produced.
type Summary struct {
	Journals    int `json:"journals"`
	Entries     int `json:"entries"`
	Files       int `json:"files"`
	Attachments int `json:"attachments"`
}

// New creates a Driver. Non-fatal problems accumulate in report.
func New(cfg *config.Config, printer *output.Printer, report *output.Report) *Driver {
	return &Driver{cfg: cfg, printer: printer, report: report}
}

// Run converts every unprocessed export in folder. A malformed or
// unreadable export is fatal and aborts the run before that journal's
// output directory is touched; per-entry problems are recorded in the
// report and skipped.
func (d *Driver) Run(folder string) (*Summary, error) {
	exports, err := DiscoverExports(folder)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, exportPath := range exports {
		if err := d.processJournal(exportPath, summary); err != nil {
			return nil, err
		}
		if err := MarkProcessed(exportPath); err != nil {
			return nil, err
		}
		summary.Journals++
	}

	return summary, nil
}

// processJournal converts one export file. The export is fully parsed
// before the journal's output directory is cleared, so a malformed
// document never destroys prior output.
func (d *Driver) processJournal(exportPath string, summary *Summary) error {
	data, err := os.ReadFile(exportPath)
	if err != nil {
		return output.NewSystemErrorWithCause(fmt.Sprintf("failed to read export %s", exportPath), err)
	}

	journalName := journalName(exportPath)
	exp, err := journal.ParseExport(data, journalName)
	if err != nil {
		return output.NewSystemErrorWithCause(fmt.Sprintf("export %s is not a valid journal export", exportPath), err)
	}

	// Progress lines are human-mode only; the JSON protocol carries just
	// warnings and the final summary.
	if !d.printer.IsJSON() {
		d.printer.Print("Begin processing entries for '%s'\n", filepath.Base(exportPath))
	}
	for _, entryErr := range exp.Errors {
		d.report.SkipEntry(entryErr.UUID, entryErr.Err)
	}

	folder := filepath.Dir(exportPath)
	vaultRoot := d.cfg.VaultDirectory
	if vaultRoot == "" {
		vaultRoot = folder
	}
	journalDir := filepath.Join(vaultRoot, journalName)

	if err := resetJournalDir(journalDir, d.printer); err != nil {
		return err
	}

	entries, names := d.preparePipeline(exp)

	written, err := d.writeEntries(entries, names, journalDir)
	if err != nil {
		return err
	}

	copied, err := d.copyAttachments(exp.Manifest, folder, vaultRoot)
	if err != nil {
		return err
	}

	summary.Entries += len(exp.Entries)
	summary.Files += written
	summary.Attachments += copied
	if !d.printer.IsJSON() {
		d.printer.Print("Complete: %d entries processed.\n", len(exp.Entries))
	}
	return nil
}

// preparePipeline runs the body transformations in their required
// order (attachments, then links, then merging) and returns the final
// entry list plus the uuid -> file name mapping.
func (d *Driver) preparePipeline(exp *journal.Export) ([]*journal.Entry, map[string]string) {
	resolver := convert.NewAttachmentResolver(exp.Manifest, d.report)
	for _, e := range exp.Entries {
		e.Text = resolver.Rewrite(e.Text)
	}

	names := d.assignFileNames(exp.Entries)

	if d.cfg.ConvertLinks {
		d.printer.Verbose(1, "Converting internal links to note references")
		links := convert.NewLinkConverter(names)
		for _, e := range exp.Entries {
			e.Text = links.Rewrite(e.Text)
		}
	}

	entries := exp.Entries
	if d.cfg.MergeEntries {
		entries = convert.MergeByDay(entries, d.cfg.EntriesSeparator)
	}
	return entries, names
}

// assignFileNames derives each entry's output file name. When merging,
// all entries of a day share the plain date name; otherwise later
// same-day entries get alphabetic suffixes in chronological order.
func (d *Driver) assignFileNames(entries []*journal.Entry) map[string]string {
	ordered := make([]*journal.Entry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreationDate.Before(ordered[j].CreationDate)
	})

	names := make(map[string]string, len(ordered))
	perDay := make(map[string]int)
	for _, e := range ordered {
		day := e.Day()
		ordinal := perDay[day]
		perDay[day]++
		if d.cfg.MergeEntries {
			ordinal = 0
		}
		names[e.UUID] = journal.FileName(day, ordinal)
	}
	return names
}

// writeEntries renders and writes the final entries. A single entry's
// write failure is reported and skipped; the run continues.
func (d *Driver) writeEntries(entries []*journal.Entry, names map[string]string, journalDir string) (int, error) {
	written := 0
	for _, e := range entries {
		dir := filepath.Join(journalDir, journal.SubDir(e))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return written, output.NewSystemErrorWithCause(fmt.Sprintf("failed to create %s", dir), err)
		}

		content := journal.Render(e, e.Text, d.cfg)
		target := filepath.Join(dir, names[e.UUID])
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			d.report.SkipEntry(e.UUID, err)
			continue
		}
		d.printer.Verbose(2, "Wrote %s", target)
		written++
	}
	return written, nil
}

// resetJournalDir clears and recreates a journal's output directory.
// Destructive: prior contents are removed, which is why processed
// exports are renamed afterward to prevent accidental double-runs.
func resetJournalDir(journalDir string, printer *output.Printer) error {
	if _, err := os.Stat(journalDir); err == nil {
		printer.Verbose(1, "Deleting existing folder: %s", journalDir)
		if err := os.RemoveAll(journalDir); err != nil {
			return output.NewSystemErrorWithCause(fmt.Sprintf("failed to clear %s", journalDir), err)
		}
	}
	if err := os.MkdirAll(journalDir, 0o755); err != nil {
		return output.NewSystemErrorWithCause(fmt.Sprintf("failed to create %s", journalDir), err)
	}
	return nil
}

// journalName returns the journal's output directory name for an
// export file: the lowercased file stem (Admin.json -> admin).
func journalName(exportPath string) string {
	base := filepath.Base(exportPath)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
