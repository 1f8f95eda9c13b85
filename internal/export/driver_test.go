package export

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seradine/daybook/internal/config"
	"github.com/seradine/daybook/internal/output"
)

const twoEntryExport = `{
  "entries": [
    {
      "uuid": "AAA1",
      "creationDate": "2024-03-09T09:00:00Z",
      "timeZone": "UTC",
      "text": "First entry."
    },
    {
      "uuid": "BBB2",
      "creationDate": "2024-03-09T18:00:00Z",
      "timeZone": "UTC",
      "text": "Second entry."
    }
  ]
}`

// testDriver builds a Driver writing all output into io.Discard.
func testDriver(cfg *config.Config) (*Driver, *output.Report) {
	report := &output.Report{}
	printer := output.NewPrinter(io.Discard, false, false)
	return New(cfg, printer, report), report
}

// writeExport drops an export file into a fresh temp folder.
func writeExport(t *testing.T, name, content string) string {
	t.Helper()
	folder := t.TempDir()
	if err := os.WriteFile(filepath.Join(folder, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing export: %v", err)
	}
	return folder
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestDriver_Run(t *testing.T) {
	folder := writeExport(t, "Admin.json", twoEntryExport)
	driver, report := testDriver(config.Default())

	summary, err := driver.Run(folder)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if summary.Journals != 1 || summary.Entries != 2 || summary.Files != 2 {
		t.Errorf("summary = %+v, want 1 journal, 2 entries, 2 files", summary)
	}
	if !report.Empty() {
		t.Errorf("unexpected warnings: %v", report.Warnings())
	}

	// Same-day entries get alphabetic suffixes in chronological order.
	first := readFile(t, filepath.Join(folder, "admin", "2024", "2024-03", "2024-03-09.md"))
	if !strings.Contains(first, "First entry.") {
		t.Errorf("first file body:\n%s", first)
	}
	second := readFile(t, filepath.Join(folder, "admin", "2024", "2024-03", "2024-03-09a.md"))
	if !strings.Contains(second, "Second entry.") {
		t.Errorf("second file body:\n%s", second)
	}

	// The export is renamed with a counter prefix.
	if _, err := os.Stat(filepath.Join(folder, "1-Admin.json")); err != nil {
		t.Errorf("export not marked processed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(folder, "Admin.json")); !os.IsNotExist(err) {
		t.Errorf("original export still present: %v", err)
	}
}

func TestDriver_Run_MergesSameDay(t *testing.T) {
	folder := writeExport(t, "Admin.json", twoEntryExport)
	cfg := config.Default()
	cfg.MergeEntries = true
	cfg.EntriesSeparator = "\n---\n"
	driver, _ := testDriver(cfg)

	summary, err := driver.Run(folder)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if summary.Entries != 2 || summary.Files != 1 {
		t.Errorf("summary = %+v, want 2 entries in 1 file", summary)
	}

	content := readFile(t, filepath.Join(folder, "admin", "2024", "2024-03", "2024-03-09.md"))
	if !strings.Contains(content, "First entry.\n---\nSecond entry.") {
		t.Errorf("merged body joined wrong:\n%s", content)
	}
	if _, err := os.Stat(filepath.Join(folder, "admin", "2024", "2024-03", "2024-03-09a.md")); !os.IsNotExist(err) {
		t.Error("suffixed file written despite merging")
	}
}

func TestDriver_Run_ConvertsLinks(t *testing.T) {
	exportJSON := `{
	  "entries": [
	    {"uuid": "AAA1B2C3D4E5F601", "creationDate": "2024-03-09T09:00:00Z", "text": "Origin."},
	    {"uuid": "BBB2C3D4E5F60172", "creationDate": "2024-03-10T09:00:00Z",
	     "text": "See [yesterday](dayone://view?entryId=AAA1B2C3D4E5F601) and [gone](dayone://view?entryId=FFFFFFFFFFFFFFFF)."}
	  ]
	}`
	folder := writeExport(t, "Admin.json", exportJSON)
	cfg := config.Default()
	cfg.ConvertLinks = true
	driver, _ := testDriver(cfg)

	if _, err := driver.Run(folder); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	content := readFile(t, filepath.Join(folder, "admin", "2024", "2024-03", "2024-03-10.md"))
	if !strings.Contains(content, "[[2024-03-09|yesterday]]") {
		t.Errorf("known link not converted:\n%s", content)
	}
	if !strings.Contains(content, "[gone](dayone://view?entryId=FFFFFFFFFFFFFFFF)") {
		t.Errorf("unknown link not preserved:\n%s", content)
	}
}

func TestDriver_Run_CopiesAttachments(t *testing.T) {
	exportJSON := `{
	  "entries": [
	    {"uuid": "AAA1", "creationDate": "2024-03-09T09:00:00Z",
	     "text": "![](dayone-moment://F00D)",
	     "photos": [{"identifier": "F00D", "md5": "cafe01", "type": "jpeg"}]}
	  ]
	}`
	folder := writeExport(t, "Admin.json", exportJSON)
	if err := os.MkdirAll(filepath.Join(folder, "photos"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(folder, "photos", "cafe01.jpeg"), []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}

	driver, report := testDriver(config.Default())
	summary, err := driver.Run(folder)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if summary.Attachments != 1 {
		t.Errorf("summary.Attachments = %d, want 1", summary.Attachments)
	}
	if got := readFile(t, filepath.Join(folder, "photos", "F00D.jpeg")); got != "img" {
		t.Errorf("copied attachment content = %q", got)
	}
	if !report.Empty() {
		t.Errorf("unexpected warnings: %v", report.Warnings())
	}

	content := readFile(t, filepath.Join(folder, "admin", "2024", "2024-03", "2024-03-09.md"))
	if !strings.Contains(content, "![[F00D.jpeg]]") {
		t.Errorf("marker not rewritten:\n%s", content)
	}
}

func TestDriver_Run_MissingAttachmentFileWarns(t *testing.T) {
	exportJSON := `{
	  "entries": [
	    {"uuid": "AAA1", "creationDate": "2024-03-09T09:00:00Z",
	     "text": "x",
	     "photos": [{"identifier": "F00D", "md5": "cafe01", "type": "jpeg"}]}
	  ]
	}`
	folder := writeExport(t, "Admin.json", exportJSON)
	driver, report := testDriver(config.Default())

	summary, err := driver.Run(folder)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if summary.Attachments != 0 {
		t.Errorf("summary.Attachments = %d, want 0", summary.Attachments)
	}
	if report.Empty() {
		t.Error("expected a missing-file warning")
	}
}

func TestDriver_Run_ProcessedFolderIsNoOp(t *testing.T) {
	folder := writeExport(t, "Admin.json", twoEntryExport)
	driver, _ := testDriver(config.Default())

	if _, err := driver.Run(folder); err != nil {
		t.Fatalf("first Run() error: %v", err)
	}

	summary, err := driver.Run(folder)
	if err != nil {
		t.Fatalf("second Run() error: %v", err)
	}
	if summary.Journals != 0 || summary.Entries != 0 {
		t.Errorf("second run summary = %+v, want no work", summary)
	}
}

func TestDriver_Run_MalformedExportIsFatal(t *testing.T) {
	folder := writeExport(t, "Admin.json", `{"entries": [`)
	// Pre-existing output that a failed run must not destroy.
	kept := filepath.Join(folder, "admin", "keep.md")
	if err := os.MkdirAll(filepath.Dir(kept), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(kept, []byte("prior"), 0o644); err != nil {
		t.Fatal(err)
	}

	driver, _ := testDriver(config.Default())
	_, err := driver.Run(folder)
	if err == nil {
		t.Fatal("Run() expected error for malformed export")
	}
	if got := output.GetExitCode(err); got != output.ExitSystemError {
		t.Errorf("exit code = %d, want %d", got, output.ExitSystemError)
	}

	if got := readFile(t, kept); got != "prior" {
		t.Error("prior output destroyed by failed run")
	}
	// A failed export stays unmarked for the next attempt.
	if _, err := os.Stat(filepath.Join(folder, "Admin.json")); err != nil {
		t.Errorf("failed export renamed: %v", err)
	}
}

func TestDriver_Run_ClearsStaleOutput(t *testing.T) {
	folder := writeExport(t, "Admin.json", twoEntryExport)
	stale := filepath.Join(folder, "admin", "2023", "2023-01", "2023-01-01.md")
	if err := os.MkdirAll(filepath.Dir(stale), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	driver, _ := testDriver(config.Default())
	if _, err := driver.Run(folder); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale journal output survived the run")
	}
}

func TestDriver_Run_VaultDirectory(t *testing.T) {
	folder := writeExport(t, "Admin.json", twoEntryExport)
	vault := t.TempDir()
	cfg := config.Default()
	cfg.VaultDirectory = vault
	driver, _ := testDriver(cfg)

	if _, err := driver.Run(folder); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(vault, "admin", "2024", "2024-03", "2024-03-09.md")); err != nil {
		t.Errorf("entry not written under vault root: %v", err)
	}
	if _, err := os.Stat(filepath.Join(folder, "admin")); !os.IsNotExist(err) {
		t.Error("journal folder created next to export despite vault_directory")
	}
}

func TestJournalName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/exports/Admin.json", want: "admin"},
		{path: "Dream Journal.json", want: "dream journal"},
	}

	for _, tt := range tests {
		if got := journalName(tt.path); got != tt.want {
			t.Errorf("journalName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
