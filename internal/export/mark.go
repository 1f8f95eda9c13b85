package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/seradine/daybook/internal/output"
)

// processedName matches exports already marked processed: a numeric
// counter prefix followed by a dash.
var processedName = regexp.MustCompile(`^(\d+)-`)

// DiscoverExports returns the unprocessed JSON export files directly in
// folder, sorted by name. Exports carrying a counter prefix from a
// previous run are skipped, which makes re-running against a processed
// folder a no-op.
func DiscoverExports(folder string) ([]string, error) {
	if info, err := os.Stat(folder); err != nil || !info.IsDir() {
		return nil, output.NewUserError(fmt.Sprintf("export folder %s does not exist", folder))
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(folder, "*.json"))
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to scan export folder", err)
	}

	var exports []string
	for _, match := range matches {
		if processedName.MatchString(filepath.Base(match)) {
			continue
		}
		exports = append(exports, match)
	}
	sort.Strings(exports)
	return exports, nil
}

// MarkProcessed renames an export by prefixing the next counter value
// (Journal.json -> 1-Journal.json), so a subsequent run treats it as
// already processed. The counter increments across all processed
// exports in the folder.
//
// This is a cooperative convention, not an atomic guarantee: a crash
// between writing outputs and the rename leaves the export
// reprocessable.
func MarkProcessed(exportPath string) error {
	folder := filepath.Dir(exportPath)
	next, err := nextCounter(folder)
	if err != nil {
		return err
	}

	marked := filepath.Join(folder, fmt.Sprintf("%d-%s", next, filepath.Base(exportPath)))
	if err := os.Rename(exportPath, marked); err != nil {
		return output.NewSystemErrorWithCause(fmt.Sprintf("failed to mark %s processed", exportPath), err)
	}
	return nil
}

// nextCounter returns one more than the highest counter prefix present
// in the folder.
func nextCounter(folder string) (int, error) {
	names, err := os.ReadDir(folder)
	if err != nil {
		return 0, output.NewSystemErrorWithCause("failed to scan export folder", err)
	}

	highest := 0
	for _, entry := range names {
		m := processedName.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1, nil
}
