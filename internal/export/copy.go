package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/seradine/daybook/internal/journal"
	"github.com/seradine/daybook/internal/output"
)

// copyAttachments copies every manifest attachment from the export's
// media folders into kind-named subdirectories under the vault root,
// renaming from md5 to identifier so bodies can embed them. Files
// already present at the destination are skipped, as are source files
// missing from the export (reported, not fatal).
func (d *Driver) copyAttachments(manifest *journal.Manifest, folder, vaultRoot string) (int, error) {
	copied := 0
	for _, kind := range journal.Kinds {
		atts := manifest.Attachments(kind)
		if len(atts) == 0 {
			continue
		}

		targetDir := filepath.Join(vaultRoot, kind.SourceDir())
		if err := os.MkdirAll(targetDir, 0o755); err != nil {
			return copied, output.NewSystemErrorWithCause(fmt.Sprintf("failed to create %s", targetDir), err)
		}

		for _, att := range atts {
			source := filepath.Join(folder, kind.SourceDir(), att.SourceName())
			target := filepath.Join(targetDir, att.TargetName())

			if _, err := os.Stat(target); err == nil {
				continue
			}
			if _, err := os.Stat(source); err != nil {
				d.report.Warnf("%s attachment file %s missing from export", kind, att.SourceName())
				continue
			}

			if err := copyFile(source, target); err != nil {
				return copied, output.NewSystemErrorWithCause(fmt.Sprintf("failed to copy %s", source), err)
			}
			d.printer.Verbose(2, "Copied %s to %s", source, target)
			copied++
		}
	}
	return copied, nil
}

// copyFile copies a single file's contents. Media files are copied,
// not moved, so the source export folder stays intact.
func copyFile(source, target string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // best-effort close on read-only file

	out, err := os.Create(target)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close() //nolint:errcheck,gosec // write error takes precedence
		return err
	}
	return out.Close()
}
