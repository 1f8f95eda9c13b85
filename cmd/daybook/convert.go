// Package main provides the entry point for the daybook CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/seradine/daybook/internal/config"
	"github.com/seradine/daybook/internal/export"
	"github.com/seradine/daybook/internal/output"
)

// convertFlags holds the raw flag values for the convert command.
type convertFlags struct {
	configFile       string
	vaultDirectory   string
	yaml             bool
	yamlFields       []string
	mergeEntries     bool
	entriesSeparator string
	convertLinks     bool
	tagsPrefix       string
	ignoreTags       []string
	statusTags       []string
	verbose          int
}

// newConvertCmd creates the convert command.
func newConvertCmd() *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert <folder>",
		Short: "Convert the Day One exports in a folder",
		Long: `Convert every unprocessed Day One JSON export in <folder> into markdown
files. Each journal ends up in a sub-folder named after its export file
(Admin.json -> admin/), organized by year and month. Unless
--vault is set, the folder itself becomes the vault, so an existing
vault is never modified by accident.

Flag values override the config file; ignore/status tag lists from both
sources are combined.

Examples:
  daybook convert ~/export                          # Inline metadata headers
  daybook convert ~/export --yaml --convert-links   # Frontmatter + [[links]]
  daybook convert ~/export --merge-entries -s $'\n---\n'
  daybook convert ~/export --config daybook.yaml --vault ~/vault`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configFile, "config", "c", "", "Path to a daybook.yaml config file")
	cmd.Flags().StringVar(&flags.vaultDirectory, "vault", "", "Vault root to write into (default: the export folder)")
	cmd.Flags().BoolVar(&flags.yaml, "yaml", false, "Render the metadata header as YAML frontmatter")
	cmd.Flags().StringSliceVar(&flags.yamlFields, "yaml-fields", nil, "Header fields to render, in order (default: all)")
	cmd.Flags().BoolVar(&flags.mergeEntries, "merge-entries", false, "Combine entries sharing a calendar date into one file")
	cmd.Flags().StringVarP(&flags.entriesSeparator, "entries-separator", "s", "", "Separator between merged entry bodies")
	cmd.Flags().BoolVar(&flags.convertLinks, "convert-links", false, "Replace internal entry links with [[wiki links]]")
	cmd.Flags().StringVar(&flags.tagsPrefix, "tags-prefix", "", "Tag namespace override (default: the journal name)")
	cmd.Flags().StringSliceVar(&flags.ignoreTags, "ignore-tags", nil, "Tags to drop during rendering")
	cmd.Flags().StringSliceVar(&flags.statusTags, "status-tags", nil, "Tags to render under the #status/ namespace")
	cmd.Flags().CountVarP(&flags.verbose, "verbose", "v", "Turn on verbose progress output (repeat for more)")

	return cmd
}

// runConvert executes the convert command.
func runConvert(cmd *cobra.Command, folder string, flags convertFlags) error {
	isTTY := output.ResolveColorMode(colorMode(cmd), output.IsTTY(cmd.OutOrStdout()))
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), isTTY).
		WithStderr(cmd.ErrOrStderr()).
		WithVerbosity(flags.verbose)

	cfg, err := resolveConfig(cmd, folder, flags)
	if err != nil {
		userErr := output.NewUserError(err.Error())
		printer.Error(userErr)
		return userErr
	}

	report := &output.Report{}
	driver := export.New(cfg, printer, report)

	summary, err := driver.Run(folder)
	if err != nil {
		printer.Error(err)
		return err
	}

	report.Summarize(printer)

	return printer.Success(map[string]any{
		"message":     fmt.Sprintf("Done. %d entries from %d journals exported to '%s'.", summary.Entries, summary.Journals, vaultRoot(cfg, folder)),
		"journals":    summary.Journals,
		"entries":     summary.Entries,
		"files":       summary.Files,
		"attachments": summary.Attachments,
	})
}

// resolveConfig merges flags, the config file, and defaults. Only flags
// the user actually set override file values; the tag lists are always
// unioned.
func resolveConfig(cmd *cobra.Command, folder string, flags convertFlags) (*config.Config, error) {
	overrides := config.Overrides{
		YAMLFields: flags.yamlFields,
		IgnoreTags: flags.ignoreTags,
		StatusTags: flags.statusTags,
	}
	if cmd.Flags().Changed("vault") {
		overrides.VaultDirectory = &flags.vaultDirectory
	}
	if cmd.Flags().Changed("yaml") {
		overrides.YAML = &flags.yaml
	}
	if cmd.Flags().Changed("merge-entries") {
		overrides.MergeEntries = &flags.mergeEntries
	}
	if cmd.Flags().Changed("entries-separator") {
		overrides.EntriesSeparator = &flags.entriesSeparator
	}
	if cmd.Flags().Changed("convert-links") {
		overrides.ConvertLinks = &flags.convertLinks
	}
	if cmd.Flags().Changed("tags-prefix") {
		overrides.TagsPrefix = &flags.tagsPrefix
	}

	return config.Resolve(findConfigFile(flags.configFile, folder), overrides)
}

// findConfigFile picks the config file for a run: the --config flag if
// set, else daybook.yaml next to the exports, else the global config
// directory. Returns empty when no file exists (defaults apply).
func findConfigFile(flagValue, folder string) string {
	if flagValue != "" {
		return flagValue
	}
	for _, candidate := range []string{
		filepath.Join(folder, "daybook.yaml"),
		filepath.Join(config.Dir(), "daybook.yaml"),
	} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// vaultRoot reports where output landed, for the completion message.
func vaultRoot(cfg *config.Config, folder string) string {
	if cfg.VaultDirectory != "" {
		return cfg.VaultDirectory
	}
	return folder
}
