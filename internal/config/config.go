// Package config provides configuration loading and resolution for daybook.
//
// A run's settings come from three layers, highest precedence first:
//
//  1. Command-line flags
//  2. The YAML config file
//  3. Built-in defaults
//
// The two list-valued keys, ignore_tags and status_tags, are an
// exception: values from the flags and the file are unioned instead of
// overridden, so a config file can pin a base set and a flag can extend
// it for one run.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// HeaderFields lists the known metadata header fields, in their default
// render order.
var HeaderFields = []string{"created", "place", "lat", "lon", "weather", "journal", "favorite", "url"}

// Config is the fully-resolved settings snapshot consumed read-only by
// the conversion pipeline.
type Config struct {
	// VaultDirectory is the target vault root. Empty means the export
	// folder itself doubles as the vault (the converted files live next
	// to the source export).
	VaultDirectory string `yaml:"vault_directory"`

	// YAML promotes the entry header to a document-level YAML
	// frontmatter block instead of inline key:: value lines.
	YAML bool `yaml:"yaml"`

	// YAMLFields selects and orders the header fields. Matching is
	// case-insensitive. Empty means all fields.
	YAMLFields []string `yaml:"yaml_fields"`

	// MergeEntries combines entries sharing a calendar date into one file.
	MergeEntries bool `yaml:"merge_entries"`

	// EntriesSeparator is the literal string placed between merged
	// entry bodies.
	EntriesSeparator string `yaml:"entries_separator"`

	// ConvertLinks rewrites dayone://view?entryId= links into [[wiki links]].
	ConvertLinks bool `yaml:"convert_links"`

	// TagsPrefix overrides the journal-name namespace for rendered
	// tags. Empty means tags are namespaced by the journal name.
	TagsPrefix string `yaml:"tags_prefix"`

	// IgnoreTags lists export tags that are dropped during rendering.
	IgnoreTags []string `yaml:"ignore_tags"`

	// StatusTags lists tags rendered under the fixed #status/ namespace.
	StatusTags []string `yaml:"status_tags"`

	// Metadata holds extra fields and tags appended to every entry.
	Metadata Metadata `yaml:"metadata"`
}

// Metadata is the config file's nested metadata section: arbitrary
// extra header fields plus tags added to every entry.
type Metadata struct {
	Fields map[string]Value `yaml:"fields"`
	Tags   []string         `yaml:"tags"`
}

// Default returns a Config populated with built-in defaults.
func Default() *Config {
	return &Config{
		// Merged bodies are joined with the separator verbatim, so the
		// default carries its own surrounding blank lines.
		EntriesSeparator: "\n\n---\n---\n\n",
	}
}

// Validate checks the resolved configuration.
// Returns an error describing the first invalid value.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.EntriesSeparator, validation.Required.Error("entries_separator cannot be empty")),
		validation.Field(&c.YAMLFields, validation.Each(validation.In(headerFieldValues()...))),
	); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// headerFieldValues returns HeaderFields as []interface{} for validation.In.
func headerFieldValues() []interface{} {
	values := make([]interface{}, len(HeaderFields))
	for i, f := range HeaderFields {
		values[i] = f
	}
	return values
}

// LoadFile loads a YAML config file into target with environment
// variable expansion. Unknown keys are rejected so a typoed key fails
// the run instead of being silently ignored. Validation happens later,
// on the fully-resolved configuration.
func LoadFile(filename string, target *Config) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	expanded := os.ExpandEnv(string(data))

	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	return nil
}
