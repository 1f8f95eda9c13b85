package config

import (
	"sort"
	"strings"
)

// Overrides carries the command-line values for one run. A nil pointer
// field means the flag was not set and the config file (or default)
// value stands. List fields are always unioned, never overridden.
type Overrides struct {
	VaultDirectory   *string
	YAML             *bool
	YAMLFields       []string
	MergeEntries     *bool
	EntriesSeparator *string
	ConvertLinks     *bool
	TagsPrefix       *string
	IgnoreTags       []string
	StatusTags       []string
}

// Resolve merges defaults, an optional config file, and command-line
// overrides into one validated Config.
//
// Precedence is flags > file > defaults for scalar keys. ignore_tags
// and status_tags are the union of file and flag values.
func Resolve(configFile string, overrides Overrides) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := LoadFile(configFile, cfg); err != nil {
			return nil, err
		}
	}

	applyOverrides(cfg, overrides)
	normalize(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyOverrides copies set flag values over the file/default values.
func applyOverrides(cfg *Config, o Overrides) {
	if o.VaultDirectory != nil {
		cfg.VaultDirectory = *o.VaultDirectory
	}
	if o.YAML != nil {
		cfg.YAML = *o.YAML
	}
	if len(o.YAMLFields) > 0 {
		cfg.YAMLFields = o.YAMLFields
	}
	if o.MergeEntries != nil {
		cfg.MergeEntries = *o.MergeEntries
	}
	if o.EntriesSeparator != nil {
		cfg.EntriesSeparator = *o.EntriesSeparator
	}
	if o.ConvertLinks != nil {
		cfg.ConvertLinks = *o.ConvertLinks
	}
	if o.TagsPrefix != nil {
		cfg.TagsPrefix = *o.TagsPrefix
	}

	cfg.IgnoreTags = unionTags(cfg.IgnoreTags, o.IgnoreTags)
	cfg.StatusTags = unionTags(cfg.StatusTags, o.StatusTags)
}

// unionTags merges two tag lists, dropping duplicates and empty
// strings. The result is sorted so the resolved snapshot is
// deterministic regardless of source order.
func unionTags(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var merged []string
	for _, tag := range append(append([]string{}, a...), b...) {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		merged = append(merged, tag)
	}
	sort.Strings(merged)
	return merged
}

// normalize lowercases the header field selection so matching is
// case-insensitive downstream.
func normalize(cfg *Config) {
	for i, f := range cfg.YAMLFields {
		cfg.YAMLFields[i] = strings.ToLower(strings.TrimSpace(f))
	}
}
