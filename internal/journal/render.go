package journal

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/seradine/daybook/internal/config"
)

// headerField is one rendered metadata header line.
type headerField struct {
	Name  string
	Value string
	// List carries multi-valued fields (tags) for frontmatter mode,
	// where they render as a YAML sequence instead of a joined string.
	List []string
}

// Render produces the markdown document for an entry. The body is
// passed separately because attachment and link rewriting (and merging)
// happen on body text before rendering.
//
// Rendering is pure: identical entry, body, and configuration always
// produce byte-identical output.
func Render(e *Entry, body string, cfg *config.Config) string {
	fields := headerFields(e, cfg)

	var b strings.Builder
	if cfg.YAML {
		writeFrontmatter(&b, fields)
	} else {
		writeInlineHeader(&b, fields)
	}

	b.WriteString(body)
	b.WriteString("\n\n%%\nuuid:: ")
	b.WriteString(e.UUID)
	b.WriteString("\n%%\n")
	return b.String()
}

// headerFields computes the ordered header for an entry: the selected
// built-in fields, extra fields from configuration, then tags. Fields
// without a value are omitted.
func headerFields(e *Entry, cfg *config.Config) []headerField {
	selected := cfg.YAMLFields
	if len(selected) == 0 {
		selected = config.HeaderFields
	}

	var fields []headerField
	for _, name := range selected {
		if value := builtinField(e, name); value != "" {
			fields = append(fields, headerField{Name: name, Value: value})
		}
	}

	if len(cfg.Metadata.Fields) > 0 {
		extra := config.MapValue(cfg.Metadata.Fields)
		for _, key := range extra.Keys() {
			fields = append(fields, headerField{Name: key, Value: cfg.Metadata.Fields[key].String()})
		}
	}

	if tags := RenderTags(e, cfg); len(tags) > 0 {
		fields = append(fields, headerField{
			Name:  "tags",
			Value: strings.Join(tags, ", "),
			List:  tags,
		})
	}

	return fields
}

// builtinField renders one built-in header field, already lowercased by
// config resolution. Unknown names render empty and are dropped.
func builtinField(e *Entry, name string) string {
	switch name {
	case "created":
		return e.CreationDate.Format("2006-01-02 15:04:05")
	case "place":
		if e.Location != nil {
			return strings.Join(e.Location.Places(), ", ")
		}
	case "lat":
		if e.Location != nil && e.Location.Latitude != nil {
			return strconv.FormatFloat(*e.Location.Latitude, 'f', -1, 64)
		}
	case "lon":
		if e.Location != nil && e.Location.Longitude != nil {
			return strconv.FormatFloat(*e.Location.Longitude, 'f', -1, 64)
		}
	case "weather":
		if e.Weather != nil {
			return e.Weather.String()
		}
	case "journal":
		return e.Journal
	case "favorite":
		if e.Starred {
			return "true"
		}
	case "url":
		return e.URL()
	}
	return ""
}

// writeInlineHeader writes the header as key:: value lines followed by
// a blank line.
func writeInlineHeader(b *strings.Builder, fields []headerField) {
	if len(fields) == 0 {
		return
	}
	for _, f := range fields {
		fmt.Fprintf(b, "%s:: %s\n", f.Name, f.Value)
	}
	b.WriteString("\n")
}

// writeFrontmatter writes the header as a YAML frontmatter block. The
// document is built as an explicit mapping node so field order follows
// the configured selection instead of yaml's alphabetical map order.
func writeFrontmatter(b *strings.Builder, fields []headerField) {
	if len(fields) == 0 {
		return
	}

	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: f.Name}
		var value *yaml.Node
		if f.List != nil {
			value = &yaml.Node{Kind: yaml.SequenceNode}
			for _, item := range f.List {
				value.Content = append(value.Content, &yaml.Node{
					Kind: yaml.ScalarNode,
					// Frontmatter tags carry no # marker.
					Value: strings.TrimPrefix(item, "#"),
				})
			}
		} else {
			value = &yaml.Node{Kind: yaml.ScalarNode, Value: f.Value}
		}
		mapping.Content = append(mapping.Content, key, value)
	}

	b.WriteString("---\n")
	enc := yaml.NewEncoder(b)
	enc.SetIndent(2)
	// Encoding scalar nodes cannot fail; the target is an in-memory buffer.
	_ = enc.Encode(mapping)
	_ = enc.Close()
	b.WriteString("---\n\n")
}
