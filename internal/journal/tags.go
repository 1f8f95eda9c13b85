package journal

import (
	"strings"
	"unicode"

	"github.com/seradine/daybook/internal/config"
)

// StatusNamespace is the fixed namespace for configured status tags.
const StatusNamespace = "status"

// PlacesNamespace is the namespace for the derived location tag.
const PlacesNamespace = "places"

// starredTag marks starred entries.
const starredTag = "#❤"

// CapWords capitalizes the first letter of each space-separated word
// and joins the words without separators: "original tag" -> "OriginalTag".
func CapWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		head := unicode.ToUpper(runes[0])
		tail := strings.ToLower(string(runes[1:]))
		words[i] = string(head) + tail
	}
	return strings.Join(words, "")
}

// FormatTag renders one export tag as a hierarchical vault tag token:
// #<namespace>/<CapWords(tag)>.
//
// Formatting is idempotent: a tag that already carries the # marker is
// returned unchanged, so re-rendering never double-prefixes.
func FormatTag(namespace, tag string) string {
	if strings.HasPrefix(tag, "#") {
		return tag
	}
	return "#" + namespace + "/" + CapWords(tag)
}

// RenderTags produces an entry's full tag token list:
//
//   - export tags, namespaced by the journal name (or the configured
//     tags_prefix override), minus the ignore list
//   - configured status tags under the fixed status namespace
//   - a places tag derived from the location, country first
//   - a heart marker for starred entries
//   - extra tags from the config metadata section
func RenderTags(e *Entry, cfg *config.Config) []string {
	namespace := tagNamespace(e, cfg)
	ignore := make(map[string]bool, len(cfg.IgnoreTags))
	for _, t := range cfg.IgnoreTags {
		ignore[t] = true
	}
	status := make(map[string]bool, len(cfg.StatusTags))
	for _, t := range cfg.StatusTags {
		status[t] = true
	}

	var tags []string
	for _, tag := range e.Tags {
		if ignore[tag] {
			continue
		}
		if status[tag] {
			tags = append(tags, FormatTag(StatusNamespace, tag))
			continue
		}
		tags = append(tags, FormatTag(namespace, tag))
	}

	if tag := placesTag(e.Location); tag != "" {
		tags = append(tags, tag)
	}

	if e.Starred {
		tags = append(tags, starredTag)
	}

	for _, tag := range cfg.Metadata.Tags {
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		tags = append(tags, tag)
	}

	return tags
}

// tagNamespace returns the namespace for ordinary tags: the configured
// tags_prefix when set, else the journal name.
func tagNamespace(e *Entry, cfg *config.Config) string {
	if cfg.TagsPrefix != "" {
		return strings.Trim(cfg.TagsPrefix, "#/")
	}
	return strings.ToLower(e.Journal)
}

// placesTag derives a hierarchical location tag, broadest component
// first, so places nest naturally in the vault's tag pane:
// #places/Country/Area/Locality.
func placesTag(loc *Location) string {
	if loc == nil {
		return ""
	}
	places := loc.Places()
	if len(places) < 2 {
		return ""
	}
	// Reverse, excluding the most specific component (the venue name).
	var parts []string
	for i := len(places) - 1; i >= 1; i-- {
		parts = append(parts, CapWords(places[i]))
	}
	return "#" + PlacesNamespace + "/" + strings.Join(parts, "/")
}
