package convert

import (
	"regexp"
	"strings"
)

// internalLink matches a Day One internal entry link:
// [link text](dayone://view?entryId=UUID), with the legacy dayone2
// scheme accepted as well. The identifier is the trailing hex run, so
// query parameter spelling differences don't matter.
var internalLink = regexp.MustCompile(`\[(.*?)\]\(dayone2?://.*?([A-F0-9]+)\)`)

// LinkConverter rewrites internal entry links into note references.
type LinkConverter struct {
	files map[string]string
}

// NewLinkConverter creates a converter from the uuid -> derived file
// name mapping of the current export.
func NewLinkConverter(files map[string]string) *LinkConverter {
	return &LinkConverter{files: files}
}

// Rewrite replaces each internal link to a known entry with a
// [[file|link text]] note reference. Links to unknown identifiers
// (entries outside this export, e.g. cross-journal links) are left
// byte-identical.
func (c *LinkConverter) Rewrite(body string) string {
	return internalLink.ReplaceAllStringFunc(body, func(match string) string {
		groups := internalLink.FindStringSubmatch(match)
		text, uuid := groups[1], groups[2]
		file, ok := c.files[uuid]
		if !ok {
			return match
		}
		name := strings.TrimSuffix(file, ".md")
		return "[[" + name + "|" + text + "]]"
	})
}
