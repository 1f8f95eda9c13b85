// Package convert provides the body-text transformations of the
// conversion pipeline: attachment resolution, internal link conversion,
// and same-day entry merging.
//
// Order matters: attachment markers are resolved first, then internal
// links, then merging; rendering happens last. Attachment markers use a
// dayone-moment: scheme and link markers a dayone: scheme, but both sit
// in markdown link syntax, so running link conversion first could eat
// half-rewritten attachment markers.
package convert

import (
	"regexp"

	"github.com/seradine/daybook/internal/journal"
	"github.com/seradine/daybook/internal/output"
)

// attachmentMarkers maps each attachment kind to the marker pattern Day
// One embeds in body text. Identifiers are uppercase hex. The photo
// scheme has no kind segment; the others do, with a single slash.
var attachmentMarkers = map[journal.AttachmentKind]*regexp.Regexp{
	journal.KindPhoto: regexp.MustCompile(`!\[\]\(dayone-moment://([A-F0-9]+)\)`),
	journal.KindVideo: regexp.MustCompile(`!\[\]\(dayone-moment:/video/([A-F0-9]+)\)`),
	journal.KindAudio: regexp.MustCompile(`!\[\]\(dayone-moment:/audio/([A-F0-9]+)\)`),
	journal.KindPDF:   regexp.MustCompile(`!\[\]\(dayone-moment:/pdfAttachment/([A-F0-9]+)\)`),
}

// AttachmentResolver rewrites attachment markers into vault embeds
// using the export's manifest.
type AttachmentResolver struct {
	manifest *journal.Manifest
	report   *output.Report
}

// NewAttachmentResolver creates a resolver over the given manifest.
// Unresolved references are recorded in report.
func NewAttachmentResolver(manifest *journal.Manifest, report *output.Report) *AttachmentResolver {
	return &AttachmentResolver{manifest: manifest, report: report}
}

// Rewrite replaces every resolvable attachment marker in body with an
// ![[identifier.ext]] embed. Markers whose identifier is not in the
// manifest are left byte-identical and reported as warnings; the entry
// still renders.
func (r *AttachmentResolver) Rewrite(body string) string {
	for _, kind := range journal.Kinds {
		marker := attachmentMarkers[kind]
		body = marker.ReplaceAllStringFunc(body, func(match string) string {
			identifier := marker.FindStringSubmatch(match)[1]
			att, ok := r.manifest.Lookup(kind, identifier)
			if !ok {
				r.report.MissAttachment(string(kind), identifier)
				return match
			}
			return "![[" + att.TargetName() + "]]"
		})
	}
	return body
}
