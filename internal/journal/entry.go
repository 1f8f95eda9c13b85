// Package journal provides the Day One export schema, the entry model,
// and markdown rendering for daybook.
package journal

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// AttachmentKind identifies the media type of an attachment.
type AttachmentKind string

// Attachment kinds as they appear in a Day One export.
const (
	KindPhoto AttachmentKind = "photo"
	KindVideo AttachmentKind = "video"
	KindAudio AttachmentKind = "audio"
	KindPDF   AttachmentKind = "pdf"
)

// Kinds lists all attachment kinds in a stable order.
var Kinds = []AttachmentKind{KindPhoto, KindVideo, KindAudio, KindPDF}

// SourceDir returns the export subdirectory holding media of this kind.
// The same name is used for the destination subdirectory in the vault.
func (k AttachmentKind) SourceDir() string {
	switch k {
	case KindPhoto:
		return "photos"
	case KindVideo:
		return "videos"
	case KindAudio:
		return "audios"
	default:
		return "pdfs"
	}
}

// Entry represents one journal entry, normalized from the export JSON.
// CreationDate is converted to the entry's own time zone: dates, file
// names, and metadata all follow the writer's local clock, not UTC.
type Entry struct {
	UUID         string
	CreationDate time.Time
	TimeZone     string
	Journal      string
	Starred      bool
	Tags         []string
	Text         string
	Location     *Location
	Weather      *Weather
	Attachments  []Attachment
}

// Location is an entry's optional place and GPS information.
type Location struct {
	PlaceName          string
	Locality           string
	AdministrativeArea string
	Country            string
	Latitude           *float64
	Longitude          *float64
}

// Places returns the non-empty place components, most specific first.
func (l *Location) Places() []string {
	var places []string
	for _, p := range []string{l.PlaceName, l.Locality, l.AdministrativeArea, l.Country} {
		if p != "" {
			places = append(places, p)
		}
	}
	return places
}

// Weather is an entry's optional weather snapshot. All three fields are
// required in the export for the snapshot to be kept.
type Weather struct {
	Conditions         string
	TemperatureCelsius float64
	WindSpeedKPH       float64
}

// String renders the snapshot as a single metadata value.
func (w *Weather) String() string {
	return fmt.Sprintf("%s, %.1f°C, %.1f km/h wind", w.Conditions, w.TemperatureCelsius, w.WindSpeedKPH)
}

// Attachment is one media reference carried by an entry.
type Attachment struct {
	Kind       AttachmentKind
	Identifier string
	MD5        string
	Ext        string
}

// SourceName returns the media file's name inside the export
// (Day One names media files by MD5, not identifier).
func (a Attachment) SourceName() string {
	return a.MD5 + "." + a.Ext
}

// TargetName returns the media file's name inside the vault. Bodies
// reference attachments by identifier, so copies are renamed to match.
func (a Attachment) TargetName() string {
	return a.Identifier + "." + a.Ext
}

// Day returns the entry's calendar date in its local time zone,
// formatted YYYY-MM-DD. This is the merge-group key.
func (e *Entry) Day() string {
	return e.CreationDate.Format("2006-01-02")
}

// URL returns the dayone:// deep link back to the source entry.
func (e *Entry) URL() string {
	return fmt.Sprintf("dayone://view?entryId=%s", e.UUID)
}

// emptyFence matches the stray ``` ``` pairs Day One leaves when it
// splits a multi-line code block across export lines.
var emptyFence = regexp.MustCompile("```\\s+```")

// tidyBody normalizes Day One body text: drops escape backslashes and
// zero-width spaces, maps the Unicode line/paragraph separators Day One
// emits to ordinary newlines, and removes empty code fence pairs.
func tidyBody(text string) string {
	text = strings.ReplaceAll(text, "\\", "")
	text = strings.ReplaceAll(text, "\u2028", "\n")
	text = strings.ReplaceAll(text, "\u1C6A", "\n\n")
	text = strings.ReplaceAll(text, "\u200B", "")
	return emptyFence.ReplaceAllString(text, "")
}
