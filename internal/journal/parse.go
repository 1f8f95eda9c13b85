package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// rawExport mirrors the top level of a Day One JSON export.
type rawExport struct {
	Entries []rawEntry `json:"entries"`
}

// rawEntry mirrors the subset of the per-entry schema the converter
// consumes. Optional blocks are pointers so absence is distinguishable
// from zero values.
type rawEntry struct {
	UUID         string       `json:"uuid"`
	CreationDate string       `json:"creationDate"`
	TimeZone     string       `json:"timeZone"`
	Starred      bool         `json:"starred"`
	Tags         []string     `json:"tags"`
	Text         string       `json:"text"`
	Location     *rawLocation `json:"location"`
	Weather      *rawWeather  `json:"weather"`
	Photos       []rawMedia   `json:"photos"`
	Videos       []rawMedia   `json:"videos"`
	Audios       []rawMedia   `json:"audios"`
	PDFs         []rawMedia   `json:"pdfAttachments"`
}

type rawLocation struct {
	PlaceName          string   `json:"placeName"`
	Locality           string   `json:"localityName"`
	AdministrativeArea string   `json:"administrativeArea"`
	Country            string   `json:"country"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
}

type rawWeather struct {
	Conditions         *string  `json:"conditionsDescription"`
	TemperatureCelsius *float64 `json:"temperatureCelsius"`
	WindSpeedKPH       *float64 `json:"windSpeedKPH"`
}

type rawMedia struct {
	Identifier string `json:"identifier"`
	MD5        string `json:"md5"`
	Type       string `json:"type"`
}

// EntryError records one entry that could not be normalized. These are
// the per-entry error class: reported and skipped, never fatal.
type EntryError struct {
	UUID string
	Err  error
}

// Export is one parsed journal export: the normalized entries in
// document order, the attachment manifest, and the entries that failed
// to normalize.
type Export struct {
	Journal  string
	Entries  []*Entry
	Manifest *Manifest
	Errors   []EntryError
}

// ParseExport parses a Day One JSON document into an Export. The
// journal name (the export file's stem) namespaces tags and the output
// directory.
//
// A document that is not valid JSON or has no entries list is a fatal
// error. Entries missing required fields (uuid, creationDate) are
// collected in Errors and skipped.
func ParseExport(data []byte, journalName string) (*Export, error) {
	var raw rawExport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing export JSON: %w", err)
	}
	if raw.Entries == nil {
		return nil, errors.New("export has no entries list")
	}

	export := &Export{
		Journal:  journalName,
		Manifest: NewManifest(),
	}

	for i, re := range raw.Entries {
		entry, err := normalizeEntry(re, journalName)
		if err != nil {
			export.Errors = append(export.Errors, EntryError{UUID: entryLabel(re.UUID, i), Err: err})
			continue
		}
		if err := export.Manifest.AddEntry(entry); err != nil {
			export.Errors = append(export.Errors, EntryError{UUID: entry.UUID, Err: err})
			continue
		}
		export.Entries = append(export.Entries, entry)
	}

	return export, nil
}

// entryLabel names an entry in error reports even when its uuid is missing.
func entryLabel(uuid string, index int) string {
	if uuid != "" {
		return uuid
	}
	return fmt.Sprintf("#%d", index)
}

// normalizeEntry converts one raw JSON entry into the Entry model.
func normalizeEntry(re rawEntry, journalName string) (*Entry, error) {
	if re.UUID == "" {
		return nil, errors.New("entry has no uuid")
	}
	if re.CreationDate == "" {
		return nil, errors.New("entry has no creationDate")
	}

	created, err := time.Parse(time.RFC3339, re.CreationDate)
	if err != nil {
		return nil, fmt.Errorf("invalid creationDate %q: %w", re.CreationDate, err)
	}

	// Dates follow the writer's local clock. An unknown zone falls back
	// to the export's UTC timestamp rather than failing the entry.
	if re.TimeZone != "" {
		if loc, zerr := time.LoadLocation(re.TimeZone); zerr == nil {
			created = created.In(loc)
		}
	}

	entry := &Entry{
		UUID:         re.UUID,
		CreationDate: created,
		TimeZone:     re.TimeZone,
		Journal:      journalName,
		Starred:      re.Starred,
		Tags:         re.Tags,
		Text:         tidyBody(re.Text),
		Location:     normalizeLocation(re.Location),
		Weather:      normalizeWeather(re.Weather),
	}
	entry.Attachments = collectAttachments(re)

	return entry, nil
}

// normalizeLocation keeps a location block only when it has content.
func normalizeLocation(rl *rawLocation) *Location {
	if rl == nil {
		return nil
	}
	loc := &Location{
		PlaceName:          rl.PlaceName,
		Locality:           rl.Locality,
		AdministrativeArea: rl.AdministrativeArea,
		Country:            rl.Country,
		Latitude:           rl.Latitude,
		Longitude:          rl.Longitude,
	}
	if len(loc.Places()) == 0 && loc.Latitude == nil && loc.Longitude == nil {
		return nil
	}
	return loc
}

// normalizeWeather keeps a weather block only when all three fields the
// converter renders are present.
func normalizeWeather(rw *rawWeather) *Weather {
	if rw == nil || rw.Conditions == nil || rw.TemperatureCelsius == nil || rw.WindSpeedKPH == nil {
		return nil
	}
	return &Weather{
		Conditions:         *rw.Conditions,
		TemperatureCelsius: *rw.TemperatureCelsius,
		WindSpeedKPH:       *rw.WindSpeedKPH,
	}
}

// collectAttachments flattens the per-kind media arrays in entry order.
func collectAttachments(re rawEntry) []Attachment {
	var atts []Attachment
	for _, m := range re.Photos {
		atts = append(atts, mediaAttachment(KindPhoto, m, m.Type))
	}
	for _, m := range re.Videos {
		atts = append(atts, mediaAttachment(KindVideo, m, m.Type))
	}
	for _, m := range re.Audios {
		// Day One omits the audio type; AAC recordings carry .m4a.
		atts = append(atts, mediaAttachment(KindAudio, m, "m4a"))
	}
	for _, m := range re.PDFs {
		atts = append(atts, mediaAttachment(KindPDF, m, "pdf"))
	}
	return atts
}

func mediaAttachment(kind AttachmentKind, m rawMedia, ext string) Attachment {
	if ext == "" {
		ext = string(kind)
	}
	return Attachment{
		Kind:       kind,
		Identifier: m.Identifier,
		MD5:        m.MD5,
		Ext:        ext,
	}
}
