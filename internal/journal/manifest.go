package journal

import "fmt"

// Manifest maps attachment identifiers to their media files, grouped by
// kind. It is built once while parsing an export and is read-only
// afterward.
type Manifest struct {
	byKind map[AttachmentKind]map[string]Attachment
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	byKind := make(map[AttachmentKind]map[string]Attachment, len(Kinds))
	for _, k := range Kinds {
		byKind[k] = make(map[string]Attachment)
	}
	return &Manifest{byKind: byKind}
}

// AddEntry registers all of an entry's attachments.
//
// An identifier that is already registered for the same kind but points
// at a different file is ambiguous; the export gives no precedence
// rule, so the entry carrying the duplicate is rejected and skipped.
func (m *Manifest) AddEntry(entry *Entry) error {
	for _, att := range entry.Attachments {
		if att.Identifier == "" {
			continue
		}
		existing, ok := m.byKind[att.Kind][att.Identifier]
		if ok && existing.MD5 != att.MD5 {
			return fmt.Errorf("%s attachment %s maps to multiple files (%s and %s)",
				att.Kind, att.Identifier, existing.MD5, att.MD5)
		}
		m.byKind[att.Kind][att.Identifier] = att
	}
	return nil
}

// Lookup resolves an identifier of the given kind.
func (m *Manifest) Lookup(kind AttachmentKind, identifier string) (Attachment, bool) {
	att, ok := m.byKind[kind][identifier]
	return att, ok
}

// Attachments returns every registered attachment of the given kind.
func (m *Manifest) Attachments(kind AttachmentKind) []Attachment {
	atts := make([]Attachment, 0, len(m.byKind[kind]))
	for _, att := range m.byKind[kind] {
		atts = append(atts, att)
	}
	return atts
}

// Len returns the total number of registered attachments.
func (m *Manifest) Len() int {
	n := 0
	for _, kind := range m.byKind {
		n += len(kind)
	}
	return n
}
