// Package h2k defines the domain wrappers for the H2K source format: the
// raw document, its origin, and the parser contract that turns it into a
// generic document tree. Keeping these contracts free of codec types lets
// the public API stay decoupled from the XML library used internally.
package h2k

import (
	h2kerr "github.com/canmet-energy/h2ktohpxml/errors"
)

// Source identifies where an H2K document originated. Loaders and callers
// supply one so diagnostics can name the origin without the engine doing any
// I/O itself.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the document origins.
type SourceKind string

const (
	SourceKindInline SourceKind = "inline"
	SourceKindFile   SourceKind = "file"
)

// inlineSource marks documents supplied directly as text.
type inlineSource struct{}

func (inlineSource) Kind() SourceKind { return SourceKindInline }
func (inlineSource) Location() string { return "<inline>" }

// SourceInline returns a Source for documents passed in memory.
func SourceInline() Source {
	return inlineSource{}
}

// fileSource records the path a caller read the document from. The engine
// never touches the path; it exists purely for diagnostics.
type fileSource struct {
	path string
}

func (s fileSource) Kind() SourceKind { return SourceKindFile }
func (s fileSource) Location() string { return s.path }

// SourceFromFile returns a Source naming an on-disk origin.
func SourceFromFile(path string) Source {
	return fileSource{path: path}
}

// Document wraps the raw H2K payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document, distinguishing a missing payload from
// an empty one as required by the translation contract.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		src = SourceInline()
	}
	if raw == nil {
		return Document{}, h2kerr.NewParsingError(h2kerr.ReasonMissing, "")
	}
	if isBlank(raw) {
		return Document{}, h2kerr.NewParsingError(h2kerr.ReasonEmpty, "")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a defensive copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

func isBlank(raw []byte) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}
