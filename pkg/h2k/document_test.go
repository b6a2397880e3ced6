package h2k

import (
	"errors"
	"testing"

	h2kerr "github.com/canmet-energy/h2ktohpxml/errors"
)

func TestNewDocumentDistinguishesMissingFromEmpty(t *testing.T) {
	t.Parallel()

	_, err := NewDocument(nil, nil)
	var parseErr *h2kerr.ParsingError
	if !errors.As(err, &parseErr) || parseErr.Reason != h2kerr.ReasonMissing {
		t.Fatalf("nil payload: got %v", err)
	}

	_, err = NewDocument(nil, []byte("  \n\t"))
	if !errors.As(err, &parseErr) || parseErr.Reason != h2kerr.ReasonEmpty {
		t.Fatalf("blank payload: got %v", err)
	}

	if parseErr.Error() == (&h2kerr.ParsingError{Reason: h2kerr.ReasonMissing}).Error() {
		t.Fatalf("empty and missing must produce distinguishable messages")
	}
}

func TestDocumentCopiesPayload(t *testing.T) {
	t.Parallel()

	raw := []byte("<HouseFile/>")
	doc, err := NewDocument(SourceFromFile("example.h2k"), raw)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	raw[1] = 'X'
	if string(doc.Raw()) != "<HouseFile/>" {
		t.Fatalf("document shares the caller's buffer")
	}
	if doc.Location() != "example.h2k" {
		t.Fatalf("unexpected location %q", doc.Location())
	}

	out := doc.Raw()
	out[1] = 'Y'
	if string(doc.Raw()) != "<HouseFile/>" {
		t.Fatalf("Raw leaks the internal buffer")
	}
}

func TestDocumentDefaultsToInlineSource(t *testing.T) {
	t.Parallel()

	doc := MustNewDocument(nil, []byte("<HouseFile/>"))
	if doc.Source().Kind() != SourceKindInline {
		t.Fatalf("expected inline source, got %q", doc.Source().Kind())
	}
}
