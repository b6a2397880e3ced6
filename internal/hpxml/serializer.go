package hpxml

import (
	"context"
	"fmt"
	"time"

	"github.com/clbanning/mxj/v2"

	pkghpxml "github.com/canmet-energy/h2ktohpxml/pkg/hpxml"
	"github.com/canmet-energy/h2ktohpxml/pkg/tree"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// modeASHRAE140 mirrors the translation mode constant; the serializer only
// needs the literal to decide whether to stamp the simplified-run flag.
const modeASHRAE140 = "ASHRAE140"

// Serializer finalizes the mutated output tree and encodes it as HPXML text.
type Serializer struct {
	clock func() time.Time
}

// Ensure the implementation satisfies the public interface.
var _ pkghpxml.Serializer = (*Serializer)(nil)

// SerializerOption mutates the serializer during construction.
type SerializerOption func(*Serializer)

// WithClock injects the timestamp source stamped into the transaction
// header. Tests use it to keep output deterministic.
func WithClock(clock func() time.Time) SerializerOption {
	return func(s *Serializer) {
		s.clock = clock
	}
}

// NewSerializer constructs a Serializer with the given options.
func NewSerializer(options ...SerializerOption) *Serializer {
	s := &Serializer{clock: time.Now}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Serialize stamps the transaction header and software info, applies the
// mode-dependent extension flags, and encodes the tree as indented XML.
func (s *Serializer) Serialize(ctx context.Context, doc tree.Node, meta pkghpxml.Meta) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	header := doc.Ensure("HPXML", "XMLTransactionHeaderInformation")
	header["CreatedDateAndTime"] = s.clock().Format(time.RFC3339)

	software := doc.Ensure("HPXML", "SoftwareInfo")
	if meta.SoftwareName != "" {
		software["SoftwareProgramUsed"] = meta.SoftwareName
		header["XMLGeneratedBy"] = meta.SoftwareName
	}
	if meta.SoftwareVersion != "" {
		software["SoftwareProgramVersion"] = meta.SoftwareVersion
	}
	if meta.Mode == modeASHRAE140 {
		software.Ensure("extension")["ApplyASHRAE140Assumptions"] = "true"
	}

	encoded, err := mxj.Map(doc).XmlIndent("", "  ")
	if err != nil {
		return nil, fmt.Errorf("hpxml: encode document: %w", err)
	}
	return append([]byte(xmlHeader), encoded...), nil
}
