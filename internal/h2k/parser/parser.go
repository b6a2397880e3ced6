// Package parser implements the h2k.Parser contract on top of the mxj XML
// codec, which decodes XML into the mapping/sequence shape the rest of the
// engine operates on.
package parser

import (
	"context"

	"github.com/clbanning/mxj/v2"

	h2kerr "github.com/canmet-energy/h2ktohpxml/errors"
	pkgh2k "github.com/canmet-energy/h2ktohpxml/pkg/h2k"
	"github.com/canmet-energy/h2ktohpxml/pkg/tree"
)

// Parser decodes H2K XML into the generic document tree.
type Parser struct {
	options pkgh2k.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgh2k.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgh2k.ParserOptions) *Parser {
	return &Parser{options: options}
}

// Parse decodes the document payload. Attributes keep the tree.AttrPrefix
// marker and repeated elements decode as sequences, single elements as
// mappings; nothing here collapses that ambiguity.
func (p *Parser) Parse(ctx context.Context, doc pkgh2k.Document) (tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, h2kerr.NewParsingError(h2kerr.ReasonEmpty, "")
	}

	mv, err := mxj.NewMapXml(raw, p.options.CastValues)
	if err != nil {
		return nil, h2kerr.NewParsingError(h2kerr.ReasonMalformed, err.Error())
	}
	return tree.Node(mv), nil
}
