package h2k

import (
	"context"

	"github.com/canmet-energy/h2ktohpxml/pkg/tree"
)

// Parser turns an H2K document into the generic document tree. The tree
// preserves the format's cardinality ambiguity: a component that appears once
// decodes as a mapping, repeated components decode as a sequence. The
// extraction layer normalizes that ambiguity; the parser must not.
type Parser interface {
	Parse(ctx context.Context, doc Document) (tree.Node, error)
}

// ParserOptions configures how a Parser decodes documents.
type ParserOptions struct {
	// CastValues asks the decoder to coerce leaf text into numbers and
	// booleans. The engine keeps it off: every downstream consumer performs
	// its own typed reads, and casting would erase leading-zero codes.
	CastValues bool
}

// ParserOption mutates ParserOptions prior to construction.
type ParserOption func(*ParserOptions)

// WithCastValues toggles decoder-side value coercion.
func WithCastValues(cast bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.CastValues = cast
	}
}

// NewParserOptions applies the option funcs and returns the resulting
// configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}
