// Package h2ktohpxml converts H2K building-energy models into HPXML
// documents. The conversion is a pure in-memory transformation: callers hand
// in source text and an optional configuration mapping and receive the
// serialized output, with file handling, schema validation, and simulation
// left to the surrounding tooling.
package h2ktohpxml

import (
	"context"

	internalparser "github.com/canmet-energy/h2ktohpxml/internal/h2k/parser"
	pkgh2k "github.com/canmet-energy/h2ktohpxml/pkg/h2k"
	"github.com/canmet-energy/h2ktohpxml/pkg/translate"
)

// Mode selects the translation ruleset; see translate.Mode.
type Mode = translate.Mode

const (
	ModeSOC       = translate.ModeSOC
	ModeASHRAE140 = translate.ModeASHRAE140
)

// Warning re-exports the advisory record type accumulated during a
// successful translation.
type Warning = translate.Warning

// Request and Result alias the orchestrator types for convenience.
type Request = translate.Request
type Result = translate.Result

// NewTranslator exposes the orchestrator constructor from the top-level
// module.
func NewTranslator(options ...translate.Option) *translate.Translator {
	return translate.New(options...)
}

// NewParser constructs an H2K parser backed by the internal implementation.
func NewParser(options ...pkgh2k.ParserOption) pkgh2k.Parser {
	cfg := pkgh2k.NewParserOptions(options...)
	return internalparser.New(cfg)
}

// Translate converts one H2K document with the default pipeline. It is the
// simplest entry point for callers that just want the output text; callers
// that need the accumulated warnings construct a Translator and inspect the
// Result.
func Translate(ctx context.Context, source []byte, config map[string]any) ([]byte, error) {
	t := translate.New()
	result, err := t.Translate(ctx, translate.Request{
		Document: source,
		Config:   config,
	})
	if err != nil {
		return nil, err
	}
	return result.Document, nil
}
