// Package translate exposes the translation orchestrator: input validation,
// the fixed processor sequence, and finalization. It coordinates the full
// pipeline from H2K source text to serialized HPXML output while remaining
// open to dependency injection for the parser, skeleton, serializer, and
// logging sink.
package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	h2kerr "github.com/canmet-energy/h2ktohpxml/errors"
	internalparser "github.com/canmet-energy/h2ktohpxml/internal/h2k/parser"
	internalhpxml "github.com/canmet-energy/h2ktohpxml/internal/hpxml"
	"github.com/canmet-energy/h2ktohpxml/internal/stages"
	"github.com/canmet-energy/h2ktohpxml/internal/state"
	pkgh2k "github.com/canmet-energy/h2ktohpxml/pkg/h2k"
	pkghpxml "github.com/canmet-energy/h2ktohpxml/pkg/hpxml"
)

// Mode re-exports the translation mode. SOC is the default; ASHRAE140
// relaxes the house-level result-validity checks.
type Mode = state.Mode

const (
	ModeSOC       = state.ModeSOC
	ModeASHRAE140 = state.ModeASHRAE140
)

// ParseMode validates a translation-mode option value.
func ParseMode(text string) (Mode, error) {
	return state.ParseMode(text)
}

// Warning is one advisory record accumulated during a successful
// translation.
type Warning = state.Record

// Error taxonomy aliases, so callers can match failures without importing
// the errors package directly.
type (
	ParsingError       = h2kerr.ParsingError
	ConfigurationError = h2kerr.ConfigurationError
	StructuralError    = h2kerr.StructuralError
)

const (
	defaultSoftwareName    = "h2ktohpxml"
	defaultSoftwareVersion = "0.1.0"
)

// Option customises the translator configuration.
type Option func(*Translator)

// WithParser injects a custom H2K parser.
func WithParser(parser pkgh2k.Parser) Option {
	return func(t *Translator) {
		t.parser = parser
	}
}

// WithSkeletonLoader injects a custom output-skeleton loader.
func WithSkeletonLoader(loader pkghpxml.SkeletonLoader) Option {
	return func(t *Translator) {
		t.skeleton = loader
	}
}

// WithSerializer injects a custom output serializer.
func WithSerializer(serializer pkghpxml.Serializer) Option {
	return func(t *Translator) {
		t.serializer = serializer
	}
}

// WithLogger injects the sink that receives accumulated warnings at warning
// severity. Tests assert on the stored warning list instead of capturing
// ambient log output; the sink exists for operators.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		t.logger = logger
	}
}

// WithSoftwareInfo overrides the program name/version stamped into the
// output header.
func WithSoftwareInfo(name, version string) Option {
	return func(t *Translator) {
		t.softwareName = name
		t.softwareVersion = version
	}
}

// Translator validates inputs, runs the processors in their fixed order, and
// finalizes serialization. It holds no per-call state: one Translator may
// serve concurrent calls, each of which builds its own ModelData.
type Translator struct {
	parser     pkgh2k.Parser
	skeleton   pkghpxml.SkeletonLoader
	serializer pkghpxml.Serializer
	logger     *slog.Logger

	softwareName    string
	softwareVersion string
}

// New constructs a Translator, filling missing dependencies with the
// built-in implementations.
func New(options ...Option) *Translator {
	t := &Translator{
		softwareName:    defaultSoftwareName,
		softwareVersion: defaultSoftwareVersion,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	if t.parser == nil {
		t.parser = internalparser.New(pkgh2k.NewParserOptions())
	}
	if t.skeleton == nil {
		t.skeleton = internalhpxml.NewSkeletonLoader()
	}
	if t.serializer == nil {
		t.serializer = internalhpxml.NewSerializer()
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	return t
}

// Request describes one translation call.
type Request struct {
	// Document is the raw H2K source text. A nil slice means no document
	// was provided; an empty or whitespace-only slice is an empty document.
	// Both fail with a ParsingError before any processing.
	Document []byte

	// Source optionally names the document origin for diagnostics.
	Source pkgh2k.Source

	// Config is the optional configuration mapping. Nil is treated as an
	// empty configuration, never an error.
	Config map[string]any
}

// Result is the successful output of one translation call. There is no
// partial-success value: on error no output is produced.
type Result struct {
	// Document is the serialized HPXML output.
	Document []byte

	// Warnings are the advisory records accumulated while producing it, in
	// insertion order.
	Warnings []Warning
}

// Translate runs one full translation. Validation is fail-fast: the source
// document and configuration are checked before any processing begins. The
// stage order is fixed: later stages assume the state earlier ones left on
// the shared ModelData.
func (t *Translator) Translate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("translate: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	doc, err := pkgh2k.NewDocument(req.Source, req.Document)
	if err != nil {
		return Result{}, err
	}

	opts, cfg, err := decodeConfig(req.Config)
	if err != nil {
		return Result{}, err
	}
	mode, err := state.ParseMode(opts.TranslationMode)
	if err != nil {
		return Result{}, err
	}

	srcTree, err := t.parser.Parse(ctx, doc)
	if err != nil {
		return Result{}, err
	}
	outTree, err := t.skeleton.Skeleton(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("translate: load output skeleton: %w", err)
	}

	md := state.New(t.logger)
	md.SetResults(srcTree)

	pipeline := []stages.Stage{
		stages.Building{},
		stages.Weather{Mode: mode, Config: cfg},
		stages.Enclosure{AddTestWall: opts.AddTestWall},
		stages.Systems{},
	}
	for _, stage := range pipeline {
		if err := stage.Apply(srcTree, outTree, md); err != nil {
			return Result{}, fmt.Errorf("translate: %s stage: %w", stage.Name(), err)
		}
	}

	output, err := t.serializer.Serialize(ctx, outTree, pkghpxml.Meta{
		Mode:            string(mode),
		SoftwareName:    t.softwareName,
		SoftwareVersion: t.softwareVersion,
	})
	if err != nil {
		return Result{}, fmt.Errorf("translate: serialize output: %w", err)
	}

	return Result{Document: output, Warnings: md.Warnings()}, nil
}
