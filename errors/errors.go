// Package errors defines the error taxonomy raised by the translation
// engine. Parsing, configuration, and structural errors abort a translation
// call before or during processing; advisory domain issues never surface
// here, they degrade to warnings stored on the model data.
package errors

import "fmt"

// ParseReason distinguishes why a source document could not be accepted.
type ParseReason string

const (
	// ReasonEmpty indicates the source document was provided but holds no
	// content.
	ReasonEmpty ParseReason = "empty"
	// ReasonMissing indicates no source document was provided at all.
	ReasonMissing ParseReason = "missing"
	// ReasonMalformed indicates the source document could not be decoded
	// into a tree.
	ReasonMalformed ParseReason = "malformed"
)

// ParsingError reports an unusable source document. It is raised before any
// processing begins and the call produces no output.
type ParsingError struct {
	Reason ParseReason
	Detail string
}

func (e *ParsingError) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return "h2k: source document is empty"
	case ReasonMissing:
		return "h2k: source document is missing"
	default:
		if e.Detail != "" {
			return fmt.Sprintf("h2k: source document is malformed: %s", e.Detail)
		}
		return "h2k: source document is malformed"
	}
}

// NewParsingError builds a ParsingError for the given reason.
func NewParsingError(reason ParseReason, detail string) *ParsingError {
	return &ParsingError{Reason: reason, Detail: detail}
}

// ConfigurationError reports a malformed configuration mapping or an invalid
// option value, detected before any processing begins.
type ConfigurationError struct {
	Option string
	Detail string
}

func (e *ConfigurationError) Error() string {
	if e.Option == "" {
		return fmt.Sprintf("translate: invalid configuration: %s", e.Detail)
	}
	return fmt.Sprintf("translate: invalid configuration option %q: %s", e.Option, e.Detail)
}

// NewConfigurationError builds a ConfigurationError for a named option.
func NewConfigurationError(option, detail string) *ConfigurationError {
	return &ConfigurationError{Option: option, Detail: detail}
}

// StructuralError reports a collected value that does not have the expected
// mapping shape. It is raised immediately at the point of insertion and
// aborts the call.
type StructuralError struct {
	Context string
	Value   any
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("translate: %s: expected a mapping, got %T", e.Context, e.Value)
}

// NewStructuralError builds a StructuralError for the given insertion
// context.
func NewStructuralError(context string, value any) *StructuralError {
	return &StructuralError{Context: context, Value: value}
}
