package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestParsingErrorMessages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		reason ParseReason
		detail string
		want   string
	}{
		{ReasonEmpty, "", "h2k: source document is empty"},
		{ReasonMissing, "", "h2k: source document is missing"},
		{ReasonMalformed, "", "h2k: source document is malformed"},
		{ReasonMalformed, "unexpected EOF", "h2k: source document is malformed: unexpected EOF"},
	}
	for _, tc := range cases {
		if got := NewParsingError(tc.reason, tc.detail).Error(); got != tc.want {
			t.Fatalf("got %q, want %q", got, tc.want)
		}
	}
}

func TestErrorsMatchAsTargets(t *testing.T) {
	t.Parallel()

	var parseErr *ParsingError
	if !stderrors.As(NewParsingError(ReasonEmpty, ""), &parseErr) {
		t.Fatalf("ParsingError must match errors.As")
	}
	if parseErr.Reason != ReasonEmpty {
		t.Fatalf("reason: got %q", parseErr.Reason)
	}

	var cfgErr *ConfigurationError
	if !stderrors.As(NewConfigurationError("translation_mode", "unknown value"), &cfgErr) {
		t.Fatalf("ConfigurationError must match errors.As")
	}
	if !strings.Contains(cfgErr.Error(), "translation_mode") {
		t.Fatalf("message must name the option: %q", cfgErr.Error())
	}

	var structErr *StructuralError
	if !stderrors.As(NewStructuralError("wall segment", 42), &structErr) {
		t.Fatalf("StructuralError must match errors.As")
	}
	if !strings.Contains(structErr.Error(), "int") {
		t.Fatalf("message must name the value type: %q", structErr.Error())
	}
}
