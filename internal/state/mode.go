package state

import (
	h2kerr "github.com/canmet-energy/h2ktohpxml/errors"
)

// Mode selects the translation ruleset. SOC is the normal operating mode;
// ASHRAE140 relaxes the house-level result-validity checks for the
// standardized comparison test protocol.
type Mode string

const (
	ModeSOC       Mode = "SOC"
	ModeASHRAE140 Mode = "ASHRAE140"
)

// ParseMode validates a translation-mode option value. Absent text selects
// the SOC default; anything outside the closed set is a configuration error.
func ParseMode(text string) (Mode, error) {
	switch Mode(text) {
	case "":
		return ModeSOC, nil
	case ModeSOC:
		return ModeSOC, nil
	case ModeASHRAE140:
		return ModeASHRAE140, nil
	default:
		return "", h2kerr.NewConfigurationError("translation_mode", "must be SOC or ASHRAE140")
	}
}
