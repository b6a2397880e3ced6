package components

import (
	"strings"

	"github.com/canmet-energy/h2ktohpxml/pkg/tree"
)

// Exterior adjacency values in the target schema.
const (
	AdjacentOutside          = "outside"
	AdjacentOtherNonFreezing = "other non-freezing space"
)

// attachedKeywords classify a facility-type text as an attached unit. The
// detached check runs before the keyword scan so texts like "detached
// duplex" or "detached triplex" classify as detached instead of matching
// the duplex/triplex keywords.
var attachedKeywords = []string{"attached", "apartment", "row", "duplex", "triplex"}

// IsAttachedUnit classifies facility-type text against a fixed keyword
// vocabulary. Unrecognized text defaults to false (detached); that is an
// explicit fallback, not a third "unknown" state.
func IsAttachedUnit(facilityType string) bool {
	text := strings.ToLower(facilityType)
	if strings.Contains(text, "semi-detached") {
		return true
	}
	if strings.Contains(text, "detached") {
		return false
	}
	for _, keyword := range attachedKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// ExteriorAdjacentTo resolves what a component's exterior side borders. Only
// the combination of an enclosed-space adjacency flag and an attached unit
// yields "other non-freezing space"; every other combination is "outside".
func ExteriorAdjacentTo(component tree.Node, facilityType string) string {
	if component.FlagSet(tree.AttrPrefix+"adjacentEnclosedSpace") && IsAttachedUnit(facilityType) {
		return AdjacentOtherNonFreezing
	}
	return AdjacentOutside
}
