package components

import (
	"fmt"

	"github.com/canmet-energy/h2ktohpxml/internal/state"
	"github.com/canmet-energy/h2ktohpxml/pkg/tree"
)

// noLabel is substituted when a component carries no usable label text.
const noLabel = "No Label"

// RValue reads a numeric insulation field from the component. A zero value
// is physically suspect, so it is recorded as an advisory warning naming the
// context, but the zero is returned unmodified, never clamped. Validation
// here is advisory, never blocking.
func RValue(component tree.Node, field, contextLabel string, md *state.ModelData) float64 {
	value, ok := component.Float(field)
	if !ok {
		// Attribute form of the same field.
		value, _ = component.Float(tree.AttrPrefix + field)
	}
	if value == 0 {
		md.AddWarning(state.Record{
			Message: fmt.Sprintf("%s has an R-value of 0", contextLabel),
			Fields:  map[string]any{"field": field, "value": 0},
		})
	}
	return value
}

// ComponentLabel returns the component's label text, or "No Label" when the
// label is absent or empty. It never fails.
func ComponentLabel(component tree.Node) string {
	if label := component.Text("Label"); label != "" {
		return label
	}
	return noLabel
}
