// Package components holds the helpers every translation stage shares: the
// cardinality-normalizing component extractor, advisory field validation,
// and the facility-type classification rules.
package components

import (
	"fmt"

	"github.com/canmet-energy/h2ktohpxml/internal/state"
	"github.com/canmet-energy/h2ktohpxml/pkg/tree"
)

// componentsPath is the fixed location of the component collections in an
// H2K document.
var componentsPath = []string{"HouseFile", "House", "Components"}

// ComponentsSafe returns the named component collection as an ordered slice.
// An absent collection yields an empty slice, a single mapping becomes a
// one-element slice, and an existing sequence is returned in source order.
// The source tree is never mutated.
func ComponentsSafe(src tree.Node, name string) []tree.Node {
	path := append(append([]string(nil), componentsPath...), name)
	return src.Sequence(path...)
}

// PerComponentFunc transforms one component into its target representation.
// The identifier is already formatted and unique within the component kind.
type PerComponentFunc[R any] func(component tree.Node, id string, md *state.ModelData) (R, error)

// ExtractAndProcess runs the extract, identify, and transform steps shared
// by every stage: each normalized component gets the next value from the
// named counter, an identifier of the form "{prefix}{n}", and a call to fn.
// Results are appended in source order.
func ExtractAndProcess[R any](src tree.Node, name string, md *state.ModelData, counter state.CounterName, idPrefix string, fn PerComponentFunc[R]) ([]R, error) {
	extracted := ComponentsSafe(src, name)
	if len(extracted) == 0 {
		return nil, nil
	}

	out := make([]R, 0, len(extracted))
	for _, component := range extracted {
		value, err := md.Counters().Increment(counter)
		if err != nil {
			return nil, fmt.Errorf("components: process %s: %w", name, err)
		}
		id := fmt.Sprintf("%s%d", idPrefix, value)

		result, err := fn(component, id, md)
		if err != nil {
			return nil, fmt.Errorf("components: process %s %s: %w", name, id, err)
		}
		out = append(out, result)
	}
	return out, nil
}
