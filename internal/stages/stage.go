// Package stages implements the four translation processors. Each stage
// reads the H2K source tree and mutates the HPXML output tree and the shared
// ModelData; the orchestrator runs them in a fixed order because later
// stages assume the state earlier ones left behind.
package stages

import (
	"github.com/canmet-energy/h2ktohpxml/internal/state"
	"github.com/canmet-energy/h2ktohpxml/pkg/tree"
)

// Stage is the shared processor contract.
type Stage interface {
	Name() string
	Apply(src, out tree.Node, md *state.ModelData) error
}

// Config is the accessor stages use to locate auxiliary options and
// reference data. *koanf.Koanf satisfies it.
type Config interface {
	String(path string) string
	Exists(path string) bool
}

// Unit conversions between the metric source schema and the imperial target
// schema.
const (
	rsiToRValue   = 5.678263337 // RSI (m2*K/W) to R-value (ft2*F*h/Btu)
	sqmToSqft     = 10.76391042
	mToFt         = 3.280839895
	mmToM         = 0.001
	kwToBtuPerHr  = 3412.142
	litresToUSGal = 0.264172
)

// buildingDetailsPath returns the output path to a section under
// Building/BuildingDetails.
func buildingDetailsPath(section ...string) []string {
	return append([]string{"HPXML", "Building", "BuildingDetails"}, section...)
}

// houseSection returns the mapping under HouseFile/House at the given path.
func houseSection(src tree.Node, path ...string) tree.Node {
	return src.Child(append([]string{"HouseFile", "House"}, path...)...)
}
