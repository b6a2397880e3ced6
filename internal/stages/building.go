package stages

import (
	"github.com/canmet-energy/h2ktohpxml/internal/components"
	"github.com/canmet-energy/h2ktohpxml/internal/state"
	"github.com/canmet-energy/h2ktohpxml/pkg/tree"
)

// Target-schema facility classifications.
const (
	facilitySingleDetached = "single-family detached"
	facilitySingleAttached = "single-family attached"
	facilityApartmentUnit  = "apartment unit"
)

// Building translates the house-level description: facility type, unit
// count, storeys, heated floor area, and vintage. It runs first because the
// facility classification it stores on the model data drives adjacency
// decisions in every later stage.
type Building struct{}

// Name implements Stage.
func (Building) Name() string { return "building" }

// Apply implements Stage.
func (Building) Apply(src, out tree.Node, md *state.ModelData) error {
	specs := houseSection(src, "Specifications")

	facilityType := facilityText(specs)
	attached := components.IsAttachedUnit(facilityType)

	murbUnits := 0
	if units, ok := specs.Float("NumberOfUnits"); ok && units > 1 {
		murbUnits = int(units)
	}

	details := map[string]any{
		"facility_type": facilityType,
		"is_attached":   attached,
	}
	if murbUnits > 0 {
		details["building_type"] = "murb"
		details["murb_units"] = murbUnits
	}
	md.SetBuildingDetails(details)

	construction := out.Ensure(buildingDetailsPath("BuildingSummary", "BuildingConstruction")...)
	construction["ResidentialFacilityType"] = residentialFacilityType(attached, murbUnits)
	if murbUnits > 0 {
		construction["NumberofUnits"] = murbUnits
	}
	if year := specs.Text("YearBuilt"); year != "" {
		construction["YearBuilt"] = year
	}
	if storeys := storeyCount(specs); storeys != "" {
		construction["NumberofConditionedFloorsAboveGrade"] = storeys
	}
	if area, ok := heatedFloorArea(specs); ok {
		construction["ConditionedFloorArea"] = tree.FormatFloat(area * sqmToSqft)
	}

	return nil
}

// facilityText reads the free-text facility classification. H2K nests the
// bilingual label under English; older files carry bare element text.
func facilityText(specs tree.Node) string {
	if text := specs.Text("FacilityType", "English"); text != "" {
		return text
	}
	return specs.Text("FacilityType")
}

func residentialFacilityType(attached bool, murbUnits int) string {
	switch {
	case murbUnits > 0:
		return facilityApartmentUnit
	case attached:
		return facilitySingleAttached
	default:
		return facilitySingleDetached
	}
}

// storeyCodes maps the H2K storey selector code to a conditioned floor
// count. Half storeys round up: the target schema counts them as full
// conditioned levels.
var storeyCodes = map[string]string{
	"1": "1",
	"2": "2", // 1.5 storeys
	"3": "2",
	"4": "3", // 2.5 storeys
	"5": "3",
	"6": "1", // split level
	"7": "1", // split entry
}

func storeyCount(specs tree.Node) string {
	code := specs.Child("Storeys").Attr("code")
	return storeyCodes[code]
}

// heatedFloorArea sums the above- and below-grade areas (m²).
func heatedFloorArea(specs tree.Node) (float64, bool) {
	area := specs.Child("HeatedFloorArea")
	if area == nil {
		return 0, false
	}
	above, okAbove := area.Float(tree.AttrPrefix + "aboveGrade")
	below, okBelow := area.Float(tree.AttrPrefix + "belowGrade")
	if !okAbove && !okBelow {
		return 0, false
	}
	return above + below, true
}
