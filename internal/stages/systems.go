package stages

import (
	"github.com/canmet-energy/h2ktohpxml/internal/components"
	"github.com/canmet-energy/h2ktohpxml/internal/state"
	"github.com/canmet-energy/h2ktohpxml/pkg/tree"
)

// energySourceCodes maps the H2K EnergySource selector to target-schema fuel
// names.
var energySourceCodes = map[string]string{
	"1": "electricity",
	"2": "natural gas",
	"3": "fuel oil",
	"4": "propane",
	"5": "wood",
	"6": "wood pellets",
}

// Systems translates the mechanical systems: the Type1 primary heating
// plant, an optional Type2 heat pump, and the primary domestic hot water
// system. It records the identifiers it assigns on the SystemTracker because
// later consumers reference them; the pre-seeded primary-heating slot is
// overwritten when a concrete system is translated, never dropped.
type Systems struct{}

// Name implements Stage.
func (Systems) Name() string { return "systems" }

// Apply implements Stage.
func (Systems) Apply(src, out tree.Node, md *state.ModelData) error {
	systems := out.Ensure(buildingDetailsPath("Systems")...)

	translateHeating(src, systems, md)
	translateHeatPump(src, systems, md)
	translateHotWater(src, systems, md)
	return nil
}

func translateHeating(src, systems tree.Node, md *state.ModelData) {
	type1 := houseSection(src, "HeatingCooling", "Type1")
	if type1 == nil {
		return
	}

	var (
		equipment    tree.Node
		systemType   map[string]any
		distribution string
	)
	switch {
	case type1.Child("Furnace") != nil:
		equipment = type1.Child("Furnace")
		systemType = map[string]any{"Furnace": ""}
		distribution = "air"
	case type1.Child("Boiler") != nil:
		equipment = type1.Child("Boiler")
		systemType = map[string]any{"Boiler": ""}
		distribution = "hydronic"
	case type1.Child("Baseboards") != nil:
		equipment = type1.Child("Baseboards")
		systemType = map[string]any{"ElectricResistance": ""}
		distribution = "none"
	default:
		return
	}

	const id = "HeatingSystem1"
	heating := map[string]any{
		"SystemIdentifier":       idNode(id),
		"HeatingSystemType":      systemType,
		"HeatingSystemFuel":      heatingFuel(equipment),
		"FractionHeatLoadServed": "1.0",
	}
	if capacity, ok := equipment.Float("Specifications", "OutputCapacity", tree.AttrPrefix+"value"); ok {
		heating["HeatingCapacity"] = tree.FormatFloat(capacity * kwToBtuPerHr)
	}
	if efficiency, ok := equipment.Float("Specifications", "Efficiency", tree.AttrPrefix+"value"); ok {
		heating["AnnualHeatingEfficiency"] = map[string]any{
			"Units": "AFUE",
			"Value": tree.FormatFloat(efficiency / 100),
		}
	}

	systems.Ensure("HVAC", "HVACPlant")["HeatingSystem"] = heating

	tracker := md.Systems()
	tracker.MergeSystemIDs(map[string]string{state.RolePrimaryHeating: id})
	tracker.SetHeatingDistribution(distribution)
	tracker.MarkHVACTranslated()

	if diameter, ok := equipment.Float("Specifications", "FlueDiameter"); ok && diameter > 0 {
		tracker.AddFlueDiameter(diameter)
	}
}

func translateHeatPump(src, systems tree.Node, md *state.ModelData) {
	pump := houseSection(src, "HeatingCooling", "Type2", "AirHeatPump")
	if pump == nil {
		return
	}

	const id = "HeatPump1"
	node := map[string]any{
		"SystemIdentifier":       idNode(id),
		"HeatPumpType":           "air-to-air",
		"HeatPumpFuel":           "electricity",
		"FractionCoolLoadServed": "1.0",
	}
	if capacity, ok := pump.Float("Specifications", "OutputCapacity", tree.AttrPrefix+"value"); ok {
		node["CoolingCapacity"] = tree.FormatFloat(capacity * kwToBtuPerHr)
	}
	systems.Ensure("HVAC", "HVACPlant")["HeatPump"] = node

	tracker := md.Systems()
	tracker.MergeSystemIDs(map[string]string{"heat_pump": id})
	tracker.SetCoolingDistribution("air")
	// A Type2 heat pump supplements the Type1 plant rather than replacing it.
	tracker.AddSupplementalHeatingDistribution("air")
	tracker.MarkHVACTranslated()
}

func translateHotWater(src, systems tree.Node, md *state.ModelData) {
	primary := houseSection(src, "Components", "HotWater", "Primary")
	if primary == nil {
		return
	}

	const id = "WaterHeatingSystem1"
	label := components.ComponentLabel(primary)
	dhw := map[string]any{
		"SystemIdentifier":      idNode(id),
		"FuelType":              heatingFuel(primary),
		"WaterHeaterType":       "storage water heater",
		"FractionDHWLoadServed": "1.0",
	}
	if volume, ok := primary.Float("TankVolume", tree.AttrPrefix+"value"); ok {
		dhw["TankVolume"] = tree.FormatFloat(volume * litresToUSGal)
	}
	if ef, ok := primary.Float("EnergyFactor", tree.AttrPrefix+"value"); ok {
		dhw["EnergyFactor"] = tree.FormatFloat(ef)
	}

	systems.Ensure("WaterHeating")["WaterHeatingSystem"] = dhw

	tracker := md.Systems()
	tracker.MergeSystemIDs(map[string]string{"primary_dhw": id})
	tracker.MarkDHWTranslated()

	if diameter, ok := primary.Float("FlueDiameter"); ok && diameter > 0 {
		tracker.AddFlueDiameter(diameter)
	}

	md.SetBuildingDetail("dhw_label", label)
}

// heatingFuel resolves the equipment's EnergySource selector; electricity is
// the fallback when the selector is absent or unknown.
func heatingFuel(equipment tree.Node) string {
	code := equipment.Child("Equipment", "EnergySource").Attr("code")
	if code == "" {
		code = equipment.Child("EnergySource").Attr("code")
	}
	if fuel, ok := energySourceCodes[code]; ok {
		return fuel
	}
	return "electricity"
}
