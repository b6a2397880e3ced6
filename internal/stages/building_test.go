package stages

import (
	"io"
	"log/slog"
	"testing"

	"github.com/canmet-energy/h2ktohpxml/internal/state"
	"github.com/canmet-energy/h2ktohpxml/pkg/tree"
)

func testModelData() *state.ModelData {
	return state.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func specsSource(specs map[string]any) tree.Node {
	return tree.Node{
		"HouseFile": map[string]any{
			"House": map[string]any{
				"Specifications": specs,
			},
		},
	}
}

func TestBuildingStoresFacilityClassification(t *testing.T) {
	t.Parallel()
	md := testModelData()
	out := tree.Node{}

	src := specsSource(map[string]any{
		"FacilityType": map[string]any{"English": "Row house, attached"},
		"YearBuilt":    "1987",
		"Storeys":      map[string]any{"-code": "2", "English": "One and a half storeys"},
		"HeatedFloorArea": map[string]any{
			"-aboveGrade": "120",
			"-belowGrade": "80",
		},
	})

	if err := (Building{}).Apply(src, out, md); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if got := md.BuildingDetailString("facility_type", ""); got != "Row house, attached" {
		t.Fatalf("facility_type detail: got %q", got)
	}
	if attached, _ := md.BuildingDetail("is_attached", false).(bool); !attached {
		t.Fatalf("expected attached classification")
	}

	construction := out.Child(buildingDetailsPath("BuildingSummary", "BuildingConstruction")...)
	if construction == nil {
		t.Fatalf("building construction not written")
	}
	if got := construction.Text("ResidentialFacilityType"); got != facilitySingleAttached {
		t.Fatalf("ResidentialFacilityType: got %q", got)
	}
	if got := construction.Text("YearBuilt"); got != "1987" {
		t.Fatalf("YearBuilt: got %q", got)
	}
	if got := construction.Text("NumberofConditionedFloorsAboveGrade"); got != "2" {
		t.Fatalf("storeys: got %q", got)
	}
	if area, ok := construction.Float("ConditionedFloorArea"); !ok || area < 2152 || area > 2153 {
		// 200 m² ≈ 2152.78 ft²
		t.Fatalf("ConditionedFloorArea: got %v ok=%v", area, ok)
	}
}

func TestBuildingMURBUnits(t *testing.T) {
	t.Parallel()
	md := testModelData()
	out := tree.Node{}

	src := specsSource(map[string]any{
		"FacilityType":  map[string]any{"English": "Apartment"},
		"NumberOfUnits": "6",
	})

	if err := (Building{}).Apply(src, out, md); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if got := md.BuildingDetail("building_type", nil); got != "murb" {
		t.Fatalf("building_type: got %v", got)
	}
	if got := md.BuildingDetail("murb_units", nil); got != 6 {
		t.Fatalf("murb_units: got %v", got)
	}

	construction := out.Child(buildingDetailsPath("BuildingSummary", "BuildingConstruction")...)
	if got := construction.Text("ResidentialFacilityType"); got != facilityApartmentUnit {
		t.Fatalf("ResidentialFacilityType: got %q", got)
	}
}

func TestBuildingDetachedDefaults(t *testing.T) {
	t.Parallel()
	md := testModelData()
	out := tree.Node{}

	src := specsSource(map[string]any{
		"FacilityType": "Single family detached",
	})

	if err := (Building{}).Apply(src, out, md); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if got := md.BuildingDetail("building_type", nil); got != "house" {
		t.Fatalf("building_type must keep its seed: got %v", got)
	}
	construction := out.Child(buildingDetailsPath("BuildingSummary", "BuildingConstruction")...)
	if got := construction.Text("ResidentialFacilityType"); got != facilitySingleDetached {
		t.Fatalf("ResidentialFacilityType: got %q", got)
	}
}
