package stages

import (
	"fmt"

	"github.com/canmet-energy/h2ktohpxml/internal/components"
	"github.com/canmet-energy/h2ktohpxml/internal/state"
	"github.com/canmet-energy/h2ktohpxml/pkg/tree"
)

const interiorConditioned = "conditioned space"

// Enclosure translates the envelope components: walls with their attached
// windows and doors, ceilings into attic/roof pairs, exposed floors,
// foundations (basement, crawlspace, slab), and floor headers into rim
// joists. AddTestWall injects one synthetic wall segment for
// reference/validation workflows; it is not a production path.
type Enclosure struct {
	AddTestWall bool
}

// Name implements Stage.
func (Enclosure) Name() string { return "enclosure" }

// Apply implements Stage.
func (e Enclosure) Apply(src, out tree.Node, md *state.ModelData) error {
	enclosure := out.Ensure(buildingDetailsPath("Enclosure")...)
	facility := md.BuildingDetailString("facility_type", "")

	var windows, doors []map[string]any

	walls, err := components.ExtractAndProcess(src, "Wall", md, state.CounterWall, "Wall",
		func(component tree.Node, id string, md *state.ModelData) (map[string]any, error) {
			wall, err := translateWall(component, id, facility, md)
			if err != nil {
				return nil, err
			}
			nestedWindows, nestedDoors, err := translateOpenings(component, id, md)
			if err != nil {
				return nil, err
			}
			windows = append(windows, nestedWindows...)
			doors = append(doors, nestedDoors...)
			return wall, nil
		})
	if err != nil {
		return err
	}

	if e.AddTestWall {
		wall, err := injectTestWall(facility, md)
		if err != nil {
			return err
		}
		walls = append(walls, wall)
	}

	// Openings H2K stores at the top level (not nested under a wall) share
	// the same counters, so identifiers stay unique across both placements.
	topWindows, err := components.ExtractAndProcess(src, "Window", md, state.CounterWindow, "Window",
		func(component tree.Node, id string, md *state.ModelData) (map[string]any, error) {
			return translateWindow(component, id, "", md), nil
		})
	if err != nil {
		return err
	}
	windows = append(windows, topWindows...)

	topDoors, err := components.ExtractAndProcess(src, "Door", md, state.CounterDoor, "Door",
		func(component tree.Node, id string, md *state.ModelData) (map[string]any, error) {
			return translateDoor(component, id, "", md), nil
		})
	if err != nil {
		return err
	}
	doors = append(doors, topDoors...)

	type atticRoof struct {
		attic map[string]any
		roof  map[string]any
	}
	ceilings, err := components.ExtractAndProcess(src, "Ceiling", md, state.CounterCeiling, "Ceiling",
		func(component tree.Node, id string, md *state.ModelData) (atticRoof, error) {
			atticN, err := md.Counters().Increment(state.CounterAttic)
			if err != nil {
				return atticRoof{}, err
			}
			roofN, err := md.Counters().Increment(state.CounterRoof)
			if err != nil {
				return atticRoof{}, err
			}
			atticID := fmt.Sprintf("Attic%d", atticN)
			roofID := fmt.Sprintf("Roof%d", roofN)

			label := components.ComponentLabel(component)
			rsi := components.RValue(constructionType(component, "CeilingType"), "rValue", "Ceiling "+label, md)

			roof := map[string]any{
				"SystemIdentifier":   idNode(roofID),
				"InteriorAdjacentTo": "attic - vented",
				"RadiantBarrier":     "false",
				"Insulation":         insulationNode(roofID, rsi),
			}
			if area, ok := component.Float("Measurements", tree.AttrPrefix+"area"); ok {
				roof["Area"] = tree.FormatFloat(area * sqmToSqft)
			}
			attic := map[string]any{
				"SystemIdentifier": idNode(atticID),
				"AtticType":        map[string]any{"Attic": map[string]any{"Vented": "true"}},
				"AttachedToRoof":   idrefNode(roofID),
			}
			return atticRoof{attic: attic, roof: roof}, nil
		})
	if err != nil {
		return err
	}

	floors, err := components.ExtractAndProcess(src, "Floor", md, state.CounterFloor, "Floor",
		func(component tree.Node, id string, md *state.ModelData) (map[string]any, error) {
			label := components.ComponentLabel(component)
			rsi := components.RValue(constructionType(component, "Type"), "rValue", "Floor "+label, md)
			floor := map[string]any{
				"SystemIdentifier":   idNode(id),
				"ExteriorAdjacentTo": components.ExteriorAdjacentTo(component, facility),
				"InteriorAdjacentTo": interiorConditioned,
				"FloorType":          map[string]any{"WoodFrame": ""},
				"Insulation":         insulationNode(id, rsi),
			}
			if area, ok := component.Float("Measurements", tree.AttrPrefix+"area"); ok {
				floor["Area"] = tree.FormatFloat(area * sqmToSqft)
			}
			return floor, nil
		})
	if err != nil {
		return err
	}

	foundations, foundationWalls, slabs, err := e.translateFoundations(src, md)
	if err != nil {
		return err
	}

	rimJoists, err := components.ExtractAndProcess(src, "FloorHeader", md, state.CounterFloorHeader, "RimJoist",
		func(component tree.Node, id string, md *state.ModelData) (map[string]any, error) {
			label := components.ComponentLabel(component)
			rsi := components.RValue(constructionType(component, "Type"), "rValue", "Floor header "+label, md)
			joist := map[string]any{
				"SystemIdentifier":   idNode(id),
				"ExteriorAdjacentTo": components.ExteriorAdjacentTo(component, facility),
				"InteriorAdjacentTo": interiorConditioned,
				"Insulation":         insulationNode(id, rsi),
			}
			if area, ok := rectangularArea(component); ok {
				joist["Area"] = tree.FormatFloat(area * sqmToSqft)
			}
			return joist, nil
		})
	if err != nil {
		return err
	}

	attics := make([]map[string]any, 0, len(ceilings))
	roofs := make([]map[string]any, 0, len(ceilings))
	for _, pair := range ceilings {
		attics = append(attics, pair.attic)
		roofs = append(roofs, pair.roof)
	}

	setSection(enclosure, "Attics", "Attic", attics)
	setSection(enclosure, "Roofs", "Roof", roofs)
	setSection(enclosure, "Foundations", "Foundation", foundations)
	setSection(enclosure, "FoundationWalls", "FoundationWall", foundationWalls)
	setSection(enclosure, "Slabs", "Slab", slabs)
	setSection(enclosure, "RimJoists", "RimJoist", rimJoists)
	setSection(enclosure, "Walls", "Wall", walls)
	setSection(enclosure, "Floors", "Floor", floors)
	setSection(enclosure, "Windows", "Window", windows)
	setSection(enclosure, "Doors", "Door", doors)
	return nil
}

func (e Enclosure) translateFoundations(src tree.Node, md *state.ModelData) (foundations, foundationWalls, slabs []map[string]any, err error) {
	type basementParts struct {
		foundation map[string]any
		wall       map[string]any
		slab       map[string]any
	}
	basements, err := components.ExtractAndProcess(src, "Basement", md, state.CounterFoundation, "Foundation",
		func(component tree.Node, id string, md *state.ModelData) (basementParts, error) {
			wallN, err := md.Counters().Increment(state.CounterFoundationWall)
			if err != nil {
				return basementParts{}, err
			}
			slabN, err := md.Counters().Increment(state.CounterSlab)
			if err != nil {
				return basementParts{}, err
			}
			wallID := fmt.Sprintf("FoundationWall%d", wallN)
			slabID := fmt.Sprintf("Slab%d", slabN)

			label := components.ComponentLabel(component)
			if err := md.AddFoundationDetail(map[string]any{
				"type":  "basement",
				"label": label,
				"id":    id,
			}); err != nil {
				return basementParts{}, err
			}

			wallRSI := components.RValue(constructionType(component.Child("Wall"), "Type"), "rValue", "Basement wall "+label, md)
			floorRSI := components.RValue(constructionType(component.Child("Floor"), "Type"), "rValue", "Basement floor "+label, md)

			foundation := map[string]any{
				"SystemIdentifier":         idNode(id),
				"FoundationType":           map[string]any{"Basement": map[string]any{"Conditioned": "true"}},
				"AttachedToFoundationWall": idrefNode(wallID),
				"AttachedToSlab":           idrefNode(slabID),
			}
			foundationWall := map[string]any{
				"SystemIdentifier":   idNode(wallID),
				"ExteriorAdjacentTo": "ground",
				"InteriorAdjacentTo": "basement - conditioned",
				"Insulation":         insulationNode(wallID, wallRSI),
			}
			if height, ok := component.Float("Wall", "Measurements", tree.AttrPrefix+"height"); ok {
				foundationWall["Height"] = tree.FormatFloat(height * mToFt)
			}
			slab := map[string]any{
				"SystemIdentifier":   idNode(slabID),
				"InteriorAdjacentTo": "basement - conditioned",
				"Insulation":         insulationNode(slabID, floorRSI),
			}
			if area, ok := component.Float("Floor", "Measurements", tree.AttrPrefix+"area"); ok {
				slab["Area"] = tree.FormatFloat(area * sqmToSqft)
			}
			return basementParts{foundation: foundation, wall: foundationWall, slab: slab}, nil
		})
	if err != nil {
		return nil, nil, nil, err
	}
	for _, parts := range basements {
		foundations = append(foundations, parts.foundation)
		foundationWalls = append(foundationWalls, parts.wall)
		slabs = append(slabs, parts.slab)
	}

	type crawlspaceParts struct {
		foundation map[string]any
		wall       map[string]any
	}
	crawlspaces, err := components.ExtractAndProcess(src, "Crawlspace", md, state.CounterCrawlspace, "Crawlspace",
		func(component tree.Node, id string, md *state.ModelData) (crawlspaceParts, error) {
			foundationN, err := md.Counters().Increment(state.CounterFoundation)
			if err != nil {
				return crawlspaceParts{}, err
			}
			wallN, err := md.Counters().Increment(state.CounterFoundationWall)
			if err != nil {
				return crawlspaceParts{}, err
			}
			foundationID := fmt.Sprintf("Foundation%d", foundationN)
			wallID := fmt.Sprintf("FoundationWall%d", wallN)

			label := components.ComponentLabel(component)
			if err := md.AddFoundationDetail(map[string]any{
				"type":  "crawlspace",
				"label": label,
				"id":    foundationID,
			}); err != nil {
				return crawlspaceParts{}, err
			}

			vented := component.FlagSet(tree.AttrPrefix + "ventilated")
			adjacency := "crawlspace - unvented"
			if vented {
				adjacency = "crawlspace - vented"
			}
			wallRSI := components.RValue(constructionType(component.Child("Wall"), "Type"), "rValue", "Crawlspace wall "+label, md)

			foundation := map[string]any{
				"SystemIdentifier": idNode(foundationID),
				"FoundationType": map[string]any{
					"Crawlspace": map[string]any{"Vented": fmt.Sprintf("%t", vented)},
				},
				"AttachedToFoundationWall": idrefNode(wallID),
			}
			foundationWall := map[string]any{
				"SystemIdentifier":   idNode(wallID),
				"ExteriorAdjacentTo": "ground",
				"InteriorAdjacentTo": adjacency,
				"Insulation":         insulationNode(wallID, wallRSI),
			}
			return crawlspaceParts{foundation: foundation, wall: foundationWall}, nil
		})
	if err != nil {
		return nil, nil, nil, err
	}
	for _, parts := range crawlspaces {
		foundations = append(foundations, parts.foundation)
		foundationWalls = append(foundationWalls, parts.wall)
	}

	type slabParts struct {
		foundation map[string]any
		slab       map[string]any
	}
	slabComponents, err := components.ExtractAndProcess(src, "Slab", md, state.CounterSlab, "Slab",
		func(component tree.Node, id string, md *state.ModelData) (slabParts, error) {
			foundationN, err := md.Counters().Increment(state.CounterFoundation)
			if err != nil {
				return slabParts{}, err
			}
			foundationID := fmt.Sprintf("Foundation%d", foundationN)

			label := components.ComponentLabel(component)
			if err := md.AddFoundationDetail(map[string]any{
				"type":  "slab",
				"label": label,
				"id":    foundationID,
			}); err != nil {
				return slabParts{}, err
			}

			rsi := components.RValue(constructionType(component.Child("Floor"), "Type"), "rValue", "Slab "+label, md)
			foundation := map[string]any{
				"SystemIdentifier": idNode(foundationID),
				"FoundationType":   map[string]any{"SlabOnGrade": ""},
				"AttachedToSlab":   idrefNode(id),
			}
			slab := map[string]any{
				"SystemIdentifier":   idNode(id),
				"InteriorAdjacentTo": interiorConditioned,
				"Insulation":         insulationNode(id, rsi),
			}
			if area, ok := component.Float("Floor", "Measurements", tree.AttrPrefix+"area"); ok {
				slab["Area"] = tree.FormatFloat(area * sqmToSqft)
			}
			return slabParts{foundation: foundation, slab: slab}, nil
		})
	if err != nil {
		return nil, nil, nil, err
	}
	for _, parts := range slabComponents {
		foundations = append(foundations, parts.foundation)
		slabs = append(slabs, parts.slab)
	}

	return foundations, foundationWalls, slabs, nil
}

// translateOpenings handles the windows and doors H2K nests under a wall.
// They run through the same global counters as top-level openings.
func translateOpenings(wall tree.Node, wallID string, md *state.ModelData) (windows, doors []map[string]any, err error) {
	for _, component := range wall.Sequence("Components", "Window") {
		n, err := md.Counters().Increment(state.CounterWindow)
		if err != nil {
			return nil, nil, err
		}
		windows = append(windows, translateWindow(component, fmt.Sprintf("Window%d", n), wallID, md))
	}
	for _, component := range wall.Sequence("Components", "Door") {
		n, err := md.Counters().Increment(state.CounterDoor)
		if err != nil {
			return nil, nil, err
		}
		doors = append(doors, translateDoor(component, fmt.Sprintf("Door%d", n), wallID, md))
	}
	return windows, doors, nil
}

func translateWall(component tree.Node, id, facility string, md *state.ModelData) (map[string]any, error) {
	label := components.ComponentLabel(component)
	rsi := components.RValue(constructionType(component, "Type"), "rValue", "Wall "+label, md)

	wall := map[string]any{
		"SystemIdentifier":   idNode(id),
		"ExteriorAdjacentTo": components.ExteriorAdjacentTo(component, facility),
		"InteriorAdjacentTo": interiorConditioned,
		"WallType":           map[string]any{"WoodStud": ""},
		"Insulation":         insulationNode(id, rsi),
	}
	if height, okH := component.Float("Measurements", tree.AttrPrefix+"height"); okH {
		if perimeter, okP := component.Float("Measurements", tree.AttrPrefix+"perimeter"); okP {
			wall["Area"] = tree.FormatFloat(height * perimeter * sqmToSqft)
		}
	}

	if err := md.AddWallSegment(wall); err != nil {
		return nil, err
	}
	return wall, nil
}

// translateWindow converts one window. H2K window measurements are in
// millimetres, unlike the metre-based wall measurements.
func translateWindow(component tree.Node, id, attachedWallID string, md *state.ModelData) map[string]any {
	label := components.ComponentLabel(component)
	rsi := components.RValue(constructionType(component, "Type"), "rValue", "Window "+label, md)

	window := map[string]any{
		"SystemIdentifier": idNode(id),
	}
	if height, okH := component.Float("Measurements", tree.AttrPrefix+"height"); okH {
		if width, okW := component.Float("Measurements", tree.AttrPrefix+"width"); okW {
			area := height * mmToM * width * mmToM
			window["Area"] = tree.FormatFloat(area * sqmToSqft)
		}
	}
	if rsi > 0 {
		window["UFactor"] = tree.FormatFloat(1 / (rsi * rsiToRValue))
	}
	if shgc := component.Text("Measurements", tree.AttrPrefix+"shgc"); shgc != "" {
		window["SHGC"] = shgc
	}
	if attachedWallID != "" {
		window["AttachedToWall"] = idrefNode(attachedWallID)
	}
	return window
}

func translateDoor(component tree.Node, id, attachedWallID string, md *state.ModelData) map[string]any {
	label := components.ComponentLabel(component)
	rsi := components.RValue(constructionType(component, "Type"), "rValue", "Door "+label, md)

	door := map[string]any{
		"SystemIdentifier": idNode(id),
		"RValue":           tree.FormatFloat(rsi * rsiToRValue),
	}
	if area, ok := rectangularArea(component); ok {
		door["Area"] = tree.FormatFloat(area * sqmToSqft)
	}
	if attachedWallID != "" {
		door["AttachedToWall"] = idrefNode(attachedWallID)
	}
	return door
}

// injectTestWall adds one synthetic wall segment through the normal pipeline
// so reference/validation workflows get a deterministic extra surface.
func injectTestWall(facility string, md *state.ModelData) (map[string]any, error) {
	n, err := md.Counters().Increment(state.CounterWall)
	if err != nil {
		return nil, err
	}
	component := tree.Node{
		"Label": "Test Wall",
		"Construction": map[string]any{
			"Type": map[string]any{tree.AttrPrefix + "rValue": "3.08"},
		},
		"Measurements": map[string]any{
			tree.AttrPrefix + "height":    "2.4",
			tree.AttrPrefix + "perimeter": "10",
		},
	}
	return translateWall(component, fmt.Sprintf("Wall%d", n), facility, md)
}

// constructionType returns the nested construction node carrying the
// insulation value, falling back to the generic Type element when the
// kind-specific one is absent.
func constructionType(component tree.Node, kind string) tree.Node {
	construction := component.Child("Construction")
	if construction == nil {
		return nil
	}
	if node := construction.Child(kind); node != nil {
		return node
	}
	return construction.Child("Type")
}

func rectangularArea(component tree.Node) (float64, bool) {
	height, okH := component.Float("Measurements", tree.AttrPrefix+"height")
	width, okW := component.Float("Measurements", tree.AttrPrefix+"width")
	if !okH || !okW {
		return 0, false
	}
	return height * width, true
}

func idNode(id string) map[string]any {
	return map[string]any{tree.AttrPrefix + "id": id}
}

func idrefNode(id string) map[string]any {
	return map[string]any{tree.AttrPrefix + "idref": id}
}

func insulationNode(parentID string, rsi float64) map[string]any {
	return map[string]any{
		"SystemIdentifier":        idNode(parentID + "Insulation"),
		"AssemblyEffectiveRValue": tree.FormatFloat(rsi * rsiToRValue),
	}
}

func setSection(enclosure tree.Node, section, element string, items []map[string]any) {
	if len(items) == 0 {
		return
	}
	values := make([]any, len(items))
	for i, item := range items {
		values[i] = item
	}
	enclosure.Ensure(section)[element] = values
}
