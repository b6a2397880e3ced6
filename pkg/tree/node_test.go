package tree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLookupWalksNestedMappings(t *testing.T) {
	t.Parallel()

	n := Node{
		"HouseFile": map[string]any{
			"House": map[string]any{
				"Label": "Test house",
			},
		},
	}

	value, ok := n.Lookup("HouseFile", "House", "Label")
	if !ok {
		t.Fatalf("expected path to resolve")
	}
	if value != "Test house" {
		t.Fatalf("unexpected value: %v", value)
	}

	if _, ok := n.Lookup("HouseFile", "Missing"); ok {
		t.Fatalf("expected absent path to miss")
	}
	if _, ok := n.Lookup("HouseFile", "House", "Label", "Deeper"); ok {
		t.Fatalf("expected descent through a leaf to miss")
	}
}

func TestEnsureReplacesNonMappingValues(t *testing.T) {
	t.Parallel()

	// Self-closing XML elements decode as empty strings; Ensure must still
	// be able to descend through them.
	n := Node{"HPXML": map[string]any{"Building": ""}}

	child := n.Ensure("HPXML", "Building", "BuildingDetails")
	child["Enclosure"] = map[string]any{}

	if n.Child("HPXML", "Building", "BuildingDetails", "Enclosure") == nil {
		t.Fatalf("expected ensured path to be navigable")
	}
}

func TestTextResolvesAttributeCarryingElements(t *testing.T) {
	t.Parallel()

	n := Node{
		"Plain": "hello",
		"Mixed": map[string]any{TextKey: "world", AttrPrefix + "code": "1"},
	}

	if got := n.Text("Plain"); got != "hello" {
		t.Fatalf("plain text: got %q", got)
	}
	if got := n.Text("Mixed"); got != "world" {
		t.Fatalf("mixed text: got %q", got)
	}
	if got := n.Text("Absent"); got != "" {
		t.Fatalf("absent text: got %q", got)
	}
}

func TestSequenceNormalizesCardinality(t *testing.T) {
	t.Parallel()

	single := Node{"Wall": map[string]any{"Label": "only"}}
	got := single.Sequence("Wall")
	if len(got) != 1 || got[0].Text("Label") != "only" {
		t.Fatalf("single mapping: got %v", got)
	}

	multi := Node{"Wall": []any{
		map[string]any{"Label": "first"},
		map[string]any{"Label": "second"},
	}}
	labels := []string{}
	for _, node := range multi.Sequence("Wall") {
		labels = append(labels, node.Text("Label"))
	}
	if diff := cmp.Diff([]string{"first", "second"}, labels); diff != "" {
		t.Fatalf("sequence order mismatch (-want +got):\n%s", diff)
	}

	if got := (Node{}).Sequence("Wall"); len(got) != 0 {
		t.Fatalf("absent path: got %v", got)
	}
	if got := (Node{"Wall": "text"}).Sequence("Wall"); len(got) != 0 {
		t.Fatalf("scalar value: got %v", got)
	}
}

func TestFloatParsesLeafText(t *testing.T) {
	t.Parallel()

	n := Node{"Area": " 12.5 ", "Bad": "12x", "Attr": map[string]any{AttrPrefix + "value": "3"}}

	if value, ok := n.Float("Area"); !ok || value != 12.5 {
		t.Fatalf("area: got %v ok=%v", value, ok)
	}
	if _, ok := n.Float("Bad"); ok {
		t.Fatalf("expected malformed number to miss")
	}
	if value, ok := n.Float("Attr", AttrPrefix+"value"); !ok || value != 3 {
		t.Fatalf("attr: got %v ok=%v", value, ok)
	}
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	original := Node{
		"House": map[string]any{
			"Components": []any{map[string]any{"Label": "wall"}},
		},
	}
	clone := original.Clone()
	clone.Child("House").Ensure("Extra")["x"] = "1"
	clone.Child("House").Sequence("Components")[0]["Label"] = "changed"

	if original.Child("House").Child("Extra") != nil {
		t.Fatalf("clone mutation leaked into original mapping")
	}
	if got := original.Child("House").Sequence("Components")[0].Text("Label"); got != "wall" {
		t.Fatalf("clone mutation leaked into original sequence: %q", got)
	}
}
