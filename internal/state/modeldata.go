// Package state holds the mutable translation context threaded through every
// processing stage: building details, component lists, sequential counters,
// the mechanical-system tracker, advisory warnings, and the bucketed source
// results. One ModelData is created per translation call, mutated by the
// stages in order, and discarded with the output; it is never shared across
// concurrent calls and its appenders are deliberately unsynchronized.
package state

import (
	"log/slog"

	h2kerr "github.com/canmet-energy/h2ktohpxml/errors"
	"github.com/canmet-energy/h2ktohpxml/pkg/tree"
)

// ModelData is the shared translation state container.
type ModelData struct {
	logger *slog.Logger

	buildingDetails   map[string]any
	foundationDetails []tree.Node
	wallSegments      []tree.Node

	counters *CounterManager
	systems  *SystemTracker

	warnings []Record
	errors   []Record

	results map[string][]tree.Node
}

// New constructs a fresh ModelData seeded with the translation defaults. The
// logger is the injected warning sink; nil falls back to slog.Default.
func New(logger *slog.Logger) *ModelData {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModelData{
		logger: logger,
		buildingDetails: map[string]any{
			"building_type": "house",
			"murb_units":    0,
		},
		counters: NewCounterManager(),
		systems:  NewSystemTracker(),
		results: map[string][]tree.Node{
			BucketGeneral:   nil,
			BucketSOC:       nil,
			BucketReference: nil,
		},
	}
}

// BuildingDetail returns the value stored under key, or def when absent.
func (m *ModelData) BuildingDetail(key string, def any) any {
	if value, ok := m.buildingDetails[key]; ok {
		return value
	}
	return def
}

// BuildingDetailString returns the detail as text, or def when absent or not
// a string.
func (m *ModelData) BuildingDetailString(key, def string) string {
	if value, ok := m.buildingDetails[key].(string); ok {
		return value
	}
	return def
}

// SetBuildingDetail stores one building detail, overwriting any prior value.
func (m *ModelData) SetBuildingDetail(key string, value any) {
	m.buildingDetails[key] = value
}

// SetBuildingDetails bulk-merges details into the container; colliding keys
// are overwritten.
func (m *ModelData) SetBuildingDetails(details map[string]any) {
	for key, value := range details {
		m.buildingDetails[key] = value
	}
}

// AddFoundationDetail appends one foundation entry. The value must be
// mapping-shaped; a missing conventional "type" key warns but does not block
// insertion.
func (m *ModelData) AddFoundationDetail(v any) error {
	node, ok := tree.AsNode(v)
	if !ok {
		return h2kerr.NewStructuralError("foundation detail", v)
	}
	if _, ok := node["type"]; !ok {
		m.AddWarning(Record{
			Message: "foundation detail has no type",
			Fields:  map[string]any{"keys": len(node)},
		})
	}
	m.foundationDetails = append(m.foundationDetails, node)
	return nil
}

// FoundationDetails returns the ordered foundation entries.
func (m *ModelData) FoundationDetails() []tree.Node {
	return append([]tree.Node(nil), m.foundationDetails...)
}

// AddWallSegment appends one wall segment. The value must be mapping-shaped.
func (m *ModelData) AddWallSegment(v any) error {
	node, ok := tree.AsNode(v)
	if !ok {
		return h2kerr.NewStructuralError("wall segment", v)
	}
	m.wallSegments = append(m.wallSegments, node)
	return nil
}

// WallSegments returns the ordered wall segments.
func (m *ModelData) WallSegments() []tree.Node {
	return append([]tree.Node(nil), m.wallSegments...)
}

// Counters exposes the sequential component counters.
func (m *ModelData) Counters() *CounterManager {
	return m.counters
}

// Systems exposes the mechanical-system tracker.
func (m *ModelData) Systems() *SystemTracker {
	return m.systems
}

// AddWarning normalizes v (bare string or Record) into a warning record,
// stores it, and forwards it to the logging sink at warning severity.
func (m *ModelData) AddWarning(v any) {
	record := normalizeRecord(v)
	m.warnings = append(m.warnings, record)
	m.logger.Warn(record.Message, recordAttrs(record)...)
}

// AddError normalizes v into an error record and stores it. Errors recorded
// here are advisory context for the caller; aborting failures propagate as
// returned errors instead.
func (m *ModelData) AddError(v any) {
	record := normalizeRecord(v)
	m.errors = append(m.errors, record)
	m.logger.Error(record.Message, recordAttrs(record)...)
}

// Warnings returns a copy of the accumulated warning records in insertion
// order.
func (m *ModelData) Warnings() []Record {
	return append([]Record(nil), m.warnings...)
}

// Errors returns a copy of the accumulated error records in insertion order.
func (m *ModelData) Errors() []Record {
	return append([]Record(nil), m.errors...)
}

func recordAttrs(record Record) []any {
	attrs := make([]any, 0, len(record.Fields)*2)
	for key, value := range record.Fields {
		attrs = append(attrs, key, value)
	}
	return attrs
}
