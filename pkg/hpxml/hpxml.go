// Package hpxml defines the contracts for the HPXML target side of the
// translation: loading the mutable output skeleton and serializing the
// mutated tree back to document text. Implementations live under
// internal/hpxml but satisfy these contracts.
package hpxml

import (
	"context"

	"github.com/canmet-energy/h2ktohpxml/pkg/tree"
)

// SkeletonLoader returns a fresh mutable output tree pre-populated with the
// target schema's fixed structure and defaults. Every translation call gets
// its own copy; stages mutate it in place.
type SkeletonLoader interface {
	Skeleton(ctx context.Context) (tree.Node, error)
}

// Meta carries the finalization inputs the serializer stamps into the
// document header.
type Meta struct {
	// Mode is the active translation mode; ASHRAE140 adds the
	// simplified-run extension flag.
	Mode string

	// SoftwareName and SoftwareVersion identify the generating program.
	SoftwareName    string
	SoftwareVersion string
}

// Serializer converts the mutated output tree back to HPXML document text.
type Serializer interface {
	Serialize(ctx context.Context, doc tree.Node, meta Meta) ([]byte, error)
}
