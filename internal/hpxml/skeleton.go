// Package hpxml implements the target-side contracts: the embedded output
// skeleton and the XML serializer that finalizes the mutated tree.
package hpxml

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/clbanning/mxj/v2"

	pkghpxml "github.com/canmet-energy/h2ktohpxml/pkg/hpxml"
	"github.com/canmet-energy/h2ktohpxml/pkg/tree"
)

//go:embed skeleton/base.xml
var skeletonXML []byte

// SkeletonLoader produces fresh output trees from the embedded HPXML
// skeleton.
type SkeletonLoader struct{}

// Ensure the implementation satisfies the public interface.
var _ pkghpxml.SkeletonLoader = (*SkeletonLoader)(nil)

// NewSkeletonLoader constructs the default skeleton loader.
func NewSkeletonLoader() *SkeletonLoader {
	return &SkeletonLoader{}
}

// Skeleton decodes the embedded skeleton into a mutable tree. Each call
// returns an independent copy: translation mutates the result in place, so
// sharing a decoded tree across calls would leak state between them.
func (l *SkeletonLoader) Skeleton(ctx context.Context) (tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mv, err := mxj.NewMapXml(skeletonXML)
	if err != nil {
		return nil, fmt.Errorf("hpxml: decode skeleton: %w", err)
	}
	return tree.Node(mv), nil
}
