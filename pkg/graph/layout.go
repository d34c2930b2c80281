package graph

import "github.com/matzehuels/isograph/pkg/graphml"

const (
	// PositionSpacing is the horizontal distance between consecutive
	// sequence positions.
	PositionSpacing = 100

	// UnpositionedX is the x coordinate of nodes without a position
	// attribute. All such nodes are stacked at this offset.
	UnpositionedX = -100
)

// PositionFor returns the layout hint for a node. Distinct nodes may share
// a position; this is a hint, not a constraint-satisfying layout.
func PositionFor(attrs graphml.NodeAttrs) Position {
	if attrs.Position == nil {
		return Position{X: UnpositionedX, Y: 0}
	}
	return Position{X: *attrs.Position * PositionSpacing, Y: 0}
}
