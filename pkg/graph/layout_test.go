package graph

import (
	"testing"

	"github.com/matzehuels/isograph/pkg/graphml"
)

func TestPositionFor(t *testing.T) {
	tests := []struct {
		name     string
		position *int
		want     Position
	}{
		{"absent", nil, Position{X: -100, Y: 0}},
		{"zero", intPtr(0), Position{X: 0, Y: 0}},
		{"three", intPtr(3), Position{X: 300, Y: 0}},
		{"large", intPtr(393), Position{X: 39300, Y: 0}},
		{"negative", intPtr(-2), Position{X: -200, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PositionFor(graphml.NodeAttrs{Sequence: "M", Position: tt.position})
			if got != tt.want {
				t.Errorf("PositionFor() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPositionFor_SharedPositions(t *testing.T) {
	// Unpositioned nodes and alternative isoform nodes at the same position
	// collapse onto one hint.
	a := PositionFor(graphml.NodeAttrs{Position: intPtr(2)})
	b := PositionFor(graphml.NodeAttrs{Position: intPtr(2)})
	if a != b {
		t.Errorf("same position yields %+v and %+v", a, b)
	}
}
