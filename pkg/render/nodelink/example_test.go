package nodelink_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/isograph/pkg/graph"
	"github.com/matzehuels/isograph/pkg/render/nodelink"
)

func ExampleToDOT() {
	nodes := []graph.Node{
		{ID: "A", Data: graph.NodeData{Sequence: "MKT"}},
		{ID: "B", Data: graph.NodeData{Sequence: "LV"}, Position: graph.Position{X: 100}},
	}
	edges := []graph.Edge{
		{Source: "A", Target: "B", Data: graph.EdgeData{IsoformString: "iso1"}},
	}

	fmt.Print(nodelink.ToDOT(nodes, edges, nodelink.Options{}))
	// Output:
	// digraph G {
	//   rankdir=LR;
	//   bgcolor="transparent";
	//   node [shape=box, style="rounded,filled", fillcolor=white, fontname="monospace", fontsize=14, margin="0.2,0.1"];
	//   edge [fontsize=10];
	//   ranksep=0.4;
	//   nodesep=0.3;
	//
	//   "A" [label="A\nMKT"];
	//   "B" [label="B\nLV"];
	//
	//   "A" -> "B" [label="iso1"];
	// }
}

func ExampleRenderSVG() {
	nodes := []graph.Node{{ID: "A", Data: graph.NodeData{Sequence: "MKT"}}}
	dot := nodelink.ToDOT(nodes, nil, nodelink.Options{})

	svg, err := nodelink.RenderSVG(context.Background(), dot)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Generated SVG (%d bytes)\n", len(svg))
	// Output varies based on Graphviz installation
}
