package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/isograph/pkg/graph"
)

// ReadNodes decodes a nodes.json document from r.
// ReadNodes does not close r.
func ReadNodes(r io.Reader) ([]graph.Node, error) {
	var nodes []graph.Node
	if err := json.NewDecoder(r).Decode(&nodes); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return nodes, nil
}

// ReadEdges decodes an edges.json document from r.
// ReadEdges does not close r.
func ReadEdges(r io.Reader) ([]graph.Edge, error) {
	var edges []graph.Edge
	if err := json.NewDecoder(r).Decode(&edges); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return edges, nil
}

// ImportArtifacts reads nodes.json and edges.json from dir.
func ImportArtifacts(dir string) ([]graph.Node, []graph.Edge, error) {
	nf, err := os.Open(filepath.Join(dir, NodesFile))
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", NodesFile, err)
	}
	defer nf.Close()
	nodes, err := ReadNodes(nf)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", NodesFile, err)
	}

	ef, err := os.Open(filepath.Join(dir, EdgesFile))
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", EdgesFile, err)
	}
	defer ef.Close()
	edges, err := ReadEdges(ef)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", EdgesFile, err)
	}
	return nodes, edges, nil
}
