package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	apperrors "github.com/matzehuels/isograph/pkg/errors"
	"github.com/matzehuels/isograph/pkg/graph"
)

// Artifact file names inside an output directory.
const (
	NodesFile = "nodes.json"
	EdgesFile = "edges.json"
)

// WriteNodes encodes nodes as an indented JSON array and writes it to w.
// A nil or empty slice is written as [].
func WriteNodes(w io.Writer, nodes []graph.Node) error {
	if nodes == nil {
		nodes = []graph.Node{}
	}
	return writeJSON(w, nodes)
}

// WriteEdges encodes edges as an indented JSON array and writes it to w.
// A nil or empty slice is written as [].
func WriteEdges(w io.Writer, edges []graph.Edge) error {
	if edges == nil {
		edges = []graph.Edge{}
	}
	return writeJSON(w, edges)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportArtifacts writes nodes.json and edges.json into dir, creating dir if
// needed. Existing artifacts are replaced. All failures carry WRITE_ERROR.
func ExportArtifacts(dir string, nodes []graph.Node, edges []graph.Edge) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeWrite, err, "create output directory %s", dir)
	}

	staging := filepath.Join(dir, ".staging-"+uuid.NewString())
	if err := os.Mkdir(staging, 0o755); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeWrite, err, "create staging directory")
	}
	defer os.RemoveAll(staging)

	if err := exportFile(filepath.Join(staging, NodesFile), func(w io.Writer) error {
		return WriteNodes(w, nodes)
	}); err != nil {
		return err
	}
	if err := exportFile(filepath.Join(staging, EdgesFile), func(w io.Writer) error {
		return WriteEdges(w, edges)
	}); err != nil {
		return err
	}

	for _, name := range []string{NodesFile, EdgesFile} {
		if err := os.Rename(filepath.Join(staging, name), filepath.Join(dir, name)); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeWrite, err, "commit %s", name)
		}
	}
	return nil
}

func exportFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeWrite, err, "create %s", filepath.Base(path))
	}
	if err := write(f); err != nil {
		f.Close()
		return apperrors.Wrap(apperrors.ErrCodeWrite, err, "write %s", filepath.Base(path))
	}
	if err := f.Close(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeWrite, err, "close %s", filepath.Base(path))
	}
	return nil
}
