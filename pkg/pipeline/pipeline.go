// Package pipeline runs the isograph conversion: GraphML in, frontend
// artifacts out, retention ledger updated.
//
// This package is the single entry point used by every command. By
// centralizing the stage order here, the CLI and any future caller agree on
// when artifacts are written and when the ledger is touched.
//
// # Architecture
//
// A conversion has four stages:
//
//  1. Parse: read the GraphML document ([graphml.ImportGraphML])
//  2. Project: map it onto the frontend schema with layout positions
//  3. Write: publish nodes.json and edges.json ([io.ExportArtifacts])
//  4. Retain: touch the protein id in the retention ledger and delete the
//     backing files of evicted ids
//
// The ledger is only touched after both artifacts are written. A ledger
// failure never undoes a conversion; it is reported in
// [Result.RetentionErr].
//
// # Usage
//
//	runner := pipeline.NewRunner(ledger, pipeline.Dirs{}, logger)
//	result, err := runner.ConvertFile(ctx, "P04637.graphml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Stats.NodeCount, result.Evicted)
//
// [Runner.Generate] chains resolution, download and the external graph
// generator in front of the same conversion.
//
// [graphml.ImportGraphML]: github.com/matzehuels/isograph/pkg/graphml
// [io.ExportArtifacts]: github.com/matzehuels/isograph/pkg/io
package pipeline

import (
	"path/filepath"
	"time"

	apperrors "github.com/matzehuels/isograph/pkg/errors"
	"github.com/matzehuels/isograph/pkg/graph"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultDataDir holds generated .graphml files.
	DefaultDataDir = "data"

	// DefaultOutputDir receives nodes.json and edges.json.
	DefaultOutputDir = "generated"

	// DefaultUploadDir is scratch space for uploaded peptide and metadata files.
	DefaultUploadDir = "uploads"

	// DefaultDownloadDir holds UniProt flat-file entries.
	DefaultDownloadDir = "downloads"
)

// Format constants for preview output.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported preview formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// =============================================================================
// Directories
// =============================================================================

// Dirs locates the working directories of a Runner. Empty fields use the
// defaults above.
type Dirs struct {
	Data     string
	Output   string
	Upload   string
	Download string
}

func (d Dirs) withDefaults() Dirs {
	if d.Data == "" {
		d.Data = DefaultDataDir
	}
	if d.Output == "" {
		d.Output = DefaultOutputDir
	}
	if d.Upload == "" {
		d.Upload = DefaultUploadDir
	}
	if d.Download == "" {
		d.Download = DefaultDownloadDir
	}
	return d
}

// GraphPath returns where the graph for id lives in the data directory.
func (d Dirs) GraphPath(id string) string {
	return filepath.Join(d.Data, id+apperrors.GraphFileExt)
}

// EntryPath returns where the UniProt entry for id is downloaded.
func (d Dirs) EntryPath(id string) string {
	return filepath.Join(d.Download, id+".txt")
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a conversion.
type Result struct {
	// ID is the protein id, the input file name without extension.
	ID string

	// RunID identifies this conversion in logs.
	RunID string

	// OutputDir is where the artifacts were written.
	OutputDir string

	Nodes []graph.Node
	Edges []graph.Edge

	// Evicted lists ids dropped from the retention ledger by this run.
	Evicted []string

	// RetentionErr is set when the ledger could not be updated. The
	// artifacts are still valid.
	RetentionErr error

	Stats Stats
}

// Stats contains conversion timing and size information.
type Stats struct {
	NodeCount int
	EdgeCount int
	ParseTime time.Duration
	WriteTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a preview format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidInput,
			"invalid format: %q (must be one of: dot, svg, png, pdf)", format)
	}
	return nil
}
