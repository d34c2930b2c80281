package pipeline

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	apperrors "github.com/matzehuels/isograph/pkg/errors"
	"github.com/matzehuels/isograph/pkg/graph"
	"github.com/matzehuels/isograph/pkg/graphml"
	artifactio "github.com/matzehuels/isograph/pkg/io"
	"github.com/matzehuels/isograph/pkg/observability"
	"github.com/matzehuels/isograph/pkg/protgraph"
	"github.com/matzehuels/isograph/pkg/resolver"
	"github.com/matzehuels/isograph/pkg/retention"
)

// Runner executes conversions.
//
// A Runner holds no per-conversion state; multiple goroutines may convert
// through the same Runner, which must not be copied after first use.
// Retention may be nil to skip ledger updates.
// Resolver and Generator are only needed by [Runner.Generate].
type Runner struct {
	Retention *retention.Cache
	Resolver  *resolver.Resolver
	Generator *protgraph.Runner
	Dirs      Dirs
	Logger    *log.Logger

	// scratch is held shared while the upload and download directories are
	// in use and exclusively while they are emptied.
	scratch sync.RWMutex
}

// NewRunner creates a runner. Empty dirs use the package defaults and a nil
// logger discards output.
func NewRunner(ledger *retention.Cache, dirs Dirs, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		Retention: ledger,
		Dirs:      dirs.withDefaults(),
		Logger:    logger,
	}
}

// ConvertFile converts a graph file from the data directory into the output
// directory. name must be a bare file name ending in .graphml.
func (r *Runner) ConvertFile(ctx context.Context, name string) (*Result, error) {
	path, err := resolveInput(r.Dirs.Data, name)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, err, "input file %q does not exist", name)
	}
	return r.Convert(ctx, path, r.Dirs.Output)
}

// Convert parses inputPath, writes the artifacts into outputDir and then
// touches the protein id in the retention ledger.
//
// Parse failures are PARSE_ERROR and write failures WRITE_ERROR; in both
// cases the ledger is left untouched. Ledger failures do not fail the
// conversion and are reported in Result.RetentionErr.
func (r *Runner) Convert(ctx context.Context, inputPath, outputDir string) (*Result, error) {
	if err := apperrors.ValidatePath(inputPath); err != nil {
		return nil, err
	}
	if err := apperrors.ValidatePath(outputDir); err != nil {
		return nil, err
	}

	result := &Result{
		ID:        ProteinID(inputPath),
		RunID:     uuid.NewString(),
		OutputDir: outputDir,
	}
	logger := r.Logger.With("run", result.RunID)
	hooks := observability.Pipeline()

	// Stage 1: Parse
	hooks.OnParseStart(ctx, inputPath)
	parseStart := time.Now()
	doc, err := graphml.ImportGraphML(inputPath)
	result.Stats.ParseTime = time.Since(parseStart)
	if err != nil {
		hooks.OnParseComplete(ctx, inputPath, 0, 0, result.Stats.ParseTime, err)
		return nil, err
	}
	hooks.OnParseComplete(ctx, inputPath, doc.NodeCount(), doc.EdgeCount(), result.Stats.ParseTime, nil)
	result.Stats.NodeCount = doc.NodeCount()
	result.Stats.EdgeCount = doc.EdgeCount()

	logger.Info("parsed graph",
		"id", result.ID,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.ParseTime)

	// Stage 2: Project
	result.Nodes, result.Edges = graph.Project(doc)

	// Stage 3: Write
	hooks.OnWriteStart(ctx, outputDir)
	writeStart := time.Now()
	err = artifactio.ExportArtifacts(outputDir, result.Nodes, result.Edges)
	result.Stats.WriteTime = time.Since(writeStart)
	hooks.OnWriteComplete(ctx, outputDir, result.Stats.WriteTime, err)
	if err != nil {
		return nil, err
	}

	logger.Info("wrote artifacts", "dir", outputDir, "duration", result.Stats.WriteTime)

	// Stage 4: Retain
	if r.Retention == nil {
		return result, nil
	}
	result.Evicted, result.RetentionErr = r.Retain(ctx, result.ID)
	if result.RetentionErr != nil {
		logger.Warn("retention ledger not updated", "id", result.ID, "error", result.RetentionErr)
	}
	return result, nil
}

// Retain touches id in the retention ledger and deletes the backing files of
// every id it evicts: the graph in the data directory and the entry in the
// download directory. Scratch directories are emptied on eviction. Cleanup
// failures are logged; only ledger failures are returned. Evicted ids that
// are not plain protein tokens are skipped without touching the filesystem.
//
// Scratch directories are emptied only once no Generate on this Runner is
// between fetching its inputs and running the generator. Other processes
// sharing the directories are not coordinated.
func (r *Runner) Retain(ctx context.Context, id string) ([]string, error) {
	if r.Retention == nil {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "runner has no retention ledger")
	}
	evicted, err := r.Retention.Touch(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(evicted) == 0 {
		return evicted, nil
	}

	for _, old := range evicted {
		if err := apperrors.ValidateProteinToken(old); err != nil {
			r.Logger.Warn("skipping cleanup of invalid evicted id", "id", old, "error", err)
			continue
		}
		err := errors.Join(
			removeIfExists(r.Dirs.GraphPath(old)),
			removeIfExists(r.Dirs.EntryPath(old)),
		)
		observability.Retention().OnEvict(ctx, old, err)
		if err != nil {
			r.Logger.Warn("could not delete evicted files", "id", old, "error", err)
			continue
		}
		r.Logger.Info("evicted graph", "id", old)
	}
	r.clearScratch()
	return evicted, nil
}

// useScratch marks the scratch directories as in use until release is called.
func (r *Runner) useScratch() (release func()) {
	r.scratch.RLock()
	return r.scratch.RUnlock
}

func (r *Runner) clearScratch() {
	r.scratch.Lock()
	defer r.scratch.Unlock()
	for _, dir := range []string{r.Dirs.Upload, r.Dirs.Download} {
		if err := clearDir(dir); err != nil {
			r.Logger.Warn("could not clear scratch directory", "dir", dir, "error", err)
		}
	}
}

// Close releases the retention ledger.
func (r *Runner) Close() error {
	if r.Retention != nil {
		return r.Retention.Close()
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// clearDir removes the contents of dir, keeping dir itself.
func clearDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	var errs []error
	for _, e := range entries {
		errs = append(errs, os.RemoveAll(filepath.Join(dir, e.Name())))
	}
	return errors.Join(errs...)
}
