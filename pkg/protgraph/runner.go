package protgraph

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/matzehuels/isograph/pkg/errors"
)

const (
	// DefaultBinary is looked up on PATH.
	DefaultBinary = "protgraph"
	// DefaultTimeout bounds a single generator run.
	DefaultTimeout = 10 * time.Minute
)

// maxStderr caps how much generator output is kept for error messages.
const maxStderr = 4 << 10

// Runner executes the generator binary.
type Runner struct {
	binary  string
	timeout time.Duration
	logger  *log.Logger
}

// NewRunner creates a Runner. Empty binary and non-positive timeout use the
// defaults; a nil logger discards output.
func NewRunner(binary string, timeout time.Duration, logger *log.Logger) *Runner {
	if binary == "" {
		binary = DefaultBinary
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{binary: binary, timeout: timeout, logger: logger}
}

// Binary returns the configured executable.
func (r *Runner) Binary() string { return r.binary }

// Run generates the graph for the flat-file entry at entryPath into outDir
// and returns the path of the produced GraphML file, named after the entry
// (e.g. downloads/P04637.txt -> <outDir>/P04637.graphml).
func (r *Runner) Run(ctx context.Context, entryPath, outDir string, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	if _, err := os.Stat(entryPath); err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeGeneration, err, "entry file")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeGeneration, err, "create output directory")
	}

	bin, err := exec.LookPath(r.binary)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeGeneration, err, "generator %q not found", r.binary)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := opts.Args(entryPath, outDir)
	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Stdout = io.Discard

	start := time.Now()
	r.logger.Debug("running generator", "binary", bin, "args", strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		msg := tail(stderr.String(), maxStderr)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", apperrors.Wrap(apperrors.ErrCodeGeneration, err, "generator timed out after %s", r.timeout)
		}
		if msg != "" {
			return "", apperrors.Wrap(apperrors.ErrCodeGeneration, err, "generator failed: %s", msg)
		}
		return "", apperrors.Wrap(apperrors.ErrCodeGeneration, err, "generator failed")
	}
	r.logger.Debug("generator finished", "duration", time.Since(start))

	stem := strings.TrimSuffix(filepath.Base(entryPath), filepath.Ext(entryPath))
	out := filepath.Join(outDir, stem+".graphml")
	if _, err := os.Stat(out); err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeGeneration, err, "generator produced no graph for %s", stem)
	}
	return out, nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) > n {
		s = s[len(s)-n:]
	}
	return s
}
