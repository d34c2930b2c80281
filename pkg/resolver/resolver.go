// Package resolver turns user-supplied protein tokens into canonical UniProt
// accessions and fetches the matching entries.
//
// Tokens already shaped like an accession are returned unchanged without a
// network call. Anything else (gene names, entry names) is looked up through
// a [Searcher]; the first hit wins. When a substitution happens, the token
// is also replaced in the caller's peptide file so that peptide rows refer
// to the canonical accession the graph generator will see.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/matzehuels/isograph/pkg/errors"
	"github.com/matzehuels/isograph/pkg/integrations"
	"github.com/matzehuels/isograph/pkg/observability"
)

// DefaultTimeout bounds a single remote lookup.
const DefaultTimeout = 30 * time.Second

// accessionRE is the UniProt accession format.
var accessionRE = regexp.MustCompile(`^([OPQ][0-9][A-Z0-9]{3}[0-9]|[A-NR-Z][0-9]([A-Z][A-Z0-9]{2}[0-9]){1,2})$`)

// IsCanonical reports whether token is already a UniProt accession.
func IsCanonical(token string) bool {
	return accessionRE.MatchString(token)
}

// Searcher looks up accessions for a free-text token.
type Searcher interface {
	Search(ctx context.Context, token string, refresh bool) ([]string, error)
}

// Downloader fetches a flat-file entry to a local path.
type Downloader interface {
	DownloadFile(ctx context.Context, accession, path string) error
}

// Options configures a Resolver.
type Options struct {
	Timeout time.Duration // per-lookup bound; zero uses DefaultTimeout
	Logger  *log.Logger
}

// Resolver resolves protein tokens. It is safe for concurrent use;
// concurrent lookups of the same token share one remote call.
type Resolver struct {
	searcher   Searcher
	downloader Downloader
	timeout    time.Duration
	logger     *log.Logger
	group      singleflight.Group
}

// New creates a Resolver. downloader may be nil if Fetch is never called.
func New(searcher Searcher, downloader Downloader, opts Options) *Resolver {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Resolver{
		searcher:   searcher,
		downloader: downloader,
		timeout:    opts.Timeout,
		logger:     opts.Logger,
	}
}

// Resolve returns the canonical accession for token.
//
// If peptideFile is non-empty and the token had to be looked up, every
// occurrence of token in that file is replaced with the accession. The file
// is rewritten atomically.
//
// Errors:
//   - INVALID_INPUT: token is empty or malformed
//   - RESOLUTION_ERROR: no match, or the lookup service failed
//   - WRITE_ERROR: the peptide file could not be rewritten
func (r *Resolver) Resolve(ctx context.Context, token, peptideFile string) (string, error) {
	token = strings.TrimSpace(token)
	if err := apperrors.ValidateProteinToken(token); err != nil {
		return "", err
	}
	if IsCanonical(token) {
		observability.Resolver().OnResolve(ctx, token, false, 0, nil)
		return token, nil
	}

	start := time.Now()
	accession, err := r.lookup(ctx, token)
	observability.Resolver().OnResolve(ctx, token, true, time.Since(start), err)
	if err != nil {
		return "", err
	}
	r.logger.Debug("resolved protein", "token", token, "accession", accession, "duration", time.Since(start))

	if peptideFile != "" {
		if err := RewritePeptides(peptideFile, token, accession); err != nil {
			return "", err
		}
		r.logger.Debug("rewrote peptide file", "path", peptideFile)
	}
	return accession, nil
}

func (r *Resolver) lookup(ctx context.Context, token string) (string, error) {
	v, err, _ := r.group.Do(token, func() (any, error) {
		// Shared by every waiter, so one caller's cancellation must not end it.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()
		return r.searcher.Search(ctx, token, false)
	})
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return "", apperrors.Wrap(apperrors.ErrCodeResolution, err, "no such protein %q", token)
		}
		return "", apperrors.Wrap(apperrors.ErrCodeResolution, err, "look up %q", token)
	}
	ids := v.([]string)
	if len(ids) == 0 {
		return "", apperrors.New(apperrors.ErrCodeResolution, "no such protein %q", token)
	}
	return ids[0], nil
}

// Fetch resolves token and downloads its entry to <dir>/<accession>.txt,
// returning the accession and path. The download is bounded by the lookup
// timeout. Download failures carry DOWNLOAD_ERROR.
func (r *Resolver) Fetch(ctx context.Context, token, dir string) (accession, path string, err error) {
	accession, err = r.Resolve(ctx, token, "")
	if err != nil {
		return "", "", err
	}
	if r.downloader == nil {
		return "", "", apperrors.New(apperrors.ErrCodeInternal, "resolver has no downloader")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", apperrors.Wrap(apperrors.ErrCodeDownload, err, "create download directory")
	}

	path = filepath.Join(dir, accession+".txt")
	start := time.Now()
	dctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	if err := r.downloader.DownloadFile(dctx, accession, path); err != nil {
		return "", "", apperrors.Wrap(apperrors.ErrCodeDownload, err, "download %s", accession)
	}
	r.logger.Debug("downloaded entry", "accession", accession, "path", path, "duration", time.Since(start))
	return accession, path, nil
}

// RewritePeptides replaces every occurrence of from with to in the file at
// path. The replacement is textual; a token that also appears inside other
// words is replaced there too. The file keeps its permissions.
func RewritePeptides(path, from, to string) error {
	info, err := os.Stat(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeWrite, err, "stat peptide file")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeWrite, err, "read peptide file")
	}
	if !strings.Contains(string(data), from) {
		return nil
	}
	out := strings.ReplaceAll(string(data), from, to)

	tmp := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())
	if err := os.WriteFile(tmp, []byte(out), info.Mode().Perm()); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeWrite, err, "write peptide file")
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return apperrors.Wrap(apperrors.ErrCodeWrite, err, "replace peptide file")
	}
	return nil
}
