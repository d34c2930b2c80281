package retention

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	apperrors "github.com/matzehuels/isograph/pkg/errors"
)

// DefaultLockTimeout bounds how long a FileStore waits for the ledger lock.
const DefaultLockTimeout = 10 * time.Second

const lockRetryDelay = 25 * time.Millisecond

// FileStore keeps the ledger in a JSON file.
//
// Updates are serialized in-process by a mutex and across processes by an
// advisory lock on <path>.lock. The ledger file is replaced atomically, so a
// reader never sees a partial write.
type FileStore struct {
	mu          sync.Mutex
	path        string
	lock        *flock.Flock
	lockTimeout time.Duration
}

// NewFileStore creates a store for the ledger file at path, creating the
// parent directory if needed. A lockTimeout of zero uses DefaultLockTimeout.
func NewFileStore(path string, lockTimeout time.Duration) (*FileStore, error) {
	if err := apperrors.ValidatePath(path); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeLedger, err, "create ledger directory")
	}
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &FileStore{
		path:        path,
		lock:        flock.New(path + ".lock"),
		lockTimeout: lockTimeout,
	}, nil
}

// Path returns the ledger file path.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Update(ctx context.Context, fn func(*Ledger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	l, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(l); err != nil {
		return err
	}
	return s.write(l)
}

func (s *FileStore) Load(ctx context.Context) (*Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return s.read()
}

func (s *FileStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()
	return s.write(&Ledger{})
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) acquire(ctx context.Context) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	ok, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil || !ok {
		if err == nil {
			err = errors.New("lock not acquired")
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeLedger, err, "lock %s", s.lock.Path())
	}
	return func() { _ = s.lock.Unlock() }, nil
}

// read loads the ledger. A missing or empty file is an empty ledger.
func (s *FileStore) read() (*Ledger, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Ledger{IDs: []string{}}, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeLedger, err, "read ledger")
	}
	l := &Ledger{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, l); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeLedger, err, "corrupt ledger %s", s.path)
		}
	}
	l.normalize()
	return l, nil
}

func (s *FileStore) write(l *Ledger) error {
	l.normalize()
	data, err := json.Marshal(l)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeLedger, err, "marshal ledger")
	}

	tmp := fmt.Sprintf("%s.%s.tmp", s.path, uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeLedger, err, "write ledger")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return apperrors.Wrap(apperrors.ErrCodeLedger, err, "replace ledger")
	}
	return nil
}

var _ Store = (*FileStore)(nil)
