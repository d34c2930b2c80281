package retention

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/matzehuels/isograph/pkg/errors"
)

// DefaultRedisKey is the key holding the ledger JSON.
const DefaultRedisKey = "isograph:ledger"

// lockTTL bounds how long a crashed holder can block other writers.
const lockTTL = 30 * time.Second

// releaseScript deletes the lock only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore keeps the ledger as a JSON string in Redis. Updates are
// serialized with a SET NX lock on <key>:lock that expires after lockTTL.
type RedisStore struct {
	client      redis.UniversalClient
	key         string
	lockTimeout time.Duration
	owned       bool
}

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	Key         string
	LockTimeout time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, apperrors.Wrap(apperrors.ErrCodeLedger, err, "connect to redis at %s", cfg.Addr)
	}
	s := NewRedisStoreFromClient(client, cfg.Key, cfg.LockTimeout)
	s.owned = true
	return s, nil
}

// NewRedisStoreFromClient wraps an existing client. The client is not closed
// by Close.
func NewRedisStoreFromClient(client redis.UniversalClient, key string, lockTimeout time.Duration) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &RedisStore{client: client, key: key, lockTimeout: lockTimeout}
}

func (s *RedisStore) Update(ctx context.Context, fn func(*Ledger) error) error {
	release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	l, err := s.read(ctx)
	if err != nil {
		return err
	}
	if err := fn(l); err != nil {
		return err
	}
	return s.write(ctx, l)
}

func (s *RedisStore) Load(ctx context.Context) (*Ledger, error) {
	return s.read(ctx)
}

func (s *RedisStore) Reset(ctx context.Context) error {
	release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeLedger, err, "delete ledger")
	}
	return nil
}

func (s *RedisStore) Close() error {
	if s.owned {
		return s.client.Close()
	}
	return nil
}

func (s *RedisStore) acquire(ctx context.Context) (func(), error) {
	lockKey := s.key + ":lock"
	token := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	for {
		ok, err := s.client.SetNX(ctx, lockKey, token, lockTTL).Result()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeLedger, err, "lock %s", lockKey)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, apperrors.Wrap(apperrors.ErrCodeLedger, ctx.Err(), "lock %s", lockKey)
		case <-time.After(lockRetryDelay):
		}
	}

	return func() {
		// The caller's context may be done by now.
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, s.client, []string{lockKey}, token).Err()
	}, nil
}

func (s *RedisStore) read(ctx context.Context) (*Ledger, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return &Ledger{IDs: []string{}}, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeLedger, err, "read ledger")
	}
	l := &Ledger{}
	if err := json.Unmarshal(data, l); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeLedger, err, "corrupt ledger at %s", s.key)
	}
	l.normalize()
	return l, nil
}

func (s *RedisStore) write(ctx context.Context, l *Ledger) error {
	l.normalize()
	data, err := json.Marshal(l)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeLedger, err, "marshal ledger")
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeLedger, err, "write ledger")
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
