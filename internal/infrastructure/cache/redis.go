package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"resume-coach/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL     = 10 * time.Minute
	defaultLockTTL = 30 * time.Second
	dialCheck      = 2 * time.Second
)

var errUnavailable = errors.New("redis unavailable")

// Redis stores JSON values for the search cache. When REDIS_ADDR is empty or
// the server does not answer at startup, every call is a silent no-op.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger

	warned atomic.Bool
}

func NewRedis(cfg config.RedisConfig, logger *log.Logger) *Redis {
	r := &Redis{ttl: cfg.TTL, logger: logger}
	if r.ttl <= 0 {
		r.ttl = defaultTTL
	}

	opts, err := clientOptions(cfg)
	if err != nil {
		r.logf("[Cache] %v, cache disabled", err)
		return r
	}
	if opts == nil {
		r.logf("[Cache] REDIS_ADDR not set, cache disabled")
		return r
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), dialCheck)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		r.logf("[Cache] Redis at %s not reachable, cache disabled: %v", opts.Addr, err)
		_ = client.Close()
		return r
	}

	r.client = client
	r.logf("[Cache] Redis connected | addr=%s db=%d ttl=%s", opts.Addr, opts.DB, r.ttl)
	return r
}

// clientOptions accepts either host:port or a redis:// URL. A URL carries its
// own password and DB; the separate settings only fill what it leaves out.
func clientOptions(cfg config.RedisConfig) (*redis.Options, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, nil
	}
	if !strings.Contains(addr, "://") {
		return &redis.Options{Addr: addr, Password: cfg.Password, DB: cfg.DB}, nil
	}

	opts, err := redis.ParseURL(addr)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}
	if opts.Password == "" {
		opts.Password = cfg.Password
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	return opts, nil
}

func (r *Redis) Available() bool {
	return r != nil && r.client != nil
}

func (r *Redis) Ping(ctx context.Context) error {
	if !r.Available() {
		return errUnavailable
	}
	return r.client.Ping(ctx).Err()
}

// GetJSON decodes the value at key into out. A missing key is a miss, not an
// error.
func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if !r.Available() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, r.fail(err)
	case len(b) == 0:
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON stores value under key. ttl <= 0 uses the configured TTL.
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !r.Available() {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	return r.fail(r.client.Set(ctx, key, b, ttl).Err())
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if !r.Available() {
		return nil
	}
	return r.fail(r.client.Del(ctx, key).Err())
}

// SetIfNotExists is a SETNX with expiry, used as a short-lived fetch lock.
func (r *Redis) SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if !r.Available() {
		return false, nil
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	ok, err := r.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, r.fail(err)
	}
	return ok, nil
}

func (r *Redis) Close() error {
	if !r.Available() {
		return nil
	}
	return r.client.Close()
}

// fail logs the first runtime error only; a flapping Redis would otherwise
// flood the log on every request.
func (r *Redis) fail(err error) error {
	if err == nil {
		return nil
	}
	if r.warned.CompareAndSwap(false, true) {
		r.logf("[Cache] Redis error, continuing without cache: %v", err)
	}
	return err
}

func (r *Redis) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}
