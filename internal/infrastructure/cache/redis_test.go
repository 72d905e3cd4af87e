package cache

import (
	"context"
	"testing"
	"time"

	"resume-coach/internal/config"
)

func TestRedis_DisabledIsNoop(t *testing.T) {
	r := NewRedis(config.RedisConfig{}, nil)
	if r.Available() {
		t.Fatalf("expected cache to be unavailable without address")
	}

	ctx := context.Background()
	if err := r.SetJSON(ctx, "k", map[string]int{"a": 1}, 0); err != nil {
		t.Fatalf("unexpected set err: %v", err)
	}

	var out map[string]int
	hit, err := r.GetJSON(ctx, "k", &out)
	if err != nil || hit {
		t.Fatalf("expected miss without error, got hit=%v err=%v", hit, err)
	}

	ok, err := r.SetIfNotExists(ctx, "lock", "1", time.Second)
	if err != nil || ok {
		t.Fatalf("expected lock not acquired without error, got ok=%v err=%v", ok, err)
	}
	if err := r.Delete(ctx, "k"); err != nil {
		t.Fatalf("unexpected delete err: %v", err)
	}
	if err := r.Ping(ctx); err == nil {
		t.Fatalf("expected ping error when unavailable")
	}
	if err := r.Close(); err != nil {
		t.Fatalf("unexpected close err: %v", err)
	}
}

func TestRedis_DefaultTTL(t *testing.T) {
	r := NewRedis(config.RedisConfig{TTL: 0}, nil)
	if r.ttl != defaultTTL {
		t.Fatalf("expected default ttl %s, got %s", defaultTTL, r.ttl)
	}
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	if r.Available() {
		t.Fatalf("nil cache must be unavailable")
	}
	var out any
	if hit, err := r.GetJSON(context.Background(), "k", &out); hit || err != nil {
		t.Fatalf("expected miss on nil cache, got hit=%v err=%v", hit, err)
	}
}

func TestClientOptions(t *testing.T) {
	opts, err := clientOptions(config.RedisConfig{Addr: " "})
	if err != nil || opts != nil {
		t.Fatalf("expected no options for blank addr, got %+v err=%v", opts, err)
	}

	opts, err = clientOptions(config.RedisConfig{Addr: "cache:6379", Password: "pw", DB: 2})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if opts.Addr != "cache:6379" || opts.Password != "pw" || opts.DB != 2 {
		t.Fatalf("unexpected options: %+v", opts)
	}

	opts, err = clientOptions(config.RedisConfig{Addr: "redis://:secret@cache:6380/3", Password: "ignored", DB: 5})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if opts.Addr != "cache:6380" || opts.Password != "secret" || opts.DB != 3 {
		t.Fatalf("expected url settings to win, got addr=%s db=%d", opts.Addr, opts.DB)
	}

	if _, err := clientOptions(config.RedisConfig{Addr: "redis://cache:6379/notanumber"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestRedis_UnreachableIsDisabled(t *testing.T) {
	r := NewRedis(config.RedisConfig{Addr: "127.0.0.1:1"}, nil)
	if r.Available() {
		t.Fatalf("expected cache to be unavailable when redis does not answer")
	}
}
