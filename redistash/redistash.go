// Package redistash provides a Redis-backed key-value store for the cursor
// indirection codec (codec.StashCodec).
package redistash

import (
	"context"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/redis/go-redis/v9"

	"github.com/nrfta/keyset-go/codec"
)

const defaultPrefix = "keyset:cursor:"

// Stash stores cursor payloads in Redis under a configurable key prefix and
// TTL. It implements codec.Stash; a missing key is an error, never an empty
// value.
type Stash struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ codec.Stash = (*Stash)(nil)

// Option configures a Stash.
type Option func(*Stash)

// WithPrefix replaces the default "keyset:cursor:" key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Stash) {
		s.prefix = prefix
	}
}

// WithTTL expires stored payloads after d. Zero (the default) keeps them
// until evicted; a bounded TTL is recommended since stale cursors are
// re-issued on every page anyway.
func WithTTL(d time.Duration) Option {
	return func(s *Stash) {
		s.ttl = d
	}
}

// New builds a Stash over an existing Redis client. The client is shared
// configuration and must be safe for concurrent use.
func New(client *redis.Client, opts ...Option) *Stash {
	s := &Stash{client: client, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get returns the payload stored under key.
func (s *Stash) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", errors.Errorf("cursor reference %q not found", key)
	}
	if err != nil {
		return "", errors.Wrap(err, "cannot read cursor payload")
	}

	return value, nil
}

// Set stores the payload under key.
func (s *Stash) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "cannot store cursor payload")
	}

	return nil
}
