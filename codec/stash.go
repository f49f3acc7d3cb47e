package codec

import (
	"context"

	"github.com/friendsofgo/errors"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Stash is an external key-value store used by the indirection codec. Get
// must fail when the key is absent rather than return an empty value.
// Implementations own their retry and timeout policy; cancellation flows
// through the context.
type Stash interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// StashCodec stores the value in an external key-value store and hands out a
// short random reference in its place. Large or sensitive cursor payloads
// thus never reach the client; only the reference does.
type StashCodec struct {
	stash Stash
}

var _ Codec[string, string] = (*StashCodec)(nil)

// NewStashCodec builds an indirection codec over the given store.
func NewStashCodec(stash Stash) *StashCodec {
	return &StashCodec{stash: stash}
}

func (c *StashCodec) Encode(ctx context.Context, in string) (string, error) {
	key, err := gonanoid.New()
	if err != nil {
		return "", errors.Wrap(err, "cannot generate reference key")
	}

	if err := c.stash.Set(ctx, key, in); err != nil {
		return "", errors.Wrap(err, "cannot store cursor payload")
	}

	return key, nil
}

func (c *StashCodec) Decode(ctx context.Context, key string) (string, error) {
	value, err := c.stash.Get(ctx, key)
	if err != nil {
		return "", errors.Wrap(err, "cannot resolve cursor reference")
	}

	return value, nil
}
