// Package codec provides bidirectional, possibly-asynchronous value
// transforms and a composition operator, used by keyset pagination to
// serialize and protect cursor tokens.
//
// A codec pipeline is built by composing codecs end to end:
//
//	// any → JSON-ish text → URL-safe token
//	cursors := codec.Compose[any, string, string](codec.Rich{}, codec.Base64{})
//
//	// and optionally sealed with authenticated encryption:
//	sealed := codec.Compose[any, string, string](cursors, codec.NewSecret(secret))
//
// Every codec obeys the round-trip law: Decode(Encode(x)) reproduces x for
// all valid x, and Decode fails on malformed input instead of silently
// coercing it.
package codec

import "context"

// Codec transforms values of type I into type O and back. Either direction
// may suspend (key derivation, network calls), so both take a context.
// Implementations must be safe for concurrent use.
type Codec[I, O any] interface {
	Encode(ctx context.Context, in I) (O, error)
	Decode(ctx context.Context, out O) (I, error)
}

// Compose chains two codecs: Encode runs inner then outer, Decode runs outer
// then inner. The compiler enforces adjacent type alignment (the outer
// codec's input type is the inner codec's output type), so an ill-typed
// pipeline does not build. Longer pipelines nest:
//
//	codec.Compose[any, string, string](codec.Compose[any, string, string](a, b), c)
func Compose[A, B, C any](inner Codec[A, B], outer Codec[B, C]) Codec[A, C] {
	return composed[A, B, C]{inner: inner, outer: outer}
}

type composed[A, B, C any] struct {
	inner Codec[A, B]
	outer Codec[B, C]
}

func (c composed[A, B, C]) Encode(ctx context.Context, in A) (C, error) {
	mid, err := c.inner.Encode(ctx, in)
	if err != nil {
		var zero C
		return zero, err
	}

	return c.outer.Encode(ctx, mid)
}

func (c composed[A, B, C]) Decode(ctx context.Context, out C) (A, error) {
	mid, err := c.outer.Decode(ctx, out)
	if err != nil {
		var zero A
		return zero, err
	}

	return c.inner.Decode(ctx, mid)
}

// Default returns the cursor codec used when none is configured: rich value
// serialization piped through URL-safe base64. Construct it once at startup
// and pass it explicitly; there is no process-wide default state.
func Default() Codec[any, string] {
	return Compose[any, string, string](Rich{}, Base64{})
}
