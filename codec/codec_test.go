package codec_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/keyset-go/codec"
)

// memStash is an in-memory codec.Stash for exercising pipelines without a
// real store behind them.
type memStash struct {
	data map[string]string
}

func newMemStash() *memStash {
	return &memStash{data: map[string]string{}}
}

func (s *memStash) Get(_ context.Context, key string) (string, error) {
	value, ok := s.data[key]
	if !ok {
		return "", errNotFound
	}
	return value, nil
}

func (s *memStash) Set(_ context.Context, key, value string) error {
	s.data[key] = value
	return nil
}

var _ = Describe("Compose", func() {
	ctx := context.Background()

	payload := map[string]any{
		"s": "deadbeef",
		"k": map[string]any{"id": int64(42), "name": "ada"},
	}

	It("runs encode inner-to-outer and decode outer-to-inner", func() {
		pipeline := codec.Compose[any, string, string](codec.Rich{}, codec.Base64{})

		token, err := pipeline.Encode(ctx, payload)
		Expect(err).ToNot(HaveOccurred())

		decoded, err := pipeline.Decode(ctx, token)
		Expect(err).ToNot(HaveOccurred())
		Expect(decoded).To(Equal(payload))
	})

	It("threads three stages without losing fidelity", func() {
		secret := codec.NewSecret([]byte("a shared secret"))
		pipeline := codec.Compose[any, string, string](
			codec.Compose[any, string, string](codec.Rich{}, secret),
			codec.Base64{},
		)

		token, err := pipeline.Encode(ctx, payload)
		Expect(err).ToNot(HaveOccurred())

		decoded, err := pipeline.Decode(ctx, token)
		Expect(err).ToNot(HaveOccurred())
		Expect(decoded).To(Equal(payload))
	})

	It("supports indirection as the outermost stage", func() {
		stash := newMemStash()
		pipeline := codec.Compose[any, string, string](
			codec.Compose[any, string, string](codec.Rich{}, codec.Base64{}),
			codec.NewStashCodec(stash),
		)

		token, err := pipeline.Encode(ctx, payload)
		Expect(err).ToNot(HaveOccurred())
		Expect(stash.data).To(HaveLen(1), "the payload lives in the stash, not the token")

		decoded, err := pipeline.Decode(ctx, token)
		Expect(err).ToNot(HaveOccurred())
		Expect(decoded).To(Equal(payload))
	})

	It("propagates decode failures from any stage", func() {
		pipeline := codec.Compose[any, string, string](codec.Rich{}, codec.Base64{})

		_, err := pipeline.Decode(ctx, "*** not base64 ***")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Default", func() {
	It("round-trips arbitrary payloads through an opaque URL-safe token", func() {
		ctx := context.Background()
		in := map[string]any{"s": "cafef00d", "k": map[string]any{"id": int64(7)}}

		token, err := codec.Default().Encode(ctx, in)
		Expect(err).ToNot(HaveOccurred())
		Expect(token).ToNot(ContainSubstring("cafef00d"))

		out, err := codec.Default().Decode(ctx, token)
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal(in))
	})
})
