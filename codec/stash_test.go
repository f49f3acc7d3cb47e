package codec_test

import (
	"context"

	"github.com/friendsofgo/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/keyset-go/codec"
)

var errNotFound = errors.New("key not found")

var _ = Describe("StashCodec", func() {
	ctx := context.Background()

	It("hands out a reference and resolves it back to the payload", func() {
		stash := newMemStash()
		c := codec.NewStashCodec(stash)

		key, err := c.Encode(ctx, `{"s":"deadbeef","k":{"id":42}}`)
		Expect(err).ToNot(HaveOccurred())
		Expect(key).ToNot(BeEmpty())
		Expect(key).ToNot(ContainSubstring("deadbeef"))

		out, err := c.Decode(ctx, key)
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal(`{"s":"deadbeef","k":{"id":42}}`))
	})

	It("issues a fresh reference per encode", func() {
		c := codec.NewStashCodec(newMemStash())

		a, err := c.Encode(ctx, "payload")
		Expect(err).ToNot(HaveOccurred())
		b, err := c.Encode(ctx, "payload")
		Expect(err).ToNot(HaveOccurred())

		Expect(a).ToNot(Equal(b))
	})

	It("fails to resolve a reference it never issued", func() {
		c := codec.NewStashCodec(newMemStash())

		_, err := c.Decode(ctx, "unknown-reference")

		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, errNotFound)).To(BeTrue())
	})
})
