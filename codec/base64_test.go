package codec_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/keyset-go/codec"
)

var _ = Describe("Base64", func() {
	ctx := context.Background()

	It("produces URL-safe unpadded tokens", func() {
		token, err := codec.Base64{}.Encode(ctx, `{"id":">>?"}`)

		Expect(err).ToNot(HaveOccurred())
		Expect(token).ToNot(ContainSubstring("="))
		Expect(token).ToNot(ContainSubstring("+"))
		Expect(token).ToNot(ContainSubstring("/"))
	})

	It("round-trips arbitrary text", func() {
		in := `{"s":"deadbeef","k":{"id":42}}`

		token, err := codec.Base64{}.Encode(ctx, in)
		Expect(err).ToNot(HaveOccurred())

		out, err := codec.Base64{}.Decode(ctx, token)
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal(in))
	})

	It("rejects input that is not base64", func() {
		_, err := codec.Base64{}.Decode(ctx, "!!! nope !!!")

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("invalid base64 token"))
	})
})
