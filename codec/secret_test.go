package codec_test

import (
	"context"
	"encoding/base64"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/keyset-go/codec"
)

var _ = Describe("Secret", func() {
	ctx := context.Background()
	plaintext := `{"s":"deadbeef","k":{"id":42}}`

	It("round-trips under the same secret", func() {
		secret := codec.NewSecret([]byte("correct horse battery staple"))

		token, err := secret.Encode(ctx, plaintext)
		Expect(err).ToNot(HaveOccurred())

		out, err := secret.Decode(ctx, token)
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal(plaintext))
	})

	It("emits a distinct token for every encode of the same plaintext", func() {
		secret := codec.NewSecret([]byte("correct horse battery staple"))

		a, err := secret.Encode(ctx, plaintext)
		Expect(err).ToNot(HaveOccurred())
		b, err := secret.Encode(ctx, plaintext)
		Expect(err).ToNot(HaveOccurred())

		Expect(a).ToNot(Equal(b))
	})

	It("rejects tokens under a different secret", func() {
		token, err := codec.NewSecret([]byte("key one")).Encode(ctx, plaintext)
		Expect(err).ToNot(HaveOccurred())

		_, err = codec.NewSecret([]byte("key two")).Decode(ctx, token)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("token authentication failed"))
	})

	It("rejects any flipped bit in the envelope", func() {
		secret := codec.NewSecret([]byte("correct horse battery staple"))

		token, err := secret.Encode(ctx, plaintext)
		Expect(err).ToNot(HaveOccurred())

		envelope, err := base64.RawURLEncoding.DecodeString(token)
		Expect(err).ToNot(HaveOccurred())

		// One position inside each envelope field: salt, nonce, tag, ciphertext.
		for _, pos := range []int{1, 17, 29, len(envelope) - 1} {
			tampered := append([]byte(nil), envelope...)
			tampered[pos] ^= 0x01

			_, err := secret.Decode(ctx, base64.RawURLEncoding.EncodeToString(tampered))
			Expect(err).To(HaveOccurred(), "flipping byte %d must fail", pos)
		}
	})

	It("rejects an unknown version byte", func() {
		secret := codec.NewSecret([]byte("correct horse battery staple"))

		token, err := secret.Encode(ctx, plaintext)
		Expect(err).ToNot(HaveOccurred())

		envelope, err := base64.RawURLEncoding.DecodeString(token)
		Expect(err).ToNot(HaveOccurred())
		envelope[0] = 0x7f

		_, err = secret.Decode(ctx, base64.RawURLEncoding.EncodeToString(envelope))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("unsupported token version"))
	})

	It("rejects truncated envelopes", func() {
		secret := codec.NewSecret([]byte("correct horse battery staple"))

		token, err := secret.Encode(ctx, plaintext)
		Expect(err).ToNot(HaveOccurred())

		envelope, err := base64.RawURLEncoding.DecodeString(token)
		Expect(err).ToNot(HaveOccurred())

		_, err = secret.Decode(ctx, base64.RawURLEncoding.EncodeToString(envelope[:20]))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("too short"))
	})

	It("rejects input that is not base64", func() {
		_, err := codec.NewSecret([]byte("k")).Decode(ctx, "!!! nope !!!")

		Expect(err).To(HaveOccurred())
	})
})
