package codec

import (
	"context"
	"encoding/base64"

	"github.com/friendsofgo/errors"
)

// Base64 is a reversible text codec using the unpadded URL-safe base64
// alphabet, suitable for cursor tokens carried in URLs and headers. It is
// lossless for arbitrary byte content, including full UTF-8.
type Base64 struct{}

var _ Codec[string, string] = Base64{}

func (Base64) Encode(_ context.Context, in string) (string, error) {
	return base64.RawURLEncoding.EncodeToString([]byte(in)), nil
}

func (Base64) Decode(_ context.Context, out string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(out)
	if err != nil {
		return "", errors.Wrap(err, "invalid base64 token")
	}

	return string(b), nil
}
