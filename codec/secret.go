package codec

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"io"

	"github.com/friendsofgo/errors"
	"golang.org/x/crypto/scrypt"
)

const (
	secretVersion = 0x01

	saltSize  = 16
	nonceSize = 12
	tagSize   = 16
	keySize   = 32

	// scrypt cost parameters. N is deliberately memory-hard; raising it
	// invalidates no existing tokens because the salt travels in the envelope.
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

const secretHeaderSize = 1 + saltSize + nonceSize + tagSize

// Secret authenticates and encrypts text payloads with AES-GCM under a key
// derived from a caller-supplied secret. Each Encode draws a fresh random
// salt and nonce, so equal plaintexts never produce equal tokens. The wire
// form is base64(version ‖ salt ‖ nonce ‖ tag ‖ ciphertext), with the version
// byte and salt bound as associated data.
//
// Decode fails closed: an unknown version, a truncated envelope, a flipped
// bit anywhere, or the wrong secret all return an error and never partial
// plaintext.
type Secret struct {
	secret []byte
}

var _ Codec[string, string] = (*Secret)(nil)

// NewSecret builds a Secret codec around the given shared secret.
func NewSecret(secret []byte) *Secret {
	return &Secret{secret: secret}
}

func (s *Secret) Encode(_ context.Context, plaintext string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", errors.Wrap(err, "cannot generate salt")
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Wrap(err, "cannot generate nonce")
	}

	aead, err := s.deriveAEAD(salt)
	if err != nil {
		return "", err
	}

	aad := associatedData(salt)
	sealed := aead.Seal(nil, nonce, []byte(plaintext), aad)

	// Seal appends the tag; the envelope carries it ahead of the ciphertext.
	split := len(sealed) - tagSize
	ciphertext, tag := sealed[:split], sealed[split:]

	envelope := make([]byte, 0, secretHeaderSize+len(ciphertext))
	envelope = append(envelope, secretVersion)
	envelope = append(envelope, salt...)
	envelope = append(envelope, nonce...)
	envelope = append(envelope, tag...)
	envelope = append(envelope, ciphertext...)

	return base64.RawURLEncoding.EncodeToString(envelope), nil
}

func (s *Secret) Decode(_ context.Context, token string) (string, error) {
	envelope, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", errors.Wrap(err, "invalid encrypted token")
	}

	if len(envelope) < secretHeaderSize {
		return "", errors.New("encrypted token is too short")
	}
	if envelope[0] != secretVersion {
		return "", errors.Errorf("unsupported token version %d", envelope[0])
	}

	salt := envelope[1 : 1+saltSize]
	nonce := envelope[1+saltSize : 1+saltSize+nonceSize]
	tag := envelope[1+saltSize+nonceSize : secretHeaderSize]
	ciphertext := envelope[secretHeaderSize:]

	aead, err := s.deriveAEAD(salt)
	if err != nil {
		return "", err
	}

	sealed := make([]byte, 0, len(ciphertext)+tagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, associatedData(salt))
	if err != nil {
		return "", errors.Wrap(err, "token authentication failed")
	}

	return string(plaintext), nil
}

// deriveAEAD derives the per-token key and immediately folds it into a cipher
// instance, wiping the key material before returning on every path.
func (s *Secret) deriveAEAD(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(s.secret, salt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return nil, errors.Wrap(err, "cannot derive key")
	}
	defer wipe(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "cannot initialize cipher")
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "cannot initialize AEAD")
	}

	return aead, nil
}

func associatedData(salt []byte) []byte {
	aad := make([]byte, 0, 1+saltSize)
	aad = append(aad, secretVersion)
	return append(aad, salt...)
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
