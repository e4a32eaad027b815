package httpcrypt

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// Seal encrypts plaintext under the shared key and frames it as an
// envelope: nonce(24) || tag(16) || ciphertext. The tag precedes the
// ciphertext; this ordering is part of the wire contract and differs from
// conventional ciphertext||tag schemes. A fresh random nonce is generated
// per envelope, which is safe because the shared key itself is never
// reused across requests.
func Seal(plaintext []byte, key *SharedKey) ([]byte, error) {
	r := randReader
	if r == nil {
		r = rand.Reader
	}

	env := make([]byte, EnvelopeOverhead+len(plaintext))
	nonce := env[:NonceSize]
	if _, err := io.ReadFull(r, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, fmt.Errorf("seal envelope: %w", err)
	}

	// The AEAD emits ciphertext||tag; the envelope wants the tag first.
	sealed := aead.Seal(nil, nonce, plaintext, nil)
	ctLen := len(sealed) - TagSize
	copy(env[NonceSize:], sealed[ctLen:])
	copy(env[EnvelopeOverhead:], sealed[:ctLen])
	zeroBytes(sealed)
	return env, nil
}

// Open verifies and decrypts an envelope. Verification and decryption are
// atomic: on tag failure ErrAuthentication is returned and no plaintext
// bytes are exposed. On success the plaintext is decrypted in place into
// envelope[EnvelopeOverhead:] and returned as a subslice of the envelope,
// so callers holding the full buffer can slice at the fixed offset
// without copying.
func Open(envelope []byte, key *SharedKey) ([]byte, error) {
	if len(envelope) < EnvelopeOverhead {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortEnvelope, len(envelope))
	}

	nonce := envelope[:NonceSize]
	tag := envelope[NonceSize:EnvelopeOverhead]
	ciphertext := envelope[EnvelopeOverhead:]

	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, fmt.Errorf("open envelope: %w", err)
	}

	combined := make([]byte, 0, len(ciphertext)+TagSize)
	combined = append(combined, ciphertext...)
	combined = append(combined, tag...)

	plaintext, err := aead.Open(envelope[EnvelopeOverhead:EnvelopeOverhead], nonce, combined, nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}
