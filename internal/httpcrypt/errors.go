package httpcrypt

import "errors"

var (
	// ErrInvalidEncoding is returned when base32 input cannot be decoded.
	ErrInvalidEncoding = errors.New("base32 decode failed")

	// ErrInvalidKeySize is returned when a decoded public key is not 32 bytes.
	ErrInvalidKeySize = errors.New("invalid public key size")

	// ErrInvalidSecretSize is returned when a supplied secret scalar is not 32 bytes.
	ErrInvalidSecretSize = errors.New("invalid secret key size")

	// ErrKeyAgreement is returned when the remote public key is a
	// low-order or otherwise invalid curve point.
	ErrKeyAgreement = errors.New("key agreement failed: invalid remote public key")

	// ErrAuthentication is returned when envelope tag verification fails.
	// No plaintext is ever exposed alongside this error, and the request
	// must not be retried with the same key material.
	ErrAuthentication = errors.New("envelope authentication failed")

	// ErrShortEnvelope is returned when an envelope is smaller than the
	// nonce and tag prefix.
	ErrShortEnvelope = errors.New("envelope too short")

	// ErrMalformedKeyHeader is returned when a Key header value cannot be
	// split or decoded.
	ErrMalformedKeyHeader = errors.New("malformed key header")

	// ErrFraming is returned when a decrypted reply is not a well-formed
	// inner message.
	ErrFraming = errors.New("malformed inner message")
)
