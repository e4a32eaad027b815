package mailsieve

import (
	"github.com/mailsieve/client-go/internal/api"
	"github.com/mailsieve/client-go/internal/httpcrypt"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrInvalidPassword is returned when the daemon rejects the
	// configured password.
	ErrInvalidPassword = api.ErrInvalidPassword

	// ErrRateLimited is returned when the daemon rate-limits the client.
	ErrRateLimited = api.ErrRateLimited

	// ErrInvalidEncoding is returned when a configured key is not valid
	// base32.
	ErrInvalidEncoding = httpcrypt.ErrInvalidEncoding

	// ErrInvalidKeySize is returned when a configured key decodes to
	// the wrong length.
	ErrInvalidKeySize = httpcrypt.ErrInvalidKeySize

	// ErrKeyAgreement is returned when X25519 key agreement with the
	// daemon's public key fails.
	ErrKeyAgreement = httpcrypt.ErrKeyAgreement

	// ErrAuthentication is returned when an encrypted reply fails
	// integrity verification.
	ErrAuthentication = httpcrypt.ErrAuthentication

	// ErrFraming is returned when a decrypted reply is not a
	// well-formed daemon response.
	ErrFraming = httpcrypt.ErrFraming
)

// MailsieveError is implemented by all SDK errors.
type MailsieveError interface {
	error
	MailsieveError() // marker method
}

// APIError represents an HTTP-level error reply from the daemon. On the
// encrypted path the status code comes from the inner sealed response.
type APIError = api.Error

// NetworkError wraps a transport failure reaching the daemon.
type NetworkError = api.NetworkError
