package api

import (
	"errors"
	"fmt"
)

// Common API errors that can be checked with errors.Is.
var (
	// ErrInvalidPassword indicates the daemon rejected the controller password.
	ErrInvalidPassword = errors.New("invalid controller password")
	// ErrRateLimited indicates the daemon is shedding load.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// Error represents an HTTP-level error from the daemon. On the encrypted
// path StatusCode may come from the decrypted inner reply.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("daemon error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("daemon error %d", e.StatusCode)
}

// MailsieveError implements the MailsieveError interface.
func (e *Error) MailsieveError() {}

// Is implements errors.Is for sentinel error matching.
func (e *Error) Is(target error) bool {
	switch e.StatusCode {
	case 401, 403:
		return target == ErrInvalidPassword
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// NetworkError represents a network-level failure reaching the daemon.
type NetworkError struct {
	Err error
	URL string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// MailsieveError implements the MailsieveError interface.
func (e *NetworkError) MailsieveError() {}
