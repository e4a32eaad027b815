package httpcrypt

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/cloudflare/circl/dh/x25519"
	"golang.org/x/crypto/chacha20"

	"github.com/mailsieve/client-go/internal/base32"
)

// randReader is the random source used for key and nonce generation.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

// KeyPair is an ephemeral curve25519 keypair. It is generated fresh for a
// single request and must be zeroed with Zero once the request attempt
// completes, on success and error paths alike.
type KeyPair struct {
	secret x25519.Key
	public x25519.Key
}

// GenerateKeyPair creates a new ephemeral keypair from the package random
// source, clamping the secret scalar before any use.
func GenerateKeyPair() (*KeyPair, error) {
	r := randReader
	if r == nil {
		r = rand.Reader
	}

	kp := &KeyPair{}
	if _, err := io.ReadFull(r, kp.secret[:]); err != nil {
		return nil, fmt.Errorf("generate keypair: %w", err)
	}
	clampScalar(&kp.secret)
	x25519.KeyGen(&kp.public, &kp.secret)
	return kp, nil
}

// NewKeyPairFromSecret builds a keypair from an existing 32-byte secret
// scalar. The scalar is clamped, so passing an already-clamped scalar is
// a no-op.
func NewKeyPairFromSecret(secret []byte) (*KeyPair, error) {
	if len(secret) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidSecretSize, len(secret), KeySize)
	}

	kp := &KeyPair{}
	copy(kp.secret[:], secret)
	clampScalar(&kp.secret)
	x25519.KeyGen(&kp.public, &kp.secret)
	return kp, nil
}

// clampScalar applies the curve25519 scalar preconditions: clear the low
// three bits, clear the top bit, set the second-highest bit.
func clampScalar(k *x25519.Key) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}

// Public returns a copy of the Montgomery public point.
func (kp *KeyPair) Public() []byte {
	pub := make([]byte, KeySize)
	copy(pub, kp.public[:])
	return pub
}

// PublicBase32 returns the public point in the daemon's base32 alphabet,
// as transmitted in the Key header.
func (kp *KeyPair) PublicBase32() string {
	return base32.EncodeToString(kp.public[:])
}

// Zero wipes the keypair. The keypair must not be used afterwards.
func (kp *KeyPair) Zero() {
	zeroBytes(kp.secret[:])
	zeroBytes(kp.public[:])
}

// SharedKey is the per-request symmetric key sealing the outgoing
// envelope and opening the reply. Never reused across requests; zero it
// once the reply has been processed.
type SharedKey [KeySize]byte

// Zero wipes the shared key.
func (s *SharedKey) Zero() {
	zeroBytes(s[:])
}

// DeriveSharedKey computes the envelope key for a request: X25519 of the
// local ephemeral secret against the daemon's static public key, then the
// HChaCha20 transform of the resulting point with an all-zero nonce. The
// transform output is the shared key directly; there is no further
// hashing step. Derivation is deterministic for fixed inputs.
func DeriveSharedKey(kp *KeyPair, remotePublicB32 string) (*SharedKey, error) {
	decoded, err := base32.DecodeString(remotePublicB32)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	if len(decoded) != KeySize {
		zeroBytes(decoded)
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(decoded), KeySize)
	}

	var remote, point x25519.Key
	copy(remote[:], decoded)
	zeroBytes(decoded)

	if !x25519.Shared(&point, &kp.secret, &remote) {
		return nil, ErrKeyAgreement
	}
	defer zeroBytes(point[:])

	var zeroNonce [16]byte
	raw, err := chacha20.HChaCha20(point[:], zeroNonce[:])
	if err != nil {
		return nil, fmt.Errorf("derive shared key: %w", err)
	}

	key := &SharedKey{}
	copy(key[:], raw)
	zeroBytes(raw)
	return key, nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
