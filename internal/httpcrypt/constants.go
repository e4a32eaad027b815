package httpcrypt

const (
	// KeySize is the size of curve25519 scalars and points, and of the
	// derived shared key, in bytes.
	KeySize = 32

	// NonceSize is the size of the envelope nonce in bytes.
	NonceSize = 24

	// TagSize is the size of the Poly1305 authentication tag in bytes.
	TagSize = 16

	// EnvelopeOverhead is the number of bytes preceding the ciphertext in
	// an envelope: nonce followed by tag. After a successful Open the
	// plaintext occupies the buffer from this offset.
	EnvelopeOverhead = NonceSize + TagSize

	// KeyIDSize is the number of leading BLAKE2b digest bytes used as the
	// short identifier of a daemon public key in the Key header.
	KeyIDSize = 5

	// maxHeaders is the hard cap on header lines in a decrypted reply,
	// matching the fixed header table of the daemon's parser.
	maxHeaders = 64
)
