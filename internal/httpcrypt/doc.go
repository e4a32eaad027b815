// Package httpcrypt implements the secure envelope protocol spoken by the
// Mailsieve daemon.
//
// The protocol is a one-shot, stateless exchange: for every request the
// client generates a fresh ephemeral curve25519 keypair, derives a shared
// key against the daemon's static public key, seals a pseudo-HTTP
// plaintext message into an envelope, and opens the reply with the same
// shared key. There is no session continuity and no key reuse; a retried
// request performs a complete new key agreement.
//
// The scheme deliberately diverges from standard NaCl box in two places
// that must be preserved exactly for interoperability:
//
//   - The shared key is the raw HChaCha20 transform of the X25519 point
//     (zero nonce), with no further KDF step.
//   - The envelope layout is nonce(24) || tag(16) || ciphertext: the
//     Poly1305 tag precedes the ciphertext.
//
// Requests carry a Key header identifying the daemon key in use and the
// client's ephemeral public key, both in the daemon's base32 alphabet.
package httpcrypt
