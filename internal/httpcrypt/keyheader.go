package httpcrypt

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/mailsieve/client-go/internal/base32"
)

// BuildKeyHeader builds the value of the Key header attached to every
// encrypted request: "{id}={localPub}", where id is the base32 encoding
// of the first 5 bytes of the BLAKE2b-512 digest of the daemon's public
// key. The id tells the daemon which of its static keys the client used;
// the suffix is the client's ephemeral public key.
func BuildKeyHeader(remotePublicB32, localPublicB32 string) (string, error) {
	remote, err := base32.DecodeString(remotePublicB32)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	if len(remote) != KeySize {
		return "", fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(remote), KeySize)
	}

	digest := blake2b.Sum512(remote)
	return base32.EncodeToString(digest[:KeyIDSize]) + "=" + localPublicB32, nil
}

// ParseKeyHeader splits a Key header value into the short key identifier
// and the peer's ephemeral public key. This is the daemon's side of the
// exchange; the client only builds the header, but the parser keeps the
// codec symmetric and testable.
func ParseKeyHeader(value string) (keyID, peerPublic []byte, err error) {
	idPart, pubPart, ok := strings.Cut(value, "=")
	if !ok {
		return nil, nil, fmt.Errorf("%w: missing separator", ErrMalformedKeyHeader)
	}

	keyID, err = base32.DecodeString(idPart)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: key id: %v", ErrMalformedKeyHeader, err)
	}
	if len(keyID) != KeyIDSize {
		return nil, nil, fmt.Errorf("%w: key id is %d bytes, want %d", ErrMalformedKeyHeader, len(keyID), KeyIDSize)
	}

	peerPublic, err = base32.DecodeString(pubPart)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: peer key: %v", ErrMalformedKeyHeader, err)
	}
	if len(peerPublic) != KeySize {
		return nil, nil, fmt.Errorf("%w: peer key is %d bytes, want %d", ErrMalformedKeyHeader, len(peerPublic), KeySize)
	}
	return keyID, peerPublic, nil
}
