// Package base32 implements the non-standard base32 encoding used by the
// Mailsieve daemon for public keys and key identifiers.
//
// The alphabet is the zbase32 character set, but bits are consumed from
// each byte least-significant first, which makes the output incompatible
// with both RFC 4648 base32 and regular zbase32. The symbol table is an
// interoperability constant validated by reference vectors; do not
// re-derive it.
package base32

import (
	"errors"
	"fmt"
)

const alphabet = "ybndrfg8ejkmcpqxot1uwisza345h769"

// ErrInvalidSymbol is returned when decoding input containing a character
// outside the protocol alphabet.
var ErrInvalidSymbol = errors.New("invalid base32 symbol")

var decodeTable [256]int8

func init() {
	for i := range decodeTable {
		decodeTable[i] = -1
	}
	for i, c := range alphabet {
		decodeTable[c] = int8(i)
	}
}

// EncodeToString encodes src using the protocol alphabet. Trailing bits
// that do not fill a full symbol are emitted as a final partial symbol.
func EncodeToString(src []byte) string {
	out := make([]byte, 0, (len(src)*8+4)/5)
	var acc uint
	var nbits uint
	for _, b := range src {
		acc |= uint(b) << nbits
		nbits += 8
		for nbits >= 5 {
			out = append(out, alphabet[acc&0x1f])
			acc >>= 5
			nbits -= 5
		}
	}
	if nbits > 0 {
		out = append(out, alphabet[acc&0x1f])
	}
	return string(out)
}

// DecodeString decodes a string in the protocol alphabet. Trailing bits
// that do not fill a full byte are discarded, mirroring the reference
// codec.
func DecodeString(s string) ([]byte, error) {
	out := make([]byte, 0, len(s)*5/8)
	var acc uint
	var nbits uint
	for i := 0; i < len(s); i++ {
		v := decodeTable[s[i]]
		if v < 0 {
			return nil, fmt.Errorf("%w: %q at offset %d", ErrInvalidSymbol, s[i], i)
		}
		acc |= uint(v) << nbits
		nbits += 5
		for nbits >= 8 {
			out = append(out, byte(acc))
			acc >>= 8
			nbits -= 8
		}
	}
	return out, nil
}
