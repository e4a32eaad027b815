package base32

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

func TestEncodeToString(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"empty", nil, ""},
		{"single byte", []byte("f"), "gd"},
		{"two bytes", []byte("fo"), "g55y"},
		{"three bytes", []byte("foo"), "g556g"},
		{"four bytes", []byte("foob"), "g556gtb"},
		{"five bytes", []byte("fooba"), "g556gtfc"},
		{"six bytes", []byte("foobar"), "g556gtfc1d"},
		{"reference vector", []byte("test123"), "wm3g84fg13cy"},
		{"zero byte", []byte{0x00}, "yy"},
		{"all ones byte", []byte{0xff}, "98"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeToString(tt.in); got != tt.want {
				t.Errorf("EncodeToString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeString(t *testing.T) {
	for _, s := range []string{"gd", "g55y", "g556g", "wm3g84fg13cy"} {
		decoded, err := DecodeString(s)
		if err != nil {
			t.Fatalf("DecodeString(%q) error = %v", s, err)
		}
		if got := EncodeToString(decoded); got != s {
			t.Errorf("round trip of %q = %q", s, got)
		}
	}
}

func TestDecodeString_ServerKeyVector(t *testing.T) {
	// 52-symbol public key as it appears in daemon configuration.
	const key = "k4nz984k36xmcynm1hr9kdbn6jhcxf4ggbrb1quay7f88rpm9kay"
	want, _ := hex.DecodeString("4a8bfb8f56d9bfc580589293af46103e71f68a36269020ddc4a09773485b5f61")

	got, err := DecodeString(key)
	if err != nil {
		t.Fatalf("DecodeString() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("DecodeString() = %x, want %x", got, want)
	}
	if reencoded := EncodeToString(got); reencoded != key {
		t.Errorf("EncodeToString() = %q, want %q", reencoded, key)
	}
}

func TestDecodeString_InvalidSymbol(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"uppercase", "YBND"},
		{"excluded letter l", "lbnd"},
		{"excluded letter v", "vbnd"},
		{"excluded digit 0", "0bnd"},
		{"excluded digit 2", "2bnd"},
		{"padding char", "ybnd===="},
		{"space", "yb nd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeString(tt.in); !errors.Is(err, ErrInvalidSymbol) {
				t.Errorf("DecodeString(%q) error = %v, want ErrInvalidSymbol", tt.in, err)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	for size := 0; size <= len(data); size++ {
		encoded := EncodeToString(data[:size])
		decoded, err := DecodeString(encoded)
		if err != nil {
			t.Fatalf("size %d: decode error = %v", size, err)
		}
		if !bytes.Equal(decoded, data[:size]) {
			t.Fatalf("size %d: round trip mismatch", size)
		}
	}
}
