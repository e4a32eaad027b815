package api

import "github.com/klauspost/compress/zstd"

// Package-level codec instances; EncodeAll and DecodeAll are safe for
// concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	// Neither constructor can fail without options.
	zstdEncoder, _ = zstd.NewWriter(nil)
	zstdDecoder, _ = zstd.NewReader(nil)
}

func compress(data []byte) []byte {
	return zstdEncoder.EncodeAll(data, make([]byte, 0, len(data)/2))
}

func decompress(data []byte) ([]byte, error) {
	return zstdDecoder.DecodeAll(data, nil)
}
