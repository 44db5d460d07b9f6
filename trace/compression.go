package trace

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects how encoded traces are stored.
type Compression string

const (
	// None stores the encoded JSON as is.
	None Compression = "none"
	// LZ4 favors speed.
	LZ4 Compression = "lz4"
	// Zstd favors ratio.
	Zstd Compression = "zstd"
)

// ErrCorrupt is returned when a compressed trace cannot be decoded.
var ErrCorrupt = errors.New("trace: corrupt compressed data")

// ParseCompression maps a configuration string to a Compression.
// The empty string selects None.
func ParseCompression(s string) (Compression, error) {
	switch Compression(strings.ToLower(s)) {
	case "", None:
		return None, nil
	case LZ4:
		return LZ4, nil
	case Zstd, "zst":
		return Zstd, nil
	default:
		return "", fmt.Errorf("trace: unknown compression %q", s)
	}
}

// Ext returns the file-name suffix added after ".json".
func (c Compression) Ext() string {
	switch c {
	case LZ4:
		return ".lz4"
	case Zstd:
		return ".zst"
	default:
		return ""
	}
}

// compressionOf infers the compression from a blob name.
func compressionOf(name string) Compression {
	switch {
	case strings.HasSuffix(name, LZ4.Ext()):
		return LZ4
	case strings.HasSuffix(name, Zstd.Ext()):
		return Zstd
	default:
		return None
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// lz4 blocks carry a header: [UncompressedSize uint32][CompressedSize uint32].
// CompressedSize 0 means the payload is stored raw.
const lz4HeaderSize = 8

func (c Compression) compress(data []byte) ([]byte, error) {
	switch c {
	case LZ4:
		return compressLZ4(data)
	case Zstd:
		enc := getZstdEncoder()
		defer zstdEncoderPool.Put(enc)
		return enc.EncodeAll(data, nil), nil
	default:
		return data, nil
	}
}

func (c Compression) decompress(data []byte) ([]byte, error) {
	switch c {
	case LZ4:
		return decompressLZ4(data)
	case Zstd:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		return out, nil
	default:
		return data, nil
	}
}

func compressLZ4(data []byte) ([]byte, error) {
	out := make([]byte, lz4HeaderSize+lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, out[lz4HeaderSize:], nil)
	if err != nil {
		return nil, err
	}

	binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
	if n == 0 {
		// Incompressible
		binary.LittleEndian.PutUint32(out[4:], 0)
		out = append(out[:lz4HeaderSize], data...)
		return out, nil
	}
	binary.LittleEndian.PutUint32(out[4:], uint32(n))
	return out[:lz4HeaderSize+n], nil
}

func decompressLZ4(data []byte) ([]byte, error) {
	if len(data) < lz4HeaderSize {
		return nil, fmt.Errorf("%w: lz4 block too small for header", ErrCorrupt)
	}
	size := binary.LittleEndian.Uint32(data[0:])
	csize := binary.LittleEndian.Uint32(data[4:])
	payload := data[lz4HeaderSize:]

	if csize == 0 {
		if uint32(len(payload)) != size {
			return nil, fmt.Errorf("%w: raw lz4 payload has %d bytes, want %d", ErrCorrupt, len(payload), size)
		}
		return payload, nil
	}
	if uint32(len(payload)) != csize {
		return nil, fmt.Errorf("%w: lz4 payload has %d bytes, want %d", ErrCorrupt, len(payload), csize)
	}

	out := make([]byte, size)
	n, err := lz4.UncompressBlock(payload, out)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if uint32(n) != size {
		return nil, fmt.Errorf("%w: lz4 decoded %d bytes, want %d", ErrCorrupt, n, size)
	}
	return out, nil
}
