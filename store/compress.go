package store

import (
	"encoding/binary"
	"errors"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the per-slot compression algorithm of a File store.
type Compression uint8

const (
	// CompressionNone stores payloads raw.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast, good for hot data).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio, good for cold data).
	CompressionZSTD Compression = 2
)

// ZSTD encoder/decoder pools for efficiency
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

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Slot frame format: [UncompressedSize uint32][CompressedSize uint32][Data...]
// CompressedSize == 0 means the payload is stored raw. A zero uncompressed
// size marks a slot that was never written.
const frameHeaderSize = 8

// encodeFrame frames data into dst, compressing when it helps. dst must be
// at least frameHeaderSize+len(data) bytes. Returns the frame length.
func encodeFrame(dst, data []byte, compression Compression) (int, error) {
	var compressed []byte
	var err error

	switch compression {
	case CompressionLZ4:
		compressed, err = compressLZ4(data)
	case CompressionZSTD:
		compressed, err = compressZSTD(data)
	default:
	}
	if err != nil {
		return 0, err
	}

	// Incompressible payloads are stored raw; the frame must fit the slot.
	if len(compressed) == 0 || len(compressed) >= len(data) {
		binary.LittleEndian.PutUint32(dst[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(dst[4:], 0)
		copy(dst[frameHeaderSize:], data)
		return frameHeaderSize + len(data), nil
	}

	binary.LittleEndian.PutUint32(dst[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(dst[4:], uint32(len(compressed)))
	copy(dst[frameHeaderSize:], compressed)
	return frameHeaderSize + len(compressed), nil
}

func compressLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // Incompressible
	}
	return compressed[:n], nil
}

func compressZSTD(data []byte) ([]byte, error) {
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)

	return enc.EncodeAll(data, nil), nil
}

// decodeFrame decodes a slot frame into buf. The expected uncompressed
// size is len(buf).
func decodeFrame(frame, buf []byte, compression Compression) error {
	if len(frame) < frameHeaderSize {
		return errors.New("store: slot frame too small for header")
	}

	uncompressedSize := binary.LittleEndian.Uint32(frame[0:])
	compressedSize := binary.LittleEndian.Uint32(frame[4:])

	if uncompressedSize == 0 {
		return ErrNotFound
	}
	if int(uncompressedSize) != len(buf) {
		return errors.New("store: slot payload size does not match buffer size")
	}

	if compressedSize == 0 {
		// Raw payload
		if len(frame) < frameHeaderSize+int(uncompressedSize) {
			return errors.New("store: slot frame truncated")
		}
		copy(buf, frame[frameHeaderSize:frameHeaderSize+uncompressedSize])
		return nil
	}

	if len(frame) < frameHeaderSize+int(compressedSize) {
		return errors.New("store: slot frame truncated")
	}
	compressedData := frame[frameHeaderSize : frameHeaderSize+compressedSize]

	switch compression {
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(compressedData, buf)
		if err != nil {
			return err
		}
		if uint32(n) != uncompressedSize {
			return errors.New("store: decompressed size mismatch")
		}
		return nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		decoded, err := dec.DecodeAll(compressedData, buf[:0])
		if err != nil {
			return err
		}
		if uint32(len(decoded)) != uncompressedSize {
			return errors.New("store: decompressed size mismatch")
		}
		// DecodeAll appends and may have grown away from buf.
		if &decoded[0] != &buf[0] {
			copy(buf, decoded)
		}
		return nil

	default:
		return errors.New("store: compressed slot but compression disabled")
	}
}
