package store

import (
	"context"
	"fmt"
	"io"
	"os"
)

// FileOptions configures a File store.
type FileOptions struct {
	// Compression selects the per-slot compression algorithm.
	// Defaults to CompressionNone.
	Compression Compression
}

// File is a Store backed by a single slot-addressed file, the shape of a
// raw flash or disk partition. Group identifiers 1..groups each own
// keysPerGroup consecutive slots; slot (group, key) lives at a fixed
// offset, so reads and writes need no directory. A slot is large enough to
// hold an uncompressed payload plus the frame header, which lets
// incompressible payloads fall back to raw storage.
//
// Reads and writes of distinct slots proceed concurrently; the file handle
// serializes nothing beyond what the OS does.
type File struct {
	f           *os.File
	groups      uint32
	keysPer     uint32
	bufferSize  int
	slotSize    int64
	compression Compression
}

// NewFile opens (creating if necessary) a slot store at path holding
// groups*keysPerGroup payloads of bufferSize bytes each.
func NewFile(path string, groups, keysPerGroup, bufferSize int, optFns ...func(*FileOptions)) (*File, error) {
	opts := FileOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	if groups <= 0 || keysPerGroup <= 0 {
		return nil, fmt.Errorf("store: invalid geometry %dx%d", groups, keysPerGroup)
	}
	if bufferSize <= 0 {
		return nil, fmt.Errorf("store: invalid buffer size %d", bufferSize)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600) //nolint:gosec // G304: Path is configurable
	if err != nil {
		return nil, fmt.Errorf("store: open slot file: %w", err)
	}

	return &File{
		f:           f,
		groups:      uint32(groups),
		keysPer:     uint32(keysPerGroup),
		bufferSize:  bufferSize,
		slotSize:    int64(frameHeaderSize + bufferSize),
		compression: opts.Compression,
	}, nil
}

func (s *File) offset(group, key uint32) (int64, error) {
	if group == 0 || group > s.groups {
		return 0, fmt.Errorf("store: group %d outside 1..%d", group, s.groups)
	}
	if key >= s.keysPer {
		return 0, fmt.Errorf("store: key %d outside 0..%d", key, s.keysPer-1)
	}
	slot := int64(group-1)*int64(s.keysPer) + int64(key)
	return slot * s.slotSize, nil
}

// ReadObject fills buf from the slot addressed by (group, key).
func (s *File) ReadObject(ctx context.Context, group, key uint32, buf []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(buf) != s.bufferSize {
		return fmt.Errorf("store: buffer size %d does not match slot payload size %d", len(buf), s.bufferSize)
	}

	off, err := s.offset(group, key)
	if err != nil {
		return err
	}

	frame := make([]byte, s.slotSize)
	n, err := s.f.ReadAt(frame, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("store: read slot: %w", err)
	}
	if n < frameHeaderSize {
		// Past the written extent of the file, the slot was never written.
		return ErrNotFound
	}
	return decodeFrame(frame[:n], buf, s.compression)
}

// WriteObject persists buf into the slot addressed by (group, key).
func (s *File) WriteObject(ctx context.Context, group, key uint32, buf []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(buf) != s.bufferSize {
		return fmt.Errorf("store: buffer size %d does not match slot payload size %d", len(buf), s.bufferSize)
	}

	off, err := s.offset(group, key)
	if err != nil {
		return err
	}

	frame := make([]byte, s.slotSize)
	n, err := encodeFrame(frame, buf, s.compression)
	if err != nil {
		return fmt.Errorf("store: encode slot: %w", err)
	}
	if _, err := s.f.WriteAt(frame[:n], off); err != nil {
		return fmt.Errorf("store: write slot: %w", err)
	}
	return nil
}

// Sync flushes written slots to stable storage.
func (s *File) Sync() error {
	return s.f.Sync()
}

// Close closes the underlying file.
func (s *File) Close() error {
	return s.f.Close()
}
