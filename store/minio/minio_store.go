package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"

	"github.com/hupe1980/objcache/store"
)

// Store implements store.Store for MinIO and S3-compatible object storage.
// Every cache identity maps to one object named <prefix>/<group>/<key>.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewStore creates a new MinIO-backed store.
// bucket is the MinIO bucket name.
// rootPrefix is prepended to all keys (e.g. "cache/").
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (s *Store) objectName(group, key uint32) string {
	return path.Join(s.prefix, fmt.Sprintf("%08x/%08x", group, key))
}

// ReadObject fills buf with the payload stored under (group, key).
func (s *Store) ReadObject(ctx context.Context, group, key uint32, buf []byte) error {
	name := s.objectName(group, key)

	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return err
	}
	defer obj.Close()

	n, err := io.ReadFull(obj, buf)
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return store.ErrNotFound
		}
		return fmt.Errorf("minio: read %s: %w", name, err)
	}
	// Reject payloads larger than the slot.
	if _, err := obj.Read(make([]byte, 1)); err != io.EOF {
		return fmt.Errorf("minio: payload %s larger than buffer size %d", name, n)
	}
	return nil
}

// WriteObject persists buf under (group, key).
func (s *Store) WriteObject(ctx context.Context, group, key uint32, buf []byte) error {
	name := s.objectName(group, key)

	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(buf), int64(len(buf)), minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("minio: write %s: %w", name, err)
	}
	return nil
}
