package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/objcache/store"
)

// Store implements store.Store for AWS S3. Every cache identity maps to
// one object named <prefix>/<group>/<key>.
type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewStore creates a new S3-backed store.
// rootPrefix is prepended to all keys (e.g. "cache/").
func NewStore(client *s3.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (s *Store) objectKey(group, key uint32) string {
	return path.Join(s.prefix, fmt.Sprintf("%08x/%08x", group, key))
}

// ReadObject fills buf with the payload stored under (group, key).
func (s *Store) ReadObject(ctx context.Context, group, key uint32, buf []byte) error {
	objKey := s.objectKey(group, key)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return store.ErrNotFound
		}
		return fmt.Errorf("s3: read %s: %w", objKey, err)
	}
	defer out.Body.Close()

	if out.ContentLength != nil && *out.ContentLength != int64(len(buf)) {
		return fmt.Errorf("s3: payload %s size %d does not match buffer size %d", objKey, *out.ContentLength, len(buf))
	}
	if _, err := io.ReadFull(out.Body, buf); err != nil {
		return fmt.Errorf("s3: read %s: %w", objKey, err)
	}
	return nil
}

// WriteObject persists buf under (group, key).
func (s *Store) WriteObject(ctx context.Context, group, key uint32, buf []byte) error {
	objKey := s.objectKey(group, key)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objKey),
		Body:   bytes.NewReader(buf),
	})
	if err != nil {
		return fmt.Errorf("s3: write %s: %w", objKey, err)
	}
	return nil
}
