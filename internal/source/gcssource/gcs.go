// Package gcssource implements a Google Cloud Storage PGN archive source.
package gcssource

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/discochess/middlegame/internal/codec"
	"github.com/discochess/middlegame/internal/source"
)

// Compile-time check that Source implements source.Source.
var _ source.Source = (*Source)(nil)

// Source reads a PGN archive from Google Cloud Storage.
type Source struct {
	client *storage.Client
	bucket *storage.BucketHandle
	key    string
	prefix string
	codec  codec.Codec
}

// New creates a GCS source for the given bucket and object key.
// The bucket must already exist. The codec handles decompression;
// pass nil to pick one from the key's extension.
func New(ctx context.Context, bucketName, key string, c codec.Codec, opts ...Option) (*Source, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}

	if c == nil {
		c = source.CodecForPath(key)
	}
	s := &Source{
		client: client,
		bucket: client.Bucket(bucketName),
		key:    key,
		codec:  c,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Option configures a Source.
type Option func(*Source)

// WithPrefix sets a key prefix for all operations.
func WithPrefix(prefix string) Option {
	return func(s *Source) {
		s.prefix = strings.TrimSuffix(prefix, "/")
		if s.prefix != "" {
			s.prefix += "/"
		}
	}
}

// Open reads the object and wraps it with the codec's decompressor.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	// Check for cancellation before starting.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	obj := s.bucket.Object(s.objectKey())

	reader, err := obj.NewReader(ctx)
	if err != nil {
		if err == storage.ErrObjectNotExist {
			return nil, source.ErrNotFound
		}
		return nil, fmt.Errorf("creating reader: %w", err)
	}

	return source.DecodeReader(s.codec, reader)
}

// Close releases resources.
func (s *Source) Close() error {
	return s.client.Close()
}

// objectKey returns the full object key for the archive.
func (s *Source) objectKey() string {
	return s.prefix + s.key
}
