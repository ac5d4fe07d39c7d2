// Package filesource implements a local filesystem PGN archive source.
package filesource

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/discochess/middlegame/internal/codec"
	"github.com/discochess/middlegame/internal/source"
)

// Compile-time check that Source implements source.Source.
var _ source.Source = (*Source)(nil)

// Source reads a PGN archive from the local filesystem.
type Source struct {
	path  string
	codec codec.Codec
}

// New creates a file source for the given path. The codec handles
// decompression; pass nil to pick one from the path's extension.
func New(path string, c codec.Codec) *Source {
	if c == nil {
		c = source.CodecForPath(path)
	}
	return &Source{path: path, codec: c}
}

// Open opens the file and wraps it with the codec's decompressor.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	// Check for cancellation before starting I/O.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, source.ErrNotFound
		}
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	return source.DecodeReader(s.codec, f)
}

// Close releases any resources held by the source.
func (s *Source) Close() error {
	return nil
}
