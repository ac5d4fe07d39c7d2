// Package source defines the backend interface for reading PGN archives.
package source

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/discochess/middlegame/internal/codec"
	"github.com/discochess/middlegame/internal/codec/gzipcodec"
	"github.com/discochess/middlegame/internal/codec/noopcodec"
	"github.com/discochess/middlegame/internal/codec/zstdcodec"
)

// ErrNotFound is returned when a PGN archive does not exist in the source.
var ErrNotFound = errors.New("source: archive not found")

// Source defines the interface for PGN archive backends.
// Implementations handle path formats and storage details internally.
type Source interface {
	// Open returns a reader for the decompressed PGN text.
	// The caller must close the reader.
	Open(ctx context.Context) (io.ReadCloser, error)

	// Close releases any resources held by the source.
	Close() error
}

// CodecForPath picks a codec from the path's extension. Unrecognized
// extensions get the noop codec, so plain .pgn files read as-is.
func CodecForPath(path string) codec.Codec {
	switch {
	case strings.HasSuffix(path, ".zst"):
		return zstdcodec.New()
	case strings.HasSuffix(path, ".gz"):
		return gzipcodec.New()
	default:
		return noopcodec.New()
	}
}

// DecodeReader wraps rc with the codec's decompressor. Closing the
// returned reader closes both the decompressor and rc.
func DecodeReader(c codec.Codec, rc io.ReadCloser) (io.ReadCloser, error) {
	dec, err := c.Reader(rc)
	if err != nil {
		rc.Close()
		return nil, err
	}
	return &decodedReader{dec: dec, raw: rc}, nil
}

type decodedReader struct {
	dec io.ReadCloser
	raw io.ReadCloser
}

func (d *decodedReader) Read(p []byte) (int, error) {
	return d.dec.Read(p)
}

func (d *decodedReader) Close() error {
	err := d.dec.Close()
	if rawErr := d.raw.Close(); err == nil {
		err = rawErr
	}
	return err
}
