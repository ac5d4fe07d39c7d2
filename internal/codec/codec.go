// Package codec provides compression and decompression for PGN archive data.
package codec

import "io"

// Codec wraps readers and writers with a compression scheme.
// Archives on disk or in object storage name their scheme by file
// extension; Extension reports the one a codec handles.
type Codec interface {
	// Reader wraps r to decompress archive data read from it.
	Reader(r io.Reader) (io.ReadCloser, error)
	// Writer wraps w to compress archive data written to it.
	Writer(w io.Writer) (io.WriteCloser, error)
	// Extension returns the file extension without dot ("zst", "gz").
	// An empty string means the archive is plain text.
	Extension() string
}
