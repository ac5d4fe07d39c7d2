// Package httpsource implements an HTTP(S) PGN archive source.
package httpsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/discochess/middlegame/internal/codec"
	"github.com/discochess/middlegame/internal/source"
)

// DefaultResponseHeaderTimeout is the default timeout for receiving response headers.
const DefaultResponseHeaderTimeout = 30 * time.Second

// Compile-time check that Source implements source.Source.
var _ source.Source = (*Source)(nil)

// Source fetches a PGN archive over HTTP.
type Source struct {
	url    string
	client *http.Client
	codec  codec.Codec
}

// Option configures a Source.
type Option func(*Source)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Source) {
		s.client = client
	}
}

// WithTimeout sets an overall timeout for the fetch.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Source) {
		s.client = &http.Client{
			Timeout: timeout,
		}
	}
}

// New creates an HTTP source for the given URL. The codec handles
// decompression; pass nil to pick one from the URL's extension.
func New(url string, c codec.Codec, opts ...Option) *Source {
	if c == nil {
		c = source.CodecForPath(url)
	}
	s := &Source{
		url:   url,
		codec: c,
		client: &http.Client{
			Timeout: 0, // No overall timeout - archives can be large.
			Transport: &http.Transport{
				ResponseHeaderTimeout: DefaultResponseHeaderTimeout,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open fetches the archive and wraps the response body with the
// codec's decompressor.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching archive: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, source.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	return source.DecodeReader(s.codec, resp.Body)
}

// Close releases any resources held by the source.
func (s *Source) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
