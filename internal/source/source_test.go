package source

import (
	"testing"
)

func TestCodecForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"games.pgn", ""},
		{"games.pgn.zst", "zst"},
		{"games.pgn.gz", "gz"},
		{"archive.zst", "zst"},
		{"plain", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := CodecForPath(tt.path).Extension()
			if got != tt.want {
				t.Errorf("CodecForPath(%q).Extension() = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
