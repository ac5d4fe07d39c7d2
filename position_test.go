package middlegame

import "testing"

func TestParsePosition(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "board and turn",
			input: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w",
			want:  "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w",
		},
		{
			name:  "full FEN drops suffix fields",
			input: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			want:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b",
		},
		{
			name:    "missing turn",
			input:   "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
			wantErr: true,
		},
		{
			name:    "bad turn letter",
			input:   "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x",
			wantErr: true,
		},
		{
			name:    "seven ranks",
			input:   "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePosition(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePosition() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.String() != tt.want {
				t.Errorf("String() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestStartingPosition(t *testing.T) {
	p := StartingPosition()
	if p.SideToMove() != "w" {
		t.Errorf("SideToMove() = %q, want w", p.SideToMove())
	}
	if p.Board() != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR" {
		t.Errorf("Board() = %q", p.Board())
	}
	if p.IsZero() {
		t.Error("IsZero() = true for the starting position")
	}

	var zero Position
	if !zero.IsZero() {
		t.Error("IsZero() = false for the zero value")
	}
}
