//go:build e2e

package middlegame_test

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/discochess/middlegame"
)

func TestE2E_ImportAndPick(t *testing.T) {
	archive := filepath.Join("testdata", "morphy.pgn")
	if _, err := os.Stat(archive); os.IsNotExist(err) {
		t.Skip("Skipping: testdata/morphy.pgn not found")
	}

	// Step 1: library round trip.
	t.Log("Importing archive through the library...")
	bank, err := middlegame.New()
	if err != nil {
		t.Fatalf("Error creating bank: %v", err)
	}
	defer bank.Close()

	ctx := context.Background()
	start := time.Now()
	report, err := bank.ImportFile(ctx, archive)
	if err != nil {
		t.Fatalf("Error importing: %v", err)
	}
	t.Logf("   Imported %d games in %v", report.Games, time.Since(start))

	picks := 50
	start = time.Now()
	for i := 0; i < picks; i++ {
		if _, err := bank.PickMiddlegame(ctx); err != nil {
			t.Fatalf("Error picking: %v", err)
		}
	}
	t.Logf("   %d picks in %v (avg %v)", picks, time.Since(start), time.Since(start)/time.Duration(picks))

	// Step 2: same flow through the CLI.
	t.Log("Running the CLI...")
	var out bytes.Buffer
	cmd := exec.Command("go", "run", "./cmd/middlegame", "pick", "--seed", "7", archive)
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Error running CLI: %v", err)
	}
	if !strings.Contains(out.String(), "Position:") {
		t.Errorf("CLI output missing position:\n%s", out.String())
	}
}
