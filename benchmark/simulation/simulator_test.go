package simulation

import (
	"context"
	"testing"

	"github.com/discochess/middlegame"
)

const testPGN = `[Event "Club Match"]
[White "Alice"]
[Black "Bob"]
[Result "1/2-1/2"]

1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 4. c3 Nf6 5. d3 d6 6. O-O O-O 7. Re1 a6
8. Nbd2 Ba7 9. h3 Be6 10. Bxe6 fxe6 11. Nf1 Qd7 12. Ng3 d5 1/2-1/2
`

func newTestBank(t *testing.T) *middlegame.Bank {
	t.Helper()
	bank, err := middlegame.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { bank.Close() })

	if _, err := bank.ImportText(context.Background(), testPGN); err != nil {
		t.Fatalf("ImportText() error = %v", err)
	}
	return bank
}

func TestSimulator_RunSession(t *testing.T) {
	sim := NewSimulator("default", newTestBank(t))

	result, err := sim.RunSession(context.Background(), 10)
	if err != nil {
		t.Fatalf("RunSession() error = %v", err)
	}

	if result.ConfigName != "default" {
		t.Errorf("ConfigName = %q, want default", result.ConfigName)
	}
	if result.Errors != 0 {
		t.Errorf("Errors = %d, want 0", result.Errors)
	}
	if len(result.LatenciesUs) != 10 {
		t.Errorf("len(LatenciesUs) = %d, want 10", len(result.LatenciesUs))
	}
	for i, l := range result.LatenciesUs {
		if l < 0 {
			t.Errorf("LatenciesUs[%d] = %f, want >= 0", i, l)
		}
	}
}

func TestSimulator_RunSessions(t *testing.T) {
	sim := NewSimulator("default", newTestBank(t))

	agg, err := sim.RunSessions(context.Background(), 3, 5)
	if err != nil {
		t.Fatalf("RunSessions() error = %v", err)
	}

	if agg.Sessions != 3 {
		t.Errorf("Sessions = %d, want 3", agg.Sessions)
	}
	if agg.Picks != 15 {
		t.Errorf("Picks = %d, want 15", agg.Picks)
	}
	if len(agg.LatenciesUs) != 15 {
		t.Errorf("len(LatenciesUs) = %d, want 15", len(agg.LatenciesUs))
	}
}

func TestMetrics_Computation(t *testing.T) {
	result := &AggregateResult{
		ConfigName:  "test",
		Picks:       5,
		LatenciesUs: []float64{10, 20, 30, 40, 50},
	}

	metrics := ComputeMetrics(result)

	if metrics.Picks != 5 {
		t.Errorf("Picks = %d, want 5", metrics.Picks)
	}
	if metrics.MinLatencyUs != 10 {
		t.Errorf("MinLatencyUs = %f, want 10", metrics.MinLatencyUs)
	}
	if metrics.MaxLatencyUs != 50 {
		t.Errorf("MaxLatencyUs = %f, want 50", metrics.MaxLatencyUs)
	}
	if metrics.MeanLatencyUs != 30 {
		t.Errorf("MeanLatencyUs = %f, want 30", metrics.MeanLatencyUs)
	}
	if metrics.MedianLatencyUs != 30 {
		t.Errorf("MedianLatencyUs = %f, want 30", metrics.MedianLatencyUs)
	}
}

func TestMetrics_Empty(t *testing.T) {
	metrics := ComputeMetrics(&AggregateResult{ConfigName: "empty"})
	if metrics.MeanLatencyUs != 0 {
		t.Errorf("MeanLatencyUs = %f, want 0", metrics.MeanLatencyUs)
	}
}
