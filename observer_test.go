package simulator

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestLogObserver(t *testing.T) {
	tests := []struct {
		name   string
		event  Event
		want   map[string]any
		absent []string
	}{
		{
			name:   "zero capital start",
			event:  Event{Kind: SimulationStarted, Scenario: InterestSeriesName, Day: d("2021-01-04")},
			want:   map[string]any{"event": "simulation-started", "scenario": InterestSeriesName, "day": "2021-01-04", "value": 0.0},
			absent: []string{"amount"},
		},
		{
			name:   "zero contribution",
			event:  Event{Kind: Contribution, Scenario: PortfolioSeriesName, Day: d("2021-02-01"), Value: 0},
			want:   map[string]any{"level": "debug", "value": 0.0, "amount": 0.0},
			absent: []string{},
		},
		{
			name:   "no prices",
			event:  Event{Kind: PricesFetched, Message: "0 days of prices"},
			want:   map[string]any{"level": "info", "amount": 0.0, "message": "0 days of prices"},
			absent: []string{"value", "scenario", "day"},
		},
		{
			name:   "run started",
			event:  Event{Kind: RunStarted, Message: "[A]"},
			want:   map[string]any{"event": "run-started"},
			absent: []string{"value", "amount"},
		},
		{
			name:   "final value",
			event:  Event{Kind: MetricsComputed, Scenario: PortfolioSeriesName, Value: 1234.5},
			want:   map[string]any{"value": 1234.5},
			absent: []string{"amount"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			LogObserver(zerolog.New(&buf).Level(zerolog.DebugLevel)).Observe(tt.event)

			var got map[string]any
			if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatalf("log entry %q: %v", buf.String(), err)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s = %v, want %v in %s", k, got[k], v, buf.String())
				}
			}
			for _, k := range tt.absent {
				if _, ok := got[k]; ok {
					t.Errorf("unexpected field %s in %s", k, buf.String())
				}
			}
		})
	}
}
