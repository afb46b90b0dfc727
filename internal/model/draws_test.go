package model

import (
	"encoding/json"
	"testing"
)

func TestCurrentResults_PreservesKeyOrder(t *testing.T) {
	t.Parallel()

	payload := `{"Madrid": [["Draw A", "12"], ["Draw B", "7"]], "Lisbon": "No data", "Ciudad": [["Primera", 42]]}`

	var got CurrentResults
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []string{"Madrid", "Lisbon", "Ciudad"}
	locations := got.Locations()
	if len(locations) != len(want) {
		t.Fatalf("locations = %v, want %v", locations, want)
	}
	for i := range want {
		if locations[i] != want[i] {
			t.Fatalf("locations[%d] = %q, want %q", i, locations[i], want[i])
		}
	}

	madrid := got[0]
	if !madrid.HasDraws || len(madrid.Draws) != 2 {
		t.Fatalf("madrid = %+v, want two draws", madrid)
	}
	if madrid.Draws[0].Draw != "Draw A" || madrid.Draws[0].Number != "12" {
		t.Fatalf("madrid first draw = %+v", madrid.Draws[0])
	}
	if madrid.Draws[1].Draw != "Draw B" || madrid.Draws[1].Number != "7" {
		t.Fatalf("madrid second draw = %+v", madrid.Draws[1])
	}

	lisbon := got[1]
	if lisbon.HasDraws || lisbon.Message != "No data" {
		t.Fatalf("lisbon = %+v, want placeholder message", lisbon)
	}

	if got[2].Draws[0].Number != "42" {
		t.Fatalf("numeric number = %q, want 42", got[2].Draws[0].Number)
	}
}

func TestCurrentResults_RejectsMalformed(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"array":      `[1, 2]`,
		"short pair": `{"Madrid": [["only-label"]]}`,
		"truncated":  `{"Madrid": [["A", "1"]`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var got CurrentResults
			if err := json.Unmarshal([]byte(payload), &got); err == nil {
				t.Fatalf("expected error for %s, got %+v", payload, got)
			}
		})
	}
}

func TestMonthlyStats_HasStatistics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		want    bool
	}{
		{"populated", `{"total_draws": 20, "statistics": {"total_unique_numbers": 14, "avg_frequency": 1.43}}`, true},
		{"empty object", `{"total_draws": 0, "statistics": {}, "most_frequent": []}`, false},
		{"absent", `{"total_draws": 3}`, false},
		{"null", `{"total_draws": 3, "statistics": null}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var m MonthlyStats
			if err := json.Unmarshal([]byte(tt.payload), &m); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := m.HasStatistics(); got != tt.want {
				t.Fatalf("HasStatistics() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonthlyStats_MalformedStatisticsFails(t *testing.T) {
	t.Parallel()

	var m MonthlyStats
	if err := json.Unmarshal([]byte(`{"statistics": "broken"}`), &m); err == nil {
		t.Fatal("expected error for non-object statistics")
	}
}

func TestRegion_Endpoints(t *testing.T) {
	t.Parallel()

	if got := RegionCurrent.Endpoint(); got != "/current" {
		t.Fatalf("current endpoint = %q", got)
	}
	if got := RegionMonthly.SectionIDs(); len(got) != 2 || got[0] != "monthly-stats" || got[1] != "frequent-numbers" {
		t.Fatalf("monthly sections = %v", got)
	}
	if RegionCurrent.DefaultInterval() != DefaultCurrentInterval {
		t.Fatal("current region should use the fast cadence")
	}
	if RegionRecommendations.DefaultInterval() != DefaultFullInterval {
		t.Fatal("recommendations should use the full cadence")
	}
}
