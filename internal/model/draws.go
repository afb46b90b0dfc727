package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Numero is a drawn number as delivered by the API. The backend sends
// zero-padded strings ("0042") but some payloads carry plain integers.
type Numero string

func (n *Numero) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*n = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Numero(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("numero: %w", err)
	}
	*n = Numero(num.String())
	return nil
}

func (n Numero) String() string { return string(n) }

// DrawResult is one (draw name, number) pair for a location.
type DrawResult struct {
	Draw   string
	Number Numero
}

// LocationResults holds the draws for one location, or a placeholder
// message when the API has no draws for it yet.
type LocationResults struct {
	Location string
	Draws    []DrawResult
	Message  string
	HasDraws bool
}

// CurrentResults is the /current payload. Order is the key order of the
// JSON object as delivered by the API and must not be re-sorted.
type CurrentResults []LocationResults

func (c *CurrentResults) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("current results: %w", err)
	}
	if tok == nil {
		*c = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("current results: expected object, got %v", tok)
	}

	out := CurrentResults{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("current results: %w", err)
		}
		location, ok := tok.(string)
		if !ok {
			return fmt.Errorf("current results: expected key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("current results %q: %w", location, err)
		}

		entry, err := decodeLocation(location, raw)
		if err != nil {
			return err
		}
		out = append(out, entry)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("current results: %w", err)
	}

	*c = out
	return nil
}

func decodeLocation(location string, raw json.RawMessage) (LocationResults, error) {
	entry := LocationResults{Location: location}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return entry, nil
	}

	switch raw[0] {
	case '[':
		var pairs [][]Numero
		if err := json.Unmarshal(raw, &pairs); err != nil {
			return entry, fmt.Errorf("current results %q: %w", location, err)
		}
		entry.HasDraws = true
		entry.Draws = make([]DrawResult, 0, len(pairs))
		for i, pair := range pairs {
			if len(pair) < 2 {
				return entry, fmt.Errorf("current results %q: pair %d has %d elements", location, i, len(pair))
			}
			entry.Draws = append(entry.Draws, DrawResult{Draw: string(pair[0]), Number: pair[1]})
		}
	case '"':
		if err := json.Unmarshal(raw, &entry.Message); err != nil {
			return entry, fmt.Errorf("current results %q: %w", location, err)
		}
	case 'n':
		// null: no draws and no message
	default:
		entry.Message = strings.TrimSpace(string(raw))
	}
	return entry, nil
}

// Locations returns the location names in API order.
func (c CurrentResults) Locations() []string {
	names := make([]string, len(c))
	for i, l := range c {
		names[i] = l.Location
	}
	return names
}

// StatsSummary carries the aggregate numbers of the monthly analysis.
type StatsSummary struct {
	TotalUniqueNumbers int      `json:"total_unique_numbers"`
	AvgFrequency       float64  `json:"avg_frequency"`
	MedianFrequency    *float64 `json:"median_frequency,omitempty"`
	MaxFrequency       *int     `json:"max_frequency,omitempty"`
	MinFrequency       *int     `json:"min_frequency,omitempty"`

	populated bool
}

func (s *StatsSummary) UnmarshalJSON(b []byte) error {
	type alias StatsSummary
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(b, &keys); err != nil {
		return fmt.Errorf("statistics: %w", err)
	}
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return fmt.Errorf("statistics: %w", err)
	}
	*s = StatsSummary(a)
	s.populated = len(keys) > 0
	return nil
}

// FrequentNumber is one entry of the most-frequent ranking.
type FrequentNumber struct {
	Number     Numero  `json:"numero"`
	Frequency  int     `json:"frequency"`
	Percentage float64 `json:"percentage"`
}

// MonthlyStats is the /analytics/monthly payload.
type MonthlyStats struct {
	Month        string           `json:"month,omitempty"`
	Location     string           `json:"provincia,omitempty"`
	TotalDraws   int              `json:"total_draws"`
	Statistics   *StatsSummary    `json:"statistics"`
	MostFrequent []FrequentNumber `json:"most_frequent"`
}

// HasStatistics reports whether the payload carried a non-empty
// statistics object. The backend sends {} when the month has no draws.
func (m *MonthlyStats) HasStatistics() bool {
	return m != nil && m.Statistics != nil && m.Statistics.populated
}

// Recommendation is one suggested number with its rationale.
type Recommendation struct {
	Type       string  `json:"type"`
	Number     Numero  `json:"numero"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
	Frequency  int     `json:"frequency"`
}

// Recommendations is the /recommendations payload.
type Recommendations struct {
	Items      []Recommendation `json:"recommendations"`
	Disclaimer string           `json:"disclaimer,omitempty"`
}
