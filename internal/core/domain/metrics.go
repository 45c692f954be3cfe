package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
)

// IndustryScore is the relevance of one taxonomy category to an agency's text.
type IndustryScore struct {
	// Key is the category key.
	Key string

	// Name is the category display name.
	Name string

	// Score is matches per 10,000 words, rounded to one decimal place.
	Score float64

	// Matches is the raw keyword match count.
	Matches int

	// Color is the category display color.
	Color string
}

// IndustryScores is an ordered set of scores, highest score first.
// It encodes as a JSON object whose key order is the slice order.
type IndustryScores []IndustryScore

// scoreEntry is the JSON value stored under each category key.
type scoreEntry struct {
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
	Matches int     `json:"matches"`
	Color   string  `json:"color"`
}

// Get returns the score for a category key.
func (s IndustryScores) Get(key string) (IndustryScore, bool) {
	for _, score := range s {
		if score.Key == key {
			return score, true
		}
	}
	return IndustryScore{}, false
}

// Top returns up to limit categories with a positive score, highest first.
func (s IndustryScores) Top(limit int) []IndustryScore {
	top := make([]IndustryScore, 0, len(s))
	for _, score := range s {
		if score.Score > 0 {
			top = append(top, score)
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Score > top[j].Score
	})
	if limit >= 0 && len(top) > limit {
		top = top[:limit]
	}
	return top
}

// MarshalJSON encodes the scores as an object, preserving order.
func (s IndustryScores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, score := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(score.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(scoreEntry{
			Name:    score.Name,
			Score:   score.Score,
			Matches: score.Matches,
			Color:   score.Color,
		})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of scores, keeping the key order.
func (s *IndustryScores) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("industry scores: expected object")
	}

	out := IndustryScores{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var entry scoreEntry
		if err := dec.Decode(&entry); err != nil {
			return err
		}
		out = append(out, IndustryScore{
			Key:     key,
			Name:    entry.Name,
			Score:   entry.Score,
			Matches: entry.Matches,
			Color:   entry.Color,
		})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = out
	return nil
}

// Metrics is the structured payload stored with each snapshot.
type Metrics struct {
	TotalSizeBytes int64          `json:"total_size_bytes"`
	APIDateUsed    string         `json:"api_date_used"`
	IndustryScores IndustryScores `json:"industry_scores"`
}

// ParseMetrics decodes a stored payload.
// Empty or unparsable input yields an empty payload.
func ParseMetrics(raw string) Metrics {
	var m Metrics
	if raw == "" {
		return m
	}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return Metrics{}
	}
	return m
}

// AgencyMetrics is the aggregate computed for one agency on one date.
type AgencyMetrics struct {
	WordCount    int
	SectionCount int
	Checksum     string
	Metrics      Metrics
}
