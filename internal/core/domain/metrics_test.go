package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScores() IndustryScores {
	return IndustryScores{
		{Key: "finance", Name: "Finance", Score: 20, Matches: 20, Color: "emerald"},
		{Key: "trade", Name: "Trade", Score: 3.5, Matches: 7, Color: "sky"},
		{Key: "healthcare", Name: "Healthcare", Score: 0, Matches: 0, Color: "rose"},
	}
}

func TestIndustryScores_MarshalPreservesOrder(t *testing.T) {
	data, err := json.Marshal(sampleScores())
	require.NoError(t, err)

	assert.Equal(t,
		`{"finance":{"name":"Finance","score":20,"matches":20,"color":"emerald"},`+
			`"trade":{"name":"Trade","score":3.5,"matches":7,"color":"sky"},`+
			`"healthcare":{"name":"Healthcare","score":0,"matches":0,"color":"rose"}}`,
		string(data))
}

func TestIndustryScores_EmptyMarshalsAsObject(t *testing.T) {
	data, err := json.Marshal(IndustryScores{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	data, err = json.Marshal(IndustryScores(nil))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestIndustryScores_UnmarshalKeepsOrder(t *testing.T) {
	raw := `{"trade":{"name":"Trade","score":9.1,"matches":3,"color":"sky"},` +
		`"energy":{"name":"Energy","score":1,"matches":1,"color":"amber"}}`

	var scores IndustryScores
	require.NoError(t, json.Unmarshal([]byte(raw), &scores))

	require.Len(t, scores, 2)
	assert.Equal(t, "trade", scores[0].Key)
	assert.InDelta(t, 9.1, scores[0].Score, 0.0001)
	assert.Equal(t, "energy", scores[1].Key)
}

func TestIndustryScores_UnmarshalRejectsArray(t *testing.T) {
	var scores IndustryScores
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &scores))
}

func TestIndustryScores_Top(t *testing.T) {
	scores := IndustryScores{
		{Key: "a", Score: 1},
		{Key: "b", Score: 5},
		{Key: "c", Score: 0},
		{Key: "d", Score: 3},
	}

	top := scores.Top(2)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].Key)
	assert.Equal(t, "d", top[1].Key)

	assert.Len(t, scores.Top(10), 3)
	assert.Empty(t, IndustryScores{}.Top(3))
}

func TestIndustryScores_Get(t *testing.T) {
	score, ok := sampleScores().Get("trade")
	require.True(t, ok)
	assert.Equal(t, 7, score.Matches)

	_, ok = sampleScores().Get("missing")
	assert.False(t, ok)
}

func TestMetrics_RoundTrip(t *testing.T) {
	m := Metrics{TotalSizeBytes: 550, APIDateUsed: "2024-12-15", IndustryScores: sampleScores()}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	parsed := ParseMetrics(string(data))
	assert.Equal(t, m, parsed)
}

func TestParseMetrics_Invalid(t *testing.T) {
	assert.Equal(t, Metrics{}, ParseMetrics(""))
	assert.Equal(t, Metrics{}, ParseMetrics("not json"))
	assert.Equal(t, "value", ParseMetrics(`{"api_date_used":"value"}`).APIDateUsed)
}
