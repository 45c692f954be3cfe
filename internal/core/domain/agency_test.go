package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-12-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2024-12-15", FormatDate(d))

	_, err = ParseDate("15/12/2024")
	assert.Error(t, err)
}

func TestTruncateDate(t *testing.T) {
	in := time.Date(2025, 3, 4, 17, 30, 12, 99, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), TruncateDate(in))
}

func TestCodeReference_HasTitle(t *testing.T) {
	assert.True(t, CodeReference{Title: 7}.HasTitle())
	assert.False(t, CodeReference{Chapter: "I"}.HasTitle())
}

func TestSnapshot_Date(t *testing.T) {
	s := Snapshot{SnapshotDate: time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2025-12-15", s.Date())
}
