package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"5m", 5 * time.Minute},
		{"2d", 48 * time.Hour},
		{"30", 30 * time.Second},
		{" 1h ", time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseDuration("xd")
	assert.Error(t, err)
}

func TestParseDueDate(t *testing.T) {
	got, err := ParseDueDate("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local), got)

	got, err = ParseDueDate("2024-03-05T10:30:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)))

	_, err = ParseDueDate("next tuesday")
	assert.Error(t, err)
}

func TestSameDayAndBounds(t *testing.T) {
	now := time.Date(2024, 6, 1, 15, 0, 0, 0, time.Local)
	assert.True(t, SameDay(GetZeroTime(now), now))
	assert.True(t, SameDay(GetEndTime(now), now))
	assert.False(t, SameDay(GetEndTime(now).Add(time.Nanosecond), now))
}

func TestEncodeMD5(t *testing.T) {
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", EncodeMD5(""))
	assert.Len(t, EncodeMD5("Ada|Lovelace"), 32)
}
