package normalizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompactCount(t *testing.T) {
	cases := []struct {
		in       string
		expected int64
		ok       bool
	}{
		{"987", 987, true},
		{"12,345", 12345, true},
		{"1.4K", 1400, true},
		{"2.3M", 2300000, true},
		{"1B", 1000000000, true},
		{"1.4k", 1400, true},
		{"", 0, false},
		{"a lot", 0, false},
		{"-5", 0, false},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			n, ok := parseCompactCount(c.in)
			assert.Equal(t, c.ok, ok)
			if c.ok {
				assert.Equal(t, c.expected, n)
			}
		})
	}
}

func TestCoerceCountRejectsNegativeAndJunk(t *testing.T) {
	_, ok := coerceCount(int64(-1))
	assert.False(t, ok)
	_, ok = coerceCount(nil)
	assert.False(t, ok)
	_, ok = coerceCount(map[string]interface{}{})
	assert.False(t, ok)

	n, ok := coerceCount(float64(42))
	require.True(t, ok)
	assert.EqualValues(t, 42, n)
}

func TestCoerceTime(t *testing.T) {
	got, ok := coerceTime("2023-08-15T10:30:00Z")
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, 8, 15, 10, 30, 0, 0, time.UTC), got)

	got, ok = coerceTime(float64(1692093000))
	require.True(t, ok)
	assert.Equal(t, time.Unix(1692093000, 0).UTC(), got)

	// numeric string means unix seconds
	got, ok = coerceTime("1692093000")
	require.True(t, ok)
	assert.Equal(t, time.Unix(1692093000, 0).UTC(), got)

	_, ok = coerceTime("")
	assert.False(t, ok)
	_, ok = coerceTime("never")
	assert.False(t, ok)
	_, ok = coerceTime(float64(0))
	assert.False(t, ok)
}
