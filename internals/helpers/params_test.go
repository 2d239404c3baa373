package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestNullIfBlank(t *testing.T) {
	assert.Nil(t, NullIfBlank(nil))
	assert.Nil(t, NullIfBlank(strp("   ")))
	assert.Equal(t, "x", *NullIfBlank(strp(" x ")))
}

func TestParseOptionalDate(t *testing.T) {
	tests := []struct {
		in   *string
		want *time.Time
		err  bool
	}{
		{in: nil},
		{in: strp(" ")},
		{in: strp("2024-06-15"), want: ptrTime(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))},
		{in: strp("2024-06-15T18:30"), want: ptrTime(time.Date(2024, 6, 15, 18, 30, 0, 0, time.UTC))},
		{in: strp("2024-06-15T18:30:00+03:00"), want: ptrTime(time.Date(2024, 6, 15, 18, 30, 0, 0, time.UTC))},
		{in: strp("2024-12-31T23:30:00-05:00"), want: ptrTime(time.Date(2024, 12, 31, 23, 30, 0, 0, time.UTC))},
		{in: strp("2025-01-01T00:30:00+03:00"), want: ptrTime(time.Date(2025, 1, 1, 0, 30, 0, 0, time.UTC))},
		{in: strp("15/06/2024"), err: true},
	}
	for _, tt := range tests {
		got, err := ParseOptionalDate(tt.in)
		if tt.err {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		if tt.want == nil {
			assert.Nil(t, got)
			continue
		}
		require.NotNil(t, got)
		assert.True(t, tt.want.Equal(*got), "got %v", got)
	}
}

func ptrTime(t time.Time) *time.Time { return &t }
