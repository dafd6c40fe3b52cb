package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "09:00"},
		{name: "valid midnight", input: "00:00"},
		{name: "valid end of day", input: "23:59"},
		{name: "missing leading zero", input: "9:00", wantErr: true},
		{name: "out of range hours", input: "24:00", wantErr: true},
		{name: "out of range minutes", input: "10:60", wantErr: true},
		{name: "not a time", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    string
		wantErr bool
	}{
		{name: "morning", minutes: 540, want: "09:00"},
		{name: "midnight", minutes: 0, want: "00:00"},
		{name: "last minute", minutes: 1439, want: "23:59"},
		{name: "with minutes part", minutes: 645, want: "10:45"},
		{name: "negative", minutes: -1, wantErr: true},
		{name: "full day", minutes: 1440, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromMinutes(tt.minutes)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ts.String())
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	ts, err := NewTimeStringFromString("10:30")
	require.NoError(t, err)

	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, minutes)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("10:00")

	shifted, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), shifted)

	// Выход за пределы суток
	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 9, 14, 10, 5, 59, 0, time.UTC)
	assert.Equal(t, TimeString("10:05"), NewTimeString(moment))
}
