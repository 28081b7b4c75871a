package playlist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1:02:03:04", "1 Days, 02 Hours, 03 Minutes, 04 Seconds"},
		{"12:34:56", "12 Hours, 34 Minutes, 56 Seconds"},
		{"01:23", "01 Minutes, 23 Seconds"},
		{"59", "59 Seconds"},
		{"", "0 Seconds"},
		{"0:00:00", "0 Hours, 00 Minutes, 00 Seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatClock(tt.input))
		})
	}
}

func TestNewLength(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected Length
	}{
		{
			name:     "zero",
			input:    0,
			expected: Length{},
		},
		{
			name:     "negative is clamped",
			input:    -time.Minute,
			expected: Length{},
		},
		{
			name:     "sub-second remainder dropped",
			input:    59*time.Second + 900*time.Millisecond,
			expected: Length{Seconds: 59},
		},
		{
			name:     "all fields",
			input:    26*time.Hour + 3*time.Minute + 4*time.Second,
			expected: Length{Days: 1, Hours: 2, Minutes: 3, Seconds: 4},
		},
		{
			name:     "several days",
			input:    10*24*time.Hour + 5*time.Second,
			expected: Length{Days: 10, Seconds: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLength(tt.input)
			assert.Equal(t, tt.expected, l)
			assert.Equal(t, tt.input.Truncate(time.Second) > 0, !l.IsZero())
		})
	}
}

func TestLength_Duration(t *testing.T) {
	d := 3*24*time.Hour + 4*time.Hour + 5*time.Minute + 6*time.Second
	assert.Equal(t, d, NewLength(d).Duration())
}

func TestLength_ClockAndString(t *testing.T) {
	tests := []struct {
		name   string
		length Length
		clock  string
		text   string
	}{
		{
			name:   "zero",
			length: Length{},
			clock:  "",
			text:   "0 Seconds",
		},
		{
			name:   "seconds only",
			length: Length{Seconds: 59},
			clock:  "59",
			text:   "59 Seconds",
		},
		{
			name:   "minutes and seconds",
			length: Length{Minutes: 1, Seconds: 23},
			clock:  "1:23",
			text:   "1 Minutes, 23 Seconds",
		},
		{
			name:   "hours",
			length: Length{Hours: 1, Minutes: 2, Seconds: 3},
			clock:  "1:02:03",
			text:   "1 Hours, 02 Minutes, 03 Seconds",
		},
		{
			name:   "exact hour keeps lower fields",
			length: Length{Hours: 2},
			clock:  "2:00:00",
			text:   "2 Hours, 00 Minutes, 00 Seconds",
		},
		{
			name:   "days",
			length: Length{Days: 1, Seconds: 5},
			clock:  "1:00:00:05",
			text:   "1 Days, 00 Hours, 00 Minutes, 05 Seconds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.clock, tt.length.Clock())
			assert.Equal(t, tt.text, tt.length.String())
		})
	}
}

func TestParseVideoDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{name: "minutes and seconds", input: "PT1M30S", expected: 90 * time.Second},
		{name: "hours", input: "PT1H", expected: time.Hour},
		{name: "full time part", input: "PT1H30M45S", expected: time.Hour + 30*time.Minute + 45*time.Second},
		{name: "zero seconds", input: "PT0S", expected: 0},
		{name: "live stream zero days", input: "P0D", expected: 0},
		{name: "days and hours", input: "P1DT2H", expected: 26 * time.Hour},
		{name: "weeks", input: "P1W", expected: 7 * 24 * time.Hour},
		{name: "fractional seconds", input: "PT1.5S", expected: 1500 * time.Millisecond},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "invalid", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseVideoDuration(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}
