package playlist

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sosodev/duration"
)

const day = 24 * time.Hour

// clockLabels are applied right-aligned to the fields of a clock string.
var clockLabels = []string{"Days", "Hours", "Minutes", "Seconds"}

// Length is a playlist length split into calendar-free fields.
// All fields are always present; the sub-second remainder is dropped.
type Length struct {
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
}

// NewLength splits d into days, hours, minutes and seconds.
// Negative durations are treated as zero.
func NewLength(d time.Duration) Length {
	if d < 0 {
		d = 0
	}
	return Length{
		Days:    int64(d / day),
		Hours:   int64(d % day / time.Hour),
		Minutes: int64(d % time.Hour / time.Minute),
		Seconds: int64(d % time.Minute / time.Second),
	}
}

// Duration converts l back to a time.Duration.
func (l Length) Duration() time.Duration {
	return time.Duration(l.Days)*day +
		time.Duration(l.Hours)*time.Hour +
		time.Duration(l.Minutes)*time.Minute +
		time.Duration(l.Seconds)*time.Second
}

// IsZero reports whether l is zero seconds long.
func (l Length) IsZero() bool {
	return l == Length{}
}

// Clock renders l as "[[[D:]H:]M:]S".
// Leading zero fields are omitted, the first printed field is unpadded and
// the rest are two digits wide. A zero length renders as "".
func (l Length) Clock() string {
	fields := []int64{l.Days, l.Hours, l.Minutes, l.Seconds}

	start := 0
	for start < len(fields) && fields[start] == 0 {
		start++
	}
	if start == len(fields) {
		return ""
	}

	parts := make([]string, 0, len(fields)-start)
	for i, v := range fields[start:] {
		if i == 0 {
			parts = append(parts, fmt.Sprintf("%d", v))
			continue
		}
		parts = append(parts, fmt.Sprintf("%02d", v))
	}
	return strings.Join(parts, ":")
}

// String returns the labeled form, e.g. "1 Hours, 02 Minutes, 03 Seconds".
func (l Length) String() string {
	return FormatClock(l.Clock())
}

// FormatClock labels the fields of a "[[[D:]H:]M:]S" string positionally.
// The last field is always Seconds. Field values are copied verbatim.
func FormatClock(clock string) string {
	if clock == "" {
		return "0 Seconds"
	}

	fields := strings.Split(clock, ":")
	if len(fields) > len(clockLabels) {
		// Anything above days is folded into the leading field
		extra := len(fields) - len(clockLabels)
		fields = append([]string{strings.Join(fields[:extra+1], ":")}, fields[extra+1:]...)
	}

	labels := clockLabels[len(clockLabels)-len(fields):]
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + " " + labels[i]
	}
	return strings.Join(parts, ", ")
}

// ParseVideoDuration parses an ISO-8601 duration such as "PT1H2M3.5S".
// Week, day, hour, minute and (fractional) second designators are accepted.
func ParseVideoDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, errors.New("empty duration")
	}

	d, err := duration.Parse(s)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to parse duration %q", s)
	}
	td := d.ToTimeDuration()
	if td < 0 {
		return 0, errors.Newf("negative duration %q", s)
	}
	return td, nil
}
