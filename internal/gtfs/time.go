package gtfs

import (
	"fmt"
	"strconv"
	"strings"
)

const secondsPerDay = 24 * 60 * 60

// MalformedTimeError reports a GTFS time string that could not be parsed.
type MalformedTimeError struct {
	Value string
}

func (e *MalformedTimeError) Error() string {
	return fmt.Sprintf("malformed GTFS time %q", e.Value)
}

// ParseTime parses a GTFS HH:MM:SS time string into seconds since midnight.
//
// GTFS allows hours >= 24 for trips that continue past midnight of the
// service day; those are normalized by reducing hours modulo 24, so the
// result is always in [0, 86399]. An empty or whitespace-only string is not
// an error: it parses to "absent" (ok == false). A string with the wrong
// number of fields or a non-numeric component fails with
// *MalformedTimeError.
func ParseTime(s string) (secs int, ok bool, err error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, false, nil
	}

	parts := strings.Split(trimmed, ":")
	if len(parts) != 3 {
		return 0, false, &MalformedTimeError{Value: s}
	}

	var fields [3]int
	for i, part := range parts {
		n, convErr := strconv.Atoi(strings.TrimSpace(part))
		if convErr != nil || n < 0 {
			return 0, false, &MalformedTimeError{Value: s}
		}
		fields[i] = n
	}

	hours, minutes, seconds := fields[0], fields[1], fields[2]
	if minutes > 59 || seconds > 59 {
		return 0, false, &MalformedTimeError{Value: s}
	}

	hours = hours % 24

	return hours*3600 + minutes*60 + seconds, true, nil
}

// FormatTime renders seconds-since-midnight as HH:MM:SS for API output.
func FormatTime(secs int) string {
	secs = ((secs % secondsPerDay) + secondsPerDay) % secondsPerDay
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
}
