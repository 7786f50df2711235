package subtitles

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseSRTTimestamp accepts HH:MM:SS,mmm and tolerates a period separator.
func parseSRTTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if hours < 0 || minutes < 0 || seconds < 0 || millis < 0 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

func formatSRTTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	msTotal := int64(d / time.Millisecond)
	hours := msTotal / 3_600_000
	msTotal %= 3_600_000
	minutes := msTotal / 60_000
	msTotal %= 60_000
	secs := msTotal / 1_000
	millis := msTotal % 1_000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// parseASSTimestamp accepts H:MM:SS.cc. One, two or three fractional digits
// are read as tenths, centiseconds or milliseconds.
func parseASSTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	clock, frac, ok := strings.Cut(value, ".")
	if !ok {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(clock, ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	var parts [3]int
	for i, field := range hms {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
		parts[i] = n
	}
	if len(frac) > 3 {
		frac = frac[:3]
	}
	scale := 1
	switch len(frac) {
	case 1:
		scale = 100
	case 2:
		scale = 10
	case 3:
	default:
		frac = "0"
	}
	fraction, err := strconv.Atoi(frac)
	if err != nil || fraction < 0 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return time.Duration(parts[0])*time.Hour +
		time.Duration(parts[1])*time.Minute +
		time.Duration(parts[2])*time.Second +
		time.Duration(fraction*scale)*time.Millisecond, nil
}

func formatASSTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	csTotal := int64(d / (10 * time.Millisecond))
	hours := csTotal / 360_000
	csTotal %= 360_000
	minutes := csTotal / 6_000
	csTotal %= 6_000
	secs := csTotal / 100
	centis := csTotal % 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centis)
}

// convertTimestamp rewrites value from one format's notation to another's.
// Values that cannot be read are returned unchanged.
func convertTimestamp(value string, from, to Format) string {
	if from == to {
		return value
	}
	var (
		d   time.Duration
		err error
	)
	switch from {
	case FormatSRT:
		d, err = parseSRTTimestamp(value)
	case FormatASS:
		d, err = parseASSTimestamp(value)
	default:
		return value
	}
	if err != nil {
		return value
	}
	switch to {
	case FormatSRT:
		return formatSRTTimestamp(d)
	case FormatASS:
		return formatASSTimestamp(d)
	}
	return value
}
