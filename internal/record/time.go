package record

import (
	"strings"
	"time"
)

// legacyLayout is the timestamp shape produced by the first generation of
// writers: local wall-clock minutes without a timezone.
const legacyLayout = "2006-01-02 15:04"

// legacyZone resolves legacy timestamps. The legacy writers stamped local
// Japan time, so values without an offset are interpreted as UTC+9.
var legacyZone = time.FixedZone("UTC+9", 9*60*60)

// Stamp formats an instant for new wire timestamps.
func Stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTime parses a wire timestamp. RFC 3339 values are preferred; legacy
// values without a timezone fall back to minute precision in legacyZone.
// The second return is false when the value cannot be parsed at all, in
// which case the zero time is returned.
func ParseTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(legacyLayout, value, legacyZone); err == nil {
		return t, true
	}
	return time.Time{}, false
}
