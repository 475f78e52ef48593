package service

import (
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// normalizeDate accepts YYYY-MM-DD and returns it zero-padded.
func normalizeDate(s string) (string, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", invalid("date", "Date must be in YYYY-MM-DD format")
	}
	return d.Format(dateLayout), nil
}

// normalizeTime accepts HH:MM or HH:MM:SS and returns HH:MM, so that
// "19:00" and "19:00:00" address the same slot.
func normalizeTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{timeLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(timeLayout), nil
		}
	}
	return "", invalid("time", "Time must be in HH:MM format")
}

// withinOpeningHours reports whether slot falls in [opens, closes).  A
// closing time at or before the opening time means the restaurant closes
// after midnight.  All arguments are normalised HH:MM strings, which
// order lexically.
func withinOpeningHours(slot, opens, closes string) bool {
	switch {
	case opens == closes:
		return true
	case opens < closes:
		return slot >= opens && slot < closes
	default:
		return slot >= opens || slot < closes
	}
}

func validEmail(s string) bool {
	at := strings.LastIndex(s, "@")
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t\r\n")
}
