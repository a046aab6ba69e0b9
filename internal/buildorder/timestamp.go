package buildorder

import (
	"fmt"
	"strconv"
	"strings"
)

// Timestamp is a game clock reading in whole seconds.
type Timestamp int

// ParseTimestamp parses "M:SS" or "MM:SS". Minutes and seconds must each be
// in 0..59.
func ParseTimestamp(s string) (Timestamp, error) {
	mins, secs, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, &NumberError{Field: "timestamp", Value: s, Min: 0, Max: 59}
	}
	m, err := sexagesimal("minutes", mins)
	if err != nil {
		return 0, err
	}
	sc, err := sexagesimal("seconds", secs)
	if err != nil {
		return 0, err
	}
	return Timestamp(m*60 + sc), nil
}

func sexagesimal(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 59 {
		return 0, &NumberError{Field: field, Value: s, Min: 0, Max: 59}
	}
	return n, nil
}

// Minutes returns the minute part of the clock reading.
func (t Timestamp) Minutes() int { return int(t) / 60 }

// Seconds returns the second part of the clock reading.
func (t Timestamp) Seconds() int { return int(t) % 60 }

// String renders the timestamp as the output column does, minutes padded
// to two characters.
func (t Timestamp) String() string {
	return fmt.Sprintf("%2d:%02d", t.Minutes(), t.Seconds())
}
