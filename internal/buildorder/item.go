package buildorder

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var countRe = regexp.MustCompile(`^(.*) x(\d+)$`)

// BuildItem is a named quantity from an item list.
type BuildItem struct {
	Name  string `json:"name"`
	Count uint8  `json:"count"`
}

// ParseItem parses "<name> xN" or a bare "<name>" (count 1).
func ParseItem(s string) (BuildItem, error) {
	m := countRe.FindStringSubmatch(s)
	if m == nil {
		return BuildItem{Name: s, Count: 1}, nil
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n < 1 || n > math.MaxUint8 {
		return BuildItem{}, &NumberError{Field: "count", Value: m[2], Min: 1, Max: math.MaxUint8}
	}
	return BuildItem{Name: m[1], Count: uint8(n)}, nil
}

// ParseItemList splits a comma-separated list and parses every part. Order is
// preserved.
func ParseItemList(s string) ([]BuildItem, error) {
	parts := strings.Split(s, ",")
	items := make([]BuildItem, 0, len(parts))
	for _, p := range parts {
		item, err := ParseItem(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// addCount adds n to the item's count, saturating at 255.
func (b *BuildItem) addCount(n uint8) {
	if int(b.Count)+int(n) > math.MaxUint8 {
		b.Count = math.MaxUint8
		return
	}
	b.Count += n
}
