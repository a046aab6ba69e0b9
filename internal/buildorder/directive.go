package buildorder

import (
	"fmt"
	"regexp"
	"strings"
)

// DirectiveKind classifies an input line.
type DirectiveKind int

const (
	// KindIgnored is any line matching no directive grammar. Free-form
	// comments land here.
	KindIgnored DirectiveKind = iota
	KindAnnotation
	KindSupplyOverride
	KindReminder
	KindProduction
)

func (k DirectiveKind) String() string {
	switch k {
	case KindAnnotation:
		return "annotation"
	case KindSupplyOverride:
		return "supply-override"
	case KindReminder:
		return "reminder"
	case KindProduction:
		return "production"
	}
	return "ignored"
}

var (
	annotationRe = regexp.MustCompile(`^# \((.*)\) (.*)$`)
	supplyRe     = regexp.MustCompile(`^# \[Supply\] (.*)$`)
	reminderRe   = regexp.MustCompile(`^# (\d{1,2}:\d{2}) (.*)$`)
	productionRe = regexp.MustCompile(`^\s*(\d+)\s+(\d{1,2}:\d{2})\s+(.*)$`)
)

// SupplyPoint is one "<timestamp> <value>" entry of a supply override.
type SupplyPoint struct {
	At    Timestamp
	Value Supply
}

// Directive is one parsed input line. Which fields are set depends on Kind:
//   - KindAnnotation: Name, Items (the substitution queue)
//   - KindSupplyOverride: Overrides
//   - KindReminder: At, Items
//   - KindProduction: Supply, At, Items
type Directive struct {
	Kind      DirectiveKind
	Name      string
	At        Timestamp
	Supply    Supply
	Items     []BuildItem
	Overrides []SupplyPoint
}

// ParseDirective classifies one line and extracts its fields. Unrecognized
// lines yield KindIgnored and no error.
func ParseDirective(line string) (Directive, error) {
	line = strings.TrimSpace(line)

	if m := annotationRe.FindStringSubmatch(line); m != nil {
		items, err := ParseItemList(m[2])
		if err != nil {
			return Directive{}, err
		}
		return Directive{Kind: KindAnnotation, Name: m[1], Items: items}, nil
	}

	if m := supplyRe.FindStringSubmatch(line); m != nil {
		points, err := parseSupplyPoints(m[1])
		if err != nil {
			return Directive{}, err
		}
		return Directive{Kind: KindSupplyOverride, Overrides: points}, nil
	}

	if m := reminderRe.FindStringSubmatch(line); m != nil {
		at, err := ParseTimestamp(m[1])
		if err != nil {
			return Directive{}, err
		}
		items, err := ParseItemList(m[2])
		if err != nil {
			return Directive{}, err
		}
		return Directive{Kind: KindReminder, At: at, Items: items}, nil
	}

	if m := productionRe.FindStringSubmatch(line); m != nil {
		supply, err := ParseSupply(m[1])
		if err != nil {
			return Directive{}, err
		}
		at, err := ParseTimestamp(m[2])
		if err != nil {
			return Directive{}, err
		}
		items, err := ParseItemList(m[3])
		if err != nil {
			return Directive{}, err
		}
		return Directive{Kind: KindProduction, Supply: supply, At: at, Items: items}, nil
	}

	return Directive{Kind: KindIgnored}, nil
}

func parseSupplyPoints(s string) ([]SupplyPoint, error) {
	var points []SupplyPoint
	for _, part := range strings.Split(s, ",") {
		ts, value, ok := strings.Cut(strings.TrimSpace(part), " ")
		if !ok {
			return nil, fmt.Errorf("supply override %q: want \"<timestamp> <supply>\": %w", part, ErrMalformedNumber)
		}
		at, err := ParseTimestamp(ts)
		if err != nil {
			return nil, err
		}
		v, err := ParseSupply(strings.TrimSpace(value))
		if err != nil {
			return nil, err
		}
		points = append(points, SupplyPoint{At: at, Value: v})
	}
	return points, nil
}
