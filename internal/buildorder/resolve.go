package buildorder

import (
	"strconv"
	"strings"
)

// Token is one comma-separated output element: a name with its numbering,
// batch count, annotation label and supply suffix.
type Token struct {
	Name    string `json:"name"`
	Count   uint8  `json:"count"`
	Numbers []int  `json:"numbers,omitempty"`
	Label   string `json:"label,omitempty"`
	// Supply is the reported supply at the line's timestamp; Cap is the
	// simulated cap. Both are only set on supply-providing names while the
	// cap is below MaxSupply.
	Supply *Supply `json:"supply,omitempty"`
	Cap    *Supply `json:"cap,omitempty"`
}

func (t Token) String() string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	switch {
	case len(t.Numbers) > 0:
		for _, n := range t.Numbers {
			sb.WriteByte(' ')
			sb.WriteString(strconv.Itoa(n))
		}
	case t.Count > 1:
		sb.WriteString(" x")
		sb.WriteString(strconv.Itoa(int(t.Count)))
	}
	if t.Label != "" {
		sb.WriteByte(' ')
		sb.WriteString(t.Label)
	}
	if t.Cap != nil {
		if t.Supply != nil {
			sb.WriteByte(' ')
			sb.WriteString(t.Supply.Shorthand())
			sb.WriteString(" of")
		}
		sb.WriteByte(' ')
		sb.WriteString(t.Cap.Shorthand())
	}
	return sb.String()
}

// Line is one rendered timeline entry.
type Line struct {
	At     Timestamp `json:"at"`
	Tokens []Token   `json:"tokens"`
}

func (l Line) String() string {
	parts := make([]string, len(l.Tokens))
	for i, t := range l.Tokens {
		parts[i] = t.String()
	}
	return "   " + l.At.String() + "   " + strings.Join(parts, ", ")
}

// Resolve replays the supply simulation over res in time order and turns
// every entry holding items into a Line. Entries without items only move the
// simulated cap. res is not modified, so Resolve may be called repeatedly.
func Resolve(res *Result) []Line {
	rules := res.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	var ann *Annotations
	if res.Annotations != nil {
		ann = res.Annotations.Clone()
	} else {
		ann = NewAnnotations()
	}
	counts := rules.displaySeeds()
	supplyCap := res.StartingCap

	var lines []Line
	for _, at := range res.Timeline.Times() {
		e, _ := res.Timeline.Lookup(at)
		for _, m := range e.Metadata {
			switch m.Kind {
			case SupplyOverride:
				supplyCap = m.Value
			case SupplyIncrease:
				supplyCap = supplyCap.Add(m.Value)
			}
		}
		if len(e.Items) == 0 {
			continue
		}

		line := Line{At: at}
		for _, item := range e.Items {
			for remaining := item.Count; remaining > 0; {
				sub, label, _ := ann.Take(item.Name, remaining)
				remaining -= sub
				tok := Token{Name: item.Name, Count: sub, Label: label}

				if rules.Numbered(item.Name) {
					old := counts[item.Name]
					now := old + int(sub)
					counts[item.Name] = now
					if now > 1 && now <= 10 {
						for i := old + 1; i <= now; i++ {
							tok.Numbers = append(tok.Numbers, i)
						}
					}
				}

				if rules.ShowsSupply(item.Name) && supplyCap < MaxSupply {
					c := supplyCap
					tok.Cap = &c
					if e.Supply != nil {
						s := *e.Supply
						tok.Supply = &s
					}
				}
				line.Tokens = append(line.Tokens, tok)
			}
		}
		lines = append(lines, line)
	}
	return lines
}
