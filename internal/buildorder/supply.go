package buildorder

import (
	"fmt"
	"strconv"
)

// MaxSupply is the hard supply ceiling of the game.
const MaxSupply Supply = 200

// Supply is a supply value in 0..MaxSupply.
type Supply uint8

// ParseSupply parses a decimal supply value.
func ParseSupply(s string) (Supply, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > int(MaxSupply) {
		return 0, &NumberError{Field: "supply", Value: s, Min: 0, Max: int(MaxSupply)}
	}
	return Supply(n), nil
}

// Add returns s+d, saturating at MaxSupply.
func (s Supply) Add(d Supply) Supply {
	sum := int(s) + int(d)
	if sum > int(MaxSupply) {
		return MaxSupply
	}
	return Supply(sum)
}

// Mul returns s*n, saturating at MaxSupply.
func (s Supply) Mul(n uint8) Supply {
	p := int(s) * int(n)
	if p > int(MaxSupply) {
		return MaxSupply
	}
	return Supply(p)
}

// Shorthand splits values of 100 and over into the hundreds digit and a
// two-digit remainder: 196 renders as "1 96".
func (s Supply) Shorthand() string {
	if s < 100 {
		return strconv.Itoa(int(s))
	}
	return fmt.Sprintf("%d %02d", s/100, s%100)
}
