package buildorder

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Role is the structural role a name plays in the supply simulation.
type Role int

const (
	RoleNone Role = iota
	// RoleProducer is a base structure: it adds supply once built and can
	// later be upgraded.
	RoleProducer
	// RoleUpgrade consumes one un-upgraded producer.
	RoleUpgrade
	// RoleCapacity provides supply and shows the running cap in the output.
	RoleCapacity
)

// RoleRule is the supply effect of one name. Delay is the build time from
// the logged start to the moment the supply lands.
type RoleRule struct {
	Role  Role
	Delay Timestamp
	Unit  Supply
}

const (
	defaultStartingCap Supply    = 15
	defaultBatchWindow Timestamp = 6
)

var defaultRoles = map[string]RoleRule{
	"Command Center":     {Role: RoleProducer, Delay: 71, Unit: 15},
	"Nexus":              {Role: RoleProducer, Delay: 71, Unit: 15},
	"Hatchery":           {Role: RoleProducer, Delay: 71, Unit: 6},
	"Orbital Command":    {Role: RoleUpgrade},
	"Planetary Fortress": {Role: RoleUpgrade},
	"Supply Depot":       {Role: RoleCapacity, Delay: 21, Unit: 8},
	"Overlord":           {Role: RoleCapacity, Delay: 18, Unit: 8},
	"Pylon":              {Role: RoleCapacity, Delay: 18, Unit: 8},
}

var defaultBatchWindows = map[string]Timestamp{
	"Drone":      3,
	"Overlord":   3,
	"Overseer":   3,
	"Zergling":   3,
	"Baneling":   3,
	"Roach":      3,
	"Ravager":    3,
	"Hydralisk":  3,
	"Lurker":     3,
	"Infestor":   3,
	"Viper":      3,
	"Ultralisk":  3,
	"Mutalisk":   3,
	"Corruptor":  3,
	"Brood Lord": 3,
	"SCV":        10,
	"Probe":      10,
}

// Names that are never individually numbered.
var defaultUnnumbered = []string{
	"Supply Depot", "SCV", "Missile Turret", "Sensor Tower", "Bunker",
	"Drone", "Zergling", "Baneling", "Roach", "Ravager", "Hydralisk",
	"Lurker", "Infestor", "Viper", "Ultralisk", "Swarm Host", "Mutalisk",
	"Corruptor", "Brood Lord", "Overlord", "Overseer", "Spore Crawler",
	"Spine Crawler", "Probe", "Probe (Chrono Boost)", "Pylon", "Photon Cannon",
}

// Seeing one of these marks the log as zerg, which starts on less supply.
var defaultStartingCapMarkers = map[string]Supply{
	"Overlord": 14,
}

// The log never mentions the starting base, so numbering starts at 1.
var defaultDisplaySeeds = map[string]int{
	"Command Center": 1,
	"Hatchery":       1,
	"Nexus":          1,
}

// Rules holds the name-keyed lookup tables driving batching, supply and
// numbering.
type Rules struct {
	roles         map[string]RoleRule
	windows       map[string]Timestamp
	defaultWindow Timestamp
	unnumbered    map[string]bool
	markers       map[string]Supply
	seeds         map[string]int
}

// DefaultRules returns a fresh copy of the built-in tables.
func DefaultRules() *Rules {
	r := &Rules{
		roles:         make(map[string]RoleRule, len(defaultRoles)),
		windows:       make(map[string]Timestamp, len(defaultBatchWindows)),
		defaultWindow: defaultBatchWindow,
		unnumbered:    make(map[string]bool, len(defaultUnnumbered)),
		markers:       make(map[string]Supply, len(defaultStartingCapMarkers)),
		seeds:         make(map[string]int, len(defaultDisplaySeeds)),
	}
	for k, v := range defaultRoles {
		r.roles[k] = v
	}
	for k, v := range defaultBatchWindows {
		r.windows[k] = v
	}
	for _, name := range defaultUnnumbered {
		r.unnumbered[name] = true
	}
	for k, v := range defaultStartingCapMarkers {
		r.markers[k] = v
	}
	for k, v := range defaultDisplaySeeds {
		r.seeds[k] = v
	}
	return r
}

// Role returns the supply rule for name. Unknown names get RoleNone.
func (r *Rules) Role(name string) RoleRule {
	return r.roles[name]
}

// BatchWindow returns the maximum gap at which two events for name merge.
func (r *Rules) BatchWindow(name string) Timestamp {
	if w, ok := r.windows[name]; ok {
		return w
	}
	return r.defaultWindow
}

// Numbered reports whether name gets sequential numbers in the output.
func (r *Rules) Numbered(name string) bool {
	return !r.unnumbered[name]
}

// ShowsSupply reports whether name is followed by the supply annotation.
func (r *Rules) ShowsSupply(name string) bool {
	return r.roles[name].Role == RoleCapacity
}

// StartingCap returns the starting supply cap implied by name, if any.
func (r *Rules) StartingCap(name string) (Supply, bool) {
	v, ok := r.markers[name]
	return v, ok
}

// displaySeeds returns a copy of the initial numbering counts.
func (r *Rules) displaySeeds() map[string]int {
	m := make(map[string]int, len(r.seeds))
	for k, v := range r.seeds {
		m[k] = v
	}
	return m
}

// RulesOverlay is the YAML shape of a rules file.
type RulesOverlay struct {
	BatchWindows map[string]int `yaml:"batch_windows"`
	Unnumbered   []string       `yaml:"unnumbered"`
	Numbered     []string       `yaml:"numbered"`
}

// LoadRules returns the default rules extended by the YAML overlay at path.
// An empty path yields the defaults.
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	r, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return r, nil
}

// ParseRules applies a YAML overlay to the default rules.
func ParseRules(data []byte) (*Rules, error) {
	r := DefaultRules()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var o RulesOverlay
	if err := dec.Decode(&o); err != nil {
		if errors.Is(err, io.EOF) {
			return r, nil
		}
		return nil, fmt.Errorf("yaml decode: %w", err)
	}
	if err := r.apply(o); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Rules) apply(o RulesOverlay) error {
	for name, secs := range o.BatchWindows {
		if secs < 0 {
			return &NumberError{Field: "batch window for " + name, Value: fmt.Sprint(secs), Min: 0, Max: 59*60 + 59}
		}
		r.windows[name] = Timestamp(secs)
	}
	for _, name := range o.Unnumbered {
		r.unnumbered[name] = true
	}
	for _, name := range o.Numbered {
		delete(r.unnumbered, name)
	}
	return nil
}
