package buildorder

import "sort"

// MetadataKind distinguishes the two supply events carried by an entry.
type MetadataKind int

const (
	// SupplyOverride replaces the simulated cap.
	SupplyOverride MetadataKind = iota
	// SupplyIncrease raises the simulated cap, saturating at MaxSupply.
	SupplyIncrease
)

// Metadata is a supply event replayed in timestamp order.
type Metadata struct {
	Kind  MetadataKind
	Value Supply
}

// Entry is everything recorded at one timestamp.
type Entry struct {
	Items    []BuildItem
	Metadata []Metadata
	// Supply is the supply the player reported at this instant, if a
	// production line was logged here. Display only.
	Supply *Supply
}

// Timeline is the ordered store of entries keyed by timestamp.
type Timeline struct {
	entries map[Timestamp]*Entry
}

// NewTimeline returns an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{entries: make(map[Timestamp]*Entry)}
}

// At returns the entry at t, creating it if needed.
func (tl *Timeline) At(t Timestamp) *Entry {
	e, ok := tl.entries[t]
	if !ok {
		e = &Entry{}
		tl.entries[t] = e
	}
	return e
}

// Lookup returns the entry at t without creating it.
func (tl *Timeline) Lookup(t Timestamp) (*Entry, bool) {
	e, ok := tl.entries[t]
	return e, ok
}

// Len returns the number of distinct timestamps recorded.
func (tl *Timeline) Len() int {
	return len(tl.entries)
}

// Times returns every recorded timestamp in ascending order.
func (tl *Timeline) Times() []Timestamp {
	keys := make([]Timestamp, 0, len(tl.entries))
	for k := range tl.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// AddMetadata appends a supply event to the entry at t.
func (tl *Timeline) AddMetadata(t Timestamp, kind MetadataKind, v Supply) {
	e := tl.At(t)
	e.Metadata = append(e.Metadata, Metadata{Kind: kind, Value: v})
}

// SetSupply records the reported supply at t, replacing any earlier value.
func (tl *Timeline) SetSupply(t Timestamp, v Supply) {
	tl.At(t).Supply = &v
}

// merge adds count to the first item named name in the entry at t. It
// reports false when no such item exists.
func (tl *Timeline) merge(t Timestamp, name string, count uint8) bool {
	e, ok := tl.entries[t]
	if !ok {
		return false
	}
	for i := range e.Items {
		if e.Items[i].Name == name {
			e.Items[i].addCount(count)
			return true
		}
	}
	return false
}
