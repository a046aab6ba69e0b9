package buildorder

import "fmt"

// Annotations maps an item name to a FIFO queue of labelled sub-batches.
// Each queued BuildItem's Name is the label and its Count is how many of
// the item it covers.
type Annotations struct {
	queues map[string][]BuildItem
}

// NewAnnotations returns an empty annotation map.
func NewAnnotations() *Annotations {
	return &Annotations{queues: make(map[string][]BuildItem)}
}

// Declare registers the queue for name. A name may be declared only once.
func (a *Annotations) Declare(name string, queue []BuildItem) error {
	if _, ok := a.queues[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateAnnotation, name)
	}
	q := make([]BuildItem, len(queue))
	copy(q, queue)
	a.queues[name] = q
	return nil
}

// Take consumes up to n of name from the front of its queue. It returns how
// many were covered and the label to use. ok is false when name has no
// pending annotation, in which case count is n and no label applies.
func (a *Annotations) Take(name string, n uint8) (count uint8, label string, ok bool) {
	q := a.queues[name]
	if len(q) == 0 {
		return n, "", false
	}
	front := &q[0]
	if front.Count < n {
		a.queues[name] = q[1:]
		return front.Count, front.Name, true
	}
	front.Count -= n
	label = front.Name
	if front.Count == 0 {
		a.queues[name] = q[1:]
	}
	return n, label, true
}

// Pending returns the total count still queued for name.
func (a *Annotations) Pending(name string) int {
	total := 0
	for _, b := range a.queues[name] {
		total += int(b.Count)
	}
	return total
}

// Clone returns a deep copy so a consumer can drain queues without
// touching the receiver.
func (a *Annotations) Clone() *Annotations {
	c := NewAnnotations()
	for name, q := range a.queues {
		cp := make([]BuildItem, len(q))
		copy(cp, q)
		c.queues[name] = cp
	}
	return c
}
