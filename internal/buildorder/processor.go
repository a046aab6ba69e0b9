package buildorder

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fakeyudi/bocleaner/internal/logging"
)

// Processor owns all state of one parsing pass over a build-order log.
// Lines must be fed in file order; a Processor is not safe for concurrent
// use.
type Processor struct {
	rules       *Rules
	log         *logging.Logger
	timeline    *Timeline
	annotations *Annotations
	lastSeen    map[string]Timestamp
	// Un-upgraded producer structures currently alive. The starting base is
	// never logged, hence 1.
	producers   int
	startingCap Supply
	warnings    []string
}

// NewProcessor returns a Processor using rules. A nil rules uses
// DefaultRules and a nil logger discards.
func NewProcessor(rules *Rules, logger *logging.Logger) *Processor {
	if rules == nil {
		rules = DefaultRules()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Processor{
		rules:       rules,
		log:         logger,
		timeline:    NewTimeline(),
		annotations: NewAnnotations(),
		lastSeen:    make(map[string]Timestamp),
		producers:   1,
		startingCap: defaultStartingCap,
	}
}

// ReadFrom feeds every line of r. The first fatal error is returned as a
// *LineError and stops processing.
func (p *Processor) ReadFrom(r io.Reader) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		text := sc.Text()
		if err := p.Feed(text); err != nil {
			return &LineError{Line: n, Text: text, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// Feed processes one input line.
func (p *Processor) Feed(line string) error {
	d, err := ParseDirective(line)
	if err != nil {
		return err
	}

	switch d.Kind {
	case KindAnnotation:
		return p.annotations.Declare(d.Name, d.Items)

	case KindSupplyOverride:
		for _, pt := range d.Overrides {
			p.timeline.AddMetadata(pt.At, SupplyOverride, pt.Value)
		}

	case KindReminder:
		e := p.timeline.At(d.At)
		e.Items = append(e.Items, d.Items...)

	case KindProduction:
		p.timeline.SetSupply(d.At, d.Supply)
		for _, item := range d.Items {
			p.produce(d.At, item, line)
		}

	default:
		p.log.Debugf("ignoring line %q", line)
	}
	return nil
}

// produce runs side effects and the batching decision for one item of a
// production line.
func (p *Processor) produce(at Timestamp, item BuildItem, line string) {
	rule := p.rules.Role(item.Name)
	switch rule.Role {
	case RoleProducer:
		p.producers++
		p.schedule(at, rule, item.Count)
	case RoleCapacity:
		p.schedule(at, rule, item.Count)
	case RoleUpgrade:
		if p.producers == 0 {
			p.warn(fmt.Errorf("%w: %s", ErrImpossibleUpgrade, line))
			return
		}
		p.producers--
	}

	if start, ok := p.rules.StartingCap(item.Name); ok {
		p.startingCap = start
	}

	if prev, ok := p.lastSeen[item.Name]; ok && at-prev <= p.rules.BatchWindow(item.Name) {
		if p.timeline.merge(prev, item.Name, item.Count) {
			return
		}
	}
	p.lastSeen[item.Name] = at
	e := p.timeline.At(at)
	e.Items = append(e.Items, item)
}

// schedule records the supply a finished item adds once its build time has
// elapsed.
func (p *Processor) schedule(at Timestamp, rule RoleRule, count uint8) {
	p.timeline.AddMetadata(at+rule.Delay, SupplyIncrease, rule.Unit.Mul(count))
}

func (p *Processor) warn(err error) {
	p.log.Warnf("%v", err)
	p.warnings = append(p.warnings, err.Error())
}

// Result freezes the pass. The Processor keeps ownership; callers must not
// feed more lines while resolving the Result.
func (p *Processor) Result() *Result {
	return &Result{
		Timeline:    p.timeline,
		Annotations: p.annotations,
		StartingCap: p.startingCap,
		Rules:       p.rules,
		Warnings:    append([]string(nil), p.warnings...),
	}
}

// Result is the fully populated output of a parsing pass.
type Result struct {
	Timeline    *Timeline
	Annotations *Annotations
	StartingCap Supply
	Rules       *Rules
	// Warnings lists non-fatal problems, in input order.
	Warnings []string
}

// Process reads a whole log and returns its Result.
func Process(r io.Reader, rules *Rules, logger *logging.Logger) (*Result, error) {
	p := NewProcessor(rules, logger)
	if err := p.ReadFrom(r); err != nil {
		return nil, err
	}
	return p.Result(), nil
}
