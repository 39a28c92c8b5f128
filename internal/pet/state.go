package pet

import (
	"math"

	"github.com/google/uuid"
	"github.com/sethgrid/bolita/internal/conditions"
)

type Attribute int

const (
	AttrHunger Attribute = iota
	AttrEnergy
	AttrHappiness
	AttrDirtiness

	numAttributes
)

func (a Attribute) String() string {
	switch a {
	case AttrHunger:
		return "hunger"
	case AttrEnergy:
		return "energy"
	case AttrHappiness:
		return "happiness"
	case AttrDirtiness:
		return "dirtiness"
	default:
		return "unknown"
	}
}

// PetState is a single pet. It is not safe for concurrent use; one
// goroutine owns it and everything else talks to that goroutine.
type PetState struct {
	id    uuid.UUID
	name  string
	attrs [numAttributes]float64

	rules      Rules
	thresholds conditions.Thresholds
	notifier   Notifier
}

// Snapshot is a read-only copy of a PetState for renderers.
type Snapshot struct {
	ID   uuid.UUID
	Name string

	Hunger    float64
	Energy    float64
	Happiness float64
	Dirtiness float64

	Status  string
	Primary conditions.Condition
}

// New creates a pet with starting stats and the default rules.
func New(name string) *PetState {
	p := &PetState{
		id:         uuid.New(),
		name:       name,
		rules:      DefaultRules(),
		thresholds: conditions.DefaultThresholds(),
		notifier:   Discard,
	}
	p.attrs[AttrHunger] = 50
	p.attrs[AttrEnergy] = 100
	p.attrs[AttrHappiness] = 100
	p.attrs[AttrDirtiness] = 0
	return p
}

// NewFromConfig creates a pet named and tuned by cfg. A nil notifier
// discards events.
func NewFromConfig(cfg PetConfig, n Notifier) *PetState {
	cfg = cfg.WithDefaults()
	p := New(cfg.Name)
	p.rules = cfg.Rules
	p.thresholds = cfg.Thresholds
	p.SetNotifier(n)
	return p
}

func (p *PetState) SetNotifier(n Notifier) {
	if n == nil {
		n = Discard
	}
	p.notifier = n
}

func (p *PetState) ID() uuid.UUID { return p.id }
func (p *PetState) Name() string  { return p.name }

func (p *PetState) Hunger() float64    { return p.attrs[AttrHunger] }
func (p *PetState) Energy() float64    { return p.attrs[AttrEnergy] }
func (p *PetState) Happiness() float64 { return p.attrs[AttrHappiness] }
func (p *PetState) Dirtiness() float64 { return p.attrs[AttrDirtiness] }

// Get returns the current value of a.
func (p *PetState) Get(a Attribute) float64 {
	return p.attrs[a]
}

// set is the only write path for attributes. NaN is ignored so a bad
// input can never poison the state.
func (p *PetState) set(a Attribute, v float64) {
	if math.IsNaN(v) {
		return
	}
	p.attrs[a] = clamp(v)
}

func (p *PetState) add(a Attribute, delta float64) {
	p.set(a, p.attrs[a]+delta)
}

func (p *PetState) apply(e Effect) {
	p.add(AttrHunger, e.Hunger)
	p.add(AttrEnergy, e.Energy)
	p.add(AttrHappiness, e.Happiness)
	p.add(AttrDirtiness, e.Dirtiness)
}

// DeriveStatus evaluates the status thresholds against the current values.
func (p *PetState) DeriveStatus() conditions.DerivedStatus {
	return conditions.Derive(p, p.thresholds)
}

// Status is the comma-separated condition list, or "Happy and Healthy".
func (p *PetState) Status() string {
	return p.DeriveStatus().String()
}

func (p *PetState) Snapshot() Snapshot {
	status := p.DeriveStatus()
	return Snapshot{
		ID:        p.id,
		Name:      p.name,
		Hunger:    p.attrs[AttrHunger],
		Energy:    p.attrs[AttrEnergy],
		Happiness: p.attrs[AttrHappiness],
		Dirtiness: p.attrs[AttrDirtiness],
		Status:    status.String(),
		Primary:   status.Primary,
	}
}

func clamp(v float64) float64 {
	return max(MinAttribute, min(MaxAttribute, v))
}
