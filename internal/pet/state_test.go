package pet

import (
	"math"
	"math/rand"
	"testing"
)

const epsilon = 1e-9

func assertAttrs(t *testing.T, p *PetState, hunger, energy, happiness, dirtiness float64) {
	t.Helper()
	got := [numAttributes]float64{p.Hunger(), p.Energy(), p.Happiness(), p.Dirtiness()}
	want := [numAttributes]float64{hunger, energy, happiness, dirtiness}
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s = %v, want %v", Attribute(i), got[i], want[i])
		}
	}
}

func assertInRange(t *testing.T, p *PetState, step string) {
	t.Helper()
	for a := Attribute(0); a < numAttributes; a++ {
		v := p.Get(a)
		if v < MinAttribute || v > MaxAttribute || math.IsNaN(v) {
			t.Fatalf("after %s: %s = %v out of range", step, a, v)
		}
	}
}

type recorder struct {
	events []Event
}

func (r *recorder) Notify(e Event) { r.events = append(r.events, e) }

func TestNewPetDefaults(t *testing.T) {
	p := New("Bolita")

	if p.Name() != "Bolita" {
		t.Errorf("Expected name 'Bolita', got '%s'", p.Name())
	}
	assertAttrs(t, p, 50, 100, 100, 0)
	if got := p.Status(); got != "Happy and Healthy" {
		t.Errorf("Status() = %q, want %q", got, "Happy and Healthy")
	}
	if p.ID() == New("Bolita").ID() {
		t.Error("Expected each pet to get its own id")
	}
}

func TestAdvanceScenario(t *testing.T) {
	p := New("Bolita")
	p.Advance(10)

	assertAttrs(t, p, 70, 95, 90, 2)
	// hunger == 70 is not above the threshold
	if got := p.Status(); got != "Happy and Healthy" {
		t.Errorf("Status() = %q, want %q", got, "Happy and Healthy")
	}

	p.Feed()
	assertAttrs(t, p, 40, 100, 90, 7)
}

func TestAdvanceNoOp(t *testing.T) {
	for _, elapsed := range []float64{0, -5, math.NaN(), math.Inf(-1)} {
		p := New("Bolita")
		p.Advance(elapsed)
		assertAttrs(t, p, 50, 100, 100, 0)
	}
}

func TestAdvanceDistressPenalty(t *testing.T) {
	p := New("Bolita")
	p.set(AttrHunger, 90)

	before := p.Happiness()
	p.Advance(1)

	if diff := before - p.Happiness(); math.Abs(diff-3.0) > epsilon {
		t.Errorf("Expected happiness to drop by 3.0, dropped by %v", diff)
	}
}

func TestAdvanceDirtinessPenalty(t *testing.T) {
	p := New("Bolita")
	p.set(AttrDirtiness, 85)
	p.Advance(1)
	assertAttrs(t, p, 52, 99.5, 97, 85.2)
}

func TestAdvancePenaltyReadsUpdatedValues(t *testing.T) {
	// Hunger starts at 79.5 and crosses 80 during the base step, so the
	// penalty applies in the same call.
	p := New("Bolita")
	p.set(AttrHunger, 79.5)
	p.Advance(0.5)
	assertAttrs(t, p, 80.5, 99.75, 98.5, 0.1)

	// Energy drops below 20 during the base step.
	p = New("Bolita")
	p.set(AttrEnergy, 20.2)
	p.Advance(1)
	assertAttrs(t, p, 52, 19.7, 98, 0.2)
}

func TestAdvanceBothPenalties(t *testing.T) {
	p := New("Bolita")
	p.set(AttrHunger, 95)
	p.set(AttrEnergy, 10)
	p.Advance(2)
	// base -2, distress -4, exhaustion -2
	assertAttrs(t, p, 99, 9, 92, 0.4)
}

func TestAdvanceSaturates(t *testing.T) {
	p := New("Bolita")
	p.Advance(1000)
	assertAttrs(t, p, 100, 0, 0, 100)
	assertInRange(t, p, "long advance")

	p.Advance(math.Inf(1))
	assertInRange(t, p, "infinite advance")
}

func TestSetClamped(t *testing.T) {
	p := New("Bolita")

	p.set(AttrHunger, 150)
	if p.Hunger() != 100 {
		t.Errorf("Expected hunger clamped to 100, got %v", p.Hunger())
	}
	p.set(AttrHunger, -50)
	if p.Hunger() != 0 {
		t.Errorf("Expected hunger clamped to 0, got %v", p.Hunger())
	}
	p.set(AttrHunger, 42)
	p.set(AttrHunger, math.NaN())
	if p.Hunger() != 42 {
		t.Errorf("Expected NaN to be ignored, got %v", p.Hunger())
	}
}

func TestFeed(t *testing.T) {
	p := New("Bolita")
	p.Feed()
	assertAttrs(t, p, 20, 100, 100, 5)

	p.Feed()
	assertAttrs(t, p, 0, 100, 100, 10)
}

func TestPlay(t *testing.T) {
	rec := &recorder{}
	p := New("Bolita")
	p.SetNotifier(rec)
	p.set(AttrHappiness, 50)

	if !p.Play() {
		t.Fatal("Expected a rested pet to play")
	}
	assertAttrs(t, p, 60, 85, 70, 5)

	if len(rec.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(rec.events))
	}
	e := rec.events[0]
	if e.Action != ActionPlay || e.Outcome != OutcomeDone || e.Message != "Bolita has played." {
		t.Errorf("Unexpected event: %+v", e)
	}
	if e.PetID != p.ID() || e.PetName != "Bolita" {
		t.Errorf("Event does not identify the pet: %+v", e)
	}
}

func TestPlayTooTired(t *testing.T) {
	for _, energy := range []float64{5, 10} {
		rec := &recorder{}
		p := New("Bolita")
		p.SetNotifier(rec)
		p.set(AttrEnergy, energy)

		if p.Play() {
			t.Errorf("energy %v: expected play to be refused", energy)
		}
		assertAttrs(t, p, 50, energy, 100, 0)

		if len(rec.events) != 1 {
			t.Fatalf("energy %v: expected 1 event, got %d", energy, len(rec.events))
		}
		e := rec.events[0]
		if e.Outcome != OutcomeRefused || e.Message != "Bolita is too tired to play." {
			t.Errorf("energy %v: unexpected event %+v", energy, e)
		}
	}
}

func TestPlayUntilTired(t *testing.T) {
	p := New("Bolita")
	plays := 0
	for p.Play() {
		plays++
		if plays > 100 {
			t.Fatal("pet never got tired")
		}
	}
	// 100 -> 85 -> ... -> 10 after six plays; 10 is not above the floor.
	if plays != 6 {
		t.Errorf("Expected 6 plays before refusing, got %d", plays)
	}
	if p.Energy() != 10 {
		t.Errorf("Expected energy 10, got %v", p.Energy())
	}
}

func TestClean(t *testing.T) {
	p := New("Bolita")
	p.set(AttrDirtiness, 73.4)
	p.Clean()
	assertAttrs(t, p, 50, 100, 95, 0)

	p.set(AttrHappiness, 2)
	p.Clean()
	assertAttrs(t, p, 50, 100, 0, 0)
}

func TestSleep(t *testing.T) {
	p := New("Bolita")
	p.set(AttrEnergy, 30)
	p.Sleep()
	assertAttrs(t, p, 60, 80, 100, 0)

	p.Sleep()
	assertAttrs(t, p, 70, 100, 100, 0)
}

func TestDo(t *testing.T) {
	rec := &recorder{}
	p := New("Bolita")
	p.SetNotifier(rec)

	for _, a := range []Action{ActionFeed, ActionPlay, ActionClean, ActionSleep} {
		ok, err := p.Do(a)
		if err != nil {
			t.Fatalf("Do(%q) returned error: %v", a, err)
		}
		if !ok {
			t.Errorf("Do(%q) reported refusal", a)
		}
	}
	if len(rec.events) != 4 {
		t.Errorf("Expected 4 events, got %d", len(rec.events))
	}

	if _, err := p.Do("dance"); err == nil {
		t.Error("Expected error for unknown action")
	}
}

func TestStatusLabels(t *testing.T) {
	p := New("Bolita")
	p.set(AttrHunger, 71)
	p.set(AttrEnergy, 29)
	p.set(AttrHappiness, 39)
	p.set(AttrDirtiness, 61)
	if got, want := p.Status(), "Hungry, Tired, Sad, Dirty"; got != want {
		t.Errorf("Status() = %q, want %q", got, want)
	}

	p.Clean()
	if got, want := p.Status(), "Hungry, Tired, Sad"; got != want {
		t.Errorf("Status() = %q, want %q", got, want)
	}

	snap := p.Snapshot()
	if snap.Status != p.Status() || snap.Name != "Bolita" || snap.Dirtiness != 0 {
		t.Errorf("Snapshot out of sync: %+v", snap)
	}
}

func TestInvariantRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := New("Bolita")

	for i := 0; i < 5000; i++ {
		switch rng.Intn(5) {
		case 0:
			p.Advance(rng.Float64() * 30)
			assertInRange(t, p, "advance")
		case 1:
			p.Feed()
			assertInRange(t, p, "feed")
		case 2:
			p.Play()
			assertInRange(t, p, "play")
		case 3:
			p.Clean()
			assertInRange(t, p, "clean")
		case 4:
			p.Sleep()
			assertInRange(t, p, "sleep")
		}
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := DefaultConfig("Tofu")
	cfg.Rules.HungerPerSecond = 4

	rec := &recorder{}
	p := NewFromConfig(cfg, rec)
	if p.Name() != "Tofu" {
		t.Errorf("Expected name 'Tofu', got '%s'", p.Name())
	}

	p.Advance(1)
	assertAttrs(t, p, 54, 99.5, 99, 0.2)

	p.Feed()
	if len(rec.events) != 1 || rec.events[0].Message != "Tofu has eaten." {
		t.Errorf("Unexpected events: %+v", rec.events)
	}

	if NewFromConfig(PetConfig{}, nil).Name() != DefaultName {
		t.Error("Expected default name for empty config")
	}
}

func TestNewFromConfigKeepsZeroRates(t *testing.T) {
	cfg := DefaultConfig("Tofu")
	cfg.Rules.DirtinessPerSecond = 0
	cfg.Rules.Feed = Effect{Hunger: -40}

	p := NewFromConfig(cfg, nil)
	p.Advance(10)
	assertAttrs(t, p, 70, 95, 90, 0)

	p.Feed()
	assertAttrs(t, p, 30, 95, 90, 0)
}
