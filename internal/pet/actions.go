package pet

import (
	"errors"
	"fmt"
)

type Action string

const (
	ActionFeed  Action = "feed"
	ActionPlay  Action = "play"
	ActionClean Action = "clean"
	ActionSleep Action = "sleep"
)

var ErrUnknownAction = errors.New("unknown action")

// Feed lowers hunger at the cost of a little dirt.
func (p *PetState) Feed() {
	p.apply(p.rules.Feed)
	p.notify(ActionFeed, OutcomeDone, fmt.Sprintf("%s has eaten.", p.name))
}

// Play raises happiness if the pet has the energy for it. It reports
// whether the pet played; a refused play changes nothing.
func (p *PetState) Play() bool {
	if !(p.Energy() > p.rules.PlayMinEnergy) {
		p.notify(ActionPlay, OutcomeRefused, fmt.Sprintf("%s is too tired to play.", p.name))
		return false
	}
	p.apply(p.rules.Play)
	p.notify(ActionPlay, OutcomeDone, fmt.Sprintf("%s has played.", p.name))
	return true
}

// Clean resets dirtiness to zero. Pets don't enjoy baths.
func (p *PetState) Clean() {
	p.set(AttrDirtiness, 0)
	p.add(AttrHappiness, p.rules.CleanHappiness)
	p.notify(ActionClean, OutcomeDone, fmt.Sprintf("%s has been bathed.", p.name))
}

func (p *PetState) Sleep() {
	p.apply(p.rules.Sleep)
	p.notify(ActionSleep, OutcomeDone, fmt.Sprintf("%s has slept.", p.name))
}

// Do dispatches a by name. The bool is false only for a refused play.
func (p *PetState) Do(a Action) (bool, error) {
	switch a {
	case ActionFeed:
		p.Feed()
	case ActionPlay:
		return p.Play(), nil
	case ActionClean:
		p.Clean()
	case ActionSleep:
		p.Sleep()
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownAction, a)
	}
	return true, nil
}
