package pet

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeDone    Outcome = "done"
	OutcomeRefused Outcome = "refused"
)

// Event describes one action taken on (or refused by) a pet.
type Event struct {
	PetID   uuid.UUID
	PetName string
	Action  Action
	Outcome Outcome
	Message string
}

// Notifier receives action events. Delivery is best-effort: a notifier
// must not block for long and has no way to fail the action.
type Notifier interface {
	Notify(Event)
}

type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

// Discard drops every event.
var Discard Notifier = NotifierFunc(func(Event) {})

// LogNotifier logs each event at info level.
func LogNotifier(logger *slog.Logger) Notifier {
	if logger == nil {
		return Discard
	}
	return NotifierFunc(func(e Event) {
		logger.LogAttrs(context.Background(), slog.LevelInfo, e.Message,
			slog.String("pet", e.PetName),
			slog.String("pet_id", e.PetID.String()),
			slog.String("action", string(e.Action)),
			slog.String("outcome", string(e.Outcome)),
		)
	})
}

// WriterNotifier prints each message on its own line. Write errors are
// ignored.
func WriterNotifier(w io.Writer) Notifier {
	if w == nil {
		return Discard
	}
	return NotifierFunc(func(e Event) {
		_, _ = fmt.Fprintln(w, e.Message)
	})
}

// Multi fans an event out to every notifier in order.
func Multi(ns ...Notifier) Notifier {
	return NotifierFunc(func(e Event) {
		for _, n := range ns {
			if n != nil {
				n.Notify(e)
			}
		}
	})
}

func (p *PetState) notify(a Action, o Outcome, msg string) {
	p.notifier.Notify(Event{
		PetID:   p.id,
		PetName: p.name,
		Action:  a,
		Outcome: o,
		Message: msg,
	})
}
