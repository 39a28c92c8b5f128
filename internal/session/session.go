package session

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/sethgrid/bolita/internal/command"
	"github.com/sethgrid/bolita/internal/pet"
)

const (
	DefaultQueueSize      = 16
	DefaultRenderInterval = 1.0 // seconds of simulated time

	MaxFPS             = 1000
	MaxSimulateSeconds = 7 * 24 * 3600.0
)

var ErrStopped = errors.New("session stopped")

// Renderer draws a snapshot. It is called from the session goroutine.
type Renderer interface {
	Render(pet.Snapshot)
}

type RendererFunc func(pet.Snapshot)

func (f RendererFunc) Render(s pet.Snapshot) { f(s) }

type Options struct {
	FPS            int
	QueueSize      int
	RenderInterval float64
	Renderer       Renderer
	Logger         *slog.Logger
}

// Session owns one pet and drives it frame by frame. Only the goroutine
// calling Run, Step or Simulate touches the pet; other goroutines hand
// commands over with Send.
type Session struct {
	pet      *pet.PetState
	queue    chan command.Verb
	done     chan struct{}
	quitOnce sync.Once
	renderer Renderer
	logger   *slog.Logger

	fps            int
	renderInterval float64
	sinceRender    float64
}

func New(p *pet.PetState, opts Options) *Session {
	if opts.FPS <= 0 {
		opts.FPS = pet.DefaultFPS
	}
	opts.FPS = min(opts.FPS, MaxFPS)
	if opts.QueueSize < 1 {
		opts.QueueSize = DefaultQueueSize
	}
	if opts.RenderInterval <= 0 {
		opts.RenderInterval = DefaultRenderInterval
	}
	if opts.Renderer == nil {
		opts.Renderer = RendererFunc(func(pet.Snapshot) {})
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		pet:            p,
		queue:          make(chan command.Verb, opts.QueueSize),
		done:           make(chan struct{}),
		renderer:       opts.Renderer,
		logger:         opts.Logger,
		fps:            opts.FPS,
		renderInterval: opts.RenderInterval,
	}
}

// Send hands a command to the session, waiting for room in the queue. It
// gives up when ctx is cancelled or the session has stopped.
func (s *Session) Send(ctx context.Context, v command.Verb) error {
	select {
	case s.queue <- v:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrStopped
	}
}

// Quit stops Run after it has applied every command already queued. It
// does not go through the queue, so it works when the queue is full. Safe
// to call more than once and from any goroutine.
func (s *Session) Quit() {
	s.quitOnce.Do(func() { close(s.done) })
}

// Step drains queued commands, then advances the pet by elapsedSeconds.
// It renders when a command asked for it or the render interval has
// passed, and reports whether a quit command was seen.
func (s *Session) Step(elapsedSeconds float64) (quit bool) {
	redraw := false

drain:
	for {
		select {
		case v := <-s.queue:
			if v == command.VerbQuit {
				quit = true
				continue
			}
			if s.handle(v) {
				redraw = true
			}
		default:
			break drain
		}
	}

	s.pet.Advance(elapsedSeconds)

	if elapsedSeconds > 0 {
		s.sinceRender += elapsedSeconds
	}
	if redraw || s.sinceRender >= s.renderInterval {
		s.sinceRender = 0
		s.renderer.Render(s.pet.Snapshot())
	}
	return quit
}

func (s *Session) handle(v command.Verb) bool {
	if v == command.VerbStatus {
		return true
	}
	action, ok := command.Command{Verb: v}.Action()
	if !ok {
		s.logger.Debug("session: ignoring command", "verb", string(v))
		return false
	}
	if _, err := s.pet.Do(action); err != nil {
		s.logger.Error("session: action failed", "action", string(action), "err", err)
		return false
	}
	return true
}

// Run steps the pet with wall-clock elapsed time at the configured FPS
// until the context is cancelled, Quit is called or a quit command
// arrives.
func (s *Session) Run(ctx context.Context) {
	defer s.Quit()

	interval := time.Second / time.Duration(s.fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.renderer.Render(s.pet.Snapshot())

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			s.Step(time.Since(last).Seconds())
			return
		case now := <-ticker.C:
			elapsed := now.Sub(last).Seconds()
			last = now
			if s.Step(elapsed) {
				return
			}
		}
	}
}

// Scheduled is an action fired once the simulated clock reaches At.
type Scheduled struct {
	At   float64
	Verb command.Verb
}

// Simulate runs seconds of simulated time in fixed frames of 1/FPS,
// firing each scheduled command at the start of the first frame at or
// after its time. Commands scheduled past the end are dropped. It returns
// the final snapshot. NaN, negative and infinite durations run nothing;
// longer ones are cut to MaxSimulateSeconds.
func (s *Session) Simulate(seconds float64, schedule []Scheduled) pet.Snapshot {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	seconds = min(seconds, MaxSimulateSeconds)

	pending := make([]Scheduled, len(schedule))
	copy(pending, schedule)
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].At < pending[j].At })

	frames := int(math.Round(seconds * float64(s.fps)))
	dt := 0.0
	if frames > 0 {
		dt = seconds / float64(frames)
	}

	// Scheduled commands bypass the queue so a burst at one instant is
	// never dropped.
	fire := func(clock float64) (quit bool) {
		for len(pending) > 0 && pending[0].At <= clock {
			v := pending[0].Verb
			pending = pending[1:]
			if v == command.VerbQuit {
				return true
			}
			s.handle(v)
		}
		return false
	}

	for i := 0; i < frames; i++ {
		if fire(float64(i)*dt) || s.Step(dt) {
			return s.pet.Snapshot()
		}
	}
	if fire(seconds) {
		return s.pet.Snapshot()
	}

	if len(pending) > 0 {
		s.logger.Debug("session: dropped commands scheduled after the end", "count", len(pending))
	}
	return s.pet.Snapshot()
}
