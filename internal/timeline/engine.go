// Package timeline drives a virtual playback clock over a cue sequence.
//
// An Engine is owned by a single render loop and is not safe for concurrent
// use. Tick, seek and query operations never fail; out of range input is
// clamped.
package timeline

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/mgpai22/subwatch/internal/subtitle"
)

// ErrInvalidTransition is returned by Play and Pause before anything is
// loaded.
var ErrInvalidTransition = errors.New("invalid playback transition")

type State int

const (
	Stopped State = iota
	Paused
	Running
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Paused:
		return "paused"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// source of wall-clock time
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

type Option func(*Engine)

func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

type Engine struct {
	clock    Clock
	state    State
	elapsed  time.Duration
	offset   time.Duration
	lastTick time.Time
	cues     subtitle.Sequence
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{clock: systemClock{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load replaces the session: the engine pauses at zero with no offset.
func (e *Engine) Load(seq subtitle.Sequence) {
	e.cues = seq
	e.state = Paused
	e.elapsed = 0
	e.offset = 0
	e.lastTick = time.Time{}
}

// Tick advances elapsed time while running. Negative deltas are ignored.
func (e *Engine) Tick(delta time.Duration) {
	if e.state != Running || delta <= 0 {
		return
	}
	e.elapsed = addDuration(e.elapsed, delta)
}

// Advance feeds a wall-clock reading, ticking by the time since the previous
// reading or since Play.
func (e *Engine) Advance(now time.Time) {
	if e.state != Running {
		return
	}
	if !e.lastTick.IsZero() {
		e.Tick(now.Sub(e.lastTick))
	}
	e.lastTick = now
}

func (e *Engine) Play() error {
	switch e.state {
	case Stopped:
		return fmt.Errorf("play: %w: nothing loaded", ErrInvalidTransition)
	case Running:
		return nil
	}
	e.state = Running
	e.lastTick = e.clock.Now()
	return nil
}

func (e *Engine) Pause() error {
	switch e.state {
	case Stopped:
		return fmt.Errorf("pause: %w: nothing loaded", ErrInvalidTransition)
	case Paused:
		return nil
	}
	e.state = Paused
	return nil
}

// Toggle switches between Running and Paused.
func (e *Engine) Toggle() error {
	if e.state == Running {
		return e.Pause()
	}
	return e.Play()
}

// SeekAbsolute sets elapsed time, clamped at zero. Ignored while stopped.
func (e *Engine) SeekAbsolute(t time.Duration) {
	if e.state == Stopped {
		return
	}
	if t < 0 {
		t = 0
	}
	e.elapsed = t
}

func (e *Engine) SeekRelative(d time.Duration) {
	e.SeekAbsolute(addDuration(e.elapsed, d))
}

// SetOffset sets the signed shift applied at lookup time. Elapsed time is
// not touched.
func (e *Engine) SetOffset(offset time.Duration) {
	e.offset = offset
}

func (e *Engine) AdjustOffset(d time.Duration) {
	e.offset = addDuration(e.offset, d)
}

// Reset rewinds to zero and pauses.
func (e *Engine) Reset() {
	if e.state == Stopped {
		return
	}
	e.elapsed = 0
	e.state = Paused
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) Elapsed() time.Duration {
	return e.elapsed
}

func (e *Engine) Offset() time.Duration {
	return e.offset
}

// Position is the effective lookup time, elapsed plus offset, never negative.
func (e *Engine) Position() time.Duration {
	pos := addDuration(e.elapsed, e.offset)
	if pos < 0 {
		return 0
	}
	return pos
}

func (e *Engine) Sequence() subtitle.Sequence {
	return e.cues
}

// ActiveCues returns the cues of seq shown at the current position, in
// sequence order.
func (e *Engine) ActiveCues(seq subtitle.Sequence) []subtitle.Cue {
	return seq.ActiveAt(e.Position())
}

// Current is ActiveCues over the loaded sequence.
func (e *Engine) Current() []subtitle.Cue {
	return e.ActiveCues(e.cues)
}

// addDuration saturates instead of wrapping around.
func addDuration(a, b time.Duration) time.Duration {
	sum := a + b
	switch {
	case b > 0 && sum < a:
		return math.MaxInt64
	case b < 0 && sum > a:
		return math.MinInt64
	}
	return sum
}
