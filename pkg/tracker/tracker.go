package tracker

import (
	"context"

	"github.com/rs/zerolog/log"
)

const (
	DefaultDuration = 60
	TimesUpMessage  = "Time's up! Back to work."
)

// Alerter plays the audible signal when a rest countdown expires.
// Delivery is best-effort: a returned error is logged and otherwise ignored.
type Alerter interface {
	Alert(ctx context.Context) error
}

// Token identifies one countdown. Every cancel or restart invalidates the
// previous token, so ticks scheduled for it become no-ops.
type Token uint64

// TickResult reports what a tick did to the countdown.
type TickResult int

const (
	// TickStale means the tick belonged to a cancelled countdown and was dropped.
	TickStale TickResult = iota
	// TickRunning means one second elapsed and the countdown keeps going.
	TickRunning
	// TickExpired means the countdown reached zero: the alert fired and the
	// timer is idle again with the full duration loaded.
	TickExpired
)

func (r TickResult) String() string {
	switch r {
	case TickStale:
		return "stale"
	case TickRunning:
		return "running"
	case TickExpired:
		return "expired"
	}
	return "unknown"
}

// State is a read-only copy of everything the presentation layer renders.
type State struct {
	Counts    map[Exercise]int
	Active    Exercise
	Duration  int
	Preset    Preset
	Remaining int
	Running   bool
}

// Tracker owns the counters, the active session and the rest countdown.
// It is driven from a single goroutine and is not safe for concurrent use.
type Tracker struct {
	counts    map[Exercise]int
	active    Exercise
	duration  int
	preset    Preset
	remaining int
	running   bool
	token     Token

	alerter Alerter
}

// Option configures a Tracker in New.
type Option func(*Tracker)

// WithAlerter sets what runs when a countdown expires.
func WithAlerter(a Alerter) Option {
	return func(t *Tracker) {
		t.alerter = a
	}
}

// WithDuration sets the initial rest duration. Non-positive values are ignored.
func WithDuration(seconds int) Option {
	return func(t *Tracker) {
		if seconds > 0 {
			t.duration = seconds
		}
	}
}

// WithSession sets the initially selected exercise. Unknown exercises are ignored.
func WithSession(e Exercise) Option {
	return func(t *Tracker) {
		if e.Valid() {
			t.active = e
		}
	}
}

// New returns an idle Tracker with zero counts on ChestPress and the default duration.
func New(options ...Option) *Tracker {
	t := &Tracker{
		counts:   make(map[Exercise]int, len(exerciseOrder)),
		active:   ChestPress,
		duration: DefaultDuration,
	}
	for _, e := range exerciseOrder {
		t.counts[e] = 0
	}
	for _, o := range options {
		o(t)
	}
	t.preset = PresetFor(t.duration)
	t.remaining = t.duration
	return t
}

// SelectSession stops any running countdown, then makes e the active session.
// Reselecting the current session still stops the countdown.
func (t *Tracker) SelectSession(e Exercise) {
	if !e.Valid() {
		log.Debug().Str("exercise", string(e)).Msg("ignoring unknown exercise")
		return
	}
	t.stop()
	t.active = e
}

// Increment logs one set for the active session and restarts the rest
// countdown. The returned token must accompany every tick of the new countdown.
func (t *Tracker) Increment() Token {
	t.counts[t.active]++
	t.token++
	t.remaining = t.duration
	t.running = true
	log.Debug().
		Str("exercise", string(t.active)).
		Int("count", t.counts[t.active]).
		Uint64("token", uint64(t.token)).
		Msg("countdown started")
	return t.token
}

// Decrement removes one set from the active session, never going below zero.
// The countdown is left alone.
func (t *Tracker) Decrement() {
	if t.counts[t.active] > 0 {
		t.counts[t.active]--
	}
}

// Reset zeroes every counter and stops the countdown.
func (t *Tracker) Reset() {
	for e := range t.counts {
		t.counts[e] = 0
	}
	t.stop()
}

// CanReset is false when there is nothing to reset: all counts are zero and
// no countdown is running.
func (t *Tracker) CanReset() bool {
	if t.running {
		return true
	}
	for _, c := range t.counts {
		if c != 0 {
			return true
		}
	}
	return false
}

// SetTimerDuration changes the rest duration. Non-positive values are
// rejected and leave everything untouched. An idle countdown picks up the new
// value immediately; a running one keeps going and uses it from its next restart.
func (t *Tracker) SetTimerDuration(seconds int) bool {
	if seconds <= 0 {
		return false
	}
	t.duration = seconds
	if !t.running {
		t.remaining = seconds
	}
	return true
}

// SetTimerDurationInput is SetTimerDuration for raw user input.
func (t *Tracker) SetTimerDurationInput(s string) bool {
	seconds, err := ParseSeconds(s)
	if err != nil {
		log.Debug().Err(err).Msg("rejected timer duration")
		return false
	}
	return t.SetTimerDuration(seconds)
}

// SelectPreset records the preset selection and applies its duration.
// Choosing Custom keeps the current duration until a value is entered.
func (t *Tracker) SelectPreset(p Preset) {
	t.preset = p
	if s := p.Seconds(); s > 0 {
		t.SetTimerDuration(s)
	}
}

// Tick advances the countdown issued under tok by one second.
func (t *Tracker) Tick(ctx context.Context, tok Token) TickResult {
	if tok != t.token || !t.running || t.remaining <= 0 {
		return TickStale
	}
	t.remaining--
	if t.remaining > 0 {
		return TickRunning
	}
	t.expire(ctx)
	return TickExpired
}

func (t *Tracker) expire(ctx context.Context) {
	t.running = false
	t.token++
	if t.alerter != nil {
		if err := t.alerter.Alert(ctx); err != nil {
			log.Warn().Err(err).Msg("could not play alert")
		}
	}
	log.Info().Str("exercise", string(t.active)).Msg(TimesUpMessage)
	t.remaining = t.duration
}

func (t *Tracker) stop() {
	t.token++
	t.running = false
	t.remaining = t.duration
}

// Token returns the token of the current (or last cancelled) countdown.
func (t *Tracker) Token() Token {
	return t.token
}

func (t *Tracker) Running() bool {
	return t.running
}

func (t *Tracker) Remaining() int {
	return t.remaining
}

func (t *Tracker) Duration() int {
	return t.duration
}

func (t *Tracker) Active() Exercise {
	return t.active
}

func (t *Tracker) Count(e Exercise) int {
	return t.counts[e]
}

func (t *Tracker) Snapshot() State {
	counts := make(map[Exercise]int, len(t.counts))
	for e, c := range t.counts {
		counts[e] = c
	}
	return State{
		Counts:    counts,
		Active:    t.active,
		Duration:  t.duration,
		Preset:    t.preset,
		Remaining: t.remaining,
		Running:   t.running,
	}
}
