package tracker

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingAlerter struct {
	calls int
	err   error
}

func (a *countingAlerter) Alert(context.Context) error {
	a.calls++
	return a.err
}

// runDown ticks tok until the countdown leaves the running state.
func runDown(t *testing.T, tr *Tracker, tok Token) TickResult {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < 10_000; i++ {
		r := tr.Tick(ctx, tok)
		if r != TickRunning {
			return r
		}
	}
	t.Fatal("countdown never finished")
	return TickStale
}

func TestNewDefaults(t *testing.T) {
	tr := New()
	s := tr.Snapshot()
	require.Equal(t, ChestPress, s.Active)
	require.Equal(t, 60, s.Duration)
	require.Equal(t, 60, s.Remaining)
	require.Equal(t, Preset60, s.Preset)
	require.False(t, s.Running)
	for _, e := range Exercises() {
		require.Equal(t, 0, s.Counts[e])
	}
}

func TestNewOptions(t *testing.T) {
	tr := New(WithDuration(90), WithSession(Squat))
	require.Equal(t, Squat, tr.Active())
	require.Equal(t, 90, tr.Remaining())
	require.Equal(t, PresetCustom, tr.Snapshot().Preset)

	tr = New(WithDuration(-3), WithSession(Exercise("burpee")))
	require.Equal(t, ChestPress, tr.Active())
	require.Equal(t, DefaultDuration, tr.Duration())
}

func TestDecrementNeverNegative(t *testing.T) {
	tr := New()
	for i := 0; i < 5; i++ {
		tr.Decrement()
		require.GreaterOrEqual(t, tr.Count(ChestPress), 0)
	}
	require.Equal(t, 0, tr.Count(ChestPress))

	tr.Increment()
	tr.Increment()
	tr.Decrement()
	require.Equal(t, 1, tr.Count(ChestPress))
	tr.Decrement()
	tr.Decrement()
	require.Equal(t, 0, tr.Count(ChestPress))
}

func TestDecrementLeavesTimerAlone(t *testing.T) {
	tr := New()
	tok := tr.Increment()
	require.Equal(t, TickRunning, tr.Tick(context.Background(), tok))
	tr.Decrement()
	require.True(t, tr.Running())
	require.Equal(t, 59, tr.Remaining())
	require.Equal(t, tok, tr.Token())
}

func TestIncrementOnlyTouchesActiveSession(t *testing.T) {
	tr := New()
	tr.SelectSession(PullUp)
	tr.Increment()
	require.Equal(t, 1, tr.Count(PullUp))
	require.Equal(t, 0, tr.Count(ChestPress))
	require.Equal(t, 0, tr.Count(Squat))
}

func TestIncrementRestartsCountdown(t *testing.T) {
	tr := New()
	ctx := context.Background()

	var last Token
	for i := 0; i < 3; i++ {
		tok := tr.Increment()
		require.NotEqual(t, last, tok)
		require.True(t, tr.Running())
		require.Equal(t, 60, tr.Remaining())
		require.Equal(t, TickRunning, tr.Tick(ctx, tok))
		require.Equal(t, TickRunning, tr.Tick(ctx, tok))
		last = tok
	}
	require.Equal(t, 3, tr.Count(ChestPress))
	require.Equal(t, 58, tr.Remaining())
}

func TestSelectSameSessionStopsTimer(t *testing.T) {
	tr := New()
	tr.Increment()
	tr.Increment()
	before := tr.Snapshot().Counts

	tr.SelectSession(ChestPress)
	tr.SelectSession(ChestPress)

	s := tr.Snapshot()
	require.Equal(t, before, s.Counts)
	require.False(t, s.Running)
	require.Equal(t, s.Duration, s.Remaining)
}

func TestSelectUnknownSessionIsNoop(t *testing.T) {
	tr := New()
	tok := tr.Increment()
	tr.SelectSession(Exercise("deadlift"))
	require.Equal(t, ChestPress, tr.Active())
	require.True(t, tr.Running())
	require.Equal(t, tok, tr.Token())
}

func TestResetFromAnyState(t *testing.T) {
	tr := New()
	tr.Increment()
	tr.SelectSession(Squat)
	tok := tr.Increment()
	tr.Tick(context.Background(), tok)

	tr.Reset()
	s := tr.Snapshot()
	for _, e := range Exercises() {
		require.Equal(t, 0, s.Counts[e], e)
	}
	require.False(t, s.Running)
	require.Equal(t, 60, s.Remaining)
	require.Equal(t, Squat, s.Active)
}

func TestCanReset(t *testing.T) {
	tr := New()
	require.False(t, tr.CanReset())

	tok := tr.Increment()
	require.True(t, tr.CanReset())

	tr.Decrement()
	require.True(t, tr.CanReset(), "running countdown is resettable")

	runDown(t, tr, tok)
	require.False(t, tr.CanReset())
}

func TestSetTimerDurationRejectsInvalid(t *testing.T) {
	tr := New()
	tok := tr.Increment()
	tr.Tick(context.Background(), tok)
	before := tr.Snapshot()

	require.False(t, tr.SetTimerDuration(0))
	require.False(t, tr.SetTimerDuration(-5))
	require.False(t, tr.SetTimerDurationInput("abc"))
	require.False(t, tr.SetTimerDurationInput(""))
	require.False(t, tr.SetTimerDurationInput("12abc"))
	require.False(t, tr.SetTimerDurationInput("-1"))

	require.Equal(t, before, tr.Snapshot())
	require.Equal(t, tok, tr.Token())
}

func TestSetTimerDurationWhileIdle(t *testing.T) {
	tr := New()
	require.True(t, tr.SetTimerDuration(45))
	require.Equal(t, 45, tr.Duration())
	require.Equal(t, 45, tr.Remaining())

	require.True(t, tr.SetTimerDurationInput(" 90 "))
	require.Equal(t, 90, tr.Remaining())
}

func TestSetTimerDurationWhileRunning(t *testing.T) {
	tr := New()
	ctx := context.Background()
	tok := tr.Increment()
	tr.Tick(ctx, tok)

	require.True(t, tr.SetTimerDuration(45))
	require.Equal(t, 45, tr.Duration())
	require.Equal(t, 59, tr.Remaining())
	require.Equal(t, TickRunning, tr.Tick(ctx, tok))
	require.Equal(t, 58, tr.Remaining())

	tr.Increment()
	require.Equal(t, 45, tr.Remaining())
}

func TestSelectPreset(t *testing.T) {
	tr := New()
	tr.SelectPreset(Preset45)
	require.Equal(t, 45, tr.Remaining())
	require.Equal(t, Preset45, tr.Snapshot().Preset)

	tr.SelectPreset(PresetCustom)
	require.Equal(t, 45, tr.Duration())
	require.Equal(t, PresetCustom, tr.Snapshot().Preset)
}

func TestExpiry(t *testing.T) {
	a := &countingAlerter{}
	tr := New(WithAlerter(a))
	ctx := context.Background()
	tok := tr.Increment()

	for i := 0; i < 59; i++ {
		require.Equal(t, TickRunning, tr.Tick(ctx, tok))
	}
	require.Equal(t, 1, tr.Remaining())
	require.Equal(t, 0, a.calls)

	require.Equal(t, TickExpired, tr.Tick(ctx, tok))
	require.Equal(t, 1, a.calls)
	require.False(t, tr.Running())
	require.Equal(t, 60, tr.Remaining())

	// the expired countdown is dead
	require.Equal(t, TickStale, tr.Tick(ctx, tok))
	require.Equal(t, 1, a.calls)
	require.Equal(t, 60, tr.Remaining())
}

func TestExpiryUsesDurationChangedWhileRunning(t *testing.T) {
	tr := New()
	tok := tr.Increment()
	tr.SetTimerDuration(30)
	require.Equal(t, TickExpired, runDown(t, tr, tok))
	require.Equal(t, 30, tr.Remaining())
}

func TestExpiryWithFailingAlerter(t *testing.T) {
	a := &countingAlerter{err: errors.New("no audio device")}
	tr := New(WithAlerter(a), WithDuration(3))
	tok := tr.Increment()

	require.Equal(t, TickExpired, runDown(t, tr, tok))
	require.Equal(t, 1, a.calls)
	require.False(t, tr.Running())
	require.Equal(t, 3, tr.Remaining())
}

func TestStaleTicksAreDropped(t *testing.T) {
	ctx := context.Background()

	t.Run("after select", func(t *testing.T) {
		tr := New()
		tok := tr.Increment()
		tr.SelectSession(PullUp)
		require.Equal(t, TickStale, tr.Tick(ctx, tok))
		require.Equal(t, 60, tr.Remaining())
	})

	t.Run("after reset", func(t *testing.T) {
		tr := New()
		tok := tr.Increment()
		tr.Reset()
		require.Equal(t, TickStale, tr.Tick(ctx, tok))
		require.Equal(t, 60, tr.Remaining())
	})

	t.Run("after restart", func(t *testing.T) {
		tr := New()
		old := tr.Increment()
		tr.Tick(ctx, old)
		cur := tr.Increment()
		require.Equal(t, TickStale, tr.Tick(ctx, old))
		require.Equal(t, 60, tr.Remaining())
		require.Equal(t, TickRunning, tr.Tick(ctx, cur))
		require.Equal(t, 59, tr.Remaining())
	})

	t.Run("idle", func(t *testing.T) {
		tr := New()
		require.Equal(t, TickStale, tr.Tick(ctx, tr.Token()))
		require.Equal(t, 60, tr.Remaining())
	})
}

func TestSnapshotIsACopy(t *testing.T) {
	tr := New()
	s := tr.Snapshot()
	s.Counts[ChestPress] = 42
	assert.Equal(t, 0, tr.Count(ChestPress))
}
