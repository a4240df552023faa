// Package alert contains the audible signals played when a rest countdown
// runs out. All implementations are best-effort: callers log failures and
// move on.
package alert

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Alerter matches tracker.Alerter.
type Alerter interface {
	Alert(ctx context.Context) error
}

// Nop never makes a sound.
type Nop struct{}

func (Nop) Alert(context.Context) error { return nil }

// Bell rings the terminal bell.
type Bell struct {
	w io.Writer
}

// NewBell returns a Bell writing to w. If w is a file that is not a terminal,
// the bell is skipped silently when alerting.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Alert(context.Context) error {
	if b == nil || b.w == nil {
		return errors.New("bell has no output")
	}
	if f, ok := b.w.(*os.File); ok && !isTerminal(f) {
		return nil
	}
	_, err := io.WriteString(b.w, "\a")
	return errors.Wrap(err, "ring bell")
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Multi fires all its alerters concurrently.
type Multi []Alerter

// Alert waits for every alerter and returns the first error.
func (m Multi) Alert(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, a := range m {
		if a == nil {
			continue
		}
		a := a
		eg.Go(func() error {
			return a.Alert(ctx)
		})
	}
	return eg.Wait()
}
