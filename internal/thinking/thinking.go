// Package thinking shows a "bot is thinking" animation while a decision is
// computed. Indicators only ever write to the terminal; the computation is
// unaware of them and is never delayed by them.
package thinking

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/coder/quartz"
)

// Indicator is a cosmetic progress display
type Indicator interface {
	Start(message string)
	Stop()
}

// Run starts ind, runs fn, and stops ind before returning fn's result.
// Stop joins the indicator, so nothing is drawn after Run returns.
func Run[T any](ind Indicator, message string, fn func() (T, error)) (T, error) {
	if ind == nil {
		return fn()
	}
	ind.Start(message)
	defer ind.Stop()
	return fn()
}

// Nop is an Indicator that draws nothing
type Nop struct{}

func (Nop) Start(string) {}
func (Nop) Stop()        {}

// TickerTag tags the ticker a Ticker creates, for clock traps in tests
const TickerTag = "thinking"

// Ticker redraws a one-line spinner on every tick of its clock
type Ticker struct {
	out    io.Writer
	clock  quartz.Clock
	frames []string
	every  time.Duration

	mu     sync.Mutex
	active bool
	stop   chan struct{}
	wg     sync.WaitGroup
}

// NewTicker returns a Ticker drawing to out with the frames of style. A
// style without frames falls back to spinner.Line.
func NewTicker(out io.Writer, clock quartz.Clock, style spinner.Spinner) *Ticker {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if len(style.Frames) == 0 {
		style.Frames = spinner.Line.Frames
	}
	every := style.FPS
	if every <= 0 {
		every = 100 * time.Millisecond
	}
	return &Ticker{
		out:    out,
		clock:  clock,
		frames: style.Frames,
		every:  every,
	}
}

// Start begins spinning with the given message. Starting a running
// Ticker does nothing.
func (t *Ticker) Start(message string) {
	t.mu.Lock()
	if t.active {
		t.mu.Unlock()
		return
	}
	t.active = true
	stop := make(chan struct{})
	t.stop = stop
	t.wg.Add(1)
	t.mu.Unlock()

	ticker := t.clock.NewTicker(t.every, TickerTag)
	go func() {
		defer t.wg.Done()
		defer ticker.Stop()

		frame := 0
		draw := func() {
			fmt.Fprintf(t.out, "\r%s %s", t.frames[frame], message)
			frame = (frame + 1) % len(t.frames)
		}
		draw()

		for {
			select {
			case <-stop:
				// clear the line
				fmt.Fprintf(t.out, "\r%s\r", strings.Repeat(" ", len(message)+4))
				return
			case <-ticker.C:
				draw()
			}
		}
	}()
}

// Stop halts the spinner and waits until the line is cleared
func (t *Ticker) Stop() {
	t.mu.Lock()
	stop := t.stop
	t.active = false
	t.stop = nil
	t.mu.Unlock()

	if stop != nil {
		close(stop)
		t.wg.Wait()
	}
}
