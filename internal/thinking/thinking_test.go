package thinking

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestTickerDrawsFramesOnEachTick(t *testing.T) {
	ctx := context.Background()
	clock := quartz.NewMock(t)
	var out syncBuffer

	tk := NewTicker(&out, clock, spinner.Line)
	tk.Start("Bot is thinking")

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "| Bot is thinking")
	}, time.Second, time.Millisecond)

	clock.Advance(spinner.Line.FPS).MustWait(ctx)
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "/ Bot is thinking")
	}, time.Second, time.Millisecond)

	tk.Stop()
	stopped := out.String()
	assert.True(t, strings.HasSuffix(stopped, "\r"), "line is cleared on stop")

	clock.Advance(spinner.Line.FPS).MustWait(ctx)
	assert.Equal(t, stopped, out.String(), "nothing drawn after Stop returns")
}

func TestTickerStartStopAreIdempotent(t *testing.T) {
	var out syncBuffer
	tk := NewTicker(&out, quartz.NewMock(t), spinner.Dot)

	tk.Stop()
	tk.Start("a")
	tk.Start("b")
	tk.Stop()
	tk.Stop()

	assert.NotContains(t, out.String(), " b")
}

func TestTickerWithoutFramesUsesLine(t *testing.T) {
	var out syncBuffer
	tk := NewTicker(&out, quartz.NewMock(t), spinner.Spinner{})

	tk.Start("x")
	tk.Stop()

	assert.Contains(t, out.String(), spinner.Line.Frames[0]+" x")
}

func TestRunReturnsComputationResult(t *testing.T) {
	var out syncBuffer
	tk := NewTicker(&out, quartz.NewMock(t), spinner.Line)

	v, err := Run(tk, "computing", func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	boom := errors.New("boom")
	_, err = Run(tk, "computing", func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)

	v, err = Run[int](nil, "no indicator", func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = Run(Nop{}, "nop", func() (int, error) { return 9, nil })
	require.NoError(t, err)
	assert.Equal(t, 9, v)
}

func TestProgramStopsWhenComputationFinishes(t *testing.T) {
	var out syncBuffer
	p := NewProgram(&out, spinner.Dot)

	done := make(chan struct{})
	go func() {
		defer close(done)
		v, err := Run(p, "Bot is thinking", func() (bool, error) {
			time.Sleep(20 * time.Millisecond)
			return true, nil
		})
		assert.NoError(t, err)
		assert.True(t, v)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("program did not stop")
	}

	// A stopped program can be started again
	p.Start("again")
	p.Stop()
}
