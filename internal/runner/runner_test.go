package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// scriptedFrontend calls press before every poll and quits after quitAfter polls.
type scriptedFrontend struct {
	Headless

	polls     int
	quitAfter int
	press     func(poll int, keys *keypad.Keypad)
}

func (f *scriptedFrontend) Poll(keys *keypad.Keypad) bool {
	f.polls++
	if f.quitAfter > 0 && f.polls > f.quitAfter {
		return false
	}
	if f.press != nil {
		f.press(f.polls, keys)
	}
	return true
}

type failingFrontend struct {
	Headless
}

func (f *failingFrontend) Render(display.Frame, Status) error {
	return errors.New("terminal gone")
}

func newTestRunner(t *testing.T, frontend Frontend, opts Options, words ...uint16) (*Runner, *cpu.CPU) {
	t.Helper()

	keys := keypad.New()
	c := cpu.New(log.NewTestLogger(t), cpu.Options{
		Keypad: keys,
		Quirks: cpu.DefaultQuirks(),
		Seed:   1,
	})

	program := make([]byte, 0, len(words)*2)
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}
	assert.NoError(t, c.LoadProgram(program))

	return New(log.NewTestLogger(t), c, keys, frontend, opts), c
}

func TestRunner_FrameLimit(t *testing.T) {
	frontend := NewHeadless()
	r, c := newTestRunner(t, frontend, Options{CyclesPerFrame: 10, Frames: 3},
		0x6000, // V0 = 0
		0xF029, // I = glyph 0
		0xD015, // draw at (0,0)
		0x1206, // loop
	)

	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 3, r.Frames())
	assert.Equal(t, uint64(30), c.Cycles())

	// only the first frame changed the display
	assert.Equal(t, 1, frontend.Renders())
	frame := frontend.Frame()
	assert.True(t, frame.Pixel(0, 0))
	assert.True(t, frame.Pixel(3, 0))
	assert.False(t, frame.Pixel(4, 0))
}

func TestRunner_FrontendQuit(t *testing.T) {
	frontend := &scriptedFrontend{quitAfter: 2}
	r, _ := newTestRunner(t, frontend, Options{CyclesPerFrame: 5}, 0x1200)

	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 2, r.Frames())
}

func TestRunner_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, _ := newTestRunner(t, NewHeadless(), Options{CyclesPerFrame: 5}, 0x1200)
	err := r.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, r.Frames())
}

func TestRunner_PacedContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	frontend := &scriptedFrontend{
		press: func(poll int, _ *keypad.Keypad) {
			if poll == 2 {
				cancel()
			}
		},
	}

	r, _ := newTestRunner(t, frontend, Options{CyclesPerFrame: 5, FrameDuration: time.Millisecond}, 0x1200)
	err := r.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 2, r.Frames())
}

func TestRunner_StepError(t *testing.T) {
	r, _ := newTestRunner(t, NewHeadless(), Options{CyclesPerFrame: 5}, 0x00EE)

	err := r.Run(context.Background())
	assert.True(t, errors.Is(err, cpu.ErrStackUnderflow))
	assert.ErrorContains(t, err, "running frame 0")

	var cycleErr *cpu.CycleError
	assert.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, uint16(0x200), cycleErr.PC)
}

func TestRunner_RenderError(t *testing.T) {
	r, _ := newTestRunner(t, &failingFrontend{}, Options{CyclesPerFrame: 1}, 0x1200)
	assert.ErrorContains(t, r.Run(context.Background()), "terminal gone")
}

func TestRunner_WaitForKey(t *testing.T) {
	frontend := &scriptedFrontend{
		press: func(poll int, keys *keypad.Keypad) {
			if poll == 3 {
				keys.Press(7)
			}
		},
	}
	r, c := newTestRunner(t, frontend, Options{CyclesPerFrame: 10, Frames: 2},
		0xF00A, // wait for key into V0
		0x1202, // loop
	)

	assert.NoError(t, r.Run(context.Background()))
	assert.True(t, c.Waiting())
	// a waiting frame ends after the instruction that waits
	assert.Equal(t, uint64(0), c.Cycles())

	r.opts.Frames = 3
	assert.NoError(t, r.Run(context.Background()))
	assert.False(t, c.Waiting())
	assert.Equal(t, byte(7), c.V[0])
	assert.Equal(t, uint64(10), c.Cycles())
}

func TestRunner_TimersTickOncePerFrame(t *testing.T) {
	r, c := newTestRunner(t, NewHeadless(), Options{CyclesPerFrame: 10, Frames: 10},
		0x603C, // V0 = 60
		0xF015, // DT = V0
		0x1204, // loop
	)

	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, byte(50), c.DelayTimer)
}

func TestRunner_SoundChangeRenders(t *testing.T) {
	frontend := NewHeadless()
	r, _ := newTestRunner(t, frontend, Options{CyclesPerFrame: 10, Frames: 3},
		0x6002, // V0 = 2
		0xF018, // ST = V0
		0x1204, // loop
	)

	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 2, frontend.Renders())
	assert.False(t, frontend.Status().Sound)
	assert.Equal(t, 1, frontend.Status().Frame)
}
