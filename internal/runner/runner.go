// Package runner drives the interpreter at a fixed frame rate and connects it
// to a frontend that presents the display and reads the keypad.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrogolib/log"
)

// FrameDuration is the duration of a frame at the 60 Hz timer rate.
const FrameDuration = time.Second / 60

// Status describes the interpreter state at the end of a frame.
type Status struct {
	Frame   int
	Cycles  uint64
	Waiting bool // waiting for a key press
	Sound   bool // sound timer is running
}

// Frontend presents frames and reports key states.
type Frontend interface {
	// Poll updates the keypad and returns false if the user asked to quit.
	Poll(keys *keypad.Keypad) bool
	// Render presents a changed frame.
	Render(frame display.Frame, status Status) error
}

// Options configures a runner.
type Options struct {
	CyclesPerFrame int           // instructions executed per frame
	Frames         int           // frames to run, 0 runs until the frontend quits
	FrameDuration  time.Duration // wall clock pacing of frames, 0 runs unpaced
}

// Runner executes frames until the frame limit is reached, the frontend
// quits, the context is cancelled or the interpreter fails.
type Runner struct {
	logger   *log.Logger
	cpu      *cpu.CPU
	keys     *keypad.Keypad
	frontend Frontend
	opts     Options

	frame int
	sound bool
}

// New returns a runner for the interpreter. The keypad must be the one the
// interpreter was created with.
func New(logger *log.Logger, c *cpu.CPU, keys *keypad.Keypad, frontend Frontend, opts Options) *Runner {
	if opts.CyclesPerFrame < 1 {
		opts.CyclesPerFrame = 1
	}
	return &Runner{
		logger:   logger,
		cpu:      c,
		keys:     keys,
		frontend: frontend,
		opts:     opts,
	}
}

// Run executes frames until a stop condition is met. Returning because of
// the frame limit or a frontend quit is not an error.
func (r *Runner) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if r.opts.FrameDuration > 0 {
		ticker := time.NewTicker(r.opts.FrameDuration)
		defer ticker.Stop()
		tick = ticker.C
	}

	for r.opts.Frames == 0 || r.frame < r.opts.Frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.frontend.Poll(r.keys) {
			r.logger.Debug("Frontend requested quit", log.Int("frame", r.frame))
			return nil
		}

		if err := r.runFrame(); err != nil {
			return fmt.Errorf("running frame %d: %w", r.frame, err)
		}
		r.frame++

		if tick == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
		}
	}

	r.logger.Debug("Frame limit reached",
		log.Int("frames", r.frame),
		log.Uint64("cycles", r.cpu.Cycles()))
	return nil
}

// Frames returns the number of completed frames.
func (r *Runner) Frames() int {
	return r.frame
}

// runFrame executes the instructions of one frame, ticks the timers once and
// renders the display if it changed.
func (r *Runner) runFrame() error {
	for range r.opts.CyclesPerFrame {
		if err := r.cpu.Step(); err != nil {
			return err
		}
		if r.cpu.Waiting() {
			break
		}
	}
	r.cpu.TickTimers()

	sound := r.cpu.SoundActive()
	changed := sound != r.sound
	r.sound = sound

	if !r.cpu.Display().Dirty() && !changed && r.frame > 0 {
		return nil
	}

	status := Status{
		Frame:   r.frame,
		Cycles:  r.cpu.Cycles(),
		Waiting: r.cpu.Waiting(),
		Sound:   sound,
	}
	if err := r.frontend.Render(r.cpu.Display().Snapshot(), status); err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}
	return nil
}
