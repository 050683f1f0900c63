package runner

import (
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
)

// Headless is a frontend without output and input. It keeps the last
// rendered frame so it can be printed after the run.
type Headless struct {
	frame   display.Frame
	status  Status
	renders int
}

// NewHeadless returns a headless frontend.
func NewHeadless() *Headless {
	return &Headless{}
}

// Poll never presses keys and never quits.
func (h *Headless) Poll(*keypad.Keypad) bool {
	return true
}

// Render stores the frame.
func (h *Headless) Render(frame display.Frame, status Status) error {
	h.frame = frame
	h.status = status
	h.renders++
	return nil
}

// Frame returns the last rendered frame.
func (h *Headless) Frame() display.Frame {
	return h.frame
}

// Status returns the status of the last rendered frame.
func (h *Headless) Status() Status {
	return h.status
}

// Renders returns the number of rendered frames.
func (h *Headless) Renders() int {
	return h.renders
}
