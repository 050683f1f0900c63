// Package terminal implements a frontend that renders the display into a
// terminal and reads the keypad from the keyboard.
package terminal

import (
	"fmt"

	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// holdFrames is the number of frames a key stays pressed after a key event.
// Terminals report no key release, a held key repeats its event instead.
const holdFrames = 6

// cellsPerPixel is the number of terminal columns used for a pixel, terminal
// cells are about twice as high as wide.
const cellsPerPixel = 2

const (
	pixelColor = termbox.ColorWhite
	emptyColor = termbox.ColorDefault
)

// screen is the cell buffer the frontend draws into.
type screen interface {
	Clear(fg, bg termbox.Attribute) error
	SetCell(x, y int, ch rune, fg, bg termbox.Attribute)
	Flush() error
}

// Terminal is a termbox based frontend.
type Terminal struct {
	logger *log.Logger
	screen screen

	events chan termbox.Event
	done   chan struct{}
	closed chan struct{}

	held [keypad.Keys]int // remaining frames per key
	quit bool
}

// New initializes the terminal and starts reading keyboard events.
// Close must be called to restore the terminal.
func New(logger *log.Logger) (*Terminal, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)

	t := newTerminal(logger, termboxScreen{})
	go t.readEvents()
	return t, nil
}

func newTerminal(logger *log.Logger, scr screen) *Terminal {
	return &Terminal{
		logger: logger,
		screen: scr,
		events: make(chan termbox.Event, 64),
		done:   make(chan struct{}),
		closed: make(chan struct{}),
	}
}

// Close stops the event reader and restores the terminal.
func (t *Terminal) Close() {
	close(t.done)
	termbox.Interrupt()
	<-t.closed
	termbox.Close()
}

func (t *Terminal) readEvents() {
	defer close(t.closed)
	for {
		ev := termbox.PollEvent()
		if ev.Type == termbox.EventInterrupt {
			return
		}
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

// Poll applies all pending keyboard events to the keypad. It returns false
// after Esc or Ctrl+C was pressed or the terminal failed.
func (t *Terminal) Poll(keys *keypad.Keypad) bool {
	for pending := true; pending; {
		select {
		case ev := <-t.events:
			t.handleEvent(ev)
		default:
			pending = false
		}
	}

	for key := range t.held {
		if t.held[key] > 0 {
			keys.Press(byte(key))
			t.held[key]--
		} else {
			keys.Release(byte(key))
		}
	}
	return !t.quit
}

func (t *Terminal) handleEvent(ev termbox.Event) {
	switch ev.Type {
	case termbox.EventKey:
		switch ev.Key {
		case termbox.KeyEsc, termbox.KeyCtrlC:
			t.quit = true
			return
		}
		if key, ok := keypad.KeyForRune(ev.Ch); ok {
			t.held[key] = holdFrames
		}

	case termbox.EventError:
		t.logger.Error("Reading terminal event failed", log.Err(ev.Err))
		t.quit = true
	}
}

// Render draws the frame and a status line below it.
func (t *Terminal) Render(frame display.Frame, status runner.Status) error {
	if err := t.screen.Clear(emptyColor, emptyColor); err != nil {
		return fmt.Errorf("clearing terminal: %w", err)
	}

	for y := range display.Height {
		for x := range display.Width {
			if !frame.Pixel(x, y) {
				continue
			}
			for i := range cellsPerPixel {
				t.screen.SetCell(x*cellsPerPixel+i, y, ' ', pixelColor, pixelColor)
			}
		}
	}

	t.drawText(0, display.Height, statusLine(status))

	if err := t.screen.Flush(); err != nil {
		return fmt.Errorf("flushing terminal: %w", err)
	}
	return nil
}

func (t *Terminal) drawText(x, y int, text string) {
	for _, r := range text {
		t.screen.SetCell(x, y, r, emptyColor, emptyColor)
		x++
	}
}

func statusLine(status runner.Status) string {
	line := fmt.Sprintf("frame %d  cycles %d", status.Frame, status.Cycles)
	if status.Waiting {
		line += "  waiting for key"
	}
	if status.Sound {
		line += "  BEEP"
	}
	return line + "  (esc to quit)"
}

// termboxScreen draws into the termbox back buffer.
type termboxScreen struct{}

func (termboxScreen) Clear(fg, bg termbox.Attribute) error {
	return termbox.Clear(fg, bg)
}

func (termboxScreen) SetCell(x, y int, ch rune, fg, bg termbox.Attribute) {
	termbox.SetCell(x, y, ch, fg, bg)
}

func (termboxScreen) Flush() error {
	return termbox.Flush()
}
