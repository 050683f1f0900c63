package terminal

import (
	"errors"
	"strings"
	"testing"

	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type cell struct {
	x, y int
}

type fakeScreen struct {
	cells    map[cell]rune
	flushes  int
	flushErr error
}

func newFakeScreen() *fakeScreen {
	return &fakeScreen{cells: map[cell]rune{}}
}

func (s *fakeScreen) Clear(termbox.Attribute, termbox.Attribute) error {
	clear(s.cells)
	return nil
}

func (s *fakeScreen) SetCell(x, y int, ch rune, _, _ termbox.Attribute) {
	s.cells[cell{x, y}] = ch
}

func (s *fakeScreen) Flush() error {
	s.flushes++
	return s.flushErr
}

func (s *fakeScreen) row(y int) string {
	var sb strings.Builder
	for x := 0; ; x++ {
		ch, ok := s.cells[cell{x, y}]
		if !ok {
			return sb.String()
		}
		sb.WriteRune(ch)
	}
}

func keyEvent(ch rune) termbox.Event {
	return termbox.Event{Type: termbox.EventKey, Ch: ch}
}

func TestTerminal_Render(t *testing.T) {
	scr := newFakeScreen()
	term := newTerminal(log.NewTestLogger(t), scr)

	d := display.New(false)
	d.Draw(2, 1, []byte{0x80})

	assert.NoError(t, term.Render(d.Snapshot(), runner.Status{Frame: 3, Cycles: 30, Sound: true}))
	assert.Equal(t, 1, scr.flushes)

	_, ok := scr.cells[cell{4, 1}]
	assert.True(t, ok)
	_, ok = scr.cells[cell{5, 1}]
	assert.True(t, ok)
	_, ok = scr.cells[cell{6, 1}]
	assert.False(t, ok)
	assert.Equal(t, 2+len(scr.row(display.Height)), len(scr.cells))

	status := scr.row(display.Height)
	assert.True(t, strings.HasPrefix(status, "frame 3  cycles 30"))
	assert.True(t, strings.Contains(status, "BEEP"))
}

func TestTerminal_RenderFlushError(t *testing.T) {
	scr := newFakeScreen()
	scr.flushErr = errors.New("broken pipe")
	term := newTerminal(log.NewTestLogger(t), scr)

	err := term.Render(display.Frame{}, runner.Status{})
	assert.ErrorContains(t, err, "broken pipe")
}

func TestTerminal_PollHoldsKeys(t *testing.T) {
	term := newTerminal(log.NewTestLogger(t), newFakeScreen())
	keys := keypad.New()

	term.events <- keyEvent('w')
	term.events <- keyEvent('V')

	for range holdFrames {
		assert.True(t, term.Poll(keys))
		assert.True(t, keys.IsPressed(0x5))
		assert.True(t, keys.IsPressed(0xF))
	}

	assert.True(t, term.Poll(keys))
	assert.False(t, keys.IsPressed(0x5))
	assert.False(t, keys.IsPressed(0xF))
}

func TestTerminal_PollIgnoresUnmappedKeys(t *testing.T) {
	term := newTerminal(log.NewTestLogger(t), newFakeScreen())
	keys := keypad.New()

	term.events <- keyEvent('p')
	assert.True(t, term.Poll(keys))
	_, pressed := keys.AnyPressed()
	assert.False(t, pressed)
}

func TestTerminal_PollQuit(t *testing.T) {
	tests := []struct {
		name  string
		event termbox.Event
	}{
		{"escape", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEsc}},
		{"ctrl+c", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyCtrlC}},
		{"terminal error", termbox.Event{Type: termbox.EventError, Err: errors.New("read failed")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := newTerminal(log.NewTestLogger(t), newFakeScreen())
			term.events <- tt.event
			assert.False(t, term.Poll(keypad.New()))
		})
	}
}

func TestStatusLine(t *testing.T) {
	assert.Equal(t, "frame 1  cycles 10  (esc to quit)", statusLine(runner.Status{Frame: 1, Cycles: 10}))
	assert.Equal(t, "frame 2  cycles 20  waiting for key  (esc to quit)",
		statusLine(runner.Status{Frame: 2, Cycles: 20, Waiting: true}))
}
