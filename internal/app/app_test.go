package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func writeProgram(t *testing.T, name string, program []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, program, 0600); err != nil {
		t.Fatalf("Failed to create program file: %v", err)
	}
	return path
}

func headlessOptions(input string) options.Program {
	return options.Program{
		Parameters: options.Parameters{Input: input},
		Flags: options.Flags{
			Headless: true,
			Frames:   2,
			Cycles:   10,
			Seed:     1,
			Quiet:    true,
		},
	}
}

func TestRun_Headless(t *testing.T) {
	program := []byte{
		0x60, 0x00, // V0 = 0
		0xF0, 0x29, // I = glyph 0
		0xD0, 0x05, // draw at (0,0)
		0x12, 0x06, // loop
	}
	opts := headlessOptions(writeProgram(t, "zero.ch8", program))

	var output bytes.Buffer
	assert.NoError(t, Run(context.Background(), log.NewTestLogger(t), opts, &output))

	lines := strings.Split(strings.TrimSuffix(output.String(), "\n"), "\n")
	assert.Equal(t, display.Height, len(lines))
	// glyph 0 is F0 90 90 90 F0
	assert.True(t, strings.HasPrefix(lines[0], "####."))
	assert.True(t, strings.HasPrefix(lines[1], "#..#."))
	assert.True(t, strings.HasPrefix(lines[4], "####."))
	assert.Equal(t, strings.Repeat(".", display.Width), lines[5])
}

func TestRun_Dump(t *testing.T) {
	opts := headlessOptions(writeProgram(t, "loop.ch8", []byte{0x12, 0x00}))
	opts.Frames = 1
	opts.Dump = true

	var output bytes.Buffer
	assert.NoError(t, Run(context.Background(), log.NewTestLogger(t), opts, &output))
	assert.True(t, strings.HasSuffix(output.String(), "0200: 12 00"+strings.Repeat("   ", 14)+"\n"))
}

func TestRun_CycleError(t *testing.T) {
	opts := headlessOptions(writeProgram(t, "ret.ch8", []byte{0x00, 0xEE}))

	var output bytes.Buffer
	err := Run(context.Background(), log.NewTestLogger(t), opts, &output)
	assert.True(t, errors.Is(err, cpu.ErrStackUnderflow))
	// the frame is printed even if the run failed
	assert.Equal(t, display.Height, strings.Count(output.String(), "\n"))
}

func TestRun_UnsupportedSystem(t *testing.T) {
	opts := headlessOptions(writeProgram(t, "game.nes", []byte{0x12, 0x00}))

	err := Run(context.Background(), log.NewTestLogger(t), opts, &bytes.Buffer{})
	assert.True(t, errors.Is(err, ErrUnsupportedSystem))
}

func TestRun_MissingFile(t *testing.T) {
	opts := headlessOptions(filepath.Join(t.TempDir(), "missing.ch8"))

	err := Run(context.Background(), log.NewTestLogger(t), opts, &bytes.Buffer{})
	assert.ErrorContains(t, err, "loading program")
}

func TestPrintBanner(t *testing.T) {
	logger := log.NewTestLogger(t)
	PrintBanner(logger, options.Program{}, "1.0.0", "0123456789abcdef", "2026-10-19")
	PrintBanner(logger, options.Program{Flags: options.Flags{Quiet: true}}, "dev", "", "")
}
