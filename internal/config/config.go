// Package config handles application configuration and setup
package config

import (
	"math/rand/v2"

	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateQuirks maps the quirk flags to the interpreter quirks. Without flags
// the interpreter behaves like the original COSMAC VIP interpreter for shifts.
func CreateQuirks(opts options.Program) cpu.Quirks {
	quirks := cpu.DefaultQuirks()
	if opts.ShiftVX {
		quirks.ShiftVY = false
	}
	quirks.JumpVX = opts.JumpVX
	quirks.WrapSprites = opts.Wrap
	quirks.ResetVF = opts.ResetVF
	quirks.IndexOverflowVF = opts.IndexVF
	quirks.LoadStoreKeepI = opts.KeepI
	return quirks
}

// CreateCPUOptions returns the interpreter options for the program options.
// A zero seed is replaced by a random one.
func CreateCPUOptions(opts options.Program, keys keypad.Reader) cpu.Options {
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return cpu.Options{
		Keypad: keys,
		Quirks: CreateQuirks(opts),
		Seed:   seed,
		Trace:  opts.Trace,
	}
}
