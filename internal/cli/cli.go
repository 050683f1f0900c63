// Package cli handles command line interface logic
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/options"
	retrocli "github.com/retroenv/retrogolib/cli"
)

const programName = "retrochip8"

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	var opts options.Program
	var positional options.Positional

	flags := retrocli.NewFlagSet(programName)
	flags.AddSection("Parameters", &opts.Parameters)
	flags.AddSection("Options", &opts.Flags)
	flags.AddSection("Quirks", &opts.QuirkFlags)
	flags.AddPositional(&positional)

	remaining, err := flags.Parse(os.Args[1:])
	if err != nil {
		// the parser printed the usage already
		if errors.Is(err, retrocli.ErrHelpRequested) {
			return opts, &UsageError{}
		}
		return opts, &UsageError{msg: err.Error()}
	}

	if opts.Input == "" {
		opts.Input = positional.File
	}
	if opts.Input == "" {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, remaining); err != nil {
		return opts, err
	}

	if err := validateOptions(opts); err != nil {
		return opts, err
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *retrocli.FlagSet // nil if the usage was already printed
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the error message and the usage of all flags.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	if e.flags != nil {
		e.flags.ShowUsage()
	}
}

// validateArgs checks that no arguments follow the program file
func validateArgs(flags *retrocli.FlagSet, args []string) error {
	if len(args) == 0 {
		return nil
	}

	arg := args[0]
	msg := fmt.Sprintf("Unexpected argument %s after the program file", arg)
	if arg != "" && arg[0] == '-' {
		msg = fmt.Sprintf("Potential argument %s found after the program file, please pass the program file as last argument", arg)
	}
	return &UsageError{flags: flags, msg: msg}
}

// validateOptions checks the value ranges of numeric options.
func validateOptions(opts options.Program) error {
	if opts.Cycles < 1 {
		return fmt.Errorf("invalid cycles per frame %d: must be at least 1", opts.Cycles)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("invalid frame count %d: must not be negative", opts.Frames)
	}
	return nil
}
