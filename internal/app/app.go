// Package app provides the main application helper for the interpreter.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnsupportedSystem is returned for programs of other systems than CHIP-8.
var ErrUnsupportedSystem = errors.New("unsupported system")

// PrintBanner prints the program version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("retrochip8", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// PrintInfo prints the information about the loaded program.
func PrintInfo(logger *log.Logger, opts options.Program, program []byte, system arch.System) {
	if opts.Quiet {
		return
	}

	logger.Info("Running CHIP-8 program",
		log.String("file", opts.Input),
		log.Stringer("system", system),
		log.Int("size", len(program)),
		log.Int("cycles_per_frame", opts.Cycles),
	)
}

// Run loads the program of the options and runs it until the frame limit is
// reached, the user quits or the context is cancelled. Headless runs print
// the last frame to the writer, a memory dump is appended if requested.
func Run(ctx context.Context, logger *log.Logger, opts options.Program, output io.Writer) error {
	system := detector.New(logger).Detect(opts)
	if !detector.Supported(system) {
		return fmt.Errorf("%w '%s'", ErrUnsupportedSystem, system)
	}

	program, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	PrintInfo(logger, opts, program, system)

	keys := keypad.New()
	interpreter := cpu.New(logger, config.CreateCPUOptions(opts, keys))
	if err := interpreter.LoadProgram(program); err != nil {
		return fmt.Errorf("loading program into memory: %w", err)
	}

	runErr := execute(ctx, logger, opts, interpreter, keys, output)

	if opts.Dump {
		end := uint16(memory.ProgramStart + len(program) - 1)
		if err := interpreter.Memory().Dump(output, memory.ProgramStart, end); err != nil {
			return errors.Join(runErr, fmt.Errorf("dumping memory: %w", err))
		}
	}
	return runErr
}

func execute(ctx context.Context, logger *log.Logger, opts options.Program,
	interpreter *cpu.CPU, keys *keypad.Keypad, output io.Writer) error {

	runnerOpts := runner.Options{
		CyclesPerFrame: opts.Cycles,
		Frames:         opts.Frames,
	}

	if opts.Headless {
		frontend := runner.NewHeadless()
		err := runner.New(logger, interpreter, keys, frontend, runnerOpts).Run(ctx)
		frame := frontend.Frame()
		if _, writeErr := io.WriteString(output, frame.String()); writeErr != nil {
			return errors.Join(err, fmt.Errorf("writing frame: %w", writeErr))
		}
		return err
	}

	term, err := terminal.New(logger)
	if err != nil {
		return err
	}
	defer term.Close()

	runnerOpts.FrameDuration = runner.FrameDuration
	return runner.New(logger, interpreter, keys, term, runnerOpts).Run(ctx)
}
