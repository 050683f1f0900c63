// Package options contains the program options.
package options

// Positional contains positional arguments.
type Positional struct {
	File string `arg:"positional" usage:"CHIP-8 program file to run"`
}

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input program file"`
}

// Flags contains behavior options.
type Flags struct {
	System   string `flag:"s" usage:"target system: chip8 (default: auto-detect)"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
	Trace    bool   `flag:"trace" usage:"log every executed instruction, visible with -debug"`
	Headless bool   `flag:"headless" usage:"run without terminal frontend and print the last frame"`
	Dump     bool   `flag:"dump" usage:"print a hex dump of the program memory on exit"`
	Frames   int    `flag:"frames" usage:"number of 60 Hz frames to run, 0 runs until quit"`
	Cycles   int    `flag:"cycles" usage:"instructions executed per frame" default:"10"`
	Seed     uint64 `flag:"seed" usage:"seed of the random number generator, 0 picks a random seed"`
}

// QuirkFlags contains the interpreter compatibility options.
type QuirkFlags struct {
	ShiftVX bool `flag:"quirk-shift-vx" usage:"8XY6/8XYE shift VX in place and ignore VY"`
	JumpVX  bool `flag:"quirk-jump-vx" usage:"BNNN jumps to XNN plus VX instead of V0"`
	Wrap    bool `flag:"quirk-wrap" usage:"sprites wrap around the screen edges instead of being clipped"`
	ResetVF bool `flag:"quirk-vf-reset" usage:"8XY1/8XY2/8XY3 reset VF to 0"`
	IndexVF bool `flag:"quirk-index-vf" usage:"FX1E sets VF when I overflows the address space"`
	KeepI   bool `flag:"quirk-keep-i" usage:"FX55/FX65 do not advance I"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	QuirkFlags
}
