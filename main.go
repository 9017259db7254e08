// main.go - Main entry point for the Cosmac Engine

/*
Cosmac Engine - a CHIP-8 virtual console

(c) 2025 - 2026 The Cosmac Engine authors
License: GPLv3 or later
*/

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type options struct {
	cycles  int
	scale   int
	video   string
	wrap    bool
	mute    bool
	seed    int64
	disasm  bool
	debug   bool
	quiet   bool
	version bool
	romFile string
}

func boilerPlate() {
	fmt.Println("\n\033[38;2;97;175;239m▄█▀ COSMAC ENGINE ▀█▄\033[0m")
	fmt.Println("A CHIP-8 virtual console for the desktop and the terminal.")
	fmt.Println("(c) 2025 - 2026 The Cosmac Engine authors")
	fmt.Println("License: GPLv3 or later")
}

func main() {
	ctx := app.Context()

	opts, err := parseFlags(os.Args[1:])
	logger := createLogger(opts.debug, opts.quiet)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		logger.Fatal(err.Error())
	}

	if opts.version {
		fmt.Println(buildinfo.Version(version, commit, date))
		return
	}

	if !opts.quiet {
		boilerPlate()
		fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
	}

	if opts.romFile == "" {
		logger.Fatal("a ROM file is required, try -h for usage")
	}

	if opts.disasm {
		rom, err := os.ReadFile(opts.romFile)
		if err != nil {
			logger.Fatal(err.Error())
		}
		for _, line := range DisassembleROM(rom, PROGRAM_START) {
			fmt.Println(line)
		}
		return
	}

	config := DefaultMachineConfig()
	config.CycleRate = opts.cycles
	config.Scale = opts.scale
	config.WrapSprites = opts.wrap
	switch opts.video {
	case "ebiten":
		config.VideoBackend = VIDEO_BACKEND_EBITEN
	case "terminal":
		config.VideoBackend = VIDEO_BACKEND_TERMINAL
	case "none":
		config.VideoBackend = VIDEO_BACKEND_HEADLESS
	default:
		logger.Fatal(fmt.Sprintf("unknown video backend %q, want ebiten, terminal or none", opts.video))
	}
	if opts.mute {
		config.AudioBackend = AUDIO_BACKEND_HEADLESS
	}

	runner, err := NewMachineRunner(config, logger)
	if err != nil {
		logger.Fatal(err.Error())
	}
	if opts.seed != 0 {
		runner.CPU().SetRandSeed(opts.seed)
	}
	if err := runner.LoadProgram(opts.romFile); err != nil {
		logger.Fatal(err.Error())
	}

	if err := runner.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Machine stopped", log.Err(err))
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	opts := options{}
	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.IntVar(&opts.cycles, "cycles", DEFAULT_CYCLE_RATE, "instructions executed per second")
	flagSet.IntVar(&opts.scale, "scale", 10, "window pixels per display pixel")
	flagSet.StringVar(&opts.video, "video", "ebiten", "video backend: ebiten, terminal or none")
	flagSet.BoolVar(&opts.wrap, "wrap", false, "wrap sprites at the display edges instead of clipping")
	flagSet.BoolVar(&opts.mute, "mute", false, "disable audio output")
	flagSet.Int64Var(&opts.seed, "seed", 0, "random number seed, 0 seeds from the clock")
	flagSet.BoolVar(&opts.disasm, "disasm", false, "print a ROM listing and exit")
	flagSet.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flagSet.BoolVar(&opts.quiet, "quiet", false, "only log errors")
	flagSet.BoolVar(&opts.version, "version", false, "print the version and exit")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: cosmac [options] rom.ch8")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return opts, err
	}
	opts.romFile = flagSet.Arg(0)
	return opts, nil
}

func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
