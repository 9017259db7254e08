package main

import (
	"errors"
	"flag"
	"testing"
)

func TestParseFlags_Defaults(t *testing.T) {
	opts, err := parseFlags([]string{"game.ch8"})
	if err != nil {
		t.Fatalf("parseFlags returned error: %v", err)
	}
	if opts.cycles != DEFAULT_CYCLE_RATE {
		t.Fatalf("cycles = %d, want %d", opts.cycles, DEFAULT_CYCLE_RATE)
	}
	if opts.scale != 10 {
		t.Fatalf("scale = %d, want 10", opts.scale)
	}
	if opts.video != "ebiten" {
		t.Fatalf("video = %q, want ebiten", opts.video)
	}
	if opts.wrap || opts.mute || opts.disasm || opts.debug || opts.quiet {
		t.Fatal("boolean flag set without being passed")
	}
	if opts.seed != 0 {
		t.Fatalf("seed = %d, want 0", opts.seed)
	}
	if opts.romFile != "game.ch8" {
		t.Fatalf("romFile = %q, want game.ch8", opts.romFile)
	}
}

func TestParseFlags_Overrides(t *testing.T) {
	opts, err := parseFlags([]string{
		"-cycles", "700",
		"-scale", "4",
		"-video", "terminal",
		"-wrap",
		"-mute",
		"-seed", "42",
		"game.ch8",
	})
	if err != nil {
		t.Fatalf("parseFlags returned error: %v", err)
	}
	if opts.cycles != 700 || opts.scale != 4 {
		t.Fatalf("cycles/scale = %d/%d, want 700/4", opts.cycles, opts.scale)
	}
	if opts.video != "terminal" {
		t.Fatalf("video = %q, want terminal", opts.video)
	}
	if !opts.wrap || !opts.mute {
		t.Fatal("expected -wrap and -mute to be set")
	}
	if opts.seed != 42 {
		t.Fatalf("seed = %d, want 42", opts.seed)
	}
	if opts.romFile != "game.ch8" {
		t.Fatalf("romFile = %q, want game.ch8", opts.romFile)
	}
}

func TestParseFlags_NoROM(t *testing.T) {
	opts, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags returned error: %v", err)
	}
	if opts.romFile != "" {
		t.Fatalf("romFile = %q, want empty", opts.romFile)
	}
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	_, err := parseFlags([]string{"-bogus"})
	if err == nil {
		t.Fatal("expected unknown flag to be rejected")
	}
	if errors.Is(err, flag.ErrHelp) {
		t.Fatal("unknown flag reported as help request")
	}
}
