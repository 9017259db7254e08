// chip8_constants.go - CHIP-8 machine constants for the Cosmac Engine

/*
Cosmac Engine - a CHIP-8 virtual console

(c) 2025 - 2026 The Cosmac Engine authors
License: GPLv3 or later
*/

package main

import "time"

const (
	// Memory map
	MEMORY_SIZE   = 4096
	ADDRESS_MASK  = 0x0FFF
	FONT_BASE     = 0x000
	GLYPH_SIZE    = 5
	GLYPH_COUNT   = 16
	PROGRAM_START = 0x200

	// CPU
	INSTRUCTION_SIZE = 2
	NUM_REGISTERS    = 16
	FLAG_REGISTER    = 0xF

	// Display
	DISPLAY_WIDTH    = 64
	DISPLAY_HEIGHT   = 32
	ROW_BYTES        = DISPLAY_WIDTH / 8
	FRAMEBUFFER_SIZE = ROW_BYTES * DISPLAY_HEIGHT
	MAX_SPRITE_ROWS  = 15

	// Input
	NUM_KEYS = 16

	// Timing
	TIMER_RATE_HZ        = 60
	TIMER_DECAY_INTERVAL = time.Second / TIMER_RATE_HZ
	DEFAULT_CYCLE_RATE   = 1000
	MIN_CYCLE_RATE       = 60
	MAX_CYCLE_RATE       = 100000
)

// FontData holds the sixteen built-in hexadecimal glyphs, five bytes per
// digit, copied to FONT_BASE on every reset. Each byte is one 8-pixel row
// with the glyph in the high nibble.
var FontData = [GLYPH_COUNT * GLYPH_SIZE]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}
