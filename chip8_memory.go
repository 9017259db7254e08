// chip8_memory.go - 4KB flat memory for the CHIP-8 machine

/*
Cosmac Engine - a CHIP-8 virtual console

(c) 2025 - 2026 The Cosmac Engine authors
License: GPLv3 or later
*/

package main

import "fmt"

// Memory is the machine's flat 4096-byte store. Every access wraps modulo
// the address space; there is no fault path for out-of-range addresses.
// The built-in font glyphs live at FONT_BASE and are rewritten on Reset,
// never afterwards - a program overwriting them is legal.
type Memory struct {
	data [MEMORY_SIZE]byte
}

func NewMemory() *Memory {
	mem := &Memory{}
	mem.Reset()
	return mem
}

// Reset clears the full address space and reinstalls the font glyphs.
func (mem *Memory) Reset() {
	mem.data = [MEMORY_SIZE]byte{}
	copy(mem.data[FONT_BASE:], FontData[:])
}

func (mem *Memory) ReadByte(addr uint16) byte {
	return mem.data[addr&ADDRESS_MASK]
}

func (mem *Memory) WriteByte(addr uint16, value byte) {
	mem.data[addr&ADDRESS_MASK] = value
}

// LoadROM copies a raw program image to PROGRAM_START. The image must fit
// into the space above the interpreter area.
func (mem *Memory) LoadROM(rom []byte) error {
	end := PROGRAM_START + len(rom)
	if end > MEMORY_SIZE {
		return fmt.Errorf("ROM too large: end=0x%X, limit=0x%X", end, MEMORY_SIZE)
	}
	copy(mem.data[PROGRAM_START:], rom)
	return nil
}
