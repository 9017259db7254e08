// chip8_disasm.go - ROM listing generator for the Cosmac Engine

/*
Cosmac Engine - a CHIP-8 virtual console

(c) 2025 - 2026 The Cosmac Engine authors
License: GPLv3 or later
*/

package main

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// DisassembleROM renders a ROM image as an assembly listing, one line
// per 16-bit word from the load address up. Words that match no opcode
// pattern are emitted as data directives so sprite tables survive a
// round trip through the listing.
func DisassembleROM(rom []byte, base uint16) []string {
	lines := make([]string, 0, len(rom)/2+1)
	for off := 0; off+1 < len(rom); off += 2 {
		addr := base + uint16(off)
		w := uint16(rom[off])<<8 | uint16(rom[off+1])
		lines = append(lines, fmt.Sprintf("%04X: %04X  %s", addr, w, DisassembleWord(w)))
	}
	if len(rom)%2 == 1 {
		addr := base + uint16(len(rom)-1)
		b := rom[len(rom)-1]
		lines = append(lines, fmt.Sprintf("%04X: %02X    .byte $%02X", addr, b, b))
	}
	return lines
}

// DisassembleWord decodes a single instruction word into its mnemonic
// and operand string.
func DisassembleWord(w uint16) string {
	op, ok := lookupOpcode(w)
	if !ok {
		return fmt.Sprintf(".word $%04X", w)
	}
	name := op.Instruction.Name
	if params := formatOperands(name, w); params != "" {
		return name + " " + params
	}
	return name
}

// lookupOpcode finds the opcode table entry for a word. Entries are
// grouped by first nibble; the first mask match wins and a match with
// no instruction marks the word as data.
func lookupOpcode(w uint16) (chip8.Opcode, bool) {
	firstNibble := (w & 0xF000) >> 12
	var match chip8.Opcode
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&w == op.Info.Value {
			match = op
			break
		}
	}
	if match.Instruction == nil {
		return chip8.Opcode{}, false
	}
	return match, true
}

// formatOperands renders the operand field for an instruction word.
// Mnemonics that are reused across encodings (LD, ADD, JP, SE, SNE)
// dispatch on the opcode's leading nibble.
func formatOperands(name string, w uint16) string {
	x := (w >> 8) & 0xF
	y := (w >> 4) & 0xF

	switch name {
	case chip8.Cls.Name, chip8.Ret.Name:
		return ""
	case chip8.Jp.Name:
		if w&0xF000 == 0xB000 {
			return fmt.Sprintf("V0, $%03X", w&0x0FFF)
		}
		return fmt.Sprintf("$%03X", w&0x0FFF)
	case chip8.Call.Name:
		return fmt.Sprintf("$%03X", w&0x0FFF)
	case chip8.Se.Name, chip8.Sne.Name:
		if w&0xF000 == 0x3000 || w&0xF000 == 0x4000 {
			return fmt.Sprintf("V%X, $%02X", x, w&0x00FF)
		}
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.Ld.Name:
		return formatLoadOperands(w, x, y)
	case chip8.Add.Name:
		switch w & 0xF000 {
		case 0x7000:
			return fmt.Sprintf("V%X, $%02X", x, w&0x00FF)
		case 0x8000:
			return fmt.Sprintf("V%X, V%X", x, y)
		default: // Fx1E
			return fmt.Sprintf("I, V%X", x)
		}
	case chip8.Or.Name, chip8.And.Name, chip8.Xor.Name, chip8.Sub.Name, chip8.Subn.Name:
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.Shr.Name, chip8.Shl.Name:
		return fmt.Sprintf("V%X", x)
	case chip8.Rnd.Name:
		return fmt.Sprintf("V%X, $%02X", x, w&0x00FF)
	case chip8.Drw.Name:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, w&0x000F)
	case chip8.Skp.Name, chip8.Sknp.Name:
		return fmt.Sprintf("V%X", x)
	}
	return ""
}

// formatLoadOperands covers the LD family: immediate and register
// loads, the index register, and the Fx timer, font, BCD and register
// file transfers.
func formatLoadOperands(w, x, y uint16) string {
	switch w & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, w&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0xA000:
		return fmt.Sprintf("I, $%03X", w&0x0FFF)
	case 0xF000:
		switch w & 0x00FF {
		case 0x07:
			return fmt.Sprintf("V%X, DT", x)
		case 0x0A:
			return fmt.Sprintf("V%X, K", x)
		case 0x15:
			return fmt.Sprintf("DT, V%X", x)
		case 0x18:
			return fmt.Sprintf("ST, V%X", x)
		case 0x29:
			return fmt.Sprintf("F, V%X", x)
		case 0x33:
			return fmt.Sprintf("B, V%X", x)
		case 0x55:
			return fmt.Sprintf("[I], V%X", x)
		case 0x65:
			return fmt.Sprintf("V%X, [I]", x)
		}
	}
	return ""
}
