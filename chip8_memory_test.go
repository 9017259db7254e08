package main

import "testing"

// TestMemoryFontInstalledAtReset verifies the built-in glyphs occupy the
// bottom of memory in digit order, five bytes per glyph.
func TestMemoryFontInstalledAtReset(t *testing.T) {
	mem := NewMemory()

	for i, want := range FontData {
		got := mem.ReadByte(uint16(FONT_BASE + i))
		if got != want {
			t.Fatalf("font byte %d = 0x%02X, want 0x%02X", i, got, want)
		}
	}

	// Spot-check glyph "1" at its expected slot.
	base := uint16(FONT_BASE + 1*GLYPH_SIZE)
	want := []byte{0x20, 0x60, 0x20, 0x20, 0x70}
	for i, w := range want {
		got := mem.ReadByte(base + uint16(i))
		if got != w {
			t.Fatalf("glyph 1 row %d = 0x%02X, want 0x%02X", i, got, w)
		}
	}
}

// TestMemoryAddressWrap verifies reads and writes fold into the 4KB
// address space instead of faulting.
func TestMemoryAddressWrap(t *testing.T) {
	mem := NewMemory()

	mem.WriteByte(0x1234, 0xAB)
	if got := mem.ReadByte(0x0234); got != 0xAB {
		t.Fatalf("wrapped read = 0x%02X, want 0xAB", got)
	}
	if got := mem.ReadByte(0xF234); got != 0xAB {
		t.Fatalf("wrapped high read = 0x%02X, want 0xAB", got)
	}
}

func TestMemoryLoadROM(t *testing.T) {
	mem := NewMemory()

	if err := mem.LoadROM([]byte{0xAA, 0xBB, 0xCC}); err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}
	if got := mem.ReadByte(PROGRAM_START); got != 0xAA {
		t.Fatalf("byte at 0x%03X = 0x%02X, want 0xAA", PROGRAM_START, got)
	}
	if got := mem.ReadByte(PROGRAM_START + 2); got != 0xCC {
		t.Fatalf("byte at 0x%03X = 0x%02X, want 0xCC", PROGRAM_START+2, got)
	}
}

// TestMemoryLoadROMBounds verifies the largest ROM that fits loads and
// one byte more is rejected.
func TestMemoryLoadROMBounds(t *testing.T) {
	mem := NewMemory()

	maxROM := make([]byte, MEMORY_SIZE-PROGRAM_START)
	maxROM[len(maxROM)-1] = 0x42
	if err := mem.LoadROM(maxROM); err != nil {
		t.Fatalf("max-size ROM rejected: %v", err)
	}
	if got := mem.ReadByte(MEMORY_SIZE - 1); got != 0x42 {
		t.Fatalf("last byte = 0x%02X, want 0x42", got)
	}

	tooBig := make([]byte, MEMORY_SIZE-PROGRAM_START+1)
	if err := mem.LoadROM(tooBig); err == nil {
		t.Fatal("oversized ROM accepted")
	}
}

// TestMemoryResetClearsProgram verifies Reset wipes loaded programs but
// reinstalls the font.
func TestMemoryResetClearsProgram(t *testing.T) {
	mem := NewMemory()

	if err := mem.LoadROM([]byte{0x12, 0x34}); err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}
	mem.Reset()

	if got := mem.ReadByte(PROGRAM_START); got != 0x00 {
		t.Fatalf("program byte after reset = 0x%02X, want 0x00", got)
	}
	if got := mem.ReadByte(FONT_BASE); got != FontData[0] {
		t.Fatalf("font byte after reset = 0x%02X, want 0x%02X", got, FontData[0])
	}
}
