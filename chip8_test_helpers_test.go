package main

import "testing"

// chip8TestRig wires a full machine onto the headless backends so tests
// observe real fetch/decode/execute behaviour without a host display.
type chip8TestRig struct {
	mem   *Memory
	video *VideoChip
	pad   *Keypad
	cpu   *CPU_CHIP8
}

func newChip8TestRig() *chip8TestRig {
	output, _ := NewHeadlessOutput()
	mem := NewMemory()
	pad := NewKeypad()
	video := NewVideoChip(output)
	cpu := NewCPU_CHIP8(mem, video, pad)
	cpu.SetRandSeed(1)
	return &chip8TestRig{
		mem:   mem,
		video: video,
		pad:   pad,
		cpu:   cpu,
	}
}

// loadWords assembles big-endian instruction words into memory at the
// program load address and points PC at the first one.
func (r *chip8TestRig) loadWords(words ...uint16) {
	addr := uint16(PROGRAM_START)
	for _, w := range words {
		r.mem.WriteByte(addr, byte(w>>8))
		r.mem.WriteByte(addr+1, byte(w))
		addr += INSTRUCTION_SIZE
	}
	r.cpu.PC = PROGRAM_START
}

func (r *chip8TestRig) step(n int) {
	for i := 0; i < n; i++ {
		r.cpu.Step()
	}
}

func requireChip8EqualU8(t *testing.T, name string, got, want uint8) {
	t.Helper()
	if got != want {
		t.Fatalf("%s = 0x%02X, want 0x%02X", name, got, want)
	}
}

func requireChip8EqualU16(t *testing.T, name string, got, want uint16) {
	t.Helper()
	if got != want {
		t.Fatalf("%s = 0x%04X, want 0x%04X", name, got, want)
	}
}
