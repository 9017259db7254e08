// chip8_cpu.go - CHIP-8 machine state: registers, stack, timers, RNG

/*
Cosmac Engine - a CHIP-8 virtual console

(c) 2025 - 2026 The Cosmac Engine authors
License: GPLv3 or later
*/

package main

import (
	"math/rand"
	"sync/atomic"
	"time"
)

// CPU_CHIP8 is the whole machine aggregate: sixteen 8-bit registers (VF
// doubles as the arithmetic flag), the 16-bit index register and program
// counter, the two 8-bit countdown timers, the call stack and the
// attached memory, display and keypad. One instance per machine; nothing
// lives in package globals, so tests can run machines side by side.
//
// Everything here belongs to the execution-loop goroutine. The only
// cross-thread surfaces are the keypad (internally locked), the video
// chip (internally locked) and the running flag.
type CPU_CHIP8 struct {
	V  [NUM_REGISTERS]uint8
	I  uint16
	PC uint16
	DT uint8
	ST uint8

	stack   []uint16
	waitReg int // register waiting on a key press, -1 when idle

	mem   *Memory
	video *VideoChip
	pad   *Keypad
	rng   *rand.Rand

	running atomic.Bool
}

func NewCPU_CHIP8(mem *Memory, video *VideoChip, pad *Keypad) *CPU_CHIP8 {
	cpu := &CPU_CHIP8{
		mem:   mem,
		video: video,
		pad:   pad,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	cpu.Reset()
	return cpu
}

// Reset restores power-on state: registers and timers zeroed, PC at the
// program load address, stack empty, memory refonted, display cleared.
func (cpu *CPU_CHIP8) Reset() {
	cpu.V = [NUM_REGISTERS]uint8{}
	cpu.I = 0
	cpu.PC = PROGRAM_START
	cpu.DT = 0
	cpu.ST = 0
	cpu.stack = cpu.stack[:0]
	cpu.waitReg = -1
	cpu.mem.Reset()
	cpu.video.Clear()
}

// SetRandSeed replaces the RNG with a deterministic one. Tests use this to
// pin down the random-byte instruction.
func (cpu *CPU_CHIP8) SetRandSeed(seed int64) {
	cpu.rng = rand.New(rand.NewSource(seed))
}

// LoadROM copies a raw program image into memory at the load address.
func (cpu *CPU_CHIP8) LoadROM(rom []byte) error {
	return cpu.mem.LoadROM(rom)
}

// Push records a return address. The hardware's 16-level limit is
// deliberately not enforced; the stack grows as needed.
func (cpu *CPU_CHIP8) Push(addr uint16) {
	cpu.stack = append(cpu.stack, addr)
}

// Pop removes and returns the newest return address. Returning with an
// empty stack has no defined program meaning, so it halts the machine
// instead of faulting.
func (cpu *CPU_CHIP8) Pop() (uint16, bool) {
	if len(cpu.stack) == 0 {
		cpu.Stop()
		return 0, false
	}
	addr := cpu.stack[len(cpu.stack)-1]
	cpu.stack = cpu.stack[:len(cpu.stack)-1]
	return addr, true
}

// StackDepth reports the current number of pending return addresses.
func (cpu *CPU_CHIP8) StackDepth() int {
	return len(cpu.stack)
}

// DecayTimers steps both countdown timers once. Only the scheduler calls
// this, at its fixed 60 Hz cadence; timers never go below zero.
func (cpu *CPU_CHIP8) DecayTimers() {
	if cpu.DT > 0 {
		cpu.DT--
	}
	if cpu.ST > 0 {
		cpu.ST--
	}
}

// SoundActive reports whether the sound timer is running. The audio
// collaborator turns this gate into an audible tone.
func (cpu *CPU_CHIP8) SoundActive() bool {
	return cpu.ST > 0
}

// WaitingForKey reports whether the machine is blocked on a key press.
func (cpu *CPU_CHIP8) WaitingForKey() bool {
	return cpu.waitReg >= 0
}

func (cpu *CPU_CHIP8) Stop() {
	cpu.running.Store(false)
}

func (cpu *CPU_CHIP8) IsRunning() bool {
	return cpu.running.Load()
}

func (cpu *CPU_CHIP8) randByte() uint8 {
	return uint8(cpu.rng.Intn(256))
}
