package main

import "testing"

func TestOpSkipIfKeyPressed(t *testing.T) {
	rig := newChip8TestRig()
	rig.loadWords(0xE09E) // SKP V0
	rig.cpu.V[0] = 5
	rig.pad.SetKey(5, true)

	rig.step(1)
	requireChip8EqualU16(t, "PC taken", rig.cpu.PC, PROGRAM_START+4)

	rig.loadWords(0xE09E)
	rig.pad.SetKey(5, false)
	rig.step(1)
	requireChip8EqualU16(t, "PC not taken", rig.cpu.PC, PROGRAM_START+2)
}

func TestOpSkipIfKeyNotPressed(t *testing.T) {
	rig := newChip8TestRig()
	rig.loadWords(0xE0A1) // SKNP V0
	rig.cpu.V[0] = 5

	rig.step(1)
	requireChip8EqualU16(t, "PC taken", rig.cpu.PC, PROGRAM_START+4)

	rig.loadWords(0xE0A1)
	rig.pad.SetKey(5, true)
	rig.step(1)
	requireChip8EqualU16(t, "PC not taken", rig.cpu.PC, PROGRAM_START+2)
}

// TestOpWaitForKeyBlocks verifies Fx0A parks PC on the waiting
// instruction for as many cycles as it takes a key to arrive, then
// stores the key and moves on.
func TestOpWaitForKeyBlocks(t *testing.T) {
	rig := newChip8TestRig()
	rig.loadWords(0xF30A) // LD V3, K

	rig.step(1)
	requireChip8EqualU16(t, "PC while waiting", rig.cpu.PC, PROGRAM_START)
	if !rig.cpu.WaitingForKey() {
		t.Fatal("machine not reporting key wait")
	}

	rig.step(5)
	requireChip8EqualU16(t, "PC still waiting", rig.cpu.PC, PROGRAM_START)

	rig.pad.SetKey(9, true)
	rig.step(1)

	requireChip8EqualU8(t, "V3", rig.cpu.V[3], 9)
	requireChip8EqualU16(t, "PC after key", rig.cpu.PC, PROGRAM_START+2)
	if rig.cpu.WaitingForKey() {
		t.Fatal("machine still reporting key wait")
	}
}

// TestOpWaitForKeyLowestIndexWins verifies simultaneous keys resolve to
// the lowest index.
func TestOpWaitForKeyLowestIndexWins(t *testing.T) {
	rig := newChip8TestRig()
	rig.loadWords(0xF30A) // LD V3, K

	rig.step(1)
	rig.pad.SetKey(0xC, true)
	rig.pad.SetKey(0x4, true)
	rig.step(1)

	requireChip8EqualU8(t, "V3", rig.cpu.V[3], 0x4)
}

// TestOpWaitForKeyTimersKeepDecaying verifies the scheduler-owned decay
// still runs while the machine is parked on the wait.
func TestOpWaitForKeyTimersKeepDecaying(t *testing.T) {
	rig := newChip8TestRig()
	rig.loadWords(0xF30A) // LD V3, K
	rig.cpu.DT = 10

	rig.step(1)
	rig.cpu.DecayTimers()
	rig.cpu.DecayTimers()

	requireChip8EqualU8(t, "DT", rig.cpu.DT, 8)
	if !rig.cpu.WaitingForKey() {
		t.Fatal("decay cleared the key wait")
	}
}

// TestOpWaitForKeyReset verifies Reset clears a pending key wait.
func TestOpWaitForKeyReset(t *testing.T) {
	rig := newChip8TestRig()
	rig.loadWords(0xF30A)

	rig.step(1)
	rig.cpu.Reset()

	if rig.cpu.WaitingForKey() {
		t.Fatal("key wait survived reset")
	}
	requireChip8EqualU16(t, "PC", rig.cpu.PC, PROGRAM_START)
}
