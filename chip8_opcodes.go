// chip8_opcodes.go - CHIP-8 instruction fetch, decode and dispatch

/*
Cosmac Engine - a CHIP-8 virtual console

(c) 2025 - 2026 The Cosmac Engine authors
License: GPLv3 or later
*/

package main

// Step runs one machine cycle: fetch the big-endian instruction word at
// PC, execute it, then advance PC by one instruction unless the
// instruction wrote PC itself (jump, call, return, computed jump). Those
// four set PC to its final value directly and the generic advance is
// suppressed, so jump targets are real instruction addresses rather than
// pre-adjusted ones.
//
// A machine blocked on the wait-for-key instruction does not fetch at
// all: the pending wait is re-checked first and PC only moves once a key
// has been captured. Unrecognized instruction words execute as no-ops.
func (cpu *CPU_CHIP8) Step() {
	if cpu.waitReg >= 0 {
		key, ok := cpu.pad.FirstPressed()
		if !ok {
			return
		}
		cpu.V[cpu.waitReg] = key
		cpu.waitReg = -1
		cpu.PC += INSTRUCTION_SIZE
		return
	}

	op := uint16(cpu.mem.ReadByte(cpu.PC))<<8 | uint16(cpu.mem.ReadByte(cpu.PC+1))
	if cpu.execute(op) {
		cpu.PC += INSTRUCTION_SIZE
	}
}

// execute dispatches one decoded instruction word and reports whether the
// generic PC advance should still run. Skip instructions add an extra
// instruction's worth of PC themselves and return true; control-flow
// instructions set PC outright and return false.
//
// Flag-producing arithmetic snapshots its operands first and writes VF
// before the result, so an instruction targeting VF itself ends up with
// the result, not the flag.
func (cpu *CPU_CHIP8) execute(op uint16) bool {
	x := (op >> 8) & 0x000F
	y := (op >> 4) & 0x000F
	kk := uint8(op)
	nnn := op & 0x0FFF
	n := op & 0x000F

	switch op & 0xF000 {
	case 0x0000:
		switch op {
		case 0x00E0: // CLS
			cpu.video.Clear()
		case 0x00EE: // RET
			addr, ok := cpu.Pop()
			if !ok {
				return false
			}
			cpu.PC = addr
			return false
		}
		// 0nnn machine-code calls are ignored.

	case 0x1000: // JP nnn
		cpu.PC = nnn
		return false

	case 0x2000: // CALL nnn
		cpu.Push(cpu.PC + INSTRUCTION_SIZE)
		cpu.PC = nnn
		return false

	case 0x3000: // SE Vx, kk
		if cpu.V[x] == kk {
			cpu.PC += INSTRUCTION_SIZE
		}

	case 0x4000: // SNE Vx, kk
		if cpu.V[x] != kk {
			cpu.PC += INSTRUCTION_SIZE
		}

	case 0x5000: // SE Vx, Vy
		if n == 0 && cpu.V[x] == cpu.V[y] {
			cpu.PC += INSTRUCTION_SIZE
		}

	case 0x6000: // LD Vx, kk
		cpu.V[x] = kk

	case 0x7000: // ADD Vx, kk
		cpu.V[x] += kk

	case 0x8000:
		cpu.executeALU(x, y, n)

	case 0x9000: // SNE Vx, Vy
		if n == 0 && cpu.V[x] != cpu.V[y] {
			cpu.PC += INSTRUCTION_SIZE
		}

	case 0xA000: // LD I, nnn
		cpu.I = nnn

	case 0xB000: // JP V0, nnn
		cpu.PC = nnn + uint16(cpu.V[0])
		return false

	case 0xC000: // RND Vx, kk
		cpu.V[x] = cpu.randByte() & kk

	case 0xD000: // DRW Vx, Vy, n
		cpu.drawSprite(x, y, n)

	case 0xE000:
		switch kk {
		case 0x9E: // SKP Vx
			if cpu.pad.IsPressed(int(cpu.V[x])) {
				cpu.PC += INSTRUCTION_SIZE
			}
		case 0xA1: // SKNP Vx
			if !cpu.pad.IsPressed(int(cpu.V[x])) {
				cpu.PC += INSTRUCTION_SIZE
			}
		}

	case 0xF000:
		return cpu.executeMisc(x, kk)
	}

	return true
}

// executeALU covers the 8xyn register-to-register group.
func (cpu *CPU_CHIP8) executeALU(x, y, n uint16) {
	vx := cpu.V[x]
	vy := cpu.V[y]

	switch n {
	case 0x0: // LD Vx, Vy
		cpu.V[x] = vy
	case 0x1: // OR
		cpu.V[x] = vx | vy
	case 0x2: // AND
		cpu.V[x] = vx & vy
	case 0x3: // XOR
		cpu.V[x] = vx ^ vy
	case 0x4: // ADD with carry
		sum := uint16(vx) + uint16(vy)
		cpu.V[FLAG_REGISTER] = 0
		if sum > 0xFF {
			cpu.V[FLAG_REGISTER] = 1
		}
		cpu.V[x] = uint8(sum)
	case 0x5: // SUB with not-borrow
		cpu.V[FLAG_REGISTER] = 0
		if vx > vy {
			cpu.V[FLAG_REGISTER] = 1
		}
		cpu.V[x] = vx - vy
	case 0x6: // SHR
		cpu.V[FLAG_REGISTER] = vx & 0x01
		cpu.V[x] = vx >> 1
	case 0x7: // SUBN
		cpu.V[FLAG_REGISTER] = 0
		if vy > vx {
			cpu.V[FLAG_REGISTER] = 1
		}
		cpu.V[x] = vy - vx
	case 0xE: // SHL
		cpu.V[FLAG_REGISTER] = (vx >> 7) & 0x01
		cpu.V[x] = vx << 1
	}
}

// executeMisc covers the Fxnn group. Returns false only for the key wait,
// which holds PC at the waiting instruction until a key arrives.
func (cpu *CPU_CHIP8) executeMisc(x uint16, kk uint8) bool {
	switch kk {
	case 0x07: // LD Vx, DT
		cpu.V[x] = cpu.DT
	case 0x0A: // LD Vx, K
		cpu.waitReg = int(x)
		return false
	case 0x15: // LD DT, Vx
		cpu.DT = cpu.V[x]
	case 0x18: // LD ST, Vx
		cpu.ST = cpu.V[x]
	case 0x1E: // ADD I, Vx
		cpu.I += uint16(cpu.V[x])
	case 0x29: // LD F, Vx
		cpu.I = FONT_BASE + uint16(cpu.V[x])*GLYPH_SIZE
	case 0x33: // LD B, Vx
		v := cpu.V[x]
		cpu.mem.WriteByte(cpu.I, v/100)
		cpu.mem.WriteByte(cpu.I+1, (v/10)%10)
		cpu.mem.WriteByte(cpu.I+2, v%10)
	case 0x55: // LD [I], V0..Vx
		for j := uint16(0); j <= x; j++ {
			cpu.mem.WriteByte(cpu.I+j, cpu.V[j])
		}
	case 0x65: // LD V0..Vx, [I]
		for j := uint16(0); j <= x; j++ {
			cpu.V[j] = cpu.mem.ReadByte(cpu.I + j)
		}
	}
	return true
}

// drawSprite reads n sprite rows at I and XORs them in at (Vx, Vy),
// recording the collision bit in VF.
func (cpu *CPU_CHIP8) drawSprite(x, y, n uint16) {
	var rows [MAX_SPRITE_ROWS]byte
	for i := uint16(0); i < n; i++ {
		rows[i] = cpu.mem.ReadByte(cpu.I + i)
	}

	cpu.V[FLAG_REGISTER] = 0
	if cpu.video.DrawSprite(rows[:n], int(cpu.V[x]), int(cpu.V[y])) {
		cpu.V[FLAG_REGISTER] = 1
	}
}
