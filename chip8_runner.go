// chip8_runner.go - Machine assembly and the dual-cadence execution loop

/*
Cosmac Engine - a CHIP-8 virtual console

(c) 2025 - 2026 The Cosmac Engine authors
License: GPLv3 or later
*/

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// MachineConfig selects the backends and pacing for one machine instance.
type MachineConfig struct {
	CycleRate    int // target instructions per second
	VideoBackend int
	AudioBackend int
	Scale        int
	WrapSprites  bool
}

func DefaultMachineConfig() MachineConfig {
	return MachineConfig{
		CycleRate:    DEFAULT_CYCLE_RATE,
		VideoBackend: VIDEO_BACKEND_EBITEN,
		AudioBackend: AUDIO_BACKEND_OTO,
		Scale:        DefaultDisplayConfig().Scale,
	}
}

// MachineRunner wires a CPU to its memory, display, keypad and beeper and
// drives the execution loop. The loop keeps two independent cadences: the
// configured instruction rate, enforced by sleeping away the unused part
// of each instruction period, and the fixed 60 Hz timer decay, enforced
// by wall-clock catch-up so that a slow or sleeping instruction stream
// never slows the timers down.
type MachineRunner struct {
	cpu    *CPU_CHIP8
	mem    *Memory
	video  *VideoChip
	output VideoOutput
	beeper *Beeper
	pad    *Keypad
	logger *log.Logger

	cycleRate int
	romName   string
}

func NewMachineRunner(config MachineConfig, logger *log.Logger) (*MachineRunner, error) {
	if config.CycleRate == 0 {
		config.CycleRate = DEFAULT_CYCLE_RATE
	}
	if config.CycleRate < MIN_CYCLE_RATE || config.CycleRate > MAX_CYCLE_RATE {
		return nil, fmt.Errorf("cycle rate %d out of range %d..%d",
			config.CycleRate, MIN_CYCLE_RATE, MAX_CYCLE_RATE)
	}

	output, err := NewVideoOutput(config.VideoBackend)
	if err != nil {
		return nil, err
	}

	displayConfig := DefaultDisplayConfig()
	if config.Scale > 0 {
		displayConfig.Scale = config.Scale
	}
	if err := output.SetDisplayConfig(displayConfig); err != nil {
		return nil, err
	}

	beeper, err := NewBeeper(config.AudioBackend)
	if err != nil {
		return nil, err
	}

	pad := NewKeypad()
	output.SetKeypad(pad)

	video := NewVideoChip(output)
	video.SetSpriteWrap(config.WrapSprites)

	mem := NewMemory()
	cpu := NewCPU_CHIP8(mem, video, pad)
	output.SetQuitHandler(cpu.Stop)

	return &MachineRunner{
		cpu:       cpu,
		mem:       mem,
		video:     video,
		output:    output,
		beeper:    beeper,
		pad:       pad,
		logger:    logger,
		cycleRate: config.CycleRate,
	}, nil
}

// CPU exposes the machine aggregate, mainly for tests and the monitor.
func (r *MachineRunner) CPU() *CPU_CHIP8 {
	return r.cpu
}

// LoadProgram resets the machine and copies a raw ROM image to the load
// address. Failure leaves the machine in its reset state.
func (r *MachineRunner) LoadProgram(filename string) error {
	program, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	r.cpu.Reset()
	if err := r.cpu.LoadROM(program); err != nil {
		return err
	}

	r.romName = filepath.Base(filename)
	entry := "none"
	if len(program) >= INSTRUCTION_SIZE {
		entry = DisassembleWord(uint16(program[0])<<8 | uint16(program[1]))
	}
	r.logger.Debug("Loaded ROM",
		log.String("file", filename),
		log.Int("bytes", len(program)),
		log.String("entry", entry))
	return nil
}

// Run executes the machine until it halts or the context is cancelled.
// Each iteration executes one instruction, catches the timer decay up to
// the wall clock, refreshes the beeper gate and sleeps off the rest of
// the instruction period. Cancellation and host quit requests are
// observed at the top of every iteration, including while the machine is
// blocked in its wait-for-key state.
func (r *MachineRunner) Run(ctx context.Context) error {
	if err := r.output.Start(); err != nil {
		return err
	}
	r.video.Start()
	r.beeper.Start()

	r.logger.Info("Starting machine",
		log.String("rom", r.romName),
		log.Int("cycle_rate", r.cycleRate))

	period := time.Second / time.Duration(r.cycleRate)
	lastDecay := time.Now()
	r.cpu.running.Store(true)

	for r.cpu.IsRunning() {
		select {
		case <-ctx.Done():
			r.cpu.Stop()
			r.shutdown()
			return ctx.Err()
		default:
		}

		cycleStart := time.Now()
		r.cpu.Step()

		now := time.Now()
		for now.Sub(lastDecay) >= TIMER_DECAY_INTERVAL {
			r.cpu.DecayTimers()
			lastDecay = lastDecay.Add(TIMER_DECAY_INTERVAL)
		}
		r.beeper.SetBeeping(r.cpu.SoundActive())

		if elapsed := time.Since(cycleStart); elapsed < period {
			time.Sleep(period - elapsed)
		}
	}

	r.shutdown()
	return nil
}

// Stop requests a halt; the loop exits before the next fetch.
func (r *MachineRunner) Stop() {
	r.cpu.Stop()
}

func (r *MachineRunner) shutdown() {
	r.beeper.SetBeeping(false)
	r.beeper.Stop()
	r.beeper.Close()
	r.video.Stop()
	_ = r.output.Stop()
	_ = r.output.Close()
}
