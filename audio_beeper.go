// audio_beeper.go - Sound-timer beeper driven by the machine's gate signal

/*
Cosmac Engine - a CHIP-8 virtual console

(c) 2025 - 2026 The Cosmac Engine authors
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"sync/atomic"
)

const (
	SAMPLE_RATE    = 44100
	BEEP_FREQUENCY = 440.0
	BEEP_VOLUME    = 0.25
)

// AudioOutput is the contract an audio backend implements. Backends pull
// samples from the beeper on their own schedule; the engine only ever
// flips the gate.
type AudioOutput interface {
	SetupPlayer(beeper *Beeper)
	Start()
	Stop()
	Close()
	IsStarted() bool
}

// Predefined audio backend types
const (
	AUDIO_BACKEND_OTO = iota // Pure Go oto backend
	AUDIO_BACKEND_HEADLESS   // Silent backend for tests and -mute
)

// NewAudioOutput creates an audio output instance using the specified backend
func NewAudioOutput(backend int, sampleRate int) (AudioOutput, error) {
	switch backend {
	case AUDIO_BACKEND_OTO:
		return NewOtoPlayer(sampleRate)
	case AUDIO_BACKEND_HEADLESS:
		return NewHeadlessPlayer(sampleRate)
	}
	return nil, fmt.Errorf("unknown audio backend type: %d", backend)
}

// Beeper is the machine's audio collaborator. The sound timer exposes a
// single boolean - beeping or silent - and the beeper renders that as a
// fixed square tone. The gate is atomic because the scheduler writes it
// from the execution loop while the backend reads it from the audio
// thread.
type Beeper struct {
	output AudioOutput
	gate   atomic.Bool
	phase  float64
}

func NewBeeper(backend int) (*Beeper, error) {
	output, err := NewAudioOutput(backend, SAMPLE_RATE)
	if err != nil {
		return nil, err
	}

	beeper := &Beeper{output: output}
	output.SetupPlayer(beeper)
	return beeper, nil
}

// SetBeeping opens or closes the tone gate.
func (b *Beeper) SetBeeping(on bool) {
	b.gate.Store(on)
}

func (b *Beeper) IsBeeping() bool {
	return b.gate.Load()
}

// GenerateSamples fills the buffer with the current gate state: a square
// wave while beeping, silence otherwise. Phase persists across calls so
// the tone stays continuous; only the audio thread touches it.
func (b *Beeper) GenerateSamples(samples []float32) {
	if !b.gate.Load() {
		for i := range samples {
			samples[i] = 0
		}
		return
	}

	step := BEEP_FREQUENCY / SAMPLE_RATE
	for i := range samples {
		if b.phase < 0.5 {
			samples[i] = BEEP_VOLUME
		} else {
			samples[i] = -BEEP_VOLUME
		}
		b.phase += step
		if b.phase >= 1.0 {
			b.phase -= 1.0
		}
	}
}

func (b *Beeper) Start() {
	b.output.Start()
}

func (b *Beeper) Stop() {
	b.output.Stop()
}

func (b *Beeper) Close() {
	b.output.Close()
}
