// audio_backend_headless.go - Silent audio backend for tests and -mute

/*
Cosmac Engine - a CHIP-8 virtual console

(c) 2025 - 2026 The Cosmac Engine authors
License: GPLv3 or later
*/

package main

// HeadlessPlayer satisfies AudioOutput without opening an audio device.
type HeadlessPlayer struct {
	beeper  *Beeper
	started bool
}

func NewHeadlessPlayer(sampleRate int) (*HeadlessPlayer, error) {
	return &HeadlessPlayer{}, nil
}

func (hp *HeadlessPlayer) SetupPlayer(beeper *Beeper) {
	hp.beeper = beeper
}

func (hp *HeadlessPlayer) Start() {
	hp.started = true
}

func (hp *HeadlessPlayer) Stop() {
	hp.started = false
}

func (hp *HeadlessPlayer) Close() {
	hp.started = false
}

func (hp *HeadlessPlayer) IsStarted() bool {
	return hp.started
}
