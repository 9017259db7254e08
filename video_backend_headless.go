// video_backend_headless.go - No-op display backend for tests and ROM tooling

/*
Cosmac Engine - a CHIP-8 virtual console

(c) 2025 - 2026 The Cosmac Engine authors
License: GPLv3 or later
*/

package main

import "sync/atomic"

// HeadlessOutput satisfies VideoOutput without touching any host display.
// Frames are counted and discarded, which is all the engine tests and the
// disassembly mode need.
type HeadlessOutput struct {
	started    bool
	config     DisplayConfig
	frameCount uint64
	pad        *Keypad
	quit       func()
}

func NewHeadlessOutput() (VideoOutput, error) {
	return &HeadlessOutput{config: DefaultDisplayConfig()}, nil
}

func (h *HeadlessOutput) Start() error {
	h.started = true
	return nil
}

func (h *HeadlessOutput) Stop() error {
	h.started = false
	return nil
}

func (h *HeadlessOutput) Close() error {
	h.started = false
	return nil
}

func (h *HeadlessOutput) IsStarted() bool {
	return h.started
}

func (h *HeadlessOutput) SetDisplayConfig(config DisplayConfig) error {
	h.config = config
	return nil
}

func (h *HeadlessOutput) GetDisplayConfig() DisplayConfig {
	return h.config
}

func (h *HeadlessOutput) UpdateFrame(buffer []byte) error {
	atomic.AddUint64(&h.frameCount, 1)
	return nil
}

func (h *HeadlessOutput) GetFrameCount() uint64 {
	return atomic.LoadUint64(&h.frameCount)
}

func (h *HeadlessOutput) SetKeypad(pad *Keypad) {
	h.pad = pad
}

func (h *HeadlessOutput) SetQuitHandler(quit func()) {
	h.quit = quit
}
