// video_interface.go - Display backend interface and factory

/*
Cosmac Engine - a CHIP-8 virtual console

(c) 2025 - 2026 The Cosmac Engine authors
License: GPLv3 or later
*/

package main

import "fmt"

// VideoError provides detailed error context for video operations
type VideoError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *VideoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("video %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("video %s failed: %s", e.Operation, e.Details)
}

func (e *VideoError) Unwrap() error {
	return e.Err
}

// DisplayConfig contains backend-independent display configuration.
type DisplayConfig struct {
	Width  int // Logical display width in pixels
	Height int // Logical display height in pixels
	Scale  int // Integer scaling factor for the host window
	Title  string
}

func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		Width:  DISPLAY_WIDTH,
		Height: DISPLAY_HEIGHT,
		Scale:  10,
		Title:  "Cosmac Engine",
	}
}

// VideoOutput is the minimal contract a display backend implements. The
// video chip pushes raw RGBA frames; the backend owns presentation and,
// because the host window is also where key events arrive, feeds the
// keypad and reports a quit request back to the machine.
type VideoOutput interface {
	// Lifecycle management
	Start() error
	Stop() error
	Close() error
	IsStarted() bool

	// Display operations
	SetDisplayConfig(config DisplayConfig) error
	GetDisplayConfig() DisplayConfig
	UpdateFrame(buffer []byte) error // Takes raw RGBA pixels only
	GetFrameCount() uint64

	// Host input wiring
	SetKeypad(pad *Keypad)
	SetQuitHandler(quit func())
}

// Predefined video backend types
const (
	VIDEO_BACKEND_EBITEN   = iota // Desktop window via Ebiten
	VIDEO_BACKEND_TERMINAL        // ANSI rendering into the controlling terminal
	VIDEO_BACKEND_HEADLESS        // No output, used by tests and -disasm
)

// NewVideoOutput creates a new video output instance using the specified backend
func NewVideoOutput(backend int) (VideoOutput, error) {
	switch backend {
	case VIDEO_BACKEND_EBITEN:
		return NewEbitenOutput()
	case VIDEO_BACKEND_TERMINAL:
		return NewTerminalOutput()
	case VIDEO_BACKEND_HEADLESS:
		return NewHeadlessOutput()
	}
	return nil, &VideoError{
		Operation: "backend creation",
		Details:   fmt.Sprintf("unknown backend type: %d", backend),
	}
}
