// video_backend_terminal.go - Text-mode video and keypad backend for the Cosmac Engine

/*
Cosmac Engine - a CHIP-8 virtual console

(c) 2025 - 2026 The Cosmac Engine authors
License: GPLv3 or later
*/

package main

import (
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

const (
	ANSI_CLEAR       = "\x1b[2J"
	ANSI_HOME        = "\x1b[H"
	ANSI_HIDE_CURSOR = "\x1b[?25l"
	ANSI_SHOW_CURSOR = "\x1b[?25h"

	// Raw terminals deliver key presses with no matching release, so a
	// pressed keypad key is held for this long and then dropped.
	TERMINAL_KEY_HOLD = 100 * time.Millisecond
)

// TerminalOutput draws the framebuffer into the controlling terminal
// using half-block characters, two pixel rows per text line. The
// terminal is switched to raw mode so keypad keys arrive unbuffered.
// It is the fallback display for hosts without a graphics stack.
type TerminalOutput struct {
	mutex   sync.Mutex
	started bool
	config  DisplayConfig

	frameCount uint64
	drawBuf    []byte

	pad  *Keypad
	quit func()

	oldState      *term.State
	stopCh        chan struct{}
	readerDone    chan struct{}
	stopOnce      sync.Once
	releaseTimers map[int]*time.Timer
}

// NewTerminalOutput creates a terminal video output. Raw mode is not
// entered until Start.
func NewTerminalOutput() (VideoOutput, error) {
	return &TerminalOutput{
		config:        DefaultDisplayConfig(),
		releaseTimers: make(map[int]*time.Timer),
	}, nil
}

// Start switches stdin to raw non-blocking mode, clears the screen and
// launches the key reader goroutine.
func (to *TerminalOutput) Start() error {
	to.mutex.Lock()
	defer to.mutex.Unlock()
	if to.started {
		return nil
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return &VideoError{Operation: "terminal setup", Details: "cannot enter raw mode", Err: err}
	}
	if err := syscall.SetNonblock(fd, true); err != nil {
		_ = term.Restore(fd, oldState)
		return &VideoError{Operation: "terminal setup", Details: "cannot set non-blocking stdin", Err: err}
	}

	to.oldState = oldState
	to.stopCh = make(chan struct{})
	to.readerDone = make(chan struct{})
	to.stopOnce = sync.Once{}
	to.started = true

	_, _ = os.Stdout.WriteString(ANSI_HIDE_CURSOR + ANSI_CLEAR)
	go to.readLoop()
	return nil
}

// Stop restores the terminal and stops the key reader. Safe to call
// more than once.
func (to *TerminalOutput) Stop() error {
	to.stopOnce.Do(func() {
		to.mutex.Lock()
		started := to.started
		to.started = false
		stopCh := to.stopCh
		readerDone := to.readerDone
		oldState := to.oldState
		timers := to.releaseTimers
		to.releaseTimers = make(map[int]*time.Timer)
		to.mutex.Unlock()

		if !started {
			return
		}
		close(stopCh)
		select {
		case <-readerDone:
		case <-time.After(time.Second):
		}
		for _, t := range timers {
			t.Stop()
		}

		fd := int(os.Stdin.Fd())
		_ = syscall.SetNonblock(fd, false)
		if oldState != nil {
			_ = term.Restore(fd, oldState)
		}
		_, _ = os.Stdout.WriteString(ANSI_SHOW_CURSOR + "\r\n")
	})
	return nil
}

func (to *TerminalOutput) Close() error {
	return to.Stop()
}

func (to *TerminalOutput) IsStarted() bool {
	to.mutex.Lock()
	defer to.mutex.Unlock()
	return to.started
}

// SetDisplayConfig stores the geometry. Scale is ignored here: cell
// size is whatever the terminal font provides.
func (to *TerminalOutput) SetDisplayConfig(config DisplayConfig) error {
	to.mutex.Lock()
	defer to.mutex.Unlock()
	if config.Width <= 0 || config.Height <= 0 {
		return &VideoError{Operation: "configure", Details: "invalid geometry"}
	}
	to.config = config
	return nil
}

func (to *TerminalOutput) GetDisplayConfig() DisplayConfig {
	to.mutex.Lock()
	defer to.mutex.Unlock()
	return to.config
}

// UpdateFrame redraws the terminal from an RGBA frame. Two vertically
// adjacent pixels share one character cell via the half-block glyphs.
func (to *TerminalOutput) UpdateFrame(frame []byte) error {
	to.mutex.Lock()
	defer to.mutex.Unlock()
	if !to.started {
		return nil
	}
	width := to.config.Width
	height := to.config.Height
	if len(frame) != width*height*4 {
		return &VideoError{Operation: "frame update", Details: "frame size mismatch"}
	}

	buf := to.drawBuf[:0]
	buf = append(buf, ANSI_HOME...)
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			top := frame[(y*width+x)*4] != 0
			bottom := y+1 < height && frame[((y+1)*width+x)*4] != 0
			switch {
			case top && bottom:
				buf = append(buf, "█"...)
			case top:
				buf = append(buf, "▀"...)
			case bottom:
				buf = append(buf, "▄"...)
			default:
				buf = append(buf, ' ')
			}
		}
		buf = append(buf, '\r', '\n')
	}
	to.drawBuf = buf

	_, _ = os.Stdout.Write(buf)
	to.frameCount++
	return nil
}

func (to *TerminalOutput) GetFrameCount() uint64 {
	to.mutex.Lock()
	defer to.mutex.Unlock()
	return to.frameCount
}

func (to *TerminalOutput) SetKeypad(pad *Keypad) {
	to.mutex.Lock()
	defer to.mutex.Unlock()
	to.pad = pad
}

func (to *TerminalOutput) SetQuitHandler(quit func()) {
	to.mutex.Lock()
	defer to.mutex.Unlock()
	to.quit = quit
}

// readLoop pulls single bytes off raw stdin until stopped. With the
// descriptor in non-blocking mode a read with no pending input errors
// out, so the loop naps briefly between polls.
func (to *TerminalOutput) readLoop() {
	defer close(to.readerDone)
	buf := make([]byte, 1)
	for {
		select {
		case <-to.stopCh:
			return
		default:
		}
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		to.handleByte(buf[0])
	}
}

// handleByte translates one raw input byte. Digits and a-f press the
// corresponding keypad key, ESC and Ctrl-C quit, anything else clears
// every keypad flag. Escape sequences are not decoded.
func (to *TerminalOutput) handleByte(b byte) {
	to.mutex.Lock()
	pad := to.pad
	quit := to.quit
	to.mutex.Unlock()

	switch {
	case b == 0x03 || b == 0x1B:
		if quit != nil {
			quit()
		}
	case b >= '0' && b <= '9':
		to.pressKey(pad, int(b-'0'))
	case b >= 'a' && b <= 'f':
		to.pressKey(pad, int(b-'a')+0xA)
	case b >= 'A' && b <= 'F':
		to.pressKey(pad, int(b-'A')+0xA)
	default:
		if pad != nil {
			pad.ReleaseAll()
		}
	}
}

// pressKey marks a keypad key pressed and arms its release timer,
// restarting the hold window if the key repeats.
func (to *TerminalOutput) pressKey(pad *Keypad, key int) {
	if pad == nil {
		return
	}
	pad.SetKey(key, true)
	to.mutex.Lock()
	defer to.mutex.Unlock()
	if t, ok := to.releaseTimers[key]; ok {
		t.Stop()
	}
	to.releaseTimers[key] = time.AfterFunc(TERMINAL_KEY_HOLD, func() {
		pad.SetKey(key, false)
	})
}
