// input_keypad.go - 16-key keypad state shared between the machine and host backends

/*
Cosmac Engine - a CHIP-8 virtual console

(c) 2025 - 2026 The Cosmac Engine authors
License: GPLv3 or later
*/

package main

import "sync"

// Keypad holds the pressed state of the sixteen logical keys 0x0-0xF.
// The CPU reads it from the execution loop; host backends write it from
// their own goroutines, so access is mutex-guarded. Key indices outside
// 0-15 are ignored.
type Keypad struct {
	mutex sync.Mutex
	keys  [NUM_KEYS]bool
}

func NewKeypad() *Keypad {
	return &Keypad{}
}

func (pad *Keypad) SetKey(key int, pressed bool) {
	if key < 0 || key >= NUM_KEYS {
		return
	}
	pad.mutex.Lock()
	pad.keys[key] = pressed
	pad.mutex.Unlock()
}

func (pad *Keypad) IsPressed(key int) bool {
	if key < 0 || key >= NUM_KEYS {
		return false
	}
	pad.mutex.Lock()
	defer pad.mutex.Unlock()
	return pad.keys[key]
}

// FirstPressed returns the lowest-indexed key currently held down.
// The wait-for-key instruction resolves ties in index order.
func (pad *Keypad) FirstPressed() (uint8, bool) {
	pad.mutex.Lock()
	defer pad.mutex.Unlock()
	for i := 0; i < NUM_KEYS; i++ {
		if pad.keys[i] {
			return uint8(i), true
		}
	}
	return 0, false
}

// ReleaseAll clears every key flag. Host backends call this for key
// events that do not map to a logical key.
func (pad *Keypad) ReleaseAll() {
	pad.mutex.Lock()
	pad.keys = [NUM_KEYS]bool{}
	pad.mutex.Unlock()
}
