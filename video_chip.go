// video_chip.go - 64x32 monochrome display chip with XOR sprite compositing

/*
Cosmac Engine - a CHIP-8 virtual console

(c) 2025 - 2026 The Cosmac Engine authors
License: GPLv3 or later
*/

package main

import (
	"sync"
	"time"
)

// VideoChip owns the packed 1-bit framebuffer: 32 rows of 8 bytes, bit 7
// of byte 0 being the top-left pixel. The CPU mutates it through Clear and
// DrawSprite; a 60 Hz refresh goroutine converts it to RGBA and pushes it
// to the active VideoOutput. All pixel state is guarded by the chip mutex
// since the refresh loop runs concurrently with the execution loop.
type VideoChip struct {
	mutex       sync.RWMutex
	fb          [FRAMEBUFFER_SIZE]byte
	wrapSprites bool
	dirty       bool
	started     bool
	done        chan struct{}
	output      VideoOutput
	frame       []byte // RGBA scratch buffer, reused every refresh
}

func NewVideoChip(output VideoOutput) *VideoChip {
	return &VideoChip{
		output: output,
		dirty:  true,
		frame:  make([]byte, DISPLAY_WIDTH*DISPLAY_HEIGHT*4),
	}
}

// SetSpriteWrap selects the horizontal edge policy. The default clips
// sprite bits shifted past column 63; enabling wrap folds them into
// column 0 of the same row instead.
func (chip *VideoChip) SetSpriteWrap(wrap bool) {
	chip.mutex.Lock()
	chip.wrapSprites = wrap
	chip.mutex.Unlock()
}

// Start launches the refresh loop. Safe to call once per chip.
func (chip *VideoChip) Start() {
	chip.mutex.Lock()
	if chip.started {
		chip.mutex.Unlock()
		return
	}
	chip.started = true
	chip.done = make(chan struct{})
	chip.mutex.Unlock()

	go chip.refreshLoop()
}

func (chip *VideoChip) Stop() {
	chip.mutex.Lock()
	if !chip.started {
		chip.mutex.Unlock()
		return
	}
	chip.started = false
	close(chip.done)
	chip.mutex.Unlock()
}

// Clear zeroes the whole framebuffer.
func (chip *VideoChip) Clear() {
	chip.mutex.Lock()
	chip.fb = [FRAMEBUFFER_SIZE]byte{}
	chip.dirty = true
	chip.mutex.Unlock()
}

// DrawSprite XORs up to 15 sprite rows into the framebuffer with the
// origin taken modulo the display size. Each row lands in one or two
// adjacent bytes depending on x alignment; rows past the bottom edge wrap
// vertically. The return value reports collision: true when any pixel
// that was set before the draw is unset by it. The comparison is
// bit-exact - a single colliding bit is detected no matter what the
// other seven bits of its byte do.
func (chip *VideoChip) DrawSprite(sprite []byte, x, y int) bool {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()

	if len(sprite) > MAX_SPRITE_ROWS {
		sprite = sprite[:MAX_SPRITE_ROWS]
	}
	x = ((x % DISPLAY_WIDTH) + DISPLAY_WIDTH) % DISPLAY_WIDTH
	y = ((y % DISPLAY_HEIGHT) + DISPLAY_HEIGHT) % DISPLAY_HEIGHT

	collision := false
	shift := x % 8
	col := x / 8

	for i, row := range sprite {
		line := ((y + i) % DISPLAY_HEIGHT) * ROW_BYTES

		high := row >> shift
		idx := line + col
		if chip.fb[idx]&high != 0 {
			collision = true
		}
		chip.fb[idx] ^= high

		if shift == 0 {
			continue
		}
		low := row << (8 - shift)
		next := col + 1
		if next == ROW_BYTES {
			if !chip.wrapSprites {
				continue // clipped at column 63
			}
			next = 0
		}
		idx = line + next
		if chip.fb[idx]&low != 0 {
			collision = true
		}
		chip.fb[idx] ^= low
	}

	chip.dirty = true
	return collision
}

// Pixel reports whether the pixel at (x, y) is lit.
func (chip *VideoChip) Pixel(x, y int) bool {
	chip.mutex.RLock()
	defer chip.mutex.RUnlock()
	if x < 0 || x >= DISPLAY_WIDTH || y < 0 || y >= DISPLAY_HEIGHT {
		return false
	}
	return chip.fb[y*ROW_BYTES+x/8]&(0x80>>(x%8)) != 0
}

// Snapshot returns a copy of the packed framebuffer for host collaborators.
func (chip *VideoChip) Snapshot() []byte {
	chip.mutex.RLock()
	defer chip.mutex.RUnlock()
	out := make([]byte, FRAMEBUFFER_SIZE)
	copy(out, chip.fb[:])
	return out
}

func (chip *VideoChip) refreshLoop() {
	ticker := time.NewTicker(time.Second / TIMER_RATE_HZ)
	defer ticker.Stop()

	for {
		select {
		case <-chip.done:
			return
		case <-ticker.C:
			chip.mutex.Lock()
			if !chip.dirty {
				chip.mutex.Unlock()
				continue
			}
			chip.renderRGBALocked()
			chip.dirty = false
			chip.mutex.Unlock()

			// Dropped frames are not an error worth surfacing; the next
			// dirty tick retries.
			_ = chip.output.UpdateFrame(chip.frame)
		}
	}
}

// renderRGBALocked expands the packed bitmap into the RGBA scratch buffer.
// Caller holds the chip mutex.
func (chip *VideoChip) renderRGBALocked() {
	for y := 0; y < DISPLAY_HEIGHT; y++ {
		for x := 0; x < DISPLAY_WIDTH; x++ {
			var v byte
			if chip.fb[y*ROW_BYTES+x/8]&(0x80>>(x%8)) != 0 {
				v = 0xFF
			}
			off := (y*DISPLAY_WIDTH + x) * 4
			chip.frame[off] = v
			chip.frame[off+1] = v
			chip.frame[off+2] = v
			chip.frame[off+3] = 0xFF
		}
	}
}
