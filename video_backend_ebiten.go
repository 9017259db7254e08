// video_backend_ebiten.go - Desktop video and keypad backend using Ebiten

/*
Cosmac Engine - a CHIP-8 virtual console

(c) 2025 - 2026 The Cosmac Engine authors
License: GPLv3 or later
*/

package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

// keypadKeys maps host keys onto the sixteen logical keypad keys. The
// layout is literal: the digit row covers 0-9 and the letter keys A-F
// cover the remaining six.
var keypadKeys = map[ebiten.Key]int{
	ebiten.Key0: 0x0,
	ebiten.Key1: 0x1,
	ebiten.Key2: 0x2,
	ebiten.Key3: 0x3,
	ebiten.Key4: 0x4,
	ebiten.Key5: 0x5,
	ebiten.Key6: 0x6,
	ebiten.Key7: 0x7,
	ebiten.Key8: 0x8,
	ebiten.Key9: 0x9,
	ebiten.KeyA: 0xA,
	ebiten.KeyB: 0xB,
	ebiten.KeyC: 0xC,
	ebiten.KeyD: 0xD,
	ebiten.KeyE: 0xE,
	ebiten.KeyF: 0xF,
}

// hostKeys are keys the window itself consumes. Pressing one never
// counts as an unrecognised key for the keypad release rule.
var hostKeys = map[ebiten.Key]bool{
	ebiten.KeyEscape: true,
	ebiten.KeyF8:     true,
	ebiten.KeyF9:     true,
	ebiten.KeyF11:    true,
	ebiten.KeyF12:    true,
}

// EbitenOutput renders the framebuffer in a desktop window and feeds
// host keyboard state into the keypad. The Ebiten game loop runs on its
// own goroutine; shared fields are guarded by mutex.
type EbitenOutput struct {
	mutex   sync.RWMutex
	running bool
	config  DisplayConfig

	window      *ebiten.Image
	frameBuffer []byte
	frameCount  uint64

	fullscreen    bool
	showStatusBar bool

	clipboardOnce sync.Once
	clipboardOK   bool

	keyScratch []ebiten.Key

	pad  *Keypad
	quit func()

	vsyncChan chan struct{}
	done      chan struct{}
}

// NewEbitenOutput creates a desktop video output with default geometry.
// The window does not appear until Start is called.
func NewEbitenOutput() (VideoOutput, error) {
	config := DefaultDisplayConfig()
	eo := &EbitenOutput{
		config:      config,
		frameBuffer: make([]byte, config.Width*config.Height*4),
		vsyncChan:   make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
	return eo, nil
}

// Start opens the window and launches the Ebiten game loop. It blocks
// until the first frame has been presented so callers observe a live
// display on return.
func (eo *EbitenOutput) Start() error {
	eo.mutex.Lock()
	if eo.running {
		eo.mutex.Unlock()
		return nil
	}
	eo.running = true
	width := eo.config.Width * eo.config.Scale
	height := eo.config.Height * eo.config.Scale
	title := eo.config.Title
	eo.mutex.Unlock()

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)

	go func() {
		defer close(eo.done)
		err := ebiten.RunGame(eo)
		eo.mutex.Lock()
		eo.running = false
		eo.mutex.Unlock()
		if err != nil {
			fmt.Fprintf(os.Stderr, "ebiten: %v\n", err)
		}
	}()

	// Wait for the first Draw so the machine never races a window that
	// is still opening.
	select {
	case <-eo.vsyncChan:
	case <-eo.done:
		return &VideoError{Operation: "start", Details: "display loop exited before the first frame"}
	}
	return nil
}

// Stop asks the game loop to exit on its next update.
func (eo *EbitenOutput) Stop() error {
	eo.mutex.Lock()
	eo.running = false
	eo.mutex.Unlock()
	return nil
}

// Close waits for the game loop goroutine to finish.
func (eo *EbitenOutput) Close() error {
	eo.mutex.RLock()
	running := eo.running
	eo.mutex.RUnlock()
	if running {
		_ = eo.Stop()
	}
	select {
	case <-eo.done:
	case <-time.After(time.Second):
	}
	return nil
}

func (eo *EbitenOutput) IsStarted() bool {
	eo.mutex.RLock()
	defer eo.mutex.RUnlock()
	return eo.running
}

// SetDisplayConfig adjusts geometry. It must be called before Start;
// the window size is fixed once the game loop is running.
func (eo *EbitenOutput) SetDisplayConfig(config DisplayConfig) error {
	eo.mutex.Lock()
	defer eo.mutex.Unlock()
	if eo.running {
		return &VideoError{Operation: "configure", Details: "display already started"}
	}
	if config.Width <= 0 || config.Height <= 0 || config.Scale <= 0 {
		return &VideoError{
			Operation: "configure",
			Details:   fmt.Sprintf("invalid geometry %dx%d scale %d", config.Width, config.Height, config.Scale),
		}
	}
	eo.config = config
	eo.frameBuffer = make([]byte, config.Width*config.Height*4)
	eo.window = nil
	return nil
}

func (eo *EbitenOutput) GetDisplayConfig() DisplayConfig {
	eo.mutex.RLock()
	defer eo.mutex.RUnlock()
	return eo.config
}

// UpdateFrame stores a new RGBA frame for the next Draw.
func (eo *EbitenOutput) UpdateFrame(frame []byte) error {
	eo.mutex.Lock()
	defer eo.mutex.Unlock()
	if len(frame) != len(eo.frameBuffer) {
		return &VideoError{
			Operation: "frame update",
			Details:   fmt.Sprintf("frame size %d, want %d", len(frame), len(eo.frameBuffer)),
		}
	}
	copy(eo.frameBuffer, frame)
	return nil
}

func (eo *EbitenOutput) GetFrameCount() uint64 {
	eo.mutex.RLock()
	defer eo.mutex.RUnlock()
	return eo.frameCount
}

func (eo *EbitenOutput) SetKeypad(pad *Keypad) {
	eo.mutex.Lock()
	defer eo.mutex.Unlock()
	eo.pad = pad
}

func (eo *EbitenOutput) SetQuitHandler(quit func()) {
	eo.mutex.Lock()
	defer eo.mutex.Unlock()
	eo.quit = quit
}

func (eo *EbitenOutput) requestQuit() {
	eo.mutex.RLock()
	quit := eo.quit
	eo.mutex.RUnlock()
	if quit != nil {
		quit()
	}
}

// Update handles window keys and keypad state once per tick.
func (eo *EbitenOutput) Update() error {
	if ebiten.IsWindowBeingClosed() {
		eo.requestQuit()
		_ = eo.Stop()
		return ebiten.Termination
	}
	eo.mutex.RLock()
	running := eo.running
	eo.mutex.RUnlock()
	if !running {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		eo.requestQuit()
		_ = eo.Stop()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		eo.toggleFullscreen()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		eo.mutex.Lock()
		eo.showStatusBar = !eo.showStatusBar
		eo.mutex.Unlock()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		eo.copyScreenshotToClipboard()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF8) {
		eo.saveScreenshot()
	}

	eo.updateKeypad()
	return nil
}

// updateKeypad polls the mapped keys and applies the release rule:
// pressing any key outside the map and the host keys clears every
// keypad flag.
func (eo *EbitenOutput) updateKeypad() {
	eo.mutex.RLock()
	pad := eo.pad
	eo.mutex.RUnlock()
	if pad == nil {
		return
	}

	for key, idx := range keypadKeys {
		pad.SetKey(idx, ebiten.IsKeyPressed(key))
	}

	eo.keyScratch = inpututil.AppendJustPressedKeys(eo.keyScratch[:0])
	for _, key := range eo.keyScratch {
		if _, mapped := keypadKeys[key]; mapped {
			continue
		}
		if hostKeys[key] {
			continue
		}
		pad.ReleaseAll()
		return
	}
}

func (eo *EbitenOutput) toggleFullscreen() {
	eo.mutex.Lock()
	eo.fullscreen = !eo.fullscreen
	fullscreen := eo.fullscreen
	eo.mutex.Unlock()
	ebiten.SetFullscreen(fullscreen)
}

// Draw presents the most recent frame scaled up to the window size.
func (eo *EbitenOutput) Draw(screen *ebiten.Image) {
	eo.mutex.Lock()
	if eo.window == nil {
		eo.window = ebiten.NewImage(eo.config.Width, eo.config.Height)
	}
	eo.window.WritePixels(eo.frameBuffer)
	scale := eo.config.Scale
	showStatus := eo.showStatusBar
	eo.frameCount++
	eo.mutex.Unlock()

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(eo.window, opts)

	if showStatus {
		eo.drawStatusBar(screen)
	}

	select {
	case eo.vsyncChan <- struct{}{}:
	default:
	}
}

// Layout fixes the logical screen at the scaled display size so each
// framebuffer pixel maps to an integer block of window pixels.
func (eo *EbitenOutput) Layout(outsideWidth, outsideHeight int) (int, int) {
	eo.mutex.RLock()
	defer eo.mutex.RUnlock()
	return eo.config.Width * eo.config.Scale, eo.config.Height * eo.config.Scale
}

func (eo *EbitenOutput) drawStatusBar(screen *ebiten.Image) {
	eo.mutex.RLock()
	config := eo.config
	frames := eo.frameCount
	eo.mutex.RUnlock()

	status := fmt.Sprintf("%dx%d x%d  frame %d  %.0f fps",
		config.Width, config.Height, config.Scale, frames, ebiten.CurrentFPS())
	face := basicfont.Face7x13
	x := 4
	y := screen.Bounds().Dy() - 6
	shadow := color.RGBA{0, 0, 0, 255}
	ink := color.RGBA{0, 255, 0, 255}
	text.Draw(screen, status, face, x+1, y+1, shadow)
	text.Draw(screen, status, face, x, y, ink)
}

// frameImage copies the current frame into a standalone RGBA image.
func (eo *EbitenOutput) frameImage() *image.RGBA {
	eo.mutex.RLock()
	defer eo.mutex.RUnlock()
	img := image.NewRGBA(image.Rect(0, 0, eo.config.Width, eo.config.Height))
	copy(img.Pix, eo.frameBuffer)
	return img
}

// saveScreenshot writes the current frame as a timestamped PNG in the
// working directory.
func (eo *EbitenOutput) saveScreenshot() {
	img := eo.frameImage()
	name := fmt.Sprintf("cosmac-%s.png", time.Now().Format("20060102-150405"))
	f, err := os.Create(name)
	if err != nil {
		return
	}
	defer f.Close()
	_ = png.Encode(f, img)
}

// copyScreenshotToClipboard encodes the current frame as PNG and puts
// it on the system clipboard. Clipboard support is probed once; on
// platforms without it the key silently does nothing.
func (eo *EbitenOutput) copyScreenshotToClipboard() {
	eo.clipboardOnce.Do(func() {
		eo.clipboardOK = clipboard.Init() == nil
	})
	if !eo.clipboardOK {
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, eo.frameImage()); err != nil {
		return
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
}
