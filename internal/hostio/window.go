// Package hostio adapts a pixelgl window to the chip8.Renderer and
// chip8.Keyboard capability interfaces, grounded on the teacher's own
// internal/pixel package: one embedded window, one hex-key mapping,
// and the same collision of scaling the 64x32 framebuffer up to a much
// larger window.
package hostio

import (
	"context"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"

	"github.com/chippy8/chippy8/internal/chip8"
)

const (
	gridWidth  float64 = chip8.DisplayWidth
	gridHeight float64 = chip8.DisplayHeight

	defaultScreenWidth  float64 = 1024
	defaultScreenHeight float64 = 768
)

// keyMap is the host key -> CHIP-8 key table, per spec.md §6 /
// original_source's main.c SDLK_7..SDLK_PERIOD switch: 7/8/9/0 ->
// 1/2/3/C, u/i/o/p -> 4/5/6/D, j/k/l/; -> 7/8/9/E, n/m/,/. -> A/0/B/F.
// Kept as a package-level value (rather than built inline in NewWindow)
// so it can be asserted against directly in tests without opening a
// window.
var keyMap = map[byte]pixelgl.Button{
	0x1: pixelgl.Key7, 0x2: pixelgl.Key8, 0x3: pixelgl.Key9, 0xC: pixelgl.Key0,
	0x4: pixelgl.KeyU, 0x5: pixelgl.KeyI, 0x6: pixelgl.KeyO, 0xD: pixelgl.KeyP,
	0x7: pixelgl.KeyJ, 0x8: pixelgl.KeyK, 0x9: pixelgl.KeyL, 0xE: pixelgl.KeySemicolon,
	0xA: pixelgl.KeyN, 0x0: pixelgl.KeyM, 0xB: pixelgl.KeyComma, 0xF: pixelgl.KeyPeriod,
}

// Window embeds a pixelgl window and implements chip8.Renderer and
// chip8.Keyboard over it. It is not safe for concurrent use from more
// than one goroutine; pixelgl requires window operations to happen on
// the main thread (use pixelgl.Run / mainthread.Run to host it).
type Window struct {
	*pixelgl.Window
	keyMap map[byte]pixelgl.Button
}

// NewWindow opens a pixelgl window sized for the CHIP-8 framebuffer and
// returns a Window ready to serve as both Renderer and Keyboard.
func NewWindow(title string) (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  title,
		Bounds: pixel.R(0, 0, defaultScreenWidth, defaultScreenHeight),
		VSync:  true,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, err
	}
	return &Window{Window: win, keyMap: keyMap}, nil
}

// Present implements chip8.Renderer: it clears the window, redraws
// every lit cell as a scaled rectangle, and flips the buffer.
func (w *Window) Present(display chip8.Display) error {
	w.Window.Clear(colornames.Black)
	w.UpdateInput()

	draw := imdraw.New(nil)
	draw.Color = pixel.RGB(1, 1, 1)

	bounds := w.Window.Bounds()
	cellW, cellH := bounds.W()/gridWidth, bounds.H()/gridHeight

	for row := 0; row < chip8.DisplayHeight; row++ {
		for col := 0; col < chip8.DisplayWidth; col++ {
			if display[row][col] == 0 {
				continue
			}
			// The framebuffer's row 0 is the top of the display;
			// pixel's Y axis grows upward, so flip it here.
			y := gridHeight - 1 - float64(row)
			draw.Push(pixel.V(cellW*float64(col), cellH*y))
			draw.Push(pixel.V(cellW*float64(col)+cellW, cellH*y+cellH))
			draw.Rectangle(0)
		}
	}

	draw.Draw(w.Window)
	w.Window.Update()
	return nil
}

// IsKeyDown implements chip8.Keyboard as a non-blocking poll of the
// hex key's mapped pixelgl button.
func (w *Window) IsKeyDown(key byte) bool {
	btn, ok := w.keyMap[key]
	if !ok {
		return false
	}
	return w.Window.Pressed(btn)
}

const pollInterval = time.Second / 120

// WaitKey implements chip8.Keyboard by polling every key each tick
// until one is down or ctx is cancelled. pixelgl has no blocking
// key-wait primitive of its own, so Fx0A's wait is built on top of the
// same per-frame Pressed() poll Present already drives.
func (w *Window) WaitKey(ctx context.Context) (byte, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-ticker.C:
			w.UpdateInput()
			for key := byte(0); key < 16; key++ {
				if w.IsKeyDown(key) {
					return key, nil
				}
			}
		}
	}
}
