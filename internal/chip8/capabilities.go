package chip8

import "context"

// Display is the 64x32 monochrome framebuffer, indexed [row][column].
// Each cell is 0 or 1.
type Display [DisplayHeight][DisplayWidth]byte

// Keyboard is the host keyboard capability. WaitKey blocks the calling
// goroutine until a key press is observed, or ctx is cancelled (the VM
// cancels ctx promptly once it halts, so a blocked Fx0A returns instead
// of hanging the interpreter forever). IsKeyDown is a non-blocking level
// poll of the current state of one of the 16 hex keys.
type Keyboard interface {
	WaitKey(ctx context.Context) (byte, error)
	IsKeyDown(key byte) bool
}

// Renderer presents a frame. Present is called synchronously after every
// instruction (§5) and must not block the interpreter for longer than a
// display frame; a Present failure is a diagnostic, not fatal (§7).
type Renderer interface {
	Present(display Display) error
}

// Killer polls the host event queue for a quit request. Check is called
// synchronously after every instruction; returning true halts the VM.
type Killer interface {
	Check() bool
}

// Audio is the tone-generator capability. On is requested on the ST
// 0->positive edge, Off on the positive->0 edge (§4.4). A failure from
// either On or Off is printed as a diagnostic and the VM keeps running.
type Audio interface {
	On() error
	Off() error
}

// NopRenderer discards every frame. Useful for headless execution and
// tests that only care about VM state.
type NopRenderer struct{}

// Present implements Renderer.
func (NopRenderer) Present(Display) error { return nil }

// NopKiller never requests a quit.
type NopKiller struct{}

// Check implements Killer.
func (NopKiller) Check() bool { return false }

// NopAudio discards tone on/off requests.
type NopAudio struct{}

// On implements Audio.
func (NopAudio) On() error { return nil }

// Off implements Audio.
func (NopAudio) Off() error { return nil }

// NopKeyboard reports every key up and blocks WaitKey until ctx is done.
// Used by headless callers and as the default for tests that don't drive
// Fx0A/Ex9E/ExA1.
type NopKeyboard struct{}

// WaitKey implements Keyboard.
func (NopKeyboard) WaitKey(ctx context.Context) (byte, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

// IsKeyDown implements Keyboard.
func (NopKeyboard) IsKeyDown(byte) bool { return false }
