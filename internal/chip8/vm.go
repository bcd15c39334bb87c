// Package chip8 implements the CHIP-8 virtual machine: its memory map,
// register file, stack, timer subsystem, and fetch/decode/execute loop.
// The VM itself never touches a window, a keyboard, or an audio device
// directly - those are injected as capability interfaces (Keyboard,
// Renderer, Killer, Audio) so the VM is fully testable headlessly.
package chip8

import (
	"math/rand"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Memory map and machine-width constants, see spec §3.
const (
	MemSize       = 4096
	ProgStart     = 0x0200
	StackSize     = 16
	RegisterCount = 16
	DisplayWidth  = 64
	DisplayHeight = 32
	FontBase      = 0x0000
	FontGlyphSize = 5
	MaxROMSize    = MemSize - ProgStart
)

// VM is a CHIP-8 machine. Registers, RAM, the stack, PC, SP, I, and the
// framebuffer are touched only by the interpreter goroutine running
// inside Exec. DT, ST, and halted are shared with the timer goroutine
// and are accessed exclusively through sync/atomic (§5).
type VM struct {
	v      [RegisterCount]byte
	i      uint16
	pc     uint16
	sp     uint16
	stack  [StackSize]uint16
	ram [MemSize]byte

	display Display

	dt     atomic.Uint32
	st     atomic.Uint32
	halted atomic.Bool

	rng *rand.Rand

	keyboard Keyboard
	renderer Renderer
	killer   Killer
	audio    Audio
}

// NewVM builds a VM with its font loaded and the given ROM placed at
// ProgStart. seed drives the deterministic PRNG used by RND (Cxkk); pass
// a fixed seed from tests for reproducible output (§9 design notes).
func NewVM(rom []byte, keyboard Keyboard, renderer Renderer, killer Killer, audio Audio, seed int64) (*VM, error) {
	if keyboard == nil {
		keyboard = NopKeyboard{}
	}
	if renderer == nil {
		renderer = NopRenderer{}
	}
	if killer == nil {
		killer = NopKiller{}
	}
	if audio == nil {
		audio = NopAudio{}
	}

	vm := &VM{
		pc:       ProgStart,
		rng:      rand.New(rand.NewSource(seed)),
		keyboard: keyboard,
		renderer: renderer,
		killer:   killer,
		audio:    audio,
	}
	copy(vm.ram[FontBase:], FontSet[:])
	if err := vm.LoadROM(rom); err != nil {
		return nil, err
	}
	return vm, nil
}

// LoadROM copies rom into RAM starting at ProgStart. It is exported
// separately from NewVM so tests can hand-assemble a program directly
// into memory without going through a file.
func (vm *VM) LoadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return errors.Errorf("chip8: rom too large: %d bytes, max %d", len(rom), MaxROMSize)
	}
	copy(vm.ram[ProgStart:], rom)
	return nil
}

// Display returns a copy of the current framebuffer.
func (vm *VM) Display() Display {
	return vm.display
}

// Register returns the current value of V[idx].
func (vm *VM) Register(idx byte) byte {
	return vm.v[idx&0xF]
}

// Halted reports whether the VM has stopped executing.
func (vm *VM) Halted() bool {
	return vm.halted.Load()
}

// DelayTimer returns the current value of DT.
func (vm *VM) DelayTimer() byte {
	return byte(vm.dt.Load())
}

// SoundTimer returns the current value of ST.
func (vm *VM) SoundTimer() byte {
	return byte(vm.st.Load())
}

// I returns the current value of the index register.
func (vm *VM) I() uint16 {
	return vm.i
}

// PC returns the current program counter.
func (vm *VM) PC() uint16 {
	return vm.pc
}
