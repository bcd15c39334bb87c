package chip8

import (
	"context"
	"time"

	"github.com/chippy8/chippy8/internal/diag"
)

// tickRate is the 60 Hz rate at which DT and ST decrement and the sound
// edge is evaluated (§4.4).
const tickRate = time.Second / 60

// Exec runs the fetch/decode/execute loop until the program halts, the
// ROM runs off the end of memory, or ctx is cancelled. It starts a
// second goroutine - the timer driver - that ticks DT and ST at 60 Hz
// and drives the Audio capability on the ST edge; the interpreter and
// the timer only ever touch DT, ST, and halted through sync/atomic
// (§5). Exec returns nil on a clean EXIT (00FD) or context cancellation,
// and a non-nil error on any of the fatal conditions in spec §7.
func (vm *VM) Exec(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		vm.runTicker(ctx)
	}()

	err := vm.runInterpreter(ctx)
	vm.halted.Store(true)
	cancel()
	<-done
	return err
}

func (vm *VM) runInterpreter(ctx context.Context) error {
	vm.pc = ProgStart
	for vm.pc+2 < MemSize && !vm.halted.Load() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		ins := uint16(vm.ram[vm.pc])<<8 | uint16(vm.ram[vm.pc+1])
		vm.pc += 2

		if err := vm.dispatch(ctx, ins); err != nil {
			if err == errExit {
				return nil
			}
			return err
		}

		if err := vm.renderer.Present(vm.display); err != nil {
			// Renderer failure is a diagnostic, not fatal (§7).
			diag.Printf("render present: %v", err)
		}
		if vm.killer.Check() {
			return nil
		}
	}
	return nil
}

// runTicker is the timer driver. It only reads halted; it decrements DT
// and ST, which the interpreter also reads (Fx07) and sets (Fx15/Fx18).
// Every access goes through atomics so no torn reads occur.
func (vm *VM) runTicker(ctx context.Context) {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	soundWasOn := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if vm.halted.Load() {
			return
		}

		if dt := vm.dt.Load(); dt > 0 {
			vm.dt.Store(dt - 1)
		}

		st := vm.st.Load()
		soundIsOn := st > 0
		if soundIsOn && !soundWasOn {
			if err := vm.audio.On(); err != nil {
				diag.Printf("audio on: %v", err)
			}
		} else if !soundIsOn && soundWasOn {
			if err := vm.audio.Off(); err != nil {
				diag.Printf("audio off: %v", err)
			}
		}
		soundWasOn = soundIsOn
		if st > 0 {
			vm.st.Store(st - 1)
		}
	}
}
