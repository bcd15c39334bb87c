package chip8

import (
	"context"
	"testing"
	"time"
)

func newTestVM(t *testing.T, rom []byte) *VM {
	t.Helper()
	vm, err := NewVM(rom, NopKeyboard{}, NopRenderer{}, NopKiller{}, NopAudio{}, 1)
	if err != nil {
		t.Fatalf("NewVM: %v", err)
	}
	return vm
}

func (vm *VM) step(t *testing.T) {
	t.Helper()
	ins := uint16(vm.ram[vm.pc])<<8 | uint16(vm.ram[vm.pc+1])
	vm.pc += 2
	if err := vm.dispatch(context.Background(), ins); err != nil && err != errExit {
		t.Fatalf("dispatch 0x%04X: %v", ins, err)
	}
}

func TestNewVMLoadsFontAndROM(t *testing.T) {
	vm := newTestVM(t, []byte{0x00, 0xE0})
	if vm.ram[0] != 0xF0 {
		t.Errorf("font not loaded at FontBase, ram[0] = %#x", vm.ram[0])
	}
	if vm.ram[ProgStart] != 0x00 || vm.ram[ProgStart+1] != 0xE0 {
		t.Errorf("rom not loaded at ProgStart")
	}
	if vm.pc != ProgStart {
		t.Errorf("pc = %#x, want %#x", vm.pc, ProgStart)
	}
}

func TestPCAdvancesByTwoForOrdinaryInstructions(t *testing.T) {
	vm := newTestVM(t, []byte{0x60, 0x05, 0x61, 0x06})
	pcBefore := vm.pc
	vm.step(t) // LD V0, 0x05
	if vm.pc != pcBefore+2 {
		t.Errorf("pc = %#x, want %#x", vm.pc, pcBefore+2)
	}
}

func TestLDAndJPLoop(t *testing.T) {
	// start: LD V0, 0x05 ; JP start
	vm := newTestVM(t, []byte{0x60, 0x05, 0x12, 0x00})
	vm.step(t)
	if vm.v[0] != 0x05 {
		t.Fatalf("V0 = %#x, want 0x05", vm.v[0])
	}
	vm.step(t)
	if vm.pc != ProgStart {
		t.Fatalf("pc = %#x, want loop back to %#x", vm.pc, ProgStart)
	}
	vm.step(t)
	if vm.v[0] != 0x05 {
		t.Fatalf("V0 should stay 0x05 across the loop, got %#x", vm.v[0])
	}
}

func TestDrawSinglePixel(t *testing.T) {
	// LD V0,0; LD V1,0; LD I,sprite; DRW V0,V1,1; EXIT; sprite: .SB 0x80
	rom := []byte{
		0x60, 0x00,
		0x61, 0x00,
		0xA2, 0x0A,
		0xD0, 0x11,
		0x00, 0xFD,
		0x80,
	}
	vm := newTestVM(t, rom)
	for i := 0; i < 4; i++ {
		vm.step(t)
	}
	if vm.display[0][0] != 1 {
		t.Errorf("display[0][0] = %d, want 1", vm.display[0][0])
	}
	for y := 0; y < DisplayHeight; y++ {
		for x := 0; x < DisplayWidth; x++ {
			if x == 0 && y == 0 {
				continue
			}
			if vm.display[y][x] != 0 {
				t.Fatalf("display[%d][%d] = %d, want 0", y, x, vm.display[y][x])
			}
		}
	}
	if vm.v[0xF] != 0 {
		t.Errorf("VF = %d, want 0 (no collision on first draw)", vm.v[0xF])
	}
}

func TestDrawCollision(t *testing.T) {
	rom := []byte{
		0x60, 0x00,
		0x61, 0x00,
		0xA2, 0x0C,
		0xD0, 0x11,
		0xD0, 0x11,
		0x00, 0xFD,
		0x80,
	}
	vm := newTestVM(t, rom)
	for i := 0; i < 6; i++ {
		vm.step(t)
	}
	if vm.display[0][0] != 0 {
		t.Errorf("display[0][0] = %d, want 0 after second XOR draw", vm.display[0][0])
	}
	if vm.v[0xF] != 1 {
		t.Errorf("VF = %d, want 1 (collision on second draw)", vm.v[0xF])
	}
}

func TestDrawClipsInsteadOfWrapping(t *testing.T) {
	rom := []byte{
		0x60, 63, // LD V0, 63
		0x61, 31, // LD V1, 31
		0xA2, 0x0A,
		0xD0, 0x18, // DRW V0,V1,8 (full byte sprite, would wrap if not clipped)
		0x00, 0xFD,
		0xFF,
	}
	vm := newTestVM(t, rom)
	for i := 0; i < 4; i++ {
		vm.step(t)
	}
	if vm.display[31][63] != 1 {
		t.Errorf("display[31][63] = %d, want 1", vm.display[31][63])
	}
	if vm.display[31][0] != 0 {
		t.Errorf("clipped draw must not wrap to column 0, got %d", vm.display[31][0])
	}
}

func TestBCD(t *testing.T) {
	vm := newTestVM(t, nil)
	vm.v[2] = 123
	vm.i = 0x300
	vm.dispatch(context.Background(), 0xF233) // LD B, V2
	if vm.ram[0x300] != 1 || vm.ram[0x301] != 2 || vm.ram[0x302] != 3 {
		t.Errorf("bcd = %d %d %d, want 1 2 3", vm.ram[0x300], vm.ram[0x301], vm.ram[0x302])
	}
}

func TestSkipOnEqual(t *testing.T) {
	rom := []byte{0x30, 0x42, 0x60, 0x01, 0x60, 0x02}
	vm := newTestVM(t, rom)
	vm.v[0] = 0x42
	vm.step(t) // SE V0, 0x42 -> should skip LD V0,0x01
	vm.step(t) // LD V0, 0x02
	if vm.v[0] != 0x02 {
		t.Errorf("V0 = %#x, want 0x02", vm.v[0])
	}
}

func TestStackDiscipline(t *testing.T) {
	vm := newTestVM(t, nil)
	for i := 0; i < StackSize-1; i++ {
		if err := vm.opCALL(0x300); err != nil {
			t.Fatalf("CALL #%d: %v", i, err)
		}
	}
	if err := vm.opCALL(0x300); err == nil {
		t.Fatalf("16th nested CALL should fail")
	}
	pcAfterOutermostCall := vm.stack[0]
	for i := 0; i < StackSize-1; i++ {
		if err := vm.opRET(); err != nil {
			t.Fatalf("RET #%d: %v", i, err)
		}
	}
	if vm.sp != 0 {
		t.Errorf("sp = %d, want 0", vm.sp)
	}
	if vm.pc != pcAfterOutermostCall {
		t.Errorf("pc = %#x, want %#x", vm.pc, pcAfterOutermostCall)
	}
	if err := vm.opRET(); err == nil {
		t.Fatalf("RET with empty stack should fail")
	}
}

func TestADDCarryFlag(t *testing.T) {
	tests := []struct {
		vx, vy   byte
		wantV    byte
		wantFlag byte
	}{
		{0xFF, 0x01, 0x00, 1},
		{0x01, 0x01, 0x02, 0},
	}
	for _, tt := range tests {
		vm := newTestVM(t, nil)
		vm.v[0] = tt.vx
		vm.v[1] = tt.vy
		vm.opADDReg(0, 1)
		if vm.v[0] != tt.wantV {
			t.Errorf("V0 = %#x, want %#x", vm.v[0], tt.wantV)
		}
		if vm.v[0xF] != tt.wantFlag {
			t.Errorf("VF = %d, want %d", vm.v[0xF], tt.wantFlag)
		}
	}
}

func TestSUBBorrowFlag(t *testing.T) {
	vm := newTestVM(t, nil)
	vm.v[0] = 5
	vm.v[1] = 3
	vm.opSUB(0, 1)
	if vm.v[0] != 2 || vm.v[0xF] != 1 {
		t.Errorf("V0=%d VF=%d, want V0=2 VF=1", vm.v[0], vm.v[0xF])
	}

	vm2 := newTestVM(t, nil)
	vm2.v[0] = 3
	vm2.v[1] = 5
	vm2.opSUB(0, 1)
	if vm2.v[0] != 254 || vm2.v[0xF] != 0 {
		t.Errorf("V0=%d VF=%d, want V0=254 VF=0", vm2.v[0], vm2.v[0xF])
	}
}

func TestSHRIgnoresVy(t *testing.T) {
	vm := newTestVM(t, nil)
	vm.v[0] = 0x03
	vm.v[1] = 0xFF
	vm.opSHR(0)
	if vm.v[0] != 0x01 || vm.v[0xF] != 1 {
		t.Errorf("V0=%#x VF=%d, want 0x01 1", vm.v[0], vm.v[0xF])
	}
}

func TestLDFVxCanonicalGlyph(t *testing.T) {
	vm := newTestVM(t, nil)
	for glyph := byte(0); glyph <= 0xF; glyph++ {
		vm.v[0] = glyph
		vm.opLDFVx(0)
		want := FontSet[int(glyph)*FontGlyphSize : int(glyph)*FontGlyphSize+FontGlyphSize]
		got := vm.ram[vm.i : vm.i+FontGlyphSize]
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("glyph %d byte %d = %#x, want %#x", glyph, i, got[i], want[i])
			}
		}
	}
}

func TestLDVxIInclusiveOfX(t *testing.T) {
	vm := newTestVM(t, nil)
	vm.i = 0x300
	for i := 0; i < 4; i++ {
		vm.ram[0x300+i] = byte(0x10 + i)
	}
	vm.opLDVxI(3)
	for i := 0; i <= 3; i++ {
		if vm.v[i] != byte(0x10+i) {
			t.Errorf("V%d = %#x, want %#x", i, vm.v[i], 0x10+i)
		}
	}
}

func TestExecHaltsOnEXIT(t *testing.T) {
	vm := newTestVM(t, []byte{0x00, 0xFD})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := vm.Exec(ctx); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if !vm.Halted() {
		t.Errorf("vm should be halted after EXIT")
	}
}

func TestTimerDriverDecrementsAt60Hz(t *testing.T) {
	vm := newTestVM(t, []byte{0x00, 0xFD})
	vm.dt.Store(5)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		vm.runTicker(ctx)
	}()
	time.Sleep(tickRate*3 + tickRate/2)
	cancel()
	<-done
	if got := vm.DelayTimer(); got == 5 {
		t.Errorf("DT did not decrement, still %d", got)
	}
}

func TestInvalidOpcodeIsFatal(t *testing.T) {
	vm := newTestVM(t, nil)
	if err := vm.dispatch(context.Background(), 0x8008); err == nil {
		t.Fatalf("expected error for invalid 8xy8 sub-opcode")
	}
}

func TestJPOutOfRangeIsFatal(t *testing.T) {
	vm := newTestVM(t, nil)
	if err := vm.opJP(MemSize); err == nil {
		t.Fatalf("expected error for JP past end of memory")
	}
}
