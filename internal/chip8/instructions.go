package chip8

import (
	"context"

	"github.com/chippy8/chippy8/internal/diag"
)

// dispatch decodes ins by its high nibble and then by sub-nibble or low
// byte as required (§4.2), mutating vm and returning any fatal error.
// errExit unwinds the caller's loop on 00FD without being treated as a
// fatal condition.
func (vm *VM) dispatch(ctx context.Context, ins uint16) error {
	x := byte(ins>>8) & 0xF
	y := byte(ins>>4) & 0xF
	n := byte(ins) & 0xF
	kk := byte(ins)
	nnn := ins & 0x0FFF

	switch ins & 0xF000 {
	case 0x0000:
		switch ins {
		case 0x00E0:
			vm.opCLS()
		case 0x00EE:
			return vm.opRET()
		case 0x00FD:
			return errExit
		default:
			diagUnknown(ins)
		}
	case 0x1000:
		return vm.opJP(nnn)
	case 0x2000:
		return vm.opCALL(nnn)
	case 0x3000:
		vm.opSEImm(x, kk)
	case 0x4000:
		vm.opSNEImm(x, kk)
	case 0x5000:
		vm.opSEReg(x, y)
	case 0x6000:
		vm.opLDImm(x, kk)
	case 0x7000:
		vm.opADDImm(x, kk)
	case 0x8000:
		switch n {
		case 0x0:
			vm.opLDReg(x, y)
		case 0x1:
			vm.opOR(x, y)
		case 0x2:
			vm.opAND(x, y)
		case 0x3:
			vm.opXOR(x, y)
		case 0x4:
			vm.opADDReg(x, y)
		case 0x5:
			vm.opSUB(x, y)
		case 0x6:
			vm.opSHR(x)
		case 0x7:
			vm.opSUBN(x, y)
		case 0xE:
			vm.opSHL(x)
		default:
			return &InvalidOpcodeError{Opcode: ins}
		}
	case 0x9000:
		vm.opSNEReg(x, y)
	case 0xA000:
		vm.opLDI(nnn)
	case 0xB000:
		return vm.opJPV0(nnn)
	case 0xC000:
		vm.opRND(x, kk)
	case 0xD000:
		vm.opDRW(x, y, n)
	case 0xE000:
		switch kk {
		case 0x9E:
			vm.opSKP(x)
		case 0xA1:
			vm.opSKNP(x)
		default:
			return &InvalidOpcodeError{Opcode: ins}
		}
	case 0xF000:
		switch kk {
		case 0x07:
			vm.opLDVxDT(x)
		case 0x0A:
			return vm.opLDVxK(ctx, x)
		case 0x15:
			vm.opLDDTVx(x)
		case 0x18:
			vm.opLDSTVx(x)
		case 0x1E:
			vm.opADDIVx(x)
		case 0x29:
			vm.opLDFVx(x)
		case 0x33:
			return vm.opLDBVx(x)
		case 0x55:
			return vm.opLDIVx(x)
		case 0x65:
			return vm.opLDVxI(x)
		default:
			return &InvalidOpcodeError{Opcode: ins}
		}
	default:
		return &InvalidOpcodeError{Opcode: ins}
	}
	return nil
}

func diagUnknown(ins uint16) {
	diag.Printf("unrecognized instruction: 0x%04X", ins)
}

// 00E0 - CLS
func (vm *VM) opCLS() {
	vm.display = Display{}
}

// 00EE - RET
func (vm *VM) opRET() error {
	if vm.sp == 0 {
		return &StackError{Op: "RET", SP: vm.sp}
	}
	vm.sp--
	vm.pc = vm.stack[vm.sp]
	return nil
}

// 1nnn - JP nnn
func (vm *VM) opJP(nnn uint16) error {
	if nnn >= MemSize {
		return &MemoryError{Op: "JP", Address: nnn}
	}
	vm.pc = nnn
	return nil
}

// 2nnn - CALL nnn. At most StackSize-1 calls may be nested; the next
// one fails.
func (vm *VM) opCALL(nnn uint16) error {
	if vm.sp >= StackSize-1 {
		return &StackError{Op: "CALL", SP: vm.sp}
	}
	if nnn >= MemSize {
		return &MemoryError{Op: "CALL", Address: nnn}
	}
	vm.stack[vm.sp] = vm.pc
	vm.sp++
	vm.pc = nnn
	return nil
}

// 3xkk - SE Vx, kk
func (vm *VM) opSEImm(x, kk byte) {
	if vm.v[x] == kk {
		vm.pc += 2
	}
}

// 4xkk - SNE Vx, kk
func (vm *VM) opSNEImm(x, kk byte) {
	if vm.v[x] != kk {
		vm.pc += 2
	}
}

// 5xy0 - SE Vx, Vy
func (vm *VM) opSEReg(x, y byte) {
	if vm.v[x] == vm.v[y] {
		vm.pc += 2
	}
}

// 6xkk - LD Vx, kk
func (vm *VM) opLDImm(x, kk byte) {
	vm.v[x] = kk
}

// 7xkk - ADD Vx, kk (VF unchanged)
func (vm *VM) opADDImm(x, kk byte) {
	vm.v[x] += kk
}

// 8xy0 - LD Vx, Vy
func (vm *VM) opLDReg(x, y byte) {
	vm.v[x] = vm.v[y]
}

// 8xy1 - OR Vx, Vy
func (vm *VM) opOR(x, y byte) {
	vm.v[x] |= vm.v[y]
}

// 8xy2 - AND Vx, Vy
func (vm *VM) opAND(x, y byte) {
	vm.v[x] &= vm.v[y]
}

// 8xy3 - XOR Vx, Vy
func (vm *VM) opXOR(x, y byte) {
	vm.v[x] ^= vm.v[y]
}

// 8xy4 - ADD Vx, Vy; VF = carry
func (vm *VM) opADDReg(x, y byte) {
	sum := uint16(vm.v[x]) + uint16(vm.v[y])
	vm.v[x] = byte(sum)
	vm.v[0xF] = boolByte(sum > 0xFF)
}

// 8xy5 - SUB Vx, Vy; VF = not-borrow (Vx > Vy)
func (vm *VM) opSUB(x, y byte) {
	borrowFlag := boolByte(vm.v[x] > vm.v[y])
	vm.v[x] = vm.v[x] - vm.v[y]
	vm.v[0xF] = borrowFlag
}

// 8xy6 - SHR Vx (Vy ignored, per the quirk chosen in §4.2)
func (vm *VM) opSHR(x byte) {
	lsb := vm.v[x] & 0x1
	vm.v[x] >>= 1
	vm.v[0xF] = lsb
}

// 8xy7 - SUBN Vx, Vy; VF = not-borrow (Vy > Vx)
func (vm *VM) opSUBN(x, y byte) {
	borrowFlag := boolByte(vm.v[y] > vm.v[x])
	vm.v[x] = vm.v[y] - vm.v[x]
	vm.v[0xF] = borrowFlag
}

// 8xyE - SHL Vx (Vy ignored, per the quirk chosen in §4.2)
func (vm *VM) opSHL(x byte) {
	msb := (vm.v[x] >> 7) & 0x1
	vm.v[x] <<= 1
	vm.v[0xF] = msb
}

// 9xy0 - SNE Vx, Vy
func (vm *VM) opSNEReg(x, y byte) {
	if vm.v[x] != vm.v[y] {
		vm.pc += 2
	}
}

// Annn - LD I, nnn
func (vm *VM) opLDI(nnn uint16) {
	vm.i = nnn
}

// Bnnn - JP V0, nnn
func (vm *VM) opJPV0(nnn uint16) error {
	target := nnn + uint16(vm.v[0])
	if target < ProgStart || target >= MemSize {
		return &MemoryError{Op: "JP V0", Address: target}
	}
	vm.pc = target
	return nil
}

// Cxkk - RND Vx, kk
func (vm *VM) opRND(x, kk byte) {
	vm.v[x] = byte(vm.rng.Intn(256)) & kk
}

// Ex9E - SKP Vx
func (vm *VM) opSKP(x byte) {
	if vm.keyboard.IsKeyDown(vm.v[x]) {
		vm.pc += 2
	}
}

// ExA1 - SKNP Vx
func (vm *VM) opSKNP(x byte) {
	if !vm.keyboard.IsKeyDown(vm.v[x]) {
		vm.pc += 2
	}
}

// Fx07 - LD Vx, DT
func (vm *VM) opLDVxDT(x byte) {
	vm.v[x] = vm.DelayTimer()
}

// Fx0A - LD Vx, K: blocks until a key press; if ctx is cancelled first
// (the VM halting out from under a blocked wait) it returns quietly
// without mutating Vx.
func (vm *VM) opLDVxK(ctx context.Context, x byte) error {
	key, err := vm.keyboard.WaitKey(ctx)
	if err != nil {
		return nil
	}
	vm.v[x] = key
	return nil
}

// Fx15 - LD DT, Vx
func (vm *VM) opLDDTVx(x byte) {
	vm.dt.Store(uint32(vm.v[x]))
}

// Fx18 - LD ST, Vx
func (vm *VM) opLDSTVx(x byte) {
	vm.st.Store(uint32(vm.v[x]))
}

// Fx1E - ADD I, Vx
func (vm *VM) opADDIVx(x byte) {
	vm.i += uint16(vm.v[x])
}

// Fx29 - LD F, Vx
func (vm *VM) opLDFVx(x byte) {
	vm.i = FontBase + uint16(vm.v[x]&0xF)*FontGlyphSize
}

// Fx33 - LD B, Vx: store the BCD of Vx at I, I+1, I+2
func (vm *VM) opLDBVx(x byte) error {
	if vm.i+2 >= MemSize {
		return &MemoryError{Op: "LD B, Vx", Address: vm.i}
	}
	val := vm.v[x]
	vm.ram[vm.i] = val / 100
	vm.ram[vm.i+1] = (val / 10) % 10
	vm.ram[vm.i+2] = val % 10
	return nil
}

// Fx55 - LD [I], Vx: store V0..Vx inclusive starting at I. I is not
// mutated (quirk chosen in §4.2).
func (vm *VM) opLDIVx(x byte) error {
	if uint32(vm.i)+uint32(x) >= MemSize {
		return &MemoryError{Op: "LD [I], Vx", Address: vm.i}
	}
	for idx := byte(0); idx <= x; idx++ {
		vm.ram[vm.i+uint16(idx)] = vm.v[idx]
	}
	return nil
}

// Fx65 - LD Vx, [I]: load V0..Vx inclusive starting at I. I is not
// mutated (quirk chosen in §4.2). Iterates i<=x per the corrected
// semantics in §9/§10.
func (vm *VM) opLDVxI(x byte) error {
	if uint32(vm.i)+uint32(x) >= MemSize {
		return &MemoryError{Op: "LD Vx, [I]", Address: vm.i}
	}
	for idx := byte(0); idx <= x; idx++ {
		vm.v[idx] = vm.ram[vm.i+uint16(idx)]
	}
	return nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
