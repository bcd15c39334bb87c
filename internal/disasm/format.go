package disasm

import "fmt"

// format maps a 16-bit opcode back to a mnemonic and its operands,
// using the same operand forms the assembler accepts (§4.7/§4.8):
// registers as "Vx", addresses/bytes as "0x..." hex literals. Unknown
// opcodes print as "0xWWWW".
func format(ins uint16) string {
	x := byte(ins>>8) & 0xF
	y := byte(ins>>4) & 0xF
	n := byte(ins) & 0xF
	kk := byte(ins)
	nnn := ins & 0x0FFF

	reg := func(r byte) string { return fmt.Sprintf("V%X", r) }
	byteLit := func(b byte) string { return fmt.Sprintf("0x%02X", b) }
	addrLit := func(a uint16) string { return fmt.Sprintf("0x%03X", a) }

	switch ins & 0xF000 {
	case 0x0000:
		switch ins {
		case 0x00E0:
			return "CLS"
		case 0x00EE:
			return "RET"
		case 0x00FD:
			return "EXIT"
		}
	case 0x1000:
		return "JP " + addrLit(nnn)
	case 0x2000:
		return "CALL " + addrLit(nnn)
	case 0x3000:
		return fmt.Sprintf("SE %s, %s", reg(x), byteLit(kk))
	case 0x4000:
		return fmt.Sprintf("SNE %s, %s", reg(x), byteLit(kk))
	case 0x5000:
		if n == 0 {
			return fmt.Sprintf("SE %s, %s", reg(x), reg(y))
		}
	case 0x6000:
		return fmt.Sprintf("LD %s, %s", reg(x), byteLit(kk))
	case 0x7000:
		return fmt.Sprintf("ADD %s, %s", reg(x), byteLit(kk))
	case 0x8000:
		switch n {
		case 0x0:
			return fmt.Sprintf("LD %s, %s", reg(x), reg(y))
		case 0x1:
			return fmt.Sprintf("OR %s, %s", reg(x), reg(y))
		case 0x2:
			return fmt.Sprintf("AND %s, %s", reg(x), reg(y))
		case 0x3:
			return fmt.Sprintf("XOR %s, %s", reg(x), reg(y))
		case 0x4:
			return fmt.Sprintf("ADD %s, %s", reg(x), reg(y))
		case 0x5:
			return fmt.Sprintf("SUB %s, %s", reg(x), reg(y))
		case 0x6:
			return fmt.Sprintf("SHR %s", reg(x))
		case 0x7:
			return fmt.Sprintf("SUBN %s, %s", reg(x), reg(y))
		case 0xE:
			return fmt.Sprintf("SHL %s", reg(x))
		}
	case 0x9000:
		if n == 0 {
			return fmt.Sprintf("SNE %s, %s", reg(x), reg(y))
		}
	case 0xA000:
		return fmt.Sprintf("LD I, %s", addrLit(nnn))
	case 0xB000:
		return fmt.Sprintf("JP V0, %s", addrLit(nnn))
	case 0xC000:
		return fmt.Sprintf("RND %s, %s", reg(x), byteLit(kk))
	case 0xD000:
		return fmt.Sprintf("DRW %s, %s, %d", reg(x), reg(y), n)
	case 0xE000:
		switch kk {
		case 0x9E:
			return fmt.Sprintf("SKP %s", reg(x))
		case 0xA1:
			return fmt.Sprintf("SKNP %s", reg(x))
		}
	case 0xF000:
		switch kk {
		case 0x07:
			return fmt.Sprintf("LD %s, DT", reg(x))
		case 0x0A:
			return fmt.Sprintf("LD %s, K", reg(x))
		case 0x15:
			return fmt.Sprintf("LD DT, %s", reg(x))
		case 0x18:
			return fmt.Sprintf("LD ST, %s", reg(x))
		case 0x1E:
			return fmt.Sprintf("ADD I, %s", reg(x))
		case 0x29:
			return fmt.Sprintf("LD F, %s", reg(x))
		case 0x33:
			return fmt.Sprintf("LD B, %s", reg(x))
		case 0x55:
			return fmt.Sprintf("LD [I], %s", reg(x))
		case 0x65:
			return fmt.Sprintf("LD %s, [I]", reg(x))
		}
	}
	return fmt.Sprintf("0x%04X", ins)
}
