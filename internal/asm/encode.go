package asm

import "github.com/pkg/errors"

// nop is emitted for an unrecognized mnemonic so that line counts still
// agree with pass 1 (§7).
const nop uint16 = 0x0000

// encoder converts one statement to a 16-bit instruction word (or, for
// .SB, a literal byte in the low 8 bits). It receives the read-only
// label table built by pass 1.
type encoder func(stmt *Statement, labels *Labels) (uint16, error)

// instruction pairs a mnemonic with its encoder and byte count - a
// data-driven dispatch table so a new opcode is one more row (§9).
type instruction struct {
	bytes  int
	encode encoder
}

var instructions = map[string]instruction{
	"CLS":  {2, encodeCLS},
	"RET":  {2, encodeRET},
	"EXIT": {2, encodeEXIT},
	"JP":   {2, encodeJP},
	"CALL": {2, encodeCALL},
	"SE":   {2, encodeSE},
	"SNE":  {2, encodeSNE},
	"LD":   {2, encodeLD},
	"ADD":  {2, encodeADD},
	"OR":   {2, encodeOR},
	"AND":  {2, encodeAND},
	"XOR":  {2, encodeXOR},
	"SUB":  {2, encodeSUB},
	"SUBN": {2, encodeSUBN},
	"SHR":  {2, encodeSHR},
	"SHL":  {2, encodeSHL},
	"RND":  {2, encodeRND},
	"DRW":  {2, encodeDRW},
	"SKP":  {2, encodeSKP},
	"SKNP": {2, encodeSKNP},
	".SB":  {1, encodeSB},
}

// EncodeStatement dispatches stmt by its uppercased mnemonic to the
// matching encoder (§4.7). It returns (bytes, word) where bytes is 1 or
// 2; 0 is returned for a statement with no mnemonic (blank/comment/
// label-only line), which the caller must skip rather than emit.
func EncodeStatement(stmt *Statement, labels *Labels) (int, uint16, error) {
	if !stmt.HasMnemonic {
		return 0, 0, nil
	}
	mnem := upperMnemonic(stmt.Mnemonic)
	instr, ok := instructions[mnem]
	if !ok {
		return 2, nop, &UnknownMnemonicError{Mnemonic: stmt.Mnemonic}
	}
	word, err := instr.encode(stmt, labels)
	if err != nil {
		return instr.bytes, nop, err
	}
	return instr.bytes, word, nil
}

// UnknownMnemonicError is a diagnostic (§7): the statement is encoded
// as a NOP so pass 1's byte-length accounting still lines up, but the
// caller should report it.
type UnknownMnemonicError struct {
	Mnemonic string
}

func (e *UnknownMnemonicError) Error() string {
	return "asm: unrecognized instruction: \"" + e.Mnemonic + "\""
}

// TooFewArgumentsError reports a statement with fewer arguments than
// its mnemonic requires.
type TooFewArgumentsError struct {
	Mnemonic string
}

func (e *TooFewArgumentsError) Error() string {
	return "asm: too few arguments for " + e.Mnemonic
}

func needArgs(stmt *Statement, n int, mnemonic string) error {
	if stmt.NumArgs < n {
		return &TooFewArgumentsError{Mnemonic: mnemonic}
	}
	return nil
}

func encodeCLS(_ *Statement, _ *Labels) (uint16, error)  { return 0x00E0, nil }
func encodeRET(_ *Statement, _ *Labels) (uint16, error)  { return 0x00EE, nil }
func encodeEXIT(_ *Statement, _ *Labels) (uint16, error) { return 0x00FD, nil }

// JP nnn | JP V0, nnn
func encodeJP(stmt *Statement, labels *Labels) (uint16, error) {
	if err := needArgs(stmt, 1, "JP"); err != nil {
		return 0, err
	}
	arg := stmt.Args[0]
	head := uint16(0x1000)
	if reg, isReg := parseRegister(arg); isReg && reg == 0 {
		if err := needArgs(stmt, 2, "JP V0"); err != nil {
			return 0, err
		}
		head = 0xB000
		arg = stmt.Args[1]
	}
	addr, ok := resolveAddress(arg, labels)
	if !ok {
		return 0, errors.Errorf("asm: invalid label/address: %s", arg)
	}
	return head | (addr & 0x0FFF), nil
}

// CALL nnn
func encodeCALL(stmt *Statement, labels *Labels) (uint16, error) {
	if err := needArgs(stmt, 1, "CALL"); err != nil {
		return 0, err
	}
	addr, ok := resolveAddress(stmt.Args[0], labels)
	if !ok {
		return 0, errors.Errorf("asm: invalid label/address: %s", stmt.Args[0])
	}
	return 0x2000 | (addr & 0x0FFF), nil
}

// SE Vx, kk | SE Vx, Vy
func encodeSE(stmt *Statement, _ *Labels) (uint16, error) {
	return encodeSEorSNE(stmt, "SE", 0x3000, 0x5000)
}

// SNE Vx, kk | SNE Vx, Vy
func encodeSNE(stmt *Statement, _ *Labels) (uint16, error) {
	return encodeSEorSNE(stmt, "SNE", 0x4000, 0x9000)
}

func encodeSEorSNE(stmt *Statement, mnemonic string, immHead, regHead uint16) (uint16, error) {
	if err := needArgs(stmt, 2, mnemonic); err != nil {
		return 0, err
	}
	vx, ok := parseRegister(stmt.Args[0])
	if !ok {
		return 0, errors.Errorf("asm: first argument to %s must be a register", mnemonic)
	}
	cmp := stmt.Args[1]
	if vy, isReg := parseRegister(cmp); isReg {
		return regHead | (uint16(vx) << 8) | (uint16(vy) << 4), nil
	}
	kk, ok := parseNumber(cmp)
	if !ok {
		return 0, errors.Errorf("asm: invalid operand to %s: %s", mnemonic, cmp)
	}
	return immHead | (uint16(vx) << 8) | (kk & 0xFF), nil
}

// LD has the most operand forms of any mnemonic: Vx,Vy / Vx,kk /
// I,addr / Vx,DT / DT,Vx / ST,Vx / Vx,K / F,Vx -> handled as LD Vx,F is
// not valid; the valid forms are LD F,Vx / LD B,Vx / LD [I],Vx /
// LD Vx,[I].
func encodeLD(stmt *Statement, labels *Labels) (uint16, error) {
	if err := needArgs(stmt, 2, "LD"); err != nil {
		return 0, err
	}
	dst, src := stmt.Args[0], stmt.Args[1]

	dstReg, dstIsReg := parseRegister(dst)
	srcReg, srcIsReg := parseRegister(src)

	switch {
	case dstIsReg && srcIsReg:
		return 0x8000 | (uint16(dstReg) << 8) | (uint16(srcReg) << 4), nil
	case isIndexRegister(dst):
		addr, ok := resolveAddress(src, labels)
		if !ok {
			return 0, errors.Errorf("asm: invalid label/address: %s", src)
		}
		return 0xA000 | (addr & 0x0FFF), nil
	case dstIsReg && isDT(src):
		return 0xF007 | (uint16(dstReg) << 8), nil
	case dstIsReg && isK(src):
		return 0xF00A | (uint16(dstReg) << 8), nil
	case dstIsReg && isIndirectIndex(src):
		return 0xF065 | (uint16(dstReg) << 8), nil
	case isIndirectIndex(dst) && srcIsReg:
		return 0xF055 | (uint16(srcReg) << 8), nil
	case isF(dst) && srcIsReg:
		return 0xF029 | (uint16(srcReg) << 8), nil
	case isB(dst) && srcIsReg:
		return 0xF033 | (uint16(srcReg) << 8), nil
	case isDT(dst) && srcIsReg:
		return 0xF015 | (uint16(srcReg) << 8), nil
	case isST(dst) && srcIsReg:
		return 0xF018 | (uint16(srcReg) << 8), nil
	case dstIsReg:
		kk, ok := parseNumber(src)
		if !ok {
			return 0, errors.Errorf("asm: invalid operand to LD: %s", src)
		}
		return 0x6000 | (uint16(dstReg) << 8) | (kk & 0xFF), nil
	default:
		return 0, errors.Errorf("asm: unimplemented LD form: %s, %s", dst, src)
	}
}

// ADD Vx, Vy | ADD Vx, kk | ADD I, Vx
func encodeADD(stmt *Statement, _ *Labels) (uint16, error) {
	if err := needArgs(stmt, 2, "ADD"); err != nil {
		return 0, err
	}
	dst, src := stmt.Args[0], stmt.Args[1]
	dstReg, dstIsReg := parseRegister(dst)
	srcReg, srcIsReg := parseRegister(src)

	switch {
	case dstIsReg && srcIsReg:
		return 0x8004 | (uint16(dstReg) << 8) | (uint16(srcReg) << 4), nil
	case isIndexRegister(dst) && srcIsReg:
		return 0xF01E | (uint16(srcReg) << 8), nil
	case dstIsReg:
		kk, ok := parseNumber(src)
		if !ok {
			return 0, errors.Errorf("asm: invalid operand to ADD: %s", src)
		}
		return 0x7000 | (uint16(dstReg) << 8) | (kk & 0xFF), nil
	default:
		return 0, errors.Errorf("asm: unimplemented ADD form: %s, %s", dst, src)
	}
}

func encodeOR(stmt *Statement, _ *Labels) (uint16, error)  { return encodeBitwise(stmt, 0x8001, "OR") }
func encodeAND(stmt *Statement, _ *Labels) (uint16, error) { return encodeBitwise(stmt, 0x8002, "AND") }
func encodeXOR(stmt *Statement, _ *Labels) (uint16, error) { return encodeBitwise(stmt, 0x8003, "XOR") }
func encodeSUB(stmt *Statement, _ *Labels) (uint16, error) { return encodeBitwise(stmt, 0x8005, "SUB") }

func encodeBitwise(stmt *Statement, ins uint16, mnemonic string) (uint16, error) {
	if err := needArgs(stmt, 2, mnemonic); err != nil {
		return 0, err
	}
	vx, ok1 := parseRegister(stmt.Args[0])
	vy, ok2 := parseRegister(stmt.Args[1])
	if !ok1 || !ok2 {
		return 0, errors.Errorf("asm: %s requires two register operands", mnemonic)
	}
	return ins | (uint16(vx) << 8) | (uint16(vy) << 4), nil
}

// SUBN Vx, Vy
func encodeSUBN(stmt *Statement, _ *Labels) (uint16, error) {
	return encodeBitwise(stmt, 0x8007, "SUBN")
}

// SHR Vx
func encodeSHR(stmt *Statement, _ *Labels) (uint16, error) {
	return encodeSingleRegister(stmt, 0x8006, "SHR")
}

// SHL Vx
func encodeSHL(stmt *Statement, _ *Labels) (uint16, error) {
	return encodeSingleRegister(stmt, 0x800E, "SHL")
}

func encodeSingleRegister(stmt *Statement, ins uint16, mnemonic string) (uint16, error) {
	if err := needArgs(stmt, 1, mnemonic); err != nil {
		return 0, err
	}
	vx, ok := parseRegister(stmt.Args[0])
	if !ok {
		return 0, errors.Errorf("asm: %s requires a register operand", mnemonic)
	}
	return ins | (uint16(vx) << 8), nil
}

// RND Vx, kk
func encodeRND(stmt *Statement, _ *Labels) (uint16, error) {
	if err := needArgs(stmt, 2, "RND"); err != nil {
		return 0, err
	}
	vx, ok := parseRegister(stmt.Args[0])
	if !ok {
		return 0, errors.New("asm: first argument to RND must be a register")
	}
	kk, ok := parseNumber(stmt.Args[1])
	if !ok {
		return 0, errors.Errorf("asm: invalid operand to RND: %s", stmt.Args[1])
	}
	return 0xC000 | (uint16(vx) << 8) | (kk & 0xFF), nil
}

// DRW Vx, Vy, n
func encodeDRW(stmt *Statement, _ *Labels) (uint16, error) {
	if err := needArgs(stmt, 3, "DRW"); err != nil {
		return 0, err
	}
	vx, ok1 := parseRegister(stmt.Args[0])
	vy, ok2 := parseRegister(stmt.Args[1])
	if !ok1 || !ok2 {
		return 0, errors.New("asm: DRW requires two register operands")
	}
	n, ok := parseNumber(stmt.Args[2])
	if !ok {
		return 0, errors.Errorf("asm: invalid operand to DRW: %s", stmt.Args[2])
	}
	return 0xD000 | (uint16(vx) << 8) | (uint16(vy) << 4) | (n & 0xF), nil
}

// SKP Vx
func encodeSKP(stmt *Statement, _ *Labels) (uint16, error) {
	return encodeSingleRegister(stmt, 0xE09E, "SKP")
}

// SKNP Vx
func encodeSKNP(stmt *Statement, _ *Labels) (uint16, error) {
	return encodeSingleRegister(stmt, 0xE0A1, "SKNP")
}

// .SB byte - emits one literal byte in the low 8 bits of the word.
func encodeSB(stmt *Statement, _ *Labels) (uint16, error) {
	if err := needArgs(stmt, 1, ".SB"); err != nil {
		return 0, err
	}
	b, ok := parseNumber(stmt.Args[0])
	if !ok {
		return 0, errors.Errorf("asm: invalid operand to .SB: %s", stmt.Args[0])
	}
	return b & 0xFF, nil
}
