package asm

import (
	"strconv"
	"strings"
)

// upperMnemonic uppercases a mnemonic for case-insensitive dispatch;
// case of labels is preserved and significant (§4.7/§6), but mnemonic
// case is not.
func upperMnemonic(s string) string {
	return strings.ToUpper(s)
}

// parseRegister recognizes a register operand: a token starting with V
// or v followed by a hex digit (§4.7).
func parseRegister(tok string) (byte, bool) {
	if len(tok) < 2 {
		return 0, false
	}
	if tok[0] != 'V' && tok[0] != 'v' {
		return 0, false
	}
	v, err := strconv.ParseUint(tok[1:2], 16, 8)
	if err != nil {
		return 0, false
	}
	return byte(v), true
}

// isIndexRegister recognizes the bare "I"/"i" operand denoting the
// index register (§4.7).
func isIndexRegister(tok string) bool {
	return tok == "I" || tok == "i"
}

// isIndirectIndex recognizes the "[I]" operand denoting memory at I.
func isIndirectIndex(tok string) bool {
	return strings.EqualFold(tok, "[I]")
}

// isDT recognizes the DT symbolic operand. The original encoder's
// conjunction for this (src[0] == 'd' || src[1] == 'D') is a
// transcription error (§9 open question); this implementation uses the
// corrected form: both characters must independently match d/D, t/T.
func isDT(tok string) bool {
	return len(tok) >= 2 &&
		(tok[0] == 'd' || tok[0] == 'D') &&
		(tok[1] == 't' || tok[1] == 'T')
}

// isST recognizes the ST symbolic operand.
func isST(tok string) bool {
	return len(tok) >= 2 &&
		(tok[0] == 's' || tok[0] == 'S') &&
		(tok[1] == 't' || tok[1] == 'T')
}

// isK recognizes the K (await keypress) symbolic operand.
func isK(tok string) bool {
	return tok == "K" || tok == "k"
}

// isF recognizes the F (font sprite address) symbolic operand.
func isF(tok string) bool {
	return tok == "F" || tok == "f"
}

// isB recognizes the B (BCD) symbolic operand.
func isB(tok string) bool {
	return tok == "B" || tok == "b"
}

// parseNumber parses a byte/address literal: 0x-prefixed is hex,
// otherwise decimal (§4.7).
func parseNumber(tok string) (uint16, bool) {
	if strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X") {
		v, err := strconv.ParseUint(tok[2:], 16, 16)
		if err != nil {
			return 0, false
		}
		return uint16(v), true
	}
	v, err := strconv.ParseUint(tok, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}

// resolveAddress resolves tok to an address: first as a label lookup,
// falling back to numeric parsing on a miss, so that an unresolved
// symbol that happens to be numeric still succeeds (§4.7).
func resolveAddress(tok string, labels *Labels) (uint16, bool) {
	if addr, ok := labels.Lookup(tok); ok {
		return addr, true
	}
	return parseNumber(tok)
}
