package asm

import (
	"bytes"
	"strings"
	"testing"
)

func TestAssembleBasicLoop(t *testing.T) {
	// §8 scenario 1.
	src := "start: LD V0, 0x05\nJP start\n"
	var out bytes.Buffer
	if err := Assemble(strings.NewReader(src), &out); err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	want := []byte{0x60, 0x05, 0x12, 0x00}
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("Assemble output = % X, want % X", out.Bytes(), want)
	}
}

func TestAssembleForwardLabelReference(t *testing.T) {
	src := "JP skip\nCLS\nskip: RET\n"
	var out bytes.Buffer
	if err := Assemble(strings.NewReader(src), &out); err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	want := []byte{0x12, 0x04, 0x00, 0xE0, 0x00, 0xEE}
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("Assemble output = % X, want % X", out.Bytes(), want)
	}
}

func TestAssembleSkipsCommentsAndBlankLines(t *testing.T) {
	src := "; header comment\n\nCLS ; clear the screen\n\nRET\n"
	var out bytes.Buffer
	if err := Assemble(strings.NewReader(src), &out); err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	want := []byte{0x00, 0xE0, 0x00, 0xEE}
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("Assemble output = % X, want % X", out.Bytes(), want)
	}
}

func TestAssembleUnknownMnemonicEmitsNopAndContinues(t *testing.T) {
	src := "BOGUS V0, V1\nCLS\n"
	var out bytes.Buffer
	if err := Assemble(strings.NewReader(src), &out); err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	want := []byte{0x00, 0x00, 0x00, 0xE0}
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("Assemble output = % X, want % X (unknown mnemonic is a diagnostic, not fatal)", out.Bytes(), want)
	}
}

func TestAssembleLiteralByte(t *testing.T) {
	src := ".SB 0x80\n.SB 0x01\n"
	var out bytes.Buffer
	if err := Assemble(strings.NewReader(src), &out); err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	want := []byte{0x80, 0x01}
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("Assemble output = % X, want % X", out.Bytes(), want)
	}
}

func TestAssembleMatchesEncodeStatement(t *testing.T) {
	src := "start: LD V0, 0x05\nJP start\n"
	var machineCode bytes.Buffer
	if err := Assemble(strings.NewReader(src), &machineCode); err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	stmt1, err := lex("LD V0, 0x05")
	if err != nil {
		t.Fatalf("lex returned error: %v", err)
	}
	_, word1, err := EncodeStatement(&stmt1, newLabels())
	if err != nil {
		t.Fatalf("EncodeStatement returned error: %v", err)
	}
	gotWord1 := uint16(machineCode.Bytes()[0])<<8 | uint16(machineCode.Bytes()[1])
	if gotWord1 != word1 {
		t.Errorf("first word = 0x%04X, want 0x%04X", gotWord1, word1)
	}
}
