package disasm

import (
	"bytes"
	"strings"
	"testing"
)

func TestDisassembleBasicLoop(t *testing.T) {
	// §8 scenario 1: "start: LD V0, 0x05 / JP start" assembles to
	// 60 05 12 00.
	src := []byte{0x60, 0x05, 0x12, 0x00}
	var out bytes.Buffer
	if err := Disassemble(bytes.NewReader(src), &out); err != nil {
		t.Fatalf("Disassemble returned error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "LD V0, 0x05") {
		t.Errorf("line 0 = %q, want LD V0, 0x05", lines[0])
	}
	if !strings.HasPrefix(lines[0], "0200:") {
		t.Errorf("line 0 address = %q, want prefix 0200:", lines[0])
	}
	if !strings.Contains(lines[1], "JP 0x200") {
		t.Errorf("line 1 = %q, want JP 0x200", lines[1])
	}
	if !strings.HasPrefix(lines[1], "0202:") {
		t.Errorf("line 1 address = %q, want prefix 0202:", lines[1])
	}
}

func TestDisassembleTrailingByte(t *testing.T) {
	src := []byte{0x00, 0xE0, 0xAB}
	var out bytes.Buffer
	if err := Disassemble(bytes.NewReader(src), &out); err != nil {
		t.Fatalf("Disassemble returned error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "CLS") {
		t.Errorf("line 0 = %q, want CLS", lines[0])
	}
	if !strings.HasSuffix(lines[1], "AB") {
		t.Errorf("line 1 = %q, want trailing byte AB", lines[1])
	}
}

func TestDisassembleUnknownOpcode(t *testing.T) {
	// 0x5001 is not a valid SE form (low nibble must be 0).
	src := []byte{0x50, 0x01}
	var out bytes.Buffer
	if err := Disassemble(bytes.NewReader(src), &out); err != nil {
		t.Fatalf("Disassemble returned error: %v", err)
	}
	if !strings.Contains(out.String(), "0x5001") {
		t.Errorf("output = %q, want fallback 0x5001", out.String())
	}
}

func TestDisassembleEmpty(t *testing.T) {
	var out bytes.Buffer
	if err := Disassemble(bytes.NewReader(nil), &out); err != nil {
		t.Fatalf("Disassemble returned error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output for empty input, got %q", out.String())
	}
}

func TestFormatAllOpcodeFamilies(t *testing.T) {
	cases := map[uint16]string{
		0x00E0: "CLS",
		0x00EE: "RET",
		0x00FD: "EXIT",
		0x1234: "JP 0x234",
		0x2345: "CALL 0x345",
		0x3A12: "SE VA, 0x12",
		0x4B34: "SNE VB, 0x34",
		0x5120: "SE V1, V2",
		0x61FF: "LD V1, 0xFF",
		0x7105: "ADD V1, 0x05",
		0x8120: "LD V1, V2",
		0x8121: "OR V1, V2",
		0x8122: "AND V1, V2",
		0x8123: "XOR V1, V2",
		0x8124: "ADD V1, V2",
		0x8125: "SUB V1, V2",
		0x8126: "SHR V1",
		0x8127: "SUBN V1, V2",
		0x812E: "SHL V1",
		0x9120: "SNE V1, V2",
		0xA123: "LD I, 0x123",
		0xB456: "JP V0, 0x456",
		0xC10F: "RND V1, 0x0F",
		0xD123: "DRW V1, V2, 3",
		0xE19E: "SKP V1",
		0xE1A1: "SKNP V1",
		0xF107: "LD V1, DT",
		0xF10A: "LD V1, K",
		0xF115: "LD DT, V1",
		0xF118: "LD ST, V1",
		0xF11E: "ADD I, V1",
		0xF129: "LD F, V1",
		0xF133: "LD B, V1",
		0xF155: "LD [I], V1",
		0xF165: "LD V1, [I]",
	}
	for ins, want := range cases {
		if got := format(ins); got != want {
			t.Errorf("format(0x%04X) = %q, want %q", ins, got, want)
		}
	}
}

func TestFormatUnknownFallsBackToHex(t *testing.T) {
	if got := format(0x5AB1); got != "0x5AB1" {
		t.Errorf("format(0x5AB1) = %q, want 0x5AB1", got)
	}
}
