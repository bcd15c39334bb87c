package chip8

import "fmt"

// MemoryError reports an out-of-range memory access: a fetch, jump, or
// memory-indirect instruction that tried to touch an address outside the
// bounds invariant of §3.
type MemoryError struct {
	Op      string
	Address uint16
}

func (e *MemoryError) Error() string {
	return fmt.Sprintf("chip8: %s: address out of range: 0x%04X", e.Op, e.Address)
}

// StackError reports a CALL on a full stack or a RET on an empty one.
type StackError struct {
	Op string
	SP uint16
}

func (e *StackError) Error() string {
	return fmt.Sprintf("chip8: %s: stack pointer out of range: %d", e.Op, e.SP)
}

// InvalidOpcodeError reports an unrecognized opcode. The high nibble is
// always fatal; an unrecognized sub-opcode within the 8.. or F.. families
// is also fatal (see spec §7).
type InvalidOpcodeError struct {
	Opcode uint16
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("chip8: invalid opcode: 0x%04X", e.Opcode)
}

// errExit is returned internally by the 00FD handler to unwind the
// execute loop; it is never surfaced to a caller of Exec as an error.
var errExit = fmt.Errorf("chip8: exit")
