// Package disasm implements the CHIP-8 disassembler: the inverse of
// the assembler's pass 2 encoder (§4.8).
package disasm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/chippy8/chippy8/internal/chip8"
)

// Disassemble reads big-endian 16-bit words from src starting logically
// at chip8.ProgStart and writes one line per word to dst in the form
// "addr: hi lo\tmnemonic operands". A trailing unpaired byte is printed
// alone. Unknown opcodes print as "0xWWWW" (§4.8).
func Disassemble(src io.Reader, dst io.Writer) error {
	r := bufio.NewReader(src)
	w := bufio.NewWriter(dst)
	defer w.Flush()

	addr := uint16(chip8.ProgStart)
	buf := make([]byte, 2)
	for {
		n, err := io.ReadFull(r, buf)
		if n == 2 {
			ins := uint16(buf[0])<<8 | uint16(buf[1])
			fmt.Fprintf(w, "%04X: %02X %02X\t%s\n", addr, buf[0], buf[1], format(ins))
			addr += 2
			continue
		}
		if n == 1 {
			fmt.Fprintf(w, "%04X: %02X\n", addr, buf[0])
			addr++
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
