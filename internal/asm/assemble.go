package asm

import (
	"bufio"
	"bytes"
	"io"

	"github.com/chippy8/chippy8/internal/diag"
)

// Assemble runs the two-pass assembler (§4.6, §4.7) over src and writes
// the resulting machine code to dst. Pass 1 builds the label table and
// pass 2 re-reads the source from the start, so Assemble reads src once
// into memory rather than requiring an io.Seeker from the caller.
func Assemble(src io.Reader, dst io.Writer) error {
	source, err := io.ReadAll(src)
	if err != nil {
		return err
	}

	labels, err := resolveLabels(bytes.NewReader(source))
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(bytes.NewReader(source))
	for scanner.Scan() {
		stmt, err := lex(scanner.Text())
		if err != nil {
			return err
		}

		bytesLen, word, err := EncodeStatement(&stmt, labels)
		if err != nil {
			// Unknown mnemonic / bad operand: a diagnostic, not
			// fatal (§7). The NOP word EncodeStatement already
			// returned keeps pass 1's byte-length accounting
			// lined up with what is actually written.
			diag.Printf("%v", err)
		}
		switch bytesLen {
		case 0:
			continue
		case 1:
			if _, err := dst.Write([]byte{byte(word)}); err != nil {
				return err
			}
		case 2:
			if _, err := dst.Write([]byte{byte(word >> 8), byte(word)}); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}
