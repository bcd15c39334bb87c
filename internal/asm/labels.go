package asm

import (
	"bufio"
	"io"

	"github.com/chippy8/chippy8/internal/chip8"
	"github.com/chippy8/chippy8/internal/diag"
)

// Labels is the label table built during pass 1 and consulted
// read-only during pass 2: an ordered collection of (name, address)
// pairs. Names are case-sensitive. First definition wins; a
// redefinition is a non-fatal diagnostic (§3).
type Labels struct {
	order []string
	addr  map[string]uint16
}

func newLabels() *Labels {
	return &Labels{addr: make(map[string]uint16)}
}

// Lookup reports the address assigned to name, if any.
func (l *Labels) Lookup(name string) (uint16, bool) {
	a, ok := l.addr[name]
	return a, ok
}

func (l *Labels) define(name string, addr uint16) {
	if _, exists := l.addr[name]; exists {
		diag.Printf("label already exists: %s", name)
		return
	}
	l.addr[name] = addr
	l.order = append(l.order, name)
}

// resolveLabels walks src line by line (pass 1, §4.6), lexing each line
// to a Statement and assigning addresses to labels starting at
// chip8.ProgStart. It never mutates src's position assumptions beyond
// reading it to completion; callers rewind/reopen for pass 2.
func resolveLabels(src io.Reader) (*Labels, error) {
	labels := newLabels()
	addr := uint16(chip8.ProgStart)

	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		stmt, err := lex(scanner.Text())
		if err != nil {
			return nil, err
		}
		if stmt.HasLabel {
			labels.define(stmt.Label, addr)
		}
		addr += stmt.Length()
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return labels, nil
}
