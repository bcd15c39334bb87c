package asm

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// lexState is one state of the line lexer FSM (§4.5).
type lexState int

const (
	stateStart lexState = iota
	stateLabel
	stateAfterLabel
	stateInstruction
	stateWhitespace
	stateArgument
	stateComment
	stateDone
)

const commentChar = ';'

// lex tokenizes one source line (without its trailing newline) into a
// Statement, following the closed state machine of §4.5: commit-on-exit
// is the rule of interpretation - whenever a transition's *source*
// state was content-bearing, the accumulated buffer is committed to the
// statement and cleared.
func lex(line string) (Statement, error) {
	if len(line)+1 > MaxLineLength {
		return Statement{}, errors.Errorf("asm: line too long: %d bytes (max %d)", len(line), MaxLineLength-1)
	}

	var stmt Statement
	var buf strings.Builder
	state := stateStart

	commit := func(from lexState) error {
		switch from {
		case stateLabel:
			stmt.Label = buf.String()
			stmt.HasLabel = true
		case stateInstruction:
			stmt.Mnemonic = buf.String()
			stmt.HasMnemonic = stmt.Mnemonic != ""
		case stateArgument:
			if stmt.NumArgs >= MaxArgs {
				return errors.New("asm: too many arguments")
			}
			stmt.Args[stmt.NumArgs] = buf.String()
			stmt.NumArgs++
		}
		buf.Reset()
		return nil
	}

	runes := append([]rune(line), '\n')
	for _, ch := range runes {
		next := nextState(&state, ch)
		if state != next {
			if err := commit(state); err != nil {
				return Statement{}, err
			}
			state = next
		}
		if ch != '\n' {
			buf.WriteRune(ch)
			if buf.Len() >= MaxLineLength {
				return Statement{}, errors.New("asm: input buffer overflow")
			}
		}
	}
	return stmt, nil
}

// nextState computes the FSM's next state given the current state and
// the next input character, mirroring the transition table of §4.5. A
// bare word with no trailing colon is not a label: on whitespace or end
// of line, STATE_LABEL reinterprets itself as STATE_INSTRUCTION before
// computing the transition, so the commit that follows files the
// accumulated buffer under the mnemonic rather than the label. *state
// is mutated in place to mirror that reinterpretation, matching the
// original FSM's habit of rewriting its own current state mid-lookup.
func nextState(state *lexState, ch rune) lexState {
	if *state == stateLabel && (ch == '\n' || unicode.IsSpace(ch)) {
		*state = stateInstruction
	}

	if ch == '\n' {
		return stateDone
	}
	if ch == commentChar && *state != stateDone {
		return stateComment
	}

	switch *state {
	case stateStart:
		if !unicode.IsSpace(ch) {
			return stateLabel
		}
	case stateLabel:
		if ch == ':' {
			return stateAfterLabel
		}
	case stateAfterLabel:
		if !unicode.IsSpace(ch) {
			return stateInstruction
		}
	case stateInstruction:
		if unicode.IsSpace(ch) {
			return stateWhitespace
		}
	case stateWhitespace:
		if ch == ',' {
			return stateWhitespace
		}
		if !unicode.IsSpace(ch) {
			return stateArgument
		}
	case stateArgument:
		if ch == ',' || unicode.IsSpace(ch) {
			return stateWhitespace
		}
	case stateComment:
		return stateComment
	case stateDone:
		return stateDone
	}
	return *state
}
