// Package console implements the developer console command line: a tokenizer
// with backslash and quote escaping, and a registry dispatching the first
// token to a named command.
package console

import (
	"errors"
	"fmt"
)

// Token is one whitespace-separated argument after escaping is resolved.
type Token string

// Tokenize errors. A failed parse never reaches a command; the dispatch layer
// reports it as console text instead.
var (
	// ErrUnterminatedQuote means the input ended inside a quoted section.
	ErrUnterminatedQuote = errors.New("input ended before closing all quotes")
	// ErrTrailingEscape means the input ended directly after a backslash.
	ErrTrailingEscape = errors.New("input contains a backslash at end")
)

// BadEscapeError reports a backslash followed by a character that cannot be
// escaped. Pos is the byte offset of the offending character.
type BadEscapeError struct {
	Pos int
}

func (e *BadEscapeError) Error() string {
	return fmt.Sprintf("unexpected character at char %d; expected an escaped space, backslash, or quote", e.Pos)
}

// Tokenize splits a command line into tokens. A backslash escapes exactly a
// space, backslash, or double quote; double quotes group characters
// (including spaces) into one token. Consecutive separators produce empty
// tokens, matching the splitting behavior commands were written against.
func Tokenize(line string) ([]Token, error) {
	var (
		tokens  []Token
		current []rune
		escaped bool
		quoted  bool
	)

	for i, r := range line {
		switch {
		case escaped:
			switch r {
			case ' ', '\\', '"':
				current = append(current, r)
				escaped = false
			default:
				return nil, &BadEscapeError{Pos: i}
			}
		case quoted:
			switch r {
			case '"':
				quoted = false
			case '\\':
				escaped = true
			default:
				current = append(current, r)
			}
		default:
			switch r {
			case '\\':
				escaped = true
			case '"':
				quoted = true
			case ' ':
				tokens = append(tokens, Token(current))
				current = current[:0]
			default:
				current = append(current, r)
			}
		}
	}

	if escaped {
		return nil, ErrTrailingEscape
	}
	if quoted {
		return nil, ErrUnterminatedQuote
	}
	if len(current) > 0 {
		tokens = append(tokens, Token(current))
	}
	return tokens, nil
}

// Handler runs a command with its arguments (the command name itself is
// stripped) and returns the text to print to the console.
type Handler func(args []Token) string

// Registry maps command names to handlers.
type Registry struct {
	commands map[string]Handler
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Handler)}
}

// Register binds a handler to a command name, replacing any previous binding.
func (r *Registry) Register(name string, h Handler) {
	r.commands[name] = h
}

// Names returns the registered command names in no particular order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	return names
}

// Dispatch tokenizes a command line, runs the named command, and returns its
// output. Parse failures and unknown commands come back as console text;
// Dispatch never fails.
func (r *Registry) Dispatch(line string) string {
	tokens, err := Tokenize(line)
	if err != nil {
		return fmt.Sprintf("Error `%s` in input `%s`", err, line)
	}
	if len(tokens) == 0 {
		return "Please enter a command"
	}

	h, ok := r.commands[string(tokens[0])]
	if !ok {
		return "Command not found"
	}
	return h(tokens[1:])
}
