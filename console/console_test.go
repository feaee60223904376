package console

import (
	"errors"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{"simple split", "move ship 1 2", []Token{"move", "ship", "1", "2"}},
		{"quoted spaces", `echo "hello there" world`, []Token{"echo", "hello there", "world"}},
		{"escaped space", `echo hello\ there`, []Token{"echo", "hello there"}},
		{"escaped backslash", `echo a\\b`, []Token{"echo", `a\b`}},
		{"escaped quote", `echo \"hi\"`, []Token{"echo", `"hi"`}},
		{"quote inside token", `na"me wi"th`, []Token{"name with"}},
		{"escape inside quotes", `"a\"b"`, []Token{`a"b`}},
		{"consecutive spaces keep empty token", "a  b", []Token{"a", "", "b"}},
		{"empty input", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	if _, err := Tokenize(`echo "unclosed`); !errors.Is(err, ErrUnterminatedQuote) {
		t.Errorf("unterminated quote: got %v", err)
	}
	if _, err := Tokenize(`echo trailing\`); !errors.Is(err, ErrTrailingEscape) {
		t.Errorf("trailing escape: got %v", err)
	}

	_, err := Tokenize(`echo \x`)
	var bad *BadEscapeError
	if !errors.As(err, &bad) {
		t.Fatalf("bad escape: got %v", err)
	}
	if bad.Pos != 6 {
		t.Errorf("bad escape position = %d, want 6", bad.Pos)
	}
}

func TestDispatch(t *testing.T) {
	r := NewRegistry()
	r.Register("greet", func(args []Token) string {
		if len(args) == 0 {
			return "hello"
		}
		return "hello " + string(args[0])
	})

	if got := r.Dispatch("greet sailor"); got != "hello sailor" {
		t.Errorf("Dispatch = %q", got)
	}
	if got := r.Dispatch("scuttle"); got != "Command not found" {
		t.Errorf("unknown command = %q", got)
	}
	if got := r.Dispatch(""); got != "Please enter a command" {
		t.Errorf("empty input = %q", got)
	}
	if got := r.Dispatch(`greet "unclosed`); got != "Error `input ended before closing all quotes` in input `greet \"unclosed`" {
		t.Errorf("parse failure = %q", got)
	}
}
