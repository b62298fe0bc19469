package wgslpp

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSubstitute(t *testing.T) {
	for _, tt := range []struct {
		name        string
		line        string
		defines     macroTable
		want        string
		wantChanged bool
	}{
		{
			"no definitions",
			"let x = a + b;",
			macroTable{},
			"let x = a + b;",
			false,
		},
		{
			"value",
			"X+X",
			macroTable{"X": Value{Text: "5"}},
			"5+5",
			true,
		},
		{
			"value expansion is rescanned by the outer loop, not this pass",
			"A",
			macroTable{"A": Value{Text: "B"}, "B": Value{Text: "C"}},
			"B",
			true,
		},
		{
			"macro",
			"ADD(1, 2)",
			macroTable{"ADD": Macro{Params: []string{"a", "b"}, Body: "(a+b)"}},
			"(1+2)",
			true,
		},
		{
			"macro without parenthesis is not an invocation",
			"F + 1",
			macroTable{"F": Macro{Params: []string{"a"}, Body: "[a]"}},
			"F + 1",
			false,
		},
		{
			"macro name at end of line",
			"F",
			macroTable{"F": Macro{Params: []string{"a"}, Body: "[a]"}},
			"F",
			false,
		},
		{
			"empty argument list still binds one empty argument",
			"F()",
			macroTable{"F": Macro{Params: []string{"a"}, Body: "[a]"}},
			"[]",
			true,
		},
		{
			"braces nest like parentheses",
			"PAIR({1,2}, 3)",
			macroTable{"PAIR": Macro{Params: []string{"a", "b"}, Body: "a|b"}},
			"{1,2}|3",
			true,
		},
		{
			"comma inside a nested call does not split",
			"F(g(1,2), 3)",
			macroTable{"F": Macro{Params: []string{"a", "b"}, Body: "a|b"}},
			"g(1,2)|3",
			true,
		},
		{
			// Pre-expanding B(1) fails its argument count check, so the
			// raw argument text is bound instead and this pass succeeds.
			"argument pre-expansion errors are swallowed",
			"F(B(1))",
			macroTable{
				"F": Macro{Params: []string{"a"}, Body: "a"},
				"B": Macro{Params: []string{"x", "y"}, Body: "xy"},
			},
			"B(1)",
			true,
		},
		{
			"unicode identifier",
			"π",
			macroTable{"π": Value{Text: "3.14"}},
			"3.14",
			true,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			changed, got, err := substitute(tt.line, tt.defines)
			if err != nil {
				t.Fatalf("substitute error: %v", err)
			}
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSubstituteErrors(t *testing.T) {
	for _, tt := range []struct {
		name    string
		line    string
		defines macroTable
		want    *Error
	}{
		{
			"wrong argument count",
			"F(1)",
			macroTable{"F": Macro{Params: []string{"a", "b"}, Body: "ab"}},
			&Error{Kind: ErrMacroArgCount, Expected: 2, Got: 1},
		},
		{
			"missing closing parenthesis",
			"F(1",
			macroTable{"F": Macro{Params: []string{"a"}, Body: "[a]"}},
			&Error{Kind: ErrMacroNoParen},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := substitute(tt.line, tt.defines)
			if err == nil {
				t.Fatalf("expected error %q", tt.want)
			}
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("error %v is not a *Error", err)
			}
			if diff := cmp.Diff(tt.want, perr); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindIdent(t *testing.T) {
	for _, tt := range []struct {
		s          string
		from       int
		start, end int
		found      bool
	}{
		{"foo", 0, 0, 3, true},
		{"  foo ", 0, 2, 5, true},
		{"1+x", 0, 2, 3, true},
		{"x9y", 0, 0, 3, true},
		{"_private", 0, 0, 8, true},
		{"πr2", 0, 0, 4, true}, // π is two bytes
		{"123", 0, 0, 0, false},
		{"foo", 1, 1, 3, true},
		{"", 0, 0, 0, false},
	} {
		start, end, found := findIdent(tt.s, tt.from)
		if start != tt.start || end != tt.end || found != tt.found {
			t.Errorf("findIdent(%q, %d) = %d, %d, %v; want %d, %d, %v",
				tt.s, tt.from, start, end, found, tt.start, tt.end, tt.found)
		}
	}
}
