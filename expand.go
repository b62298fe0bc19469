package wgslpp

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Definition is a macro-table entry: either a Value or a Macro.
type Definition interface {
	definition()
}

// Value is an object-like definition substituted verbatim for its name.
type Value struct {
	Text string
}

// Macro is a function-like definition invoked with a parenthesized,
// comma-separated argument list. Params are not checked for duplicates.
type Macro struct {
	Params []string
	Body   string
}

func (Value) definition() {}
func (Macro) definition() {}

type macroTable map[string]Definition

// substitute performs a single left-to-right substitution pass over line
// and reports whether anything changed. The caller loops it to a fixpoint
// so that an expansion can produce further invocations. There is no
// self-reference guard: a macro whose body reinvokes itself keeps the
// fixpoint loop running forever.
func substitute(line string, defines macroTable) (bool, string, error) {
	result := line
	i := 0
	for i < len(result) {
		start, end, found := findIdent(result, i)
		if !found {
			break
		}
		id := result[start:end]

		switch def := defines[id].(type) {
		case Value:
			result = result[:start] + def.Text + result[end:]

		case Macro:
			// Only an invocation if '(' immediately follows the name.
			if end >= len(result) || result[end] != '(' {
				break
			}

			// Find the closing parenthesis, recording commas that sit
			// exactly at nesting depth 1. Braces count toward the depth
			// so struct literals inside arguments don't split.
			depth := 0
			closed := false
			var commas []int
			j := end
			for ; j < len(result); j++ {
				switch result[j] {
				case '(', '{':
					depth++
				case ')', '}':
					depth--
					if depth == 0 {
						closed = true
					}
				case ',':
					if depth == 1 {
						commas = append(commas, j)
					}
				}
				if closed {
					break
				}
			}
			if !closed {
				return false, "", &Error{Kind: ErrMacroNoParen}
			}

			args := splitArgs(result, end+1, j, commas)
			if len(args) != len(def.Params) {
				return false, "", errArgCount(len(def.Params), len(args))
			}

			// Arguments are pre-expanded against the enclosing table.
			// Errors here are swallowed and the raw argument text used
			// instead, so a partially-malformed nested argument does not
			// abort an otherwise-valid expansion.
			argDefines := make(macroTable, len(def.Params))
			for k, param := range def.Params {
				val := args[k]
				if _, expanded, err := substitute(val, defines); err == nil {
					val = expanded
				}
				argDefines[param] = Value{Text: val}
			}

			// The body sees only the parameter bindings; anything else
			// it expands to is picked up by the outer fixpoint rescan.
			_, body, err := substitute(def.Body, argDefines)
			if err != nil {
				return false, "", err
			}
			result = result[:start] + body + result[j+1:]
		}

		i += len(id)
	}
	return result != line, result, nil
}

// splitArgs cuts result[open:end) at the recorded top-level commas.
// An empty argument list still yields one (empty) argument.
func splitArgs(result string, open, end int, commas []int) []string {
	args := make([]string, 0, len(commas)+1)
	argStart := open
	for _, comma := range commas {
		args = append(args, strings.TrimSpace(result[argStart:comma]))
		argStart = comma + 1
	}
	return append(args, strings.TrimSpace(result[argStart:end]))
}

// findIdent returns the byte span of the first identifier starting at or
// after offset from.
func findIdent(s string, from int) (start, end int, found bool) {
	for i := from; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if isIdentStart(r) {
			j, _ := identEndAt(s, i)
			return i, j, true
		}
		i += size
	}
	return 0, 0, false
}

// identEndAt scans an identifier beginning exactly at offset i and
// returns the byte offset just past it.
func identEndAt(s string, i int) (int, bool) {
	if i >= len(s) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(s[i:])
	if !isIdentStart(r) {
		return 0, false
	}
	j := i + size
	for j < len(s) {
		r, size = utf8.DecodeRuneInString(s[j:])
		if !isIdentPart(r) {
			break
		}
		j += size
	}
	return j, true
}

// Identifier classification follows Unicode ID_Start/ID_Continue, with
// '_' allowed as a start character.
func isIdentStart(r rune) bool {
	return r == '_' || unicode.In(r, unicode.L, unicode.Nl, unicode.Other_ID_Start)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}
