// Package wgslpp implements a C-preprocessor-like dialect over WGSL
// shader source text: #include, #define and #undef directives, //
// and /* */ comment stripping, backslash line continuation, and
// object-like and function-like macro expansion.
//
// Processing is line-oriented. Each physical line is joined across
// trailing backslash continuations, stripped of comments, checked for a
// directive marker ('#' anywhere on the line, not only at column 0),
// and then macro-expanded to a fixpoint. Includes are resolved relative
// to the including file and expand to their fully processed contents;
// a file is included at most once per run, which also terminates
// include cycles. Definitions are run-scoped, not file-scoped: a macro
// defined inside an included file stays visible to the includer's
// subsequent lines.
//
// The engine either fully expands the root file or returns the first
// *Error encountered; there is no partial output.
package wgslpp

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Preprocessor expands WGSL source files. Definitions added with
// DefineValue and DefineMacro are applied at the start of every Process
// call; each call otherwise starts from a fresh state.
type Preprocessor struct {
	defines macroTable
}

func New() *Preprocessor {
	return &Preprocessor{defines: macroTable{}}
}

// DefineValue predefines an object-like macro for subsequent runs.
func (p *Preprocessor) DefineValue(name, text string) {
	p.defines[name] = Value{Text: text}
}

// DefineMacro predefines a function-like macro for subsequent runs.
func (p *Preprocessor) DefineMacro(name string, params []string, body string) {
	p.defines[name] = Macro{Params: params, Body: body}
}

// Process expands the file at filename, resolved relative to basepath,
// and returns the expanded text. The macro table and visited set live
// for exactly this call.
func (p *Preprocessor) Process(filename, basepath string) (string, error) {
	r := &run{
		defines: make(macroTable, len(p.defines)),
		visited: map[string]bool{},
	}
	for name, def := range p.defines {
		r.defines[name] = def
	}
	return r.processFile(filename, basepath)
}

// Preprocess expands the file at filename, resolved relative to
// basepath, with no predefined macros.
func Preprocess(filename, basepath string) (string, error) {
	return New().Process(filename, basepath)
}

// ParseDefine splits a command-line style NAME=VALUE define; a bare
// NAME defines it as "1".
func ParseDefine(s string) (name, value string) {
	if i := strings.IndexByte(s, '='); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, "1"
}

// run owns the two tables shared by every recursive include call: the
// macro table and the visited set. Both are threaded through the whole
// traversal and dropped when the top-level call returns.
type run struct {
	defines macroTable
	visited map[string]bool
}

// processFile reads one file and runs the full logical-line pipeline
// over it: continuation join, comment strip, directive dispatch, macro
// expansion. It returns the file's fully processed text, each logical
// line terminated by a newline.
func (r *run) processFile(filename, basepath string) (string, error) {
	// An absolute filename stands on its own; only relative names
	// resolve against basepath.
	sourcePath := filename
	if !filepath.IsAbs(sourcePath) {
		sourcePath = filepath.Join(basepath, sourcePath)
	}
	if abs, err := filepath.Abs(sourcePath); err == nil {
		sourcePath = abs
	}
	parent := filepath.Dir(sourcePath)

	// Include-once: a repeat contributes nothing, which is also what
	// halts include cycles.
	if r.visited[sourcePath] {
		return "", nil
	}
	r.visited[sourcePath] = true

	bs, err := os.ReadFile(sourcePath)
	if err != nil {
		return "", errFile(ErrFileNotFound, filename)
	}
	if !utf8.Valid(bs) {
		return "", errFile(ErrFileNotUTF8, filename)
	}
	lines := splitLines(string(bs))

	var out strings.Builder
	inBlock := false
	for i := 0; i < len(lines); i++ {
		line := lines[i]

		// Join trailing backslash continuations into one logical line
		// before anything else looks at it.
		for strings.HasSuffix(line, "\\") {
			line = line[:len(line)-1]
			i++
			if i >= len(lines) {
				break
			}
			line += lines[i]
		}

		line, inBlock = stripComments(line, inBlock)
		if inBlock {
			// The rest of the line is inside a block comment; it
			// contributes nothing, not even a newline.
			continue
		}

		// The directive marker may sit anywhere on the line. The span
		// from the '#' is replaced by whatever the directive produced.
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			content, err := r.directive(line[idx:], parent)
			if err != nil {
				return "", err
			}
			line = line[:idx] + content
		}

		// Rescan until nothing changes, so an expansion can itself
		// expand into further invocations.
		for {
			changed, next, err := substitute(line, r.defines)
			if err != nil {
				return "", err
			}
			line = next
			if !changed {
				break
			}
		}

		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.String(), nil
}

// directive dispatches the directive beginning at the '#' and returns
// the text that replaces it in the line: an included file's expansion
// for #include, the empty string for #define and #undef.
func (r *run) directive(line, basepath string) (string, error) {
	args := strings.Fields(line)

	switch args[0] {
	case "#include":
		if len(args) != 2 {
			return "", &Error{Kind: ErrIncludeArgs}
		}
		path, ok := parseIncludeArg(args[1])
		if !ok {
			return "", &Error{Kind: ErrIncludeArgs}
		}
		return r.processFile(path, basepath)

	case "#define":
		if len(args) < 3 {
			return "", &Error{Kind: ErrIncludeArgs}
		}
		if name, params, body, ok := parseMacroDefine(line); ok {
			r.defines[name] = Macro{Params: params, Body: body}
		} else {
			r.defines[args[1]] = Value{Text: strings.Join(args[2:], " ")}
		}
		return "", nil

	case "#undef":
		if len(args) != 2 {
			return "", &Error{Kind: ErrIncludeArgs}
		}
		delete(r.defines, args[1])
		return "", nil

	default:
		return "", errFile(ErrUnknownDirective, args[0])
	}
}

// parseIncludeArg strips a matching "..." or <...> wrapper. Both forms
// resolve the same way; there is no search-path distinction.
func parseIncludeArg(arg string) (string, bool) {
	if len(arg) >= 2 && arg[0] == '"' && arg[len(arg)-1] == '"' {
		return arg[1 : len(arg)-1], true
	}
	if len(arg) >= 2 && arg[0] == '<' && arg[len(arg)-1] == '>' {
		return arg[1 : len(arg)-1], true
	}
	return "", false
}

// parseMacroDefine matches the function-macro pattern against the
// directive text: an identifier immediately followed by a parenthesized
// parameter list of at least one name, then whitespace, then the body.
// The pattern is searched anywhere in the text and the first match
// wins, so `#define X foo(a) bar` defines the macro foo, not the value
// X. No match means the directive is an object-like define.
func parseMacroDefine(line string) (name string, params []string, body string, ok bool) {
	for p := 0; p < len(line); {
		start, end, found := findIdent(line, p)
		if !found {
			break
		}
		if end < len(line) && line[end] == '(' {
			if params, body, ok := matchMacroTail(line[end:]); ok {
				return line[start:end], params, body, true
			}
		}
		_, size := utf8.DecodeRuneInString(line[start:])
		p = start + size
	}
	return "", nil, "", false
}

// matchMacroTail parses "(p1, p2, ...)" followed by whitespace and the
// body, where s begins at the opening parenthesis.
func matchMacroTail(s string) (params []string, body string, ok bool) {
	i := 1
	for {
		j, found := identEndAt(s, i)
		if !found {
			return nil, "", false
		}
		i = j
		for i < len(s) && s[i] == ',' {
			i++
			for i < len(s) && isSpace(s[i]) {
				i++
			}
		}
		if i < len(s) && s[i] == ')' {
			break
		}
	}
	rawParams := s[1:i]
	i++

	// At least one whitespace character separates ')' from the body.
	if i >= len(s) || !isSpace(s[i]) {
		return nil, "", false
	}
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	body = s[i:]

	raw := strings.Split(rawParams, ",")
	params = make([]string, 0, len(raw))
	for _, p := range raw {
		params = append(params, strings.TrimSpace(p))
	}
	return params, body, true
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}

// splitLines splits file contents the way a line reader would: the
// final newline does not produce an empty trailing line, and a \r\n
// ending is treated as a line ending.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
