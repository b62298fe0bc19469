package wgslpp

import "fmt"

// ErrorKind identifies the failure class of a preprocessing Error.
type ErrorKind int

const (
	// ErrFileNotFound means the root file or an included file could not
	// be opened. Name holds the filename as written at the include site.
	ErrFileNotFound ErrorKind = iota

	// ErrFileNotUTF8 means a file's contents did not decode as UTF-8.
	ErrFileNotUTF8

	// ErrUnknownDirective means a line contained a '#' introducing a
	// directive the engine does not recognize. Name holds the directive
	// token, '#' included.
	ErrUnknownDirective

	// ErrIncludeArgs means a directive had the wrong number or shape of
	// arguments. Despite the name this kind also covers malformed
	// #define and #undef lines.
	ErrIncludeArgs

	// ErrMacroNoParen means a function-like macro invocation was never
	// closed before the end of the line.
	ErrMacroNoParen

	// ErrMacroArgCount means a function-like macro was invoked with the
	// wrong number of arguments.
	ErrMacroArgCount
)

// Error is the only error type the engine produces. The first error
// encountered anywhere in a run unwinds to the top-level caller; no
// partial output is returned alongside it.
type Error struct {
	Kind ErrorKind
	Name string // file or directive name, for the kinds that carry one

	// Expected and Got are set for ErrMacroArgCount.
	Expected int
	Got      int
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrFileNotFound:
		return "file not found: " + e.Name
	case ErrFileNotUTF8:
		return "file not valid utf-8: " + e.Name
	case ErrUnknownDirective:
		return "unknown directive: " + e.Name
	case ErrIncludeArgs:
		return "incorrect arguments to directive"
	case ErrMacroNoParen:
		return "macro must have parenthesis"
	case ErrMacroArgCount:
		return fmt.Sprintf("macro expected %d arguments, got %d", e.Expected, e.Got)
	}
	return "unknown preprocessor error"
}

func errFile(kind ErrorKind, name string) *Error {
	return &Error{Kind: kind, Name: name}
}

func errArgCount(expected, got int) *Error {
	return &Error{Kind: ErrMacroArgCount, Expected: expected, Got: got}
}
