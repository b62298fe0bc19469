package wgslpp

import "strings"

// stripComments removes comment text from a single logical line and
// reports whether the next line starts inside a block comment. It runs
// after continuation joining and before directive parsing, since a
// comment may hide or reveal a directive marker.
//
// When inBlock is true and the line has no closing "*/", the line is
// left untouched and the caller is expected to drop it entirely.
func stripComments(line string, inBlock bool) (string, bool) {
	if inBlock {
		idx := strings.Index(line, "*/")
		if idx < 0 {
			return line, true
		}
		line = line[idx+2:]
	}

	// Remove complete block comments contained in the line.
	for {
		open := strings.Index(line, "/*")
		if open < 0 {
			break
		}
		end := strings.Index(line[open+2:], "*/")
		if end < 0 {
			break
		}
		line = line[:open] + line[open+2+end+2:]
	}

	// Line comments run to end of line.
	if idx := strings.Index(line, "//"); idx >= 0 {
		return line[:idx], false
	}

	// A hanging "/*" opens a block comment for the following lines.
	if strings.Contains(line, "/*") {
		return line, true
	}
	return line, false
}
