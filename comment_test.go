package wgslpp

import "testing"

func TestStripComments(t *testing.T) {
	for _, tt := range []struct {
		name        string
		line        string
		inBlock     bool
		want        string
		wantInBlock bool
	}{
		{"plain", "let x = 1;", false, "let x = 1;", false},
		{"line comment", "x // c", false, "x ", false},
		{"line comment at start", "// c", false, "", false},
		{"inline block", "a /* c */ b", false, "a  b", false},
		{"two blocks", "a /* c */ b /* d */ e", false, "a  b  e", false},
		{"block containing slashes", "a /* // */ b", false, "a  b", false},
		{"opens block", "a /* c", false, "a /* c", true},
		{"inside block without closer", "anything", true, "anything", true},
		{"closes block", "c */ after", true, " after", false},
		{"closes then opens again", "c */ a /* b", true, " a /* b", true},
		{"closes then line comment", "c */ x // y", true, " x ", false},
		{"line comment hides opener", "a /* b // c", false, "a /* b ", false},
		{"empty", "", false, "", false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, inBlock := stripComments(tt.line, tt.inBlock)
			if got != tt.want || inBlock != tt.wantInBlock {
				t.Errorf("stripComments(%q, %v) = %q, %v; want %q, %v",
					tt.line, tt.inBlock, got, inBlock, tt.want, tt.wantInBlock)
			}
		})
	}
}
