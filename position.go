package chervil

import (
	"fmt"
	"strings"
)

// Position is a zero-based line and column within an input string.
type Position struct {
	Line, Col int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Col+1)
}

// PositionAt converts a rune offset into a line and column. Offsets past
// the end of the input resolve to the position just after the last rune.
func PositionAt(input string, offset int) Position {
	line, col := 0, 0

	for i, ch := range []rune(input) {
		if i == offset {
			break
		}

		if ch == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}

	return Position{line, col}
}

func digitCount(input int) int {
	if input == 0 {
		return 1
	}

	count := 0

	for input != 0 {
		input /= 10
		count++
	}

	return count
}

// FormatContext renders the lines around a rune offset with a marker
// pointing at it, for error display.
func FormatContext(input string, offset int, contextLineCount int) string {
	loc := PositionAt(input, offset)
	lines := strings.Split(input, "\n")
	startLineNum := max(0, loc.Line-contextLineCount)
	endLineNum := min(loc.Line+contextLineCount+1, len(lines))
	maxLineNumWidth := digitCount(endLineNum + 1)

	var b strings.Builder

	for i := startLineNum; i < endLineNum; i++ {
		fmt.Fprintf(&b, "%*d │ %s\n", maxLineNumWidth, i+1, lines[i])

		if i == loc.Line {
			fmt.Fprintf(&b, "%*s │ %s╰─── [starting here]\n", maxLineNumWidth, "", strings.Repeat(" ", loc.Col))
		}
	}

	return b.String()
}
