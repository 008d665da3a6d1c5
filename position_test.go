package chervil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionAt(t *testing.T) {
	assert := assert.New(t)

	input := "ab\ncde\nf"

	assert.Equal(Position{0, 0}, PositionAt(input, 0))
	assert.Equal(Position{0, 2}, PositionAt(input, 2))
	assert.Equal(Position{1, 0}, PositionAt(input, 3))
	assert.Equal(Position{1, 2}, PositionAt(input, 5))
	assert.Equal(Position{2, 0}, PositionAt(input, 7))
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "2:3", Position{1, 2}.String())
}

func TestFormatContext(t *testing.T) {
	assert := assert.New(t)

	input := "first\nsecond\nthird"
	out := FormatContext(input, 8, 1)

	assert.Contains(out, "1 │ first")
	assert.Contains(out, "2 │ second")
	assert.Contains(out, "3 │ third")
	assert.Contains(out, "╰───")
}
