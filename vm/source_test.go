package vm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSourcesConcatenates(t *testing.T) {
	lib := strings.NewReader("macro inc 1 add ; ")
	prog := strings.NewReader("41 inc")

	source, err := ReadSources(lib, prog)
	require.NoError(t, err)
	assert.Contains(t, source, "macro inc 1 add ;")
	assert.Contains(t, source, "41 inc")
}

func TestWithSourceFilesRunsConcatenatedProgram(t *testing.T) {
	lib := strings.NewReader("macro inc 1 add ; ")
	prog := strings.NewReader("41 inc")

	m := New(WithSourceFiles(lib, prog))
	got := run(t, m)
	assert.Equal(t, EndOfProgram, got)
	assert.Equal(t, []Value{42}, m.Stack())
}
