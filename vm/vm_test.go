package vm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run drives source to completion (or a bounded number of ticks, to
// guard against an infinite loop in a broken test program) and returns
// the terminal code.
func run(t *testing.T, vm *VM) ErrorKind {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < 10000; i++ {
		if result := vm.Tick(ctx); result != Success {
			return result
		}
	}
	t.Fatal("program did not terminate within 10000 ticks")
	return Undefined
}

func newTestVM(source string, opts ...VMOption) *VM {
	all := append([]VMOption{WithSource(source)}, opts...)
	return New(all...)
}

// TestScenarios exercises spec.md 8's seven worked end-to-end programs
// verbatim.
func TestScenarios(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   ErrorKind
		stack  []Value
	}{
		{
			name:   "arithmetic",
			source: "1 1 1\n1 2 add\n3 2 sub",
			want:   EndOfProgram,
			stack:  []Value{1, 1, 1, 3, 1},
		},
		{
			name:   "macro",
			source: "macro two 1 1 add ; 1\ntwo",
			want:   EndOfProgram,
			stack:  []Value{1, 2},
		},
		{
			name:   "jump and reljump",
			source: "3 jump\n1234\n67\n2 reljump\n89",
			want:   EndOfProgram,
			stack:  []Value{67},
		},
		{
			name:   "if and reljump",
			source: "0 if 58 ; 2\n1 if 2 reljump ; 5\n6",
			want:   EndOfProgram,
			stack:  []Value{2},
		},
		{
			name:   "memory",
			source: "10 alloc\n5 85 memwrite\n5 memread\nhere\n5 dealloc\nhere",
			want:   EndOfProgram,
			stack:  []Value{85, 10, 5},
		},
		{
			name:   "string literal",
			source: `"Hello World!"`,
			want:   EndOfProgram,
			stack:  []Value{33, 100, 108, 114, 111, 87, 32, 111, 108, 108, 101, 72, 12},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			vm := newTestVM(c.source)
			got := run(t, vm)
			assert.Equal(t, c.want, got, "terminal code")
			assert.Equal(t, c.stack, vm.Stack(), "final stack")
		})
	}

	t.Run("catch and raise", func(t *testing.T) {
		vm := newTestVM("34 -1 catch\n34 raise\n34 endcatch\n35 raise")
		got := run(t, vm)
		assert.Equal(t, ErrorKind(35), got)
		assert.Equal(t, "USER_ERROR_35", got.String())
		assert.Empty(t, vm.Stack())
	})
}

func TestStackUnderflow(t *testing.T) {
	vm := newTestVM("add")
	got := run(t, vm)
	assert.Equal(t, StackUnderflow, got)
}

func TestUnknownWord(t *testing.T) {
	vm := newTestVM("frobnicate")
	got := run(t, vm)
	assert.Equal(t, UnknownWord, got)
}

func TestDivideByZero(t *testing.T) {
	vm := newTestVM("1 0 div")
	got := run(t, vm)
	assert.Equal(t, DivideByZero, got)
}

func TestDepthExceededOnRunawayMacro(t *testing.T) {
	vm := newTestVM("macro loop loop loop ; loop", WithMemLimit(8))
	got := run(t, vm)
	assert.Equal(t, DepthExceeded, got)
}

func TestMemoryErrorOutOfBounds(t *testing.T) {
	vm := newTestVM("5 memread")
	got := run(t, vm)
	assert.Equal(t, MemoryError, got)
}

// TestCatchSwallowsAndAdvances covers the "handler < 0" branch of the
// catch map: the error is swallowed and the driver just moves on to
// the next line, per spec.md 4.7.
func TestCatchSwallowsAndAdvances(t *testing.T) {
	vm := newTestVM("8 -1 catch\n1 0 div\n99")
	got := run(t, vm)
	assert.Equal(t, EndOfProgram, got)
	assert.Equal(t, []Value{99}, vm.Stack())
}

// TestCatchRetargetsPC covers the "handler >= 0" branch: the error
// jumps PC to the given line instead of merely advancing past it.
func TestCatchRetargetsPC(t *testing.T) {
	vm := newTestVM("8 4 catch\n1 0 div\n111\n222")
	got := run(t, vm)
	assert.Equal(t, EndOfProgram, got)
	assert.Equal(t, []Value{222}, vm.Stack())
}

func TestVariableLookupAndReassignment(t *testing.T) {
	vm := newTestVM("5 var x\nx\n7 var x\nx")
	got := run(t, vm)
	assert.Equal(t, EndOfProgram, got)
	assert.Equal(t, []Value{5, 7}, vm.Stack())
	v, ok := vm.Lookup("x")
	require.True(t, ok)
	assert.EqualValues(t, 7, v)
}

func TestBlankAndCommentLinesAreSkipped(t *testing.T) {
	vm := newTestVM("\n# a comment\n   \n42")
	got := run(t, vm)
	assert.Equal(t, EndOfProgram, got)
	assert.Equal(t, []Value{42}, vm.Stack())
}

func TestOutputSink(t *testing.T) {
	var buf strings.Builder
	vm := newTestVM(`"hi" drop emit emit`, WithOutput(&buf))
	got := run(t, vm)
	assert.Equal(t, EndOfProgram, got)
	assert.Equal(t, "hi", buf.String())
}

func TestHostWordTable(t *testing.T) {
	calls := 0
	extra := WordTable{}
	extra.Set("ping", func(vm *VM, _ []Token) ErrorKind {
		calls++
		vm.stack.push(1)
		return Success
	}, 0)

	vm := newTestVM("ping ping", WithWordTable(extra))
	got := run(t, vm)
	assert.Equal(t, EndOfProgram, got)
	assert.Equal(t, 2, calls)
	assert.Equal(t, []Value{1, 1}, vm.Stack())
}
