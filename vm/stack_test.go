package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackPushPop(t *testing.T) {
	var s dataStack
	s.push(1)
	s.push(2)
	v, err := s.pop()
	require.Equal(t, Success, err)
	assert.EqualValues(t, 2, v)
	assert.Equal(t, 1, s.depth())
}

func TestStackPopUnderflow(t *testing.T) {
	var s dataStack
	_, err := s.pop()
	assert.Equal(t, StackUnderflow, err)
}

func TestStackPop2Order(t *testing.T) {
	var s dataStack
	s.push(10)
	s.push(3)
	second, top, err := s.pop2()
	require.Equal(t, Success, err)
	assert.EqualValues(t, 10, second)
	assert.EqualValues(t, 3, top)
}

func TestStackDupSwapOverRot(t *testing.T) {
	var s dataStack
	s.push(1)
	s.push(2)
	s.push(3)

	require.Equal(t, Success, s.rot())
	assert.Equal(t, []Value{3, 1, 2}, s.vals)

	require.Equal(t, Success, s.swap())
	assert.Equal(t, []Value{3, 2, 1}, s.vals)

	require.Equal(t, Success, s.over())
	assert.Equal(t, []Value{3, 2, 1, 2}, s.vals)

	require.Equal(t, Success, s.dup())
	assert.Equal(t, []Value{3, 2, 1, 2, 2}, s.vals)
}

func TestMemoryAllocDeallocBounds(t *testing.T) {
	var m memory
	require.Equal(t, Success, m.alloc(3))
	assert.EqualValues(t, 3, m.here())

	require.Equal(t, Success, m.write(1, 42))
	v, err := m.read(1)
	require.Equal(t, Success, err)
	assert.EqualValues(t, 42, v)

	_, err = m.read(5)
	assert.Equal(t, MemoryError, err)

	assert.Equal(t, MemoryError, m.dealloc(10))

	require.Equal(t, Success, m.dealloc(3))
	assert.EqualValues(t, 0, m.here())
}
