package vm

// dataStack is Froth's operand stack: ordered Value, push/pop at the
// top, with a handful of ops that reach a shallow interior position
// (over, rot, pick-style access for swap/dup-adjacent built-ins). Every
// pop path fails with StackUnderflow rather than panicking or
// indexing out of bounds, per spec.md 4.2.
type dataStack struct {
	vals []Value
}

func (s *dataStack) push(v Value) { s.vals = append(s.vals, v) }

func (s *dataStack) depth() int { return len(s.vals) }

// pop removes and returns the top value.
func (s *dataStack) pop() (Value, ErrorKind) {
	if len(s.vals) < 1 {
		return 0, StackUnderflow
	}
	i := len(s.vals) - 1
	v := s.vals[i]
	s.vals = s.vals[:i]
	return v, Success
}

// pop2 removes and returns the top two values as (second, top); this
// is the shape every binary op needs, e.g. "a b sub" pops b then a and
// wants (a, b) back as (second, top).
func (s *dataStack) pop2() (second, top Value, err ErrorKind) {
	if len(s.vals) < 2 {
		return 0, 0, StackUnderflow
	}
	n := len(s.vals)
	top, second = s.vals[n-1], s.vals[n-2]
	s.vals = s.vals[:n-2]
	return second, top, Success
}

// dup duplicates the top value: ( n -- n n ).
func (s *dataStack) dup() ErrorKind {
	if len(s.vals) < 1 {
		return StackUnderflow
	}
	s.push(s.vals[len(s.vals)-1])
	return Success
}

// swap exchanges the top two values: ( a b -- b a ).
func (s *dataStack) swap() ErrorKind {
	if len(s.vals) < 2 {
		return StackUnderflow
	}
	n := len(s.vals)
	s.vals[n-1], s.vals[n-2] = s.vals[n-2], s.vals[n-1]
	return Success
}

// over copies the second element to the top: ( a b -- a b a ).
func (s *dataStack) over() ErrorKind {
	if len(s.vals) < 2 {
		return StackUnderflow
	}
	s.push(s.vals[len(s.vals)-2])
	return Success
}

// rot rotates the top three elements: ( a b c -- c a b ).
func (s *dataStack) rot() ErrorKind {
	n := len(s.vals)
	if n < 3 {
		return StackUnderflow
	}
	a, b, c := s.vals[n-3], s.vals[n-2], s.vals[n-1]
	s.vals[n-3], s.vals[n-2], s.vals[n-1] = c, a, b
	return Success
}
