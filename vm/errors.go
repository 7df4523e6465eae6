package vm

import "fmt"

// ErrorKind is a Froth-level result code: every word handler, every
// evaluation step, and every Tick either succeeds or returns one of
// these. They are values, never Go panics, by design -- see the
// catch/raise words in words.go and the catch-map lookup in driver.go.
type ErrorKind int64

// Built-in error codes, stable by contract: these integers are what
// "catch" keys on, what a macro's raise collides with, and what is
// pre-seeded into the variable map under the matching name.
const (
	Undefined ErrorKind = iota
	Success
	StackUnderflow
	EndOfProgram
	EndOfLine
	UnknownWord
	MemoryError
	DepthExceeded
	DivideByZero

	errorKindCount
)

var errorKindNames = [errorKindCount]string{
	Undefined:      "UNDEFINED",
	Success:        "SUCCESS",
	StackUnderflow: "STACK_UNDERFLOW",
	EndOfProgram:   "END_OF_PROGRAM",
	EndOfLine:      "END_OF_LINE",
	UnknownWord:    "UNKNOWN_WORD",
	MemoryError:    "MEMORY_ERROR",
	DepthExceeded:  "DEPTH_EXCEEDED",
	DivideByZero:   "DIVIDE_BY_ZERO",
}

// String renders the stable name used for display and for pre-seeding
// the variable map, including the USER_ERROR_<n> form that raise
// produces for any code outside the built-in table.
func (e ErrorKind) String() string {
	if e >= 0 && int(e) < len(errorKindNames) && errorKindNames[e] != "" {
		return errorKindNames[e]
	}
	if e == Undefined {
		return "UNDEFINED"
	}
	return fmt.Sprintf("USER_ERROR_%d", int64(e))
}

// haltError wraps a Go-level error (almost always from the output sink
// or a host word handler) that forced the VM to stop running entirely,
// as opposed to a recoverable ErrorKind. Mirrors the teacher's
// haltError/vmHaltError: a distinct type so Run can unwrap it back to
// the underlying cause.
type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("froth: halted: %v", err.error)
	}
	return "froth: halted"
}

func (err haltError) Unwrap() error { return err.error }
