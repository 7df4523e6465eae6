package vm

import (
	"context"
	"strings"
)

// Tick implements spec.md 4.7: it advances at most one source line.
//
//  1. If the program counter is outside [0, line_count), returns
//     EndOfProgram.
//  2. Reads the current line; if blank or starting with "#", advances
//     PC by one and returns Success.
//  3. Tokenizes; a tokenize failure (an unterminated string) is
//     returned as-is.
//  4. Evaluates the line. A clean exhaust advances PC and returns
//     Success. A jump/reljump already moved PC (vm.jumped) and must
//     not be auto-advanced on top of that. Any other non-success code
//     is looked up in the catch map: a handler >= 0 retargets PC and
//     returns Success, a handler < 0 swallows the error and advances
//     PC, and no entry at all surfaces the code unchanged.
func (vm *VM) Tick(ctx context.Context) ErrorKind {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return EndOfProgram
		}
	}

	// pc starts at -1 so that the very first Tick advances to line 0
	// before ever reading a line, per spec.md 3/4.7.
	if vm.pc == -1 {
		vm.pc = 0
	}

	if vm.pc < 0 || vm.pc >= len(vm.lines) {
		return EndOfProgram
	}

	raw := strings.TrimSpace(vm.lines[vm.pc])
	if raw == "" || strings.HasPrefix(raw, "#") {
		vm.pc++
		return Success
	}

	toks, terr := Tokenize(raw)
	if terr != Success {
		return terr
	}

	vm.line = toks
	vm.logf(">", "tick @%v %q", vm.pc, raw)

	vm.jumped = false
	result := vm.evalLine()
	if result == Success {
		if !vm.jumped {
			vm.pc++
		}
		return Success
	}

	if handler, caught := vm.catchMap[int64(result)]; caught {
		if handler >= 0 {
			vm.pc = handler
		} else {
			vm.pc++
		}
		return Success
	}
	return result
}

// RunUntilEnd invokes Tick until it returns something other than
// Success, per spec.md 4.7. EndOfProgram on a normal fall-off-the-end
// is the expected terminal code; any other returned code is an
// unhandled error.
func (vm *VM) RunUntilEnd(ctx context.Context) ErrorKind {
	for {
		if result := vm.Tick(ctx); result != Success {
			return result
		}
	}
}
