package vm

// evalLine implements spec.md 4.8: repeatedly pop the front token of
// the current line and dispatch it, until the line is exhausted (the
// success case) or some word returns a non-success ErrorKind.
func (vm *VM) evalLine() ErrorKind {
	for {
		if vm.lineDepthLimit > 0 && len(vm.line) > vm.lineDepthLimit {
			return DepthExceeded
		}

		tok, ok := vm.popFront()
		if !ok {
			return Success
		}
		vm.logf("@", "%v (pc %v, depth %v)", tok, vm.pc, vm.stack.depth())

		if tok.Kind == TokenWord {
			if entry, isWord := vm.words[tok.Word]; isWord {
				args, err := vm.takeLiteralArgs(entry.LiteralArity)
				if err != Success {
					return err
				}
				if err := entry.Handler(vm, args); err != Success {
					return err
				}
				// jump/reljump abandon the rest of the current line.
				if vm.jumped {
					vm.line = nil
					return Success
				}
				continue
			}
		}

		if err := vm.evalLookup(tok); err != Success {
			return err
		}
	}
}

// takeLiteralArgs pops arity raw tokens off the front of the line --
// these are NOT evaluated, they are identifiers like a variable name
// (spec.md 4.8). Returns EndOfLine if the line runs out first.
func (vm *VM) takeLiteralArgs(arity int) ([]Token, ErrorKind) {
	if arity == 0 {
		return nil, Success
	}
	args := make([]Token, 0, arity)
	for i := 0; i < arity; i++ {
		tok, ok := vm.popFront()
		if !ok {
			return nil, EndOfLine
		}
		args = append(args, tok)
	}
	return args, Success
}

// evalLookup implements spec.md 4.6's lookup order for a token that is
// not a word-table entry: a bound value is pushed, a bound macro body
// is spliced into the current line, an integer literal is pushed, and
// anything else is UnknownWord.
func (vm *VM) evalLookup(tok Token) ErrorKind {
	if tok.Kind == TokenWord {
		if body, found := vm.lookupVariable(tok.Word); found {
			if body != nil {
				vm.pushFront(body)
			}
			return Success
		}
		return UnknownWord
	}
	vm.stack.push(tok.Int)
	return Success
}
