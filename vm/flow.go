package vm

// readFlow implements the flow-capture algorithm of spec.md 4.5: it
// consumes tokens from the front of the current line, tracking nested
// occurrences of any registered flow word, until it finds a balancing
// ";" at depth 0. It is shared by every flow word ("if", "macro", and
// any host-registered one) since the capture rule does not depend on
// which flow word invoked it.
//
// Returns EndOfLine if the line empties before a terminating ";".
func (vm *VM) readFlow() ([]Token, ErrorKind) {
	var seq []Token
	depth := 0
	for {
		tok, ok := vm.popFront()
		if !ok {
			return nil, EndOfLine
		}
		if tok.Kind == TokenWord {
			if entry, isWord := vm.words[tok.Word]; isWord && entry.IsFlow {
				depth++
				seq = append(seq, tok)
				continue
			}
			if tok.Word == ";" {
				if depth == 0 {
					return seq, Success
				}
				depth--
				seq = append(seq, tok)
				continue
			}
		}
		seq = append(seq, tok)
	}
}

// wordIf implements "if": capture a balanced sequence, pop a
// predicate, and -- if non-zero -- prepend the captured sequence to
// the front of the current line so it runs immediately; otherwise
// discard it. spec.md 4.5.
func wordIf(vm *VM, _ []Token) ErrorKind {
	seq, ferr := vm.readFlow()
	if ferr != Success {
		return ferr
	}
	pred, err := vm.stack.pop()
	if err != Success {
		return err
	}
	if pred != 0 {
		vm.pushFront(seq)
	}
	return Success
}

// wordMacro implements "macro NAME ... ;": capture a balanced sequence
// and store it under NAME. A later lookup of NAME splices a copy of
// the sequence into the current line rather than pushing a value --
// see lookupVariable and spec.md 4.5/4.6. Macro expansion is lexically
// substitutive: no return address, no local scope, free access to (and
// mutation of) the global variable map.
func wordMacro(vm *VM, args []Token) ErrorKind {
	seq, ferr := vm.readFlow()
	if ferr != Success {
		return ferr
	}
	vm.defineMacro(args[0].Word, seq)
	return Success
}
