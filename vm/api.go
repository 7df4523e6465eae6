package vm

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/ioutil"
	"math/rand"

	"github.com/corbinlang/froth/internal/flushio"
	"github.com/corbinlang/froth/internal/panicerr"
)

// New constructs a VM, applying opts in order. Built-ins are always
// present; opts layer a source, an output sink, host word-table
// extensions, and logging on top -- the construct(source, output_sink,
// custom_words) host API of spec.md 6.
func New(opts ...VMOption) *VM {
	vm := &VM{
		variables:  make(map[string]variable, errorKindCount),
		words:      builtinWords.Clone(),
		catchMap:   make(map[int64]int),
		pc:         -1,
		out:        flushio.NewWriteFlusher(ioutil.Discard),
		randSource: rand.New(rand.NewSource(1)),
	}
	seedErrorVariables(vm.variables)
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
	return vm
}

// Close releases any closers registered by options (e.g. an output
// file opened on the host's behalf).
func (vm *VM) Close() (err error) {
	for i := len(vm.closers) - 1; i >= 0; i-- {
		if cerr := vm.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Run drives the VM to completion with RunUntilEnd, recovering any Go
// panic (a host word handler bug, or an output sink failure routed
// through halt) into a returned error rather than crashing the caller
// -- mirrors the teacher's api.go Run/panicerr.Recover pairing. On a
// clean run the terminal ErrorKind (normally EndOfProgram) is returned
// with a nil error; when a panic or halt stops the run, err is non-nil
// and the returned ErrorKind is Undefined.
func (vm *VM) Run(ctx context.Context) (ErrorKind, error) {
	var result ErrorKind
	err := panicerr.Recover("froth.VM", func() error {
		result = vm.RunUntilEnd(ctx)
		return nil
	})
	if err == nil {
		return result, nil
	}
	var he haltError
	if errors.As(err, &he) {
		return result, he.error
	}
	return result, err
}

// VMOption configures a VM at construction time.
type VMOption interface{ apply(vm *VM) }

type optFunc func(vm *VM)

func (f optFunc) apply(vm *VM) { f(vm) }

// WithSource sets the VM's program from source text. A synthetic blank
// line is always prepended ahead of the split source so that "line 1"
// as a Froth program author counts it is pc==1 once running -- this
// is what makes jump/reljump/line targets land where a human reading
// the program would expect; see DESIGN.md for why this is needed
// (spec.md 4.7's pc==-1 sentinel only lines up with 0-indexed targets
// when the source is conventionally padded with a leading blank line,
// which we make unconditional instead of incidental).
func WithSource(source string) VMOption {
	return optFunc(func(vm *VM) {
		vm.lines = append([]string{""}, splitSource(source)...)
		vm.pc = -1
	})
}

// WithSourceReader reads all of r and applies it via WithSource.
func WithSourceReader(r io.Reader) VMOption {
	return optFunc(func(vm *VM) {
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(r); err != nil {
			vm.halt(err)
		}
		WithSource(buf.String()).apply(vm)
	})
}

// WithWordTable layers extra words on top of the built-in table --
// spec.md 6's custom_words. The table is cloned so later host-side
// mutation of the table passed in never reaches a running VM
// (spec.md 5).
func WithWordTable(wt WordTable) VMOption {
	return optFunc(func(vm *VM) {
		for name, entry := range wt {
			vm.words[name] = entry
		}
	})
}

// WithOutput sets the VM's output sink -- spec.md 6's output_sink.
func WithOutput(w io.Writer) VMOption {
	return optFunc(func(vm *VM) {
		if vm.out != nil {
			vm.out.Flush()
		}
		vm.out = flushio.NewWriteFlusher(w)
		if cl, ok := w.(io.Closer); ok {
			vm.closers = append(vm.closers, cl)
		}
	})
}

// WithTee additionally mirrors all output to w, without replacing the
// primary sink.
func WithTee(w io.Writer) VMOption {
	return optFunc(func(vm *VM) {
		vm.out = flushio.WriteFlushers(vm.out, flushio.NewWriteFlusher(w))
		if cl, ok := w.(io.Closer); ok {
			vm.closers = append(vm.closers, cl)
		}
	})
}

// WithLogf enables per-tick tracing through logfn.
func WithLogf(logfn func(mess string, args ...interface{})) VMOption {
	return optFunc(func(vm *VM) {
		vm.logfn = logfn
	})
}

// WithMemLimit caps how large the current-line buffer (the macro/if
// splice target) is allowed to grow before evalLine raises
// DepthExceeded -- spec.md 9's note that a cyclic, unguarded macro
// diverges unless something enforces a cap. Zero (the default)
// disables the check.
func WithMemLimit(limit uint) VMOption {
	return optFunc(func(vm *VM) {
		vm.lineDepthLimit = int(limit)
	})
}

// WithRandSeed makes "rand" deterministic, for tests and reproducible
// runs.
func WithRandSeed(seed int64) VMOption {
	return optFunc(func(vm *VM) {
		vm.randSource = rand.New(rand.NewSource(seed))
	})
}

// Stack returns a snapshot of the operand stack, bottom first.
func (vm *VM) Stack() []Value {
	out := make([]Value, len(vm.stack.vals))
	copy(out, vm.stack.vals)
	return out
}

// Memory returns a snapshot of linear memory.
func (vm *VM) Memory() []Value {
	out := make([]Value, len(vm.mem.cells))
	copy(out, vm.mem.cells)
	return out
}

// PC returns the current program counter.
func (vm *VM) PC() int { return vm.pc }

// VariableNames returns every currently-bound name, including the
// pre-seeded error-code variables, for host-side inspection (e.g. a
// CLI dump).
func (vm *VM) VariableNames() []string {
	names := make([]string, 0, len(vm.variables))
	for name := range vm.variables {
		names = append(names, name)
	}
	return names
}

// Lookup returns the value bound to name by "var", if any.
func (vm *VM) Lookup(name string) (Value, bool) {
	v, ok := vm.variables[name]
	if !ok || v.isMacro {
		return 0, false
	}
	return v.value, true
}

// LookupMacro returns a copy of the token sequence bound to name by
// "macro", if any.
func (vm *VM) LookupMacro(name string) ([]Token, bool) {
	v, ok := vm.variables[name]
	if !ok || !v.isMacro {
		return nil, false
	}
	return cloneTokens(v.macro), true
}

// CatchTarget returns the catch-map entry for errno, if any.
func (vm *VM) CatchTarget(errno int64) (int, bool) {
	target, ok := vm.catchMap[errno]
	return target, ok
}
