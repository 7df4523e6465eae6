package vm

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/corbinlang/froth/internal/fileinput"
)

// ReadSources concatenates one or more readers into a single Froth
// source string, in order, each separated by a newline -- the shape a
// host needs to load a shared "library" of macro/var definitions ahead
// of a main program. Adapted from the teacher's internal/fileinput.Input,
// which queues multiple rune-reader streams for FIRST/THIRD's
// character-at-a-time kernel bootstrap; here the same queuing is
// repurposed to read whole files rather than single runes at a time,
// since Froth's driver works a line at a time, not a character at a
// time.
func ReadSources(readers ...io.Reader) (string, error) {
	in := fileinput.Input{Queue: readers}
	var buf strings.Builder
	for {
		r, _, err := in.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.Wrap(err, "reading froth source")
		}
		// A zero rune with a nil error marks the boundary between two
		// queued readers (see fileinput.Input.ReadRune) rather than
		// real source content; a newline is written in its place to
		// separate the readers' content in the concatenated result.
		if r == 0 {
			buf.WriteRune('\n')
			continue
		}
		buf.WriteRune(r)
	}
	return buf.String(), nil
}

// WithSourceFiles loads and concatenates readers via ReadSources and
// applies the result via WithSource -- e.g. one or more shared library
// files followed by the program proper.
func WithSourceFiles(readers ...io.Reader) VMOption {
	return optFunc(func(vm *VM) {
		source, err := ReadSources(readers...)
		if err != nil {
			vm.halt(err)
			return
		}
		WithSource(source).apply(vm)
	})
}
