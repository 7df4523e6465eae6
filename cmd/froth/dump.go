package main

import (
	"sort"
	"strconv"
	"strings"

	"github.com/corbinlang/froth/internal/logio"
	"github.com/corbinlang/froth/internal/runeio"
	"github.com/corbinlang/froth/vm"
)

// dumpVM prints a summary of a finished VM's state through the
// logger's DUMP level -- a generalization of the teacher's vmDumper
// (prog/dict/stack/mem sections) to Froth's data model: terminal
// code, PC, operand stack, memory, and bound variable names.
func dumpVM(log *logio.Logger, path string, m *vm.VM, result vm.ErrorKind) {
	dumpf := func(mess string, args ...interface{}) {
		log.Printf("DUMP", mess, args...)
	}

	dumpf("%v: terminated %v", path, result)
	dumpf("  pc: %v", m.PC())
	dumpf("  stack: %v", m.Stack())
	dumpf("  memory: %v", formatCells(m.Memory()))

	names := m.VariableNames()
	sort.Strings(names)
	for _, name := range names {
		if v, ok := m.Lookup(name); ok {
			dumpf("  var %v = %v", name, v)
			continue
		}
		if body, ok := m.LookupMacro(name); ok {
			dumpf("  macro %v = %v", name, body)
		}
	}
}

// formatCells renders memory as a bracketed list, annotating any cell
// that falls in the classic ASCII control range with its named form
// (e.g. "10<NL>") -- memory cells double as character codes for
// "memread"/"memwrite"-built strings, and the raw integer alone hides
// that. Uses the teacher's internal/runeio.C0Ctls naming table.
func formatCells(cells []vm.Value) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(formatCell(c))
	}
	b.WriteByte(']')
	return b.String()
}

func formatCell(c vm.Value) string {
	s := strconv.FormatInt(int64(c), 10)
	if c >= 0 && c < int64(len(runeio.C0Ctls)) {
		return s + runeio.C0Ctls[c].N
	}
	return s
}
