package vm

import (
	"fmt"
	"strings"
)

// logging is a small leveled-log-line helper, adapted from the
// teacher's core.go/internals.go logging struct: when logfn is nil
// (the default) every call is a no-op, so tracing costs nothing unless
// a host opts in via WithLogf.
type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		mark = strings.Repeat(" ", n) + mark
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
