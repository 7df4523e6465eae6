package main

import (
	"fmt"
	"io"
	"sync"
)

// prefixWriter tags every line written to out with prefix, so that
// -batch's concurrently-running programs stay legible when their
// output interleaves on a shared stream.
type prefixWriter struct {
	prefix string
	out    io.Writer

	mu      sync.Mutex
	atStart bool
}

func (pw *prefixWriter) Write(p []byte) (int, error) {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	if !pw.atStart {
		fmt.Fprintf(pw.out, "[%v] ", pw.prefix)
		pw.atStart = true
	}
	n, err := pw.out.Write(p)
	if n > 0 && p[n-1] == '\n' {
		pw.atStart = false
	}
	return n, err
}
