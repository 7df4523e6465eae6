// Command froth runs one or more Froth source files.
//
// In the default (sequential) mode each file named on the command line
// is run to completion, in order, sharing stdout. With -batch, every
// file is instead run concurrently in its own VM, via
// golang.org/x/sync/errgroup, with each VM's output tagged by filename
// so interleaved runs stay legible.
package main

import (
	"flag"
	"io/ioutil"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/corbinlang/froth/internal/logio"
)

func main() {
	var (
		timeout  time.Duration
		trace    bool
		dump     bool
		batch    bool
		memLimit uint
	)
	flag.DurationVar(&timeout, "timeout", 0, "kill any program that runs past this duration")
	flag.BoolVar(&trace, "trace", false, "log each dispatched word to stderr")
	flag.BoolVar(&dump, "dump", false, "print a stack/memory/variable dump after each run")
	flag.BoolVar(&batch, "batch", false, "run all named files concurrently instead of in sequence")
	flag.UintVar(&memLimit, "mem-limit", 0, "cap the current-line buffer depth, raising DEPTH_EXCEEDED past it (0 disables)")
	var lib string
	flag.StringVar(&lib, "lib", "", "comma-separated library files loaded ahead of every named program")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer os.Exit(log.ExitCode())

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	var libPaths []string
	if lib != "" {
		libPaths = strings.Split(lib, ",")
	}
	cfg := runConfig{timeout: timeout, trace: trace, dump: dump, memLimit: memLimit, log: &log, libPaths: libPaths}

	if batch {
		runBatch(cfg, paths)
		return
	}
	for _, path := range paths {
		if err := runOne(cfg, path, os.Stdout); err != nil {
			log.Errorf("%v: %+v", path, err)
		}
	}
}

type runConfig struct {
	timeout  time.Duration
	trace    bool
	dump     bool
	memLimit uint
	libPaths []string
	log      *logio.Logger
}

func readSource(path string) (string, error) {
	if path == "-" {
		b, err := ioutil.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := ioutil.ReadFile(path)
	return string(b), err
}

// runBatch drives every path concurrently, each in its own VM, and
// waits for all of them -- grounded on the teacher's
// scripts/gen_vm_expects.go, the one place the teacher already paired
// errgroup with a per-VM worker.
func runBatch(cfg runConfig, paths []string) {
	var g errgroup.Group
	for _, path := range paths {
		path := path
		g.Go(func() error {
			w := &prefixWriter{prefix: path, out: os.Stdout}
			if err := runOne(cfg, path, w); err != nil {
				cfg.log.Errorf("%v: %+v", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		cfg.log.Errorf("%+v", err)
	}
}
