package main

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/corbinlang/froth/vm"
)

// runOne reads the source at path (preceded by any configured library
// files), drives a VM over it to completion, and writes its program
// output to out. A non-EndOfProgram terminal code or a halted run (an
// I/O failure reaching the output sink) is reported as an error -- the
// caller logs it and moves to the next file rather than aborting the
// whole batch.
func runOne(cfg runConfig, path string, out io.Writer) error {
	sourceOpt, err := loadSource(cfg, path)
	if err != nil {
		return errors.Wrapf(err, "reading %v", path)
	}

	opts := []vm.VMOption{
		sourceOpt,
		// out is shared with later runs, so its Close (if any) is hidden
		// from the VM's Close.
		vm.WithOutput(struct{ io.Writer }{out}),
	}
	if cfg.trace {
		opts = append(opts, vm.WithLogf(cfg.log.Leveledf("TRACE")))
	}
	if cfg.memLimit > 0 {
		opts = append(opts, vm.WithMemLimit(cfg.memLimit))
	}

	m := vm.New(opts...)
	defer m.Close()

	ctx := context.Background()
	if cfg.timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	result, runErr := m.Run(ctx)

	if cfg.dump {
		dumpVM(cfg.log, path, m, result)
	}

	if runErr != nil {
		return errors.Wrapf(runErr, "%v: running", path)
	}
	if result != vm.EndOfProgram {
		return errors.Errorf("%v: terminated with %v", path, result)
	}
	return nil
}

// loadSource builds the VMOption that sets a run's program: plain
// WithSource for the common case, or, when -lib is set, WithSource over
// every configured library file followed by path, concatenated up front
// with ReadSources before the files are closed.
func loadSource(cfg runConfig, path string) (vm.VMOption, error) {
	if len(cfg.libPaths) == 0 {
		source, err := readSource(path)
		if err != nil {
			return nil, err
		}
		return vm.WithSource(source), nil
	}

	var readers []io.Reader
	for _, libPath := range cfg.libPaths {
		f, err := os.Open(libPath)
		if err != nil {
			return nil, errors.Wrapf(err, "opening library %v", libPath)
		}
		defer f.Close()
		readers = append(readers, f)
	}
	if path == "-" {
		readers = append(readers, os.Stdin)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		readers = append(readers, f)
	}
	source, err := vm.ReadSources(readers...)
	if err != nil {
		return nil, err
	}
	return vm.WithSource(source), nil
}
