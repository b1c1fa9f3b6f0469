package main

import (
	"context"
	"errors"
	"io"

	"github.com/jcorbin/goeacal/internal/panicerr"
)

// New creates a VM with the given options applied over defaults: output is
// discarded, read and write resolve against the working directory, and
// commands come from the process-wide registry.
func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Run runs the program until it ends, exits, fails, or ctx is done. Any
// FatalError raised by the program is returned as-is.
func (vm *VM) Run(ctx context.Context) error {
	err := panicerr.Recover("VM", func() error {
		vm.run(ctx)
		return vm.out.Flush()
	})
	if cerr := vm.Close(); err == nil {
		err = cerr
	}
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var halt haltError
	if errors.As(err, &halt) {
		err = halt.error
	}
	return err
}

func WithSource(r io.Reader) VMOption          { return withSource(r) }
func WithOutput(w io.Writer) VMOption          { return withOutput(w) }
func WithTee(w io.Writer) VMOption             { return withTee(w) }
func WithArgs(args ...string) VMOption         { return argsOption(args) }
func WithStorage(s Storage) VMOption           { return withStorage(s) }
func WithDir(dir string) VMOption              { return withStorage(dirStorage(dir)) }
func WithRegistry(reg *Registry) VMOption      { return withRegistry(reg) }
func WithLineSource(ls LineSource) VMOption    { return withLineSource(ls) }
func WithPageSize(size int) VMOption           { return withPageSize(size) }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }

// WithListener registers ex for event before the program starts.
func WithListener(event string, ex Executable) VMOption { return listenOption{event, ex} }

type listenOption struct {
	event string
	ex    Executable
}

func (lo listenOption) apply(vm *VM) { vm.Listen(lo.event, lo.ex) }
