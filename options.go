package main

import (
	"io"
	"strings"

	"github.com/jcorbin/goeacal/internal/flushio"
	"github.com/jcorbin/goeacal/internal/mem"
)

// VMOption configures a VM under New.
type VMOption interface{ apply(vm *VM) }

var defaultOptions = VMOptions(
	withOutput(io.Discard),
	withStorage(dirStorage("")),
	withPageSize(mem.DefaultCellsPageSize),
)

// VMOptions combines any number of options into one, dropping nils.
func VMOptions(opts ...VMOption) VMOption {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

type options []VMOption

func (opts options) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type sourceOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type argsOption []string
type storageOption struct{ Storage }
type registryOption struct{ *Registry }
type lineSourceOption struct{ LineSource }
type pageSizeOption int

func withSource(r io.Reader) sourceOption       { return sourceOption{r} }
func withOutput(w io.Writer) outputOption       { return outputOption{w} }
func withTee(w io.Writer) teeOption             { return teeOption{w} }
func withStorage(s Storage) storageOption       { return storageOption{s} }
func withPageSize(size int) pageSizeOption      { return pageSizeOption(size) }
func withLineSource(ls LineSource) VMOption     { return lineSourceOption{ls} }
func withRegistry(reg *Registry) registryOption { return registryOption{reg} }

func (src sourceOption) apply(vm *VM) {
	vm.sources.Queue = append(vm.sources.Queue, src.Reader)
}

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.WriteFlushers(vm.out, flushio.NewWriteFlusher(o.Writer))
	if vm.out == nil {
		vm.out = flushio.Discard
	}
}

func (args argsOption) apply(vm *VM) { vm.args = append(vm.args[:0], args...) }
func (s storageOption) apply(vm *VM) { vm.storage = s.Storage }
func (r registryOption) apply(vm *VM) {
	if r.Registry != nil {
		vm.registry = r.Registry
	}
}

func (ls lineSourceOption) apply(vm *VM) {
	vm.more = ls.LineSource
	if cl, ok := ls.LineSource.(io.Closer); ok {
		vm.closers = append(vm.closers, cl)
	}
}

func (size pageSizeOption) apply(vm *VM) {
	if size > 0 {
		vm.pageSize = int(size)
	}
}

// namedReader attaches a name to a program source, reported in trace logs
// and line locations.
type namedReader struct {
	name string
	io.Reader
}

func (nr namedReader) Name() string { return nr.name }

// NamedReader returns an io.Reader whose line locations report name.
func NamedReader(name string, r io.Reader) io.Reader { return namedReader{name, r} }

// WithProgram adds program text as a named source.
func WithProgram(name, text string) VMOption {
	return withSource(NamedReader(name, strings.NewReader(text)))
}
