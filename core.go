package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jcorbin/goeacal/internal/flushio"
	"github.com/jcorbin/goeacal/internal/runeio"
)

// FatalError is the one error a program can raise; it always ends the run.
// Line is the 0-based index of the line being run, or "-" when the error is
// not tied to a line.
type FatalError struct {
	Line    string
	Message string
}

func (fe FatalError) Error() string {
	return fmt.Sprintf("%v: Error: %v", fe.Line, fe.Message)
}

// Storage backs the read and write commands.
type Storage interface {
	Persist(path, text string) error
	Load(path string) (string, error)
}

// dirStorage resolves relative paths against a base directory; the empty
// dirStorage uses the process working directory.
type dirStorage string

func (dir dirStorage) path(path string) string {
	if dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(string(dir), path)
}

func (dir dirStorage) Persist(path, text string) error {
	return os.WriteFile(dir.path(path), []byte(text), 0o666)
}

func (dir dirStorage) Load(path string) (string, error) {
	b, err := os.ReadFile(dir.path(path))
	return string(b), err
}

type ioCore struct {
	out     flushio.WriteFlusher
	storage Storage
	closers []io.Closer
}

// Close closes any program sources still open, in reverse order.
func (ioc *ioCore) Close() (err error) {
	for i := len(ioc.closers) - 1; i >= 0; i-- {
		if cerr := ioc.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	ioc.closers = nil
	return err
}

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

// halt flushes output and stops the run by panicking; Run recovers the
// error.
func (vm *VM) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if vm.out != nil {
			if ferr := vm.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()

	// ignore any panics while logging
	func() {
		defer func() { recover() }()
		vm.logf("#", "halt error: %v", err)
	}()

	panic(haltError{err})
}

func (vm *VM) haltif(err error) {
	if err != nil {
		vm.halt(err)
	}
}

// fatalf halts with a FatalError referencing the current line.
func (vm *VM) fatalf(mess string, args ...interface{}) {
	vm.halt(FatalError{strconv.Itoa(vm.prog), fmt.Sprintf(mess, args...)})
}

func isFatal(err error) bool {
	var fe FatalError
	return errors.As(err, &fe)
}

// emit writes text to the output, with a trailing newline if line is set.
func (vm *VM) emit(text string, line bool) {
	_, err := runeio.WriteANSIString(vm.out, text)
	if err == nil && line {
		_, err = io.WriteString(vm.out, "\n")
	}
	vm.haltif(err)
}

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		mark = strings.Repeat(mark[:1], n) + mark
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
