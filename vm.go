package main

import (
	"context"
	"io"
	"strings"

	"github.com/jcorbin/goeacal/internal/fileinput"
)

// VM is the execution state of one program run: the instruction pointer,
// every memory substrate the program can reach, and the event machinery
// layered over command dispatch. Commands are looked up in a Registry that
// may be shared with other runs.
type VM struct {
	logging
	ioCore

	registry *Registry
	pageSize int

	// Program lines, read from sources before the run starts, and any
	// labels declared among them. When more is set, lines keep arriving from
	// it after the last one has run.
	sources fileinput.Input
	more    LineSource
	lines   []Line
	labels  map[string]int

	prog    int // instruction pointer
	running bool

	queue  []func()
	events map[string][]Executable

	tapes  map[string]*Tape
	stacks map[string]*Stack
	object map[string]interface{}
	text   string
	args   []string
	casts  map[string]cast
}

// Line is one program line split into its command name and parameters.
type Line struct {
	fileinput.Location
	Tokens []string
}

func (line Line) String() string { return strings.Join(line.Tokens, " ") }

// LineSource supplies program lines on demand; io.EOF ends the program.
type LineSource interface {
	ReadLine() (string, error)
}

func (vm *VM) init() {
	if vm.labels == nil {
		vm.labels = make(map[string]int)
	}
	if vm.events == nil {
		vm.events = make(map[string][]Executable)
	}
	if vm.tapes == nil {
		vm.tapes = make(map[string]*Tape)
	}
	if vm.stacks == nil {
		vm.stacks = make(map[string]*Stack)
	}
	if vm.stacks[funcStack] == nil {
		vm.stacks[funcStack] = &Stack{}
	}
	if vm.object == nil {
		vm.object = make(map[string]interface{})
	}
	if vm.casts == nil {
		vm.casts = builtinCasts
	}
	if vm.registry == nil {
		vm.registry = defaultRegistry
	}

	for {
		src, err := vm.sources.ReadLine()
		if err == io.EOF {
			break
		}
		vm.haltif(err)
		vm.addLine(src.Location, src.Text)
	}

	if len(vm.lines) == 0 && vm.more == nil {
		vm.fatalf("program must not be empty.")
	}
}

// addLine appends a program line, declaring it as a label if it is one; the
// last declaration of a label wins.
func (vm *VM) addLine(loc fileinput.Location, text string) {
	line := Line{loc, strings.Fields(text)}
	if len(line.Tokens) > 1 && line.Tokens[0] == "label" {
		vm.labels[line.Tokens[1]] = len(vm.lines)
	}
	vm.lines = append(vm.lines, line)
}

func (vm *VM) run(ctx context.Context) {
	vm.init()
	vm.running = true
	for vm.prog = 0; ; vm.prog++ {
		vm.drain()
		if !vm.running || !vm.fetch() {
			break
		}
		vm.haltif(ctx.Err())
		vm.step()
	}
	vm.running = false
	vm.logf("#", "end @%v", vm.prog)
	vm.trigger("end")
}

// fetch reports whether the instruction pointer addresses a line, pulling
// lines from any LineSource until it does.
func (vm *VM) fetch() bool {
	for vm.prog >= len(vm.lines) {
		if vm.more == nil {
			return false
		}
		if err := vm.out.Flush(); err != nil {
			vm.halt(err)
		}
		text, err := vm.more.ReadLine()
		if err == io.EOF {
			vm.more = nil
			return false
		}
		vm.haltif(err)
		vm.addLine(fileinput.Location{Name: "<interactive>", Line: len(vm.lines) + 1}, text)
	}
	return vm.prog >= 0
}

func (vm *VM) step() {
	line := vm.lines[vm.prog]
	if len(line.Tokens) == 0 {
		return
	}
	vm.logf("@", "%v %v", line.Location, line)
	vm.exec(line.Tokens)
}

// exec dispatches tokens as a command, firing the command's event with its
// result. Commands evaluate nested commands by calling exec on a tail of their
// parameters.
func (vm *VM) exec(tokens []string) interface{} {
	if vm.logfn != nil {
		defer vm.withLogPrefix("  ")()
	}

	var name string
	var params []string
	if len(tokens) > 0 {
		name, params = tokens[0], tokens[1:]
	}

	effect, defined := vm.registry.Lookup(name)
	if !defined {
		vm.fatalf(`"%v" is not a valid command.`, name)
	}

	ret := effect(vm, params)
	vm.logf(">", "%v %q => %v", name, params, logValue{ret})
	vm.trigger(name, ret)
	return ret
}

// logValue formats values in trace logs, quoting text.
type logValue struct{ v interface{} }

func (lv logValue) String() string {
	if s, ok := lv.v.(string); ok {
		return `"` + s + `"`
	}
	return toString(lv.v)
}

// executable asserts that v can be applied, halting if it can not.
func (vm *VM) executable(v interface{}) Executable {
	ex, ok := v.(Executable)
	if !ok {
		vm.fatalf(`"%v" is not executable.`, toString(v))
	}
	return ex
}

func (vm *VM) stack(name string) *Stack {
	stk := vm.stacks[name]
	if stk == nil {
		stk = &Stack{}
		vm.stacks[name] = stk
	}
	return stk
}

func (vm *VM) tape(name string) *Tape {
	tp := vm.tapes[name]
	if tp == nil {
		tp = newTape(vm.pageSize)
		vm.tapes[name] = tp
	}
	return tp
}

// Pointer returns the current instruction pointer.
func (vm *VM) Pointer() int { return vm.prog }

// Stop clears the running flag; the run ends at the next line boundary, once
// any queued events have been handled.
func (vm *VM) Stop() { vm.running = false }

// Stack returns the named stack, creating it if needed.
func (vm *VM) Stack(name string) *Stack { return vm.stack(name) }

// Text returns the text accumulated by strap.
func (vm *VM) Text() string { return vm.text }
