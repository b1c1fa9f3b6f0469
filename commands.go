package main

import (
	"strings"
)

type builtin struct {
	name   string
	effect Effect
}

// builtins lists every command a new Registry starts with, in registration
// order.
var builtins = []builtin{
	// literals
	{"number", cmdNumber},
	{"numlist", cmdNumlist},
	{"string", cmdString},
	{"regex", cmdRegex},
	{"empty", cmdEmpty},
	{"space", constant(" ")},
	{"tab", constant("\t")},
	{"newline", constant("\n")},

	// i/o
	{"print", cmdPrint},
	{"write", cmdWrite},
	{"read", cmdRead},
	{"put", cmdPut},

	// stacks
	{"init", cmdInit},
	{"push", cmdPush},
	{"pop", cmdPop},
	{"stack", cmdStack},
	{"func", cmdFunc},

	// control and functions
	{"label", constant(0.0)},
	{"eval", cmdClosure("eval")},
	{"exec", cmdExec},
	{"set", cmdSet},
	{"get", cmdGet},
	{"goto", cmdGoto},
	{"rem", constant(nil)},
	{"arg", cmdArg},
	{"on", cmdOn},
	{"cast", cmdCast},
	{"exit", cmdExit},
	{"if", cmdIf},
	{"curry", cmdClosure("curry")},
	{"define", cmdDefine},
	{"alias", cmdAlias},

	// text accumulator
	{"strap", cmdStrap},
	{"strcl", cmdStrcl},

	{"v", cmdV},
	{";", constant(nil)},

	// tapes
	{"initape", cmdInitape},
	{"tape", cmdTape},
	{"setape", cmdSetape},
	{"getape", cmdGetape},
	{"setptr", cmdSetptr},
	{"getptr", cmdGetptr},
}

// shift splits off the first parameter, which is "" if there are none.
func shift(params []string) (string, []string) {
	if len(params) == 0 {
		return "", nil
	}
	return params[0], params[1:]
}

func constant(val interface{}) Effect {
	return func(vm *VM, params []string) interface{} { return val }
}

func cmdNumber(vm *VM, params []string) interface{} {
	if len(params) == 0 {
		return toNumber(nil)
	}
	return parseNumber(params[0])
}

func cmdNumlist(vm *VM, params []string) interface{} {
	nums := make([]float64, len(params))
	for i, param := range params {
		nums[i] = parseNumber(param)
	}
	return nums
}

// cmdString joins its parameters, stopping at the first ';' not escaped by a
// backslash.
func cmdString(vm *VM, params []string) interface{} {
	s := strings.Join(params, " ")
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case ';':
			return s[:i]
		}
	}
	return s
}

func cmdRegex(vm *VM, params []string) interface{} {
	flags, rest := shift(params)
	pat, err := compilePattern(toString(vm.exec(rest)), flags)
	if err != nil {
		vm.fatalf("invalid pattern: %v", err)
	}
	return pat
}

func cmdEmpty(vm *VM, params []string) interface{} {
	switch typ, _ := shift(params); typ {
	case "number":
		return 0.0
	case "string":
		return ""
	default:
		return []interface{}{}
	}
}

func cmdPrint(vm *VM, params []string) interface{} {
	val := vm.exec(params)
	vm.emit(toString(val), true)
	return val
}

func cmdPut(vm *VM, params []string) interface{} {
	val := vm.exec(params)
	vm.emit(toString(val), false)
	return val
}

func cmdWrite(vm *VM, params []string) interface{} {
	path, rest := shift(params)
	text := toString(vm.exec(rest))
	if err := vm.storage.Persist(path, text); err != nil {
		vm.fatalf(`"%v" could not be written: %v`, path, err)
	}
	return text
}

func cmdRead(vm *VM, params []string) interface{} {
	path, _ := shift(params)
	text, err := vm.storage.Load(path)
	if err != nil {
		vm.fatalf(`"%v" could not be read.`, path)
	}
	return text
}

func cmdInit(vm *VM, params []string) interface{} {
	name, _ := shift(params)
	stk := &Stack{}
	vm.stacks[name] = stk
	return stk
}

func cmdPush(vm *VM, params []string) interface{} {
	name, rest := shift(params)
	val := vm.exec(rest)
	vm.stack(name).Push(val)
	return val
}

func cmdPop(vm *VM, params []string) interface{} {
	name, _ := shift(params)
	return vm.stack(name).Pop()
}

func cmdStack(vm *VM, params []string) interface{} {
	name, _ := shift(params)
	return vm.stack(name)
}

// cmdFunc returns the named stack operator, or undefined.
func cmdFunc(vm *VM, params []string) interface{} {
	if op, defined := stackOps[strings.Join(params, " ")]; defined {
		return op
	}
	return nil
}

func cmdClosure(via string) Effect {
	return func(vm *VM, params []string) interface{} {
		return closure{via, append([]string(nil), params...)}
	}
}

// cmdExec applies the Executable produced by the command after the first
// "--" to the parameters before it; without a "--" there are no arguments.
func cmdExec(vm *VM, params []string) interface{} {
	var args []string
	via := params
	for i, param := range params {
		if param == "--" {
			args, via = params[:i:i], params[i+1:]
			break
		}
	}
	return vm.apply(vm.executable(vm.exec(via)), args)
}

func cmdSet(vm *VM, params []string) interface{} {
	key, rest := shift(params)
	val := vm.exec(rest)
	vm.object[key] = val
	return val
}

func cmdGet(vm *VM, params []string) interface{} {
	key, _ := shift(params)
	return vm.object[key]
}

func cmdGoto(vm *VM, params []string) interface{} {
	label, _ := shift(params)
	index, defined := vm.labels[label]
	if !defined {
		vm.fatalf(`"%v" is not a valid label.`, label)
	}
	vm.jump(index)
	return nil
}

// cmdArg returns every invocation argument, or the one at the index its
// parameters evaluate to.
func cmdArg(vm *VM, params []string) interface{} {
	if len(params) == 0 || params[0] == "all" {
		return append([]string(nil), vm.args...)
	}
	i, ok := toIndex(vm.exec(params))
	if !ok || i < 0 || i >= len(vm.args) {
		return nil
	}
	return vm.args[i]
}

func cmdOn(vm *VM, params []string) interface{} {
	event, rest := shift(params)
	vm.Listen(event, vm.executable(vm.exec(rest)))
	return nil
}

func cmdCast(vm *VM, params []string) interface{} {
	name, rest := shift(params)
	c, defined := vm.casts[name]
	if !defined {
		vm.fatalf(`"%v" is not a valid cast.`, name)
	}
	return c(vm, vm.exec(rest))
}

func cmdExit(vm *VM, params []string) interface{} {
	vm.running = false
	return nil
}

// cmdIf skips the next line when its parameters evaluate falsy.
func cmdIf(vm *VM, params []string) interface{} {
	if !truthy(vm.exec(params)) {
		vm.prog++
	}
	return nil
}

// cmdDefine registers a command that applies an Executable to its
// parameters. The registry is shared, so the command outlives this run.
func cmdDefine(vm *VM, params []string) interface{} {
	name, rest := shift(params)
	ex := vm.executable(vm.exec(rest))
	vm.registry.Register(name, func(vm *VM, params []string) interface{} {
		return vm.apply(ex, params)
	})
	return nil
}

func cmdAlias(vm *VM, params []string) interface{} {
	name, rest := shift(params)
	orig, _ := shift(rest)
	if !vm.registry.Alias(name, orig) {
		vm.fatalf(`"%v" is not a valid command.`, orig)
	}
	return nil
}

// cmdStrap appends its value to the text accumulator, returning the
// accumulated text; without parameters it only returns it.
func cmdStrap(vm *VM, params []string) interface{} {
	if len(params) > 0 {
		vm.text += toString(vm.exec(params))
	}
	return vm.text
}

func cmdStrcl(vm *VM, params []string) interface{} {
	vm.text = ""
	return vm.text
}

func cmdV(vm *VM, params []string) interface{} {
	vm.emit("eacal is currently running.", true)
	return nil
}

func cmdInitape(vm *VM, params []string) interface{} {
	name, rest := shift(params)
	var bounds []float64
	if len(rest) > 0 {
		bounds = toNumbers(vm.exec(rest))
	}
	tp := newTape(vm.pageSize, bounds...)
	vm.tapes[name] = tp
	return tp
}

func cmdTape(vm *VM, params []string) interface{} {
	name, _ := shift(params)
	return vm.tape(name)
}

func cmdSetape(vm *VM, params []string) interface{} {
	name, rest := shift(params)
	return vm.tape(name).Set(toNumber(vm.exec(rest)))
}

func cmdGetape(vm *VM, params []string) interface{} {
	name, _ := shift(params)
	val, err := vm.tape(name).Get()
	if err != nil {
		vm.halt(FatalError{"-", err.Error()})
	}
	return val
}

func cmdSetptr(vm *VM, params []string) interface{} {
	name, rest := shift(params)
	tp := vm.tape(name)
	tp.Pointer = toNumber(vm.exec(rest))
	return tp.Pointer
}

func cmdGetptr(vm *VM, params []string) interface{} {
	name, _ := shift(params)
	return vm.tape(name).Pointer
}

type cast func(vm *VM, val interface{}) interface{}

var builtinCasts = map[string]cast{
	"string": func(vm *VM, val interface{}) interface{} { return toString(val) },
	"number": func(vm *VM, val interface{}) interface{} { return toNumber(val) },
	"regex": func(vm *VM, val interface{}) interface{} {
		if pat, ok := val.(*Pattern); ok {
			return pat
		}
		pat, err := compilePattern(toString(val), "")
		if err != nil {
			vm.fatalf("invalid pattern: %v", err)
		}
		return pat
	},
}
