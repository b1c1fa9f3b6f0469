package main

import (
	"math"
	"strings"
	"unicode/utf8"
)

// ExecKind discriminates how an Executable reads its args; VM.apply picks
// the calling convention from it.
type ExecKind int

const (
	// StackKind executables treat args[0] as the name of a stack to pop
	// their operands from, the reserved "func" stack if args is empty.
	StackKind ExecKind = iota

	// ValueKind executables take args as literal parameters.
	ValueKind
)

func (kind ExecKind) String() string {
	switch kind {
	case StackKind:
		return "stack"
	case ValueKind:
		return "value"
	default:
		return "invalid"
	}
}

// Executable is anything that exec, define and on can apply: builtin stack
// operators, eval/curry closures, and host functions.
type Executable interface {
	Kind() ExecKind
	Apply(vm *VM, args []string) interface{}
}

// ExecFunc adapts a host function into a ValueKind Executable.
type ExecFunc func(vm *VM, args []string) interface{}

func (f ExecFunc) Kind() ExecKind                          { return ValueKind }
func (f ExecFunc) Apply(vm *VM, args []string) interface{} { return f(vm, args) }

// closure re-dispatches its captured parameters extended by any args.
type closure struct {
	via    string
	params []string
}

func (c closure) Kind() ExecKind { return ValueKind }

func (c closure) Apply(vm *VM, args []string) interface{} {
	tokens := make([]string, 0, len(c.params)+len(args))
	tokens = append(tokens, c.params...)
	tokens = append(tokens, args...)
	return vm.exec(tokens)
}

func (c closure) String() string {
	return c.via + " " + strings.Join(c.params, " ")
}

// stackOp is a fixed arity operator over values popped from a named stack.
type stackOp struct {
	name  string
	arity int
	fn    func(args ...interface{}) interface{}
}

func (op stackOp) Kind() ExecKind { return StackKind }

func (op stackOp) Apply(vm *VM, args []string) interface{} {
	name := operandStack(args)
	vals := vm.stack(name).PopN(op.arity)
	vm.logf("$", "%v %v <- %v", op.name, vals, name)
	return op.fn(vals...)
}

func (op stackOp) String() string { return "func " + op.name }

const funcStack = "func"

// operandStack names the stack a StackKind executable pops from: args[0], or
// the "func" stack when args is empty.
func operandStack(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return funcStack
}

// apply runs ex under the calling convention of its Kind. A StackKind
// executable receives only its operand stack name; any further args are
// dropped.
func (vm *VM) apply(ex Executable, args []string) interface{} {
	switch kind := ex.Kind(); kind {
	case StackKind:
		name := operandStack(args)
		vm.logf("$", "apply %v %v <- stack %q", kind, ex, name)
		return ex.Apply(vm, []string{name})
	default:
		vm.logf("$", "apply %v %v %q", kind, ex, args)
		return ex.Apply(vm, args)
	}
}

var stackOps = map[string]stackOp{}

func defStackOp(name string, arity int, fn func(args ...interface{}) interface{}) {
	stackOps[name] = stackOp{name, arity, fn}
}

func numOp(fn func(a, b float64) float64) func(args ...interface{}) interface{} {
	return func(args ...interface{}) interface{} {
		return fn(toNumber(args[0]), toNumber(args[1]))
	}
}

func init() {
	defStackOp("add", 2, func(args ...interface{}) interface{} { return plus(args[0], args[1]) })
	defStackOp("inc", 1, func(args ...interface{}) interface{} { return plus(1.0, args[0]) })
	defStackOp("dec", 1, func(args ...interface{}) interface{} { return toNumber(args[0]) - 1 })
	defStackOp("pow", 2, numOp(math.Pow))
	defStackOp("mul", 2, numOp(func(a, b float64) float64 { return a * b }))
	defStackOp("div", 2, numOp(func(a, b float64) float64 { return a / b }))
	defStackOp("sub", 2, numOp(func(a, b float64) float64 { return a - b }))
	defStackOp("replace", 3, func(args ...interface{}) interface{} { return replace(args[0], args[1], args[2]) })
	defStackOp("less", 2, func(args ...interface{}) interface{} { return compare(args[0], args[1]) < 0 })
	defStackOp("more", 2, func(args ...interface{}) interface{} { return compare(args[0], args[1]) > 0 })
	defStackOp("same", 2, func(args ...interface{}) interface{} { return same(args[0], args[1]) })
	defStackOp("repeat", 2, func(args ...interface{}) interface{} {
		n, ok := toIndex(args[1])
		if !ok || n < 0 {
			return ""
		}
		return strings.Repeat(toString(args[0]), n)
	})
	defStackOp("slice", 2, func(args ...interface{}) interface{} { return slice(args[0], args[1]) })
	defStackOp("charat", 1, func(args ...interface{}) interface{} {
		s := toString(args[0])
		if s == "" {
			return math.NaN()
		}
		r, _ := utf8.DecodeRuneInString(s)
		return float64(r)
	})
	defStackOp("tochar", 1, func(args ...interface{}) interface{} {
		n, ok := toIndex(args[0])
		if !ok || n < 0 || n > utf8.MaxRune {
			return string(utf8.RuneError)
		}
		return string(rune(n))
	})
}

// plus adds numbers, concatenating instead when either side is text.
func plus(a, b interface{}) interface{} {
	_, aStr := a.(string)
	_, bStr := b.(string)
	if aStr || bStr {
		return toString(a) + toString(b)
	}
	return toNumber(a) + toNumber(b)
}

// compare orders two strings lexically and anything else numerically; NaN
// compares as neither less nor more.
func compare(a, b interface{}) int {
	as, aStr := a.(string)
	bs, bStr := b.(string)
	if aStr && bStr {
		return strings.Compare(as, bs)
	}
	x, y := toNumber(a), toNumber(b)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// same is loose equality: numbers compare numerically against anything,
// undefined only equals undefined, everything else compares as text.
func same(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	_, aNum := a.(float64)
	_, bNum := b.(float64)
	_, aBool := a.(bool)
	_, bBool := b.(bool)
	if aNum || bNum || aBool || bBool {
		return toNumber(a) == toNumber(b)
	}
	return toString(a) == toString(b)
}

func replace(str, pat, repl interface{}) interface{} {
	s, r := toString(str), toString(repl)
	if p, ok := pat.(*Pattern); ok {
		return p.replace(s, r)
	}
	return strings.Replace(s, toString(pat), r, 1)
}

// slice returns the tail of a string or list from index from; negative
// indices count back from the end.
func slice(v, at interface{}) interface{} {
	from, _ := toIndex(at)
	clamp := func(n int) int {
		if from < 0 {
			from += n
		}
		if from < 0 {
			return 0
		}
		if from > n {
			return n
		}
		return from
	}
	switch val := v.(type) {
	case []float64:
		return append([]float64(nil), val[clamp(len(val)):]...)
	case []interface{}:
		return append([]interface{}(nil), val[clamp(len(val)):]...)
	case []string:
		return append([]string(nil), val[clamp(len(val)):]...)
	default:
		runes := []rune(toString(v))
		return string(runes[clamp(len(runes)):])
	}
}
