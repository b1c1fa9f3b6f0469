package main

// Stack is a LIFO sequence of values; popping an empty Stack yields 0 rather
// than failing.
type Stack struct {
	values []interface{}
}

func (stk *Stack) Len() int { return len(stk.values) }

func (stk *Stack) Push(val interface{}) {
	stk.values = append(stk.values, val)
}

func (stk *Stack) Pop() (val interface{}) {
	i := len(stk.values) - 1
	if i < 0 {
		return 0.0
	}
	val, stk.values = stk.values[i], stk.values[:i]
	return val
}

// PopN removes the top n values in one go, returning them in their pushed
// order: the last pushed value is last. Any shortfall is made up with leading
// zeros, as if the stack rested on an endless supply of them.
func (stk *Stack) PopN(n int) []interface{} {
	if n <= 0 {
		return nil
	}
	vals := make([]interface{}, n)
	have := len(stk.values)
	if have > n {
		have = n
	}
	for i := range vals[:n-have] {
		vals[i] = 0.0
	}
	i := len(stk.values) - have
	copy(vals[n-have:], stk.values[i:])
	for j := i; j < len(stk.values); j++ {
		stk.values[j] = nil
	}
	stk.values = stk.values[:i]
	return vals
}

// Values returns the stack contents, bottom first.
func (stk *Stack) Values() []interface{} { return stk.values }

func (stk *Stack) String() string { return joinValues(stk.values) }
