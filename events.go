package main

// Every dispatched command triggers an event of the same name, with the
// command's result as payload. Listeners are Executables, applied in the
// order they were registered, with the payload rendered as tokens.
//
// The jump event is different: goto only enqueues it, and the queue is
// drained before the next line is fetched, so jump listeners observe the
// instruction pointer after it has moved.

// Listen appends ex to the listeners of event.
func (vm *VM) Listen(event string, ex Executable) {
	if vm.events == nil {
		vm.events = make(map[string][]Executable)
	}
	vm.events[event] = append(vm.events[event], ex)
}

func (vm *VM) trigger(event string, payload ...interface{}) {
	listeners := vm.events[event]
	if len(listeners) == 0 {
		return
	}
	args := make([]string, 0, len(payload))
	for _, val := range payload {
		if val != nil {
			args = append(args, toString(val))
		}
	}
	vm.logf("!", "trigger %v %q", event, args)
	for _, ex := range listeners {
		vm.apply(ex, args)
	}
}

func (vm *VM) enqueue(f func()) {
	vm.queue = append(vm.queue, f)
}

// drain runs queued callbacks until the queue is empty, including any
// callbacks they enqueue.
func (vm *VM) drain() {
	for len(vm.queue) > 0 {
		f := vm.queue[0]
		vm.queue[0] = nil
		vm.queue = vm.queue[1:]
		f()
	}
}

// jump moves the instruction pointer so that the line at index runs next,
// and queues the jump event.
func (vm *VM) jump(index int) {
	vm.logf("^", "jump %v -> %v", vm.prog, index)
	vm.prog = index - 1
	vm.enqueue(func() {
		vm.trigger("jump", float64(index))
	})
}
