package main

// Effect implements a command: it receives the raw parameters following the
// command name, and returns the command's value.
type Effect func(vm *VM, params []string) interface{}

// Registry maps command names to effects, remembering the order in which
// names were first registered. A Registry is shared by every VM run with it,
// so define and alias outlive any one run. It is not safe for concurrent use.
type Registry struct {
	names   []string
	ids     map[string]int
	effects []Effect
}

// NewRegistry returns a Registry holding every builtin command.
func NewRegistry() *Registry {
	var reg Registry
	for _, b := range builtins {
		reg.Register(b.name, b.effect)
	}
	return &reg
}

// defaultRegistry is the process-wide registry used by any VM not given its
// own through WithRegistry.
var defaultRegistry = NewRegistry()

// Register installs or overwrites the effect for name.
func (reg *Registry) Register(name string, effect Effect) {
	id, defined := reg.ids[name]
	if !defined {
		if reg.ids == nil {
			reg.ids = make(map[string]int)
		}
		id = len(reg.names)
		reg.names = append(reg.names, name)
		reg.effects = append(reg.effects, nil)
		reg.ids[name] = id
	}
	reg.effects[id] = effect
}

// Lookup returns the effect registered under name.
func (reg *Registry) Lookup(name string) (Effect, bool) {
	if id, defined := reg.ids[name]; defined {
		return reg.effects[id], true
	}
	return nil, false
}

// Alias registers name with whatever effect existing has right now; later
// redefinition of existing does not carry over.
func (reg *Registry) Alias(name, existing string) bool {
	effect, defined := reg.Lookup(existing)
	if defined {
		reg.Register(name, effect)
	}
	return defined
}

// Names returns every registered name in first-registration order.
func (reg *Registry) Names() []string {
	return append([]string(nil), reg.names...)
}

// Len returns the number of registered names.
func (reg *Registry) Len() int { return len(reg.names) }
