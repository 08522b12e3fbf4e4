package keybinds

import (
	"sort"
	"strings"
)

// Binding represents a keybinding mapping
type Binding struct {
	Key     string
	Action  Action
	Context Context
}

// Registry manages keybinding mappings and matching
type Registry struct {
	// bindings maps context -> key -> action
	bindings map[Context]map[string]Action
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[Context]map[string]Action)}
}

// Register adds a keybinding to the registry
func (r *Registry) Register(context Context, key string, action Action) {
	if r.bindings[context] == nil {
		r.bindings[context] = make(map[string]Action)
	}
	r.bindings[context][key] = action
}

// RegisterMultiple registers multiple keys for the same action
func (r *Registry) RegisterMultiple(context Context, keys []string, action Action) {
	for _, key := range keys {
		r.Register(context, key, action)
	}
}

// Unbind removes every key bound to action in context
func (r *Registry) Unbind(context Context, action Action) {
	for key, a := range r.bindings[context] {
		if a == action {
			delete(r.bindings[context], key)
		}
	}
}

// Match finds the action for key, checking context before global
func (r *Registry) Match(context Context, key string) (Action, bool) {
	if action, ok := r.bindings[context][key]; ok {
		return action, true
	}
	if action, ok := r.bindings[ContextGlobal][key]; ok {
		return action, true
	}
	return "", false
}

// Keys returns the sorted keys bound to action in context, falling back to global
func (r *Registry) Keys(context Context, action Action) []string {
	keys := r.keysIn(context, action)
	if len(keys) == 0 && context != ContextGlobal {
		keys = r.keysIn(ContextGlobal, action)
	}
	return keys
}

func (r *Registry) keysIn(context Context, action Action) []string {
	var keys []string
	for key, a := range r.bindings[context] {
		if a == action {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// KeyString returns a human-readable list of the keys bound to action
func (r *Registry) KeyString(context Context, action Action) string {
	keys := r.Keys(context, action)
	if len(keys) == 0 {
		return "unbound"
	}
	return strings.Join(keys, "/")
}

// ListBindings returns the bindings of one context sorted by key
func (r *Registry) ListBindings(context Context) []Binding {
	bindings := make([]Binding, 0, len(r.bindings[context]))
	for key, action := range r.bindings[context] {
		bindings = append(bindings, Binding{Key: key, Action: action, Context: context})
	}
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].Key < bindings[j].Key })
	return bindings
}

// Contexts returns the contexts that have bindings
func (r *Registry) Contexts() []Context {
	contexts := make([]Context, 0, len(r.bindings))
	for c := range r.bindings {
		contexts = append(contexts, c)
	}
	sort.Slice(contexts, func(i, j int) bool { return contexts[i] < contexts[j] })
	return contexts
}

// Clone creates a deep copy of the registry
func (r *Registry) Clone() *Registry {
	clone := NewRegistry()
	for context, contextBindings := range r.bindings {
		for key, action := range contextBindings {
			clone.Register(context, key, action)
		}
	}
	return clone
}
