package keybinds

import (
	"cmp"
	"maps"
	"slices"
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

// NewRegistry creates a new keybinding registry
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[Context]map[string]Action),
	}
}

// Register adds a keybinding to the registry
func (r *Registry) Register(context Context, key string, action Action) {
	if r.bindings[context] == nil {
		r.bindings[context] = make(map[string]Action)
	}
	r.bindings[context][key] = action
}

// RegisterMultiple registers multiple keybindings for the same action
func (r *Registry) RegisterMultiple(context Context, keys []string, action Action) {
	for _, key := range keys {
		r.Register(context, key, action)
	}
}

// Unbind removes every key bound to action in context
func (r *Registry) Unbind(context Context, action Action) {
	for key, act := range r.bindings[context] {
		if act == action {
			delete(r.bindings[context], key)
		}
	}
}

// Match resolves key in context, then in the global context
func (r *Registry) Match(context Context, key string) (Action, bool) {
	for _, ctx := range [...]Context{context, ContextGlobal} {
		if action, ok := r.bindings[ctx][key]; ok {
			return action, true
		}
	}
	return "", false
}

// GetBinding returns the key(s) bound to an action in a context, sorted.
// Falls back to global when the context has none.
func (r *Registry) GetBinding(context Context, action Action) []string {
	keys := r.keysFor(context, action)
	if len(keys) == 0 {
		keys = r.keysFor(ContextGlobal, action)
	}
	return keys
}

func (r *Registry) keysFor(context Context, action Action) []string {
	var keys []string
	for key, act := range r.bindings[context] {
		if act == action {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys
}

// GetBindingString returns a human-readable string of keys bound to an action
func (r *Registry) GetBindingString(context Context, action Action) string {
	keys := r.GetBinding(context, action)
	if len(keys) == 0 {
		return "unbound"
	}
	return strings.Join(keys, ", ")
}

// ListBindings returns all bindings for a context followed by global ones,
// sorted by key within each group
func (r *Registry) ListBindings(context Context) []Binding {
	var bindings []Binding
	contexts := []Context{context}
	if context != ContextGlobal {
		contexts = append(contexts, ContextGlobal)
	}

	for _, ctx := range contexts {
		var group []Binding
		for key, action := range r.bindings[ctx] {
			group = append(group, Binding{Key: key, Action: action, Context: ctx})
		}
		slices.SortFunc(group, func(a, b Binding) int { return cmp.Compare(a.Key, b.Key) })
		bindings = append(bindings, group...)
	}

	return bindings
}

// ContextsFor returns the contexts in which action has at least one key
func (r *Registry) ContextsFor(action Action) []Context {
	var contexts []Context
	for ctx, bindings := range r.bindings {
		if slices.Contains(slices.Collect(maps.Values(bindings)), action) {
			contexts = append(contexts, ctx)
		}
	}
	slices.Sort(contexts)
	return contexts
}

// Clone returns an independent copy; overrides are applied to clones
func (r *Registry) Clone() *Registry {
	clone := NewRegistry()
	for ctx, keys := range r.bindings {
		clone.bindings[ctx] = maps.Clone(keys)
	}
	return clone
}
