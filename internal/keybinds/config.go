package keybinds

import (
	"fmt"
	"sort"
	"strings"
)

// ApplyOverrides rebinds actions from the settings file.
// Entries are "action" or "context.action" mapped to the full list of keys;
// a bare action replaces its keys in every context it is bound in by default,
// or in the normal context if it has none. Overrides are applied to a clone
// so r is left untouched on error.
func ApplyOverrides(r *Registry, overrides map[string][]string) (*Registry, error) {
	out := r.Clone()

	// Deterministic order keeps "context.action" entries winning over bare ones.
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		di, dj := strings.Contains(names[i], "."), strings.Contains(names[j], ".")
		if di != dj {
			return !di
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		contexts, action, err := parseOverrideName(out, name)
		if err != nil {
			return nil, err
		}
		keys := overrides[name]
		for _, key := range keys {
			if err := ValidateKey(key); err != nil {
				return nil, fmt.Errorf("keybind %s: %w", name, err)
			}
		}
		for _, ctx := range contexts {
			out.Unbind(ctx, action)
			out.RegisterMultiple(ctx, keys, action)
		}
	}

	result := NewValidator().ValidateRegistry(out)
	if result.HasErrors() {
		return nil, fmt.Errorf("invalid keybinds:\n%s", result.String())
	}

	return out, nil
}

func parseOverrideName(r *Registry, name string) ([]Context, Action, error) {
	ctxName, actionName, scoped := strings.Cut(name, ".")
	if !scoped {
		actionName = ctxName
	}

	action := Action(actionName)
	if err := ValidateAction(actionName); err != nil {
		return nil, "", fmt.Errorf("keybind %s: %w", name, err)
	}

	if scoped {
		ctx := Context(ctxName)
		if !isKnownContext(ctx) {
			return nil, "", fmt.Errorf("keybind %s: unknown context %q", name, ctxName)
		}
		return []Context{ctx}, action, nil
	}

	contexts := r.ContextsFor(action)
	if len(contexts) == 0 {
		contexts = []Context{ContextNormal}
	}
	return contexts, action, nil
}

func isKnownContext(ctx Context) bool {
	switch ctx {
	case ContextGlobal, ContextNormal, ContextForm, ContextActivity, ContextHelp:
		return true
	}
	return false
}

// Load builds the default registry with user overrides applied
func Load(overrides map[string][]string) (*Registry, error) {
	registry := NewDefaultRegistry()
	if len(overrides) == 0 {
		return registry, nil
	}
	return ApplyOverrides(registry, overrides)
}
