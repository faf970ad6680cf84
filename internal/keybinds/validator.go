package keybinds

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// IssueKind classifies a validation finding
type IssueKind string

const (
	IssueConflict IssueKind = "conflict" // key reserved for another action
	IssueMissing  IssueKind = "missing"  // required action has no key
	IssueShadow   IssueKind = "shadow"   // context binding hides a global one
)

// Issue is one validation finding. Key is empty when the finding concerns
// an action rather than a key.
type Issue struct {
	Kind    IssueKind
	Context Context
	Key     string
	Message string
}

func (i Issue) Error() string {
	if i.Key == "" {
		return fmt.Sprintf("[%s] %s: %s", i.Kind, i.Context, i.Message)
	}
	return fmt.Sprintf("[%s] %s in %s: %s", i.Kind, i.Key, i.Context, i.Message)
}

// Report collects the findings of one validation run. Errors block loading,
// warnings are informational.
type Report struct {
	Errors   []Issue
	Warnings []Issue
}

func (r *Report) HasErrors() bool   { return len(r.Errors) > 0 }
func (r *Report) HasWarnings() bool { return len(r.Warnings) > 0 }

func (r *Report) String() string {
	if !r.HasErrors() && !r.HasWarnings() {
		return "no issues\n"
	}

	var sb strings.Builder
	writeGroup := func(title string, issues []Issue) {
		if len(issues) == 0 {
			return
		}
		fmt.Fprintf(&sb, "%s (%d):\n", title, len(issues))
		for _, issue := range issues {
			fmt.Fprintf(&sb, "  - %s\n", issue.Error())
		}
	}
	writeGroup("errors", r.Errors)
	writeGroup("warnings", r.Warnings)
	return sb.String()
}

// Validator validates keybinding configurations
type Validator struct {
	// reservedKeys map keys that must keep their action
	reservedKeys map[string]Action

	// requiredActions must stay reachable from the listed context
	requiredActions map[Action]Context
}

// NewValidator creates a new keybinding validator
func NewValidator() *Validator {
	return &Validator{
		reservedKeys: map[string]Action{
			"ctrl+c": ActionQuitForce,
		},
		requiredActions: map[Action]Context{
			ActionQuitForce: ContextGlobal,
			ActionBlurField: ContextForm,
			ActionCloseView: ContextActivity,
		},
	}
}

// ValidateRegistry checks reserved keys, required actions and shadowing
func (v *Validator) ValidateRegistry(registry *Registry) *Report {
	result := &Report{}

	v.checkReservedKeys(registry, result)
	v.checkRequiredActions(registry, result)
	v.checkShadowing(registry, result)

	return result
}

// checkReservedKeys rejects rebinding a reserved key to another action
func (v *Validator) checkReservedKeys(registry *Registry, result *Report) {
	for _, context := range sortedContexts(registry) {
		for key, action := range registry.bindings[context] {
			if want, reserved := v.reservedKeys[key]; reserved && action != want {
				result.Errors = append(result.Errors, Issue{
					Kind:    IssueConflict,
					Context: context,
					Key:     key,
					Message: fmt.Sprintf("reserved for %s", want),
				})
			}
		}
	}
}

// checkRequiredActions makes sure the user cannot lock themselves in a view
func (v *Validator) checkRequiredActions(registry *Registry, result *Report) {
	for _, action := range slices.Sorted(maps.Keys(v.requiredActions)) {
		context := v.requiredActions[action]
		if len(registry.GetBinding(context, action)) == 0 {
			result.Errors = append(result.Errors, Issue{
				Kind:    IssueMissing,
				Context: context,
				Message: fmt.Sprintf("%s has no key", action),
			})
		}
	}
}

// checkShadowing warns when a context-specific binding hides a global one
func (v *Validator) checkShadowing(registry *Registry, result *Report) {
	globalBindings := registry.bindings[ContextGlobal]
	if globalBindings == nil {
		return
	}

	for _, context := range sortedContexts(registry) {
		if context == ContextGlobal {
			continue
		}

		for key, action := range registry.bindings[context] {
			if globalAction, hasGlobal := globalBindings[key]; hasGlobal && action != globalAction {
				result.Warnings = append(result.Warnings, Issue{
					Kind:    IssueShadow,
					Context: context,
					Key:     key,
					Message: fmt.Sprintf("shadows global binding (%s -> %s)", globalAction, action),
				})
			}
		}
	}
}

func sortedContexts(registry *Registry) []Context {
	return slices.Sorted(maps.Keys(registry.bindings))
}

var modifiers = []string{"ctrl+", "alt+", "shift+", "super+"}

// ValidateKey rejects empty keys and bare modifiers
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if slices.Contains(modifiers, key) {
		return fmt.Errorf("modifier without key: %s", key)
	}
	return nil
}

// ValidateAction checks if an action string names a known action
func ValidateAction(actionStr string) error {
	if actionStr == "" {
		return fmt.Errorf("action cannot be empty")
	}
	if !IsKnownAction(Action(actionStr)) {
		return fmt.Errorf("unknown action %q", actionStr)
	}
	return nil
}
