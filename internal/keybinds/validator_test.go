package keybinds

import (
	"strings"
	"testing"
)

func TestIssue_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      Issue
		expected string
	}{
		{
			name: "key conflict",
			err: Issue{
				Kind:    IssueConflict,
				Context: ContextNormal,
				Key:     "ctrl+c",
				Message: "reserved for quit_force",
			},
			expected: "[conflict] ctrl+c in normal: reserved for quit_force",
		},
		{
			name: "missing action",
			err: Issue{
				Kind:    IssueMissing,
				Context: ContextForm,
				Message: "blur_field has no key",
			},
			expected: "[missing] form: blur_field has no key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDefaultRegistryIsValid(t *testing.T) {
	result := NewValidator().ValidateRegistry(NewDefaultRegistry())
	if result.HasErrors() || result.HasWarnings() {
		t.Errorf("default registry has issues:\n%s", result.String())
	}
}

func TestDefaultBindingsAreKnownActions(t *testing.T) {
	r := NewDefaultRegistry()
	for _, ctx := range []Context{ContextGlobal, ContextNormal, ContextForm, ContextActivity, ContextHelp} {
		for _, b := range r.ListBindings(ctx) {
			if !IsKnownAction(b.Action) {
				t.Errorf("context %s key %q bound to unknown action %q", b.Context, b.Key, b.Action)
			}
		}
	}
}

func TestMatchFallsBackToGlobal(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		context Context
		key     string
		want    Action
		ok      bool
	}{
		{ContextNormal, "g", ActionGenerate, true},
		{ContextNormal, "a", ActionApply, true},
		{ContextNormal, "ctrl+c", ActionQuitForce, true},
		{ContextForm, "ctrl+s", ActionSaveSettings, true},
		{ContextForm, "esc", ActionBlurField, true},
		// plain letters type into the field
		{ContextForm, "a", "", false},
		{ContextActivity, "C", ActionClearActivity, true},
		{ContextHelp, "x", "", false},
	}

	for _, tt := range tests {
		got, ok := r.Match(tt.context, tt.key)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Match(%s, %q) = (%q, %v), want (%q, %v)", tt.context, tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestGetBindingString(t *testing.T) {
	r := NewDefaultRegistry()

	if got := r.GetBindingString(ContextNormal, ActionGenerate); got != "enter, g" {
		t.Errorf("GetBindingString(generate) = %q, want %q", got, "enter, g")
	}
	if got := r.GetBindingString(ContextForm, ActionQuitForce); got != "ctrl+c" {
		t.Errorf("GetBindingString(quit_force) = %q, want %q", got, "ctrl+c")
	}
	if got := r.GetBindingString(ContextHelp, ActionApply); got != "unbound" {
		t.Errorf("GetBindingString(apply in help) = %q, want unbound", got)
	}
}

func TestApplyOverrides(t *testing.T) {
	base := NewDefaultRegistry()

	r, err := ApplyOverrides(base, map[string][]string{
		"apply":           {"A", "ctrl+a"},
		"form.next_field": {"ctrl+n"},
	})
	if err != nil {
		t.Fatalf("ApplyOverrides() error = %v", err)
	}

	if _, ok := r.Match(ContextNormal, "a"); ok {
		t.Error("old key 'a' should be unbound")
	}
	if got, _ := r.Match(ContextNormal, "A"); got != ActionApply {
		t.Errorf("Match(A) = %q, want apply", got)
	}
	if got, _ := r.Match(ContextForm, "ctrl+n"); got != ActionNextField {
		t.Errorf("Match(ctrl+n) = %q, want next_field", got)
	}
	if _, ok := r.Match(ContextForm, "tab"); ok {
		t.Error("old key 'tab' should be unbound in form context")
	}

	// base registry is untouched
	if got, _ := base.Match(ContextNormal, "a"); got != ActionApply {
		t.Error("ApplyOverrides modified the input registry")
	}
}

func TestApplyOverridesErrors(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string][]string
		wantErr   string
	}{
		{"unknown action", map[string][]string{"launch_rocket": {"x"}}, `unknown action "launch_rocket"`},
		{"unknown context", map[string][]string{"sidebar.apply": {"x"}}, `unknown context "sidebar"`},
		{"empty key", map[string][]string{"apply": {""}}, "key cannot be empty"},
		{"bare modifier", map[string][]string{"apply": {"ctrl+"}}, "modifier without key"},
		{"reserved key", map[string][]string{"apply": {"ctrl+c"}}, "reserved for quit_force"},
		{"no way out", map[string][]string{"blur_field": {}}, "blur_field has no key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyOverrides(NewDefaultRegistry(), tt.overrides)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestReportListsShadowing(t *testing.T) {
	r := NewDefaultRegistry()
	r.Register(ContextNormal, "ctrl+c", ActionQuit)

	result := NewValidator().ValidateRegistry(r)
	if !result.HasErrors() {
		t.Fatal("rebinding ctrl+c should be an error")
	}
	if !result.HasWarnings() {
		t.Fatal("ctrl+c in normal shadows the global binding")
	}
	if got := result.String(); !strings.Contains(got, "errors (1)") || !strings.Contains(got, "[shadow] ctrl+c in normal") {
		t.Errorf("unexpected report:\n%s", got)
	}
}

func TestLoadWithoutOverrides(t *testing.T) {
	r, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got, _ := r.Match(ContextNormal, "q"); got != ActionQuit {
		t.Errorf("Match(q) = %q, want quit", got)
	}
}

func TestValidateAction(t *testing.T) {
	if err := ValidateAction("generate"); err != nil {
		t.Errorf("ValidateAction(generate) error = %v", err)
	}
	if err := ValidateAction(""); err == nil {
		t.Error("ValidateAction(\"\") should fail")
	}
}
