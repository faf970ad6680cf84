package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerNormalModeBindings(r)
	registerFormBindings(r)
	registerActivityBindings(r)
	registerHelpBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all contexts.
// They use modifiers so they still work while a field has focus.
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextGlobal, "ctrl+g", ActionGenerate)
	r.Register(ContextGlobal, "ctrl+s", ActionSaveSettings)
}

func registerNormalModeBindings(r *Registry) {
	r.Register(ContextNormal, "q", ActionQuit)
	r.RegisterMultiple(ContextNormal, []string{"enter", "g"}, ActionGenerate)
	r.Register(ContextNormal, "a", ActionApply)
	r.Register(ContextNormal, "s", ActionToggleSchedule)
	r.Register(ContextNormal, "w", ActionSaveSettings)
	r.Register(ContextNormal, "m", ActionNextMode)
	r.Register(ContextNormal, "M", ActionPrevMode)
	r.Register(ContextNormal, "t", ActionNextTheme)
	r.Register(ContextNormal, "T", ActionPrevTheme)
	r.RegisterMultiple(ContextNormal, []string{"tab", "i", "e"}, ActionFocusForm)
	r.Register(ContextNormal, "y", ActionCopySummary)
	r.Register(ContextNormal, "h", ActionOpenActivity)
	r.Register(ContextNormal, "?", ActionOpenHelp)
}

func registerFormBindings(r *Registry) {
	r.RegisterMultiple(ContextForm, []string{"tab", "down"}, ActionNextField)
	r.RegisterMultiple(ContextForm, []string{"shift+tab", "up"}, ActionPrevField)
	r.Register(ContextForm, "esc", ActionBlurField)
	r.Register(ContextForm, "enter", ActionGenerate)
}

func registerActivityBindings(r *Registry) {
	r.RegisterMultiple(ContextActivity, []string{"esc", "q", "h"}, ActionCloseView)
	r.RegisterMultiple(ContextActivity, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextActivity, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextActivity, "C", ActionClearActivity)
}

func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "q", "?"}, ActionCloseView)
}
