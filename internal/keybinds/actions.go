package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal   Context = "global"   // Available everywhere
	ContextNormal   Context = "normal"   // No form field focused
	ContextForm     Context = "form"     // A form field has focus
	ContextActivity Context = "activity" // Activity log view
	ContextHelp     Context = "help"     // Help viewer
)

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Backend actions
	ActionGenerate       Action = "generate"        // Generate preview
	ActionApply          Action = "apply"           // Set wallpaper
	ActionToggleSchedule Action = "toggle_schedule" // Install or remove the weekly job
	ActionSaveSettings   Action = "save_settings"   // Persist the form as backend defaults

	// Selection
	ActionNextMode  Action = "next_mode"  // Cycle mode forward
	ActionPrevMode  Action = "prev_mode"  // Cycle mode backward
	ActionNextTheme Action = "next_theme" // Cycle theme forward
	ActionPrevTheme Action = "prev_theme" // Cycle theme backward

	// Form focus
	ActionFocusForm Action = "focus_form" // Focus the first visible field
	ActionNextField Action = "next_field" // Focus next visible field
	ActionPrevField Action = "prev_field" // Focus previous visible field
	ActionBlurField Action = "blur_field" // Leave the form

	// Misc
	ActionCopySummary   Action = "copy_summary"   // Copy preview stats to clipboard
	ActionOpenActivity  Action = "open_activity"  // Open activity log
	ActionClearActivity Action = "clear_activity" // Clear activity log
	ActionOpenHelp      Action = "open_help"      // Open help viewer
	ActionCloseView     Action = "close_view"     // Close the current view
	ActionNavigateUp    Action = "navigate_up"    // Scroll up
	ActionNavigateDown  Action = "navigate_down"  // Scroll down
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:           {ActionQuit, "Quit", "Global"},
	ActionQuitForce:      {ActionQuitForce, "Force quit", "Global"},
	ActionGenerate:       {ActionGenerate, "Generate preview", "Wallpaper"},
	ActionApply:          {ActionApply, "Set as wallpaper", "Wallpaper"},
	ActionToggleSchedule: {ActionToggleSchedule, "Toggle weekly update", "Wallpaper"},
	ActionSaveSettings:   {ActionSaveSettings, "Save as defaults", "Wallpaper"},
	ActionNextMode:       {ActionNextMode, "Next mode", "Selection"},
	ActionPrevMode:       {ActionPrevMode, "Previous mode", "Selection"},
	ActionNextTheme:      {ActionNextTheme, "Next theme", "Selection"},
	ActionPrevTheme:      {ActionPrevTheme, "Previous theme", "Selection"},
	ActionFocusForm:      {ActionFocusForm, "Edit fields", "Form"},
	ActionNextField:      {ActionNextField, "Next field", "Form"},
	ActionPrevField:      {ActionPrevField, "Previous field", "Form"},
	ActionBlurField:      {ActionBlurField, "Leave fields", "Form"},
	ActionCopySummary:    {ActionCopySummary, "Copy summary", "Misc"},
	ActionOpenActivity:   {ActionOpenActivity, "Activity log", "Misc"},
	ActionClearActivity:  {ActionClearActivity, "Clear activity log", "Misc"},
	ActionOpenHelp:       {ActionOpenHelp, "Help", "Misc"},
	ActionCloseView:      {ActionCloseView, "Close", "Misc"},
	ActionNavigateUp:     {ActionNavigateUp, "Scroll up", "Misc"},
	ActionNavigateDown:   {ActionNavigateDown, "Scroll down", "Misc"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{Action: action, Description: string(action), Category: "Other"}
}

// IsKnownAction reports whether action is one the application handles
func IsKnownAction(action Action) bool {
	_, ok := actionInfos[action]
	return ok
}
