/*
Package keybinds provides customizable keyboard binding management.

# Key Concepts

Context Hierarchy:
  - Global: Bindings available everywhere (modifier keys only)
  - Normal: Main view with no field focused
  - Form: A text field has focus, so plain letters are typed, not matched
  - Activity, Help: Full-screen views

A key bound in a specific context shadows the same key in global.

# Customization

The settings file carries a "keybinds" map. Each entry is either an action
name or "context.action", mapped to the complete list of keys:

	keybinds:
	  generate: ["enter", "p"]
	  form.next_field: ["tab"]

A bare action replaces its keys wherever it is bound by default. The result
is validated: ctrl+c stays force quit, and every view keeps a way out.
*/
package keybinds
