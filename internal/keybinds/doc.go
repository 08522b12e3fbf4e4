// Package keybinds maps key strings to TUI actions per context.
//
// Defaults live in defaults.go. Users override them in
// ~/.redactcli/keybinds.json (comments and trailing commas allowed), one
// section per context, each mapping an action to comma-separated keys:
//
//	{
//	  // submit with ctrl+r instead of ctrl+s
//	  "normal": {"submit": "ctrl+r"},
//	  "categories": {"add_category": "+,c,i"},
//	}
//
// ctrl+c is reserved for quitting and cannot be rebound.
package keybinds
