package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal     Context = "global"     // Available everywhere
	ContextNormal     Context = "normal"     // Redact and restore views
	ContextCategories Context = "categories" // Category list panel
	ContextModal      Context = "modal"      // Text and notice modals
	ContextHelp       Context = "help"       // Help viewer
)

const (
	// Global actions
	ActionQuitForce Action = "quit_force"

	// View actions
	ActionQuit       Action = "quit"
	ActionSubmit     Action = "submit"
	ActionSwitchView Action = "switch_view"
	ActionCopy       Action = "copy"
	ActionOpenHelp   Action = "open_help"
	ActionFocusNext  Action = "focus_next"
	ActionFocusPrev  Action = "focus_prev"

	// Category list actions
	ActionNavigateUp     Action = "navigate_up"
	ActionNavigateDown   Action = "navigate_down"
	ActionToggleCategory Action = "toggle_category"
	ActionSelectAll      Action = "select_all"
	ActionSelectNone     Action = "select_none"
	ActionAddCategory    Action = "add_category"

	// Modal actions
	ActionConfirm    Action = "confirm"
	ActionCancel     Action = "cancel"
	ActionNextField  Action = "next_field"
	ActionCloseModal Action = "close_modal"
)

// knownActions lists every action a binding may name
var knownActions = map[Action]bool{
	ActionQuitForce:      true,
	ActionQuit:           true,
	ActionSubmit:         true,
	ActionSwitchView:     true,
	ActionCopy:           true,
	ActionOpenHelp:       true,
	ActionFocusNext:      true,
	ActionFocusPrev:      true,
	ActionNavigateUp:     true,
	ActionNavigateDown:   true,
	ActionToggleCategory: true,
	ActionSelectAll:      true,
	ActionSelectNone:     true,
	ActionAddCategory:    true,
	ActionConfirm:        true,
	ActionCancel:         true,
	ActionNextField:      true,
	ActionCloseModal:     true,
}

// IsKnown reports whether a is a defined action
func IsKnown(a Action) bool {
	return knownActions[a]
}
