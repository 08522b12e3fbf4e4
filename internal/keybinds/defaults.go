package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerNormalBindings(r)
	registerCategoryBindings(r)
	registerModalBindings(r)
	registerHelpBindings(r)

	return r
}

func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

// registerNormalBindings avoids printable keys, which belong to the text areas
func registerNormalBindings(r *Registry) {
	r.Register(ContextNormal, "ctrl+q", ActionQuit)
	r.Register(ContextNormal, "ctrl+s", ActionSubmit)
	r.Register(ContextNormal, "ctrl+t", ActionSwitchView)
	r.Register(ContextNormal, "ctrl+y", ActionCopy)
	r.Register(ContextNormal, "f1", ActionOpenHelp)
	r.Register(ContextNormal, "tab", ActionFocusNext)
	r.Register(ContextNormal, "shift+tab", ActionFocusPrev)
}

func registerCategoryBindings(r *Registry) {
	r.RegisterMultiple(ContextCategories, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextCategories, []string{"down", "j"}, ActionNavigateDown)
	r.RegisterMultiple(ContextCategories, []string{" ", "x", "enter"}, ActionToggleCategory)
	r.Register(ContextCategories, "a", ActionSelectAll)
	r.Register(ContextCategories, "n", ActionSelectNone)
	r.RegisterMultiple(ContextCategories, []string{"+", "c"}, ActionAddCategory)
}

func registerModalBindings(r *Registry) {
	r.Register(ContextModal, "enter", ActionConfirm)
	r.Register(ContextModal, "esc", ActionCancel)
	r.RegisterMultiple(ContextModal, []string{"tab", "shift+tab", "up", "down"}, ActionNextField)
}

func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "q", "f1", "enter"}, ActionCloseModal)
}
