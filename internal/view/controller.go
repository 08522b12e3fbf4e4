package view

import (
	"errors"
	"sync"

	"github.com/studiowebux/redactcli/internal/catalog"
	"github.com/studiowebux/redactcli/internal/types"
)

// State is the active view
type State int

const (
	Redacting State = iota
	Restoring
)

func (s State) String() string {
	switch s {
	case Redacting:
		return "redact"
	case Restoring:
		return "restore"
	default:
		return "unknown"
	}
}

// Control identifies a user control that can have a call in flight
type Control int

const (
	ControlRedact Control = iota
	ControlRestore
)

// ErrNoRedaction is returned when switching to restore without a stored mapping
var ErrNoRedaction = errors.New("错误: 未找到脱敏数据")

// RedactPanel is the data shown by the redact view
type RedactPanel struct {
	Input         string
	Output        string
	OutputIsError bool
	Loading       bool
	ShowSwitch    bool
}

// RestorePanel is the data shown by the restore view
type RestorePanel struct {
	Mappings       []MappingRow
	AnonymizedText string
	Input          string
	Loading        bool
}

// Controller owns the two mutually exclusive views and their transitions.
// It holds plain data only; rendering is done by an adapter.
type Controller struct {
	mu sync.RWMutex

	state   State
	redact  RedactPanel
	restore RestorePanel
	busy    map[Control]bool
}

// NewController creates a controller in the Redacting state
func NewController() *Controller {
	return &Controller{
		state: Redacting,
		busy:  make(map[Control]bool),
	}
}

// State returns the active view
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Redact returns a copy of the redact panel
func (c *Controller) Redact() RedactPanel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.redact
}

// Restore returns a copy of the restore panel
func (c *Controller) Restore() RestorePanel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p := c.restore
	p.Mappings = append([]MappingRow(nil), c.restore.Mappings...)
	return p
}

// Hydrate applies a stored state at startup: input, output, switch
// affordance and category selection.
func (c *Controller) Hydrate(state *types.SessionState, selection *catalog.Selection) {
	if state == nil {
		return
	}

	c.mu.Lock()
	if state.OriginalText != "" {
		c.redact.Input = state.OriginalText
	}
	if state.AnonymizedText != "" {
		c.redact.Output = state.AnonymizedText
		c.redact.OutputIsError = false
		c.redact.ShowSwitch = true
	}
	c.mu.Unlock()

	if selection != nil && state.EntityTypes != nil {
		selection.Ensure(state.EntityTypes)
		selection.SetSelected(state.EntityTypes)
	}
}

// SwitchToRestore moves to the restore view. It is refused, leaving the
// controller in Redacting, unless state carries a non-empty entity mapping.
func (c *Controller) SwitchToRestore(state *types.SessionState) error {
	if !state.HasMappings() {
		return ErrNoRedaction
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.restore.Mappings = RenderMappings(state.Entities)
	c.restore.AnonymizedText = Sanitize(state.AnonymizedText)
	c.state = Restoring
	return nil
}

// SwitchToRedact moves back to the redact view; it is always allowed
func (c *Controller) SwitchToRedact(state *types.SessionState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if state != nil {
		c.redact.Input = state.OriginalText
		c.redact.Output = state.AnonymizedText
		c.redact.OutputIsError = false
		c.redact.ShowSwitch = true
	}
	c.state = Redacting
}

// Begin marks a control busy. It returns false when a call from the same
// control is still in flight; different controls may overlap.
func (c *Controller) Begin(control Control) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy[control] {
		return false
	}
	c.busy[control] = true
	c.setLoading(control, true)
	return true
}

// End clears the busy mark set by Begin
func (c *Controller) End(control Control) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.busy, control)
	c.setLoading(control, false)
}

// Busy reports whether control has a call in flight
func (c *Controller) Busy(control Control) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.busy[control]
}

func (c *Controller) setLoading(control Control, loading bool) {
	switch control {
	case ControlRedact:
		c.redact.Loading = loading
	case ControlRestore:
		c.restore.Loading = loading
	}
}

// SetRedactInput replaces the redact input text
func (c *Controller) SetRedactInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.redact.Input = text
}

// SetRedactOutput replaces the redact output
func (c *Controller) SetRedactOutput(text string, isError bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.redact.Output = text
	c.redact.OutputIsError = isError
}

// ShowSwitch reveals the switch-to-restore affordance
func (c *Controller) ShowSwitch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.redact.ShowSwitch = true
}

// SetRestoreInput replaces the restore input text
func (c *Controller) SetRestoreInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.restore.Input = text
}
