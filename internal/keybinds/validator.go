package keybinds

import (
	"fmt"
	"strings"
)

// ValidationError represents a keybinding validation error
type ValidationError struct {
	Type    string // "conflict", "invalid", "warning"
	Context Context
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %q in context '%s': %s", e.Type, e.Key, e.Context, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator validates keybinding registries
type Validator struct {
	// reservedKeys must keep their default action
	reservedKeys map[string]Action
	// required actions must stay reachable
	required map[Context][]Action
}

// NewValidator creates a new keybinding validator
func NewValidator() *Validator {
	return &Validator{
		reservedKeys: map[string]Action{
			"ctrl+c": ActionQuitForce,
		},
		required: map[Context][]Action{
			ContextNormal: {ActionSubmit, ActionSwitchView},
			ContextModal:  {ActionConfirm, ActionCancel},
		},
	}
}

// ValidateRegistry validates an entire registry
func (v *Validator) ValidateRegistry(registry *Registry) *ValidationResult {
	result := &ValidationResult{}

	v.checkReservedKeys(registry, result)
	v.checkRequiredActions(registry, result)
	v.checkPrintableKeys(registry, result)
	v.checkShadowing(registry, result)

	return result
}

// checkReservedKeys rejects rebinding of reserved keys in any context
func (v *Validator) checkReservedKeys(registry *Registry, result *ValidationResult) {
	for _, context := range registry.Contexts() {
		for _, b := range registry.ListBindings(context) {
			want, reserved := v.reservedKeys[b.Key]
			if reserved && b.Action != want {
				result.Errors = append(result.Errors, ValidationError{
					Type:    "conflict",
					Context: context,
					Key:     b.Key,
					Message: fmt.Sprintf("reserved for %s, cannot bind to %s", want, b.Action),
				})
			}
		}
	}
}

// checkRequiredActions makes sure essential actions keep at least one key
func (v *Validator) checkRequiredActions(registry *Registry, result *ValidationResult) {
	for context, actions := range v.required {
		for _, action := range actions {
			if len(registry.Keys(context, action)) == 0 {
				result.Errors = append(result.Errors, ValidationError{
					Type:    "invalid",
					Context: context,
					Key:     "",
					Message: fmt.Sprintf("action %s has no key", action),
				})
			}
		}
	}
}

// checkPrintableKeys warns when a view binding steals a printable key from
// the text areas.
func (v *Validator) checkPrintableKeys(registry *Registry, result *ValidationResult) {
	for _, b := range registry.ListBindings(ContextNormal) {
		if len([]rune(b.Key)) == 1 {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:    "warning",
				Context: ContextNormal,
				Key:     b.Key,
				Message: "printable key cannot be typed into the text areas",
			})
		}
	}
}

// checkShadowing warns when a context binding hides a global binding
func (v *Validator) checkShadowing(registry *Registry, result *ValidationResult) {
	global := make(map[string]Action)
	for _, b := range registry.ListBindings(ContextGlobal) {
		global[b.Key] = b.Action
	}

	for _, context := range registry.Contexts() {
		if context == ContextGlobal {
			continue
		}
		for _, b := range registry.ListBindings(context) {
			if action, ok := global[b.Key]; ok && action != b.Action {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Context: context,
					Key:     b.Key,
					Message: fmt.Sprintf("shadows global binding %s", action),
				})
			}
		}
	}
}
