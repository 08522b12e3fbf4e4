package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/redactcli/internal/keybinds"
	"github.com/studiowebux/redactcli/internal/view"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	stylePlaceholder = lipgloss.NewStyle().
				Foreground(colorCyan)
)

// layout sizes widgets for the current terminal
func (m *Model) layout() {
	if m.width == 0 {
		return
	}

	bodyHeight := m.height - MainViewHeightOffset
	inputHeight := max(MinInputHeight, int(float64(bodyHeight)*OutputHeightRatio)-PanelBorderWidth-1)
	outputHeight := max(MinInputHeight, bodyHeight-inputHeight-2*PanelBorderWidth-2)

	mainWidth := m.width - CategoryPanelWidth - 2*PanelBorderWidth
	m.redactInput.SetWidth(mainWidth - PanelBorderWidth)
	m.redactInput.SetHeight(inputHeight)
	m.output.Width = mainWidth - PanelBorderWidth
	m.output.Height = outputHeight

	fullWidth := m.width - PanelBorderWidth
	m.mappings.Width = fullWidth/2 - PanelBorderWidth
	m.mappings.Height = max(MinInputHeight, inputHeight-1)
	m.restoreInput.SetWidth(fullWidth - PanelBorderWidth)
	m.restoreInput.SetHeight(outputHeight)

	m.refreshOutput()
	m.refreshMappings()
}

// refreshOutput copies the controller output into the viewport
func (m *Model) refreshOutput() {
	p := m.controller.Redact()
	content := view.Sanitize(p.Output)
	switch {
	case p.OutputIsError:
		content = styleError.Render(content)
	case content == "":
		content = styleSubtle.Render("Anonymized text appears here")
	}
	m.output.SetContent(wrapText(content, m.output.Width))
}

// refreshMappings renders the entity mapping list
func (m *Model) refreshMappings() {
	rows := m.controller.Restore().Mappings
	if len(rows) == 0 {
		m.mappings.SetContent(styleSubtle.Render(view.EmptyMappingsText))
		return
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = stylePlaceholder.Render(r.Key) + styleSubtle.Render(" → ") + r.Values
	}
	m.mappings.SetContent(wrapText(strings.Join(lines, "\n"), m.mappings.Width))
}

// renderMain renders the active view and the status bar
func (m Model) renderMain() string {
	var body string
	if m.controller.State() == view.Restoring {
		body = m.renderRestoreView()
	} else {
		body = m.renderRedactView()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		body,
		m.renderStatusBar(),
		m.renderHelpLine(),
	)
}

func (m Model) panel(title string, content string, width int, focused bool) string {
	border := colorGray
	if focused {
		border = colorGreen
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Render(styleTitle.Render(title) + "\n" + content)
}

func (m Model) renderRedactView() string {
	mainWidth := m.width - CategoryPanelWidth - 2*PanelBorderWidth

	outputTitle := "Anonymized"
	if m.controller.Busy(view.ControlRedact) {
		outputTitle += " " + m.spinner.View()
	}
	if m.controller.Redact().ShowSwitch {
		outputTitle += styleSubtle.Render(fmt.Sprintf("  (%s: restore view)", m.keys.KeyString(keybinds.ContextNormal, keybinds.ActionSwitchView)))
	}

	left := lipgloss.JoinVertical(
		lipgloss.Left,
		m.panel("Input", m.redactInput.View(), mainWidth, m.focus == FocusInput),
		m.panel(outputTitle, m.output.View(), mainWidth, m.focus == FocusOutput),
	)
	right := m.panel("Entity categories", m.renderCategories(), CategoryPanelWidth, m.focus == FocusCategories)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderCategories() string {
	if !m.categoriesLoaded {
		return m.spinner.View() + " loading..."
	}

	names := m.selection.All()
	var sb strings.Builder
	for i, name := range names {
		mark := "[ ]"
		if m.selection.IsSelected(name) {
			mark = styleSuccess.Render("[x]")
		}
		line := fmt.Sprintf("%s %s", mark, name)
		if i == m.categoryIndex && m.focus == FocusCategories {
			line = styleSelected.Render("> " + line)
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\n" + styleSubtle.Render(fmt.Sprintf("%d selected", len(m.selection.Selected()))))
	return sb.String()
}

func (m Model) renderRestoreView() string {
	fullWidth := m.width - PanelBorderWidth
	half := fullWidth/2 - 1

	anonymized := view.Sanitize(m.controller.Restore().AnonymizedText)
	top := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.panel("Entity mappings", m.mappings.View(), half, m.focus == FocusOutput),
		m.panel("Anonymized text", wrapText(anonymized, half-PanelBorderWidth), fullWidth-half-PanelBorderWidth, false),
	)

	inputTitle := "Text to restore"
	if m.controller.Busy(view.ControlRestore) {
		inputTitle += " " + m.spinner.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		top,
		m.panel(inputTitle, m.restoreInput.View(), fullWidth, m.focus == FocusInput),
	)
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	left := fmt.Sprintf("Session: %s | View: %s", m.sessionID, m.controller.State())

	right := ""
	switch {
	case m.errorMsg != "":
		right = styleError.Render(m.errorMsg)
		if m.detailMsg != "" {
			right += styleSubtle.Render(" (" + m.detailMsg + ")")
		}
	case m.statusMsg != "":
		right = styleSuccess.Render(m.statusMsg)
	}

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}
	return left + strings.Repeat(" ", spacing) + right
}

func (m Model) renderHelpLine() string {
	k := func(a keybinds.Action) string { return m.keys.KeyString(keybinds.ContextNormal, a) }
	return styleSubtle.Render(fmt.Sprintf("%s submit • %s switch view • %s focus • %s copy • %s help • %s quit",
		k(keybinds.ActionSubmit), k(keybinds.ActionSwitchView), k(keybinds.ActionFocusNext),
		k(keybinds.ActionCopy), k(keybinds.ActionOpenHelp), k(keybinds.ActionQuitForce)))
}

// helpSections lists the actions shown in the help viewer, per context
var helpSections = []struct {
	title   string
	context keybinds.Context
	entries []helpEntry
}{
	{"Views", keybinds.ContextNormal, []helpEntry{
		{keybinds.ActionSubmit, "Redact (redact view) / restore (restore view)"},
		{keybinds.ActionSwitchView, "Switch between redact and restore views"},
		{keybinds.ActionFocusNext, "Next panel"},
		{keybinds.ActionFocusPrev, "Previous panel"},
		{keybinds.ActionCopy, "Copy anonymized or restored text to clipboard"},
		{keybinds.ActionOpenHelp, "Toggle this help"},
		{keybinds.ActionQuit, "Quit"},
		{keybinds.ActionQuitForce, "Quit from anywhere"},
	}},
	{"Entity categories panel", keybinds.ContextCategories, []helpEntry{
		{keybinds.ActionNavigateUp, "Move up"},
		{keybinds.ActionNavigateDown, "Move down"},
		{keybinds.ActionToggleCategory, "Toggle category"},
		{keybinds.ActionSelectAll, "Select all"},
		{keybinds.ActionSelectNone, "Select none"},
		{keybinds.ActionAddCategory, "Add a custom category"},
	}},
	{"Modals", keybinds.ContextModal, []helpEntry{
		{keybinds.ActionConfirm, "Confirm"},
		{keybinds.ActionCancel, "Cancel"},
		{keybinds.ActionNextField, "Next field"},
	}},
}

type helpEntry struct {
	action keybinds.Action
	desc   string
}

func (m Model) renderHelp() string {
	var b strings.Builder
	for i, section := range helpSections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styleTitle.Render(section.title) + "\n")
		for _, e := range section.entries {
			fmt.Fprintf(&b, "  %-16s %s\n", m.keys.KeyString(section.context, e.action), e.desc)
		}
	}

	closeKeys := m.keys.KeyString(keybinds.ContextHelp, keybinds.ActionCloseModal)
	return m.modal("Help", strings.TrimRight(b.String(), "\n"), styleSubtle.Render(closeKeys+" to close"))
}

func (m Model) renderAddCategoryModal() string {
	content := "Custom entity category name:\n\n" + m.categoryInput.View()
	return m.modal("Add category", content, m.modalHint("add", "cancel"))
}

func (m Model) renderCredentialModal() string {
	label := func(s string, active bool) string {
		if active {
			return styleTitle.Render(s)
		}
		return s
	}
	content := "The service requires authentication.\n\n" +
		label("Username", m.credentialField == 0) + "\n" + m.usernameInput.View() + "\n\n" +
		label("Password", m.credentialField == 1) + "\n" + m.passwordInput.View()
	return m.modal("Sign in", content, styleSubtle.Render(m.keys.KeyString(keybinds.ContextModal, keybinds.ActionNextField)+" switch field • ")+m.modalHint("confirm", "cancel"))
}

func (m Model) renderNoticeModal() string {
	message := ""
	if len(m.notices) > 0 {
		message = view.Sanitize(m.notices[0].message)
	}
	return m.modal("Notice", styleError.Render(message), m.modalHint("dismiss", "dismiss"))
}

// modalHint describes the confirm and cancel keys of a modal
func (m Model) modalHint(confirm, cancel string) string {
	ok := m.keys.KeyString(keybinds.ContextModal, keybinds.ActionConfirm)
	esc := m.keys.KeyString(keybinds.ContextModal, keybinds.ActionCancel)
	if confirm == cancel {
		return styleSubtle.Render(ok + "/" + esc + " " + confirm)
	}
	return styleSubtle.Render(ok + " " + confirm + " • " + esc + " " + cancel)
}

// modal renders content centered in a bordered box
func (m Model) modal(title, content, footer string) string {
	width := min(ModalWidth, m.width-ModalWidthMargin)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Padding(1, 2).
		Width(width).
		Render(styleTitle.Render(title) + "\n\n" + content + "\n\n" + footer)

	return lipgloss.Place(
		m.width,
		m.height-ModalHeightMargin,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}

// wrapText wraps text to width, keeping existing line breaks
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}
