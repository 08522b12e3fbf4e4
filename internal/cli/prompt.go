package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/redactcli/internal/catalog"
)

// ErrSelectionCancelled is returned when the picker is dismissed
var ErrSelectionCancelled = errors.New("selection cancelled")

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1).MarginLeft(2)
)

type item struct {
	name string
	sel  *catalog.Selection
}

func (i item) FilterValue() string { return i.name }

func (i item) Title() string {
	if i.sel.IsSelected(i.name) {
		return "[x] " + i.name
	}
	return "[ ] " + i.name
}

func (i item) Description() string { return "" }

type pickerModel struct {
	list      list.Model
	selection *catalog.Selection
	confirmed bool
	custom    bool
	quitting  bool
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit

		case " ", "x":
			if i, ok := m.list.SelectedItem().(item); ok {
				m.selection.Toggle(i.name)
			}
			return m, nil

		case "a":
			m.selection.SetSelected(m.selection.All())
			return m, nil

		case "n":
			m.selection.SetSelected(nil)
			return m, nil

		case "enter":
			m.confirmed = true
			m.quitting = true
			return m, tea.Quit

		case "+", "c":
			m.custom = true
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("↑/↓: navigate • space: toggle • a/n: all/none • +: custom • enter: confirm • q: cancel")
	return fmt.Sprintf("%s\n\n%s", m.list.View(), help)
}

// PickCategories shows an interactive multi-select over the catalog.
// preselected narrows the initial selection when non-empty.
func PickCategories(available, preselected []string) ([]string, error) {
	sel := catalog.NewSelection(available)
	if len(preselected) > 0 {
		sel.Ensure(preselected)
		sel.SetSelected(preselected)
	}

	for {
		m, err := runPicker(sel)
		if err != nil {
			return nil, err
		}

		if m.custom {
			name, err := promptForCustomCategory(os.Stdin, os.Stderr)
			if err != nil {
				return nil, err
			}
			sel.AddCustom(name)
			continue
		}

		if !m.confirmed {
			return nil, ErrSelectionCancelled
		}
		return sel.Selected(), nil
	}
}

func runPicker(sel *catalog.Selection) (pickerModel, error) {
	names := sel.All()
	items := make([]list.Item, 0, len(names))
	for _, n := range names {
		items = append(items, item{name: n, sel: sel})
	}

	const defaultWidth = 60
	listHeight := len(items) + 6
	if listHeight > 20 {
		listHeight = 20
	}

	l := list.New(items, itemDelegate{}, defaultWidth, listHeight)
	l.Title = "Select entity categories"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	finalModel, err := tea.NewProgram(pickerModel{list: l, selection: sel}, tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return pickerModel{}, fmt.Errorf("error running selector: %w", err)
	}
	return finalModel.(pickerModel), nil
}

// itemDelegate renders one category per line
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(item)
	if !ok {
		return
	}

	str := i.Title()

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

// promptForCustomCategory reads a category name typed by the user
func promptForCustomCategory(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "\nEnter custom category: ")
	value, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && value == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(value), nil
}
