package view

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/studiowebux/redactcli/internal/types"
)

// EmptyMappingsText is shown when there is nothing to display
const EmptyMappingsText = "无实体映射"

// MappingRow is one rendered entity mapping
type MappingRow struct {
	Key    string
	Values string
}

// RenderMappings renders each mapping as key plus comma-joined values.
// Keys and values come from untrusted content and are sanitized.
func RenderMappings(entities []types.EntityMapping) []MappingRow {
	rows := make([]MappingRow, 0, len(entities))
	for _, e := range entities {
		rows = append(rows, MappingRow{
			Key:    Sanitize(e.Key),
			Values: Sanitize(strings.Join(e.Values, ", ")),
		})
	}
	return rows
}

// FormatMapping renders a row as "key → values"
func FormatMapping(row MappingRow) string {
	return row.Key + " → " + row.Values
}

// FormatMappings renders all rows one per line, or EmptyMappingsText
func FormatMappings(rows []MappingRow) string {
	if len(rows) == 0 {
		return EmptyMappingsText
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = FormatMapping(r)
	}
	return strings.Join(lines, "\n")
}

// Sanitize removes terminal escape sequences and control characters so that
// remote content cannot restyle or move the cursor. Newlines and tabs survive.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0):
			return -1
		default:
			return r
		}
	}, s)
}
