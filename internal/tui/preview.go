package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vcardify/vcardify/internal/contact"
	"github.com/vcardify/vcardify/internal/phone"
)

// cursorMarker is the prefix shown on the selected contact row.
const cursorMarker = "▸ "

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	selectedStyle = lipgloss.NewStyle().Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(11)
)

// PreviewModel is the Bubble Tea model for browsing parsed contacts before
// conversion. Telephone numbers are shown the way the serializer would emit
// them.
type PreviewModel struct {
	source          string // input file name, shown in the title
	contacts        []contact.Contact
	formatTelephone bool
	cursor          int
	height          int
}

// NewPreviewModel creates a PreviewModel over the given contacts.
func NewPreviewModel(source string, contacts []contact.Contact, formatTelephone bool) PreviewModel {
	return PreviewModel{
		source:          source,
		contacts:        contacts,
		formatTelephone: formatTelephone,
	}
}

// Init implements tea.Model. The preview has no initial command.
func (m PreviewModel) Init() tea.Cmd {
	return nil
}

// Update handles navigation and quit keys.
func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.contacts)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			if len(m.contacts) > 0 {
				m.cursor = len(m.contacts) - 1
			}
		}
	}

	return m, nil
}

// View renders the contact list with a detail pane for the selection.
func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s — %d contacts", m.source, len(m.contacts))) + "\n\n")

	if len(m.contacts) == 0 {
		b.WriteString("  no contacts found\n")
		b.WriteString("\n" + labelStyle.Render("q") + " quit\n")
		return b.String()
	}

	for i, c := range m.contacts {
		line := "  " + displayName(c)
		if c.Email != "" {
			line += " <" + c.Email + ">"
		}
		if i == m.cursor {
			line = cursorMarker + selectedStyle.Render(strings.TrimPrefix(line, "  "))
		}
		b.WriteString(line + "\n")
	}

	sel := m.contacts[m.cursor]
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("first name") + valueOrDash(sel.FirstName) + "\n")
	b.WriteString(labelStyle.Render("last name") + valueOrDash(sel.LastName) + "\n")
	b.WriteString(labelStyle.Render("email") + valueOrDash(sel.Email) + "\n")
	b.WriteString(labelStyle.Render("telephone") + valueOrDash(phone.Format(sel.Telephone, m.formatTelephone)) + "\n")

	b.WriteString("\n" + labelStyle.Render("↑/↓ move") + "q quit\n")

	return b.String()
}

// displayName renders a contact's name for the list, falling back when both
// parts are empty.
func displayName(c contact.Contact) string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return "(no name)"
	}
	return name
}

func valueOrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "—"
	}
	return v
}
