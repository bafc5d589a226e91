// Package terminal draws chat turns with lipgloss styles.
package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/docchat/internal/display"
)

const minWidth = 20

type styles struct {
	user      lipgloss.Style
	assistant lipgloss.Style
	body      lipgloss.Style
	heading   lipgloss.Style
	divider   lipgloss.Style
	info      lipgloss.Style
	success   lipgloss.Style
}

func colorStyles() styles {
	return styles{
		user:      lipgloss.NewStyle().Bold(true),
		assistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		body:      lipgloss.NewStyle().PaddingLeft(2),
		heading:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).PaddingLeft(2),
		divider:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")).PaddingLeft(2),
		info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("39")).
			MarginLeft(2).PaddingLeft(1),
		success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("40")).
			MarginLeft(2).PaddingLeft(1),
	}
}

func plainStyles() styles {
	indent := lipgloss.NewStyle().PaddingLeft(2)
	return styles{
		user:      lipgloss.NewStyle(),
		assistant: lipgloss.NewStyle(),
		body:      indent,
		heading:   indent,
		divider:   indent,
		info:      indent,
		success:   indent,
	}
}

// Surface renders display calls into a text frame.
type Surface struct {
	width    int
	st       styles
	b        strings.Builder
	messages int
}

// New returns a styled Surface wrapping text at width columns.
func New(width int) *Surface {
	return &Surface{width: clampWidth(width), st: colorStyles()}
}

// NewPlain returns a Surface without colors or borders.
func NewPlain(width int) *Surface {
	return &Surface{width: clampWidth(width), st: plainStyles()}
}

func clampWidth(width int) int {
	if width < minWidth {
		return minWidth
	}
	return width
}

// BeginMessage starts a new turn.
func (s *Surface) BeginMessage(role display.Role) {
	if s.messages > 0 {
		s.b.WriteString("\n")
	}
	s.messages++
	if role == display.RoleUser {
		s.line(s.st.user.Render("You:"))
		return
	}
	s.line(s.st.assistant.Render("Assistant:"))
}

func (s *Surface) Markdown(text string) {
	s.line(s.st.body.Width(s.width).Render(text))
}

func (s *Surface) Heading(text string) {
	s.line(s.st.heading.Render(text))
}

func (s *Surface) Divider() {
	s.line(s.st.divider.Render(strings.Repeat("─", s.width-2)))
}

func (s *Surface) Info(text, icon string) {
	s.line(s.st.info.Width(s.width - 2).Render(withIcon(text, icon)))
}

func (s *Surface) Success(text, icon string) {
	s.line(s.st.success.Width(s.width - 2).Render(withIcon(text, icon)))
}

func withIcon(text, icon string) string {
	if icon == "" {
		return text
	}
	return icon + " " + text
}

func (s *Surface) line(text string) {
	s.b.WriteString(text)
	s.b.WriteString("\n")
}

// String returns everything drawn so far.
func (s *Surface) String() string {
	return strings.TrimRight(s.b.String(), "\n")
}

// Reset clears the frame.
func (s *Surface) Reset() {
	s.b.Reset()
	s.messages = 0
}
