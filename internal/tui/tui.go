// Package tui provides the interactive chat view.
package tui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/docchat/internal/appconfig"
	"github.com/mwiater/docchat/internal/chat"
	"github.com/mwiater/docchat/internal/display"
	"github.com/mwiater/docchat/internal/logging"
	"github.com/mwiater/docchat/internal/terminal"
)

// Greeting is shown above the conversation. It is not part of the log.
const Greeting = "こんにちは。私は社内文書の情報をもとに回答する生成AIチャットボットです。" +
	"tabキーで利用目的を切り替え、画面下部のチャット欄からメッセージを送信してください。"

// model is the Bubble Tea model for the chat view.
type model struct {
	ctx              context.Context
	config           *appconfig.Config
	session          *chat.Session
	isLoading        bool
	err              error
	textArea         textarea.Model
	viewport         viewport.Model
	spinner          spinner.Model
	showModes        bool
	width, height    int
	requestStartTime time.Time
}

// answerMsg carries a backend response for the question asked in mode.
type answerMsg struct {
	mode display.Mode
	resp display.Response
}

// answerErr is sent when the backend request fails.
type answerErr struct{ error }

// tickMsg keeps the elapsed-time counter moving while waiting for an answer.
type tickMsg time.Time

// initialModel creates and initializes a new model with default values.
func initialModel(ctx context.Context, cfg *appconfig.Config, session *chat.Session) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ta := textarea.New()
	ta.Placeholder = "Send a message..."
	ta.Focus()
	ta.Prompt = "Ask Anything: "
	ta.ShowLineNumbers = false
	ta.CharLimit = -1
	ta.SetHeight(1)
	ta.KeyMap.InsertNewline.SetEnabled(false)

	return &model{
		ctx:      ctx,
		config:   cfg,
		session:  session,
		spinner:  s,
		textArea: ta,
		viewport: viewport.New(100, 5),
	}
}

// askCmd fetches an answer off the UI goroutine. It does not touch the session log.
func askCmd(ctx context.Context, session *chat.Session, mode display.Mode, question string) tea.Cmd {
	return func() tea.Msg {
		log.Printf("[docchat -> backend] mode=%s question='%s'", mode.Alias(), question)
		resp, err := session.Fetch(ctx, mode, question)
		if err != nil {
			return answerErr{error: err}
		}
		return answerMsg{mode: mode, resp: resp}
	}
}

// tickCmd creates a Bubble Tea command that sends a tickMsg at a regular interval.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the spinner animation.
func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			if !m.isLoading {
				mode := m.session.ToggleMode()
				logging.LogEvent("[TUI] mode switched to %s", mode.Alias())
			}
			return m, nil
		case "ctrl+r":
			if !m.isLoading {
				m.err = m.session.Reset()
				m.viewport.GotoTop()
			}
			return m, nil
		case "f1":
			m.showModes = !m.showModes
			return m, nil
		case "enter":
			question := strings.TrimSpace(m.textArea.Value())
			if question == "" || m.isLoading {
				return m, nil
			}
			m.err = nil
			if err := m.session.Submit(question); err != nil {
				m.err = err
				return m, nil
			}
			m.textArea.Reset()
			m.isLoading = true
			m.requestStartTime = time.Now()
			m.viewport.GotoBottom()
			return m, tea.Batch(m.spinner.Tick, askCmd(m.ctx, m.session, m.session.Mode(), question), tickCmd())
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.textArea.SetWidth(msg.Width - 3)
		headerHeight := 4
		footerHeight := 3
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight

	case answerMsg:
		m.isLoading = false
		rendered := display.NewRecorder()
		if _, err := m.session.Respond(msg.mode, msg.resp, rendered); err != nil {
			m.err = err
		}
		if m.config != nil && m.config.Debug {
			logging.LogEvent("[TUI] rendered turn:\n%s", rendered.String())
		}
		m.textArea.Focus()
		m.viewport.GotoBottom()
		return m, nil

	case answerErr:
		m.isLoading = false
		m.err = msg.error
		return m, nil

	case tickMsg:
		if m.isLoading {
			return m, tickCmd()
		}
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	m.textArea, cmd = m.textArea.Update(msg)
	cmds = append(cmds, cmd)

	if m.isLoading {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the header, the replayed conversation and the input line.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var builder strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Width(m.width).Align(lipgloss.Center)
	labelStyle := lipgloss.NewStyle().Background(lipgloss.Color("0")).Foreground(lipgloss.Color("255")).Padding(0, 1)
	modeStyle := lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)

	builder.WriteString(titleStyle.Render(m.config.Title()) + "\n")
	status := lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render("利用目的:"),
		modeStyle.Render(string(m.session.Mode())),
	)
	help := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render(" (tab: switch mode, ctrl+r: reset, f1: help, esc: quit)")
	builder.WriteString(status + help + "\n\n")

	surface := terminal.New(m.width - 2)
	if m.showModes {
		display.DescribeModes(surface)
	}
	surface.BeginMessage(display.RoleAssistant)
	surface.Success(Greeting, "")
	m.session.Replay(surface)

	m.viewport.SetContent(surface.String())
	builder.WriteString(m.viewport.View())

	if m.isLoading {
		timer := fmt.Sprintf("%.1f", time.Since(m.requestStartTime).Seconds())
		builder.WriteString("\n" + m.spinner.View() + fmt.Sprintf(" Assistant is thinking... %ss", timer))
	} else {
		builder.WriteString("\n" + m.textArea.View())
	}

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		builder.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return builder.String()
}

// Start runs the interactive chat view until the user quits.
func Start(ctx context.Context, cfg *appconfig.Config, session *chat.Session) error {
	if cfg == nil {
		return fmt.Errorf("configuration is not loaded")
	}
	f, err := tea.LogToFile(cfg.LogFilePath(), "tui")
	if err != nil {
		return fmt.Errorf("could not open log file: %w", err)
	}
	defer f.Close()

	m := initialModel(ctx, cfg, session)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
