package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Konoa-1025/Cresta-Open-Data/internal/tui/style"
)

// PhaseItem represents one step of the publish workflow
type PhaseItem struct {
	Name   string // "resolve branch", "stage changes", ...
	Status string // "pending", "running", "done", "skipped", "error"
	Detail string // branch name, commit id, skip reason
	Error  error
}

// PublishUI defines the interface for the publish workflow display
type PublishUI interface {
	// Start begins the progress display with the planned phases
	Start(items []PhaseItem)

	// UpdatePhase updates the status of a single phase
	UpdatePhase(idx int, status string, detail string, err error)

	// Complete finalizes the display and shows the summary line
	Complete(summary string)
}

// NewPublishUI creates the appropriate UI based on TTY availability
func NewPublishUI(splog *Splog) PublishUI {
	if IsTTY() {
		return NewTTYPublishUI(splog)
	}
	return NewSimplePublishUI(splog)
}

// ============================================================================
// SimplePublishUI - Non-bubbletea implementation for non-TTY environments
// ============================================================================

// SimplePublishUI implements PublishUI with line-by-line output
type SimplePublishUI struct {
	splog *Splog
	items []PhaseItem
}

// NewSimplePublishUI creates a new simple publish UI
func NewSimplePublishUI(splog *Splog) *SimplePublishUI {
	return &SimplePublishUI{splog: splog}
}

func (u *SimplePublishUI) Start(items []PhaseItem) {
	u.items = make([]PhaseItem, len(items))
	copy(u.items, items)
}

func (u *SimplePublishUI) UpdatePhase(idx int, status string, detail string, err error) {
	if idx >= len(u.items) {
		return
	}

	item := u.items[idx]

	switch status {
	case "running":
		u.splog.Info("  ⋯ %s...", item.Name)

	case "done":
		if detail != "" {
			u.splog.Info("  ✓ %s → %s", item.Name, detail)
		} else {
			u.splog.Info("  ✓ %s", item.Name)
		}

	case "skipped":
		u.splog.Info("  ▸ %s %s", item.Name, style.ColorDim("("+detail+")"))

	case "error":
		u.splog.Info("  ✗ %s failed: %v", item.Name, err)
	}

	u.items[idx].Status = status
	u.items[idx].Detail = detail
	u.items[idx].Error = err
}

func (u *SimplePublishUI) Complete(summary string) {
	if summary == "" {
		return
	}
	u.splog.Newline()
	u.splog.Info("%s", summary)
}

// ============================================================================
// TTYPublishUI - Bubbletea implementation for TTY environments
// ============================================================================

// TTYPublishUI implements PublishUI with bubbletea for animated progress
type TTYPublishUI struct {
	splog    *Splog
	items    []PhaseItem
	program  *tea.Program
	model    *ttyPublishModel
	started  bool
	wasQuiet bool
}

// NewTTYPublishUI creates a new TTY publish UI
func NewTTYPublishUI(splog *Splog) *TTYPublishUI {
	return &TTYPublishUI{splog: splog}
}

func (u *TTYPublishUI) Start(items []PhaseItem) {
	u.items = make([]PhaseItem, len(items))
	copy(u.items, items)
	u.started = true

	// Silence plain logging while the program owns the terminal
	u.wasQuiet = u.splog.IsQuiet()
	u.splog.SetQuiet(true)

	u.model = newTTYPublishModel(u.items)
	u.program = tea.NewProgram(u.model, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))

	// Run program in background
	go func() {
		u.program.Run()
	}()
}

func (u *TTYPublishUI) UpdatePhase(idx int, status string, detail string, err error) {
	if !u.started || u.program == nil {
		return
	}
	u.program.Send(phaseUpdateMsg{
		idx:    idx,
		status: status,
		detail: detail,
		err:    err,
	})
}

func (u *TTYPublishUI) Complete(summary string) {
	if !u.started || u.program == nil {
		return
	}
	u.program.Send(phaseCompleteMsg{summary: summary})
	u.program.Wait()
	u.splog.SetQuiet(u.wasQuiet)
}

// ============================================================================
// Internal bubbletea model for TTY publish progress
// ============================================================================

type ttyPublishModel struct {
	items   []PhaseItem
	spinner spinner.Model
	done    bool
	summary string
	styles  publishStyles
}

type publishStyles struct {
	spinnerStyle lipgloss.Style
	doneStyle    lipgloss.Style
	errorStyle   lipgloss.Style
	nameStyle    lipgloss.Style
	detailStyle  lipgloss.Style
	dimStyle     lipgloss.Style
}

type phaseUpdateMsg struct {
	idx    int
	status string
	detail string
	err    error
}

type phaseCompleteMsg struct {
	summary string
}

func newTTYPublishModel(items []PhaseItem) *ttyPublishModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &ttyPublishModel{
		items:   items,
		spinner: s,
		styles: publishStyles{
			spinnerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
			doneStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			errorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			nameStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
			detailStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			dimStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
}

func (m *ttyPublishModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *ttyPublishModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case phaseUpdateMsg:
		if msg.idx < len(m.items) {
			m.items[msg.idx].Status = msg.status
			m.items[msg.idx].Detail = msg.detail
			m.items[msg.idx].Error = msg.err
		}
		return m, m.spinner.Tick

	case phaseCompleteMsg:
		m.done = true
		m.summary = msg.summary
		return m, tea.Quit
	}

	return m, nil
}

func (m *ttyPublishModel) View() string {
	var b strings.Builder
	b.WriteString("\n")

	for i, item := range m.items {
		var icon string
		var status string

		switch item.Status {
		case "pending", "":
			icon = m.styles.dimStyle.Render("○")
			status = m.styles.dimStyle.Render("pending")
		case "running":
			icon = m.spinner.View()
			status = m.styles.spinnerStyle.Render("running...")
		case "done":
			icon = m.styles.doneStyle.Render("✓")
			status = m.styles.doneStyle.Render("done")
		case "skipped":
			icon = m.styles.dimStyle.Render("▸")
			status = m.styles.dimStyle.Render("skipped")
		case "error":
			icon = m.styles.errorStyle.Render("✗")
			status = m.styles.errorStyle.Render("failed")
		}

		name := m.styles.nameStyle.Render(item.Name)
		line := fmt.Sprintf("  %s %s %s", icon, name, status)

		if item.Status == "done" && item.Detail != "" {
			line += " " + m.styles.detailStyle.Render("→ "+item.Detail)
		}
		if item.Status == "skipped" && item.Detail != "" {
			line += " " + m.styles.dimStyle.Render("("+item.Detail+")")
		}
		if item.Status == "error" && item.Error != nil {
			line += " " + m.styles.errorStyle.Render(item.Error.Error())
		}

		b.WriteString(line)
		if i < len(m.items)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")

	if m.done && m.summary != "" {
		failed := false
		for _, item := range m.items {
			if item.Status == "error" {
				failed = true
			}
		}
		b.WriteString("\n")
		if failed {
			b.WriteString(m.styles.errorStyle.Render(m.summary))
		} else {
			b.WriteString(m.styles.doneStyle.Render(m.summary))
		}
		b.WriteString("\n")
	}

	return b.String()
}
