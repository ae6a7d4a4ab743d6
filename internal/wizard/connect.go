package wizard

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/micatools/mica/internal/config"
	"github.com/micatools/mica/internal/dialect"
	"github.com/micatools/mica/internal/introspect"
	"github.com/micatools/mica/internal/inventory"
)

// ConnectResult is returned when the connection step completes.
type ConnectResult struct {
	Config    *config.SourceConfig
	Inventory *inventory.Inventory
}

// field indexes
const (
	fieldHost = iota
	fieldPort
	fieldDatabase
	fieldSchema
	fieldUsername
	fieldPassword
	fieldInventoryPath
	fieldCount
)

var defaultPorts = map[dialect.Dialect]int{
	dialect.PostgreSQL: 5432,
	dialect.Oracle:     1521,
	dialect.SQLServer:  1433,
	dialect.Teradata:   1025,
	dialect.Lakehouse:  443,
	dialect.Snowflake:  443,
}

// ConnectModel is the bubbletea model for the source connection form.
// Dialects without a bundled driver take an inventory YAML path instead of
// credentials.
type ConnectModel struct {
	inputs        []textinput.Model
	focused       int
	dialectChoice int // index into dialect.All
	err           error
	analyzing     bool
	spinner       spinner.Model
	result        *ConnectResult
	done          bool
	statusMsg     string
	width         int
}

type analysisDoneMsg struct {
	cfg *config.SourceConfig
	inv *inventory.Inventory
	err error
}

func NewConnectModel() ConnectModel {
	inputs := make([]textinput.Model, fieldCount)

	inputs[fieldHost] = textinput.New()
	inputs[fieldHost].Placeholder = "localhost"
	inputs[fieldHost].CharLimit = 256
	inputs[fieldHost].Focus()

	inputs[fieldPort] = textinput.New()
	inputs[fieldPort].Placeholder = "5432"
	inputs[fieldPort].CharLimit = 5

	inputs[fieldDatabase] = textinput.New()
	inputs[fieldDatabase].Placeholder = "mydb"
	inputs[fieldDatabase].CharLimit = 128

	inputs[fieldSchema] = textinput.New()
	inputs[fieldSchema].Placeholder = "(all schemas)"
	inputs[fieldSchema].CharLimit = 128

	inputs[fieldUsername] = textinput.New()
	inputs[fieldUsername].Placeholder = "postgres"
	inputs[fieldUsername].CharLimit = 128

	inputs[fieldPassword] = textinput.New()
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '*'
	inputs[fieldPassword].CharLimit = 256

	inputs[fieldInventoryPath] = textinput.New()
	inputs[fieldInventoryPath].Placeholder = "inventory.yaml"
	inputs[fieldInventoryPath].CharLimit = 512

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ConnectModel{
		inputs:  inputs,
		focused: fieldHost,
		spinner: s,
		width:   80,
	}
}

func (m ConnectModel) dialect() dialect.Dialect {
	return dialect.All[m.dialectChoice]
}

func (m ConnectModel) driverless() bool {
	switch m.dialect() {
	case dialect.Teradata, dialect.Lakehouse, dialect.Snowflake:
		return true
	}
	return false
}

// lastField is the field whose Enter submits the form.
func (m ConnectModel) lastField() int {
	if m.driverless() {
		return fieldInventoryPath
	}
	return fieldPassword
}

func (m ConnectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ConnectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.analyzing {
			return m, nil // ignore input during analysis
		}

		switch msg.String() {
		case "ctrl+c", "esc":
			m.done = true
			m.err = fmt.Errorf("cancelled")
			return m, tea.Quit

		case "tab", "down":
			m.focused = (m.focused + 1) % (m.lastField() + 1)
			return m, m.updateFocus()

		case "shift+tab", "up":
			m.focused--
			if m.focused < fieldHost {
				m.focused = m.lastField()
			}
			return m, m.updateFocus()

		case "ctrl+t":
			m.dialectChoice = (m.dialectChoice + 1) % len(dialect.All)
			if m.focused > m.lastField() {
				m.focused = m.lastField()
			}
			return m, m.updateFocus()

		case "enter":
			if m.focused == m.lastField() {
				return m, m.startAnalysis()
			}
			m.focused = (m.focused + 1) % (m.lastField() + 1)
			return m, m.updateFocus()
		}

	case analysisDoneMsg:
		m.analyzing = false
		if msg.err != nil {
			m.err = msg.err
			m.statusMsg = fmt.Sprintf("Analysis failed: %v", msg.err)
			return m, nil
		}
		m.result = &ConnectResult{Config: msg.cfg, Inventory: msg.inv}
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		if m.analyzing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if !m.analyzing && m.focused >= 0 && m.focused < fieldCount {
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m ConnectModel) View() string {
	var b strings.Builder

	title := titleStyle.Render("Step 1: Source Database")
	b.WriteString(title + "\n\n")

	b.WriteString(fmt.Sprintf("  Dialect: %s  (ctrl+t to cycle)\n\n",
		highlightStyle.Render(m.dialect().Display())))

	labels := []string{"Host", "Port", "Database", "Schema", "Username", "Password", "Inventory"}
	for i := fieldHost; i <= m.lastField(); i++ {
		if m.driverless() && i >= fieldUsername && i <= fieldPassword {
			continue
		}
		label := fmt.Sprintf("  %-10s ", labels[i])
		cursor := "  "
		if i == m.focused {
			cursor = highlightStyle.Render("> ")
		}
		b.WriteString(cursor + dimStyle.Render(label) + m.inputs[i].View() + "\n")
	}

	b.WriteString("\n")

	if m.analyzing {
		b.WriteString(fmt.Sprintf("  %s Connecting and counting objects...\n", m.spinner.View()))
	} else if m.err != nil {
		b.WriteString(errStyle.Render("  "+m.statusMsg) + "\n")
		b.WriteString(dimStyle.Render("  Fix the issue and press Enter to retry\n"))
	} else if m.driverless() {
		b.WriteString(dimStyle.Render("  No bundled driver for this dialect; provide an inventory YAML path • esc to cancel\n"))
	} else {
		b.WriteString(dimStyle.Render("  Press Enter on Password to analyze • tab/shift-tab to navigate • esc to cancel\n"))
	}

	return b.String()
}

// Result returns the analysis result, or nil if not completed.
func (m ConnectModel) Result() *ConnectResult {
	return m.result
}

// Cancelled returns true if the user cancelled.
func (m ConnectModel) Cancelled() bool {
	return m.done && m.result == nil
}

func (m *ConnectModel) updateFocus() tea.Cmd {
	cmds := make([]tea.Cmd, fieldCount)
	for i := fieldHost; i < fieldCount; i++ {
		if i == m.focused {
			cmds[i] = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return tea.Batch(cmds...)
}

func (m *ConnectModel) startAnalysis() tea.Cmd {
	m.analyzing = true
	m.err = nil
	m.statusMsg = ""

	cfg := m.buildConfig()
	invPath := m.inputs[fieldInventoryPath].Value()
	driverless := m.driverless()

	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			if driverless {
				inv, err := inventory.LoadYAML(config.ExpandHome(invPath))
				if err != nil {
					return analysisDoneMsg{err: err}
				}
				if inv.Dialect != cfg.Dialect {
					return analysisDoneMsg{err: fmt.Errorf("inventory dialect %s does not match selected dialect %s", inv.Dialect, cfg.Dialect)}
				}
				return analysisDoneMsg{cfg: cfg, inv: inv}
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			in, err := introspect.New(cfg)
			if err != nil {
				return analysisDoneMsg{err: err}
			}
			defer in.Close()

			if err := in.Connect(ctx); err != nil {
				return analysisDoneMsg{err: err}
			}

			raw, err := in.Introspect(ctx)
			if err != nil {
				return analysisDoneMsg{err: err}
			}

			agg, schemas, err := inventory.Normalize(cfg.Dialect, raw, cfg.Schema)
			if err != nil {
				return analysisDoneMsg{err: err}
			}

			inv := &inventory.Inventory{
				Dialect:     cfg.Dialect,
				Database:    cfg.Database,
				Schema:      cfg.Schema,
				GeneratedAt: time.Now().UTC(),
				Aggregate:   agg,
				Schemas:     schemas,
			}
			return analysisDoneMsg{cfg: cfg, inv: inv}
		},
	)
}

func (m *ConnectModel) buildConfig() *config.SourceConfig {
	d := m.dialect()

	host := m.inputs[fieldHost].Value()
	if host == "" {
		host = "localhost"
	}

	port := defaultPorts[d]
	if portStr := m.inputs[fieldPort].Value(); portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			port = p
		}
	}

	return &config.SourceConfig{
		Dialect:  d,
		Host:     host,
		Port:     port,
		Database: m.inputs[fieldDatabase].Value(),
		Schema:   m.inputs[fieldSchema].Value(),
		Username: m.inputs[fieldUsername].Value(),
		Password: m.inputs[fieldPassword].Value(),
	}
}

// styles
var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).BorderStyle(lipgloss.DoubleBorder()).BorderBottom(true).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)
