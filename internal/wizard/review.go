package wizard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/micatools/mica/internal/effort"
	"github.com/micatools/mica/internal/inventory"
)

// ReviewModel is the bubbletea model for Step 2: Review Estimate.
type ReviewModel struct {
	result    *effort.Result
	showRisks bool
	confirmed bool
	done      bool
	cancelled bool
	width     int
	height    int
}

// NewReviewModel creates a review model for an estimation result.
func NewReviewModel(result *effort.Result) ReviewModel {
	return ReviewModel{
		result: result,
		width:  100,
		height: 24,
	}
}

func (m ReviewModel) Init() tea.Cmd {
	return nil
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.done = true
			m.confirmed = true
			return m, tea.Quit
		case "q", "esc":
			m.done = true
			m.cancelled = true
			return m, tea.Quit
		case "r":
			m.showRisks = !m.showRisks
			return m, nil
		}
	}

	return m, nil
}

func (m ReviewModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Step 2: Review Estimate"))
	b.WriteString("\n\n")

	b.WriteString(highlightStyle.Render("  Estimate Summary"))
	b.WriteString("\n\n")

	if m.result != nil {
		r := m.result
		b.WriteString(fmt.Sprintf("  Source:      %s", r.Dialect.Display()))
		if r.Connection.Database != "" {
			b.WriteString(fmt.Sprintf(" (%s)", r.Connection.Database))
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  Objects:     %s\n", summarizeCounts(r.Aggregate)))

		for _, oe := range r.Efforts {
			if oe.Count == 0 {
				continue
			}
			b.WriteString(fmt.Sprintf("  %-12s %d × %gh = %gh\n",
				string(oe.Type)+":", oe.Count, oe.HoursPerObject, oe.TotalHours))
		}

		b.WriteString(fmt.Sprintf("\n  Total:       %g hours\n", r.TotalHours))
		b.WriteString(fmt.Sprintf("  Complexity:  %s\n", string(r.Complexity)))

		if len(r.Schemas) > 0 {
			b.WriteString(fmt.Sprintf("  Schemas:     %d analyzed\n", len(r.Schemas)))
		}
	}

	b.WriteString("\n")
	if m.showRisks {
		b.WriteString(highlightStyle.Render("  Risks:"))
		b.WriteString("\n")
		for _, risk := range m.result.Risks {
			b.WriteString(fmt.Sprintf("  - %s\n", risk))
		}
	} else {
		b.WriteString(dimStyle.Render("  Press r to view identified risks"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  r: toggle risks  enter: GENERATE DOCUMENT  q: go back"))

	return b.String()
}

// Done returns true when the model is finished.
func (m ReviewModel) Done() bool {
	return m.done
}

// Cancelled returns true if the user cancelled.
func (m ReviewModel) Cancelled() bool {
	return m.cancelled
}

// Confirmed returns true if the user confirmed document generation.
func (m ReviewModel) Confirmed() bool {
	return m.confirmed
}

// summarizeCounts renders the aggregate counts on one line.
func summarizeCounts(c inventory.Counts) string {
	parts := make([]string, 0, len(inventory.ObjectTypes))
	for _, t := range inventory.ObjectTypes {
		parts = append(parts, fmt.Sprintf("%d %s", c.Get(t), t))
	}
	return strings.Join(parts, ", ")
}
