package wizard

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/micatools/mica/internal/dialect"
	"github.com/micatools/mica/internal/effort"
	"github.com/micatools/mica/internal/inventory"
)

func reviewResult() *effort.Result {
	return &effort.Result{
		Dialect:    dialect.Oracle,
		Connection: effort.ConnectionSummary{Host: "db01", Port: 1521, Database: "ORCL"},
		Aggregate:  inventory.Counts{Tables: 100, Views: 20, Procedures: 10, Functions: 5},
		Efforts: []effort.ObjectTypeEffort{
			{Type: inventory.Tables, Count: 100, HoursPerObject: 2, TotalHours: 200},
			{Type: inventory.Views, Count: 20, HoursPerObject: 1, TotalHours: 20},
			{Type: inventory.Procedures, Count: 10, HoursPerObject: 5, TotalHours: 50},
			{Type: inventory.Functions, Count: 5, HoursPerObject: 3, TotalHours: 15},
		},
		TotalHours:  285,
		Complexity:  effort.TierMedium,
		Risks:       []string{"PL/SQL conversion effort."},
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewReviewModel(t *testing.T) {
	m := NewReviewModel(reviewResult())

	if m.Done() {
		t.Error("should not be done initially")
	}
	if m.Confirmed() {
		t.Error("should not be confirmed initially")
	}
}

func TestReviewModel_Confirm(t *testing.T) {
	m := NewReviewModel(reviewResult())
	result, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm := result.(ReviewModel)
	if !rm.Done() {
		t.Error("enter should finish")
	}
	if !rm.Confirmed() {
		t.Error("enter should confirm")
	}
	if rm.Cancelled() {
		t.Error("enter should not cancel")
	}
}

func TestReviewModel_Cancel(t *testing.T) {
	m := NewReviewModel(reviewResult())
	result, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	rm := result.(ReviewModel)
	if !rm.Cancelled() {
		t.Error("q should cancel")
	}
	if rm.Confirmed() {
		t.Error("q should not confirm")
	}
}

func TestReviewModel_RiskToggle(t *testing.T) {
	m := NewReviewModel(reviewResult())

	if m.showRisks {
		t.Error("risks should be hidden initially")
	}

	result, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	rm := result.(ReviewModel)
	if !rm.showRisks {
		t.Error("r should show risks")
	}
	if !strings.Contains(rm.View(), "PL/SQL conversion effort.") {
		t.Error("risk text should appear when toggled on")
	}
}

func TestReviewModel_View(t *testing.T) {
	m := NewReviewModel(reviewResult())
	view := m.View()

	if !strings.Contains(view, "Oracle") {
		t.Error("view should show the source dialect")
	}
	if !strings.Contains(view, "285 hours") {
		t.Error("view should show total hours")
	}
	if !strings.Contains(view, "MEDIUM") {
		t.Error("view should show the complexity tier")
	}
	if !strings.Contains(view, "100 tables") {
		t.Error("view should summarize the aggregate counts")
	}
}

func TestSummarizeCounts(t *testing.T) {
	got := summarizeCounts(inventory.Counts{Tables: 3, Views: 1})
	want := "3 tables, 1 views, 0 procedures, 0 functions"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
