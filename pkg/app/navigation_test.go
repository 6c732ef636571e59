package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pacsea/pacsea/pkg/model"
)

func newServicesModal() *PreflightModal {
	return &PreflightModal{
		ActiveTab: TabServices,
		Services: stageState[model.ServiceImpact]{
			Loaded: true,
			Items: []model.ServiceImpact{
				{UnitName: "nginx.service", RecommendedDecision: model.DecisionRestart},
				{UnitName: "postgresql.service", RecommendedDecision: model.DecisionDefer},
			},
		},
		RestartDecisions: map[string]model.ServiceDecision{
			"nginx.service":      model.DecisionRestart,
			"postgresql.service": model.DecisionDefer,
		},
	}
}

func TestHandlePreflightKey_MovesServicesCursor(t *testing.T) {
	m := newTestModel(t)
	m.state.Modal = newServicesModal()

	m.handlePreflightKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if m.state.Modal.ServicesCursor != 1 {
		t.Fatalf("ServicesCursor = %d, want 1 after moving down", m.state.Modal.ServicesCursor)
	}

	m.handlePreflightKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if m.state.Modal.ServicesCursor != 1 {
		t.Fatalf("ServicesCursor = %d, want 1 (clamped at the last row)", m.state.Modal.ServicesCursor)
	}

	m.handlePreflightKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	if m.state.Modal.ServicesCursor != 0 {
		t.Fatalf("ServicesCursor = %d, want 0 after moving up", m.state.Modal.ServicesCursor)
	}
}

func TestToggleServiceDecision_FlipsUnitUnderCursor(t *testing.T) {
	m := newTestModel(t)
	m.state.Modal = newServicesModal()
	m.state.Modal.ServicesCursor = 0

	m.toggleServiceDecision()

	if m.state.Modal.RestartDecisions["nginx.service"] != model.DecisionDefer {
		t.Fatalf("expected nginx.service to toggle to DecisionDefer, got %v", m.state.Modal.RestartDecisions["nginx.service"])
	}
	if m.state.Modal.RestartDecisions["postgresql.service"] != model.DecisionDefer {
		t.Fatal("postgresql.service should be untouched by a toggle on a different row")
	}

	m.toggleServiceDecision()
	if m.state.Modal.RestartDecisions["nginx.service"] != model.DecisionRestart {
		t.Fatalf("expected a second toggle to flip back to DecisionRestart, got %v", m.state.Modal.RestartDecisions["nginx.service"])
	}
}

func TestToggleServiceDecision_NoOpWhenCursorOutOfRange(t *testing.T) {
	m := newTestModel(t)
	m.state.Modal = newServicesModal()
	m.state.Modal.ServicesCursor = 5

	m.toggleServiceDecision()

	if m.state.Modal.RestartDecisions["nginx.service"] != model.DecisionRestart {
		t.Fatal("an out-of-range cursor must not mutate any decision")
	}
}
