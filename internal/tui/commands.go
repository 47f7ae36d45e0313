package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/playdash/internal/predict"
	"github.com/Veraticus/playdash/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
)

const predictTimeout = 5 * time.Second

// runPrediction parses the form entries and asks the predictor for a rating.
func (m Model) runPrediction(raw map[string]string) tea.Cmd {
	predictor := m.predictor
	return func() tea.Msg {
		if predictor == nil {
			return errorMsg{context: "predict", err: fmt.Errorf("no prediction model loaded")}
		}

		req, err := predict.ParseRequest(raw)
		if err != nil {
			return predictionResultMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), predictTimeout)
		defer cancel()

		p, err := predictor.Predict(ctx, req)
		return predictionResultMsg{prediction: p, err: err}
	}
}

// announceSelection re-applies the sidebar selection.
func announceSelection(sidebar components.FilterSidebarModel) tea.Cmd {
	sel := sidebar.Selection()
	return func() tea.Msg {
		return components.FilterChangedMsg{Selection: sel}
	}
}
