package tui

import "github.com/Veraticus/playdash/internal/model"

// Async operation messages.
type predictionResultMsg struct {
	err        error
	prediction model.Prediction
}

// Error handling.
type errorMsg struct {
	err     error
	context string
}
