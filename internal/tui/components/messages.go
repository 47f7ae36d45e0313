package components

import "github.com/Veraticus/playdash/internal/model"

// FilterChangedMsg is sent when the sidebar selection changes.
type FilterChangedMsg struct {
	Selection model.FilterSelection
}

// PredictRequestMsg asks for a prediction from the form's raw entries.
type PredictRequestMsg struct {
	Raw map[string]string
}
