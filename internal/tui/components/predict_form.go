package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/playdash/internal/common"
	"github.com/Veraticus/playdash/internal/model"
	"github.com/Veraticus/playdash/internal/predict"
	"github.com/Veraticus/playdash/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FormKeyMap defines the prediction form bindings.
type FormKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Submit key.Binding
}

// DefaultFormKeyMap returns the standard form bindings.
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous field")),
		Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next field")),
		Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous option")),
		Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next option")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "predict")),
	}
}

// Form field labels keyed by input.
var inputLabels = map[string]string{
	predict.InputCategory:      "Category",
	predict.InputType:          "Type",
	predict.InputContentRating: "Content Rating",
	predict.InputGenre:         "Primary Genre",
	predict.InputReviews:       "Reviews",
	predict.InputSizeKB:        "Size (KB)",
	predict.InputInstalls:      "Installs",
	predict.InputPrice:         "Price (USD)",
	predict.InputAge:           "App Age (years)",
}

type formField struct {
	key      string
	options  []string
	input    textinput.Model
	selected int
	numeric  bool
}

// PredictFormModel collects the nine prediction inputs and shows the last result.
type PredictFormModel struct {
	err       error
	result    *model.Prediction
	theme     themes.Theme
	keys      FormKeyMap
	modelName string
	fields    []formField
	focus     int
	width     int
}

// NewPredictFormModel creates a form whose selectors offer the given vocabulary.
// Numeric inputs start at zero.
func NewPredictFormModel(options map[model.Field][]string, modelName string, theme themes.Theme) PredictFormModel {
	m := PredictFormModel{
		theme:     theme,
		keys:      DefaultFormKeyMap(),
		modelName: modelName,
		width:     60,
	}

	for _, c := range predict.CategoricalInputs {
		m.fields = append(m.fields, formField{key: c.Key, options: options[c.Field]})
	}
	for _, k := range predict.NumericInputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 24
		ti.Width = 20
		ti.SetValue("0")
		ti.Validate = numericText
		m.fields = append(m.fields, formField{key: k, input: ti, numeric: true})
	}
	return m
}

// numericText rejects characters that can never form a number.
func numericText(s string) error {
	for _, r := range s {
		if !strings.ContainsRune("0123456789.,eE+-", r) {
			return fmt.Errorf("%q is not numeric", r)
		}
	}
	return nil
}

// Focused returns the input key that has focus.
func (m PredictFormModel) Focused() string {
	return m.fields[m.focus].key
}

// Raw returns the form contents keyed by input.
func (m PredictFormModel) Raw() map[string]string {
	out := make(map[string]string, len(m.fields))
	for _, f := range m.fields {
		if f.numeric {
			out[f.key] = f.input.Value()
			continue
		}
		if len(f.options) > 0 {
			out[f.key] = f.options[f.selected]
		}
	}
	return out
}

// Set fills an input. Categorical values must be one of the options.
func (m *PredictFormModel) Set(inputKey, value string) bool {
	for i := range m.fields {
		f := &m.fields[i]
		if f.key != inputKey {
			continue
		}
		if f.numeric {
			f.input.SetValue(value)
			return true
		}
		for j, opt := range f.options {
			if opt == value {
				f.selected = j
				return true
			}
		}
		return false
	}
	return false
}

// SetResult records the outcome of the last prediction request.
func (m *PredictFormModel) SetResult(p model.Prediction, err error) {
	if err != nil {
		m.result = nil
		m.err = err
		return
	}
	m.result = &p
	m.err = nil
}

// Result returns the last successful prediction, if any.
func (m PredictFormModel) Result() (model.Prediction, bool) {
	if m.result == nil {
		return model.Prediction{}, false
	}
	return *m.result, true
}

// Err returns the last prediction error.
func (m PredictFormModel) Err() error {
	return m.err
}

// Resize sets the form width.
func (m *PredictFormModel) Resize(width int) {
	m.width = width
}

// ShortHelp returns the form bindings for the help bar.
func (m PredictFormModel) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Submit}
}

// Update handles key presses while the form is active.
func (m PredictFormModel) Update(msg tea.Msg) (PredictFormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Submit):
		raw := m.Raw()
		return m, func() tea.Msg { return PredictRequestMsg{Raw: raw} }
	case key.Matches(keyMsg, m.keys.Up):
		return m, m.moveFocus(-1)
	case key.Matches(keyMsg, m.keys.Down):
		return m, m.moveFocus(1)
	}

	f := &m.fields[m.focus]
	if !f.numeric {
		switch {
		case key.Matches(keyMsg, m.keys.Left):
			f.cycle(-1)
		case key.Matches(keyMsg, m.keys.Right):
			f.cycle(1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return m, cmd
}

func (f *formField) cycle(delta int) {
	n := len(f.options)
	if n == 0 {
		return
	}
	f.selected = ((f.selected+delta)%n + n) % n
}

func (m *PredictFormModel) moveFocus(delta int) tea.Cmd {
	if m.fields[m.focus].numeric {
		m.fields[m.focus].input.Blur()
	}
	m.focus = ((m.focus+delta)%len(m.fields) + len(m.fields)) % len(m.fields)
	if m.fields[m.focus].numeric {
		return m.fields[m.focus].input.Focus()
	}
	return nil
}

// View renders the form and the result line.
func (m PredictFormModel) View() string {
	labelWidth := 0
	for _, l := range inputLabels {
		labelWidth = max(labelWidth, len(l))
	}

	lines := []string{
		m.theme.Title.Render("🤖 Predict App Rating"),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("model: " + m.modelName),
	}

	for i, f := range m.fields {
		label := fmt.Sprintf("%-*s", labelWidth, inputLabels[f.key])
		if i == m.focus {
			label = m.theme.StatusInfo.Render("▸ " + label)
		} else {
			label = "  " + m.theme.Subtitle.UnsetMarginBottom().Render(label)
		}

		var value string
		switch {
		case f.numeric:
			value = "[" + f.input.View() + "]"
		case len(f.options) == 0:
			value = m.theme.StatusPending.Render("(no values)")
		default:
			style := m.theme.Normal
			if i == m.focus {
				style = m.theme.Selected
			}
			value = style.Render("‹ "+truncate(f.options[f.selected], m.width-labelWidth-12)+" ›") +
				lipgloss.NewStyle().Foreground(m.theme.Muted).Render(fmt.Sprintf(" %d/%d", f.selected+1, len(f.options)))
		}
		lines = append(lines, label+"  "+value)
	}

	lines = append(lines, "", m.resultLine())
	return strings.Join(lines, "\n")
}

func (m PredictFormModel) resultLine() string {
	switch {
	case m.err != nil:
		prefix := "✗ "
		if !common.IsRecoverable(m.err) {
			prefix = "✗ prediction failed: "
		}
		return m.theme.StatusError.Render(prefix + common.Describe(m.err))
	case m.result != nil:
		return m.theme.StatusSuccess.Render("⭐ Predicted App Rating: " + m.result.Label())
	default:
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press enter to predict")
	}
}
