package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	HeaderTitle lipgloss.Style

	ModalContainer lipgloss.Style
	ModalTitle     lipgloss.Style

	Label        lipgloss.Style
	LabelFocused lipgloss.Style
	Value        lipgloss.Style
	Placeholder  lipgloss.Style
	FieldError   lipgloss.Style

	Banner  lipgloss.Style
	Success lipgloss.Style

	ProgressDone lipgloss.Style
	ProgressTodo lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style
}
