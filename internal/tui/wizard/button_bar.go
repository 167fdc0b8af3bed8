package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/investorlens/investorlens/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// ButtonAction identifies what a button does when activated.
type ButtonAction int

const (
	ActionCancel ButtonAction = iota
	ActionBack
	ActionNext
	ActionSubmit
)

// Button represents a single button in the button bar.
type Button struct {
	Label  string
	Action ButtonAction
	State  ButtonState
}

// ButtonBar manages a set of buttons with consistent styling.
type ButtonBar struct {
	buttons []Button
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		width:   60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// Len returns the number of buttons.
func (b *ButtonBar) Len() int {
	return len(b.buttons)
}

// Focus highlights the button at index i and clears focus from the others.
// A negative index clears focus everywhere. Disabled buttons stay disabled.
func (b *ButtonBar) Focus(i int) {
	for j := range b.buttons {
		if b.buttons[j].State == ButtonDisabled {
			continue
		}
		if j == i {
			b.buttons[j].State = ButtonFocused
		} else {
			b.buttons[j].State = ButtonNormal
		}
	}
}

// At returns the button at index i.
func (b *ButtonBar) At(i int) (Button, bool) {
	if i < 0 || i >= len(b.buttons) {
		return Button{}, false
	}
	return b.buttons[i], true
}

// Render renders the button bar with proper spacing and styling.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}
	s := theme.Current().S()

	rendered := make([]string, 0, len(b.buttons))
	for _, btn := range b.buttons {
		switch btn.State {
		case ButtonDisabled:
			rendered = append(rendered, s.ButtonDisabled.Render(btn.Label))
		case ButtonFocused:
			rendered = append(rendered, s.ButtonFocused.Render(btn.Label))
		default:
			rendered = append(rendered, s.ButtonNormal.Render(btn.Label))
		}
	}

	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, strings.Join(rendered, ""))
}

// navButtons builds the buttons for a section: Cancel or Back, then Next or
// Submit. Everything is disabled while a submission is in flight.
func navButtons(first, last, submitting bool) []Button {
	buttons := make([]Button, 0, 2)

	if first {
		buttons = append(buttons, Button{Label: "Cancel", Action: ActionCancel})
	} else {
		buttons = append(buttons, Button{Label: "← Back", Action: ActionBack})
	}

	if last {
		label := "Analyze"
		if submitting {
			label = "Analyzing..."
		}
		buttons = append(buttons, Button{Label: label, Action: ActionSubmit})
	} else {
		buttons = append(buttons, Button{Label: "Next →", Action: ActionNext})
	}

	if submitting {
		for i := range buttons {
			buttons[i].State = ButtonDisabled
		}
	}
	return buttons
}
