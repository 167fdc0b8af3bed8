package wizard

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/investorlens/investorlens/internal/form"
	"github.com/investorlens/investorlens/internal/profile"
	"github.com/investorlens/investorlens/internal/tui/theme"
)

// competitorEditor adds names through a text input and removes the
// selected entry of the list above it.
type competitorEditor struct {
	input    textinput.Model
	selected int // -1 when nothing is selected
}

func newCompetitorEditor() *competitorEditor {
	ti := textinput.New()
	ti.Placeholder = placeholders[profile.Competitors]
	ti.Prompt = "+ "
	ti.SetStyles(inputStyles())
	return &competitorEditor{input: ti, selected: -1}
}

func (c *competitorEditor) setWidth(width int) {
	c.input.SetWidth(width - 2)
}

func (c *competitorEditor) focus() tea.Cmd {
	return c.input.Focus()
}

func (c *competitorEditor) blur() {
	c.input.Blur()
	c.selected = -1
}

func (c *competitorEditor) clampSelection(n int) {
	if c.selected >= n {
		c.selected = n - 1
	}
}

func (c *competitorEditor) update(msg tea.Msg, f *form.Form) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		n := len(f.Competitors())
		switch key.String() {
		case "enter":
			if added, _ := f.AddCompetitor(c.input.Value()); added {
				c.input.SetValue("")
			}
			return nil
		case "up":
			if n > 0 {
				if c.selected < 0 {
					c.selected = n - 1
				} else if c.selected > 0 {
					c.selected--
				}
			}
			return nil
		case "down":
			if c.selected >= 0 {
				c.selected++
				if c.selected >= n {
					c.selected = -1
				}
			}
			return nil
		case "ctrl+x", "delete":
			if removed, _ := f.RemoveCompetitor(c.selected); removed {
				c.clampSelection(n - 1)
			}
			return nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *competitorEditor) view(items []string) string {
	s := theme.Current().S()

	var b strings.Builder
	if len(items) == 0 {
		b.WriteString(s.Placeholder.Render("No competitors added"))
		b.WriteString("\n")
	}
	for i, name := range items {
		line := fmt.Sprintf("  %d. %s", i+1, name)
		if i == c.selected {
			b.WriteString(s.LabelFocused.Render("› " + line[2:]))
		} else {
			b.WriteString(s.Value.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(c.input.View())
	return b.String()
}
