package wizard

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/investorlens/investorlens/internal/form"
	"github.com/investorlens/investorlens/internal/profile"
	"github.com/investorlens/investorlens/internal/tui/theme"
	"github.com/investorlens/investorlens/internal/validation"
)

var placeholders = map[profile.Key]string{
	profile.StartupName:             "e.g., InvestorLens AI",
	profile.ProblemStatement:        "What problem are you solving? (min 150 chars)",
	profile.SolutionDescription:     "How does your product solve it? (min 150 chars)",
	profile.UniqueValueProposition:  "Why you and not the alternatives?",
	profile.TargetCustomerSegment:   "e.g., Angel investors in Europe",
	profile.EstimatedMarketSize:     "USD, greater than 0",
	profile.GeographicFocus:         "e.g., Global, EU, India",
	profile.Competitors:             "Type a name and press enter",
	profile.MarketGrowthRate:        "Percent per year",
	profile.RevenueModel:            "e.g., Subscription",
	profile.PricingStrategy:         "e.g., Tiered, usage based",
	profile.EstimatedMonthlyRevenue: "USD per month",
	profile.EstimatedBurnRate:       "USD per month",
	profile.FundingStage:            "e.g., Pre-seed, Seed, Series A",
	profile.RunwayDurationMonths:    "Whole months",
	profile.NumberOfFounders:        "At least 1",
	profile.FoundersBackground:      "Relevant experience of the founders",
	profile.YearsOfExperience:       "Combined years",
	profile.TeamRatio:               "e.g., 60/40",
}

// fieldEditor edits one field of the active section. The widget depends on
// the field kind.
type fieldEditor struct {
	key     profile.Key
	kind    profile.Kind
	input   textinput.Model // text, number and integer fields
	area    textarea.Model  // long text fields
	checked bool            // boolean field
	list    *competitorEditor
	focused bool
}

func newFieldEditor(key profile.Key, f *form.Form, width int) *fieldEditor {
	e := &fieldEditor{key: key, kind: key.Kind()}

	switch e.kind {
	case profile.KindLongText:
		ta := textarea.New()
		ta.Placeholder = placeholders[key]
		ta.ShowLineNumbers = false
		ta.Prompt = ""
		ta.SetHeight(4)
		ta.SetStyles(areaStyles())
		e.area = ta
	case profile.KindBool:
	case profile.KindTextList:
		e.list = newCompetitorEditor()
	default:
		ti := textinput.New()
		ti.Placeholder = placeholders[key]
		ti.Prompt = "› "
		ti.SetStyles(inputStyles())
		e.input = ti
	}
	e.setWidth(width)
	e.load(f)
	return e
}

// load copies the field value from the form into the widget.
func (e *fieldEditor) load(f *form.Form) {
	switch e.kind {
	case profile.KindLongText:
		e.area.SetValue(f.Text(e.key))
	case profile.KindBool:
		e.checked = validation.Truthy(f.Value(e.key))
	case profile.KindTextList:
		e.list.clampSelection(len(f.Competitors()))
	default:
		e.input.SetValue(f.Text(e.key))
	}
}

func (e *fieldEditor) setWidth(width int) {
	switch e.kind {
	case profile.KindLongText:
		e.area.SetWidth(width)
	case profile.KindBool:
	case profile.KindTextList:
		e.list.setWidth(width)
	default:
		e.input.SetWidth(width - 2)
	}
}

func (e *fieldEditor) focus() tea.Cmd {
	e.focused = true
	switch e.kind {
	case profile.KindLongText:
		return e.area.Focus()
	case profile.KindBool:
		return nil
	case profile.KindTextList:
		return e.list.focus()
	default:
		return e.input.Focus()
	}
}

func (e *fieldEditor) blur() {
	e.focused = false
	switch e.kind {
	case profile.KindLongText:
		e.area.Blur()
	case profile.KindBool:
	case profile.KindTextList:
		e.list.blur()
	default:
		e.input.Blur()
	}
}

// multiline reports whether enter belongs to the widget rather than the
// wizard.
func (e *fieldEditor) multiline() bool {
	return e.kind == profile.KindLongText || e.kind == profile.KindTextList
}

// update forwards msg to the widget and writes any change back to the form.
func (e *fieldEditor) update(msg tea.Msg, f *form.Form) tea.Cmd {
	switch e.kind {
	case profile.KindLongText:
		before := e.area.Value()
		var cmd tea.Cmd
		e.area, cmd = e.area.Update(msg)
		if e.area.Value() != before {
			_ = f.SetField(e.key, e.area.Value())
		}
		return cmd

	case profile.KindBool:
		if key, ok := msg.(tea.KeyPressMsg); ok {
			switch key.String() {
			case "space", " ", "left", "right", "h", "l", "y", "n":
				next := !e.checked
				switch key.String() {
				case "y":
					next = true
				case "n":
					next = false
				}
				if next != e.checked {
					e.checked = next
					_ = f.SetField(e.key, e.checked)
				}
			}
		}
		return nil

	case profile.KindTextList:
		return e.list.update(msg, f)

	default:
		before := e.input.Value()
		var cmd tea.Cmd
		e.input, cmd = e.input.Update(msg)
		if e.input.Value() != before {
			_ = f.SetField(e.key, e.input.Value())
		}
		return cmd
	}
}

func (e *fieldEditor) view(f *form.Form) string {
	s := theme.Current().S()

	label := s.Label
	if e.focused {
		label = s.LabelFocused
	}
	title := e.key.Label()
	if e.kind == profile.KindLongText {
		title += " " + s.Placeholder.Render("(min "+strconv.Itoa(validation.MinLongTextLength)+" chars, "+strconv.Itoa(len([]rune(e.area.Value())))+" typed)")
	}

	var b strings.Builder
	b.WriteString(label.Render(title))
	b.WriteString("\n")

	switch e.kind {
	case profile.KindLongText:
		b.WriteString(e.area.View())
	case profile.KindBool:
		yes, no := "( ) Yes", "(•) No"
		if e.checked {
			yes, no = "(•) Yes", "( ) No"
		}
		b.WriteString(s.Value.Render(yes + "   " + no))
	case profile.KindTextList:
		b.WriteString(e.list.view(f.Competitors()))
	default:
		b.WriteString(e.input.View())
	}

	if msg := f.Error(e.key); msg != "" {
		b.WriteString("\n")
		b.WriteString(s.FieldError.Render("✗ " + msg))
	}
	return b.String()
}
