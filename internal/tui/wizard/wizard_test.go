package wizard

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/investorlens/investorlens/internal/analysis"
	"github.com/investorlens/investorlens/internal/form"
	"github.com/investorlens/investorlens/internal/profile"
	"github.com/investorlens/investorlens/internal/validation"
	"github.com/stretchr/testify/require"
)

type stubAnalyzer struct {
	calls int
	ctx   context.Context
	res   *analysis.Result
	err   error
}

func (s *stubAnalyzer) Analyze(ctx context.Context, _ profile.Values) (*analysis.Result, error) {
	s.calls++
	s.ctx = ctx
	return s.res, s.err
}

func validValues() profile.Values {
	v := profile.Defaults()
	v.StartupName = "InvestorLens AI"
	v.ProblemStatement = strings.Repeat("p", 150)
	v.SolutionDescription = strings.Repeat("s", 150)
	v.UniqueValueProposition = "Explainable scores"
	v.TargetCustomerSegment = "Angels"
	v.EstimatedMarketSize = 5000000
	v.GeographicFocus = "EU"
	v.RevenueModel = "SaaS"
	v.PricingStrategy = "Tiered"
	v.EstimatedMonthlyRevenue = 4000
	v.EstimatedBurnRate = 3000
	v.FundingStage = "Seed"
	v.RunwayDurationMonths = 12
	v.NumberOfFounders = 2
	v.FoundersBackground = "Engineers"
	v.YearsOfExperience = 8
	v.TeamRatio = "70/30"
	return v
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "shift+tab":
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "ctrl+s":
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	case "ctrl+x":
		return tea.KeyPressMsg{Code: 'x', Mod: tea.ModCtrl}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	}
	panic("unknown key " + s)
}

func send(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

// runCmd executes cmd and any batched commands, collecting their messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func isQuit(cmd tea.Cmd) bool {
	for _, msg := range runCmd(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func filledModel(t *testing.T, a form.Analyzer) *Model {
	t.Helper()
	f := form.NewWith(validation.Default(), profile.FromValues(validValues()))
	m := New(Options{Analyzer: a, Form: f})
	m.Init()
	for i := 0; i < profile.SectionCount-1; i++ {
		send(m, key("ctrl+s"))
	}
	require.True(t, m.Form().IsLast(), "errors: %v", m.Form().Errors())
	return m
}

func TestNew_ShowsFirstSection(t *testing.T) {
	t.Parallel()

	m := New(Options{})
	m.Init()

	require.Len(t, m.editors, 5)
	require.Equal(t, profile.StartupName, m.focusedEditor().key)
	out := m.render()
	require.Contains(t, out, "Step 1 of 4: Business")
	require.Contains(t, out, "Startup name")
	require.Contains(t, out, "Cancel")
}

func TestTyping_UpdatesForm(t *testing.T) {
	t.Parallel()

	m := New(Options{})
	m.Init()
	send(m, tea.PasteMsg{Content: "Lens"})
	require.Equal(t, "Lens", m.Form().Value(profile.StartupName))

	send(m, key("tab"), tea.PasteMsg{Content: "A real problem"})
	require.Equal(t, "A real problem", m.Form().Value(profile.ProblemStatement))
}

func TestNext_InvalidSectionShowsErrors(t *testing.T) {
	t.Parallel()

	m := New(Options{})
	m.Init()
	send(m, tea.PasteMsg{Content: "Lens"}, key("ctrl+s"))

	require.Equal(t, 0, m.Form().Step())
	require.Equal(t, profile.ProblemStatement, m.focusedEditor().key, "focus jumps to the first invalid field")
	require.Contains(t, m.render(), "Problem statement must be at least 150 characters")
}

func TestNavigation_ButtonsAndEsc(t *testing.T) {
	t.Parallel()

	f := form.NewWith(validation.Default(), profile.FromValues(validValues()))
	m := New(Options{Form: f})
	m.Init()

	// Shift+tab from the first field wraps to the last button: Next.
	send(m, key("shift+tab"))
	btn, ok := m.buttons.At(m.focus - len(m.editors))
	require.True(t, ok)
	require.Equal(t, ActionNext, btn.Action)
	require.Equal(t, ButtonFocused, btn.State)

	send(m, key("enter"))
	require.Equal(t, 1, m.Form().Step())
	require.Equal(t, "Market", m.Form().Section().Name)

	send(m, key("esc"))
	require.Equal(t, 0, m.Form().Step())

	cmd := send(m, key("esc"))
	require.True(t, m.Cancelled())
	require.True(t, isQuit(cmd))
}

func TestCompetitorEditor(t *testing.T) {
	t.Parallel()

	f := form.NewWith(validation.Default(), profile.FromValues(validValues()))
	m := New(Options{Form: f})
	m.Init()
	send(m, key("ctrl+s"))
	require.Equal(t, "Market", m.Form().Section().Name)

	// Market: market size, geographic focus, competitors, growth rate.
	send(m, key("tab"), key("tab"))
	require.Equal(t, profile.Competitors, m.focusedEditor().key)

	send(m, tea.PasteMsg{Content: "  Acme "}, key("enter"))
	send(m, tea.PasteMsg{Content: "Globex"}, key("enter"))
	send(m, key("enter")) // blank input is ignored
	require.Equal(t, []string{"Acme", "Globex"}, m.Form().Competitors())
	require.Equal(t, profile.Competitors, m.focusedEditor().key, "enter stays on the list")
	require.Contains(t, m.render(), "2. Globex")

	send(m, key("up"), key("up"), key("ctrl+x"))
	require.Equal(t, []string{"Globex"}, m.Form().Competitors())
}

func TestBoolToggle(t *testing.T) {
	t.Parallel()

	m := filledModel(t, &stubAnalyzer{})
	for m.focusedEditor().key != profile.PreviousStartupExperience {
		send(m, key("tab"))
	}
	send(m, key("space"))
	require.Equal(t, true, m.Form().Value(profile.PreviousStartupExperience))
	require.Contains(t, m.render(), "(•) Yes")

	send(m, key("space"))
	require.Equal(t, false, m.Form().Value(profile.PreviousStartupExperience))
}

func TestSubmit_Success(t *testing.T) {
	t.Parallel()

	a := &stubAnalyzer{res: &analysis.Result{Payload: []byte(`{"score": 8}`)}}
	m := filledModel(t, a)

	cmd := send(m, key("ctrl+s"))
	require.True(t, m.Form().Submitting())
	require.Contains(t, m.render(), "Analyzing startup...")

	// Edits are rejected while the request is in flight.
	send(m, tea.PasteMsg{Content: "ignored"})
	require.Equal(t, "70/30", m.Form().Value(profile.TeamRatio))

	var done *SubmissionDoneMsg
	for _, msg := range runCmd(cmd) {
		if d, ok := msg.(SubmissionDoneMsg); ok {
			done = &d
		}
	}
	require.NotNil(t, done)
	require.Equal(t, 1, a.calls)

	cmd = send(m, *done)
	require.True(t, isQuit(cmd))
	require.Same(t, a.res, m.Result())
	require.Equal(t, form.StatusSucceeded, m.Form().Submission().Status)
	require.Error(t, a.ctx.Err(), "submission context is released after completion")
}

func TestSubmit_FailureShowsBanner(t *testing.T) {
	t.Parallel()

	a := &stubAnalyzer{err: &analysis.Failure{Kind: analysis.KindServer, Status: 500, Body: "Server overloaded"}}
	m := filledModel(t, a)

	cmd := send(m, key("ctrl+s"))
	for _, msg := range runCmd(cmd) {
		if d, ok := msg.(SubmissionDoneMsg); ok {
			send(m, d)
		}
	}

	require.Equal(t, form.StatusFailed, m.Form().Submission().Status)
	require.Nil(t, m.Result())
	require.Contains(t, m.render(), "Backend error (500). Server overloaded")

	// Retrying is possible once the failure is shown.
	a.err = nil
	a.res = &analysis.Result{Payload: []byte(`{}`)}
	cmd = send(m, key("ctrl+s"))
	require.True(t, m.Form().Submitting())
	require.NotNil(t, cmd)
}

func TestSubmit_EscCancelsAndDropsLateResult(t *testing.T) {
	t.Parallel()

	a := &stubAnalyzer{res: &analysis.Result{Payload: []byte(`{}`)}}
	m := filledModel(t, a)

	cmd := send(m, key("ctrl+s"))
	require.True(t, m.Form().Submitting())

	send(m, key("esc"))
	require.False(t, m.Form().Submitting())
	require.Equal(t, form.StatusIdle, m.Form().Submission().Status)
	require.Equal(t, profile.SectionCount-1, m.Form().Step(), "esc during submission does not navigate")

	for _, msg := range runCmd(cmd) {
		if d, ok := msg.(SubmissionDoneMsg); ok {
			require.False(t, isQuit(send(m, d)))
		}
	}
	require.Nil(t, m.Result())
	require.Equal(t, form.StatusIdle, m.Form().Submission().Status)
	require.Error(t, a.ctx.Err())
}

func TestSubmit_BurnRateBlocksRequest(t *testing.T) {
	t.Parallel()

	a := &stubAnalyzer{}
	m := filledModel(t, a)
	require.NoError(t, m.Form().SetField(profile.EstimatedBurnRate, "9000"))

	cmd := send(m, key("ctrl+s"))
	require.Nil(t, cmd)
	require.False(t, m.Form().Submitting())
	require.Zero(t, a.calls)
	require.Contains(t, m.render(), "Fix the highlighted fields in: Financial")
}

func TestCtrlC_QuitsFromAnywhere(t *testing.T) {
	t.Parallel()

	m := filledModel(t, &stubAnalyzer{})
	send(m, key("ctrl+s"))
	require.True(t, m.Form().Submitting())

	cmd := send(m, key("ctrl+c"))
	require.True(t, isQuit(cmd))
	require.True(t, m.Cancelled())
	require.False(t, m.Form().Submitting())
}

func TestLongTextEdited(t *testing.T) {
	t.Parallel()

	m := New(Options{})
	m.Init()
	text := strings.Repeat("x", 160)
	send(m, LongTextEditedMsg{Key: profile.ProblemStatement, Content: text + "\n"})
	require.Equal(t, text, m.Form().Value(profile.ProblemStatement))
	require.Equal(t, text, m.editors[1].area.Value())
}

func TestNavButtons(t *testing.T) {
	t.Parallel()

	b := navButtons(true, false, false)
	require.Equal(t, []ButtonAction{ActionCancel, ActionNext}, []ButtonAction{b[0].Action, b[1].Action})

	b = navButtons(false, true, true)
	require.Equal(t, ActionBack, b[0].Action)
	require.Equal(t, "Analyzing...", b[1].Label)
	require.Equal(t, ButtonDisabled, b[0].State)
	require.Equal(t, ButtonDisabled, b[1].State)

	bar := NewButtonBar(b)
	bar.Focus(1)
	btn, _ := bar.At(1)
	require.Equal(t, ButtonDisabled, btn.State, "disabled buttons cannot take focus")
}
