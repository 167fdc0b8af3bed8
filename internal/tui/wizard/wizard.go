// Package wizard implements the interactive startup-profile entry flow: four
// sections, gated navigation, inline field errors and an asynchronous
// submission to the analysis service.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/editor"
	"github.com/investorlens/investorlens/internal/analysis"
	"github.com/investorlens/investorlens/internal/form"
	"github.com/investorlens/investorlens/internal/logger"
	"github.com/investorlens/investorlens/internal/profile"
	"github.com/investorlens/investorlens/internal/tui/theme"
)

// ErrCancelled is returned by Run when the user leaves the wizard without a
// successful analysis.
var ErrCancelled = errors.New("wizard cancelled by user")

const title = "InvestorLens AI · Startup Analysis"

// Options configure a wizard Model.
type Options struct {
	Analyzer form.Analyzer
	// Form is the session to edit. A fresh form is created when nil.
	Form *form.Form
	// Context bounds every submission. Defaults to context.Background.
	Context context.Context
}

// Model is the BubbleTea model for the entry wizard.
type Model struct {
	form     *form.Form
	analyzer form.Analyzer

	ctx          context.Context
	cancelSubmit context.CancelFunc
	seq          int // id of the latest submission

	editors []*fieldEditor // one per field of the active section
	buttons *ButtonBar
	focus   int // 0..len(editors)-1 are fields, then buttons
	notice  string
	spinner spinner.Model

	width     int
	height    int
	cancelled bool
	result    *analysis.Result
}

// New creates a wizard positioned on the first field of the active section.
func New(opts Options) *Model {
	f := opts.Form
	if f == nil {
		f = form.New()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	t := theme.Current()

	m := &Model{
		form:     f,
		analyzer: opts.Analyzer,
		ctx:      ctx,
		width:    80,
		height:   40,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary))),
		),
	}
	m.loadSection()
	return m
}

// Run starts a standalone BubbleTea program and blocks until the user
// quits. It returns the analysis result, or ErrCancelled.
func Run(opts Options) (*analysis.Result, error) {
	m := New(opts)

	finalModel, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	wm, ok := finalModel.(*Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	if wm.result == nil {
		return nil, ErrCancelled
	}
	return wm.result, nil
}

// Form returns the edited form.
func (m *Model) Form() *form.Form { return m.form }

// Result returns the analysis result once a submission succeeded.
func (m *Model) Result() *analysis.Result { return m.result }

// Cancelled reports whether the user quit the wizard.
func (m *Model) Cancelled() bool { return m.cancelled }

// Init focuses the first field.
func (m *Model) Init() tea.Cmd {
	return m.setFocus(0)
}

// Update handles messages for the wizard.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case SubmissionDoneMsg:
		return m, m.finishSubmit(msg)

	case LongTextEditedMsg:
		if msg.Err != nil {
			m.notice = "Editor failed: " + msg.Err.Error()
			return m, nil
		}
		if err := m.form.SetField(msg.Key, strings.TrimRight(msg.Content, "\n")); err == nil {
			for _, e := range m.editors {
				if e.key == msg.Key {
					e.load(m.form)
				}
			}
		}
		return m, nil

	case spinner.TickMsg:
		if !m.form.Submitting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}

	if e := m.focusedEditor(); e != nil && !m.form.Submitting() {
		return m, e.update(msg, m.form)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	}

	if m.form.Submitting() {
		if msg.String() == "esc" {
			m.abandonSubmit()
			m.notice = "Analysis canceled"
			m.buttons = NewButtonBar(navButtons(m.form.IsFirst(), m.form.IsLast(), false))
			m.resize()
			m.buttons.Focus(m.focus - len(m.editors))
		}
		return nil
	}

	switch msg.String() {
	case "esc":
		if m.form.IsFirst() {
			return m.quit()
		}
		return m.back()
	case "tab":
		return m.setFocus(m.focus + 1)
	case "shift+tab":
		return m.setFocus(m.focus - 1)
	case "ctrl+s":
		if m.form.IsLast() {
			return m.submit()
		}
		return m.next()
	case "ctrl+e":
		if e := m.focusedEditor(); e != nil && e.kind == profile.KindLongText {
			return m.openEditor(e.key)
		}
		return nil
	case "enter":
		if btn, ok := m.buttons.At(m.focus - len(m.editors)); ok {
			return m.activate(btn)
		}
		if e := m.focusedEditor(); e != nil && !e.multiline() {
			return m.setFocus(m.focus + 1)
		}
	}

	if e := m.focusedEditor(); e != nil {
		cmd := e.update(msg, m.form)
		m.notice = ""
		return cmd
	}
	return nil
}

func (m *Model) activate(btn Button) tea.Cmd {
	if btn.State == ButtonDisabled {
		return nil
	}
	switch btn.Action {
	case ActionCancel:
		return m.quit()
	case ActionBack:
		return m.back()
	case ActionNext:
		return m.next()
	case ActionSubmit:
		return m.submit()
	}
	return nil
}

func (m *Model) next() tea.Cmd {
	ok, err := m.form.Next()
	if err != nil {
		return nil
	}
	m.notice = ""
	if !ok {
		return m.focusFirstError()
	}
	m.loadSection()
	return m.setFocus(0)
}

func (m *Model) back() tea.Cmd {
	moved, err := m.form.Back()
	if err != nil || !moved {
		return nil
	}
	m.notice = ""
	m.loadSection()
	return m.setFocus(0)
}

func (m *Model) submit() tea.Cmd {
	if m.analyzer == nil {
		m.notice = "No analysis service configured"
		return nil
	}
	v, err := m.form.BeginSubmit()
	if err != nil {
		if errors.Is(err, form.ErrInvalid) {
			m.notice = invalidNotice(m.form)
			return m.focusFirstError()
		}
		m.notice = err.Error()
		return nil
	}

	m.seq++
	seq := m.seq
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelSubmit = cancel
	analyzer := m.analyzer
	m.notice = ""
	m.buttons = NewButtonBar(navButtons(m.form.IsFirst(), m.form.IsLast(), true))
	m.resize()
	logger.Info("submitting analysis for %q", v.StartupName)

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		res, err := analyzer.Analyze(ctx, v)
		return SubmissionDoneMsg{seq: seq, Result: res, Err: err}
	})
}

func (m *Model) finishSubmit(msg SubmissionDoneMsg) tea.Cmd {
	if msg.seq != m.seq || !m.form.FinishSubmit(msg.Result, msg.Err) {
		logger.Debug("dropping stale submission result %d", msg.seq)
		return nil
	}
	if m.cancelSubmit != nil {
		m.cancelSubmit()
		m.cancelSubmit = nil
	}
	m.buttons = NewButtonBar(navButtons(m.form.IsFirst(), m.form.IsLast(), false))
	m.resize()
	m.buttons.Focus(m.focus - len(m.editors))

	sub := m.form.Submission()
	if sub.Status == form.StatusSucceeded {
		m.result = sub.Result
		return tea.Quit
	}
	return nil
}

func (m *Model) abandonSubmit() {
	if m.cancelSubmit != nil {
		m.cancelSubmit()
		m.cancelSubmit = nil
	}
	m.form.Abandon()
}

func (m *Model) quit() tea.Cmd {
	m.abandonSubmit()
	m.cancelled = true
	return tea.Quit
}

// loadSection rebuilds the field editors for the active section.
func (m *Model) loadSection() {
	sec := m.form.Section()
	width := m.contentWidth()
	m.editors = make([]*fieldEditor, 0, len(sec.Keys))
	for _, k := range sec.Keys {
		m.editors = append(m.editors, newFieldEditor(k, m.form, width))
	}
	m.buttons = NewButtonBar(navButtons(m.form.IsFirst(), m.form.IsLast(), m.form.Submitting()))
	m.buttons.SetWidth(width)
	m.focus = 0
}

// setFocus moves focus to index i, wrapping around fields and buttons.
func (m *Model) setFocus(i int) tea.Cmd {
	total := len(m.editors) + m.buttons.Len()
	if total == 0 {
		return nil
	}
	i = ((i % total) + total) % total
	m.focus = i

	var cmd tea.Cmd
	for j, e := range m.editors {
		if j == i {
			cmd = e.focus()
		} else {
			e.blur()
		}
	}
	m.buttons.Focus(i - len(m.editors))
	return cmd
}

func (m *Model) focusFirstError() tea.Cmd {
	for i, e := range m.editors {
		if m.form.Error(e.key) != "" {
			return m.setFocus(i)
		}
	}
	return nil
}

func (m *Model) focusedEditor() *fieldEditor {
	if m.focus >= 0 && m.focus < len(m.editors) {
		return m.editors[m.focus]
	}
	return nil
}

// openEditor launches $EDITOR with the field content.
func (m *Model) openEditor(key profile.Key) tea.Cmd {
	tmpfile, err := os.CreateTemp("", "investorlens_"+string(key)+"_*.txt")
	if err != nil {
		m.notice = "Could not open editor: " + err.Error()
		return nil
	}
	if _, err := tmpfile.WriteString(m.form.Text(key)); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		return nil
	}
	_ = tmpfile.Close()

	cmd, err := editor.Command("investorlens", tmpfile.Name())
	if err != nil {
		_ = os.Remove(tmpfile.Name())
		m.notice = "Could not open editor: " + err.Error()
		return nil
	}

	path := tmpfile.Name()
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer func() { _ = os.Remove(path) }()
		if err != nil {
			return LongTextEditedMsg{Key: key, Err: err}
		}
		content, err := os.ReadFile(path)
		return LongTextEditedMsg{Key: key, Content: string(content), Err: err}
	})
}

func (m *Model) contentWidth() int {
	w := m.width - 14
	if w < 40 {
		w = 40
	}
	if w > 90 {
		w = 90
	}
	return w
}

func (m *Model) resize() {
	width := m.contentWidth()
	for _, e := range m.editors {
		e.setWidth(width)
	}
	m.buttons.SetWidth(width)
}

// invalidNotice names the sections holding errors after a whole-record
// check.
func invalidNotice(f *form.Form) string {
	var names []string
	errs := f.Errors()
	for _, sec := range profile.Sections() {
		for _, k := range sec.Keys {
			if _, ok := errs[k]; ok {
				names = append(names, sec.Name)
				break
			}
		}
	}
	if len(names) == 0 {
		return ""
	}
	return "Fix the highlighted fields in: " + strings.Join(names, ", ")
}

// View renders the wizard UI.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	content := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.render())

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(content).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// render builds the modal: title, progress, banner, fields, buttons, hints.
func (m *Model) render() string {
	s := theme.Current().S()
	sec := m.form.Section()

	var sections []string
	sections = append(sections, s.ModalTitle.Render(title))
	sections = append(sections, s.Label.Render(fmt.Sprintf("Step %d of %d: %s", sec.Index+1, profile.SectionCount, sec.Name)))
	sections = append(sections, m.renderProgress())
	sections = append(sections, "")

	if msg := m.form.Submission().Message(); msg != "" {
		sections = append(sections, s.Banner.Render(msg), "")
	}
	if m.notice != "" {
		sections = append(sections, s.FieldError.Render(m.notice), "")
	}

	for _, e := range m.editors {
		sections = append(sections, e.view(m.form), "")
	}

	if m.form.Submitting() {
		sections = append(sections, m.spinner.View()+" "+s.Label.Render("Analyzing startup..."), "")
	}
	sections = append(sections, m.buttons.Render(), "")
	sections = append(sections, m.renderHints())

	modalWidth := m.contentWidth() + 6
	return s.ModalContainer.Width(modalWidth).Render(strings.Join(sections, "\n"))
}

func (m *Model) renderProgress() string {
	s := theme.Current().S()
	segment := m.contentWidth()/profile.SectionCount - 1
	if segment < 4 {
		segment = 4
	}

	parts := make([]string, 0, profile.SectionCount)
	for i := 0; i < profile.SectionCount; i++ {
		bar := strings.Repeat("━", segment)
		if i <= m.form.Step() {
			parts = append(parts, s.ProgressDone.Render(bar))
		} else {
			parts = append(parts, s.ProgressTodo.Render(bar))
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderHints() string {
	if m.form.Submitting() {
		return renderHintBar("esc", "cancel request", "ctrl+c", "quit")
	}

	pairs := []string{"tab", "next field"}
	if e := m.focusedEditor(); e != nil {
		switch e.kind {
		case profile.KindLongText:
			if os.Getenv("EDITOR") != "" {
				pairs = append(pairs, "ctrl+e", "edit")
			}
		case profile.KindTextList:
			pairs = append(pairs, "enter", "add", "↑↓", "select", "ctrl+x", "remove")
		case profile.KindBool:
			pairs = append(pairs, "space", "toggle")
		}
	}
	if m.form.IsLast() {
		pairs = append(pairs, "ctrl+s", "analyze")
	} else {
		pairs = append(pairs, "ctrl+s", "next")
	}
	if m.form.IsFirst() {
		pairs = append(pairs, "esc", "quit")
	} else {
		pairs = append(pairs, "esc", "back")
	}
	return renderHintBar(pairs...)
}
