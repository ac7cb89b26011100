// Package tui is the terminal front end of the employee change form.
//
// The bubbletea model never touches the record store itself: every change
// goes through an editor.Flow, and the flow's notifications and navigation
// come back to the model as messages on a channel.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hrform/internal/domain/employee"
	"hrform/internal/editor"
)

type noticeMsg editor.Notification

type navigateMsg struct {
	target string
}

type activatedMsg struct {
	err error
}

type submittedMsg struct {
	err error
}

// rowSelector is the employee picker above the form fields.
const rowSelector employee.Field = "_employee"

var textFields = map[employee.Field]string{
	employee.FieldName:              "Name",
	employee.FieldPosition:          "Position",
	employee.FieldHourlyWage:        "Hourly wage",
	employee.FieldFNPFNo:            "FNPF no.",
	employee.FieldBankCode:          "Bank code",
	employee.FieldBankAccountNumber: "Bank account",
}

var choiceFields = map[employee.Field][]string{
	employee.FieldPaymentMethod: employee.PaymentMethods,
	employee.FieldBranch:        employee.Branches,
}

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Left   key.Binding
	Right  key.Binding
	Submit key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Left, k.Submit, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Left, k.Right}, {k.Submit, k.Quit}}
}

var defaultKeys = keyMap{
	Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "change choice")),
	Right:  key.NewBinding(key.WithKeys("right")),
	Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "update")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("245"))
	focusStyle   = lipgloss.NewStyle().Width(14).Bold(true).Foreground(lipgloss.Color("212"))
	choiceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	busyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Model is the bubbletea model for one visit of the change form.
type Model struct {
	ctx    context.Context
	flow   *editor.Flow
	navID  string
	events chan tea.Msg

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	inputs  map[employee.Field]textinput.Model

	snap       editor.Snapshot
	focus      int
	notice     *editor.Notification
	submitting bool
	done       bool
}

// New builds the form over gateway. navigationID pre-selects an employee the
// way a deep link into the form would.
func New(ctx context.Context, gateway editor.Gateway, navigationID string, opts ...editor.Option) Model {
	events := make(chan tea.Msg, 16)
	opts = append(opts,
		editor.WithNotifier(editor.NotifierFunc(func(n editor.Notification) { events <- noticeMsg(n) })),
		editor.WithNavigator(func(target string) { events <- navigateMsg{target: target} }),
	)

	inputs := make(map[employee.Field]textinput.Model, len(textFields))
	for field, label := range textFields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = label
		in.CharLimit = 128
		inputs[field] = in
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(busyStyle))

	m := Model{
		ctx:     ctx,
		flow:    editor.New(gateway, opts...),
		navID:   navigationID,
		events:  events,
		keys:    defaultKeys,
		help:    help.New(),
		spinner: sp,
		inputs:  inputs,
	}
	m.snap = m.flow.Snapshot()
	return m
}

// Done reports whether the form saved and handed off to the listing screen.
func (m Model) Done() bool {
	return m.done
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.activate(), m.listen(), m.spinner.Tick)
}

func (m Model) activate() tea.Cmd {
	flow, ctx, navID := m.flow, m.ctx, m.navID
	return func() tea.Msg {
		return activatedMsg{err: flow.Activate(ctx, navID)}
	}
}

func (m Model) submit() tea.Cmd {
	flow, ctx := m.flow, m.ctx
	return func() tea.Msg {
		return submittedMsg{err: flow.Submit(ctx)}
	}
}

func (m Model) listen() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return <-events
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case activatedMsg:
		m.refresh(true)
		return m, m.focusCmd()

	case submittedMsg:
		m.submitting = false
		m.refresh(false)
		return m, nil

	case noticeMsg:
		n := editor.Notification(msg)
		m.notice = &n
		return m, m.listen()

	case navigateMsg:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		if m.submitting || m.snap.Phase != editor.PhaseReady {
			return m, nil
		}
		m.submitting = true
		m.notice = nil
		return m, m.submit()
	}

	if m.snap.Phase != editor.PhaseReady || m.submitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		m.moveFocus(1)
		return m, m.focusCmd()
	case key.Matches(msg, m.keys.Prev):
		m.moveFocus(-1)
		return m, m.focusCmd()
	case key.Matches(msg, m.keys.Left):
		m.cycle(-1)
		return m, nil
	case key.Matches(msg, m.keys.Right):
		m.cycle(1)
		return m, nil
	}

	field := m.focused()
	in, ok := m.inputs[field]
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	in, cmd = in.Update(msg)
	m.inputs[field] = in
	if in.Value() != m.snap.Draft.Get(field) {
		_ = m.flow.Edit(field, in.Value())
		m.refresh(false)
	}
	return m, cmd
}

// rows lists the focusable rows. Bank details only appear for online payment.
func (m Model) rows() []employee.Field {
	rows := []employee.Field{
		rowSelector,
		employee.FieldName,
		employee.FieldPosition,
		employee.FieldHourlyWage,
		employee.FieldFNPFNo,
		employee.FieldPaymentMethod,
	}
	if m.snap.Draft.PaymentMethod == employee.PaymentOnline {
		rows = append(rows, employee.FieldBankCode, employee.FieldBankAccountNumber)
	}
	return append(rows, employee.FieldBranch)
}

func (m Model) focused() employee.Field {
	rows := m.rows()
	if m.focus >= len(rows) {
		return rows[len(rows)-1]
	}
	return rows[m.focus]
}

func (m *Model) moveFocus(delta int) {
	n := len(m.rows())
	m.focus = ((m.focus+delta)%n + n) % n
}

func (m *Model) focusCmd() tea.Cmd {
	var cmd tea.Cmd
	current := m.focused()
	for field, in := range m.inputs {
		if field == current {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
		m.inputs[field] = in
	}
	return cmd
}

// cycle steps through the employee picker or an enumerated field.
func (m *Model) cycle(delta int) {
	field := m.focused()
	if field == rowSelector {
		choices := m.snap.Choices
		if len(choices) == 0 {
			return
		}
		idx := -1
		for i, c := range choices {
			if c.ID == m.snap.SelectedID {
				idx = i
			}
		}
		if idx < 0 && delta < 0 {
			idx = 0
		}
		next := ((idx+delta)%len(choices) + len(choices)) % len(choices)
		m.flow.Select(choices[next].ID)
		m.refresh(true)
		return
	}

	options, ok := choiceFields[field]
	if !ok {
		return
	}
	current := m.snap.Draft.Get(field)
	idx := 0
	for i, opt := range options {
		if opt == current {
			idx = i
		}
	}
	next := ((idx+delta)%len(options) + len(options)) % len(options)
	_ = m.flow.Edit(field, options[next])
	m.refresh(false)
}

// refresh reloads the snapshot. With sync set, text inputs are overwritten
// from the draft, which is needed after the draft was reseeded.
func (m *Model) refresh(sync bool) {
	m.snap = m.flow.Snapshot()
	if n := len(m.rows()); m.focus >= n {
		m.focus = n - 1
	}
	if !sync {
		return
	}
	for field, in := range m.inputs {
		in.SetValue(m.snap.Draft.Get(field))
		m.inputs[field] = in
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Update employee"))
	b.WriteString("\n")

	if m.snap.Phase == editor.PhaseIdle || m.snap.Phase == editor.PhaseLoading {
		b.WriteString(m.spinner.View() + " loading employees\n")
		return b.String()
	}

	current := m.focused()
	for _, field := range m.rows() {
		label := labelStyle
		if field == current {
			label = focusStyle
		}
		b.WriteString(label.Render(rowLabel(field)))
		b.WriteString(m.rowValue(field))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.submitting || m.snap.Busy:
		b.WriteString(m.spinner.View() + busyStyle.Render(" updating..."))
	case m.notice != nil && m.notice.Kind == editor.KindError:
		b.WriteString(errorStyle.Render(m.notice.Text))
	case m.notice != nil:
		b.WriteString(successStyle.Render(m.notice.Text))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func rowLabel(field employee.Field) string {
	switch field {
	case rowSelector:
		return "Employee"
	case employee.FieldPaymentMethod:
		return "Payment"
	case employee.FieldBranch:
		return "Branch"
	}
	return textFields[field]
}

func (m Model) rowValue(field employee.Field) string {
	if field == rowSelector {
		for _, c := range m.snap.Choices {
			if c.ID == m.snap.SelectedID {
				return choiceStyle.Render("‹ " + c.Name + " ›")
			}
		}
		if len(m.snap.Choices) == 0 {
			return choiceStyle.Render("no employees")
		}
		return choiceStyle.Render("‹ select an employee ›")
	}
	if _, ok := choiceFields[field]; ok {
		return choiceStyle.Render("‹ " + m.snap.Draft.Get(field) + " ›")
	}
	return m.inputs[field].View()
}
