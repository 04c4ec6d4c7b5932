package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/jfmusicbot/botsetup/pkg/logging"
	"github.com/jfmusicbot/botsetup/pkg/prompt"
	"github.com/jfmusicbot/botsetup/pkg/schema"
)

type wizardStep int

const (
	stepMode wizardStep = iota
	stepField
	stepConfirm
	stepDone
)

type optionItem struct {
	title string
	desc  string
	value string
}

func (i optionItem) Title() string       { return i.title }
func (i optionItem) Description() string { return i.desc }
func (i optionItem) FilterValue() string { return i.title }

type wizardModel struct {
	step          wizardStep
	list          list.Model
	input         textinput.Model
	schema        schema.Registry
	asked         []schema.Field
	skipped       []string
	current       int
	attempts      int
	maxAttempts   int
	cfg           *schema.Configuration
	validationErr string
	cancelled     bool
	err           error
	width         int
	height        int
	logger        *log.Logger
}

var (
	styleTitle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	styleSubtitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	styleError     = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	stylePrompt    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	styleSummary   = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	styleHighlight = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

// ErrCancelled is returned when the operator leaves the wizard before the
// configuration was confirmed.
var ErrCancelled = errors.New("wizard cancelled")

const (
	welcomeMessage      = "Welcome to the Config Build Assistant."
	invalidInputMessage = "Invalid Input. Please try again!"
)

// Wizard is the full-screen counterpart of wizard.Builder. It asks the same
// questions and produces the same Configuration.
type Wizard struct {
	schema      schema.Registry
	maxAttempts int
	logger      *log.Logger
	options     []tea.ProgramOption
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithMaxAttempts bounds how many rejected answers a single field tolerates.
func WithMaxAttempts(n int) Option {
	return func(w *Wizard) {
		w.maxAttempts = n
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(l *log.Logger) Option {
	return func(w *Wizard) {
		w.logger = l
	}
}

// WithIO runs the program on the given terminal streams instead of
// stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(w *Wizard) {
		w.options = append(w.options, tea.WithInput(in), tea.WithOutput(out))
	}
}

// NewWizard returns a full-screen wizard for reg.
func NewWizard(reg schema.Registry, opts ...Option) *Wizard {
	w := &Wizard{schema: reg}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = logging.OrNop(w.logger)
	return w
}

// Build runs the interactive wizard and returns the confirmed configuration.
func (w *Wizard) Build(ctx context.Context) (*schema.Configuration, error) {
	model := newWizardModel(w.schema, w.maxAttempts, w.logger)
	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, w.options...)
	prog := tea.NewProgram(model, opts...)
	result, err := prog.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	finalModel, ok := result.(wizardModel)
	if !ok {
		return nil, fmt.Errorf("wizard failed to return results")
	}
	return finalModel.result()
}

// RunWizard runs a full-screen wizard for reg on the process terminal.
func RunWizard(ctx context.Context, reg schema.Registry, opts ...Option) (*schema.Configuration, error) {
	return NewWizard(reg, opts...).Build(ctx)
}

func newWizardModel(reg schema.Registry, maxAttempts int, logger *log.Logger) wizardModel {
	model := wizardModel{
		step:        stepMode,
		schema:      reg,
		maxAttempts: maxAttempts,
		cfg:         schema.NewConfiguration(),
		logger:      logging.OrNop(logger),
	}
	model.list = newList("Select setup mode", modeItems())
	return model
}

func (m wizardModel) result() (*schema.Configuration, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.cancelled || m.step != stepDone {
		return nil, ErrCancelled
	}
	return m.cfg, nil
}

func newList(title string, items []list.Item) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("252"))
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(lipgloss.Color("205")).Bold(true)
	delegate.Styles.NormalDesc = delegate.Styles.NormalDesc.Foreground(lipgloss.Color("244")).Italic(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(lipgloss.Color("212")).Italic(true)
	l := list.New(items, delegate, 0, 0)
	l.Title = styleTitle.Render(title)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(false)
	return l
}

func (m wizardModel) Init() tea.Cmd {
	return nil
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyListSize()
		if m.step == stepField {
			m.input.Width = msg.Width - 4
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "q":
			// q is ordinary text while a field is being answered.
			if m.step != stepField {
				m.cancelled = true
				return m, tea.Quit
			}
		case "enter":
			if m.step != stepField {
				return m.handleSelection()
			}
		}
	}

	switch m.step {
	case stepField:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
			return m.handleInputSubmit()
		}
		return m, cmd
	case stepDone:
		return m, nil
	default:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
}

func (m wizardModel) View() string {
	if m.step == stepDone {
		return ""
	}

	var header string
	if m.validationErr != "" {
		header = styleError.Render(m.validationErr) + "\n\n"
	}

	switch m.step {
	case stepMode:
		return styleHighlight.Render(welcomeMessage) + "\n\n" + header + m.list.View() + "\n\n" + stylePrompt.Render("Use ↑/↓ to move, Enter to select, q to quit.")
	case stepField:
		field := m.asked[m.current]
		progress := styleSubtitle.Render(fmt.Sprintf("Field %d of %d: %s", m.current+1, len(m.asked), field.Key))
		return header + progress + "\n" + styleTitle.Render(field.Description) + "\n" + styleSubtitle.Render(defaultHint(field)) + "\n\n" + m.input.View() + "\n\n" + stylePrompt.Render("Press Enter to continue, Esc to quit.")
	case stepConfirm:
		return header + styleSummary.Render(m.confirmSummary()) + "\n\n" + m.list.View() + "\n\n" + stylePrompt.Render("Use Enter to confirm, q to quit.")
	default:
		return header + m.list.View()
	}
}

func (m wizardModel) handleSelection() (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(optionItem)
	if !ok {
		return m, nil
	}

	switch m.step {
	case stepMode:
		full := item.value == "full"
		m.logger.Debug("setup mode chosen", "full", full)
		for _, field := range m.schema.Fields() {
			if !full && !field.Required {
				m.logger.Debug("field skipped", "key", field.Key)
				m.skipped = append(m.skipped, field.Key)
				continue
			}
			m.asked = append(m.asked, field)
		}
		if len(m.asked) == 0 {
			m.showConfirm()
			return m, nil
		}
		m.current = 0
		m.setInput()
	case stepConfirm:
		if item.value == "write" {
			m.step = stepDone
		} else {
			m.cancelled = true
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m wizardModel) handleInputSubmit() (tea.Model, tea.Cmd) {
	field := m.asked[m.current]
	value := m.input.Value()
	if value == "" {
		value = field.DefaultText()
	}

	if !field.Check(value) {
		m.attempts++
		m.logger.Debug("answer rejected", "key", field.Key, "attempt", m.attempts)
		if m.maxAttempts > 0 && m.attempts >= m.maxAttempts {
			m.err = fmt.Errorf("ask %s: %s: %w", field.Key, field.Description, prompt.ErrTooManyAttempts)
			return m, tea.Quit
		}
		m.validationErr = invalidInputMessage
		m.input.SetValue("")
		return m, nil
	}

	m.cfg.Set(field.Key, field.Resolve(value))
	m.current++
	if m.current < len(m.asked) {
		m.setInput()
		return m, nil
	}
	m.showConfirm()
	return m, nil
}

func (m *wizardModel) setInput() {
	field := m.asked[m.current]
	m.step = stepField
	m.validationErr = ""
	m.attempts = 0
	m.input = textinput.New()
	m.input.Prompt = stylePrompt.Render("> ")
	m.input.Placeholder = field.DefaultText()
	m.input.Focus()
	if m.width > 0 {
		m.input.Width = m.width - 4
	}
}

func (m *wizardModel) showConfirm() {
	m.step = stepConfirm
	m.validationErr = ""
	m.list = newList("Write configuration?", confirmItems())
	m.applyListSizeWithOffset(m.confirmSummaryLineCount() + 4)
}

func (m *wizardModel) applyListSize() {
	if m.width > 0 && m.height > 0 {
		m.list.SetSize(m.width, m.height-4)
	}
}

func (m *wizardModel) applyListSizeWithOffset(offset int) {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	height := m.height - offset
	if height < 4 {
		height = 4
	}
	m.list.SetSize(m.width, height)
}

func (m wizardModel) confirmSummaryLineCount() int {
	return strings.Count(m.confirmSummary(), "\n") + 1
}

func (m wizardModel) confirmSummary() string {
	lines := []string{styleHighlight.Render("Review your answers")}
	for _, key := range m.skipped {
		lines = append(lines, styleSubtitle.Render(fmt.Sprintf("Skipping %s, because it is not mandatory", key)))
	}
	rendered, err := m.cfg.YAML()
	if err != nil {
		lines = append(lines, styleError.Render(err.Error()))
		return strings.Join(lines, "\n")
	}
	lines = append(lines, strings.TrimRight(string(rendered), "\n"))
	return strings.Join(lines, "\n")
}

func defaultHint(field schema.Field) string {
	if !field.HasDefault() || field.DefaultText() == "" {
		return "Default: none"
	}
	return "Default: " + field.DefaultText()
}

func modeItems() []list.Item {
	return []list.Item{
		optionItem{title: "Full setup", desc: "Answer every field", value: "full"},
		optionItem{title: "Minimal setup", desc: "Only the mandatory fields; optional ones are left out", value: "minimal"},
	}
}

func confirmItems() []list.Item {
	return []list.Item{
		optionItem{title: "Write configuration", desc: "Save the answers to disk", value: "write"},
		optionItem{title: "Cancel", desc: "Exit without changes", value: "cancel"},
	}
}
