// Package tui provides a Bubble Tea terminal user interface for erettsegi-downloader.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/handiism/erettsegi-downloader/internal/config"
	"github.com/handiism/erettsegi-downloader/internal/download"
	"github.com/handiism/erettsegi-downloader/internal/exam"
	"github.com/handiism/erettsegi-downloader/internal/i18n"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateInitializing
	StateDownloading
	StateComplete
	StateError
)

// Input field indexes.
const (
	inputYear = iota
	inputMonth
	inputLevel
	inputCount
)

const maxLogs = 10

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// Options configures a TUI session.
type Options struct {
	Settings *config.Settings
	Messages *i18n.Messages
	Logger   zerolog.Logger

	// Initial values of the year, month and level inputs.
	Year, Month, Level string
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	inputs   []textinput.Model
	focused  int
	spinner  spinner.Model
	progress progress.Model

	settings *config.Settings
	messages *i18n.Messages
	logger   zerolog.Logger

	request    exam.Request
	inputError string
	logs       []LogEntry
	files      []string
	runDir     string
	err        error

	// Download context
	ctx    context.Context
	cancel context.CancelFunc

	manager *download.Manager
	events  chan download.ProgressEvent
	// run identifies the current submission; messages of older runs are
	// dropped.
	run int

	totalFiles      int32
	downloadedFiles int32
	totalBytes      int64
	receivedBytes   int64

	keepArchives bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(opts Options) Model {
	settings := opts.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}
	messages := opts.Messages
	if messages == nil {
		messages = i18n.New(settings.Language)
	}

	placeholders := [inputCount]string{"2012", "október", "emelt"}
	values := [inputCount]string{opts.Year, opts.Month, opts.Level}

	inputs := make([]textinput.Model, inputCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 20
		ti.Width = 20
		ti.SetValue(values[i])
		inputs[i] = ti
	}
	inputs[inputYear].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:        StateInput,
		inputs:       inputs,
		spinner:      sp,
		progress:     prog,
		settings:     settings,
		messages:     messages,
		logger:       opts.Logger,
		logs:         make([]LogEntry, 0),
		ctx:          ctx,
		cancel:       cancel,
		keepArchives: settings.KeepArchives,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent when the manager reports progress.
	ProgressMsg struct {
		Run   int
		Event download.ProgressEvent
	}

	// InitDoneMsg is sent when document resolution completes.
	InitDoneMsg struct {
		Run     int
		Files   []string
		RunDir  string
		Manager *download.Manager
		Err     error
	}

	// DownloadDoneMsg is sent when all downloads complete.
	DownloadDoneMsg struct {
		Run      int
		Received int64
		Total    int64
		Files    int32
		TotalF   int32
		Err      error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateDownloading || m.state == StateInitializing {
				m.cancel()
				m.state = StateError
				m.err = context.Canceled
			}

		case "tab", "down":
			if m.state == StateInput {
				cmd := m.focus((m.focused + 1) % inputCount)
				return m, cmd
			}

		case "shift+tab", "up":
			if m.state == StateInput {
				cmd := m.focus((m.focused + inputCount - 1) % inputCount)
				return m, cmd
			}

		case "ctrl+k":
			if m.state == StateInput {
				m.keepArchives = !m.keepArchives
				return m, nil
			}

		case "enter":
			if m.state == StateInput {
				return m.submit()
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.reset()
				cmd := m.focus(inputYear)
				return m, cmd
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Run != m.run {
			return m, nil
		}
		m.appendLog(msg.Event)
		cmds = append(cmds, waitForEvent(m.run, m.events))

	case InitDoneMsg:
		if msg.Run != m.run || m.state != StateInitializing {
			return m, nil
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.files = msg.Files
			m.runDir = msg.RunDir
			m.manager = msg.Manager
			m.state = StateDownloading
			cmds = append(cmds, m.startDownload(), m.tickProgress())
		}

	case DownloadDoneMsg:
		if msg.Run != m.run || m.state != StateDownloading {
			return m, nil
		}
		m.receivedBytes = msg.Received
		m.totalBytes = msg.Total
		m.downloadedFiles = msg.Files
		m.totalFiles = msg.TotalF
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = context.Canceled
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateDownloading {
			received, total, files, totalFiles := m.manager.GetProgress()
			m.receivedBytes = received
			m.totalBytes = total
			m.downloadedFiles = files
			m.totalFiles = totalFiles

			cmds = append(cmds, m.progress.SetPercent(m.percent()), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) focus(index int) tea.Cmd {
	m.inputs[m.focused].Blur()
	m.focused = index
	return m.inputs[index].Focus()
}

// submit validates the form. Invalid input keeps the form open with the
// offending field focused.
func (m Model) submit() (tea.Model, tea.Cmd) {
	req, err := exam.ParseRequest(
		m.inputs[inputYear].Value(),
		m.inputs[inputMonth].Value(),
		m.inputs[inputLevel].Value(),
	)
	if err != nil {
		m.inputError = m.messages.Error(err)
		var verr *exam.ValidationError
		if errors.As(err, &verr) {
			cmd := m.focus(fieldIndex(verr.Field))
			return m, cmd
		}
		return m, nil
	}

	m.inputError = ""
	m.request = req
	m.state = StateInitializing
	m.run++
	m.events = make(chan download.ProgressEvent, 64)
	return m, tea.Batch(m.initializeDownload(), waitForEvent(m.run, m.events), m.spinner.Tick)
}

func fieldIndex(field exam.Field) int {
	switch field {
	case exam.FieldMonth:
		return inputMonth
	case exam.FieldLevel:
		return inputLevel
	}
	return inputYear
}

func (m *Model) reset() {
	m.state = StateInput
	m.logs = nil
	m.files = nil
	m.runDir = ""
	m.err = nil
	m.inputError = ""
	m.downloadedFiles = 0
	m.totalFiles = 0
	m.receivedBytes = 0
	m.totalBytes = 0
	m.manager = nil
	m.ctx, m.cancel = context.WithCancel(context.Background())
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
}

func (m *Model) appendLog(event download.ProgressEvent) {
	if event.Level == download.LevelVerbose {
		return
	}
	m.logs = append(m.logs, LogEntry{Message: event.Message, Level: event.Level})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

func (m Model) percent() float64 {
	if m.totalBytes > 0 {
		return min(float64(m.receivedBytes)/float64(m.totalBytes), 1)
	}
	if m.totalFiles > 0 {
		return float64(m.downloadedFiles) / float64(m.totalFiles)
	}
	return 0
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent relays the next manager event into the update loop.
func waitForEvent(run int, events <-chan download.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Run: run, Event: event}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Érettségi Downloader"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("dari.oktatas.hu informatika"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateInitializing:
		b.WriteString(m.viewInitializing())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	prompts := [inputCount]i18n.Key{i18n.PromptYear, i18n.PromptMonth, i18n.PromptLevel}
	for i, input := range m.inputs {
		b.WriteString(subtitleStyle.Render(m.messages.Get(prompts[i])))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	if m.inputError != "" {
		b.WriteString(errorStyle.Render("✗ " + m.inputError))
		b.WriteString("\n\n")
	}

	keepCheck := "[ ]"
	if m.keepArchives {
		keepCheck = "[×]"
	}
	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Keep zip archives (ctrl+k)\n", keepCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Download path: %s", m.settings.DownloadsPath)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewInitializing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%d %s %s...", m.request.Year, m.request.Month, m.request.Level)))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	if len(m.files) > 0 {
		b.WriteString(successStyle.Render(m.runDir))
		b.WriteString("\n")
		for _, file := range m.files {
			b.WriteString(fileStyle.Render(fmt.Sprintf("  • %s", file)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.progress.ViewAs(m.percent()))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Files: %d/%d | Downloaded: %.2f MB",
		m.downloadedFiles,
		m.totalFiles,
		float64(m.receivedBytes)/1024/1024,
	)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	box := boxStyle.Render(fmt.Sprintf(
		"✨ %s\n\n"+
			"Files: %d\n"+
			"Size: %.2f MB",
		m.messages.Get(i18n.InfoDone, m.runDir),
		m.downloadedFiles,
		float64(m.receivedBytes)/1024/1024,
	))
	return box
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.messages.Error(m.err)))
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "✗"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case download.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • tab: next field • ctrl+k: keep archives • esc: quit"
	case StateInitializing, StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new download • q: quit"
	}
	return ""
}

// initializeDownload resolves the documents and creates the manager.
func (m Model) initializeDownload() tea.Cmd {
	settings := *m.settings
	settings.KeepArchives = m.keepArchives
	ctx, req, events, run := m.ctx, m.request, m.events, m.run
	messages, logger := m.messages, m.logger

	return func() tea.Msg {
		manager := download.NewManager(&settings, messages, logger, func(event download.ProgressEvent) {
			select {
			case events <- event:
			default:
			}
		})

		if err := manager.Initialize(ctx, req); err != nil {
			close(events)
			return InitDoneMsg{Run: run, Err: err}
		}

		var files []string
		for _, target := range manager.Targets() {
			files = append(files, target.FileName)
		}

		return InitDoneMsg{
			Run:     run,
			Files:   files,
			RunDir:  manager.RunDir(),
			Manager: manager,
		}
	}
}

// startDownload starts the actual download in background. The event
// channel is closed once the manager returns.
func (m Model) startDownload() tea.Cmd {
	ctx, manager, events, run := m.ctx, m.manager, m.events, m.run

	return func() tea.Msg {
		if manager == nil {
			return DownloadDoneMsg{Run: run, Err: download.ErrNotInitialized}
		}

		err := manager.StartDownloads(ctx)
		close(events)
		received, total, files, totalFiles := manager.GetProgress()

		return DownloadDoneMsg{
			Run:      run,
			Received: received,
			Total:    total,
			Files:    files,
			TotalF:   totalFiles,
			Err:      err,
		}
	}
}

// Run starts the TUI application.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
