package main

import (
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/repline-tools/repline/repl"
	"github.com/repline-tools/repline/replio"
)

const maxConsoleLines = 2000

// Messages

type outputLineMsg string

type runnerDoneMsg struct {
	err error
}

// syncWriter serializes writes from the loop goroutine and async tasks so
// lines arriving at the LineWriter never interleave mid-line.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// runConsole runs the read loop behind a full-screen terminal UI. Typed lines
// are pushed into the runner's input; runner output arrives line by line as
// tea messages.
func runConsole(builder *repl.RunnerBuilder) error {
	in := replio.NewPushableReader()
	lines := make(chan string, 256)
	done := make(chan error, 1)

	out := &syncWriter{w: replio.NewLineWriter(func(line string) {
		lines <- line
	})}

	runner := builder.Build()
	go func() {
		done <- runner.Start(in, out)
	}()

	m := newConsoleModel(in, lines, done)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()

	runner.Stop()
	_ = in.Close()
	if err != nil {
		return err
	}

	fm := final.(consoleModel)
	return fm.runnerErr
}

type consoleModel struct {
	in    *replio.PushableReader
	lines chan string
	done  chan error

	input   textinput.Model
	view    viewport.Model
	history []string

	width     int
	height    int
	ready     bool
	runnerErr error
}

func newConsoleModel(in *replio.PushableReader, lines chan string, done chan error) consoleModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type a command, help lists them"
	ti.Focus()

	return consoleModel{
		in:    in,
		lines: lines,
		done:  done,
		input: ti,
	}
}

// Init implements tea.Model
func (m consoleModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.waitForLine(),
		m.waitForDone(),
	)
}

func (m consoleModel) waitForLine() tea.Cmd {
	return func() tea.Msg {
		return outputLineMsg(<-m.lines)
	}
}

func (m consoleModel) waitForDone() tea.Cmd {
	return func() tea.Msg {
		return runnerDoneMsg{err: <-m.done}
	}
}

// Update implements tea.Model
func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		viewHeight := msg.Height - 3
		if viewHeight < 1 {
			viewHeight = 1
		}
		if !m.ready {
			m.view = viewport.New(msg.Width, viewHeight)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = viewHeight
		}
		m.refreshView()
		return m, nil

	case outputLineMsg:
		m.appendLine(string(msg))
		return m, m.waitForLine()

	case runnerDoneMsg:
		// The loop ended, via exit or EOF.
		m.runnerErr = msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m consoleModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		// Closing the input ends the loop, which delivers runnerDoneMsg.
		_ = m.in.Close()
		return m, nil

	case tea.KeyEnter:
		line := m.input.Value()
		m.input.Reset()
		m.appendLine("> " + line)
		m.in.PushLine(line)
		return m, nil

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *consoleModel) appendLine(line string) {
	m.history = append(m.history, line)
	if len(m.history) > maxConsoleLines {
		m.history = m.history[len(m.history)-maxConsoleLines:]
	}
	m.refreshView()
}

func (m *consoleModel) refreshView() {
	if !m.ready {
		return
	}
	content := ""
	for i, line := range m.history {
		if i > 0 {
			content += "\n"
		}
		content += line
	}
	m.view.SetContent(content)
	m.view.GotoBottom()
}

// View implements tea.Model
func (m consoleModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	header := titleStyle.Render("repline")

	inputStyle := lipgloss.NewStyle().Padding(0, 1)
	footer := inputStyle.Render(m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, m.view.View(), footer)
}
