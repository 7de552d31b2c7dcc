package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/watbuild/convert"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	cmdStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// echoMsg is one command line echoed by the runner as it starts a job.
type echoMsg string

// batchDoneMsg carries the finished batch outcome.
type batchDoneMsg struct {
	result convert.Result
	err    error
}

type batchModel struct {
	cfg    config
	cancel context.CancelFunc
	ctx    context.Context
	lines  chan string

	spin    spinner.Model
	echoed  []string
	result  convert.Result
	runErr  error
	done    bool
	aborted bool
}

// chanWriter forwards each echoed line to the model's line channel. The
// runner writes one line per job, right before spawning the tool.
type chanWriter struct {
	lines chan<- string
}

func (w chanWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		w.lines <- line
	}
	return len(p), nil
}

func newBatchModel(ctx context.Context, cfg config) *batchModel {
	ctx, cancel := context.WithCancel(ctx)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	return &batchModel{
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
		lines:  make(chan string, 1),
		spin:   s,
	}
}

func (m *batchModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.startBatch, m.waitForLine)
}

func (m *batchModel) startBatch() tea.Msg {
	result, err := runBatch(m.ctx, m.cfg, chanWriter{lines: m.lines})
	close(m.lines)
	return batchDoneMsg{result: result, err: err}
}

func (m *batchModel) waitForLine() tea.Msg {
	line, ok := <-m.lines
	if !ok {
		return nil
	}
	return echoMsg(line)
}

func (m *batchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.done {
				return m, tea.Quit
			}
			// Kill the running tool and let the batch wind down; the
			// done message quits.
			m.aborted = true
			m.cancel()
		}

	case echoMsg:
		m.echoed = append(m.echoed, string(msg))
		return m, m.waitForLine

	case batchDoneMsg:
		m.result = msg.result
		m.runErr = msg.err
		m.done = true
		if m.aborted {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *batchModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("watbuild"))
	fmt.Fprintf(&b, " %s -> %s\n\n", m.cfg.InputDir, m.cfg.OutputDir)

	for i, line := range m.echoed {
		marker := "  "
		style := cmdStyle
		if i < len(m.result.Jobs) {
			switch m.result.Jobs[i].Status {
			case convert.StatusConverted:
				marker = okStyle.Render("ok") + " "
			case convert.StatusFailed:
				marker = failStyle.Render("!!") + " "
				style = failStyle
			case convert.StatusInterrupted:
				marker = failStyle.Render("--") + " "
			}
		} else if !m.done && i == len(m.echoed)-1 {
			marker = m.spin.View()
		}
		b.WriteString(marker)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		if m.runErr != nil {
			b.WriteString(failStyle.Render(fmt.Sprintf("Error: %v", m.runErr)))
		} else if m.result.HasFailures() || m.result.Interrupted {
			b.WriteString(failStyle.Render(m.result.Summary()))
		} else {
			b.WriteString(okStyle.Render(m.result.Summary()))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("q quit"))
	} else {
		b.WriteString(m.spin.View())
		b.WriteString(" converting...")
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("q abort"))
	}

	return b.String()
}

func runInteractive(ctx context.Context, cfg config) error {
	m := newBatchModel(ctx, cfg)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	fm := final.(*batchModel)
	fm.cancel()
	if fm.runErr != nil {
		return fm.runErr
	}
	fmt.Println(fm.result.Summary())
	return batchExitError(fm.result)
}
