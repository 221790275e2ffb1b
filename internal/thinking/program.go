package thinking

import (
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

type model struct {
	spinner spinner.Model
	message string
	done    bool
}

type doneMsg struct{}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + messageStyle.Render(m.message)
}

// Program renders the spinner with a bubbletea program. It never reads
// input and leaves signal handling to the caller.
type Program struct {
	out   io.Writer
	style spinner.Spinner

	mu      sync.Mutex
	program *tea.Program
	wg      sync.WaitGroup
}

// NewProgram returns a Program drawing to out with the given spinner style
func NewProgram(out io.Writer, style spinner.Spinner) *Program {
	return &Program{out: out, style: style}
}

// Start launches the program. Starting a running Program does nothing.
func (p *Program) Start(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.program != nil {
		return
	}

	m := model{
		spinner: spinner.New(spinner.WithSpinner(p.style), spinner.WithStyle(spinnerStyle)),
		message: message,
	}
	program := tea.NewProgram(m,
		tea.WithOutput(p.out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler())
	p.program = program

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		_, _ = program.Run()
	}()
}

// Stop ends the program and waits for it to restore the terminal
func (p *Program) Stop() {
	p.mu.Lock()
	program := p.program
	p.program = nil
	p.mu.Unlock()

	if program == nil {
		return
	}
	program.Send(doneMsg{})
	p.wg.Wait()
}
