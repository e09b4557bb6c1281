package tui

import (
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
)

// App wraps the Bubbletea program
type App struct {
	mu      sync.Mutex
	program *tea.Program
	model   Model
	mouse   bool
	output  io.Writer
}

// New creates a new TUI application
func New(opts Options) *App {
	model := NewModel(opts)
	return &App{
		model:  model,
		mouse:  model.cfg.TUI.Mouse,
		output: opts.Output,
	}
}

// programOptions returns the Bubble Tea options for this app.
func (a *App) programOptions() []tea.ProgramOption {
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if a.mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	if a.output != nil {
		progOpts = append(progOpts, tea.WithOutput(a.output))
	}
	return progOpts
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	progOpts := a.programOptions()

	a.mu.Lock()
	a.program = tea.NewProgram(a.model, progOpts...)
	program := a.program
	a.mu.Unlock()

	// Quit cleanly so the terminal is restored when the process is signalled.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-sigChan:
			program.Send(tea.Quit())
		case <-done:
		}
	}()

	a.model.logger.Info("tui started", "auto_filter", a.model.autoFilter, "mouse", a.mouse)
	final, err := program.Run()
	signal.Stop(sigChan)

	if m, ok := final.(Model); ok {
		a.mu.Lock()
		a.model = m
		a.mu.Unlock()
	}
	a.model.logger.Info("tui stopped")
	return err
}

// Send delivers msg to the running program. It is a no-op before Run.
func (a *App) Send(msg tea.Msg) {
	a.mu.Lock()
	program := a.program
	a.mu.Unlock()
	if program != nil {
		program.Send(msg)
	}
}

// Text returns the text area content, as of the last exit when the program
// has stopped.
func (a *App) Text() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.model.Text()
}
