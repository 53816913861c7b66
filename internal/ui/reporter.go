package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"seek/internal/domain"
	"seek/internal/limiter"
)

// Options configure the reporter's output behavior
type Options struct {
	Out                  io.Writer
	Interactive          bool // live progress line; off when stdout is not a tty
	ShowPermissionErrors bool
	MaxFiles             uint64
	OnInterrupt          func() // invoked once when the user interrupts a live search
}

// Reporter is the single consumer of the event stream. It serializes
// all terminal output: matches are printed the moment they arrive and
// the live progress line is redrawn in place between them.
type Reporter struct {
	state  *limiter.State
	events <-chan domain.SearchEvent
	opts   Options
}

// NewReporter creates a reporter over the shared state and event stream
func NewReporter(state *limiter.State, events <-chan domain.SearchEvent, opts Options) *Reporter {
	return &Reporter{
		state:  state,
		events: events,
		opts:   opts,
	}
}

// Run consumes events until the stream ends. It blocks; the caller is
// expected to run it concurrently with the traversal.
func (r *Reporter) Run() error {
	if r.opts.Interactive {
		return r.runLive()
	}
	return r.runPlain()
}

// runPlain prints matches as plain lines, suitable for pipes
func (r *Reporter) runPlain() error {
	for event := range r.events {
		switch ev := event.(type) {
		case domain.EntryMatchedEvent:
			fmt.Fprintln(r.opts.Out, ev.Path)
		case domain.PermissionErrorEvent:
			if r.opts.ShowPermissionErrors {
				fmt.Fprintln(r.opts.Out, "Permission denied:", ev.Path)
			}
		}
	}
	return nil
}

// runLive renders the spinner/progress line and scrolling match lines
// through a single Bubble Tea program, keeping the terminal a
// single-writer resource.
func (r *Reporter) runLive() error {
	m := newLiveModel(r.state, r.opts)
	p := tea.NewProgram(m, tea.WithOutput(r.opts.Out))

	go func() {
		for event := range r.events {
			p.Send(eventMsg{event: event})
		}
		p.Send(streamClosedMsg{})
	}()

	_, err := p.Run()
	return err
}

// eventMsg wraps a search event for the UI
type eventMsg struct {
	event domain.SearchEvent
}

// streamClosedMsg signals that the event stream ended without a
// completion event (fatal shutdown path)
type streamClosedMsg struct{}

// liveModel is the Bubble Tea model behind the live progress line
type liveModel struct {
	spinner spinner.Model
	state   *limiter.State
	opts    Options

	interrupted bool
	done        bool
}

func newLiveModel(state *limiter.State, opts Options) liveModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(spinnerStyle),
	)
	return liveModel{
		spinner: s,
		state:   state,
		opts:    opts,
	}
}

func (m liveModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case eventMsg:
		switch ev := msg.event.(type) {
		case domain.EntryMatchedEvent:
			return m, tea.Println(matchStyle.Render(ev.Path))
		case domain.PermissionErrorEvent:
			if m.opts.ShowPermissionErrors {
				return m, tea.Println(warnStyle.Render("Permission denied: " + ev.Path))
			}
		case domain.SearchCompletedEvent:
			m.done = true
			return m, tea.Quit
		}
		return m, nil

	case streamClosedMsg:
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && !m.interrupted {
			m.interrupted = true
			if m.opts.OnInterrupt != nil {
				m.opts.OnInterrupt()
			}
		}
		return m, nil
	}

	return m, nil
}

func (m liveModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + statusLine(m.state, m.opts.MaxFiles)
}

// statusLine renders the in-place progress line from the shared state
// snapshot. The current directory is best effort and may lag genuinely
// concurrent workers.
func statusLine(state *limiter.State, maxFiles uint64) string {
	dir := state.CurrentDir()
	if dir == "" {
		dir = "..."
	}

	scanned := state.Scanned()
	found := state.Matches()
	permErrors := state.PermissionErrors()

	line := fmt.Sprintf("Searching in: %s (%.1fs, %d scanned", dir, state.Elapsed().Seconds(), scanned)
	if found > 0 {
		line += fmt.Sprintf(", %d found", found)
	}
	if permErrors > 0 {
		line += fmt.Sprintf(", %d permission errors", permErrors)
	}
	if maxFiles > 0 && maxFiles > scanned {
		line += fmt.Sprintf(", %d remaining", maxFiles-scanned)
	}
	line += ")"

	return statusStyle.Render(line)
}
