// Package start is the entry screen: it loads the bank and offers session
// sizes.
package start

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kuis/internal/engine"
	"github.com/abhisek/kuis/internal/router"
	"github.com/abhisek/kuis/internal/screen"
	historyscreen "github.com/abhisek/kuis/internal/screens/history"
	"github.com/abhisek/kuis/internal/screens/quiz"
	"github.com/abhisek/kuis/internal/session"
	"github.com/abhisek/kuis/internal/ui/components"
	"github.com/abhisek/kuis/internal/ui/layout"
	"github.com/abhisek/kuis/internal/ui/theme"
)

// LoadFunc builds the engine. It runs once, off the event loop.
type LoadFunc func(ctx context.Context) (*engine.Engine, error)

type loadedMsg struct {
	Engine *engine.Engine
	Err    error
}

type startMsg struct {
	N int
}

type customMsg struct{}
type historyMsg struct{}

// StartScreen loads the engine and lets the user pick a session size.
type StartScreen struct {
	load      LoadFunc
	engine    *engine.Engine
	loadErr   error
	autoStart int

	menu   components.Menu
	custom bool
	input  components.TextInput
	notice string
}

var _ screen.Screen = (*StartScreen)(nil)
var _ screen.KeyHintProvider = (*StartScreen)(nil)

// New creates a start screen that loads the engine with load. A positive
// autoStart begins a session of that size as soon as loading finishes.
func New(load LoadFunc, autoStart int) *StartScreen {
	return &StartScreen{load: load, autoStart: autoStart}
}

// NewReady creates a start screen around an already loaded engine.
func NewReady(e *engine.Engine) *StartScreen {
	s := &StartScreen{engine: e}
	s.rebuildMenu()
	return s
}

func (s *StartScreen) Init() tea.Cmd {
	if s.engine != nil || s.load == nil {
		return nil
	}
	load := s.load
	return func() tea.Msg {
		e, err := load(context.Background())
		return loadedMsg{Engine: e, Err: err}
	}
}

func (s *StartScreen) Title() string {
	return "Start"
}

// Status shows the mastered count once the bank is loaded.
func (s *StartScreen) Status() string {
	if s.engine == nil {
		return ""
	}
	return s.engine.Status()
}

// Engine returns the loaded engine, or nil while loading or after a failure.
func (s *StartScreen) Engine() *engine.Engine {
	return s.engine
}

func (s *StartScreen) KeyHints() []layout.KeyHint {
	if s.custom {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if s.engine == nil {
		return []layout.KeyHint{{Key: "q", Description: "Quit"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "c", Description: "Custom"},
		{Key: "h", Description: "History"},
		{Key: "q", Description: "Quit"},
	}
}

func (s *StartScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			s.loadErr = msg.Err
			return s, nil
		}
		s.engine = msg.Engine
		s.rebuildMenu()
		if s.autoStart > 0 {
			n := s.autoStart
			s.autoStart = 0
			return s.startSession(n)
		}
		return s, nil

	case router.RevealedMsg:
		s.notice = ""
		s.rebuildMenu()
		return s, nil

	case startMsg:
		return s.startSession(msg.N)

	case customMsg:
		s.custom = true
		s.input = components.NewTextInput("number of questions", true, 4)
		return s, s.input.Init()

	case historyMsg:
		next := historyscreen.New(s.engine)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.custom {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *StartScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.custom {
		switch key {
		case "esc":
			s.custom = false
			return s, nil
		case "enter":
			n, err := s.input.NumericValue()
			if err != nil {
				s.input.Submit(false)
				s.notice = "Enter a whole number."
				return s, nil
			}
			return s.startSession(n)
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	if key == "q" {
		return s, tea.Quit
	}
	if s.engine == nil {
		return s, nil
	}

	switch key {
	case "c":
		if s.engine.Available() > 0 {
			return s, func() tea.Msg { return customMsg{} }
		}
		return s, nil
	case "h":
		return s, func() tea.Msg { return historyMsg{} }
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// startSession selects n questions and pushes the quiz screen. An invalid
// size keeps the user here with a message.
func (s *StartScreen) startSession(n int) (screen.Screen, tea.Cmd) {
	sess, err := s.engine.NewSession(n)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRequest) {
			s.notice = fmt.Sprintf("Cannot start %d questions: %d available.", n, s.engine.Available())
		} else {
			s.notice = err.Error()
		}
		s.input.Submit(false)
		return s, nil
	}
	s.custom = false
	s.notice = ""
	next := quiz.New(s.engine, sess)
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *StartScreen) rebuildMenu() {
	if s.engine == nil {
		return
	}
	var items []components.MenuItem
	offered := s.engine.Offered()
	if len(offered) == 0 {
		items = append(items, components.MenuItem{Label: session.NoQuestionsRemaining, Disabled: true})
	}
	for _, n := range offered {
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%d questions", n),
			Action: func() tea.Cmd { return func() tea.Msg { return startMsg{N: n} } },
		})
	}
	items = append(items,
		components.MenuItem{
			Label:    "Custom count",
			Action:   func() tea.Cmd { return func() tea.Msg { return customMsg{} } },
			Disabled: s.engine.Available() == 0,
		},
		components.MenuItem{
			Label:  "History",
			Action: func() tea.Cmd { return func() tea.Msg { return historyMsg{} } },
		},
		components.MenuItem{
			Label:  "Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)
	s.menu = components.NewMenu(items)
}

func (s *StartScreen) View(width, height int) string {
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	if s.loadErr != nil {
		return center(lipgloss.NewStyle().Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nCould not load the question bank.\n\n%s\n\nPress q to quit.", s.loadErr)))
	}
	if s.engine == nil {
		return center(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("\n\nLoading questions..."))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(theme.Title.Render("Kuis")))
	b.WriteString("\n")

	avail := s.engine.Available()
	sub := fmt.Sprintf("%d of %d questions left to master", avail, s.engine.Bank().Len())
	if avail == 0 {
		sub = "All questions have been answered correctly"
	}
	b.WriteString(center(theme.Subtitle.Render(sub)))
	b.WriteString("\n\n")

	if s.custom {
		b.WriteString(center("How many questions? " + s.input.View()))
		b.WriteString("\n")
	} else {
		cw := components.ContentWidth(width)
		b.WriteString(center(components.Card(s.menu.View(), min(cw, 40))))
		b.WriteString("\n")
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(center(theme.Notice.Render(s.notice)))
		b.WriteString("\n")
	}
	return b.String()
}
