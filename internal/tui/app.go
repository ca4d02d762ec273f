package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/newecon/cleanbrief/internal/pipeline"
	"github.com/newecon/cleanbrief/internal/render"
)

type viewMode int

const (
	modeList viewMode = iota
	modeBriefing
)

// App is the terminal viewer: one article list, one briefing view, one
// sort-order control. All remote reads go through the pipeline; reordering
// reuses its cached snapshot.
type App struct {
	pipe  *pipeline.Pipeline
	date  string
	order pipeline.Order

	width  int
	height int
	mode   viewMode
	cursor int

	spinner         spinner.Model
	loadingArticles bool
	loadingBriefing bool

	cards       []render.Card
	articlesErr error

	briefing      *render.BriefingView
	briefingFound bool
	briefingErr   error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Pipeline *pipeline.Pipeline
	Date     string
	Order    pipeline.Order
}

func NewApp(opts RunOpts) *App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		pipe:            opts.Pipeline,
		date:            opts.Date,
		order:           opts.Order,
		spinner:         sp,
		loadingArticles: true,
		loadingBriefing: true,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.loadArticlesCmd(), a.loadBriefingCmd())
}

// loadArticlesCmd captures the current order into the closure so a
// selection made during the fetch cannot skew the result.
func (a *App) loadArticlesCmd() tea.Cmd {
	pipe := a.pipe
	order := a.order
	return func() tea.Msg {
		articles, err := pipe.LoadArticles(context.Background())
		if err != nil {
			return articlesErrMsg{err: err}
		}
		return articlesLoadedMsg{cards: render.Cards(pipeline.SortArticles(articles, order))}
	}
}

func (a *App) reorderCmd(order pipeline.Order) tea.Cmd {
	pipe := a.pipe
	return func() tea.Msg {
		articles, err := pipe.Reorder(context.Background(), order)
		if err != nil {
			return articlesErrMsg{err: err}
		}
		return articlesLoadedMsg{cards: render.Cards(articles)}
	}
}

func (a *App) loadBriefingCmd() tea.Cmd {
	pipe := a.pipe
	date := a.date
	return func() tea.Msg {
		briefing, found, err := pipe.LoadBriefing(context.Background(), date)
		if err != nil {
			return briefingErrMsg{err: err}
		}
		if !found {
			return briefingLoadedMsg{found: false}
		}
		return briefingLoadedMsg{view: render.ComposeBriefing(briefing), found: true}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case articlesLoadedMsg:
		a.loadingArticles = false
		a.articlesErr = nil
		a.cards = msg.cards
		if a.cursor >= len(a.cards) {
			a.cursor = max(0, len(a.cards)-1)
		}
		return a, nil

	case articlesErrMsg:
		a.loadingArticles = false
		a.articlesErr = msg.err
		return a, nil

	case briefingLoadedMsg:
		a.loadingBriefing = false
		a.briefingErr = nil
		a.briefingFound = msg.found
		if msg.found {
			v := msg.view
			a.briefing = &v
		}
		return a, nil

	case briefingErrMsg:
		a.loadingBriefing = false
		a.briefingErr = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.loadingArticles || a.loadingBriefing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return a, tea.Quit

	case "b":
		if a.mode == modeBriefing {
			a.mode = modeList
		} else {
			a.mode = modeBriefing
		}
		return a, nil

	case "s":
		a.order = nextOrder(a.order)
		return a, a.reorderCmd(a.order)

	case "r":
		a.loadingArticles = true
		a.loadingBriefing = true
		return a, tea.Batch(a.spinner.Tick, a.loadArticlesCmd(), a.loadBriefingCmd())

	case "up", "k":
		if a.mode == modeList && a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case "down", "j":
		if a.mode == modeList && a.cursor < len(a.cards)-1 {
			a.cursor++
		}
		return a, nil

	case "enter", "o":
		if a.mode == modeList && a.cursor < len(a.cards) {
			url := a.cards[a.cursor].URL
			return a, func() tea.Msg {
				if err := openURL(url); err != nil {
					return articlesErrMsg{err: err}
				}
				return nil
			}
		}
		return a, nil
	}

	return a, nil
}

func nextOrder(current pipeline.Order) pipeline.Order {
	orders := pipeline.Orders()
	for i, o := range orders {
		if o == current {
			return orders[(i+1)%len(orders)]
		}
	}
	return orders[0]
}

// Run launches the viewer and blocks until it exits.
func Run(opts RunOpts) error {
	p := tea.NewProgram(NewApp(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
