package tui

import (
	"context"
	"fmt"
	"image"
	"slices"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/morty/internal/browse"
	"github.com/f3rmion/morty/internal/character"
	"github.com/f3rmion/morty/internal/favorites"
	"github.com/f3rmion/morty/internal/paging"
	"github.com/f3rmion/morty/internal/tui/portrait"
	"go.uber.org/zap"
)

// Portrait size in terminal cells.
const (
	portraitCols = 24
	portraitRows = 12
)

// Client is what the UI needs from the character provider.
type Client interface {
	browse.Fetcher
	FetchImage(ctx context.Context, url string) (image.Image, error)
}

// Options configures the application.
type Options struct {
	PageSize  int
	Debounce  time.Duration
	Portraits bool
	Logger    *zap.Logger
}

// Focus is the part of the screen receiving keys.
type Focus int

const (
	FocusTable Focus = iota
	FocusSearch
	FocusFavorites
)

// debounceMsg fires when a search quiet period elapses.
type debounceMsg struct {
	tag int
}

// fetchResultMsg carries the outcome of a collection request.
type fetchResultMsg struct {
	resp browse.Response
}

// portraitMsg carries a downloaded avatar.
type portraitMsg struct {
	url string
	img image.Image
	err error
}

type clearStatusMsg struct{}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// AppModel is the root bubbletea model of the character browser.
type AppModel struct {
	// Core dependencies
	client    Client
	favorites *favorites.Store
	log       *zap.Logger

	// Browse state
	session   *browse.Session
	debouncer *browse.Debouncer
	cancel    context.CancelFunc
	initFetch tea.Cmd

	// Portraits
	portraits     bool
	portraitCache *portrait.Cache
	portraitErr   map[string]bool

	// Widgets
	search  textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	// Navigation
	focus     Focus
	cursor    int
	favCursor int
	showHelp  bool

	// Transient status line (copy confirmation, save failures)
	status string

	// Layout state
	width  int
	height int
	ready  bool
}

// NewApp creates the application and begins the first fetch.
func NewApp(client Client, favs *favorites.Store, opts Options) AppModel {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	si := textinput.New()
	si.Placeholder = "Search by name..."
	si.CharLimit = 60
	si.Width = 30
	si.Prompt = "🔍 "

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = LoadingStyle

	m := AppModel{
		client:        client,
		favorites:     favs,
		log:           log,
		session:       browse.NewSession(browse.NewQuery(opts.PageSize)),
		debouncer:     browse.NewDebouncer(opts.Debounce),
		portraits:     opts.Portraits,
		portraitCache: portrait.NewCache(),
		portraitErr:   make(map[string]bool),
		search:        si,
		spinner:       sp,
		help:          help.New(),
		keys:          defaultKeyMap(),
	}

	if req, ok := m.session.Begin(); ok {
		m.initFetch = m.issue(req)
	}
	return m
}

// Session exposes the browse state.
func (m AppModel) Session() *browse.Session {
	return m.session
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.initFetch, m.spinner.Tick)
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case debounceMsg:
		value, ok := m.debouncer.Fire(msg.tag)
		if !ok {
			return m, nil
		}
		cmd := m.apply(func(q browse.Query) browse.Query { return q.WithDebouncedSearch(value) })
		return m, cmd

	case fetchResultMsg:
		if !m.session.Complete(msg.resp) {
			m.log.Debug("dropping stale response", zap.Uint64("seq", msg.resp.Seq))
			return m, nil
		}
		if msg.resp.Err != nil {
			m.log.Warn("fetch failed", zap.Uint64("seq", msg.resp.Seq), zap.Error(msg.resp.Err))
		}
		m.clampCursor()
		return m, nil

	case portraitMsg:
		if msg.err != nil {
			m.portraitErr[msg.url] = true
			m.log.Warn("portrait unavailable", zap.String("url", msg.url), zap.Error(msg.err))
			return m, nil
		}
		m.portraitCache.Put(msg.url, msg.img, portraitCols, portraitRows)
		return m, nil

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.focus == FocusSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.cancelInFlight()
		return tea.Quit
	}

	// Help overlay - any key closes it
	if m.showHelp {
		m.showHelp = false
		return nil
	}

	if sel := m.session.Selected(); sel != nil {
		return m.handleModalKey(msg, *sel)
	}

	if m.focus == FocusSearch {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelInFlight()
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return nil
	case key.Matches(msg, m.keys.Search):
		m.focus = FocusSearch
		return m.search.Focus()
	case key.Matches(msg, m.keys.Panel):
		if m.focus == FocusFavorites || m.favorites.Len() == 0 {
			m.focus = FocusTable
		} else {
			m.focus = FocusFavorites
			m.clampFavCursor()
		}
		return nil
	case key.Matches(msg, m.keys.Status):
		next := cycle(character.Statuses, m.session.Query.Status)
		return m.apply(func(q browse.Query) browse.Query { return q.WithStatus(next) })
	case key.Matches(msg, m.keys.Species):
		next := cycle(character.Species, m.session.Query.Species)
		return m.apply(func(q browse.Query) browse.Query { return q.WithSpecies(next) })
	case key.Matches(msg, m.keys.Sort):
		return m.apply(func(q browse.Query) browse.Query { return q.WithSort(q.Sort.Toggle()) })
	case key.Matches(msg, m.keys.PageSize):
		return m.apply(func(q browse.Query) browse.Query { return q.WithPageSize(paging.NextPageSize(q.PageSize)) })
	case key.Matches(msg, m.keys.Prev):
		return m.apply(browse.Query.PrevPage)
	case key.Matches(msg, m.keys.Next):
		total := m.session.TotalPages()
		return m.apply(func(q browse.Query) browse.Query { return q.NextPage(total) })
	}

	if m.focus == FocusFavorites {
		return m.handleFavoritesKey(msg)
	}
	return m.handleTableKey(msg)
}

func (m *AppModel) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc", "tab":
		m.focus = FocusTable
		m.search.Blur()
		return nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	value := m.search.Value()
	if value == before {
		return cmd
	}

	m.session.Query = m.session.Query.WithSearch(value)
	tag := m.debouncer.Push(value)
	tick := tea.Tick(m.debouncer.Delay, func(time.Time) tea.Msg {
		return debounceMsg{tag: tag}
	})
	return tea.Batch(cmd, tick)
}

func (m *AppModel) handleTableKey(msg tea.KeyMsg) tea.Cmd {
	rows := m.session.Visible()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if m.cursor < len(rows) {
			return m.open(rows[m.cursor])
		}
	case key.Matches(msg, m.keys.Favorite):
		if m.cursor < len(rows) {
			return m.toggleFavorite(rows[m.cursor])
		}
	}
	return nil
}

func (m *AppModel) handleFavoritesKey(msg tea.KeyMsg) tea.Cmd {
	favs := m.favorites.List()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.favCursor > 0 {
			m.favCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.favCursor < len(favs)-1 {
			m.favCursor++
		}
	case key.Matches(msg, m.keys.Open):
		if m.favCursor < len(favs) {
			// The stored snapshot is shown, not a fresh copy.
			return m.open(favs[m.favCursor])
		}
	case key.Matches(msg, m.keys.Remove), key.Matches(msg, m.keys.Favorite):
		if m.favCursor < len(favs) {
			cmd := m.toggleFavorite(favs[m.favCursor])
			m.clampFavCursor()
			if m.favorites.Len() == 0 {
				m.focus = FocusTable
			}
			return cmd
		}
	}
	return nil
}

func (m *AppModel) handleModalKey(msg tea.KeyMsg, sel character.Character) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Close), msg.String() == "q", msg.String() == "enter":
		m.session.Deselect()
	case key.Matches(msg, m.keys.Favorite):
		return m.toggleFavorite(sel)
	case key.Matches(msg, m.keys.Copy):
		if err := clipboard.WriteAll(detailText(sel)); err != nil {
			m.status = "Clipboard unavailable"
			m.log.Debug("clipboard write failed", zap.Error(err))
		} else {
			m.status = "✓ Copied!"
		}
		return clearStatusAfter(2 * time.Second)
	}
	return nil
}

func (m *AppModel) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	if sel := m.session.Selected(); sel != nil {
		if !m.insideModal(msg.X, msg.Y, *sel) {
			m.session.Deselect()
		}
	}
}

// apply runs a query transition and issues a fetch when one is due.
func (m *AppModel) apply(fn func(browse.Query) browse.Query) tea.Cmd {
	req, ok := m.session.Update(fn)
	m.clampCursor()
	if !ok {
		return nil
	}
	return m.issue(req)
}

// issue cancels the in-flight request and returns a command performing req.
func (m *AppModel) issue(req browse.Request) tea.Cmd {
	m.cancelInFlight()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	client := m.client
	m.log.Debug("fetching",
		zap.Uint64("seq", req.Seq),
		zap.Int("page", req.Filter.Page),
		zap.String("name", req.Filter.Name),
		zap.String("status", string(req.Filter.Status)),
		zap.String("species", req.Filter.Species))
	return func() tea.Msg {
		return fetchResultMsg{resp: browse.Fetch(ctx, client, req)}
	}
}

func (m *AppModel) cancelInFlight() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// open shows c in the detail overlay, loading its portrait if needed.
func (m *AppModel) open(c character.Character) tea.Cmd {
	m.session.Select(c)
	if !m.portraits || c.Image == "" || m.portraitErr[c.Image] {
		return nil
	}
	if _, ok := m.portraitCache.Get(c.Image, portraitCols, portraitRows); ok {
		return nil
	}
	client := m.client
	url := c.Image
	return func() tea.Msg {
		img, err := client.FetchImage(context.Background(), url)
		return portraitMsg{url: url, img: img, err: err}
	}
}

func (m *AppModel) toggleFavorite(c character.Character) tea.Cmd {
	if _, err := m.favorites.Toggle(c); err != nil {
		m.status = fmt.Sprintf("Could not save favorites: %v", err)
		return clearStatusAfter(4 * time.Second)
	}
	return nil
}

func (m *AppModel) clampCursor() {
	n := len(m.session.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *AppModel) clampFavCursor() {
	n := m.favorites.Len()
	if m.favCursor >= n {
		m.favCursor = n - 1
	}
	if m.favCursor < 0 {
		m.favCursor = 0
	}
}

// cycle returns the element after cur in values, wrapping around.
func cycle[T comparable](values []T, cur T) T {
	i := slices.Index(values, cur)
	return values[(i+1)%len(values)]
}
