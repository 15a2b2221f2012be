package tui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/morty/internal/browse"
	"github.com/f3rmion/morty/internal/character"
	"github.com/f3rmion/morty/internal/favorites"
	"github.com/f3rmion/morty/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	mu      sync.Mutex
	filters []character.Filter
	list    func(f character.Filter) (*character.Page, error)
}

func (c *stubClient) ListCharacters(ctx context.Context, f character.Filter) (*character.Page, error) {
	c.mu.Lock()
	c.filters = append(c.filters, f)
	c.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.list(f)
}

func (c *stubClient) FetchImage(ctx context.Context, url string) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

func (c *stubClient) last() character.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters[len(c.filters)-1]
}

// roster returns a full remote page whose names carry prefix.
func roster(prefix string, pages int) *character.Page {
	p := &character.Page{Info: character.PageInfo{Count: pages * 20, Pages: pages}}
	for i := 0; i < 20; i++ {
		p.Results = append(p.Results, character.Character{
			ID:      i + 1,
			Name:    fmt.Sprintf("%s %02d", prefix, i+1),
			Species: "Human",
			Status:  "Alive",
		})
	}
	return p
}

func newTestApp(t *testing.T, client *stubClient) AppModel {
	t.Helper()
	favs := favorites.Load(kv.NewMemory(), nil)
	m := NewApp(client, favs, Options{PageSize: 10})
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	require.NotNil(t, m.initFetch)
	return run(t, m, m.initFetch)
}

// send delivers msg and returns the updated model, discarding commands.
func send(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(AppModel)
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

// run executes a fetch command and delivers its result.
func run(t *testing.T, m AppModel, cmd tea.Cmd) AppModel {
	t.Helper()
	msg := cmd()
	_, ok := msg.(fetchResultMsg)
	require.True(t, ok, "expected fetch result, got %T", msg)
	return send(t, m, msg)
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitialFetchRendersFirstPage(t *testing.T) {
	client := &stubClient{list: func(f character.Filter) (*character.Page, error) {
		return roster("Rick", 6), nil
	}}
	m := newTestApp(t, client)

	assert.Equal(t, character.Filter{Page: 1}, client.last())
	assert.Len(t, m.Session().Visible(), 10)
	assert.False(t, m.Session().Loading())

	view := m.View()
	assert.Contains(t, view, "1 / 12")
	assert.Contains(t, view, "Rick 01")
	assert.NotContains(t, view, "Rick 11")
}

func TestDebouncedSearchFetchesLatestValue(t *testing.T) {
	client := &stubClient{list: func(f character.Filter) (*character.Page, error) {
		return roster("Rick", 2), nil
	}}
	m := newTestApp(t, client)
	m = send(t, m, keyPress("/"))
	require.Equal(t, FocusSearch, m.focus)

	for _, r := range "Rick" {
		m = send(t, m, keyPress(string(r)))
	}
	stale := m.debouncer.Tag()
	m = send(t, m, keyPress("y"))
	latest := m.debouncer.Tag()
	assert.Equal(t, "Ricky", m.Session().Query.Search)

	m, cmd := update(t, m, debounceMsg{tag: stale})
	assert.Nil(t, cmd, "superseded quiet period must not fetch")
	assert.Equal(t, "", m.Session().Query.Debounced)

	m, cmd = update(t, m, debounceMsg{tag: latest})
	require.NotNil(t, cmd)
	m = run(t, m, cmd)

	assert.Equal(t, character.Filter{Page: 1, Name: "Ricky"}, client.last())
	assert.Equal(t, "Ricky", m.Session().Query.Debounced)
	// Prefix filtering leaves no "Rick NN" name starting with "Ricky".
	assert.Empty(t, m.Session().Visible())
}

func TestStaleResponseIsDropped(t *testing.T) {
	client := &stubClient{list: func(f character.Filter) (*character.Page, error) {
		return roster(string(f.Status), 1), nil
	}}
	m := newTestApp(t, client)

	m, first := update(t, m, keyPress("s"))
	require.NotNil(t, first)
	assert.Equal(t, character.StatusAlive, m.Session().Query.Status)

	m, second := update(t, m, keyPress("s"))
	require.NotNil(t, second)
	assert.Equal(t, character.StatusDead, m.Session().Query.Status)

	m = run(t, m, second)
	m = run(t, m, first)

	rows := m.Session().Visible()
	require.NotEmpty(t, rows)
	assert.Equal(t, "dead 01", rows[0].Name)
	assert.Empty(t, m.Session().Err())
}

func TestPageSizeChangeResetsPage(t *testing.T) {
	client := &stubClient{list: func(f character.Filter) (*character.Page, error) {
		return roster("Morty", 6), nil
	}}
	m := newTestApp(t, client)

	m, cmd := update(t, m, keyPress("l"))
	assert.Nil(t, cmd, "page 2 of size 10 is still remote page 1")
	assert.Equal(t, 2, m.Session().Query.Page)
	assert.Equal(t, "Morty 11", m.Session().Visible()[0].Name)

	m, cmd = update(t, m, keyPress("l"))
	require.NotNil(t, cmd)
	m = run(t, m, cmd)
	assert.Equal(t, 2, client.last().Page)
	assert.Equal(t, 3, m.Session().Query.Page)

	m, cmd = update(t, m, keyPress("z"))
	require.NotNil(t, cmd)
	m = run(t, m, cmd)
	assert.Equal(t, 15, m.Session().Query.PageSize)
	assert.Equal(t, 1, m.Session().Query.Page)
	assert.Equal(t, 1, client.last().Page)
	assert.Len(t, m.Session().Visible(), 15)
}

func TestSortDoesNotRefetch(t *testing.T) {
	client := &stubClient{list: func(f character.Filter) (*character.Page, error) {
		return roster("Summer", 1), nil
	}}
	m := newTestApp(t, client)
	calls := len(client.filters)

	m, cmd := update(t, m, keyPress("o"))
	assert.Nil(t, cmd)
	assert.Len(t, client.filters, calls)
	assert.Equal(t, "Summer 20", m.Session().Visible()[0].Name)
}

func TestErrorMessageReplacesTable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", character.ErrNotFound, browse.MsgNoMatch},
		{"other failure", errors.New("connection refused"), browse.MsgFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubClient{list: func(f character.Filter) (*character.Page, error) {
				return nil, tt.err
			}}
			m := newTestApp(t, client)

			view := m.View()
			assert.Contains(t, view, tt.want)
			assert.NotContains(t, view, "Name")
			assert.Contains(t, view, "1 / 1")
		})
	}
}

func TestModalOpenAndClose(t *testing.T) {
	client := &stubClient{list: func(f character.Filter) (*character.Page, error) {
		return roster("Beth", 1), nil
	}}
	m := newTestApp(t, client)

	m = send(t, m, keyPress("j"))
	m = send(t, m, keyPress("enter"))
	sel := m.Session().Selected()
	require.NotNil(t, sel)
	assert.Equal(t, "Beth 02", sel.Name)
	assert.Contains(t, m.View(), "Location")

	m = send(t, m, keyPress("esc"))
	assert.Nil(t, m.Session().Selected())

	// A new fetch cycle closes the overlay.
	m = send(t, m, keyPress("enter"))
	require.NotNil(t, m.Session().Selected())
	tag := m.debouncer.Push("Beth")
	m, cmd := update(t, m, debounceMsg{tag: tag})
	require.NotNil(t, cmd)
	assert.Nil(t, m.Session().Selected())
}

func TestClickOutsideModalCloses(t *testing.T) {
	client := &stubClient{list: func(f character.Filter) (*character.Page, error) {
		return roster("Jerry", 1), nil
	}}
	m := newTestApp(t, client)
	m = send(t, m, keyPress("enter"))
	require.NotNil(t, m.Session().Selected())

	click := func(x, y int) tea.MouseMsg {
		return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	}

	m = send(t, m, click(60, 20))
	assert.NotNil(t, m.Session().Selected(), "click on the overlay keeps it open")

	m = send(t, m, click(0, 0))
	assert.Nil(t, m.Session().Selected())
}

func TestFavoriteToggleAndRemove(t *testing.T) {
	client := &stubClient{list: func(f character.Filter) (*character.Page, error) {
		return roster("Squanchy", 1), nil
	}}
	m := newTestApp(t, client)

	m = send(t, m, keyPress("f"))
	require.Equal(t, 1, m.favorites.Len())
	assert.True(t, m.favorites.IsFavorite(1))
	assert.Contains(t, m.View(), "Favorites (1)")

	// Favoriting again from the table removes it.
	m = send(t, m, keyPress("f"))
	assert.Equal(t, 0, m.favorites.Len())

	m = send(t, m, keyPress("j"))
	m = send(t, m, keyPress("f"))
	m = send(t, m, keyPress("tab"))
	require.Equal(t, FocusFavorites, m.focus)

	m = send(t, m, keyPress("enter"))
	require.NotNil(t, m.Session().Selected())
	assert.Equal(t, 2, m.Session().Selected().ID)
	m = send(t, m, keyPress("esc"))

	m = send(t, m, keyPress("x"))
	assert.Equal(t, 0, m.favorites.Len())
	assert.Equal(t, FocusTable, m.focus)
	assert.NotContains(t, m.View(), "Favorites (")
}

func TestHelpOverlay(t *testing.T) {
	client := &stubClient{list: func(f character.Filter) (*character.Page, error) {
		return roster("Birdperson", 1), nil
	}}
	m := newTestApp(t, client)

	m = send(t, m, keyPress("?"))
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m, cmd := update(t, m, keyPress("q"))
	assert.Nil(t, cmd, "the first key only closes help")
	assert.NotContains(t, m.View(), "Keyboard Shortcuts")
}

func TestCycleWraps(t *testing.T) {
	assert.Equal(t, character.StatusAlive, cycle(character.Statuses, character.StatusAny))
	assert.Equal(t, character.StatusAny, cycle(character.Statuses, character.StatusUnknown))
	assert.Equal(t, "Human", cycle(character.Species, ""))
	assert.Equal(t, "", cycle(character.Species, "Robot"))
}
