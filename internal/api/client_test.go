package api

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/f3rmion/morty/internal/character"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageBody = `{
  "info": {"count": 826, "pages": 42, "next": "https://rickandmortyapi.com/api/character?page=2", "prev": null},
  "results": [
    {"id": 1, "name": "Rick Sanchez", "status": "Alive", "species": "Human", "type": "", "gender": "Male",
     "origin": {"name": "Earth (C-137)", "url": "https://rickandmortyapi.com/api/location/1"},
     "location": {"name": "Citadel of Ricks", "url": "https://rickandmortyapi.com/api/location/3"},
     "image": "https://rickandmortyapi.com/api/character/avatar/1.jpeg",
     "episode": ["https://rickandmortyapi.com/api/episode/1"],
     "url": "https://rickandmortyapi.com/api/character/1", "created": "2017-11-04T18:48:46.250Z"}
  ]
}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(Options{BaseURL: srv.URL + "/api/"})
	require.NoError(t, err)
	t.Cleanup(c.httpClient.CloseIdleConnections)
	return c
}

func TestListCharacters(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(pageBody))
	})

	page, err := c.ListCharacters(context.Background(), character.Filter{
		Page:    3,
		Name:    "rick sanchez",
		Status:  character.StatusAlive,
		Species: "Human",
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/character", gotPath)
	assert.Equal(t, map[string][]string{
		"page":    {"3"},
		"name":    {"rick sanchez"},
		"status":  {"alive"},
		"species": {"Human"},
	}, gotQuery)

	assert.Equal(t, 42, page.Info.Pages)
	assert.Nil(t, page.Info.Prev)
	require.Len(t, page.Results, 1)
	rick := page.Results[0]
	assert.Equal(t, "Rick Sanchez", rick.Name)
	assert.Equal(t, "Earth (C-137)", rick.Origin.Name)
	assert.Equal(t, "Citadel of Ricks", rick.Location.Name)
	assert.Len(t, rick.Episode, 1)
}

func TestListCharactersOmitsEmptyParams(t *testing.T) {
	var raw string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw = r.URL.RawQuery
		_, _ = w.Write([]byte(pageBody))
	})

	_, err := c.ListCharacters(context.Background(), character.Filter{})
	require.NoError(t, err)
	assert.Equal(t, "page=1", raw)
}

func TestListCharactersNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"There is nothing here"}`))
	})

	_, err := c.ListCharacters(context.Background(), character.Filter{Page: 1, Name: "Zzzzz"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, character.ErrNotFound))
}

func TestListCharactersServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"upstream down"}`))
	})

	_, err := c.ListCharacters(context.Background(), character.Filter{Page: 1})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))

	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusBadGateway, serr.Code)
	assert.Equal(t, "upstream down", serr.Message)
}

func TestListCharactersMalformed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"info": [`))
	})

	_, err := c.ListCharacters(context.Background(), character.Filter{Page: 1})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestListCharactersCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(pageBody))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListCharacters(ctx, character.Filter{Page: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestGetCharacter(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/character/2" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"id": 2, "name": "Morty Smith", "status": "Alive"}`))
	})

	ch, err := c.GetCharacter(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Morty Smith", ch.Name)

	_, err = c.GetCharacter(context.Background(), 9999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFetchImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		img := image.NewRGBA(image.Rect(0, 0, 4, 4))
		img.Set(1, 1, color.RGBA{R: 255, A: 255})
		w.Header().Set("Content-Type", "image/png")
		_ = png.Encode(w, img)
	})

	img, err := c.FetchImage(context.Background(), c.baseURL+"/character/avatar/1.png")
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
}

func TestThrottle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(pageBody))
	}))
	defer srv.Close()

	c, err := NewClient(Options{BaseURL: srv.URL, RequestsPerSecond: 20})
	require.NoError(t, err)
	defer c.httpClient.CloseIdleConnections()

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := c.ListCharacters(context.Background(), character.Filter{Page: 1})
		require.NoError(t, err)
	}
	// Burst of one: the second and third request each wait ~50ms.
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient(Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Nil(t, c.limiter)

	_, err = NewClient(Options{BaseURL: "not a url"})
	assert.Error(t, err)
}
