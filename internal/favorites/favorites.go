// Package favorites keeps the user's favorited characters, persisted as one
// JSON document in a kv.Store.
package favorites

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/f3rmion/morty/internal/character"
	"github.com/f3rmion/morty/internal/kv"
	"go.uber.org/zap"
)

// Key is the kv slot holding the serialized favorites.
const Key = "favorites"

// Store is an ordered set of character snapshots, unique by ID, in the order
// they were favorited.
type Store struct {
	kv    kv.Store
	log   *zap.Logger
	items []character.Character
}

// Load reads the favorites from store. Missing, unreadable or corrupt content
// yields an empty set.
func Load(store kv.Store, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{kv: store, log: log}

	raw, ok, err := store.Get(Key)
	if err != nil {
		log.Warn("reading favorites, starting empty", zap.Error(err))
		return s
	}
	if !ok || raw == "" {
		return s
	}

	var items []character.Character
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Warn("corrupt favorites, starting empty", zap.Error(err))
		return s
	}
	s.items = dedupe(items)
	return s
}

// Toggle removes c if a character with its ID is favorited and appends it
// otherwise, then persists the collection. added reports the direction.
// On a persistence error the in-memory change is kept.
func (s *Store) Toggle(c character.Character) (added bool, err error) {
	if i := s.index(c.ID); i >= 0 {
		s.items = slices.Delete(slices.Clone(s.items), i, i+1)
	} else {
		s.items = append(slices.Clone(s.items), c)
		added = true
	}

	if err := s.save(); err != nil {
		s.log.Error("persisting favorites", zap.Int("id", c.ID), zap.Error(err))
		return added, err
	}
	s.log.Debug("favorite toggled", zap.Int("id", c.ID), zap.Bool("added", added))
	return added, nil
}

// IsFavorite reports whether the character with id is favorited.
func (s *Store) IsFavorite(id int) bool {
	return s.index(id) >= 0
}

// Get returns the stored snapshot for id.
func (s *Store) Get(id int) (character.Character, bool) {
	if i := s.index(id); i >= 0 {
		return s.items[i], true
	}
	return character.Character{}, false
}

// List returns the favorites in favoriting order.
func (s *Store) List() []character.Character {
	return slices.Clone(s.items)
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) index(id int) int {
	return slices.IndexFunc(s.items, func(c character.Character) bool { return c.ID == id })
}

func (s *Store) save() error {
	items := s.items
	if items == nil {
		items = []character.Character{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshaling favorites: %w", err)
	}
	if err := s.kv.Set(Key, string(data)); err != nil {
		return fmt.Errorf("saving favorites: %w", err)
	}
	return nil
}

// dedupe keeps the first snapshot of every ID.
func dedupe(items []character.Character) []character.Character {
	seen := make(map[int]bool, len(items))
	out := items[:0]
	for _, c := range items {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out
}
