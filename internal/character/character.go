// Package character provides the core types of the Rick and Morty character API.
package character

import (
	"errors"
	"strings"
)

// Status is a character's life status as reported by the provider.
type Status string

const (
	StatusAny     Status = ""        // No status filter
	StatusAlive   Status = "alive"   // Filter value for living characters
	StatusDead    Status = "dead"    // Filter value for dead characters
	StatusUnknown Status = "unknown" // Filter value when the provider does not know
)

// Statuses lists the status filter values in the order the UI cycles through them.
var Statuses = []Status{StatusAny, StatusAlive, StatusDead, StatusUnknown}

// Species lists the species filter values offered by the UI. Any other string is
// accepted by the provider as well.
var Species = []string{"", "Human", "Alien", "Robot"}

// Label returns a human readable name for a status filter value.
func (s Status) Label() string {
	switch s {
	case StatusAny:
		return "All"
	case StatusAlive:
		return "Alive"
	case StatusDead:
		return "Dead"
	case StatusUnknown:
		return "Unknown"
	}
	return string(s)
}

// ParseStatus normalises user input into a status filter value.
// The second result is false for unrecognised input.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "any":
		return StatusAny, true
	case "alive":
		return StatusAlive, true
	case "dead":
		return StatusDead, true
	case "unknown":
		return StatusUnknown, true
	}
	return StatusAny, false
}

// Ref is a named reference to another provider resource (origin, location).
type Ref struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Character is a single character as returned by the provider.
type Character struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Status   string   `json:"status"`  // "Alive", "Dead" or "unknown"
	Species  string   `json:"species"` // e.g. "Human", "Alien"
	Type     string   `json:"type"`    // Subspecies, often empty
	Gender   string   `json:"gender"`
	Origin   Ref      `json:"origin"`
	Location Ref      `json:"location"` // Last known location
	Image    string   `json:"image"`    // Avatar URL
	Episode  []string `json:"episode"`  // Episode resource URLs
	URL      string   `json:"url"`
	Created  string   `json:"created"`
}

// PageInfo is the pagination metadata returned alongside a result page.
type PageInfo struct {
	Count int     `json:"count"` // Total matching characters
	Pages int     `json:"pages"` // Total remote pages
	Next  *string `json:"next"`
	Prev  *string `json:"prev"`
}

// Page is one remote page of characters.
type Page struct {
	Info    PageInfo    `json:"info"`
	Results []Character `json:"results"`
}

// Filter holds the query parameters of a collection request.
// Empty fields are omitted from the request.
type Filter struct {
	Page    int
	Name    string
	Status  Status
	Species string
}

// HasNamePrefix reports whether the character's name starts with prefix,
// ignoring case. An empty prefix matches every name.
func (c Character) HasNamePrefix(prefix string) bool {
	return strings.HasPrefix(strings.ToLower(c.Name), strings.ToLower(prefix))
}

// ErrNotFound reports that the provider has no characters matching a request.
var ErrNotFound = errors.New("no matching characters")
