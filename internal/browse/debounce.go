package browse

import "time"

// DefaultDebounce is the quiet period applied to search input.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer delays a rapidly changing string value until it stops changing.
//
// Push records a new value and returns a tag. The caller schedules a fire for
// that tag after Delay; Fire only yields the value when no newer Push happened
// in the meantime, so every Push cancels the pending one.
type Debouncer struct {
	Delay time.Duration

	tag     int
	pending string
}

// NewDebouncer returns a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{Delay: delay}
}

// Push records value as pending and returns the tag of its timer.
func (d *Debouncer) Push(value string) int {
	d.tag++
	d.pending = value
	return d.tag
}

// Fire resolves the timer identified by tag.
func (d *Debouncer) Fire(tag int) (string, bool) {
	if tag != d.tag {
		return "", false
	}
	return d.pending, true
}

// Tag returns the tag of the most recent Push.
func (d *Debouncer) Tag() int {
	return d.tag
}
