// Package portrait renders character avatars as colored half-block art.
package portrait

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// Render draws img into cols x rows terminal cells. Each cell carries two
// vertical pixels: the upper one as foreground of '▀', the lower one as
// background.
func Render(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}

	// Scale down to target size (rows*2 because half-blocks)
	scaled := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := hex(scaled.RGBAAt(col, row*2))
			bottom := hex(scaled.RGBAAt(col, row*2+1))
			cell := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀")
			b.WriteString(cell)
		}
		if row < rows-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Cache memoizes rendered portraits by image URL and size.
type Cache struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]string)}
}

func cacheKey(url string, cols, rows int) string {
	return fmt.Sprintf("%s@%dx%d", url, cols, rows)
}

// Get returns the cached rendering for url at the given size.
func (c *Cache) Get(url string, cols, rows int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[cacheKey(url, cols, rows)]
	return s, ok
}

// Put renders img and stores the result under url.
func (c *Cache) Put(url string, img image.Image, cols, rows int) string {
	s := Render(img, cols, rows)
	c.mu.Lock()
	c.entries[cacheKey(url, cols, rows)] = s
	c.mu.Unlock()
	return s
}
