package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/morty/internal/character"
	"github.com/mattn/go-runewidth"
)

// Table column widths in cells.
const (
	colStar    = 2
	colSpecies = 14
	colStatus  = 10
	minName    = 16
	maxName    = 36
)

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if sel := m.session.Selected(); sel != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderModal(*sel))
	}

	var sections []string
	sections = append(sections, TitleStyle.Render("Rick and Morty Characters"))
	sections = append(sections, m.renderFilters())
	sections = append(sections, "")

	if msg := m.session.Err(); msg != "" {
		sections = append(sections, ErrorStyle.Width(m.tableWidth()).Render(msg))
	} else {
		sections = append(sections, m.renderTable())
	}

	sections = append(sections, "")
	sections = append(sections, m.renderPagination())

	if m.favorites.Len() > 0 {
		sections = append(sections, "")
		sections = append(sections, m.renderFavorites())
	}

	if m.status != "" {
		sections = append(sections, "", StatusStyle.Render(m.status))
	}

	sections = append(sections, "", m.help.View(m.keys))

	return ContentStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m AppModel) renderFilters() string {
	q := m.session.Query

	box := SearchBoxStyle
	if m.focus == FocusSearch {
		box = SearchBoxActiveStyle
	}
	search := box.Render(m.search.View())

	species := q.Species
	if species == "" {
		species = "All Species"
	}

	filter := func(label, value string) string {
		return FilterLabelStyle.Render(label+" ") + FilterValueStyle.Render(value)
	}

	controls := lipgloss.JoinHorizontal(lipgloss.Center,
		filter("status", q.Status.Label()), "  ",
		filter("species", species), "  ",
		filter("sort", q.Sort.Label()), "  ",
		filter("per page", strconv.Itoa(q.PageSize)),
	)

	line := lipgloss.JoinHorizontal(lipgloss.Center, search, "  ", controls)
	if m.session.Loading() {
		line = lipgloss.JoinHorizontal(lipgloss.Center, line, "  ", m.spinner.View())
	}
	return line
}

func (m AppModel) nameWidth() int {
	w := m.width - 4 - colStar - colSpecies - colStatus - 3
	if w > maxName {
		return maxName
	}
	if w < minName {
		return minName
	}
	return w
}

func (m AppModel) tableWidth() int {
	return colStar + m.nameWidth() + colSpecies + colStatus + 3
}

func cell(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

func (m AppModel) renderTable() string {
	nw := m.nameWidth()
	header := strings.Join([]string{
		cell("", colStar), cell("Name", nw), cell("Species", colSpecies), cell("Status", colStatus),
	}, " ")

	lines := []string{TableHeaderStyle.Render(header)}

	rows := m.session.Visible()
	for i, c := range rows {
		star := StarStyle.Render(cell("☆", colStar))
		if m.favorites.IsFavorite(c.ID) {
			star = StarActiveStyle.Render(cell("★", colStar))
		}
		text := strings.Join([]string{
			cell(c.Name, nw), cell(c.Species, colSpecies), cell(c.Status, colStatus),
		}, " ")

		style := TableRowStyle
		if i == m.cursor && m.focus == FocusTable {
			style = TableRowSelectedStyle
		}
		lines = append(lines, star+" "+style.Render(text))
	}

	if len(rows) == 0 && !m.session.Loading() {
		lines = append(lines, HelpStyle.Render("No characters on this page."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m AppModel) renderPagination() string {
	prev := ButtonDisabledStyle.Render("◀ Prev")
	if m.session.HasPrev() {
		prev = ButtonStyle.Render("◀ Prev")
	}
	next := ButtonDisabledStyle.Render("Next ▶")
	if m.session.HasNext() {
		next = ButtonStyle.Render("Next ▶")
	}
	indicator := PageIndicatorStyle.Render(fmt.Sprintf("%d / %d", m.session.Query.Page, m.session.TotalPages()))
	return lipgloss.JoinHorizontal(lipgloss.Center, prev, indicator, next)
}

func (m AppModel) renderFavorites() string {
	lines := []string{SubtitleStyle.Render(fmt.Sprintf("Favorites (%d)", m.favorites.Len()))}
	for i, c := range m.favorites.List() {
		style := FavoriteItemStyle
		if m.focus == FocusFavorites && i == m.favCursor {
			style = FavoriteItemActiveStyle
		}
		lines = append(lines, style.Render(c.Name)+" "+RemoveStyle.Render("✕"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderModal renders the detail overlay for c.
func (m AppModel) renderModal(c character.Character) string {
	closeHint := ModalCloseStyle.Render("✕ esc")

	field := func(label, value string) string {
		if value == "" {
			value = "unknown"
		}
		return LabelStyle.Render(label) + ValueStyle.Render(value)
	}

	details := []string{
		ModalNameStyle.Render(c.Name),
		field("Species", c.Species),
		field("Status", c.Status),
		field("Gender", c.Gender),
		field("Origin", c.Origin.Name),
		field("Location", c.Location.Name),
		field("Episodes", strconv.Itoa(len(c.Episode))),
	}
	if c.Type != "" {
		details = append(details, field("Type", c.Type))
	}

	fav := "☆ Add to favorites"
	if m.favorites.IsFavorite(c.ID) {
		fav = "★ Remove from favorites"
	}
	details = append(details, "", HelpStyle.Render("f "+fav+" · y copy"))

	body := lipgloss.JoinVertical(lipgloss.Left, details...)
	if art, ok := m.portraitCache.Get(c.Image, portraitCols, portraitRows); ok && m.portraits {
		body = lipgloss.JoinHorizontal(lipgloss.Top, art, "  ", body)
	}

	content := lipgloss.JoinVertical(lipgloss.Right, closeHint, body)
	return ModalStyle.Render(content)
}

// insideModal reports whether the cell (x, y) lies on the centered overlay.
func (m AppModel) insideModal(x, y int, c character.Character) bool {
	box := m.renderModal(c)
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	left := (m.width - w) / 2
	top := (m.height - h) / 2
	return x >= left && x < left+w && y >= top && y < top+h
}

// detailText is the plain-text form copied to the clipboard.
func detailText(c character.Character) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (#%d)\n", c.Name, c.ID)
	fmt.Fprintf(&b, "Species: %s\n", c.Species)
	fmt.Fprintf(&b, "Status: %s\n", c.Status)
	fmt.Fprintf(&b, "Gender: %s\n", c.Gender)
	fmt.Fprintf(&b, "Origin: %s\n", c.Origin.Name)
	fmt.Fprintf(&b, "Location: %s\n", c.Location.Name)
	fmt.Fprintf(&b, "Episodes: %d", len(c.Episode))
	return b.String()
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	h := m.help
	h.ShowAll = true
	content := lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("Keyboard Shortcuts"),
		"",
		h.View(m.keys),
		"",
		HelpStyle.Render("Press any key to close"),
	)
	box := ModalStyle.Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
