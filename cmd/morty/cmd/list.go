package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/f3rmion/morty/internal/browse"
	"github.com/f3rmion/morty/internal/character"
	"github.com/f3rmion/morty/internal/favorites"
	"github.com/f3rmion/morty/internal/logging"
	"github.com/f3rmion/morty/internal/paging"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of characters",
	Long: `Print one page of characters using the same search, filter, sort and
pagination rules as the interactive browser.

Example:
  morty list --search rick --status alive
  morty list --species Alien --sort desc --page-size 5 --page 3`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	addQueryFlags(listCmd)
}

func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().String("search", "", "name prefix to search for")
	cmd.Flags().String("status", "", "status filter: alive, dead or unknown")
	cmd.Flags().String("species", "", "species filter: Human, Alien or Robot")
	cmd.Flags().String("sort", string(browse.SortAsc), "name order: asc or desc")
	cmd.Flags().Int("page-size", 0, "rows per page: 5, 10, 15 or 20 (default from config)")
	cmd.Flags().Int("page", 1, "page to print")
}

// parseQuery builds a browse query from the list flags.
func parseQuery(cmd *cobra.Command, defaultPageSize int) (browse.Query, error) {
	search, _ := cmd.Flags().GetString("search")
	statusArg, _ := cmd.Flags().GetString("status")
	speciesArg, _ := cmd.Flags().GetString("species")
	sortArg, _ := cmd.Flags().GetString("sort")
	pageSize, _ := cmd.Flags().GetInt("page-size")
	page, _ := cmd.Flags().GetInt("page")

	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if !paging.ValidPageSize(pageSize) {
		return browse.Query{}, fmt.Errorf("invalid page size %d (allowed %v)", pageSize, paging.PageSizes)
	}

	status, ok := character.ParseStatus(statusArg)
	if !ok {
		return browse.Query{}, fmt.Errorf("invalid status %q", statusArg)
	}

	species, ok := parseSpecies(speciesArg)
	if !ok {
		return browse.Query{}, fmt.Errorf("invalid species %q (allowed %s)", speciesArg, strings.Join(character.Species[1:], ", "))
	}

	var order browse.SortOrder
	switch strings.ToLower(sortArg) {
	case "", "asc", "a-z":
		order = browse.SortAsc
	case "desc", "z-a":
		order = browse.SortDesc
	default:
		return browse.Query{}, fmt.Errorf("invalid sort %q", sortArg)
	}

	if page < 1 {
		return browse.Query{}, fmt.Errorf("invalid page %d", page)
	}

	q := browse.NewQuery(pageSize).
		WithSearch(search).
		WithDebouncedSearch(search).
		WithStatus(status).
		WithSpecies(species).
		WithSort(order)
	q.Page = page
	return q, nil
}

func parseSpecies(s string) (string, bool) {
	for _, sp := range character.Species {
		if strings.EqualFold(sp, s) {
			return sp, true
		}
	}
	return "", false
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := logging.NewConsole(verbose())
	if err != nil {
		return err
	}
	defer log.Sync()

	q, err := parseQuery(cmd, cfg.PageSize)
	if err != nil {
		return err
	}

	client, err := newClient(cfg, log)
	if err != nil {
		return err
	}

	session := browse.NewSession(q)
	req, _ := session.Begin()
	session.Complete(browse.Fetch(context.Background(), client, req))

	if msg := session.Err(); msg != "" {
		fmt.Fprintln(os.Stderr, msg)
		return nil
	}

	var favs *favorites.Store
	if f, store, err := openFavorites(cfg, log); err == nil {
		defer store.Close()
		favs = f
	}

	printRows(session.Visible(), favs)
	fmt.Printf("\nPage %d / %d\n", session.Query.Page, session.TotalPages())
	return nil
}

func printRows(rows []character.Character, favs *favorites.Store) {
	const nameWidth = 32
	fmt.Printf("    %-5s %s %-14s %s\n", "ID", runewidth.FillRight("Name", nameWidth), "Species", "Status")
	for _, c := range rows {
		star := " "
		if favs != nil && favs.IsFavorite(c.ID) {
			star = "★"
		}
		name := runewidth.FillRight(runewidth.Truncate(c.Name, nameWidth, "…"), nameWidth)
		fmt.Printf("%s   %-5d %s %-14s %s\n", star, c.ID, name, c.Species, c.Status)
	}
}
