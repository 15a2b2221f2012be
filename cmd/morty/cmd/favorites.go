package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/f3rmion/morty/internal/logging"
	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "Manage favorite characters",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite characters in the order they were added",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesList,
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Add a character to favorites, or remove it if already there",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesToggle,
}

func init() {
	rootCmd.AddCommand(favoritesCmd)
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesToggleCmd)
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := logging.NewConsole(verbose())
	if err != nil {
		return err
	}
	defer log.Sync()

	favs, store, err := openFavorites(cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	if favs.Len() == 0 {
		fmt.Println("No favorites yet.")
		return nil
	}
	printRows(favs.List(), favs)
	return nil
}

func runFavoritesToggle(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return fmt.Errorf("invalid character id %q", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := logging.NewConsole(verbose())
	if err != nil {
		return err
	}
	defer log.Sync()

	favs, store, err := openFavorites(cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	// Removal works offline from the stored snapshot.
	c, ok := favs.Get(id)
	if !ok {
		client, err := newClient(cfg, log)
		if err != nil {
			return err
		}
		fetched, err := client.GetCharacter(context.Background(), id)
		if err != nil {
			return err
		}
		c = *fetched
	}

	added, err := favs.Toggle(c)
	if err != nil {
		return err
	}
	if added {
		fmt.Printf("★ Added %s to favorites\n", c.Name)
	} else {
		fmt.Printf("Removed %s from favorites\n", c.Name)
	}
	return nil
}
