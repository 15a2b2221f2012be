package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/f3rmion/morty/internal/api"
	"github.com/f3rmion/morty/internal/character"
	"github.com/f3rmion/morty/internal/logging"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the details of one character",
	Long: `Show a character's species, status, gender, origin, last known location
and episode count.

Example:
  morty show 1`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
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

	client, err := newClient(cfg, log)
	if err != nil {
		return err
	}

	c, err := client.GetCharacter(context.Background(), id)
	if errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("character %d not found", id)
	}
	if err != nil {
		return err
	}

	printCharacter(*c)
	return nil
}

func printCharacter(c character.Character) {
	orUnknown := func(s string) string {
		if s == "" {
			return "unknown"
		}
		return s
	}

	fmt.Printf("%s (#%d)\n\n", c.Name, c.ID)
	fmt.Printf("  Species:  %s\n", orUnknown(c.Species))
	if c.Type != "" {
		fmt.Printf("  Type:     %s\n", c.Type)
	}
	fmt.Printf("  Status:   %s\n", orUnknown(c.Status))
	fmt.Printf("  Gender:   %s\n", orUnknown(c.Gender))
	fmt.Printf("  Origin:   %s\n", orUnknown(c.Origin.Name))
	fmt.Printf("  Location: %s\n", orUnknown(c.Location.Name))
	fmt.Printf("  Episodes: %d\n", len(c.Episode))
	if c.Image != "" {
		fmt.Printf("  Image:    %s\n", c.Image)
	}
}
