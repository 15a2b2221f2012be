package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/morty/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize morty configuration",
	Long: `Write a config.yaml with the default settings to your config directory.

Settings can also be overridden with MORTY_* environment variables,
e.g. MORTY_PAGE_SIZE=20.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	path := filepath.Join(configDir, config.FileName)

	// Check if config already exists
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.EnsureDir(configDir); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	cfg := config.Default(configDir)
	if err := config.Save(path, &cfg); err != nil {
		return err
	}

	fmt.Printf("Created %s\n\n", path)
	fmt.Println("Next steps:")
	fmt.Println("  1. Edit the file to change the page size, search delay or storage paths")
	fmt.Println("  2. Run 'morty' to browse characters")
	return nil
}
