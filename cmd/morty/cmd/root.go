// Package cmd contains all CLI commands for morty.
package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/morty/internal/api"
	"github.com/f3rmion/morty/internal/config"
	"github.com/f3rmion/morty/internal/favorites"
	"github.com/f3rmion/morty/internal/kv"
	"github.com/f3rmion/morty/internal/logging"
	"github.com/f3rmion/morty/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "morty",
	Short: "Browse Rick and Morty characters from the terminal",
	Long: `morty is a terminal browser for the Rick and Morty character API.

Search by name, filter by status and species, sort by name, page through
results and keep a list of favorites that survives restarts.

Running 'morty' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/morty)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig resolves the config directory from the flag or the default.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

func verbose() bool {
	return viper.GetBool("verbose")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(getConfigDir())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func newClient(cfg *config.Config, log *zap.Logger) (*api.Client, error) {
	return api.NewClient(api.Options{
		BaseURL:           cfg.APIBaseURL,
		Timeout:           cfg.HTTPTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Logger:            log,
	})
}

// openFavorites opens the favorites database. The caller closes the returned
// store.
func openFavorites(cfg *config.Config, log *zap.Logger) (*favorites.Store, kv.Store, error) {
	store, err := kv.OpenSQLite(cfg.StorePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening favorites: %w", err)
	}
	return favorites.Load(store, log), store, nil
}

// runTUI launches the interactive browser.
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogFile, verbose())
	if err != nil {
		return err
	}
	defer log.Sync()

	client, err := newClient(cfg, log.Named("api"))
	if err != nil {
		return err
	}

	favs, store, err := openFavorites(cfg, log.Named("favorites"))
	if err != nil {
		return err
	}
	defer store.Close()

	log.Info("starting browser",
		zap.String("api", cfg.APIBaseURL),
		zap.Int("page_size", cfg.PageSize),
		zap.String("store", cfg.StorePath))

	app := tui.NewApp(client, favs, tui.Options{
		PageSize:  cfg.PageSize,
		Debounce:  cfg.Debounce,
		Portraits: cfg.Portraits,
		Logger:    log.Named("tui"),
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
