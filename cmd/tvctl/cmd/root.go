package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rustyeddy/tradervue-go/internal/config"
	"github.com/rustyeddy/tradervue-go/tradervue"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tvctl",
	Short: "Command line access to a Tradervue trade journal",
	Long: `tvctl talks to the Tradervue REST API from the command line.

It provides commands for:
  - Searching and inspecting trades, executions and comments
  - Managing journal entries and notes
  - Importing broker executions and watching the import complete
  - Listing and managing organization users

Credentials come from a YAML config file, the environment, or a .env file
(TRADERVUE_USERNAME / TRADERVUE_PASSWORD).`,
	SilenceUsage: true,
}

var (
	cfgFile     string
	verboseHTTP bool
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", defaultConfigPath(), "config file")
	rootCmd.PersistentFlags().BoolVar(&verboseHTTP, "verbose-http", false, "dump HTTP requests and responses")
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.tradervue.yaml"
}

// newClient loads the configuration and builds the API client every
// subcommand uses.
func newClient() (*tradervue.Client, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	opts := []tradervue.Option{tradervue.WithLogger(log)}
	if cfg.BaseURL != "" {
		opts = append(opts, tradervue.WithBaseURL(cfg.BaseURL))
	}
	if cfg.TargetUser != "" {
		opts = append(opts, tradervue.WithTargetUser(cfg.TargetUser))
	}
	if cfg.VerboseHTTP || verboseHTTP {
		log.SetLevel(logrus.DebugLevel)
		opts = append(opts, tradervue.WithVerboseHTTP())
	}

	return tradervue.New(cfg.Username, cfg.Password, cfg.UserAgent, opts...), nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
