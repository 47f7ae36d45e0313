package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Veraticus/playdash/internal/cli"
	"github.com/Veraticus/playdash/internal/common"
	"github.com/Veraticus/playdash/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "playdash",
		Short: "📱 Google Play Store apps dashboard",
		Long: `playdash explores a cleaned Google Play Store dataset: filter apps by category,
type, content rating and install band, inspect summary metrics and charts, and ask a
pre-trained model for a rating estimate.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, cfgFile)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/playdash/config.yaml)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")
	flags.String("data", "", "path to the cleaned dataset CSV")
	flags.String("source", "", "dataset source (csv, sqlite)")
	flags.String("db", "", "path to the SQLite snapshot")
	flags.String("model", "", "path to the model artifact")
	flags.String("encodings", "", "path to an encoding table (yaml or json)")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("data.path", flags.Lookup("data"))
	_ = viper.BindPFlag("data.source", flags.Lookup("source"))
	_ = viper.BindPFlag("database.path", flags.Lookup("db"))
	_ = viper.BindPFlag("model.path", flags.Lookup("model"))
	_ = viper.BindPFlag("encodings.path", flags.Lookup("encodings"))

	config.SetDefaults(viper.GetViper())

	// Add commands
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(chartsCmd())
	rootCmd.AddCommand(predictCmd())
	rootCmd.AddCommand(encodingsCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := newRootCmd().ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(common.Describe(err)))
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, cfgFile string) error {
	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(fmt.Sprintf("%s/.config/playdash", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables, e.g. PLAYDASH_DATA_PATH
	viper.SetEnvPrefix("PLAYDASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	// Set up logging
	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	if err := common.SetupLogger(cmd.ErrOrStderr(), level, viper.GetString("logging.format")); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	slog.Debug("Configuration loaded", "config_file", viper.ConfigFileUsed())
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "playdash %s\n", version)
		},
	}
}
