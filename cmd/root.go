// Package cmd provides CLI commands for marc2bib.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

func setupLogger() {
	logLevel := strings.ToUpper(viper.GetString("log_level"))
	if logLevel == "" {
		logLevel = "INFO"
	}

	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}

// initConfig reads marc2bib.yaml and MARC2BIB_* environment variables.
// A .env file in the working directory is loaded first.
func initConfig() {
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("marc2bib")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "marc2bib"))
		}
	}

	viper.SetEnvPrefix("MARC2BIB")
	viper.AutomaticEnv()

	// LOG_LEVEL is honoured without the prefix as well
	_ = viper.BindEnv("log_level", "MARC2BIB_LOG_LEVEL", "LOG_LEVEL")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

var rootCmd = &cobra.Command{
	Use:   "marc2bib",
	Short: "Convert MARC records to BibTeX",
	Long: `marc2bib converts MARC bibliographic records into BibTeX entries.

Each BibTeX field is produced by a tag function that reads and cleans one
piece of catalog data (100 for author, 245 for title, 264 for year, ...).
Mapping profiles add fields or replace the built-in tag functions.

Examples:
  marc2bib convert records.xml
  marc2bib convert records.json -t misc -o refs.bib
  cat record.xml | marc2bib convert --from marcxml --key Hargittai2009
  marc2bib convert records.xml --profile urls
  marc2bib profiles list`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, setupLogger)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./marc2bib.yaml or ~/.config/marc2bib/marc2bib.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().String("profiles-dir", "", "directory of user mapping profiles (default: ~/.config/marc2bib/profiles)")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("profiles_dir", rootCmd.PersistentFlags().Lookup("profiles-dir"))

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(fieldsCmd)
}
