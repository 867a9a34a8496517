// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docread CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the docread CLI.
var rootCmd = &cobra.Command{
	Use:   "docread",
	Short: "Convert office documents, PDFs, and HTML into markdown",
	Long: `docread converts word-processor, spreadsheet, presentation, PDF, and HTML
files into one combined markdown report. Each document is extracted with the
selected engine; PDFs that the engine rejects are retried with a lightweight
raw text scan. The run ends with export artifacts (markdown and plain text)
and size-efficiency metrics comparing originals to converted text.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docread.yaml or ~/.config/docread/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docread")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docread"))
		}
	}

	viper.SetEnvPrefix("DOCREAD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
