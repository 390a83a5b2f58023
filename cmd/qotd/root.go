// Package main is the qotd command-line entry point: configuration and
// process glue that spec.md §1 scopes out of the core.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "qotd",
	Short: "RFC 865 Quote-of-the-Day server",
	Long:  "qotd serves one quote per request over TCP and UDP from a corpus assembled by scanning local quote files.",
	RunE:  runServe,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "qotd.toml", "path to the qotd configuration file")
}
