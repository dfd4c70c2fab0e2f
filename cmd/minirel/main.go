// Package main is the minirel command-line tool, built with
// github.com/spf13/cobra, the same CLI library and subcommand-per-verb
// layout as Pieczasz-smf/cmd/smf/main.go.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFlag string

func main() {
	rootCmd := &cobra.Command{
		Use:   "minirel",
		Short: "A minimal single-node relational table engine",
	}
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "minirel.toml", "registry file describing known tables")

	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(getCmd())
	rootCmd.AddCommand(rangeCmd())
	rootCmd.AddCommand(joinCmd())
	rootCmd.AddCommand(dropCmd())
	rootCmd.AddCommand(benchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
