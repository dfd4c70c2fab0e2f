package main

import "github.com/spf13/cobra"

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <table> <csv-path>",
		Short: "Ingest a CSV file into a registered table",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			t, err := loadTable(args[0])
			if err != nil {
				return err
			}
			defer t.Close()
			return t.ImportCSV(args[1])
		},
	}
}
