package main

import "github.com/spf13/cobra"

func dropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop <table>",
		Short: "Delete a table's heap and index files",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			t, err := loadTable(args[0])
			if err != nil {
				return err
			}
			return t.Drop()
		},
	}
}
