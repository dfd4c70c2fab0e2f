package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

type getFlags struct {
	path string
}

func getCmd() *cobra.Command {
	flags := &getFlags{}
	cmd := &cobra.Command{
		Use:   "get <table> <id>",
		Short: "Resolve a row by id using the requested access path",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			t, err := loadTable(args[0])
			if err != nil {
				return err
			}
			defer t.Close()

			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return err
			}

			var row []string
			switch flags.path {
			case "", "index":
				row, err = t.GetRowByID(id)
			case "file-scan":
				row, err = t.SequentialFileScan(id)
			case "index-scan":
				row, err = t.SequentialIndexScan(id)
			case "binary":
				row, err = t.BinarySearchIndex(id)
			case "hash":
				row, err = t.HashLookup(id)
			case "btree":
				row, err = t.BTreeLookup(id)
			default:
				return fmt.Errorf("minirel: unknown --path %q", flags.path)
			}
			if err != nil {
				return err
			}
			printRow(row)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.path, "path", "index", "access path: index, file-scan, index-scan, binary, hash, btree")
	return cmd
}
