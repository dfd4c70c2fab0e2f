package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

type rangeFlags struct {
	path string
}

func rangeCmd() *cobra.Command {
	flags := &rangeFlags{}
	cmd := &cobra.Command{
		Use:   "range <table> <min> <max>",
		Short: "Resolve rows with id in [min, max] using the requested access path",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			t, err := loadTable(args[0])
			if err != nil {
				return err
			}
			defer t.Close()

			min, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return err
			}
			max, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return err
			}

			var rows [][]string
			switch flags.path {
			case "", "index":
				rows, err = t.SequentialIndexScanRange(min, max)
			case "file-scan":
				rows, err = t.SequentialFileScanRange(min, max)
			case "binary":
				rows, err = t.BinarySearchIndexRange(min, max)
			case "hash":
				rows, err = t.HashLookupRange(min, max)
			case "btree":
				rows, err = t.BTreeLookupRange(min, max)
			default:
				return fmt.Errorf("minirel: unknown --path %q", flags.path)
			}
			if err != nil {
				return err
			}
			for _, row := range rows {
				printRow(row)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.path, "path", "index", "access path: index, file-scan, binary, hash, btree")
	return cmd
}
