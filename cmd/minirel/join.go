package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"minirel/join"
)

type joinFlags struct {
	algorithm string
}

func joinCmd() *cobra.Command {
	flags := &joinFlags{}
	cmd := &cobra.Command{
		Use:   "join <left-table> <left-column> <right-table> <right-column>",
		Short: "Inner join two tables on the given columns",
		Args:  cobra.ExactArgs(4),
		RunE: func(_ *cobra.Command, args []string) error {
			left, err := loadTable(args[0])
			if err != nil {
				return err
			}
			defer left.Close()
			right, err := loadTable(args[2])
			if err != nil {
				return err
			}
			defer right.Close()

			algo, err := parseAlgorithm(flags.algorithm)
			if err != nil {
				return err
			}

			j := join.New(left, args[1], right, args[3], algo)
			pairs, err := j.Run()
			if err != nil {
				return err
			}
			for _, p := range pairs {
				leftRow, err := left.GetRow(p.LeftOffset)
				if err != nil {
					return err
				}
				rightRow, err := right.GetRow(p.RightOffset)
				if err != nil {
					return err
				}
				fmt.Println(leftRow, rightRow)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.algorithm, "algorithm", "hash", "join algorithm: nested-index, hash, merge")
	return cmd
}

func parseAlgorithm(name string) (join.Algorithm, error) {
	switch name {
	case "nested-index":
		return join.NestedIndex, nil
	case "hash":
		return join.Hash, nil
	case "merge":
		return join.Merge, nil
	default:
		return 0, fmt.Errorf("minirel: unknown --algorithm %q", name)
	}
}
