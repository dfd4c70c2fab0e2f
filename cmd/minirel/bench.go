package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"minirel/bench"
)

func benchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench <table> <id> <range-min> <range-max>",
		Short: "Time every access path for a point lookup and a range scan",
		Args:  cobra.ExactArgs(4),
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
			min, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return err
			}
			max, err := strconv.ParseInt(args[3], 10, 64)
			if err != nil {
				return err
			}

			points, err := bench.PointLookups(t, id)
			if err != nil {
				return err
			}
			for _, r := range points {
				fmt.Printf("%-25s %10s found=%v\n", r.Name, r.Duration, r.Found)
			}

			ranges, err := bench.RangeQueries(t, min, max)
			if err != nil {
				return err
			}
			for _, r := range ranges {
				fmt.Printf("%-25s %10s found=%v\n", r.Name, r.Duration, r.Found)
			}
			return nil
		},
	}
	return cmd
}
