// Package bench times each access path and join algorithm against a
// live table.Table, the Go counterpart of original_source's
// tablebenchmark.h/joinbenchmark.h/timer.h trio. Where the source times
// one method at a time on a single thread, this runs the five point
// access paths as independent, non-interfering trials concurrently via
// golang.org/x/sync/errgroup. All trials share one *table.Table: they
// read the in-memory index and the heap file handle, and the hash and
// B+-tree paths each build their own lazily-created cache on first use,
// so no two concurrent trials write the same field.
package bench

import (
	"time"

	"golang.org/x/sync/errgroup"

	"minirel/join"
	"minirel/table"
)

// Result is one timed trial: the access path's name, its wall-clock
// duration, and whether it found a row.
type Result struct {
	Name     string
	Duration time.Duration
	Found    bool
}

func timeCall(name string, fn func() (bool, error)) (Result, error) {
	start := time.Now()
	found, err := fn()
	if err != nil {
		return Result{}, err
	}
	return Result{Name: name, Duration: time.Since(start), Found: found}, nil
}

// PointLookups times all five point-access paths for id against t,
// concurrently, and returns their results in a fixed, stable order
// (not the order in which the goroutines finish).
func PointLookups(t *table.Table, id int64) ([]Result, error) {
	trials := []struct {
		name string
		run  func() (bool, error)
	}{
		{"sequential_file_scan", foundFunc(func() ([]string, error) { return t.SequentialFileScan(id) })},
		{"sequential_index_scan", foundFunc(func() ([]string, error) { return t.SequentialIndexScan(id) })},
		{"binary_search_index", foundFunc(func() ([]string, error) { return t.BinarySearchIndex(id) })},
		{"hash_lookup", foundFunc(func() ([]string, error) { return t.HashLookup(id) })},
		{"btree_lookup", foundFunc(func() ([]string, error) { return t.BTreeLookup(id) })},
	}

	results := make([]Result, len(trials))
	var g errgroup.Group
	for i, trial := range trials {
		i, trial := i, trial
		g.Go(func() error {
			r, err := timeCall(trial.name, trial.run)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RangeQueries times all five range access paths over [min, max],
// concurrently, and returns their results in a fixed, stable order.
func RangeQueries(t *table.Table, min, max int64) ([]Result, error) {
	trials := []struct {
		name string
		run  func() (bool, error)
	}{
		{"sequential_file_range", foundManyFunc(func() ([][]string, error) { return t.SequentialFileScanRange(min, max) })},
		{"sequential_index_range", foundManyFunc(func() ([][]string, error) { return t.SequentialIndexScanRange(min, max) })},
		{"binary_search_range", foundManyFunc(func() ([][]string, error) { return t.BinarySearchIndexRange(min, max) })},
		{"hash_range", foundManyFunc(func() ([][]string, error) { return t.HashLookupRange(min, max) })},
		{"btree_range", foundManyFunc(func() ([][]string, error) { return t.BTreeLookupRange(min, max) })},
	}

	results := make([]Result, len(trials))
	var g errgroup.Group
	for i, trial := range trials {
		i, trial := i, trial
		g.Go(func() error {
			r, err := timeCall(trial.name, trial.run)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// JoinAlgorithms times all three join algorithms over the same
// (left, leftColumn, right, rightColumn) inputs, the Go counterpart of
// original_source/joinbenchmark.h's empty runBenchmark stub, which never
// actually drove any join method.
func JoinAlgorithms(left *table.Table, leftColumn string, right *table.Table, rightColumn string) ([]Result, error) {
	algorithms := []struct {
		name string
		algo join.Algorithm
	}{
		{"nested_index", join.NestedIndex},
		{"hash", join.Hash},
		{"merge", join.Merge},
	}

	results := make([]Result, len(algorithms))
	var g errgroup.Group
	for i, a := range algorithms {
		i, a := i, a
		g.Go(func() error {
			j := join.New(left, leftColumn, right, rightColumn, a.algo)
			start := time.Now()
			pairs, err := j.Run()
			if err != nil {
				return err
			}
			results[i] = Result{Name: a.name, Duration: time.Since(start), Found: len(pairs) > 0}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func foundFunc(lookup func() ([]string, error)) func() (bool, error) {
	return func() (bool, error) {
		row, err := lookup()
		if err == table.ErrNotFound {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return row != nil, nil
	}
}

func foundManyFunc(lookup func() ([][]string, error)) func() (bool, error) {
	return func() (bool, error) {
		rows, err := lookup()
		if err != nil {
			return false, err
		}
		return len(rows) > 0, nil
	}
}
