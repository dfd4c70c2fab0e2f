package main

import (
	"fmt"

	"minirel/config"
	"minirel/table"
)

func loadTable(name string) (*table.Table, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	tc, ok := cfg.Table(name)
	if !ok {
		return nil, fmt.Errorf("minirel: table %q not found in %s", name, configFlag)
	}
	t, err := table.Open(cfg.DataDir, name)
	if err != nil {
		return nil, err
	}
	if err := t.ImportSchema(tc.SchemaPath); err != nil {
		return nil, err
	}
	return t, nil
}

func printRow(row []string) {
	fmt.Println(row)
}
