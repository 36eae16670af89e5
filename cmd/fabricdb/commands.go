package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/fabricdb/chipdb"
	"github.com/sarchlab/fabricdb/report"
	"github.com/sarchlab/fabricdb/store"
	"github.com/sarchlab/fabricdb/verify"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the size of the architecture graph",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, a, err := loadArch()
		if err != nil {
			return err
		}

		s := report.Collect(a)
		fmt.Printf("Chip:   %s (%s)\n", s.Chip, s.Family)
		fmt.Printf("Grid:   %d x %d\n", s.GridX, s.GridY)
		fmt.Printf("Wires:  %d\n", s.Wires)
		fmt.Printf("Pips:   %d\n", s.Pips)
		fmt.Printf("Bels:   %d\n", s.Bels)

		for _, u := range s.BelTypes {
			fmt.Printf("  %-6s %d\n", u.Type, u.Total)
		}

		return nil
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Convert a chip description between the YAML and binary forms",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := chipdb.Load(args[0])
		if err != nil {
			return err
		}

		if err := db.Validate(); err != nil {
			return errors.Wrap(err, args[0])
		}

		switch strings.ToLower(filepath.Ext(args[1])) {
		case ".yaml", ".yml":
			f, err := os.Create(args[1])
			if err != nil {
				return errors.Wrap(err, "create output")
			}

			if err := chipdb.EncodeYAML(f, db); err != nil {
				f.Close()
				return err
			}

			return errors.Wrap(f.Close(), "close output")
		default:
			return chipdb.WriteFile(args[1], db)
		}
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the utilization of the architecture",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, a, err := loadArch()
		if err != nil {
			return err
		}

		report.Write(os.Stdout, a)

		return nil
	},
}

var exportDB string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the architecture graph and its bindings to SQLite",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, a, err := loadArch()
		if err != nil {
			return err
		}

		path := cfg.Store
		if exportDB != "" {
			path = exportDB
		}

		s, err := store.Open(path)
		if err != nil {
			return err
		}
		atexit.Register(func() { s.Close() })

		ctx := context.Background()
		if err := s.SaveGraph(ctx, a); err != nil {
			return err
		}

		if err := s.SaveBindings(ctx, a); err != nil {
			return err
		}

		c, err := s.Counts(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Exported %d wires, %d pips, %d bels (%d pins) to %s\n",
			c.Wires, c.Pips, c.Bels, c.BelPins, path)

		return nil
	},
}

var checkOutput string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the invariants of the architecture graph",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, a, err := loadArch()
		if err != nil {
			return err
		}

		r := verify.NewReport(a, verify.Check(a))
		r.Write(os.Stdout)

		if checkOutput != "" {
			if err := r.SaveToFile(checkOutput); err != nil {
				return err
			}
		}

		if !r.OK() {
			atexit.Exit(1)
		}

		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportDB, "db", "d", "",
		"Path to the SQLite database (defaults to store from the configuration)")
	checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "",
		"Also save the report to this file")
}
