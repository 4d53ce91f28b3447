package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/warp/workforce-sim/dataset"
	"github.com/warp/workforce-sim/export"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [run-id]",
		Short: "Export a stored run as CSV",
		Long: `Export a run as ledger.csv and/or persons.csv.

The run is read from the database (--db with a run ID) or from a file
written by 'wfsim run --save' (--from).

Examples:
  wfsim export 3f2a... --db wfsim.db --out ./out
  wfsim export --from run.json --out ./out --table persons`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, _ := cmd.Flags().GetString("table")
			if table != "all" && table != "ledger" && table != "persons" {
				return fmt.Errorf("unknown table %q (want all, ledger or persons)", table)
			}
			dir, _ := cmd.Flags().GetString("out")

			d, err := loadRun(cmd, args)
			if err != nil {
				return err
			}
			if d.Status != dataset.StatusCompleted {
				return fmt.Errorf("run %s is %s", d.ID, d.Status)
			}
			if err := writeCSVFiles(dir, d, table); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported run %s to %s\n", d.ID, dir)
			return nil
		},
	}
	cmd.Flags().String("from", "", "Run file written by 'wfsim run --save'")
	cmd.Flags().String("out", ".", "Output directory")
	cmd.Flags().String("table", "all", "Table to export: all, ledger or persons")
	return cmd
}

func loadRun(cmd *cobra.Command, args []string) (*dataset.Dataset, error) {
	if from, _ := cmd.Flags().GetString("from"); from != "" {
		return dataset.ReadFile(from)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("a run ID or --from is required")
	}
	store, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.GetRun(cmd.Context(), args[0])
}

func writeCSVFiles(dir string, d *dataset.Dataset, table string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if table == "all" || table == "ledger" {
		if err := writeCSVFile(filepath.Join(dir, "ledger.csv"), func(f *os.File) error {
			return export.WriteLedgerCSV(f, d.Rows)
		}); err != nil {
			return err
		}
	}
	if table == "all" || table == "persons" {
		if err := writeCSVFile(filepath.Join(dir, "persons.csv"), func(f *os.File) error {
			return export.WritePersonsCSV(f, d.Summaries)
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
