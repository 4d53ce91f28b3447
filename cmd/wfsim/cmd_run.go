package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/warp/workforce-sim/config"
	"github.com/warp/workforce-sim/dataset"
	"github.com/warp/workforce-sim/logger"
	"github.com/warp/workforce-sim/sim"
	"github.com/warp/workforce-sim/store/sqlite"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation",
		Long: `Run a simulation and write its results.

The config is built from the defaults, then --config, then --preset, then
WFSIM_* environment variables, then the flags below.

Examples:
  wfsim run --preset small-line --out ./out
  wfsim run --config plant.yaml --seed 7 --days 120 --db wfsim.db
  wfsim run --preset oee-plant --save run.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.Logging.Mode, cfg.Logging.Quiet)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			d, err := runSimulation(ctx, cfg, log)
			if err != nil {
				return err
			}
			return writeOutputs(cmd, d)
		},
	}

	cmd.Flags().String("config", "", "YAML or JSON config file")
	cmd.Flags().String("preset", "", "Named preset (see 'wfsim presets')")
	cmd.Flags().Int64("seed", 0, "RNG seed (overrides seeds[0])")
	cmd.Flags().Int("days", 0, "Number of analysis days")
	cmd.Flags().Bool("oee", false, "Record efficacy with an automatic measurement system")
	cmd.Flags().String("out", "", "Directory for ledger.csv and persons.csv")
	cmd.Flags().String("save", "", "Write the full run as a JSON file")
	cmd.Flags().String("log", "", "Log mode (dev or prod)")
	cmd.Flags().Bool("quiet", false, "Suppress per-day log lines")
	return cmd
}

// resolveConfig applies file, preset, environment and flags in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	cfg := config.Default()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if preset, _ := flags.GetString("preset"); preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if flags.Changed("seed") {
		seed, _ := flags.GetInt64("seed")
		cfg.SetSeed(seed)
	}
	if flags.Changed("days") {
		cfg.AnalysisDays, _ = flags.GetInt("days")
	}
	if flags.Changed("oee") {
		cfg.OEESystemInUse, _ = flags.GetBool("oee")
	}
	if mode, _ := flags.GetString("log"); mode != "" {
		cfg.Logging.Mode = mode
	}
	if flags.Changed("quiet") {
		cfg.Logging.Quiet, _ = flags.GetBool("quiet")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(ctx context.Context, cfg *config.Config, log *logger.Logger) (*dataset.Dataset, error) {
	s, err := sim.New(cfg, log)
	if err != nil {
		return nil, err
	}
	res, err := s.Run(ctx)
	if err != nil {
		return nil, err
	}
	d := dataset.New(cfg)
	d.Complete(res)
	return d, nil
}

func writeOutputs(cmd *cobra.Command, d *dataset.Dataset) error {
	flags := cmd.Flags()

	if dir, _ := flags.GetString("out"); dir != "" {
		if err := writeCSVFiles(dir, d, "all"); err != nil {
			return err
		}
	}
	if path, _ := flags.GetString("save"); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		if err := d.WriteFile(path); err != nil {
			return err
		}
	}
	if dbPath, _ := flags.GetString("db"); dbPath != "" {
		store, err := sqlite.New(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.SaveRun(cmd.Context(), d); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if jsonOut, _ := flags.GetBool("json"); jsonOut {
		return writeJSON(out, d.Info())
	}
	info := d.Info()
	fmt.Fprintf(out, "Run %s completed\n", info.ID)
	fmt.Fprintf(out, "  seed:    %d\n", info.Seed)
	fmt.Fprintf(out, "  days:    %d (%d priming, discarded)\n", d.Days, d.PrimingDays)
	fmt.Fprintf(out, "  persons: %d\n", info.Persons)
	fmt.Fprintf(out, "  rows:    %d\n", info.Rows)
	if d.Accuracy != nil {
		fmt.Fprintf(out, "  resignations: %d, terminations: %d\n", d.Accuracy.Resignations, d.Accuracy.Terminations)
	}
	fmt.Fprintf(out, "  elapsed: %s\n", d.Elapsed)
	return nil
}
