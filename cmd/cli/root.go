package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/rhyrak/go-facultyload/internal/audit"
	"github.com/rhyrak/go-facultyload/internal/config"
	"github.com/rhyrak/go-facultyload/internal/csvio"
	"github.com/rhyrak/go-facultyload/internal/loads"
	"github.com/rhyrak/go-facultyload/internal/logger"
	"github.com/rhyrak/go-facultyload/internal/server"
	"github.com/rhyrak/go-facultyload/pkg/model"
)

type options struct {
	cfgPath   string
	input     string
	mergeRule string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "facultyload",
		Short:        "Faculty workload tables and schedule CSV exports",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.cfgPath, "config", "c", "", "configuration file (yaml or json)")
	root.PersistentFlags().StringVarP(&opts.input, "input", "i", "", "schedule file (.json or .csv), overrides input.path")
	root.PersistentFlags().StringVar(&opts.mergeRule, "merge-rule", "", "legacy or sum, overrides loads.merge_rule")

	root.AddCommand(newLoadsCmd(opts), newExportCmd(opts), newValidateCmd(opts), newServeCmd(opts))
	return root
}

func (o *options) load() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(o.cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if o.input != "" {
		cfg.Input.Path = o.input
	}
	if o.mergeRule != "" {
		cfg.Loads.MergeRule = o.mergeRule
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}
	return cfg, logger.New("facultyload", cfg.Logging.Level, cfg.Logging.Format), nil
}

func loadSchedule(cfg *config.Config) (*model.Schedule, error) {
	if cfg.Input.Path == "" {
		return nil, fmt.Errorf("no schedule given, use --input or input.path")
	}
	return csvio.LoadSchedule(cfg.Input.Path, cfg.Delimiter())
}

func newLoadsCmd(opts *options) *cobra.Command {
	var asJSON bool
	var outPath string
	cmd := &cobra.Command{
		Use:   "loads",
		Short: "Print the faculty loads table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			schedule, err := loadSchedule(cfg)
			if err != nil {
				return err
			}
			rows := loads.NewAggregator(cfg.MergeRule(), log, nil).Aggregate(schedule)

			var out io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			return csvio.WriteLoads(out, rows)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of CSV")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to file instead of stdout")
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the teaching, non-teaching and loads CSV files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			schedule, err := loadSchedule(cfg)
			if err != nil {
				return err
			}
			rows := loads.NewAggregator(cfg.MergeRule(), log, nil).Aggregate(schedule)
			paths := csvio.ExportPaths{
				Teaching:    cfg.ExportPath(cfg.Export.TeachingFile),
				NonTeaching: cfg.ExportPath(cfg.Export.NonTeachingFile),
				Loads:       cfg.ExportPath(cfg.Export.LoadsFile),
			}
			if err := (&csvio.Exporter{Logger: log}).ExportFiles(schedule, rows, paths); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported output to: %s, %s, %s\n", paths.Teaching, paths.NonTeaching, paths.Loads)
			return nil
		},
	}
}

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a schedule for unstaffed sections, unknown terms, bad times and room collisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}
			schedule, err := loadSchedule(cfg)
			if err != nil {
				return err
			}
			valid, msg := audit.Validate(schedule)
			if !valid {
				fmt.Fprintln(cmd.OutOrStdout(), "Invalid schedule:")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Passed all tests")
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			if !valid {
				return fmt.Errorf("schedule has problems")
			}
			return nil
		},
	}
}

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve loads and exports over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			srv, err := server.New(cfg, log, prometheus.NewRegistry())
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}
}
