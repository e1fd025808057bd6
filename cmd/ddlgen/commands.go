package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mmrzaf/ddlgen/internal/app"
	"github.com/mmrzaf/ddlgen/internal/config"
	"github.com/mmrzaf/ddlgen/internal/domain"
	"github.com/mmrzaf/ddlgen/internal/hashing"
	"github.com/mmrzaf/ddlgen/internal/logging"
	"github.com/mmrzaf/ddlgen/internal/registry"
)

type rootOptions struct {
	configPath string
	logLevel   string
	input      string
	output     string
	rows       string
	seed       int64
	workers    int
	targetKind string
	targetDSN  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "ddlgen --input schema.sql --output data.csv --rows 100",
		Short:         "Generate synthetic CSV data from a CREATE TABLE statement",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "YAML config file")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	pf.StringVar(&opts.input, "input", "", "File containing one CREATE TABLE statement")

	f := rootCmd.Flags()
	f.StringVar(&opts.output, "output", "", "Destination CSV file (overwritten)")
	f.StringVar(&opts.rows, "rows", "", "Number of rows to generate")
	f.Int64VarP(&opts.seed, "seed", "s", 0, "Seed for the pseudorandom source")
	f.IntVar(&opts.workers, "workers", 0, "Parallel row batches")
	f.StringVar(&opts.targetKind, "target-kind", "", "Also load rows into a database (sqlite|postgres)")
	f.StringVar(&opts.targetDSN, "target", "", "Database DSN or sqlite path (requires --target-kind)")
	_ = rootCmd.MarkPersistentFlagRequired("input")
	_ = rootCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(inspectCmd(opts))
	return rootCmd
}

func loadConfig(opts *rootOptions) (*config.Config, *logging.Logger, *registry.TypeRegistry, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	defaults, err := cfg.RegistryDefaults(time.Now())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid generation config: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel).WithComponent("ddlgen")
	return cfg, logger, registry.NewDefaultTypeRegistry(defaults), nil
}

func runGenerate(cmd *cobra.Command, opts *rootOptions) error {
	cfg, logger, types, err := loadConfig(opts)
	if err != nil {
		return err
	}
	defer logger.Sync()

	rowsStr := cfg.Rows
	if cmd.Flags().Changed("rows") {
		rowsStr = opts.rows
	}
	rows, err := ParseRowCount(rowsStr)
	if err != nil {
		return err
	}

	runCfg := &domain.RunConfig{
		InputPath:  opts.input,
		OutputPath: opts.output,
		Rows:       rows,
		Workers:    cfg.Workers,
		BatchSize:  cfg.BatchSize,
	}
	if cmd.Flags().Changed("seed") {
		seed := opts.seed
		runCfg.Seed = &seed
	}
	if cmd.Flags().Changed("workers") {
		runCfg.Workers = opts.workers
	}

	kind, dsn := cfg.Target.Kind, cfg.Target.DSN
	if opts.targetKind != "" {
		kind = opts.targetKind
	}
	if opts.targetDSN != "" {
		dsn = opts.targetDSN
	}
	if kind != "" || dsn != "" {
		if kind == "" {
			return fmt.Errorf("--target-kind required when using --target")
		}
		runCfg.Target = &domain.TargetConfig{Kind: kind, DSN: dsn}
	}

	stats, err := app.NewRunService(types, logger).Run(cmd.Context(), runCfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d rows of %s to %s (%.2fs)\n",
		stats.RowsGenerated, stats.TableName, opts.output, stats.DurationSeconds)
	return nil
}

// ParseRowCount accepts a non-negative base-10 integer.
func ParseRowCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", domain.ErrInvalidRowCount, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d is negative", domain.ErrInvalidRowCount, n)
	}
	return n, nil
}

type inspectOutput struct {
	Table      string                  `json:"table" yaml:"table"`
	SchemaHash string                  `json:"schema_hash" yaml:"schema_hash"`
	Header     []string                `json:"header" yaml:"header"`
	Columns    []domain.ResolvedColumn `json:"columns" yaml:"columns"`
}

func inspectCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the parsed columns and resolved generation rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, types, err := loadConfig(opts)
			if err != nil {
				return err
			}
			defer logger.Sync()

			table, err := app.NewRunService(types, logger).LoadTable(opts.input)
			if err != nil {
				return err
			}
			hash, err := hashing.HashTable(table)
			if err != nil {
				return err
			}

			return writeInspect(cmd.OutOrStdout(), format, inspectOutput{
				Table:      table.Name,
				SchemaHash: hash,
				Header:     table.Header(),
				Columns:    table.Columns,
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format (yaml|json)")
	return cmd
}

func writeInspect(w io.Writer, format string, out inspectOutput) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(out)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
