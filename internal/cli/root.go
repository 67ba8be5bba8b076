package cli

import (
	"log/slog"

	"github.com/cruffinoni/djt2ast/internal/config"
	"github.com/cruffinoni/djt2ast/internal/logging"
	"github.com/spf13/cobra"
)

// NewRootCmd wires CLI flags to configuration and executes the check run.
func NewRootCmd() *cobra.Command {
	cfg := config.Default()
	configPath := ""

	cmd := &cobra.Command{
		Use:           "djt2ast",
		Short:         "Parse django templates into syntax-tree dumps and check reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if configPath != "" {
				if err := cfg.Load(configPath); err != nil {
					return err
				}
			}
			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logging.Configure(level)
			return runCheck(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.In, "in", "", "Input root directory containing templates")
	cmd.Flags().StringVar(&cfg.Out, "out", "", "Optional output root for syntax-tree dumps")
	cmd.Flags().StringVar(&cfg.Glob, "glob", cfg.Glob, "Glob pattern relative to --in (supports **)")
	cmd.Flags().StringVar(&cfg.Ext, "ext", cfg.Ext, "Dump file extension (example: .ast.json)")
	cmd.Flags().StringVar(&cfg.ReportJSON, "report-json", "", "Optional JSON report output path")
	cmd.Flags().StringVar(&cfg.ReportCSV, "report-csv", "", "Optional CSV report output path")
	cmd.Flags().BoolVar(&cfg.Strict, "strict", cfg.Strict, "Stop at the first file that fails to compile")
	cmd.Flags().BoolVar(&cfg.Lenient, "lenient", cfg.Lenient, "Recover from parse errors and report all diagnostics")
	cmd.Flags().BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Enable debug logging")
	cmd.Flags().StringVar(&configPath, "config", "", "Optional YAML config file; file values override flags")

	_ = cmd.MarkFlagRequired("in")

	return cmd
}
