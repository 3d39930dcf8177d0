package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rentas/internal/config"
	"rentas/internal/export"
	"rentas/internal/input"
	"rentas/internal/log"
	"rentas/internal/report"
	"rentas/internal/services"
)

type options struct {
	year      int
	month     int
	exportDir string
	logLevel  string
}

// NewRootCmd builds the rentas command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "rentas",
		Short:         "Rent contract and payment ledger for a residential building",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.IntVar(&opts.year, "year", 0, "current year (default CURRENT_YEAR or today)")
	pf.IntVar(&opts.month, "month", 0, "current month 1..12 (default CURRENT_MONTH or today)")
	pf.StringVar(&opts.exportDir, "export-dir", "", "write an xlsx report to this directory (default EXPORT_DIR)")
	pf.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (default LOG_LEVEL)")

	root.AddCommand(captureCmd(opts), reportCmd(opts))
	return root
}

// session holds everything one command run needs.
type session struct {
	cfg    *config.Config
	logger *log.Logger
	ledger *services.LedgerService
	out    io.Writer
}

func openSession(cmd *cobra.Command, opts *options) (*session, error) {
	flags := cmd.Flags()
	cfg, err := LoadAndValidateConfig(func(c *config.Config) {
		if flags.Changed("year") {
			c.CurrentYear = opts.year
		}
		if flags.Changed("month") {
			c.CurrentMonth = opts.month
		}
		if flags.Changed("export-dir") {
			c.ExportDir = opts.exportDir
		}
		if flags.Changed("log-level") {
			c.LogLevel = opts.logLevel
		}
	})
	if err != nil {
		return nil, err
	}

	logger := SetupLogger(cfg.LogLevel, cmd.ErrOrStderr())
	logger.WithComponent(log.ComponentConfig).Debug("Configuration loaded",
		log.FieldOperation, log.OpLoad,
		log.FieldCapacity, cfg.BuildingUnits,
		"export_dir", cfg.ExportDir,
		"amqp_enabled", cfg.AMQPURL != "")
	manager, err := services.NewBuildingManager(cfg.CurrentYear, cfg.CurrentMonth)
	if err != nil {
		return nil, err
	}
	ledger := services.NewLedgerService(manager, NewPublisher(cfg, logger), logger, cfg.BuildingUnits)

	logger.Info("Session started",
		log.NewFields().
			WithOperation(log.OpStartup).
			WithPeriod(cfg.CurrentYear, cfg.CurrentMonth).
			ToSlice()...)

	return &session{cfg: cfg, logger: logger, ledger: ledger, out: cmd.OutOrStdout()}, nil
}

// finish closes the ledger, prints the building totals and writes the
// workbook when an export directory is configured. It still runs after an
// interrupt, so ctx cancellation is not propagated to it.
func (s *session) finish(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	totals, err := s.ledger.Close(ctx)
	if err != nil {
		s.logger.Warn("Failed to close event publisher", log.FieldError, err.Error())
	}
	if err := report.WriteTotals(s.out, totals); err != nil {
		return err
	}

	if s.cfg.ExportDir == "" {
		return nil
	}
	path, err := export.WriteFile(ctx, s.cfg.ExportDir, s.ledger.Summaries(), totals)
	if err != nil {
		return fmt.Errorf("export workbook: %w", err)
	}
	s.logger.WithComponent(log.ComponentExport).Info("Workbook exported",
		log.FieldOperation, log.OpExport,
		log.FieldPath, path)
	fmt.Fprintf(s.out, "\nWorkbook written to %s\n", path)
	return nil
}

func captureCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "capture",
		Short: "Register contracts interactively and print the building report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			ctx, stop := SignalContext(cmd.Context(), s.logger)
			defer stop()

			fmt.Fprintf(s.out, "Rent control %d-%02d (building of %d units)\n",
				s.cfg.CurrentYear, s.cfg.CurrentMonth, s.cfg.BuildingUnits)

			p := input.NewPrompter(cmd.InOrStdin(), s.out)
			defer p.Close()

			count, err := p.CaptureCount(ctx)
			if errors.Is(err, input.ErrAborted) {
				s.logger.Warn("Capture stopped before the contract count was given")
				return s.finish(ctx)
			}
			if err != nil {
				return err
			}

			for i := 1; i <= count; i++ {
				in, err := p.CaptureContract(ctx, i, s.cfg.CurrentYear)
				if errors.Is(err, input.ErrAborted) {
					s.logger.Warn("Capture stopped before every contract was captured",
						log.FieldContracts, i-1,
						"expected", count)
					break
				}
				if err != nil {
					return err
				}

				summary, err := s.ledger.Register(ctx, in)
				if err != nil {
					fmt.Fprintf(s.out, "Error: %v\n", err)
					i--
					continue
				}
				if err := report.WriteContract(s.out, s.cfg.CurrentYear, s.cfg.CurrentMonth, summary); err != nil {
					return err
				}
			}

			return s.finish(ctx)
		},
	}
}

func reportCmd(opts *options) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Register contracts from a batch file and print the building report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			ctx, stop := SignalContext(cmd.Context(), s.logger)
			defer stop()

			inputs, lineErrs, err := input.LoadFile(file)
			if err != nil {
				return err
			}
			inputLogger := s.logger.WithComponent(log.ComponentInput)
			for _, lineErr := range lineErrs {
				fields := log.NewFields().WithOperation(log.OpLoad).WithError(lineErr)
				fields[log.FieldPath] = file
				var le *input.LineError
				if errors.As(lineErr, &le) {
					fields[log.FieldLine] = le.Line
				}
				inputLogger.Warn("Skipping contract line", fields.ToSlice()...)
			}

			summaries, regErrs := s.ledger.RegisterAll(ctx, inputs)
			for _, summary := range summaries {
				if err := report.WriteContract(s.out, s.cfg.CurrentYear, s.cfg.CurrentMonth, summary); err != nil {
					return err
				}
			}
			if skipped := len(lineErrs) + len(regErrs); skipped > 0 {
				fmt.Fprintf(s.out, "\n%d contract(s) skipped:\n", skipped)
				for _, e := range append(lineErrs, regErrs...) {
					fmt.Fprintf(s.out, "  - %v\n", e)
				}
			}

			return s.finish(ctx)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "contracts file, one tenant|unit|bedrooms|start_month|start_year|historic_rent|months_paid|amount_paid per line")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
