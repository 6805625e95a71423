package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	reportapp "github.com/smbc/backend/internal/application/report"
	"github.com/smbc/backend/internal/domain/ledger"
	"github.com/smbc/backend/internal/infrastructure/export"
	"github.com/smbc/backend/internal/infrastructure/persistence"
	"github.com/smbc/backend/internal/infrastructure/printing"
)

func newReportCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export monthly venture reports",
	}
	cmd.AddCommand(newExportCommand(configPath, reportapp.KindTrialBalance, "Export a monthly trial balance"))
	cmd.AddCommand(newExportCommand(configPath, reportapp.KindBalanceSheet, "Export a monthly balance sheet"))
	return cmd
}

func newExportCommand(configPath *string, kind, short string) *cobra.Command {
	var (
		venture string
		month   string
		format  string
		out     string
	)

	cmd := &cobra.Command{
		Use:   kind,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok := ledger.ParseVenture(venture)
			if !ok {
				return fmt.Errorf("unknown venture %q", venture)
			}

			ctx := cmd.Context()
			rt, err := openRuntime(ctx, *configPath, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			svc := reportapp.NewService(
				persistence.NewGormEntryRepository(rt.db.DB),
				persistence.NewGormWageRepository(rt.db.DB),
				persistence.NewGormProjectRepository(rt.db.DB),
				rt.log,
			)
			svc.SetClock(rt.clock())

			switch format {
			case reportapp.FormatXLSX:
				svc.SetSpreadsheetWriter(export.NewXLSXWriter(rt.cfg.Report.CompanyName))
			case reportapp.FormatPDF:
				chrome := printing.NewChromedpRenderer(printing.ChromedpConfig{
					DefaultTimeout: rt.cfg.Report.RenderTimeout,
					RemoteURL:      rt.cfg.Report.ChromeURL,
					Logger:         rt.log,
				})
				defer chrome.Close()
				pdf, err := printing.NewReportRenderer(chrome, printing.CompanyInfo{
					Name:    rt.cfg.Report.CompanyName,
					Address: rt.cfg.Report.CompanyAddress,
				}, rt.cfg.Report.RenderTimeout, rt.cfg.App.Location())
				if err != nil {
					return err
				}
				svc.SetPDFRenderer(pdf)
			default:
				return fmt.Errorf("unknown format %q (want %s or %s)", format, reportapp.FormatPDF, reportapp.FormatXLSX)
			}

			res, err := svc.Export(ctx, v, kind, month, format)
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = res.Filename
			}
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				path = filepath.Join(path, res.Filename)
			}
			if err := os.WriteFile(path, res.Data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, len(res.Data))
			return err
		},
	}

	cmd.Flags().StringVar(&venture, "venture", "", "construction, carenderia or catering (required)")
	_ = cmd.MarkFlagRequired("venture")
	cmd.Flags().StringVar(&month, "month", "", "month YYYY-MM (required)")
	_ = cmd.MarkFlagRequired("month")
	cmd.Flags().StringVar(&format, "format", reportapp.FormatPDF, "pdf or xlsx")
	cmd.Flags().StringVar(&out, "out", "", "output file or directory (default: generated name in the current directory)")
	return cmd
}
