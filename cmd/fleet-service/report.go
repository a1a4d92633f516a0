package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nurpe/busfleet/internal/model"
	"github.com/nurpe/busfleet/internal/service"
)

func reportCmd() *cobra.Command {
	var (
		kind  string
		query service.ReportQuery
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print an aggregate report as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, database, err := bootstrap()
			if err != nil {
				return err
			}
			defer closeDB(database)

			out, err := runReport(cmd.Context(), newReportService(cfg, database), model.ReportKind(kind), query)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(model.ReportKindSummary), "summary, bus-usage, complaints, shift-compliance or accidents")
	cmd.Flags().StringVar(&query.Period, "period", "month", "week, month, quarter or year")
	cmd.Flags().StringVar(&query.Anchor, "anchor", "", "now or latest; defaults to REPORTS_DEFAULT_ANCHOR")
	cmd.Flags().StringVar(&query.Depot, "depot", "", "depot filter for bus-usage")
	cmd.Flags().StringVar(&query.Status, "status", "", "status filter for complaints")
	return cmd
}

func runReport(ctx context.Context, reports *service.ReportService, kind model.ReportKind, q service.ReportQuery) (any, error) {
	switch kind {
	case model.ReportKindSummary:
		return reports.Summary(ctx, q)
	case model.ReportKindBusUsage:
		return reports.BusUsage(ctx, q)
	case model.ReportKindComplaints:
		return reports.Complaints(ctx, q)
	case model.ReportKindShiftCompliance:
		return reports.ShiftCompliance(ctx, q)
	case model.ReportKindAccidents:
		return reports.Accidents(ctx, q)
	default:
		return nil, fmt.Errorf("unknown report kind %q", kind)
	}
}
