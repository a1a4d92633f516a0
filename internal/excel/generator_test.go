package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/busfleet/internal/model"
)

func sampleBundle() model.ReportBundle {
	period := model.ReportPeriod{Period: "month", StartDate: "2024-05-01", EndDate: "2024-05-20"}
	return model.ReportBundle{
		Summary: model.SummaryReport{
			ReportPeriod: period,
			Overview:     model.SummaryOverview{TotalBuses: 3, BusesInUse: 2, AccidentCost: 160.25},
			KeyMetrics:   model.KeyMetrics{BusUtilization: "66.67%", ComplaintResolutionRate: "0%", ShiftComplianceRate: "50.00%"},
		},
		BusUsage: model.BusUsageReport{
			ReportPeriod: period,
			TotalBuses:   3,
			ByDepot:      []model.GroupUsage{{Name: "North", Total: 2, InUse: 2}},
			TopUtilized:  []model.CountEntry{{ID: 1, Label: "KA-1", Count: 4}},
		},
		Complaints: model.ComplaintsReport{
			ReportPeriod:    period,
			TotalComplaints: 3,
			StatusBreakdown: map[string]int{"Resolved": 1, "Pending": 2},
			MonthlyTrend:    []model.TrendPoint{{Label: "May 2024", Count: 3}},
		},
		Compliance: model.ShiftComplianceReport{
			ReportPeriod:  period,
			DailyCoverage: map[string]int{"2024-05-03": 1, "2024-05-02": 2},
		},
		Accidents: model.AccidentsReport{ReportPeriod: period, TotalCost: 160.25},
	}
}

func TestGenerator_WritesOneSheetPerReport(t *testing.T) {
	content, err := NewGenerator().Generate(sampleBundle())
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t,
		[]string{SheetSummary, SheetBusUsage, SheetComplaints, SheetCompliance, SheetAccidents},
		file.GetSheetList())

	rows, err := file.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"Period", "month"}, rows[0])
	assert.Contains(t, rows, []string{"Bus utilization", "66.67%"})
	assert.Contains(t, rows, []string{"Accident cost", "160.25"})

	rows, err = file.GetRows(SheetComplaints)
	require.NoError(t, err)
	statusAt := -1
	for i, row := range rows {
		if len(row) > 0 && row[0] == "Status" {
			statusAt = i
		}
	}
	require.GreaterOrEqual(t, statusAt, 0)
	assert.Equal(t, []string{"Pending", "2"}, rows[statusAt+1])
	assert.Equal(t, []string{"Resolved", "1"}, rows[statusAt+2])

	rows, err = file.GetRows(SheetBusUsage)
	require.NoError(t, err)
	assert.Contains(t, rows, []string{"KA-1", "4"})
}
