package excel

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/busfleet/internal/model"
)

const (
	SheetSummary    = "Summary"
	SheetBusUsage   = "Bus usage"
	SheetComplaints = "Complaints"
	SheetCompliance = "Shift compliance"
	SheetAccidents  = "Accidents"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes one sheet per report in the bundle.
func (g *Generator) Generate(bundle model.ReportBundle) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, err
	}
	g.writeSummary(newSheet(file, SheetSummary), bundle.Summary)

	writers := []struct {
		name  string
		write func(*sheet)
	}{
		{SheetBusUsage, func(s *sheet) { g.writeBusUsage(s, bundle.BusUsage) }},
		{SheetComplaints, func(s *sheet) { g.writeComplaints(s, bundle.Complaints) }},
		{SheetCompliance, func(s *sheet) { g.writeCompliance(s, bundle.Compliance) }},
		{SheetAccidents, func(s *sheet) { g.writeAccidents(s, bundle.Accidents) }},
	}
	for _, w := range writers {
		if _, err := file.NewSheet(w.name); err != nil {
			return nil, err
		}
		w.write(newSheet(file, w.name))
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sheet appends rows top to bottom.
type sheet struct {
	file *excelize.File
	name string
	row  int
}

func newSheet(file *excelize.File, name string) *sheet {
	return &sheet{file: file, name: name, row: 1}
}

func (s *sheet) add(values ...interface{}) {
	for i, value := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, s.row)
		_ = s.file.SetCellValue(s.name, cell, value)
	}
	s.row++
}

func (s *sheet) blank() {
	s.row++
}

func (s *sheet) widths(first, rest float64) {
	_ = s.file.SetColWidth(s.name, "A", "A", first)
	_ = s.file.SetColWidth(s.name, "B", "D", rest)
}

func (s *sheet) period(p model.ReportPeriod) {
	s.add("Period", p.Period)
	s.add("Start date", p.StartDate)
	s.add("End date", p.EndDate)
}

func (s *sheet) ranking(title string, entries []model.CountEntry) {
	s.blank()
	s.add(title, "Count")
	for _, e := range entries {
		s.add(e.Label, e.Count)
	}
}

func (s *sheet) trend(points []model.TrendPoint) {
	s.blank()
	s.add("Month", "Count")
	for _, p := range points {
		s.add(p.Label, p.Count)
	}
}

func (s *sheet) usage(title string, groups []model.GroupUsage) {
	s.blank()
	s.add(title, "Total", "In use")
	for _, u := range groups {
		s.add(u.Name, u.Total, u.InUse)
	}
}

func (g *Generator) writeSummary(s *sheet, r model.SummaryReport) {
	s.period(r.ReportPeriod)
	s.blank()
	s.add("Total buses", r.Overview.TotalBuses)
	s.add("Buses in use", r.Overview.BusesInUse)
	s.add("Total drivers", r.Overview.TotalDrivers)
	s.add("Total complaints", r.Overview.TotalComplaints)
	s.add("Resolved complaints", r.Overview.ResolvedComplaints)
	s.add("Pending complaints", r.Overview.PendingComplaints)
	s.add("Total shifts", r.Overview.TotalShifts)
	s.add("Complete shifts", r.Overview.CompleteShifts)
	s.add("Total accidents", r.Overview.TotalAccidents)
	s.add("Accident cost", formatMoney(r.Overview.AccidentCost))
	s.blank()
	s.add("Bus utilization", r.KeyMetrics.BusUtilization)
	s.add("Complaint resolution rate", r.KeyMetrics.ComplaintResolutionRate)
	s.add("Shift compliance rate", r.KeyMetrics.ShiftComplianceRate)
	s.widths(32, 18)
}

func (g *Generator) writeBusUsage(s *sheet, r model.BusUsageReport) {
	s.period(r.ReportPeriod)
	if r.Depot != "" {
		s.add("Depot", r.Depot)
	}
	s.add("Total buses", r.TotalBuses)
	s.add("Buses in use", r.BusesInUse)
	s.add("Utilization rate", r.UtilizationRate)
	s.usage("Depot", r.ByDepot)
	s.usage("Type", r.ByType)
	s.ranking("Most used buses", r.TopUtilized)
	s.widths(32, 14)
}

func (g *Generator) writeComplaints(s *sheet, r model.ComplaintsReport) {
	s.period(r.ReportPeriod)
	if r.Status != "" {
		s.add("Status filter", r.Status)
	}
	s.add("Total complaints", r.TotalComplaints)
	s.blank()
	s.add("Status", "Count")
	for _, status := range sortedKeys(r.StatusBreakdown) {
		s.add(status, r.StatusBreakdown[status])
	}
	s.ranking("Bus", r.ByBus)
	s.ranking("Driver", r.ByDriver)
	s.trend(r.MonthlyTrend)
	s.widths(32, 14)
}

func (g *Generator) writeCompliance(s *sheet, r model.ShiftComplianceReport) {
	s.period(r.ReportPeriod)
	s.add("Total shifts", r.TotalShifts)
	s.add("Complete shifts", r.CompleteShifts)
	s.add("Compliance rate", r.ComplianceRate)
	s.blank()
	s.add("No driver", r.MissingAssignments.NoDriver)
	s.add("No conductor", r.MissingAssignments.NoConductor)
	s.add("No bus", r.MissingAssignments.NoBus)
	s.add("No route", r.MissingAssignments.NoRoute)
	s.ranking("Driver", r.ByDriver)
	s.ranking("Conductor", r.ByConductor)
	s.ranking("Route", r.ByRoute)
	s.blank()
	s.add("Date", "Shifts")
	for _, date := range sortedKeys(r.DailyCoverage) {
		s.add(date, r.DailyCoverage[date])
	}
	s.widths(32, 14)
}

func (g *Generator) writeAccidents(s *sheet, r model.AccidentsReport) {
	s.period(r.ReportPeriod)
	s.add("Total accidents", r.TotalAccidents)
	s.add("Total cost", formatMoney(r.TotalCost))
	s.add("Average cost", formatMoney(r.AverageCost))
	s.ranking("Bus", r.ByBus)
	s.ranking("Driver", r.ByDriver)
	s.ranking("Route", r.ByRoute)
	s.trend(r.MonthlyTrend)
	s.widths(32, 14)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatMoney(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
