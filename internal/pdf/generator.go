package pdf

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/busfleet/internal/model"
)

const fontName = "Helvetica"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the bundle as an A4 document, one section per report.
func (g *Generator) Generate(bundle model.ReportBundle) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	w := &writer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	summary := bundle.Summary
	pdf.SetFont(fontName, "B", 16)
	pdf.CellFormat(0, 10, "Fleet report", "", 1, "C", false, 0, "")
	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s (%s to %s)", summary.Period, summary.StartDate, summary.EndDate), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	w.section("Overview")
	w.pairs([][2]string{
		{"Total buses", itoa(summary.Overview.TotalBuses)},
		{"Buses in use", itoa(summary.Overview.BusesInUse)},
		{"Total drivers", itoa(summary.Overview.TotalDrivers)},
		{"Total complaints", itoa(summary.Overview.TotalComplaints)},
		{"Resolved complaints", itoa(summary.Overview.ResolvedComplaints)},
		{"Pending complaints", itoa(summary.Overview.PendingComplaints)},
		{"Total shifts", itoa(summary.Overview.TotalShifts)},
		{"Complete shifts", itoa(summary.Overview.CompleteShifts)},
		{"Total accidents", itoa(summary.Overview.TotalAccidents)},
		{"Accident cost", formatAmount(summary.Overview.AccidentCost)},
		{"Bus utilization", summary.KeyMetrics.BusUtilization},
		{"Complaint resolution rate", summary.KeyMetrics.ComplaintResolutionRate},
		{"Shift compliance rate", summary.KeyMetrics.ShiftComplianceRate},
	})

	usage := bundle.BusUsage
	w.section("Bus usage")
	w.table([]string{"Depot", "Total", "In use"}, usageRows(usage.ByDepot))
	w.table([]string{"Type", "Total", "In use"}, usageRows(usage.ByType))
	w.table([]string{"Most used bus", "Shifts"}, countRows(usage.TopUtilized))

	complaints := bundle.Complaints
	w.section("Complaints")
	w.table([]string{"Status", "Count"}, mapRows(complaints.StatusBreakdown))
	w.table([]string{"Bus", "Complaints"}, countRows(complaints.ByBus))
	w.table([]string{"Driver", "Complaints"}, countRows(complaints.ByDriver))
	w.table([]string{"Month", "Complaints"}, trendRows(complaints.MonthlyTrend))

	compliance := bundle.Compliance
	w.section("Shift compliance")
	w.pairs([][2]string{
		{"Compliance rate", compliance.ComplianceRate},
		{"Missing driver", itoa(compliance.MissingAssignments.NoDriver)},
		{"Missing conductor", itoa(compliance.MissingAssignments.NoConductor)},
		{"Missing bus", itoa(compliance.MissingAssignments.NoBus)},
		{"Missing route", itoa(compliance.MissingAssignments.NoRoute)},
	})
	w.table([]string{"Date", "Shifts"}, mapRows(compliance.DailyCoverage))

	accidents := bundle.Accidents
	w.section("Accidents")
	w.pairs([][2]string{
		{"Total accidents", itoa(accidents.TotalAccidents)},
		{"Total cost", formatAmount(accidents.TotalCost)},
		{"Average cost", formatAmount(accidents.AverageCost)},
	})
	w.table([]string{"Bus", "Accidents"}, countRows(accidents.ByBus))
	w.table([]string{"Month", "Accidents"}, trendRows(accidents.MonthlyTrend))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type writer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (w *writer) section(title string) {
	w.pdf.Ln(2)
	w.pdf.SetFont(fontName, "B", 12)
	w.pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func (w *writer) pairs(rows [][2]string) {
	w.pdf.SetFont(fontName, "", 10)
	for _, row := range rows {
		w.pdf.CellFormat(70, 6, w.tr(row[0]), "", 0, "L", false, 0, "")
		w.pdf.CellFormat(0, 6, w.tr(row[1]), "", 1, "L", false, 0, "")
	}
}

// table skips empty tables entirely.
func (w *writer) table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]float64, len(headers))
	widths[0] = 90
	for i := 1; i < len(widths); i++ {
		widths[i] = 30
	}
	w.pdf.Ln(1)
	drawTableRow(w.pdf, w.tr, headers, widths, true)
	for _, row := range rows {
		drawTableRow(w.pdf, w.tr, row, widths, false)
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, tr(col), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func usageRows(groups []model.GroupUsage) [][]string {
	rows := make([][]string, 0, len(groups))
	for _, u := range groups {
		rows = append(rows, []string{safeValue(u.Name), itoa(u.Total), itoa(u.InUse)})
	}
	return rows
}

func countRows(entries []model.CountEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{safeValue(e.Label), itoa(e.Count)})
	}
	return rows
}

func trendRows(points []model.TrendPoint) [][]string {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{p.Label, itoa(p.Count)})
	}
	return rows
}

func mapRows(m map[string]int) [][]string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, itoa(m[k])})
	}
	return rows
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
