package report

import (
	"strings"

	"github.com/nurpe/busfleet/internal/model"
)

// Complaints breaks down complaints filed in r by status, bus, driver and
// month. A non-empty status keeps only complaints with that status.
func Complaints(period string, r model.DateRange, complaints []model.Complaint, status string) model.ComplaintsReport {
	complaints = FilterByPeriod(complaints, ComplaintDate, r)
	status = strings.TrimSpace(status)
	if status != "" {
		complaints = complaintsWithStatus(complaints, status)
	}

	breakdown := make(map[string]int)
	byBus := newCounter()
	byDriver := newCounter()
	trend := make(monthTrend)
	for _, c := range complaints {
		breakdown[string(c.Status)]++
		if c.BusID != nil {
			byBus.add(*c.BusID, labelOr(c.Bus.Label(), "Bus", *c.BusID))
		}
		if c.DriverID != nil {
			byDriver.add(*c.DriverID, labelOr(c.Driver.Label(), "Driver", *c.DriverID))
		}
		trend.add(c.ComplaintDate)
	}

	return model.ComplaintsReport{
		ReportPeriod:    model.NewReportPeriod(NormalizePeriod(period), r),
		Status:          status,
		TotalComplaints: len(complaints),
		StatusBreakdown: breakdown,
		ByBus:           byBus.top(TopLimit),
		ByDriver:        byDriver.top(TopLimit),
		MonthlyTrend:    trend.points(),
	}
}

func complaintsWithStatus(complaints []model.Complaint, status string) []model.Complaint {
	result := make([]model.Complaint, 0, len(complaints))
	for _, c := range complaints {
		if strings.EqualFold(string(c.Status), status) {
			result = append(result, c)
		}
	}
	return result
}
