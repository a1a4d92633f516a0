package report

import "github.com/nurpe/busfleet/internal/model"

// ShiftCompliance measures how many shifts in r carry all four assignments
// and which assignments are missing. A shift missing several assignments
// counts once in each of the corresponding counters.
func ShiftCompliance(period string, r model.DateRange, shifts []model.Shift) model.ShiftComplianceReport {
	shifts = FilterByPeriod(shifts, ShiftDate, r)

	var missing model.MissingAssignments
	byDriver := newCounter()
	byConductor := newCounter()
	byRoute := newCounter()
	coverage := make(map[string]int)
	complete := 0

	for _, s := range shifts {
		if s.Complete() {
			complete++
		}
		if s.DriverID == nil {
			missing.NoDriver++
		} else {
			byDriver.add(*s.DriverID, labelOr(s.Driver.Label(), "Driver", *s.DriverID))
		}
		if s.ConductorID == nil {
			missing.NoConductor++
		} else {
			byConductor.add(*s.ConductorID, labelOr(s.Conductor.Label(), "Conductor", *s.ConductorID))
		}
		if s.BusID == nil {
			missing.NoBus++
		}
		if s.RouteID == nil {
			missing.NoRoute++
		} else {
			byRoute.add(*s.RouteID, labelOr(s.Route.Label(), "Route", *s.RouteID))
		}
		coverage[s.ShiftDate.String()]++
	}

	return model.ShiftComplianceReport{
		ReportPeriod:       model.NewReportPeriod(NormalizePeriod(period), r),
		TotalShifts:        len(shifts),
		CompleteShifts:     complete,
		ComplianceRate:     FormatPercent(complete, len(shifts)),
		MissingAssignments: missing,
		ByDriver:           byDriver.top(TopLimit),
		ByConductor:        byConductor.top(TopLimit),
		ByRoute:            byRoute.top(TopLimit),
		DailyCoverage:      coverage,
	}
}
