package report

import "github.com/nurpe/busfleet/internal/model"

type SummaryInput struct {
	Buses      []model.Bus
	Drivers    []model.Driver
	Complaints []model.Complaint
	Shifts     []model.Shift
	Accidents  []model.AccidentReport
}

// Summary combines fleet-wide counts with the three headline rates. Buses
// and drivers are counted in full; the other lists are limited to r.
func Summary(period string, r model.DateRange, in SummaryInput) model.SummaryReport {
	complaints := FilterByPeriod(in.Complaints, ComplaintDate, r)
	shifts := FilterByPeriod(in.Shifts, ShiftDate, r)
	accidents := FilterByPeriod(in.Accidents, AccidentDate, r)

	busesInUse := len(countShiftsPerBus(in.Buses, shifts))

	resolved, pending := 0, 0
	for _, c := range complaints {
		switch c.Status {
		case model.ComplaintStatusResolved:
			resolved++
		case model.ComplaintStatusPending:
			pending++
		}
	}

	complete := 0
	for _, s := range shifts {
		if s.Complete() {
			complete++
		}
	}

	cost := 0.0
	for _, a := range accidents {
		cost += a.Cost
	}

	return model.SummaryReport{
		ReportPeriod: model.NewReportPeriod(NormalizePeriod(period), r),
		Overview: model.SummaryOverview{
			TotalBuses:         len(in.Buses),
			BusesInUse:         busesInUse,
			TotalDrivers:       len(in.Drivers),
			TotalComplaints:    len(complaints),
			ResolvedComplaints: resolved,
			PendingComplaints:  pending,
			TotalShifts:        len(shifts),
			CompleteShifts:     complete,
			TotalAccidents:     len(accidents),
			AccidentCost:       round2(cost),
		},
		KeyMetrics: model.KeyMetrics{
			BusUtilization:          FormatPercent(busesInUse, len(in.Buses)),
			ComplaintResolutionRate: FormatPercent(resolved, len(complaints)),
			ShiftComplianceRate:     FormatPercent(complete, len(shifts)),
		},
	}
}
