package report

import "github.com/nurpe/busfleet/internal/model"

// Accidents totals accident reports in r and ranks the buses, drivers and
// routes involved.
func Accidents(period string, r model.DateRange, accidents []model.AccidentReport) model.AccidentsReport {
	accidents = FilterByPeriod(accidents, AccidentDate, r)

	byBus := newCounter()
	byDriver := newCounter()
	byRoute := newCounter()
	trend := make(monthTrend)
	total := 0.0
	for _, a := range accidents {
		total += a.Cost
		if a.BusID != nil {
			byBus.add(*a.BusID, labelOr(a.Bus.Label(), "Bus", *a.BusID))
		}
		if a.DriverID != nil {
			byDriver.add(*a.DriverID, labelOr(a.Driver.Label(), "Driver", *a.DriverID))
		}
		if a.RouteID != nil {
			byRoute.add(*a.RouteID, labelOr(a.Route.Label(), "Route", *a.RouteID))
		}
		trend.add(a.AccidentDate)
	}

	average := 0.0
	if len(accidents) > 0 {
		average = total / float64(len(accidents))
	}

	return model.AccidentsReport{
		ReportPeriod:   model.NewReportPeriod(NormalizePeriod(period), r),
		TotalAccidents: len(accidents),
		TotalCost:      round2(total),
		AverageCost:    round2(average),
		ByBus:          byBus.top(TopLimit),
		ByDriver:       byDriver.top(TopLimit),
		ByRoute:        byRoute.top(TopLimit),
		MonthlyTrend:   trend.points(),
	}
}
