package report

import (
	"strings"

	"github.com/nurpe/busfleet/internal/model"
)

// BusUsage reports how many buses ran at least one shift in r, grouped by
// depot and by type. A non-empty depot restricts both buses and shifts.
func BusUsage(period string, r model.DateRange, buses []model.Bus, shifts []model.Shift, depot string) model.BusUsageReport {
	depot = strings.TrimSpace(depot)
	if depot != "" {
		buses = busesInDepot(buses, depot)
	}

	shiftsPerBus := countShiftsPerBus(buses, FilterByPeriod(shifts, ShiftDate, r))

	byDepot := newUsageCounter()
	byType := newUsageCounter()
	ranked := make([]model.CountEntry, 0, len(buses))
	inUse := 0
	for _, bus := range buses {
		count := shiftsPerBus[bus.ID]
		used := count > 0
		if used {
			inUse++
			ranked = append(ranked, model.CountEntry{
				ID:    bus.ID,
				Label: labelOr(bus.RegistrationNumber, "Bus", bus.ID),
				Count: count,
			})
		}
		byDepot.add(groupName(bus.DepotName), used)
		byType.add(groupName(bus.Type), used)
	}

	return model.BusUsageReport{
		ReportPeriod:    model.NewReportPeriod(NormalizePeriod(period), r),
		Depot:           depot,
		TotalBuses:      len(buses),
		BusesInUse:      inUse,
		UtilizationRate: FormatPercent(inUse, len(buses)),
		ByDepot:         byDepot.list(),
		ByType:          byType.list(),
		TopUtilized:     rank(ranked, TopLimit),
	}
}

// countShiftsPerBus counts shifts per bus, ignoring shifts without a bus or
// referencing a bus outside the given list.
func countShiftsPerBus(buses []model.Bus, shifts []model.Shift) map[uint]int {
	known := make(map[uint]struct{}, len(buses))
	for _, bus := range buses {
		known[bus.ID] = struct{}{}
	}
	counts := make(map[uint]int, len(buses))
	for _, shift := range shifts {
		if shift.BusID == nil {
			continue
		}
		if _, ok := known[*shift.BusID]; !ok {
			continue
		}
		counts[*shift.BusID]++
	}
	return counts
}

func busesInDepot(buses []model.Bus, depot string) []model.Bus {
	result := make([]model.Bus, 0, len(buses))
	for _, bus := range buses {
		if strings.EqualFold(strings.TrimSpace(bus.DepotName), depot) {
			result = append(result, bus)
		}
	}
	return result
}

func groupName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Unknown"
	}
	return name
}
