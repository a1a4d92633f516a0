package report

import "github.com/nurpe/busfleet/internal/model"

// FilterByPeriod keeps the records whose date falls inside r, inclusive.
// Records without a valid date are dropped.
func FilterByPeriod[T any](records []T, date func(T) model.Date, r model.DateRange) []T {
	if len(records) == 0 {
		return records
	}
	result := make([]T, 0, len(records))
	for _, record := range records {
		if r.Contains(date(record)) {
			result = append(result, record)
		}
	}
	return result
}

func ShiftDate(s model.Shift) model.Date { return s.ShiftDate }
func ComplaintDate(c model.Complaint) model.Date { return c.ComplaintDate }
func AccidentDate(a model.AccidentReport) model.Date { return a.AccidentDate }
func DriverJoinDate(d model.Driver) model.Date { return d.JoinDate }
func ConductorJoinDate(c model.Conductor) model.Date { return c.JoinDate }
