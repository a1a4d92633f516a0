package model

// ReportKind names one of the aggregate reports.
type ReportKind string

const (
	ReportKindSummary         ReportKind = "summary"
	ReportKindBusUsage        ReportKind = "bus-usage"
	ReportKindComplaints      ReportKind = "complaints"
	ReportKindShiftCompliance ReportKind = "shift-compliance"
	ReportKindAccidents       ReportKind = "accidents"
)

// ReportPeriod is embedded in every report to describe the resolved window.
type ReportPeriod struct {
	Period    string `json:"period"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func NewReportPeriod(period string, r DateRange) ReportPeriod {
	return ReportPeriod{
		Period:    period,
		StartDate: r.StartDate(),
		EndDate:   r.EndDate(),
	}
}

type CountEntry struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type TrendPoint struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type GroupUsage struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
	InUse int    `json:"in_use"`
}

type BusUsageReport struct {
	ReportPeriod
	Depot           string       `json:"depot,omitempty"`
	TotalBuses      int          `json:"total_buses"`
	BusesInUse      int          `json:"buses_in_use"`
	UtilizationRate string       `json:"utilization_rate"`
	ByDepot         []GroupUsage `json:"by_depot"`
	ByType          []GroupUsage `json:"by_type"`
	TopUtilized     []CountEntry `json:"top_utilized"`
}

type ComplaintsReport struct {
	ReportPeriod
	Status          string         `json:"status,omitempty"`
	TotalComplaints int            `json:"total_complaints"`
	StatusBreakdown map[string]int `json:"status_breakdown"`
	ByBus           []CountEntry   `json:"by_bus"`
	ByDriver        []CountEntry   `json:"by_driver"`
	MonthlyTrend    []TrendPoint   `json:"monthly_trend"`
}

type MissingAssignments struct {
	NoDriver    int `json:"no_driver"`
	NoConductor int `json:"no_conductor"`
	NoBus       int `json:"no_bus"`
	NoRoute     int `json:"no_route"`
}

type ShiftComplianceReport struct {
	ReportPeriod
	TotalShifts        int                `json:"total_shifts"`
	CompleteShifts     int                `json:"complete_shifts"`
	ComplianceRate     string             `json:"compliance_rate"`
	MissingAssignments MissingAssignments `json:"missing_assignments"`
	ByDriver           []CountEntry       `json:"by_driver"`
	ByConductor        []CountEntry       `json:"by_conductor"`
	ByRoute            []CountEntry       `json:"by_route"`
	DailyCoverage      map[string]int     `json:"daily_coverage"`
}

type SummaryOverview struct {
	TotalBuses         int     `json:"total_buses"`
	BusesInUse         int     `json:"buses_in_use"`
	TotalDrivers       int     `json:"total_drivers"`
	TotalComplaints    int     `json:"total_complaints"`
	ResolvedComplaints int     `json:"resolved_complaints"`
	PendingComplaints  int     `json:"pending_complaints"`
	TotalShifts        int     `json:"total_shifts"`
	CompleteShifts     int     `json:"complete_shifts"`
	TotalAccidents     int     `json:"total_accidents"`
	AccidentCost       float64 `json:"accident_cost"`
}

type KeyMetrics struct {
	BusUtilization          string `json:"bus_utilization"`
	ComplaintResolutionRate string `json:"complaint_resolution_rate"`
	ShiftComplianceRate     string `json:"shift_compliance_rate"`
}

type SummaryReport struct {
	ReportPeriod
	Overview   SummaryOverview `json:"overview"`
	KeyMetrics KeyMetrics      `json:"key_metrics"`
}

type AccidentsReport struct {
	ReportPeriod
	TotalAccidents int          `json:"total_accidents"`
	TotalCost      float64      `json:"total_cost"`
	AverageCost    float64      `json:"average_cost"`
	ByBus          []CountEntry `json:"by_bus"`
	ByDriver       []CountEntry `json:"by_driver"`
	ByRoute        []CountEntry `json:"by_route"`
	MonthlyTrend   []TrendPoint `json:"monthly_trend"`
}

// ReportBundle groups the reports rendered into a single export document.
type ReportBundle struct {
	Summary    SummaryReport
	BusUsage   BusUsageReport
	Complaints ComplaintsReport
	Compliance ShiftComplianceReport
	Accidents  AccidentsReport
}
