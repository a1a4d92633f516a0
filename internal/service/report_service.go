package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nurpe/busfleet/internal/config"
	"github.com/nurpe/busfleet/internal/model"
	"github.com/nurpe/busfleet/internal/report"
)

const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// ReportSource is the read side the reports are computed from. A nil window
// returns every row.
type ReportSource interface {
	ListBuses(ctx context.Context) ([]model.Bus, error)
	ListDrivers(ctx context.Context) ([]model.Driver, error)
	ListShifts(ctx context.Context, within *model.DateRange) ([]model.Shift, error)
	ListComplaints(ctx context.Context, within *model.DateRange) ([]model.Complaint, error)
	ListAccidents(ctx context.Context, within *model.DateRange) ([]model.AccidentReport, error)
}

type ExcelGenerator interface {
	Generate(bundle model.ReportBundle) ([]byte, error)
}

type PDFGenerator interface {
	Generate(bundle model.ReportBundle) ([]byte, error)
}

type Clock func() time.Time

type ReportOption func(*ReportService)

func WithClock(clock Clock) ReportOption {
	return func(s *ReportService) { s.now = clock }
}

type ReportService struct {
	repo          ReportSource
	excel         ExcelGenerator
	pdf           PDFGenerator
	now           Clock
	defaultAnchor string
}

func NewReportService(repo ReportSource, excel ExcelGenerator, pdf PDFGenerator, cfg *config.Config, opts ...ReportOption) *ReportService {
	s := &ReportService{
		repo:          repo,
		excel:         excel,
		pdf:           pdf,
		now:           time.Now,
		defaultAnchor: config.AnchorNow,
	}
	if cfg != nil && cfg.Reports.DefaultAnchor != "" {
		s.defaultAnchor = cfg.Reports.DefaultAnchor
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type ReportQuery struct {
	Period string
	// Anchor selects the reference instant: "now" or "latest" (the most
	// recent date in the reported data). Empty uses the configured default.
	Anchor string
	Depot  string
	Status string
}

type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

type dataset struct {
	buses      []model.Bus
	drivers    []model.Driver
	shifts     []model.Shift
	complaints []model.Complaint
	accidents  []model.AccidentReport
}

type needs struct {
	buses, drivers, shifts, complaints, accidents bool
}

func (s *ReportService) BusUsage(ctx context.Context, q ReportQuery) (*model.BusUsageReport, error) {
	data, period, r, err := s.load(ctx, q, needs{buses: true, shifts: true})
	if err != nil {
		return nil, err
	}
	out := report.BusUsage(period, r, data.buses, data.shifts, q.Depot)
	return &out, nil
}

func (s *ReportService) Complaints(ctx context.Context, q ReportQuery) (*model.ComplaintsReport, error) {
	data, period, r, err := s.load(ctx, q, needs{complaints: true})
	if err != nil {
		return nil, err
	}
	out := report.Complaints(period, r, data.complaints, q.Status)
	return &out, nil
}

func (s *ReportService) ShiftCompliance(ctx context.Context, q ReportQuery) (*model.ShiftComplianceReport, error) {
	data, period, r, err := s.load(ctx, q, needs{shifts: true})
	if err != nil {
		return nil, err
	}
	out := report.ShiftCompliance(period, r, data.shifts)
	return &out, nil
}

func (s *ReportService) Accidents(ctx context.Context, q ReportQuery) (*model.AccidentsReport, error) {
	data, period, r, err := s.load(ctx, q, needs{accidents: true})
	if err != nil {
		return nil, err
	}
	out := report.Accidents(period, r, data.accidents)
	return &out, nil
}

func (s *ReportService) Summary(ctx context.Context, q ReportQuery) (*model.SummaryReport, error) {
	data, period, r, err := s.load(ctx, q, needs{buses: true, drivers: true, shifts: true, complaints: true, accidents: true})
	if err != nil {
		return nil, err
	}
	out := report.Summary(period, r, data.summaryInput())
	return &out, nil
}

// Bundle computes every report over one consistent read of the data.
func (s *ReportService) Bundle(ctx context.Context, q ReportQuery) (*model.ReportBundle, error) {
	data, period, r, err := s.load(ctx, q, needs{buses: true, drivers: true, shifts: true, complaints: true, accidents: true})
	if err != nil {
		return nil, err
	}
	return &model.ReportBundle{
		Summary:    report.Summary(period, r, data.summaryInput()),
		BusUsage:   report.BusUsage(period, r, data.buses, data.shifts, q.Depot),
		Complaints: report.Complaints(period, r, data.complaints, q.Status),
		Compliance: report.ShiftCompliance(period, r, data.shifts),
		Accidents:  report.Accidents(period, r, data.accidents),
	}, nil
}

// Export renders the report bundle as an xlsx workbook or a pdf document.
func (s *ReportService) Export(ctx context.Context, q ReportQuery, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatXLSX
	}
	if format != FormatXLSX && format != FormatPDF {
		return nil, fmt.Errorf("%w: format must be %q or %q", ErrInvalidInput, FormatXLSX, FormatPDF)
	}

	bundle, err := s.Bundle(ctx, q)
	if err != nil {
		return nil, err
	}

	var (
		content     []byte
		contentType string
	)
	switch format {
	case FormatPDF:
		content, err = s.pdf.Generate(*bundle)
		contentType = "application/pdf"
	default:
		content, err = s.excel.Generate(*bundle)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}

	return &ExportResult{
		FileName:    buildFileName(bundle.Summary.ReportPeriod, format),
		ContentType: contentType,
		Content:     content,
	}, nil
}

// load fetches the requested lists concurrently and resolves the report
// window. Any failed fetch fails the whole load.
func (s *ReportService) load(ctx context.Context, q ReportQuery, n needs) (dataset, string, model.DateRange, error) {
	period := report.NormalizePeriod(q.Period)
	anchor, err := s.anchor(q.Anchor)
	if err != nil {
		return dataset{}, "", model.DateRange{}, err
	}

	var within *model.DateRange
	r := report.ResolveDateRange(period, s.now())
	if anchor == config.AnchorNow {
		within = &r
	}

	var data dataset
	g, gctx := errgroup.WithContext(ctx)
	if n.buses {
		g.Go(func() (err error) {
			data.buses, err = s.repo.ListBuses(gctx)
			return err
		})
	}
	if n.drivers {
		g.Go(func() (err error) {
			data.drivers, err = s.repo.ListDrivers(gctx)
			return err
		})
	}
	if n.shifts {
		g.Go(func() (err error) {
			data.shifts, err = s.repo.ListShifts(gctx, within)
			return err
		})
	}
	if n.complaints {
		g.Go(func() (err error) {
			data.complaints, err = s.repo.ListComplaints(gctx, within)
			return err
		})
	}
	if n.accidents {
		g.Go(func() (err error) {
			data.accidents, err = s.repo.ListAccidents(gctx, within)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return dataset{}, "", model.DateRange{}, fmt.Errorf("%w: %v", ErrDataSource, err)
	}

	if anchor == config.AnchorLatest {
		if ref, ok := data.latest(); ok {
			r = report.ResolveDateRange(period, ref)
		}
	}
	return data, period, r, nil
}

func (s *ReportService) anchor(raw string) (string, error) {
	switch a := strings.ToLower(strings.TrimSpace(raw)); a {
	case "":
		return s.defaultAnchor, nil
	case config.AnchorNow, config.AnchorLatest:
		return a, nil
	default:
		return "", fmt.Errorf("%w: anchor must be %q or %q", ErrInvalidInput, config.AnchorNow, config.AnchorLatest)
	}
}

// latest is the most recent dated record among the dated lists loaded.
func (d dataset) latest() (time.Time, bool) {
	var latest time.Time
	found := false
	consider := func(t time.Time, ok bool) {
		if ok && (!found || t.After(latest)) {
			latest, found = t, true
		}
	}
	consider(report.LatestDate(d.shifts, report.ShiftDate))
	consider(report.LatestDate(d.complaints, report.ComplaintDate))
	consider(report.LatestDate(d.accidents, report.AccidentDate))
	return latest, found
}

func (d dataset) summaryInput() report.SummaryInput {
	return report.SummaryInput{
		Buses:      d.buses,
		Drivers:    d.drivers,
		Complaints: d.complaints,
		Shifts:     d.shifts,
		Accidents:  d.accidents,
	}
}

func buildFileName(p model.ReportPeriod, ext string) string {
	name := fmt.Sprintf("fleet-report-%s-%s-%s", sanitizeFileName(p.Period), p.StartDate, p.EndDate)
	return name + "." + ext
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
