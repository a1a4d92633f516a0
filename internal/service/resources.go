package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nurpe/busfleet/internal/model"
	"github.com/nurpe/busfleet/internal/repository"
)

const clockLayout = "15:04"

func NewBusService(store Store[model.Bus]) *ResourceService[model.Bus] {
	return &ResourceService[model.Bus]{
		store: store,
		id:    func(b *model.Bus) *uint { return &b.ID },
		prepare: func(_ context.Context, b *model.Bus) error {
			b.DepotName = strings.TrimSpace(b.DepotName)
			b.Type = strings.TrimSpace(b.Type)
			b.RegistrationNumber = strings.TrimSpace(b.RegistrationNumber)
			switch {
			case b.RegistrationNumber == "":
				return fmt.Errorf("%w: registration_number is required", ErrInvalidInput)
			case b.DepotName == "":
				return fmt.Errorf("%w: depot_name is required", ErrInvalidInput)
			case b.Capacity < 0:
				return fmt.Errorf("%w: capacity must not be negative", ErrInvalidInput)
			}
			return nil
		},
		filter: func(f ListFilter) ([]repository.Scope, error) {
			if strings.TrimSpace(f.Depot) == "" {
				return nil, nil
			}
			return []repository.Scope{repository.WhereFold("depot_name", f.Depot)}, nil
		},
	}
}

func NewRouteService(store Store[model.Route]) *ResourceService[model.Route] {
	return &ResourceService[model.Route]{
		store: store,
		id:    func(r *model.Route) *uint { return &r.ID },
		prepare: func(_ context.Context, r *model.Route) error {
			r.StartPoint = strings.TrimSpace(r.StartPoint)
			r.EndPoint = strings.TrimSpace(r.EndPoint)
			switch {
			case r.StartPoint == "" || r.EndPoint == "":
				return fmt.Errorf("%w: start_point and end_point are required", ErrInvalidInput)
			case r.Distance < 0:
				return fmt.Errorf("%w: distance must not be negative", ErrInvalidInput)
			case r.AvgDuration < 0:
				return fmt.Errorf("%w: avg_duration must not be negative", ErrInvalidInput)
			}
			return nil
		},
	}
}

func NewDriverService(store Store[model.Driver]) *ResourceService[model.Driver] {
	return &ResourceService[model.Driver]{
		store: store,
		id:    func(d *model.Driver) *uint { return &d.ID },
		prepare: func(_ context.Context, d *model.Driver) error {
			d.Name = strings.TrimSpace(d.Name)
			d.LicenseNumber = strings.TrimSpace(d.LicenseNumber)
			if d.Status == "" {
				d.Status = model.DriverStatusActive
			}
			switch {
			case d.Name == "":
				return fmt.Errorf("%w: name is required", ErrInvalidInput)
			case d.LicenseNumber == "":
				return fmt.Errorf("%w: license_number is required", ErrInvalidInput)
			case d.Experience < 0:
				return fmt.Errorf("%w: experience must not be negative", ErrInvalidInput)
			case !d.Status.Valid():
				return fmt.Errorf("%w: unknown driver status %q", ErrInvalidInput, d.Status)
			}
			return nil
		},
		filter: func(f ListFilter) ([]repository.Scope, error) {
			if strings.TrimSpace(f.Status) == "" {
				return nil, nil
			}
			return []repository.Scope{repository.WhereFold("status", f.Status)}, nil
		},
	}
}

func NewConductorService(store Store[model.Conductor], routes ReferenceChecker) *ResourceService[model.Conductor] {
	return &ResourceService[model.Conductor]{
		store: store,
		id:    func(c *model.Conductor) *uint { return &c.ID },
		prepare: func(ctx context.Context, c *model.Conductor) error {
			c.Name = strings.TrimSpace(c.Name)
			c.AssignedRoute = nil
			if c.Name == "" {
				return fmt.Errorf("%w: name is required", ErrInvalidInput)
			}
			return requireRef(ctx, routes, c.AssignedRouteID, "assigned_route_id")
		},
	}
}

// ShiftRefs are the tables a shift points into.
type ShiftRefs struct {
	Drivers    ReferenceChecker
	Conductors ReferenceChecker
	Buses      ReferenceChecker
	Routes     ReferenceChecker
}

func NewShiftService(store Store[model.Shift], refs ShiftRefs) *ResourceService[model.Shift] {
	return &ResourceService[model.Shift]{
		store: store,
		id:    func(s *model.Shift) *uint { return &s.ID },
		prepare: func(ctx context.Context, s *model.Shift) error {
			s.Driver, s.Conductor, s.Bus, s.Route = nil, nil, nil, nil
			s.StartTime = strings.TrimSpace(s.StartTime)
			s.EndTime = strings.TrimSpace(s.EndTime)
			if err := validateClock(s.StartTime, "start_time"); err != nil {
				return err
			}
			if err := validateClock(s.EndTime, "end_time"); err != nil {
				return err
			}
			if err := requireRef(ctx, refs.Drivers, s.DriverID, "driver_id"); err != nil {
				return err
			}
			if err := requireRef(ctx, refs.Conductors, s.ConductorID, "conductor_id"); err != nil {
				return err
			}
			if err := requireRef(ctx, refs.Buses, s.BusID, "bus_id"); err != nil {
				return err
			}
			return requireRef(ctx, refs.Routes, s.RouteID, "route_id")
		},
		filter: func(f ListFilter) ([]repository.Scope, error) {
			raw := strings.TrimSpace(f.Date)
			if raw == "" {
				return nil, nil
			}
			date := model.ParseDate(raw)
			if !date.Valid {
				return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
			}
			return []repository.Scope{repository.OnDate("shift_date", date)}, nil
		},
	}
}

func NewComplaintService(store Store[model.Complaint], drivers, buses ReferenceChecker) *ResourceService[model.Complaint] {
	return &ResourceService[model.Complaint]{
		store: store,
		id:    func(c *model.Complaint) *uint { return &c.ID },
		prepare: func(ctx context.Context, c *model.Complaint) error {
			c.Driver, c.Bus = nil, nil
			if c.Status == "" {
				c.Status = model.ComplaintStatusPending
			}
			if !c.Status.Valid() {
				return fmt.Errorf("%w: unknown complaint status %q", ErrInvalidInput, c.Status)
			}
			if err := requireRef(ctx, drivers, c.DriverID, "driver_id"); err != nil {
				return err
			}
			return requireRef(ctx, buses, c.BusID, "bus_id")
		},
		filter: func(f ListFilter) ([]repository.Scope, error) {
			if strings.TrimSpace(f.Status) == "" {
				return nil, nil
			}
			return []repository.Scope{repository.WhereFold("status", f.Status)}, nil
		},
	}
}

func NewAccidentService(store Store[model.AccidentReport], drivers, buses, routes ReferenceChecker) *ResourceService[model.AccidentReport] {
	return &ResourceService[model.AccidentReport]{
		store: store,
		id:    func(a *model.AccidentReport) *uint { return &a.ID },
		prepare: func(ctx context.Context, a *model.AccidentReport) error {
			a.Driver, a.Bus, a.Route = nil, nil, nil
			a.Location = strings.TrimSpace(a.Location)
			if a.Cost < 0 {
				return fmt.Errorf("%w: cost must not be negative", ErrInvalidInput)
			}
			if err := requireRef(ctx, drivers, a.DriverID, "driver_id"); err != nil {
				return err
			}
			if err := requireRef(ctx, buses, a.BusID, "bus_id"); err != nil {
				return err
			}
			return requireRef(ctx, routes, a.RouteID, "route_id")
		},
	}
}

func validateClock(value, field string) error {
	if value == "" {
		return nil
	}
	if len(value) != len(clockLayout) {
		return fmt.Errorf("%w: %s must be HH:MM", ErrInvalidInput, field)
	}
	if _, err := time.Parse(clockLayout, value); err != nil {
		return fmt.Errorf("%w: %s must be HH:MM", ErrInvalidInput, field)
	}
	return nil
}
