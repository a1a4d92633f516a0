package main

import (
	"gorm.io/gorm"

	"github.com/nurpe/busfleet/internal/auth"
	"github.com/nurpe/busfleet/internal/config"
	"github.com/nurpe/busfleet/internal/excel"
	httphandler "github.com/nurpe/busfleet/internal/http"
	"github.com/nurpe/busfleet/internal/pdf"
	"github.com/nurpe/busfleet/internal/repository"
	"github.com/nurpe/busfleet/internal/service"
)

func newReportService(cfg *config.Config, database *gorm.DB) *service.ReportService {
	return service.NewReportService(
		repository.NewReportRepository(database),
		excel.NewGenerator(),
		pdf.NewGenerator(),
		cfg,
	)
}

func newServices(cfg *config.Config, database *gorm.DB, tokens *auth.TokenManager) httphandler.Services {
	drivers := repository.NewDriverRepository(database)
	conductors := repository.NewConductorRepository(database)
	buses := repository.NewBusRepository(database)
	routes := repository.NewRouteRepository(database)
	shifts := repository.NewShiftRepository(database)
	complaints := repository.NewComplaintRepository(database)
	accidents := repository.NewAccidentRepository(database)

	return httphandler.Services{
		Drivers:    service.NewDriverService(drivers),
		Conductors: service.NewConductorService(conductors, routes),
		Buses:      service.NewBusService(buses),
		Routes:     service.NewRouteService(routes),
		Shifts: service.NewShiftService(shifts, service.ShiftRefs{
			Drivers:    drivers,
			Conductors: conductors,
			Buses:      buses,
			Routes:     routes,
		}),
		Complaints: service.NewComplaintService(complaints, drivers, buses),
		Accidents:  service.NewAccidentService(accidents, drivers, buses, routes),
		Auth: service.NewAuthService(
			repository.NewAccountRepository(database),
			auth.NewPasswordHasher(cfg.Auth.BcryptCost),
			tokens,
		),
		Reports: newReportService(cfg, database),
	}
}
