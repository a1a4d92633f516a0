package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nurpe/busfleet/internal/model"
)

// ReportRepository is the read side used by the aggregators. A nil window
// means "all rows"; otherwise rows outside the window or without a date are
// left out by the database.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) ListBuses(ctx context.Context) ([]model.Bus, error) {
	buses := make([]model.Bus, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&buses).Error; err != nil {
		return nil, err
	}
	return buses, nil
}

func (r *ReportRepository) ListDrivers(ctx context.Context) ([]model.Driver, error) {
	drivers := make([]model.Driver, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

func (r *ReportRepository) ListShifts(ctx context.Context, within *model.DateRange) ([]model.Shift, error) {
	q := r.db.WithContext(ctx).
		Preload("Driver").
		Preload("Conductor").
		Preload("Bus").
		Preload("Route")
	if within != nil {
		q = q.Scopes(Between("shift_date", *within))
	}

	shifts := make([]model.Shift, 0)
	if err := q.Order("shift_date ASC, id ASC").Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *ReportRepository) ListComplaints(ctx context.Context, within *model.DateRange) ([]model.Complaint, error) {
	q := r.db.WithContext(ctx).
		Preload("Driver").
		Preload("Bus")
	if within != nil {
		q = q.Scopes(Between("complaint_date", *within))
	}

	complaints := make([]model.Complaint, 0)
	if err := q.Order("complaint_date ASC, id ASC").Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *ReportRepository) ListAccidents(ctx context.Context, within *model.DateRange) ([]model.AccidentReport, error) {
	q := r.db.WithContext(ctx).
		Preload("Driver").
		Preload("Bus").
		Preload("Route")
	if within != nil {
		q = q.Scopes(Between("accident_date", *within))
	}

	accidents := make([]model.AccidentReport, 0)
	if err := q.Order("accident_date ASC, id ASC").Find(&accidents).Error; err != nil {
		return nil, err
	}
	return accidents, nil
}
