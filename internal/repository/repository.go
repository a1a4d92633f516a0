package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nurpe/busfleet/internal/model"
)

// Scope narrows a list query.
type Scope = func(*gorm.DB) *gorm.DB

// Repository provides primary-key CRUD for one entity table. Reads eager-load
// the configured associations; writes never touch associations.
type Repository[T any] struct {
	db       *gorm.DB
	preloads []string
}

func newRepository[T any](db *gorm.DB, preloads ...string) *Repository[T] {
	return &Repository[T]{db: db, preloads: preloads}
}

func NewBusRepository(db *gorm.DB) *Repository[model.Bus] {
	return newRepository[model.Bus](db)
}

func NewRouteRepository(db *gorm.DB) *Repository[model.Route] {
	return newRepository[model.Route](db)
}

func NewDriverRepository(db *gorm.DB) *Repository[model.Driver] {
	return newRepository[model.Driver](db)
}

func NewConductorRepository(db *gorm.DB) *Repository[model.Conductor] {
	return newRepository[model.Conductor](db, "AssignedRoute")
}

func NewShiftRepository(db *gorm.DB) *Repository[model.Shift] {
	return newRepository[model.Shift](db, "Driver", "Conductor", "Bus", "Route")
}

func NewComplaintRepository(db *gorm.DB) *Repository[model.Complaint] {
	return newRepository[model.Complaint](db, "Driver", "Bus")
}

func NewAccidentRepository(db *gorm.DB) *Repository[model.AccidentReport] {
	return newRepository[model.AccidentReport](db, "Driver", "Bus", "Route")
}

func (r *Repository[T]) read(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, association := range r.preloads {
		q = q.Preload(association)
	}
	return q
}

// Get returns gorm.ErrRecordNotFound when no row has the id.
func (r *Repository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := r.read(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository[T]) List(ctx context.Context, scopes ...Scope) ([]T, error) {
	items := make([]T, 0)
	if err := r.read(ctx).Scopes(scopes...).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

// Update overwrites every column of an existing row, zero values included.
func (r *Repository[T]) Update(ctx context.Context, item *T) error {
	res := r.db.WithContext(ctx).
		Model(item).
		Select("*").
		Omit(clause.Associations, "created_at").
		Updates(item)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository[T]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
