package service

import (
	"context"
	"fmt"

	"github.com/nurpe/busfleet/internal/repository"
)

// Store is the persistence contract of a single entity table.
type Store[T any] interface {
	Get(ctx context.Context, id uint) (*T, error)
	List(ctx context.Context, scopes ...repository.Scope) ([]T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id uint) error
}

// ReferenceChecker reports whether a row with the id exists.
type ReferenceChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type ListFilter struct {
	Depot  string
	Status string
	Date   string
}

// ResourceService implements validated CRUD for one entity.
type ResourceService[T any] struct {
	store   Store[T]
	id      func(item *T) *uint
	prepare func(ctx context.Context, item *T) error
	filter  func(f ListFilter) ([]repository.Scope, error)
}

func (s *ResourceService[T]) List(ctx context.Context, f ListFilter) ([]T, error) {
	var scopes []repository.Scope
	if s.filter != nil {
		var err error
		if scopes, err = s.filter(f); err != nil {
			return nil, err
		}
	}
	items, err := s.store.List(ctx, scopes...)
	if err != nil {
		return nil, storeError(err)
	}
	return items, nil
}

func (s *ResourceService[T]) Get(ctx context.Context, id uint) (*T, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return item, nil
}

// Create stores item and returns it re-read with its relations loaded.
func (s *ResourceService[T]) Create(ctx context.Context, item *T) (*T, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidInput)
	}
	*s.id(item) = 0
	if err := s.prepare(ctx, item); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, item); err != nil {
		return nil, storeError(err)
	}
	return s.reload(ctx, item)
}

// Update replaces the stored record with id by item.
func (s *ResourceService[T]) Update(ctx context.Context, id uint, item *T) (*T, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidInput)
	}
	if id == 0 {
		return nil, ErrNotFound
	}
	*s.id(item) = id
	if err := s.prepare(ctx, item); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, item); err != nil {
		return nil, storeError(err)
	}
	return s.reload(ctx, item)
}

func (s *ResourceService[T]) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrNotFound
	}
	return storeError(s.store.Delete(ctx, id))
}

func (s *ResourceService[T]) reload(ctx context.Context, item *T) (*T, error) {
	stored, err := s.store.Get(ctx, *s.id(item))
	if err != nil {
		return nil, storeError(err)
	}
	return stored, nil
}

// requireRef fails with ErrInvalidInput when id is set but points nowhere.
func requireRef(ctx context.Context, refs ReferenceChecker, id *uint, field string) error {
	if id == nil {
		return nil
	}
	if *id == 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidInput, field)
	}
	ok, err := refs.Exists(ctx, *id)
	if err != nil {
		return storeError(err)
	}
	if !ok {
		return fmt.Errorf("%w: %s %d does not exist", ErrInvalidInput, field, *id)
	}
	return nil
}
