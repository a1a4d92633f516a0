package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/nurpe/busfleet/internal/model"
)

func WhereEqual(column string, value interface{}) Scope {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where(column+" = ?", value)
	}
}

// WhereFold matches column case-insensitively after trimming value.
func WhereFold(column, value string) Scope {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where("LOWER("+column+") = ?", strings.ToLower(strings.TrimSpace(value)))
	}
}

// Between keeps rows whose date column falls inside r, both ends inclusive.
// Dates are bound as ISO strings so the comparison works on Postgres DATE
// columns and on SQLite text dates alike.
func Between(column string, r model.DateRange) Scope {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where(column+" BETWEEN ? AND ?", r.StartDate(), r.EndDate())
	}
}

func OnDate(column string, d model.Date) Scope {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where(column+" = ?", d.String())
	}
}
