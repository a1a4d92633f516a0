package model

import "time"

type Bus struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	DepotName          string    `json:"depot_name" gorm:"size:128;not null;index"`
	Capacity           int       `json:"capacity" gorm:"not null;default:0"`
	Type               string    `json:"type" gorm:"size:64"`
	RegistrationNumber string    `json:"registration_number" gorm:"size:32;not null;uniqueIndex"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Bus) TableName() string {
	return "buses"
}

// Label is the human readable name used in reports.
func (b *Bus) Label() string {
	if b == nil {
		return ""
	}
	return b.RegistrationNumber
}

type Route struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	StartPoint  string    `json:"start_point" gorm:"size:128;not null"`
	EndPoint    string    `json:"end_point" gorm:"size:128;not null"`
	Distance    float64   `json:"distance"`
	AvgDuration int       `json:"avg_duration"` // minutes
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Route) TableName() string {
	return "routes"
}

func (r *Route) Label() string {
	if r == nil {
		return ""
	}
	return r.StartPoint + " - " + r.EndPoint
}
