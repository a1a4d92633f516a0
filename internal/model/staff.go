package model

import "time"

type DriverStatus string

const (
	DriverStatusActive   DriverStatus = "Active"
	DriverStatusOnLeave  DriverStatus = "On Leave"
	DriverStatusInactive DriverStatus = "Inactive"
)

func (s DriverStatus) Valid() bool {
	switch s {
	case DriverStatusActive, DriverStatusOnLeave, DriverStatusInactive:
		return true
	}
	return false
}

type Driver struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	Name          string       `json:"name" gorm:"size:128;not null"`
	LicenseNumber string       `json:"license_number" gorm:"size:64;not null;uniqueIndex"`
	JoinDate      Date         `json:"join_date"`
	Experience    int          `json:"experience"` // years
	Contact       string       `json:"contact" gorm:"size:64"`
	Status        DriverStatus `json:"status" gorm:"size:32;not null;default:Active"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (Driver) TableName() string {
	return "drivers"
}

func (d *Driver) Label() string {
	if d == nil {
		return ""
	}
	return d.Name
}

type Conductor struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"size:128;not null"`
	JoinDate        Date      `json:"join_date"`
	Contact         string    `json:"contact" gorm:"size:64"`
	AssignedRouteID *uint     `json:"assigned_route_id" gorm:"index"`
	AssignedRoute   *Route    `json:"assigned_route,omitempty" gorm:"foreignKey:AssignedRouteID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Conductor) TableName() string {
	return "conductors"
}

func (c *Conductor) Label() string {
	if c == nil {
		return ""
	}
	return c.Name
}
