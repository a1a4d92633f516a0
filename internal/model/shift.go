package model

import "time"

// Shift assigns a driver, conductor, bus and route to a date. Any of the
// four references may be missing while the roster is incomplete.
type Shift struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	DriverID    *uint      `json:"driver_id" gorm:"index"`
	ConductorID *uint      `json:"conductor_id" gorm:"index"`
	BusID       *uint      `json:"bus_id" gorm:"index"`
	RouteID     *uint      `json:"route_id" gorm:"index"`
	ShiftDate   Date       `json:"shift_date" gorm:"index"`
	StartTime   string     `json:"start_time" gorm:"size:5"`
	EndTime     string     `json:"end_time" gorm:"size:5"`
	Driver      *Driver    `json:"driver,omitempty" gorm:"foreignKey:DriverID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Conductor   *Conductor `json:"conductor,omitempty" gorm:"foreignKey:ConductorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Bus         *Bus       `json:"bus,omitempty" gorm:"foreignKey:BusID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Route       *Route     `json:"route,omitempty" gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Shift) TableName() string {
	return "shifts"
}

// Complete reports whether all four assignments are present.
func (s Shift) Complete() bool {
	return s.DriverID != nil && s.ConductorID != nil && s.BusID != nil && s.RouteID != nil
}
