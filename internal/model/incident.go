package model

import "time"

type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "Pending"
	ComplaintStatusInProgress ComplaintStatus = "In Progress"
	ComplaintStatusResolved   ComplaintStatus = "Resolved"
	ComplaintStatusRejected   ComplaintStatus = "Rejected"
)

func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintStatusPending, ComplaintStatusInProgress, ComplaintStatusResolved, ComplaintStatusRejected:
		return true
	}
	return false
}

type Complaint struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	ComplaintDate Date            `json:"complaint_date" gorm:"index"`
	Status        ComplaintStatus `json:"status" gorm:"size:32;not null;default:Pending;index"`
	DriverID      *uint           `json:"driver_id" gorm:"index"`
	BusID         *uint           `json:"bus_id" gorm:"index"`
	Details       string          `json:"details" gorm:"type:text"`
	Driver        *Driver         `json:"driver,omitempty" gorm:"foreignKey:DriverID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Bus           *Bus            `json:"bus,omitempty" gorm:"foreignKey:BusID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Complaint) TableName() string {
	return "complaints"
}

type AccidentReport struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	DriverID     *uint     `json:"driver_id" gorm:"index"`
	BusID        *uint     `json:"bus_id" gorm:"index"`
	RouteID      *uint     `json:"route_id" gorm:"index"`
	Location     string    `json:"location" gorm:"size:255"`
	Cost         float64   `json:"cost"`
	AccidentDate Date      `json:"accident_date" gorm:"index"`
	Details      string    `json:"details" gorm:"type:text"`
	Driver       *Driver   `json:"driver,omitempty" gorm:"foreignKey:DriverID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Bus          *Bus      `json:"bus,omitempty" gorm:"foreignKey:BusID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Route        *Route    `json:"route,omitempty" gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (AccidentReport) TableName() string {
	return "accident_reports"
}
