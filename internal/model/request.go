package model

import "time"

// RequestStatus is the lifecycle state of a ServiceRequest. The chain is
// forward-only: requested -> accepted -> closed. Closed is terminal.
type RequestStatus string

const (
	StatusRequested RequestStatus = "requested"
	StatusAccepted  RequestStatus = "accepted"
	StatusClosed    RequestStatus = "closed"
)

// Valid reports whether s is one of the three known states.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusRequested, StatusAccepted, StatusClosed:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is the direct forward successor of s.
// No skips, no reopening.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	switch s {
	case StatusRequested:
		return next == StatusAccepted
	case StatusAccepted:
		return next == StatusClosed
	}
	return false
}

type ServiceRequest struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	CustomerID       uint          `gorm:"not null;index" json:"customer_id"`
	ProfessionalID   *uint         `gorm:"index" json:"professional_id"`
	ServiceID        uint          `gorm:"not null;index" json:"service_id"`
	DateOfRequest    time.Time     `gorm:"not null" json:"date_of_request"`
	DateOfCompletion *time.Time    `json:"date_of_completion"`
	Status           RequestStatus `gorm:"size:20;not null;default:requested" json:"service_status"`
	Remarks          string        `gorm:"type:text" json:"remarks"`

	Service      *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Customer     *User    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Professional *User    `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
}
