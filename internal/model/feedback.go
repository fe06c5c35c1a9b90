package model

import "time"

// Feedback is written once by a customer and never mutated afterwards.
type Feedback struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ServiceID  uint      `gorm:"not null;index" json:"service_id"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comments   *string   `gorm:"type:text" json:"comments,omitempty"`
	Date       time.Time `gorm:"not null" json:"date"`

	Service  *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Customer *User    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}
