package model

import (
	"time"
)

const (
	RoleAdmin        = "admin"
	RoleProfessional = "serv"
	RoleCustomer     = "cust"
)

type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:80;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// User covers all three actors. Professionals carry ServiceType and
// Experience; customers leave them empty. Professionals are created with
// Active=false and stay out of active-professional listings until an admin
// activates them.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:100;not null" json:"username"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	City         *string   `gorm:"size:100" json:"city,omitempty"`
	Pin          *string   `gorm:"size:6" json:"pin,omitempty"`
	Phone        *string   `gorm:"size:15" json:"phone,omitempty"`
	Address      *string   `gorm:"type:text" json:"address,omitempty"`
	ServiceType  *string   `gorm:"size:100" json:"service_type,omitempty"`
	Experience   *string   `gorm:"size:3" json:"experience,omitempty"`
	Active       bool      `gorm:"not null;default:false" json:"active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Roles []Role `gorm:"many2many:user_roles" json:"roles"`
}

// DailyVisit records one row per user per day, upserted by middleware on
// authenticated traffic.
type DailyVisit struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uint      `gorm:"not null;uniqueIndex:idx_daily_visit_user_date" json:"user_id"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:idx_daily_visit_user_date" json:"date"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
