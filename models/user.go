package models

import (
	"time"
)

// Role represents user role types
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a marketplace account
type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Email      string    `json:"email" gorm:"uniqueIndex;not null"`
	Password   string    `json:"-" gorm:"not null"`
	Name       string    `json:"name" gorm:"not null"`
	LastName   string    `json:"lastName" gorm:"not null"`
	NationalID string    `json:"nationalId" gorm:"uniqueIndex;not null"`
	Phone      string    `json:"phone" gorm:"not null"`
	Role       Role      `json:"role" gorm:"type:varchar(10);not null;default:'USER'"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// FullName is the display name shown next to comments
func (u User) FullName() string {
	return u.Name + " " + u.LastName
}
