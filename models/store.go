package models

import "time"

// Store is a shop owned by exactly one user
type Store struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Address     string    `json:"address"`
	Contact     string    `json:"contact"`
	ImageURL    string    `json:"imageUrl" gorm:"type:text"`
	Description string    `json:"description" gorm:"type:text"`
	OwnerID     uint      `json:"ownerId" gorm:"not null;index"`
	Owner       User      `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Products    []Product `json:"-" gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
