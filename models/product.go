package models

import "time"

// Product belongs to a single store. AverageRating is a cached projection of
// the product's ratings and is rewritten on every rating change.
type Product struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	Name          string       `json:"name" gorm:"not null"`
	Price         float64      `json:"price" gorm:"not null;default:0"`
	Quantity      int          `json:"quantity" gorm:"not null;default:0"`
	Description   string       `json:"description" gorm:"type:text"`
	ImageURL      string       `json:"imageUrl" gorm:"type:text"`
	Discount      float64      `json:"discount" gorm:"not null;default:0"`
	StoreID       uint         `json:"storeId" gorm:"not null;index"`
	Store         Store        `json:"-" gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
	AverageRating float64      `json:"averageRating" gorm:"not null;default:0"`
	Tags          []ProductTag `json:"tags" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time    `json:"createdAt" gorm:"index"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// ProductTag is a free-form label. Duplicate names on one product are allowed.
type ProductTag struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	TagName   string  `json:"tagName" gorm:"not null;index"`
	ProductID uint    `json:"productId" gorm:"not null;index"`
	Product   Product `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// ProductRating holds one user's score for one product
type ProductRating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"productId" gorm:"not null;uniqueIndex:idx_rating_product_user"`
	Product   Product   `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_rating_product_user"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Rating    int       `json:"rating" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductComment is an append-only remark on a product
type ProductComment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"productId" gorm:"not null;index"`
	Product   Product   `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Comment   string    `json:"comment" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
}
