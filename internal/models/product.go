package models

import "time"

// Product represents a catalog entry written by the seeder.
// ID is left empty for MongoDB so the driver assigns an ObjectID.
type Product struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" bson:"name" gorm:"type:varchar(255);not null"`
	Slug        string    `json:"slug" bson:"slug" gorm:"uniqueIndex;type:varchar(255);not null"`
	Description string    `json:"description" bson:"description" gorm:"type:text"`
	Price       float64   `json:"price" bson:"price" gorm:"not null"`
	SalePrice   *float64  `json:"salePrice" bson:"salePrice"` // nil when the product is not on sale
	Category    string    `json:"category" bson:"category" gorm:"type:varchar(100);index"`
	Brand       string    `json:"brand" bson:"brand" gorm:"type:varchar(100)"`
	Image       string    `json:"image" bson:"image" gorm:"type:varchar(255)"`
	Images      []string  `json:"images" bson:"images" gorm:"type:text;serializer:json"`
	InStock     bool      `json:"inStock" bson:"inStock"`
	StockCount  int       `json:"stockCount" bson:"stockCount"`
	Rating      float64   `json:"rating" bson:"rating"`
	Reviews     int       `json:"reviews" bson:"reviews"`
	IsNew       bool      `json:"isNew" bson:"isNew"`
	IsHot       bool      `json:"isHot" bson:"isHot"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// OnSale reports whether the product carries a sale price below its price.
func (p Product) OnSale() bool {
	return p.SalePrice != nil && *p.SalePrice < p.Price
}
