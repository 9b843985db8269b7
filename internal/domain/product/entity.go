// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog item (candle or accessory)
type Product struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Name               string         `gorm:"not null;size:255" json:"name"`
	Slug               string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description        string         `gorm:"size:500" json:"description"`
	LongDescription    string         `gorm:"type:text" json:"long_description"`
	Price              int64          `gorm:"not null" json:"price"` // Whole Colombian pesos
	Category           string         `gorm:"not null;size:50;index" json:"category"` // "vela", "accesorio"
	Bestseller         bool           `gorm:"default:false" json:"bestseller"`
	IsNew              bool           `gorm:"default:false" json:"new"`
	AvailableForBundle bool           `gorm:"default:false;index" json:"available_for_bundle"`
	IsActive           bool           `gorm:"default:true" json:"is_active"`

	// Candle specs
	Specs Specs `gorm:"embedded;embeddedPrefix:spec_" json:"specs"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Images []ProductImage `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images,omitempty"`
}

// Specs holds the physical characteristics shown on the product page
type Specs struct {
	BurnTime   string `gorm:"size:50" json:"burn_time"`
	Wax        string `gorm:"size:100" json:"wax"`
	Wick       string `gorm:"size:100" json:"wick"`
	ScentNotes string `gorm:"size:255" json:"notes"`
	Weight     string `gorm:"size:50" json:"weight"`
}

// ProductImage represents a product gallery image
type ProductImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	URL       string    `gorm:"not null;size:500" json:"url"`
	AltText   string    `gorm:"size:255" json:"alt_text"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Pack represents a curated pre-made bundle sold at a fixed discount
type Pack struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null;size:255" json:"name"`
	Description   string         `gorm:"size:500" json:"description"`
	Price         int64          `gorm:"not null" json:"price"`
	OriginalPrice int64          `gorm:"not null" json:"original_price"`
	Image         string         `gorm:"size:500" json:"image"`
	Items         string         `gorm:"type:text" json:"items"` // Newline-separated inclusions
	TagText       string         `gorm:"size:100" json:"tag_text,omitempty"`
	TagColor      string         `gorm:"size:20" json:"tag_color,omitempty"` // "green" or "primary"
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (Product) TableName() string      { return "products" }
func (ProductImage) TableName() string { return "product_images" }
func (Pack) TableName() string         { return "packs" }

// Savings returns how much a pack saves against its component prices.
func (p *Pack) Savings() int64 {
	if p.OriginalPrice > p.Price {
		return p.OriginalPrice - p.Price
	}
	return 0
}
