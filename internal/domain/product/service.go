// internal/domain/product/service.go
package product

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kimezu-studio/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a product or pack doesn't exist
var ErrNotFound = errors.New("product not found")

// Service handles catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ListFilter narrows catalog listings
type ListFilter struct {
	Category   string `form:"category"`
	BundleOnly bool   `form:"bundle_only"`
	Bestseller bool   `form:"bestseller"`
}

// CreateProductRequest represents admin product creation
type CreateProductRequest struct {
	Name               string   `json:"name" binding:"required"`
	Description        string   `json:"description"`
	LongDescription    string   `json:"long_description"`
	Price              int64    `json:"price" binding:"required,min=1"`
	Category           string   `json:"category" binding:"required"`
	Bestseller         bool     `json:"bestseller"`
	IsNew              bool     `json:"new"`
	AvailableForBundle bool     `json:"available_for_bundle"`
	Specs              Specs    `json:"specs"`
	ImageURLs          []string `json:"image_urls"`
}

// UpdateProductRequest represents admin product update; nil fields are untouched
type UpdateProductRequest struct {
	Name               *string `json:"name"`
	Description        *string `json:"description"`
	LongDescription    *string `json:"long_description"`
	Price              *int64  `json:"price"`
	Category           *string `json:"category"`
	Bestseller         *bool   `json:"bestseller"`
	IsNew              *bool   `json:"new"`
	AvailableForBundle *bool   `json:"available_for_bundle"`
	IsActive           *bool   `json:"is_active"`
	Specs              *Specs  `json:"specs"`
}

// List returns active products matching the filter
func (s *Service) List(filter ListFilter) ([]Product, error) {
	query := s.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Where("is_active = ?", true)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.BundleOnly {
		query = query.Where("available_for_bundle = ?", true)
	}
	if filter.Bestseller {
		query = query.Where("bestseller = ?", true)
	}

	var products []Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Get returns a single active product by id
func (s *Service) Get(id uint) (*Product, error) {
	var prod Product
	err := s.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Where("id = ? AND is_active = ?", id, true).First(&prod).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &prod, nil
}

// GetBySlug returns a single active product by slug
func (s *Service) GetBySlug(slug string) (*Product, error) {
	var prod Product
	err := s.db.Preload("Images").Where("slug = ? AND is_active = ?", slug, true).First(&prod).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &prod, nil
}

// Create creates a new product (admin)
func (s *Service) Create(req *CreateProductRequest) (*Product, error) {
	prod := Product{
		Name:               req.Name,
		Slug:               Slugify(req.Name),
		Description:        req.Description,
		LongDescription:    req.LongDescription,
		Price:              req.Price,
		Category:           req.Category,
		Bestseller:         req.Bestseller,
		IsNew:              req.IsNew,
		AvailableForBundle: req.AvailableForBundle,
		IsActive:           true,
		Specs:              req.Specs,
	}
	for i, url := range req.ImageURLs {
		prod.Images = append(prod.Images, ProductImage{URL: url, SortOrder: i})
	}

	if err := s.db.Create(&prod).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &prod, nil
}

// Update updates an existing product (admin)
func (s *Service) Update(id uint, req *UpdateProductRequest) (*Product, error) {
	var prod Product
	if err := s.db.Where("id = ?", id).First(&prod).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if req.Name != nil {
		prod.Name = *req.Name
		prod.Slug = Slugify(*req.Name)
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.LongDescription != nil {
		prod.LongDescription = *req.LongDescription
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.Category != nil {
		prod.Category = *req.Category
	}
	if req.Bestseller != nil {
		prod.Bestseller = *req.Bestseller
	}
	if req.IsNew != nil {
		prod.IsNew = *req.IsNew
	}
	if req.AvailableForBundle != nil {
		prod.AvailableForBundle = *req.AvailableForBundle
	}
	if req.IsActive != nil {
		prod.IsActive = *req.IsActive
	}
	if req.Specs != nil {
		prod.Specs = *req.Specs
	}

	if err := s.db.Save(&prod).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &prod, nil
}

// Delete soft-deletes a product (admin)
func (s *Service) Delete(id uint) error {
	result := s.db.Delete(&Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddImage appends a gallery image to a product (admin)
func (s *Service) AddImage(productID uint, url, altText string) (*ProductImage, error) {
	var exists int64
	if err := s.db.Model(&Product{}).Where("id = ?", productID).Count(&exists).Error; err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	var count int64
	s.db.Model(&ProductImage{}).Where("product_id = ?", productID).Count(&count)

	img := ProductImage{
		ProductID: productID,
		URL:       url,
		AltText:   altText,
		SortOrder: int(count),
	}
	if err := s.db.Create(&img).Error; err != nil {
		return nil, fmt.Errorf("failed to add product image: %w", err)
	}
	return &img, nil
}

// ListPacks returns active curated packs
func (s *Service) ListPacks() ([]Pack, error) {
	var packs []Pack
	if err := s.db.Where("is_active = ?", true).Order("created_at ASC").Find(&packs).Error; err != nil {
		return nil, fmt.Errorf("failed to list packs: %w", err)
	}
	return packs, nil
}

// CreatePack creates a curated pack (admin)
func (s *Service) CreatePack(pack *Pack) error {
	pack.IsActive = true
	if err := s.db.Create(pack).Error; err != nil {
		return fmt.Errorf("failed to create pack: %w", err)
	}
	return nil
}

// UpdatePack saves changes to a curated pack (admin)
func (s *Service) UpdatePack(pack *Pack) error {
	if err := s.db.Save(pack).Error; err != nil {
		return fmt.Errorf("failed to update pack: %w", err)
	}
	return nil
}

// DeletePack soft-deletes a curated pack (admin)
func (s *Service) DeletePack(id uint) error {
	result := s.db.Delete(&Pack{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete pack: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Slugify converts a product name into a URL slug
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	replacer := strings.NewReplacer(
		"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n",
		"&", "y",
	)
	slug = replacer.Replace(slug)

	var b strings.Builder
	lastDash := true
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
