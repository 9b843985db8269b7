// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kimezu-studio/storefront-backend/internal/config"
	"github.com/kimezu-studio/storefront-backend/internal/domain/cart"
	"github.com/kimezu-studio/storefront-backend/internal/domain/coupon"
	"github.com/kimezu-studio/storefront-backend/internal/domain/order"
	"github.com/kimezu-studio/storefront-backend/internal/domain/product"
	"github.com/kimezu-studio/storefront-backend/internal/domain/user"
)

// Migration handles database migrations
type Migration struct {
	db     *gorm.DB
	config *config.Config
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, cfg *config.Config) *Migration {
	return &Migration{db: db, config: cfg}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Dependency order: referenced tables first
	models := []interface{}{
		&user.User{},

		&product.Product{},
		&product.ProductImage{},
		&product.Pack{},

		&cart.CartItem{},

		&coupon.Coupon{},

		&order.Order{},
		&order.OrderItem{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_bundle_active ON products(available_for_bundle, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_product_images_sort ON product_images(product_id, sort_order)",

		"CREATE INDEX IF NOT EXISTS idx_cart_items_created_at ON cart_items(created_at DESC)",

		"CREATE INDEX IF NOT EXISTS idx_coupons_user_used ON coupons(user_id, is_used)",

		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(email)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
	}

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
		}
	}
	return nil
}

// SeedInitialData inserts the admin account and, in development, the
// starter candle catalog
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if m.config.IsDevelopment() {
		if err := m.seedCatalog(); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
		if err := m.seedPacks(); err != nil {
			return fmt.Errorf("failed to seed packs: %w", err)
		}
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedAdminUser() error {
	var count int64
	if err := m.db.Model(&user.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("ChangeMe123!"), m.config.Security.BcryptCost)
	if err != nil {
		return err
	}

	admin := user.User{
		Email:        "admin@kimezu.co",
		PasswordHash: string(hash),
		Name:         "Kimezu Admin",
		IsAdmin:      true,
		IsActive:     true,
	}
	if err := m.db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("⚠️ Seeded admin@kimezu.co with default password, change it immediately")
	return nil
}

func (m *Migration) seedCatalog() error {
	var count int64
	if err := m.db.Model(&product.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []product.Product{
		{
			Name:               "Lavanda & Vainilla",
			Slug:               "lavanda-vainilla",
			Description:        "Calma y dulzura en un solo aroma.",
			LongDescription:    "Una sinfonía olfativa diseñada para reducir el estrés. La lavanda francesa aporta notas herbáceas y frescas, mientras que la vainilla de Madagascar envuelve el ambiente con una calidez dulce y reconfortante.",
			Price:              85000,
			Category:           "vela",
			Bestseller:         true,
			AvailableForBundle: true,
			IsActive:           true,
			Specs: product.Specs{
				BurnTime: "40-50 Horas", Wax: "Soja 100% Natural", Wick: "Algodón Trenzado",
				ScentNotes: "Floral, Dulce", Weight: "220g",
			},
		},
		{
			Name:               "Bosque de Cedro",
			Slug:               "bosque-de-cedro",
			Description:        "El aroma fresco de la naturaleza.",
			LongDescription:    "Transporta tus sentidos a un bosque húmedo y antiguo. Notas profundas de madera de cedro se mezclan con toques de musgo y tierra mojada.",
			Price:              92000,
			Category:           "vela",
			IsNew:              true,
			AvailableForBundle: true,
			IsActive:           true,
			Specs: product.Specs{
				BurnTime: "45-55 Horas", Wax: "Soja 100% Natural", Wick: "Madera Crepitante",
				ScentNotes: "Amaderado, Terroso", Weight: "230g",
			},
		},
		{
			Name:            "Jazmín Blanco",
			Slug:            "jazmin-blanco",
			Description:     "Elegancia floral para tu espacio.",
			LongDescription: "La pureza del jazmín en su máxima expresión. Un aroma embriagador, romántico y lujoso que llena espacios grandes con facilidad.",
			Price:           88000,
			Category:        "vela",
			IsActive:        true,
			Specs: product.Specs{
				BurnTime: "40-50 Horas", Wax: "Soja 100% Natural", Wick: "Algodón Trenzado",
				ScentNotes: "Floral Intenso", Weight: "220g",
			},
		},
		{
			Name:               "Canela & Naranja",
			Slug:               "canela-naranja",
			Description:        "Calidez especiada para el invierno.",
			LongDescription:    "La combinación clásica que nunca falla. La vibrante cáscara de naranja se equilibra con la calidez picante de la canela en rama.",
			Price:              85000,
			Category:           "vela",
			AvailableForBundle: true,
			IsActive:           true,
			Specs: product.Specs{
				BurnTime: "40-50 Horas", Wax: "Soja 100% Natural", Wick: "Algodón Trenzado",
				ScentNotes: "Especiado, Cítrico", Weight: "220g",
			},
		},
		{
			Name:               "Eucalipto & Menta",
			Slug:               "eucalipto-menta",
			Description:        "Frescura que renueva el aire.",
			LongDescription:    "Un soplo de aire fresco. El eucalipto medicinal abre las vías respiratorias mientras la menta piperita estimula la concentración.",
			Price:              89500,
			Category:           "vela",
			AvailableForBundle: true,
			IsActive:           true,
			Specs: product.Specs{
				BurnTime: "40-50 Horas", Wax: "Soja 100% Natural", Wick: "Madera Crepitante",
				ScentNotes: "Herbal, Fresco", Weight: "220g",
			},
		},
		{
			Name:            "Set de Regalo",
			Slug:            "set-de-regalo",
			Description:     "La experiencia completa Kimezu.",
			LongDescription: "Una caja curada con nuestros best-sellers. Incluye 2 velas de 200g (aromas a elección), 1 apagavelas dorado y una caja de cerillas largas.",
			Price:           210000,
			Category:        "accesorio",
			IsActive:        true,
			Specs: product.Specs{
				BurnTime: "N/A", Wax: "Soja 100% Natural", Wick: "Mixto",
				ScentNotes: "Varios", Weight: "800g (Total)",
			},
		},
	}

	return m.db.Create(&products).Error
}

func (m *Migration) seedPacks() error {
	var count int64
	if err := m.db.Model(&product.Pack{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	packs := []product.Pack{
		{
			Name:          "Ritual Relax",
			Description:   "Perfecto para terminar el día. Incluye todo lo necesario para un baño de inmersión y lectura.",
			Price:         185000,
			OriginalPrice: 220000,
			TagText:       "Ahorra $35.000",
			TagColor:      "green",
			Items:         "Vela Lavanda (200g)\nDifusor Eucalipto\nSales de Baño (Regalo)",
			IsActive:      true,
		},
		{
			Name:          "Pack Energía",
			Description:   "Ideal para mañanas productivas o espacios de trabajo.",
			Price:         210000,
			OriginalPrice: 245000,
			TagText:       "Top Ventas",
			TagColor:      "primary",
			Items:         "Vela Cítrica (200g)\nVela Café & Vainilla (100g)\nApagavelas Dorado",
			IsActive:      true,
		},
		{
			Name:          "Pack Hogar",
			Description:   "Un aroma para cada habitación de la casa.",
			Price:         255000,
			OriginalPrice: 300000,
			Items:         "3x Velas Clásicas (Surtidas)\nBandeja de Cerámica\nFósforos Largos",
			IsActive:      true,
		},
	}

	return m.db.Create(&packs).Error
}
