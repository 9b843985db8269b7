// internal/interfaces/http/routes/routes.go
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/kimezu-studio/storefront-backend/internal/config"
	"github.com/kimezu-studio/storefront-backend/internal/domain/bundle"
	"github.com/kimezu-studio/storefront-backend/internal/domain/cart"
	"github.com/kimezu-studio/storefront-backend/internal/domain/checkout"
	"github.com/kimezu-studio/storefront-backend/internal/domain/coupon"
	"github.com/kimezu-studio/storefront-backend/internal/domain/order"
	"github.com/kimezu-studio/storefront-backend/internal/domain/product"
	"github.com/kimezu-studio/storefront-backend/internal/domain/upload"
	"github.com/kimezu-studio/storefront-backend/internal/domain/user"
	"github.com/kimezu-studio/storefront-backend/internal/interfaces/http/handlers"
	"github.com/kimezu-studio/storefront-backend/internal/interfaces/http/middleware"
	"github.com/kimezu-studio/storefront-backend/internal/pkg/email"
	"github.com/kimezu-studio/storefront-backend/internal/pkg/pdf"
)

// SetupRoutes wires services and handlers onto the API group. The returned
// cleanup drains the cart reconciler and must run on shutdown.
func SetupRoutes(api *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, minioClient *minio.Client, cfg *config.Config, logger *logrus.Logger) (func(), error) {
	// Services
	emailService, err := email.NewService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create email service: %w", err)
	}

	productService := product.NewService(db, cfg)
	cartService := cart.NewService(db, redisClient, cfg, logger)
	bundleService := bundle.NewService(db, redisClient, cfg)
	couponService := coupon.NewService(db, redisClient, cfg, logger)
	checkoutService := checkout.NewService(cfg)
	uploadService := upload.NewService(minioClient, cfg)
	userService := user.NewService(db, cfg)
	pdfService := pdf.NewService(cfg)
	orderService := order.NewService(db, cfg, logger, cartService, bundleService, couponService, checkoutService, emailService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, cartService, cfg)
	productHandler := handlers.NewProductHandler(productService, cfg)
	cartHandler := handlers.NewCartHandler(cartService, cfg)
	bundleHandler := handlers.NewBundleHandler(bundleService, cfg)
	couponHandler := handlers.NewCouponHandler(couponService, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(cartService, bundleService, couponService, checkoutService, cfg)
	orderHandler := handlers.NewOrderHandler(orderService, uploadService, pdfService, cfg)
	uploadHandler := handlers.NewUploadHandler(uploadService, productService, cfg)

	requireAuth := middleware.AuthMiddleware(cfg)
	optionalAuth := middleware.OptionalAuthMiddleware(cfg)

	// Authentication
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", requireAuth, authHandler.Logout)
		auth.GET("/me", requireAuth, authHandler.Profile)
		auth.PUT("/me", requireAuth, authHandler.UpdateProfile)
	}

	// Catalog
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)
	api.GET("/packs", productHandler.ListPacks)

	// Cart, same routes for anonymous and signed-in shoppers
	cartGroup := api.Group("/cart", optionalAuth)
	{
		cartGroup.GET("", cartHandler.Get)
		cartGroup.POST("/items", cartHandler.Add)
		cartGroup.PATCH("/items/:productId", cartHandler.UpdateQuantity)
		cartGroup.DELETE("/items/:productId", cartHandler.Remove)
		cartGroup.DELETE("", cartHandler.Clear)
		cartGroup.PUT("/visibility", cartHandler.SetVisibility)
	}

	// Combo builder
	bundleGroup := api.Group("/bundle")
	{
		bundleGroup.GET("", bundleHandler.Get)
		bundleGroup.POST("/items", bundleHandler.AddItem)
		bundleGroup.DELETE("/items/:index", bundleHandler.RemoveItem)
		bundleGroup.DELETE("", bundleHandler.Clear)
	}

	// Gift coupons
	coupons := api.Group("/coupons")
	{
		coupons.GET("/claimed/:orderNumber", couponHandler.ClaimStatus)
		coupons.POST("/claim", requireAuth, couponHandler.Claim)
		coupons.GET("", requireAuth, couponHandler.List)
		coupons.POST("/validate", requireAuth, couponHandler.Validate)
	}

	// Checkout and orders
	api.POST("/checkout/quote", optionalAuth, checkoutHandler.Quote)

	orders := api.Group("/orders", optionalAuth)
	{
		orders.POST("", orderHandler.Place)
		orders.GET("", requireAuth, orderHandler.List)
		orders.GET("/:orderNumber", orderHandler.Get)
		orders.POST("/:orderNumber/proof", orderHandler.UploadProof)
		orders.GET("/:orderNumber/invoice", orderHandler.Invoice)
	}

	// Admin
	admin := api.Group("/admin", requireAuth, middleware.AdminMiddleware())
	{
		admin.POST("/products", productHandler.Create)
		admin.PUT("/products/:id", productHandler.Update)
		admin.DELETE("/products/:id", productHandler.Delete)

		admin.POST("/packs", productHandler.CreatePack)
		admin.PUT("/packs/:id", productHandler.UpdatePack)
		admin.DELETE("/packs/:id", productHandler.DeletePack)

		admin.POST("/uploads/product-image", uploadHandler.ProductImage)
		admin.DELETE("/uploads", uploadHandler.RemoveObject)

		admin.GET("/orders", orderHandler.AdminList)
		admin.PUT("/orders/:orderNumber/status", orderHandler.AdminUpdateStatus)
	}

	cleanup := func() {
		cartService.Close()
	}
	return cleanup, nil
}
