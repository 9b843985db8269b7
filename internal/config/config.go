// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront backend
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Security SecurityConfig
	Cart     CartConfig
	Coupon   CouponConfig
	Shipping ShippingConfig
	External ExternalConfig
	Upload   UploadConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	BrandName   string
	Version     string
	Environment string
	Debug       bool
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// JWTConfig contains JWT token configuration
type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	BcryptCost         int
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
}

// CartLoginStrategy controls what happens to the anonymous cart on login.
type CartLoginStrategy string

const (
	// CartLoginReplace drops the anonymous cart and loads the user's remote
	// cart as the working set. Matches the storefront's historical behavior.
	// TODO: confirm with the shop owner whether pre-login selections should
	// survive login instead (merge).
	CartLoginReplace CartLoginStrategy = "replace"
	// CartLoginMerge unions the anonymous cart into the remote one.
	CartLoginMerge CartLoginStrategy = "merge"
)

// CartConfig contains cart behavior configuration
type CartConfig struct {
	SessionTTL      time.Duration
	LoginStrategy   CartLoginStrategy
	SyncMaxRetries  int
	SyncBaseBackoff time.Duration
}

// CouponConfig contains gift-coupon generation configuration
type CouponConfig struct {
	CodePrefix    string
	MinPercentage int
	MaxPercentage int
}

// ShippingConfig contains flat-rate shipping configuration
type ShippingConfig struct {
	NationalRate int64 // whole pesos
}

// ExternalConfig contains external service configurations
type ExternalConfig struct {
	Email   EmailConfig
	Storage StorageConfig
}

// EmailConfig contains email service configuration
type EmailConfig struct {
	Provider   string // "resend" or "smtp"
	APIKey     string
	FromEmail  string
	FromName   string
	OrderInbox string
	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
}

// StorageConfig contains MinIO object storage configuration
type StorageConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
	ProofFolder   string
	ProductFolder string
}

// UploadConfig contains file upload configuration
type UploadConfig struct {
	MaxSize           int64
	AllowedExtensions []string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Kimezu Storefront Backend"),
			BrandName:   getEnv("BRAND_NAME", "KIMEZU"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Server: ServerConfig{
			Port:         getEnv("APP_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			Name:         getEnv("DB_NAME", "kimezu_db"),
			User:         getEnv("DB_USER", "kimezu_user"),
			Password:     getEnv("DB_PASSWORD", "kimezu_password"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 300*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "change-me-to-a-real-secret-of-32-chars"),
			AccessTokenExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRE", 24*time.Hour),
			RefreshTokenExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRE", 7*24*time.Hour),
		},
		Security: SecurityConfig{
			BcryptCost:         getEnvAsInt("BCRYPT_COST", 12),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
		},
		Cart: CartConfig{
			SessionTTL:      getEnvAsDuration("CART_SESSION_TTL", 24*time.Hour),
			LoginStrategy:   CartLoginStrategy(getEnv("CART_LOGIN_STRATEGY", string(CartLoginReplace))),
			SyncMaxRetries:  getEnvAsInt("CART_SYNC_MAX_RETRIES", 3),
			SyncBaseBackoff: getEnvAsDuration("CART_SYNC_BASE_BACKOFF", 500*time.Millisecond),
		},
		Coupon: CouponConfig{
			CodePrefix:    getEnv("COUPON_CODE_PREFIX", "KIMEZU"),
			MinPercentage: getEnvAsInt("COUPON_MIN_PERCENTAGE", 3),
			MaxPercentage: getEnvAsInt("COUPON_MAX_PERCENTAGE", 25),
		},
		Shipping: ShippingConfig{
			NationalRate: getEnvAsInt64("SHIPPING_NATIONAL_RATE", 12000),
		},
		External: ExternalConfig{
			Email: EmailConfig{
				Provider:   getEnv("EMAIL_PROVIDER", "resend"),
				APIKey:     getEnv("RESEND_API_KEY", ""),
				FromEmail:  getEnv("FROM_EMAIL", "pedidos@kimezu.co"),
				FromName:   getEnv("FROM_NAME", "Kimezu"),
				OrderInbox: getEnv("ORDER_INBOX", "ventas@kimezu.co"),
				SMTPHost:   getEnv("SMTP_HOST", ""),
				SMTPPort:   getEnvAsInt("SMTP_PORT", 587),
				SMTPUser:   getEnv("SMTP_USER", ""),
				SMTPPass:   getEnv("SMTP_PASS", ""),
			},
			Storage: StorageConfig{
				Endpoint:      getEnv("MINIO_ENDPOINT", "localhost:9000"),
				AccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey:     getEnv("MINIO_SECRET_KEY", ""),
				Bucket:        getEnv("MINIO_BUCKET", "kimezu-media"),
				UseSSL:        getEnvAsBool("MINIO_USE_SSL", false),
				PublicBaseURL: getEnv("MINIO_PUBLIC_BASE_URL", ""),
				ProofFolder:   getEnv("MINIO_PROOF_FOLDER", "payment-proofs"),
				ProductFolder: getEnv("MINIO_PRODUCT_FOLDER", "products"),
			},
		},
		Upload: UploadConfig{
			MaxSize:           getEnvAsInt64("UPLOAD_MAX_SIZE", 10485760), // 10MB
			AllowedExtensions: getEnvAsSlice("UPLOAD_ALLOWED_EXTENSIONS", []string{"jpg", "jpeg", "png", "webp"}),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("DB_USER is required")
	}

	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	if c.Cart.LoginStrategy != CartLoginReplace && c.Cart.LoginStrategy != CartLoginMerge {
		return fmt.Errorf("CART_LOGIN_STRATEGY must be %q or %q", CartLoginReplace, CartLoginMerge)
	}

	if c.Coupon.MinPercentage < 1 || c.Coupon.MaxPercentage > 100 || c.Coupon.MinPercentage > c.Coupon.MaxPercentage {
		return fmt.Errorf("coupon percentage range [%d,%d] is invalid", c.Coupon.MinPercentage, c.Coupon.MaxPercentage)
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
