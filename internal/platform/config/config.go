package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Config holds application configuration. It is loaded once at startup and
// passed explicitly into constructors; there is no ambient global state.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	BcryptCost int

	// External OAuth providers
	GoogleClientID       string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret   string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL    string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FacebookClientID     string `mapstructure:"FACEBOOK_APP_ID"`
	FacebookClientSecret string `mapstructure:"FACEBOOK_APP_SECRET"`
	FacebookRedirectURL  string `mapstructure:"FACEBOOK_REDIRECT_URL"`

	FrontendBaseURL string `mapstructure:"FRONTEND_BASE_URL"`

	AuthRateLimit string `mapstructure:"AUTH_RATE_LIMIT"`
	PosthogAPIKey string `mapstructure:"POSTHOG_API_KEY"`

	// Checkout pricing
	ShippingFlatFee       decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	TaxRate               decimal.Decimal
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "168h")
	viper.SetDefault("JWT_ISSUER", "luxe-storefront")
	viper.SetDefault("BCRYPT_COST", 10)
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FACEBOOK_APP_ID", "")
	viper.SetDefault("FACEBOOK_APP_SECRET", "")
	viper.SetDefault("FACEBOOK_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("AUTH_RATE_LIMIT", "10-M")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("SHIPPING_FLAT_FEE", "9.99")
	viper.SetDefault("FREE_SHIPPING_THRESHOLD", "100")
	viper.SetDefault("TAX_RATE", "0.08")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 168 * time.Hour // 7 days
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.BcryptCost = viper.GetInt("BCRYPT_COST")
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		log.Printf("Warning: BCRYPT_COST %d out of range. Defaulting to 10.\n", cfg.BcryptCost)
		cfg.BcryptCost = 10
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FacebookClientID = viper.GetString("FACEBOOK_APP_ID")
	cfg.FacebookClientSecret = viper.GetString("FACEBOOK_APP_SECRET")
	cfg.FacebookRedirectURL = viper.GetString("FACEBOOK_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.AuthRateLimit = viper.GetString("AUTH_RATE_LIMIT")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google OAuth will not function.")
	}
	if cfg.FacebookClientID == "" {
		log.Println("Warning: FACEBOOK_APP_ID not set. Facebook OAuth will not function.")
	}

	cfg.ShippingFlatFee, err = decimal.NewFromString(viper.GetString("SHIPPING_FLAT_FEE"))
	if err != nil {
		cfg.ShippingFlatFee = decimal.RequireFromString("9.99")
		log.Printf("Warning: Invalid SHIPPING_FLAT_FEE. Defaulting to %s.\n", cfg.ShippingFlatFee)
	}
	cfg.FreeShippingThreshold, err = decimal.NewFromString(viper.GetString("FREE_SHIPPING_THRESHOLD"))
	if err != nil {
		cfg.FreeShippingThreshold = decimal.NewFromInt(100)
		log.Printf("Warning: Invalid FREE_SHIPPING_THRESHOLD. Defaulting to %s.\n", cfg.FreeShippingThreshold)
	}
	cfg.TaxRate, err = decimal.NewFromString(viper.GetString("TAX_RATE"))
	if err != nil {
		cfg.TaxRate = decimal.RequireFromString("0.08")
		log.Printf("Warning: Invalid TAX_RATE. Defaulting to %s.\n", cfg.TaxRate)
	}

	return cfg, nil
}
