package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL string
	// DBMaxConns caps the pgx pool size; zero keeps the driver default.
	DBMaxConns        int32
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	// Refresh Token Config
	RefreshTokenExpiryDuration time.Duration

	// AdminPinRequired makes admins confirm stock movements with a PIN too.
	// Clients always confirm with a PIN.
	AdminPinRequired bool

	// SeedDemoData loads the demo fixtures on startup when the database is empty.
	SeedDemoData bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "sandelis-backend")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("ADMIN_PIN_REQUIRED", false)
	viper.SetDefault("SEED_DEMO_DATA", false)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.DBMaxConns = viper.GetInt32("DB_MAX_CONNS")
	if cfg.DBMaxConns < 0 {
		log.Printf("Warning: Invalid value for DB_MAX_CONNS (%d). Using the driver default.\n", cfg.DBMaxConns)
		cfg.DBMaxConns = 0
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "sandelis-backend"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	refreshTokenExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION")
	refreshTokenExpiryDuration, err := time.ParseDuration(refreshTokenExpiryStr)
	if err != nil {
		refreshTokenExpiryDuration = time.Hour * 24 * 7
		if refreshTokenExpiryStr != "" {
			log.Printf("Warning: Invalid value for REFRESH_TOKEN_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", refreshTokenExpiryStr, refreshTokenExpiryDuration.String())
		}
	}
	cfg.RefreshTokenExpiryDuration = refreshTokenExpiryDuration

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.AdminPinRequired = viper.GetBool("ADMIN_PIN_REQUIRED")
	cfg.SeedDemoData = viper.GetBool("SEED_DEMO_DATA")

	return cfg, nil
}
