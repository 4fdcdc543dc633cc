package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env            string `mapstructure:"APP_ENV"`
	Port           string `mapstructure:"PORT"`
	GRPCPort       string `mapstructure:"GRPC_PORT"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	AccessSecret  string `mapstructure:"ACCESS_SECRET"`
	RefreshSecret string `mapstructure:"REFRESH_SECRET"`

	CatalogCacheTTL time.Duration `mapstructure:"CATALOG_CACHE_TTL"`
	Currency        string        `mapstructure:"CURRENCY"`
	TracingEnabled  bool          `mapstructure:"TRACING_ENABLED"`

	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
}

var envKeys = []string{
	"APP_ENV",
	"PORT",
	"GRPC_PORT",
	"ALLOWED_ORIGINS",
	"DB_HOST",
	"DB_PORT",
	"DB_USER",
	"DB_PASSWORD",
	"DB_NAME",
	"REDIS_ADDR",
	"ACCESS_SECRET",
	"REFRESH_SECRET",
	"CATALOG_CACHE_TTL",
	"CURRENCY",
	"TRACING_ENABLED",
	"ADMIN_EMAIL",
	"ADMIN_PASSWORD",
}

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", ":8080")
	v.SetDefault("GRPC_PORT", ":9090")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("CATALOG_CACHE_TTL", "10m")
	v.SetDefault("CURRENCY", "EGP")

	v.AutomaticEnv()

	// Explicit binds so values are visible without an app.env file.
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = v.Unmarshal(&config)
	return
}

func (c Config) DSN() string {
	return "host=" + c.DBHost + " user=" + c.DBUser + " password=" + c.DBPassword +
		" dbname=" + c.DBName + " port=" + c.DBPort + " sslmode=disable"
}

func (c Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}
