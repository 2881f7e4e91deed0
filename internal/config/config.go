package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration values from environment and config file.
type Config struct {
	AppPort string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string // sqlite only

	// Session storage. Sessions live in memory when RedisHost is empty.
	RedisHost         string
	RedisPort         string
	SessionExpiration time.Duration
	SessionCookie     string

	// Entry export archive. Disabled when MinioEndpoint is empty.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioSSL       bool
}

// MinioEnabled reports whether exports should be archived to object storage.
func (c *Config) MinioEnabled() bool {
	return c.MinioEndpoint != ""
}

// RedisEnabled reports whether sessions should be kept in Redis.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_port", "8080")
	v.SetDefault("db_driver", DriverPostgres)
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_path", "timetracker.db")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("session_expiration", "24h")
	v.SetDefault("session_cookie", "timetracker_session")
	v.SetDefault("minio_ssl", false)
}

// LoadConfig loads configuration from an optional YAML file, a .env file and
// environment variables, in increasing order of precedence.
func LoadConfig(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("invalid .env file: %v", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	expiration, err := time.ParseDuration(v.GetString("session_expiration"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_EXPIRATION value: %v", err)
	}

	cfg := &Config{
		AppPort:    v.GetString("app_port"),
		DBDriver:   strings.ToLower(v.GetString("db_driver")),
		DBHost:     v.GetString("db_host"),
		DBPort:     v.GetString("db_port"),
		DBUser:     v.GetString("db_user"),
		DBPassword: v.GetString("db_password"),
		DBName:     v.GetString("db_name"),
		DBPath:     v.GetString("db_path"),

		RedisHost:         v.GetString("redis_host"),
		RedisPort:         v.GetString("redis_port"),
		SessionExpiration: expiration,
		SessionCookie:     v.GetString("session_cookie"),

		MinioEndpoint:  v.GetString("minio_endpoint"),
		MinioAccessKey: v.GetString("minio_access_key"),
		MinioSecretKey: v.GetString("minio_secret_key"),
		MinioBucket:    v.GetString("minio_bucket"),
		MinioSSL:       v.GetBool("minio_ssl"),
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBHost == "" || cfg.DBUser == "" || cfg.DBName == "" {
			return nil, fmt.Errorf("database configuration is incomplete")
		}
	case DriverSQLite:
		if cfg.DBPath == "" {
			return nil, fmt.Errorf("database configuration is incomplete")
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER value: %q", cfg.DBDriver)
	}
	if cfg.MinioEnabled() && (cfg.MinioAccessKey == "" || cfg.MinioSecretKey == "" || cfg.MinioBucket == "") {
		return nil, fmt.Errorf("minio configuration is incomplete")
	}
	return cfg, nil
}

// ConnectDatabase opens a GORM connection for the configured driver.
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DBPath + "?_foreign_keys=on")
	default:
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
		dialector = postgres.Open(dsn)
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}
