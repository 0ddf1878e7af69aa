package config

import (
	"os"
	"strconv"
	"time"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverS3       = "s3"
)

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI               string
	Name              string
	Collection        string
	ConnectTimeoutSec int
}

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port        string
	LogLevel    string
	Timezone    string
	StoreDriver string
	// ConnectMaxTries bounds the startup ping attempts against the store.
	ConnectMaxTries int
	Mongo           MongoConfig
	Database        DatabaseConfig
	MinIO           MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Defaults match a local MongoDB at mongodb://localhost:27017/todo_db and port 3000.
func Load() *AppConfig {
	return &AppConfig{
		Port:            getEnv("PORT", "3000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Timezone:        getEnv("APP_TIMEZONE", "UTC"),
		StoreDriver:     getEnv("STORE_DRIVER", DriverMongo),
		ConnectMaxTries: getEnvInt("DB_CONNECT_MAX_TRIES", 10),
		Mongo: MongoConfig{
			URI:               getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Name:              getEnv("MONGO_DB", "todo_db"),
			Collection:        getEnv("MONGO_COLLECTION", "todos"),
			ConnectTimeoutSec: getEnvInt("MONGO_CONNECT_TIMEOUT_SEC", 10),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", "todo_db"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "todos"),
			Prefix:    getEnv("MINIO_PREFIX", "todos/"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
