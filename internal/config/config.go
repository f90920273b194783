// internal/config/config.go
package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Ingest   IngestConfig
	Database DatabaseConfig
	App      AppConfig
	Cache    CacheConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type IngestConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type AppConfig struct {
	SeedDir   string
	ExportDir string
}

type CacheConfig struct {
	Enabled          bool
	RedisURL         string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	ReportTTLSeconds int
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("INGEST_PORT", "8081")
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "warehouse")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("APP_SEED_DIR", "./data/seed")
		viper.SetDefault("APP_EXPORT_DIR", "./data/export")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_REPORT_TTL_SECONDS", 60)
		viper.SetDefault("STORAGE_ENDPOINT", "")
		viper.SetDefault("STORAGE_ACCESS_KEY", "")
		viper.SetDefault("STORAGE_SECRET_KEY", "")
		viper.SetDefault("STORAGE_BUCKET", "")
		viper.SetDefault("STORAGE_REGION", "")
		viper.SetDefault("STORAGE_USE_SSL", true)

		// Read from environment variables
		viper.AutomaticEnv()

		// Ensure seed and export directories exist
		ensureDir(viper.GetString("APP_SEED_DIR"))
		ensureDir(viper.GetString("APP_EXPORT_DIR"))

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Ingest: IngestConfig{
				Port: viper.GetString("INGEST_PORT"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			App: AppConfig{
				SeedDir:   viper.GetString("APP_SEED_DIR"),
				ExportDir: viper.GetString("APP_EXPORT_DIR"),
			},
			Cache: CacheConfig{
				Enabled:          viper.GetBool("CACHE_ENABLED"),
				RedisURL:         viper.GetString("REDIS_URL"),
				RedisHost:        viper.GetString("REDIS_HOST"),
				RedisPort:        viper.GetString("REDIS_PORT"),
				RedisPassword:    viper.GetString("REDIS_PASSWORD"),
				RedisDB:          viper.GetInt("REDIS_DB"),
				ReportTTLSeconds: viper.GetInt("CACHE_REPORT_TTL_SECONDS"),
			},
			Storage: StorageConfig{
				Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
				AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
				SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
				Bucket:    viper.GetString("STORAGE_BUCKET"),
				Region:    viper.GetString("STORAGE_REGION"),
				UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
			},
		}
	})

	return instance
}

func ensureDir(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
