package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// DefaultFreeDeliveryThreshold waives the delivery fee for subtotals at
// or above $50 unless FREE_DELIVERY_THRESHOLD overrides it.
const DefaultFreeDeliveryThreshold int64 = 5000

type Config struct {
	HTTP_PORT   string
	DB_HOST     string
	DB_PORT     string
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string

	ES_URL      string
	ES_USER     string
	ES_PASSWORD string

	KAFKA_ADDRESS string

	JWT_SECRET string

	IMAGE_DIR      string
	IMAGE_BASE_URL string

	FreeDeliveryThreshold int64
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		HTTP_PORT:      getDefault("HTTP_PORT", "8080"),
		DB_HOST:        os.Getenv("DB_HOST"),
		DB_PORT:        os.Getenv("DB_PORT"),
		DB_USER:        os.Getenv("DB_USER"),
		DB_PASSWORD:    os.Getenv("DB_PASSWORD"),
		DB_NAME:        os.Getenv("DB_NAME"),
		ES_URL:         os.Getenv("ES_URL"),
		ES_USER:        os.Getenv("ES_USER"),
		ES_PASSWORD:    os.Getenv("ES_PASSWORD"),
		KAFKA_ADDRESS:  os.Getenv("KAFKA_ADDRESS"),
		JWT_SECRET:     os.Getenv("JWT_SECRET"),
		IMAGE_DIR:      getDefault("IMAGE_DIR", "uploads"),
		IMAGE_BASE_URL: getDefault("IMAGE_BASE_URL", "/static"),

		FreeDeliveryThreshold: getInt64Default("FREE_DELIVERY_THRESHOLD", DefaultFreeDeliveryThreshold),
	}

	return config, nil
}

func getDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt64Default(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		log.Printf("Notice: invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}
