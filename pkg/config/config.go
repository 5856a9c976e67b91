package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string
	Env                     string
	PostgresConnStr         string
	MongoURI                string
	FirebaseCredentialsPath string // empty disables the push channel
	AllowEmailForwarding    bool   // gates the forwarded-email queue
	EmailQueueSpec          string // cron spec for the email queue drain
	SubPrefix               string   // community display prefix, e.g. "/s"
	SiteIconURL             string   // push badge icon
	WSAllowedOrigins        []string // empty allows any socket origin
	JWTSecret               string
}

func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		AllowEmailForwarding:    getEnvBool("ALLOW_EMAIL_FORWARDING", false),
		EmailQueueSpec:          getEnv("EMAIL_QUEUE_SPEC", "@every 5m"),
		SubPrefix:               getEnv("SUB_PREFIX", "/s"),
		SiteIconURL:             getEnv("SITE_ICON_URL", ""),
		WSAllowedOrigins:        getEnvList("WS_ALLOWED_ORIGINS"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
