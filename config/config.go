package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// PostsPerPage is the fixed window size for every paginated listing.
const PostsPerPage = 10

// PaginationTestAmount is the number of posts the pagination tests seed:
// with PostsPerPage of 10 that gives a full first page and 3 on the last.
const PaginationTestAmount = 13

type Config struct {
	Port          string
	MongoURI      string
	DBName        string
	SessionSecret string
}

func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		MongoURI:      getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		DBName:        getEnv("DB_NAME", "scribe"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
	}

	if cfg.SessionSecret == "" {
		log.Fatal("❌ SESSION_SECRET must be set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
