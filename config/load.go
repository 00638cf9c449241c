package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

func Load() App {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg := App{
		Port:             getenv("APP_PORT", "8080"),
		DatabasePath:     getenv("DATABASE_PATH", "alugaki.db"),
		JWTSecret:        getenv("JWT_SECRET", "local_dev_secret"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		AutoApproveItems: getlist("AUTO_APPROVE_ITEMS", "item-2"),
		Env:              getenv("APP_ENV", "dev"),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getlist(k, def string) []string {
	raw := getenv(k, def)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
