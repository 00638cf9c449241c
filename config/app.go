package config

type App struct {
	Port             string   `env:"APP_PORT" default:"8080"`
	DatabasePath     string   `env:"DATABASE_PATH" default:"alugaki.db"`
	JWTSecret        string   `env:"JWT_SECRET" default:"local_dev_secret"`
	RedisAddr        string   `env:"REDIS_ADDR"`
	AutoApproveItems []string `env:"AUTO_APPROVE_ITEMS"`
	Env              string   `env:"APP_ENV" default:"dev"`
}
