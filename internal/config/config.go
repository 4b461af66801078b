package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	GinMode  string `env:"GIN_MODE" env-default:"debug"`
	HTTPPort string `env:"HTTP_PORT" env-default:"8080"`

	DBDriver   string `env:"DB_DRIVER" env-default:"mysql"`
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"3306"`
	DBUser     string `env:"DB_USER" env-default:"taskuser"`
	DBPassword string `env:"DB_PASSWORD" env-default:"taskpassword"`
	DBName     string `env:"DB_NAME" env-default:"taskhive"`

	JWTSecret string        `env:"JWT_SECRET" env-default:"default-secret-key-change-me"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" env-default:"24h"`

	UploadDir string `env:"UPLOAD_DIR" env-default:"uploads"`
}

// Load reads configuration from the environment, after loading a .env file
// when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
