package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	RedisURL    string `envconfig:"REDIS_URL" required:"true"`
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`

	AllowOrigins []string `envconfig:"ALLOW_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000"`

	SMTPHost             string `envconfig:"SMTP_HOST"`
	SMTPPort             int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername         string `envconfig:"SMTP_USERNAME"`
	SMTPPassword         string `envconfig:"SMTP_PASSWORD"`
	EmailSenderName      string `envconfig:"EMAIL_SENDER_NAME"`
	EmailConfirmationURL string `envconfig:"EMAIL_CONFIRMATION_URL"`

	CloudinaryCloudName string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `envconfig:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `envconfig:"CLOUDINARY_API_SECRET"`
}

// Load читает конфигурацию из переменных окружения
func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
