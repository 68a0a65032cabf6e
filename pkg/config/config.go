package config

import (
	"errors"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// devJWTSecret signs tokens in development only.
const devJWTSecret = "supersecretjwtkey"

type Config struct {
	Port                    string
	Env                     string
	Debug                   bool
	FirebaseCredentialsPath string
	PostgresURL             string
	MongoURI                string
	MongoDatabase           string
	RedisAddr               string
	RedisPassword           string
	MetricsPort             string
	JWTSecret               string
	FrontendURL             string
	SMTPHost                string
	SMTPPort                int
	SMTPUser                string
	SMTPPassword            string
	SMTPDomain              string
	AdminEmail              string
}

// Load reads the .env file (if any) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DEBUG", false)
	v.SetDefault("POSTGRES_CONN_STR", "host=localhost user=postgres password=postgres dbname=inkwell port=5432 sslmode=disable")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "inkwell")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("METRICS_PORT", "9090")
	v.SetDefault("JWT_SECRET", devJWTSecret)
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_DOMAIN", "localhost")

	return &Config{
		Port:                    v.GetString("PORT"),
		Env:                     v.GetString("ENV"),
		Debug:                   v.GetBool("DEBUG"),
		FirebaseCredentialsPath: v.GetString("FIREBASE_CREDENTIALS_PATH"),
		PostgresURL:             v.GetString("POSTGRES_CONN_STR"),
		MongoURI:                v.GetString("MONGO_URI"),
		MongoDatabase:           v.GetString("MONGO_DATABASE"),
		RedisAddr:               v.GetString("REDIS_ADDR"),
		RedisPassword:           v.GetString("REDIS_PASSWORD"),
		MetricsPort:             v.GetString("METRICS_PORT"),
		JWTSecret:               v.GetString("JWT_SECRET"),
		FrontendURL:             v.GetString("FRONTEND_URL"),
		SMTPHost:                v.GetString("SMTP_HOST"),
		SMTPPort:                v.GetInt("SMTP_PORT"),
		SMTPUser:                v.GetString("EMAIL_USER"),
		SMTPPassword:            v.GetString("EMAIL_PASSWORD"),
		SMTPDomain:              v.GetString("SMTP_DOMAIN"),
		AdminEmail:              v.GetString("ADMIN_EMAIL"),
	}
}

// IsProduction reports whether cookies should be issued with Secure/SameSite=None.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate rejects settings that are unsafe in production.
func (c *Config) Validate() error {
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == devJWTSecret) {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}
