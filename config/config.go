package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type AWSConfig struct {
	Region     string
	S3Bucket   string
	CDNBaseURL string
	SESSender  string
}

type Config struct {
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	OpenAI   OpenAIConfig
	AWS      AWSConfig
}

// Load reads configuration from the environment. A .env file is picked up
// when present so local runs match the deployed container.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, using process environment")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "calorietracker")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_TTL_MINUTES", 1440)
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("OPENAI_TIMEOUT_SECONDS", 30)

	cfg := &Config{
		Port: v.GetString("PORT"),
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    time.Duration(v.GetInt("JWT_TTL_MINUTES")) * time.Minute,
		},
		OpenAI: OpenAIConfig{
			APIKey:  v.GetString("OPENAI_API_KEY"),
			Model:   v.GetString("OPENAI_MODEL"),
			BaseURL: v.GetString("OPENAI_BASE_URL"),
			Timeout: time.Duration(v.GetInt("OPENAI_TIMEOUT_SECONDS")) * time.Second,
		},
		AWS: AWSConfig{
			Region:     v.GetString("AWS_REGION"),
			S3Bucket:   v.GetString("S3_BUCKET"),
			CDNBaseURL: v.GetString("CLOUDFRONT_URL"),
			SESSender:  v.GetString("SES_EMAIL"),
		},
	}
	return cfg, nil
}
