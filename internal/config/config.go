package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full process configuration: one server block plus one
// deployment block per object store the service fronts.
type Config struct {
	Server      ServerConfig
	Deployments []DeploymentConfig
}

type ServerConfig struct {
	Port           string
	LogLevel       string
	AllowedOrigins []string
}

// DeploymentConfig describes one S3-compatible deployment. The S3 and R2
// deployments share this schema and differ only in values.
type DeploymentConfig struct {
	Name       string
	PathPrefix string
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	Region     string
	UseSSL     bool
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_LOG_LEVEL", "info")
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})

		viper.SetDefault("S3_ENDPOINT", "s3.amazonaws.com")
		viper.SetDefault("S3_ACCESS_KEY_ID", "")
		viper.SetDefault("S3_SECRET_ACCESS_KEY", "")
		viper.SetDefault("S3_BUCKET", "iconluxurygroup")
		viper.SetDefault("S3_REGION", "us-east-1")
		viper.SetDefault("S3_USE_SSL", true)

		viper.SetDefault("R2_ENDPOINT", "")
		viper.SetDefault("R2_ACCESS_KEY_ID", "")
		viper.SetDefault("R2_SECRET_ACCESS_KEY", "")
		viper.SetDefault("R2_BUCKET", "iconluxurygroup")
		viper.SetDefault("R2_REGION", "auto")
		viper.SetDefault("R2_USE_SSL", true)

		viper.AutomaticEnv()

		candidates := []DeploymentConfig{
			{
				Name:       "s3",
				PathPrefix: "/s3",
				Endpoint:   viper.GetString("S3_ENDPOINT"),
				AccessKey:  viper.GetString("S3_ACCESS_KEY_ID"),
				SecretKey:  viper.GetString("S3_SECRET_ACCESS_KEY"),
				Bucket:     viper.GetString("S3_BUCKET"),
				Region:     viper.GetString("S3_REGION"),
				UseSSL:     viper.GetBool("S3_USE_SSL"),
			},
			{
				Name:       "r2",
				PathPrefix: "/r2",
				Endpoint:   viper.GetString("R2_ENDPOINT"),
				AccessKey:  viper.GetString("R2_ACCESS_KEY_ID"),
				SecretKey:  viper.GetString("R2_SECRET_ACCESS_KEY"),
				Bucket:     viper.GetString("R2_BUCKET"),
				Region:     viper.GetString("R2_REGION"),
				UseSSL:     viper.GetBool("R2_USE_SSL"),
			},
		}

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				LogLevel:       viper.GetString("SERVER_LOG_LEVEL"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
		}
		// A deployment without an endpoint is not configured; skip it
		// rather than failing the whole server.
		for _, dep := range candidates {
			if dep.Endpoint != "" {
				instance.Deployments = append(instance.Deployments, dep)
			}
		}
	})

	return instance
}
