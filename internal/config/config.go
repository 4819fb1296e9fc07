package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Draw     DrawConfig
	Renderer RendererConfig
	Telegram TelegramConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // Seconds
}

// DrawConfig holds draw engine configuration
type DrawConfig struct {
	CutoffMinutes       int    // New preselections are blocked this close to the scheduled time
	ScanIntervalSeconds int    // Cadence of the close scan driver
	Timezone            string // IANA name the draw calendar runs in
}

// RendererConfig holds result-image renderer configuration
type RendererConfig struct {
	BaseURL      string
	APIKey       string
	TimeoutSecs  int
	MockRenderer bool
}

// TelegramConfig holds the Telegram notification sink configuration
type TelegramConfig struct {
	BotToken     string
	ChatID       string
	TimeoutSecs  int
	MockTelegram bool
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Unmarshal configuration
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "draw-engine")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("Draw.CutoffMinutes", 5)
	viper.SetDefault("Draw.ScanIntervalSeconds", 60)
	viper.SetDefault("Draw.Timezone", "America/Caracas")
	viper.SetDefault("Renderer.TimeoutSecs", 30)
	viper.SetDefault("Renderer.MockRenderer", true)
	viper.SetDefault("Telegram.TimeoutSecs", 30)
	viper.SetDefault("Telegram.MockTelegram", true)
	viper.SetDefault("LogLevel", "info")
}
