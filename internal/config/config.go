package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

type Config struct {
	Port            string
	BoardHeight     int
	BoardWidth      int
	Player1Color    string
	Player2Color    string
	AllowedOrigins  []string
	RedisURL        string
	RedisPassword   string
	TokenSecret     string
	TokenTTL        time.Duration
	GameIdleTimeout time.Duration
	CleanupInterval time.Duration
	Production      bool
}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOrigins := []string{frontendURL}
	for _, origin := range strings.Split(GetEnv("ALLOWED_ORIGINS", ""), ",") {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" && trimmed != frontendURL {
			allowedOrigins = append(allowedOrigins, trimmed)
		}
	}

	return &Config{
		Port:            port,
		BoardHeight:     GetEnvAsInt("BOARD_HEIGHT", 6),
		BoardWidth:      GetEnvAsInt("BOARD_WIDTH", 7),
		Player1Color:    GetEnv("PLAYER1_COLOR", "red"),
		Player2Color:    GetEnv("PLAYER2_COLOR", "gold"),
		AllowedOrigins:  allowedOrigins,
		RedisURL:        GetEnv("REDIS_URL", ""),
		RedisPassword:   GetEnv("REDIS_PASSWORD", ""),
		TokenSecret:     GetEnv("GAME_TOKEN_SECRET", "change-this-in-production"),
		TokenTTL:        time.Duration(GetEnvAsInt("GAME_TOKEN_TTL_HOURS", 24)) * time.Hour,
		GameIdleTimeout: time.Duration(GetEnvAsInt("GAME_IDLE_TIMEOUT_MINUTES", 60)) * time.Minute,
		CleanupInterval: time.Duration(GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 60)) * time.Minute,
		Production:      GetEnv("ENVIRONMENT", "development") == "production",
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.BoardHeight <= 0 || c.BoardHeight > domain.MaxHeight {
		return fmt.Errorf("BOARD_HEIGHT must be between 1 and %d, got %d", domain.MaxHeight, c.BoardHeight)
	}
	if c.BoardWidth <= 0 || c.BoardWidth > domain.MaxWidth {
		return fmt.Errorf("BOARD_WIDTH must be between 1 and %d, got %d", domain.MaxWidth, c.BoardWidth)
	}
	if c.CleanupInterval <= 0 {
		return errors.New("CLEANUP_INTERVAL_MINUTES must be positive")
	}
	if c.GameIdleTimeout <= 0 {
		return errors.New("GAME_IDLE_TIMEOUT_MINUTES must be positive")
	}
	if c.TokenTTL <= 0 {
		return errors.New("GAME_TOKEN_TTL_HOURS must be positive")
	}
	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
