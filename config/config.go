package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type DiscordConfig struct {
	BotToken string
}

// IsConfigured returns true if all required Discord configuration is present
func (c DiscordConfig) IsConfigured() bool {
	return c.BotToken != ""
}

// CompletionConfig selects and configures the external completion backend
// used by the AI relay. The relay is disabled when no provider is configured.
type CompletionConfig struct {
	Provider        string // "gemini" or "anthropic"
	GeminiAPIKey    string
	GeminiModel     string
	AnthropicAPIKey string
	AnthropicModel  string
}

// IsConfigured returns true if the selected completion provider has an API key
func (c CompletionConfig) IsConfigured() bool {
	switch c.Provider {
	case "gemini":
		return c.GeminiAPIKey != ""
	case "anthropic":
		return c.AnthropicAPIKey != ""
	}
	return false
}

type AppConfig struct {
	// Core configuration
	Port           string // Optional with default "10000"
	GuildConfigDB  string // Path to the persisted guild config mapping
	VerifyRoleName string // Role granted by the verification button

	// Integration configurations (grouped)
	DiscordConfig    DiscordConfig
	CompletionConfig CompletionConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	botToken, err := getEnvRequired("DISCORD_BOT_TOKEN")
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		Port:           getEnvWithDefault("PORT", "10000"),
		GuildConfigDB:  getEnvWithDefault("DB_PATH", "db.json"),
		VerifyRoleName: getEnvWithDefault("VERIFY_ROLE_NAME", "Verified"),

		DiscordConfig: DiscordConfig{
			BotToken: botToken,
		},

		// Completion configuration (optional - AI relay disabled without it)
		CompletionConfig: CompletionConfig{
			Provider:        getEnvWithDefault("COMPLETION_PROVIDER", "gemini"),
			GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
			GeminiModel:     getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash"),
			AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
			AnthropicModel:  getEnvWithDefault("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		},
	}

	if config.CompletionConfig.IsConfigured() {
		log.Printf("✅ Completion provider configured: %s", config.CompletionConfig.Provider)
	} else {
		log.Printf("⚠️ Completion provider not configured - AI relay will be disabled")
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
