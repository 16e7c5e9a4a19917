package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	TelegramModeWebhook = "webhook"
	TelegramModePoll    = "poll"

	VisitorDriverPostgres = "postgres"
	VisitorDriverSQLite   = "sqlite"
	VisitorDriverNone     = "none"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Relay
	Telegram     TelegramConfig
	Conversation ConversationConfig
	Commands     CommandsConfig
	Visitor      VisitorConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Webhook delivery guards
	Webhook WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type TelegramConfig struct {
	BotToken      string
	APIURL        string // empty means api.telegram.org
	Mode          string // webhook or poll
	WebhookURL    string // public base URL; the webhook path is appended
	WebhookSecret string
	PollTimeout   int // getUpdates long-poll seconds
	ParseMode     string
}

type ConversationConfig struct {
	MaxHistorySize    int
	PlaceholderText   string
	FallbackText      string
	CompletionTimeout time.Duration
	UsernameSentinel  string
}

type CommandsConfig struct {
	StartImageURL string
	StartCaption  string
	Greeting      string
	DonateText    string
	HelpText      string
}

type VisitorConfig struct {
	Driver string // postgres, sqlite or none
	DSN    string
	Table  string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers         []ProviderConfig `yaml:"providers"`
	FallbackEnabled   bool             `yaml:"fallback_enabled"`
	RetryAttempts     int              `yaml:"retry_attempts"`
	RetryDelay        string           `yaml:"retry_delay"`
	MaxTotalTimeout   string           `yaml:"max_total_timeout"`
	SystemInstruction string           `yaml:"system_instruction"`
	Temperature       float64          `yaml:"temperature"`
	MaxTokens         int              `yaml:"max_tokens"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

type WebhookConfig struct {
	Path            string
	AllowedIPs      []string
	RateLimitPerMin int
}

// Load loads configuration using Viper. When path is empty the file
// config.yaml is searched in ./config, ., /etc/app/; a missing file is not an
// error since every field can come from the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/app/")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	if port := v.GetInt("port"); port != 0 {
		cfg.HTTPServer.Port = port
	}
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.HTTPServer.ShutdownTimeout = v.GetDuration("http_server.shutdown_timeout")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// Telegram
	cfg.Telegram.BotToken = v.GetString("telegram.bot_token")
	if tgToken := v.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}
	cfg.Telegram.APIURL = v.GetString("telegram.api_url")
	cfg.Telegram.Mode = strings.ToLower(v.GetString("telegram.mode"))
	cfg.Telegram.WebhookURL = v.GetString("telegram.webhook_url")
	if webhookURL := v.GetString("webhook_url"); webhookURL != "" {
		cfg.Telegram.WebhookURL = webhookURL
	}
	cfg.Telegram.WebhookSecret = v.GetString("telegram.webhook_secret")
	if secret := v.GetString("webhook_secret"); secret != "" {
		cfg.Telegram.WebhookSecret = secret
	}
	cfg.Telegram.PollTimeout = v.GetInt("telegram.poll_timeout")
	cfg.Telegram.ParseMode = v.GetString("telegram.parse_mode")

	// Conversation
	cfg.Conversation.MaxHistorySize = v.GetInt("conversation.max_history_size")
	cfg.Conversation.PlaceholderText = v.GetString("conversation.placeholder_text")
	cfg.Conversation.FallbackText = v.GetString("conversation.fallback_text")
	cfg.Conversation.CompletionTimeout = v.GetDuration("conversation.completion_timeout")
	cfg.Conversation.UsernameSentinel = v.GetString("conversation.username_sentinel")

	// Commands
	cfg.Commands.StartImageURL = v.GetString("commands.start_image_url")
	cfg.Commands.StartCaption = v.GetString("commands.start_caption")
	cfg.Commands.Greeting = v.GetString("commands.greeting")
	cfg.Commands.DonateText = v.GetString("commands.donate_text")
	cfg.Commands.HelpText = v.GetString("commands.help_text")

	// Visitor log
	cfg.Visitor.Driver = strings.ToLower(v.GetString("visitor.driver"))
	cfg.Visitor.DSN = v.GetString("visitor.dsn")
	if dsn := v.GetString("database_url"); dsn != "" {
		cfg.Visitor.DSN = dsn
	}
	cfg.Visitor.Table = v.GetString("visitor.table")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = v.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = v.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = v.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = v.GetString("llm.max_total_timeout")
	cfg.LLM.SystemInstruction = v.GetString("llm.system_instruction")
	if si := v.GetString("si"); si != "" {
		cfg.LLM.SystemInstruction = si
	}
	cfg.LLM.Temperature = v.GetFloat64("llm.temperature")
	cfg.LLM.MaxTokens = v.GetInt("llm.max_tokens")

	if v.IsSet("llm.providers") {
		if providersList, ok := v.Get("llm.providers").([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(v, getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					})
				}
			}
		}
	}

	// Webhook delivery guards
	cfg.Webhook.Path = v.GetString("webhook.path")
	cfg.Webhook.RateLimitPerMin = v.GetInt("webhook.rate_limit_per_min")

	// Split allowed IPs since viper might not parse array seamlessly from env
	var ips []string
	if rawIps := v.GetString("webhook.allowed_ips"); rawIps != "" {
		for _, ip := range strings.Split(rawIps, ",") {
			ip = strings.TrimSpace(ip)
			if ip != "" {
				ips = append(ips, ip)
			}
		}
	} else {
		ips = v.GetStringSlice("webhook.allowed_ips")
	}
	cfg.Webhook.AllowedIPs = ips

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("http_server.shutdown_timeout", "10s")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("telegram.mode", TelegramModeWebhook)
	v.SetDefault("telegram.poll_timeout", 30)
	v.SetDefault("telegram.parse_mode", "Markdown")

	v.SetDefault("conversation.max_history_size", 5)
	v.SetDefault("conversation.placeholder_text", "typing...")
	v.SetDefault("conversation.fallback_text", "Sorry, I couldn't process your request.")
	v.SetDefault("conversation.completion_timeout", "60s")
	v.SetDefault("conversation.username_sentinel", "No_username")

	v.SetDefault("commands.start_image_url", "https://nataichat.onrender.com/natAi-logo-nobg.png")
	v.SetDefault("commands.start_caption", "Welcome to the NatAI Telegram Bot!")
	v.SetDefault("commands.greeting", "Hello, How can I help you today?")
	v.SetDefault("commands.donate_text", "Thank you for considering a donation! Here are the ways you can support me:\n1. Telebirr: `0941559518`\nYour support helps me continue my work!")
	v.SetDefault("commands.help_text", "Send me any message and I'll answer it. Commands: /start, /donate, /help")

	v.SetDefault("visitor.driver", VisitorDriverNone)
	v.SetDefault("visitor.table", "telegrambot_visitors")

	v.SetDefault("webhook.path", "/webhook/telegram")
	v.SetDefault("webhook.rate_limit_per_min", 60)

	// LLM defaults
	v.SetDefault("llm.fallback_enabled", true)
	v.SetDefault("llm.retry_attempts", 1)
	v.SetDefault("llm.retry_delay", "1s")
	v.SetDefault("llm.max_total_timeout", "60s")
}

// Validate checks cross-field constraints after loading.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram bot token is required (telegram.bot_token or TELEGRAM_BOT_TOKEN)")
	}
	switch c.Telegram.Mode {
	case TelegramModeWebhook, TelegramModePoll:
	default:
		return fmt.Errorf("telegram.mode must be %q or %q, got %q", TelegramModeWebhook, TelegramModePoll, c.Telegram.Mode)
	}
	if c.Conversation.MaxHistorySize < 1 {
		return fmt.Errorf("conversation.max_history_size must be positive, got %d", c.Conversation.MaxHistorySize)
	}
	if c.Conversation.UsernameSentinel == "" {
		return fmt.Errorf("conversation.username_sentinel must not be empty")
	}
	switch c.Visitor.Driver {
	case VisitorDriverNone:
	case VisitorDriverPostgres, VisitorDriverSQLite:
		if c.Visitor.DSN == "" {
			return fmt.Errorf("visitor.dsn is required for driver %s", c.Visitor.Driver)
		}
	default:
		return fmt.Errorf("unknown visitor.driver %q", c.Visitor.Driver)
	}
	if !strings.HasPrefix(c.Webhook.Path, "/") {
		return fmt.Errorf("webhook.path must start with /")
	}
	return validateLLMConfig(&c.LLM)
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(v *viper.Viper, value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := v.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := v.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
		return ""
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured - please add llm.providers section to config.yaml")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			enabledCount++

			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}

			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	if cfg.RetryDelay != "" {
		if _, err := time.ParseDuration(cfg.RetryDelay); err != nil {
			return fmt.Errorf("llm.retry_delay: %w", err)
		}
	}
	if cfg.MaxTotalTimeout != "" {
		if _, err := time.ParseDuration(cfg.MaxTotalTimeout); err != nil {
			return fmt.Errorf("llm.max_total_timeout: %w", err)
		}
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
