package core

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/minhokang/schedbot/pkg/models"
)

// ConfigurationManager loads the static process configuration from
// schedbot.yaml and the environment.
type ConfigurationManager interface {
	Load() (*models.StaticConfig, error)
	Validate(cfg *models.StaticConfig) error
}

// viperConfigManager implements ConfigurationManager using Viper for reading
// the YAML configuration file with environment overrides.
type viperConfigManager struct {
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// schedbot.yaml from basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// defaultStaticConfig returns a StaticConfig populated with the stock vault
// layout.
func defaultStaticConfig() *models.StaticConfig {
	return &models.StaticConfig{
		VaultPath:    "./obsidian",
		TodoPath:     "./obsidian/Todo Lists",
		SettingsPath: "./config.yml",
	}
}

// Load reads schedbot.yaml from the base path using Viper. Environment
// variables (TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID, OBSIDIAN_PATH,
// TODO_LISTS_PATH, CONFIG_PATH) override file values. A missing file yields
// defaults, not an error.
func (cm *viperConfigManager) Load() (*models.StaticConfig, error) {
	cfg := defaultStaticConfig()

	v := viper.New()
	v.SetConfigName("schedbot")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	v.SetDefault("vault.path", cfg.VaultPath)
	v.SetDefault("vault.todo_path", cfg.TodoPath)
	v.SetDefault("settings.path", cfg.SettingsPath)

	_ = v.BindEnv("telegram.token", "TELEGRAM_BOT_TOKEN")
	_ = v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")
	_ = v.BindEnv("vault.path", "OBSIDIAN_PATH")
	_ = v.BindEnv("vault.todo_path", "TODO_LISTS_PATH")
	_ = v.BindEnv("settings.path", "CONFIG_PATH")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading schedbot.yaml: %w", err)
		}
	}

	cfg.BotToken = v.GetString("telegram.token")
	cfg.ChatID = v.GetInt64("telegram.chat_id")
	cfg.VaultPath = v.GetString("vault.path")
	cfg.TodoPath = v.GetString("vault.todo_path")
	cfg.SettingsPath = v.GetString("settings.path")

	return cfg, nil
}

// Validate checks the fields every command needs. Telegram credentials are
// validated separately by the bot because the report commands run without
// them.
func (cm *viperConfigManager) Validate(cfg *models.StaticConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}
	if cfg.TodoPath == "" {
		return fmt.Errorf("vault.todo_path must not be empty")
	}
	if cfg.SettingsPath == "" {
		return fmt.Errorf("settings.path must not be empty")
	}
	return nil
}
