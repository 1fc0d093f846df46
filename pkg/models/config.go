package models

// StaticConfig holds process-level configuration read from schedbot.yaml and
// the environment at startup. These values never change while the bot runs.
type StaticConfig struct {
	BotToken     string `yaml:"token" mapstructure:"token"`
	ChatID       int64  `yaml:"chat_id" mapstructure:"chat_id"`
	VaultPath    string `yaml:"vault_path" mapstructure:"vault_path"`
	TodoPath     string `yaml:"todo_path" mapstructure:"todo_path"`
	SettingsPath string `yaml:"settings_path" mapstructure:"settings_path"`
}

// Settings holds the runtime bot settings persisted in config.yml. Unlike
// StaticConfig these are user-editable while the bot runs; every mutation
// goes through the settings store and triggers a scheduler rebuild.
type Settings struct {
	NotificationTimes []string `yaml:"notification_times"`
	Timezone          string   `yaml:"timezone"`
	TestMode          bool     `yaml:"test_mode"`
}

// NotificationTime is one parsed HH:MM entry from Settings.
type NotificationTime struct {
	Hour   int
	Minute int
}
