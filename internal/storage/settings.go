package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/minhokang/schedbot/pkg/models"
)

// timeEntryPattern accepts user-supplied HH:MM notification times.
var timeEntryPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// SettingsManager persists the runtime bot settings in a YAML file. Every
// mutation loads the current file, applies the change, and writes it back;
// callers are expected to rebuild the notification scheduler afterwards.
type SettingsManager interface {
	Load() (*models.Settings, error)
	Save(settings *models.Settings) error
	AddNotificationTime(entry string) (*models.Settings, error)
	RemoveNotificationTime(entry string) (*models.Settings, error)
	ToggleTestMode() (*models.Settings, error)
	SetTimezone(tz string) (*models.Settings, error)
}

type fileSettingsManager struct {
	path string
}

// NewSettingsManager creates a SettingsManager backed by the YAML file at
// the given path (typically config.yml next to the vault).
func NewSettingsManager(path string) SettingsManager {
	return &fileSettingsManager{path: path}
}

// DefaultSettings returns the stock notification schedule.
func DefaultSettings() *models.Settings {
	return &models.Settings{
		NotificationTimes: []string{"09:00", "12:00", "15:00", "18:00", "21:00", "00:00"},
		Timezone:          "Asia/Seoul",
		TestMode:          false,
	}
}

// Load reads the settings file. A missing file is created with defaults; an
// unparseable file degrades to defaults rather than failing, so a corrupted
// config never takes the bot down.
func (m *fileSettingsManager) Load() (*models.Settings, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			defaults := DefaultSettings()
			if saveErr := m.Save(defaults); saveErr != nil {
				return nil, saveErr
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	var settings models.Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), nil
	}
	if settings.Timezone == "" {
		settings.Timezone = DefaultSettings().Timezone
	}
	return &settings, nil
}

// Save writes the settings file, creating parent directories as needed.
func (m *fileSettingsManager) Save(settings *models.Settings) error {
	if dir := filepath.Dir(m.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("saving settings: creating directory: %w", err)
		}
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("saving settings: marshaling YAML: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o600); err != nil {
		return fmt.Errorf("saving settings: writing file: %w", err)
	}
	return nil
}

// NormalizeTimeEntry validates an HH:MM string and returns it zero-padded.
func NormalizeTimeEntry(entry string) (string, error) {
	entry = strings.TrimSpace(entry)
	if !timeEntryPattern.MatchString(entry) {
		return "", fmt.Errorf("invalid time %q: use HH:MM", entry)
	}
	hStr, mStr, _ := strings.Cut(entry, ":")
	h, _ := strconv.Atoi(hStr)
	mm, _ := strconv.Atoi(mStr)
	if h > 23 || mm > 59 {
		return "", fmt.Errorf("invalid time %q: hour must be 0-23 and minute 0-59", entry)
	}
	return fmt.Sprintf("%02d:%02d", h, mm), nil
}

// AddNotificationTime validates entry, inserts it into the sorted schedule,
// and persists the result. Adding an already-present time is a no-op.
func (m *fileSettingsManager) AddNotificationTime(entry string) (*models.Settings, error) {
	normalized, err := NormalizeTimeEntry(entry)
	if err != nil {
		return nil, err
	}
	settings, err := m.Load()
	if err != nil {
		return nil, err
	}
	for _, existing := range settings.NotificationTimes {
		if existing == normalized {
			return settings, nil
		}
	}
	settings.NotificationTimes = append(settings.NotificationTimes, normalized)
	sort.Strings(settings.NotificationTimes)
	if err := m.Save(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// RemoveNotificationTime deletes entry from the schedule and persists the
// result. Removing a time that is not configured is an error.
func (m *fileSettingsManager) RemoveNotificationTime(entry string) (*models.Settings, error) {
	settings, err := m.Load()
	if err != nil {
		return nil, err
	}
	kept := settings.NotificationTimes[:0]
	found := false
	for _, existing := range settings.NotificationTimes {
		if existing == strings.TrimSpace(entry) {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	if !found {
		return nil, fmt.Errorf("time %s is not configured", entry)
	}
	settings.NotificationTimes = kept
	if err := m.Save(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// ToggleTestMode flips test mode and persists the result.
func (m *fileSettingsManager) ToggleTestMode() (*models.Settings, error) {
	settings, err := m.Load()
	if err != nil {
		return nil, err
	}
	settings.TestMode = !settings.TestMode
	if err := m.Save(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SetTimezone validates tz against the IANA database and persists it.
func (m *fileSettingsManager) SetTimezone(tz string) (*models.Settings, error) {
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	settings, err := m.Load()
	if err != nil {
		return nil, err
	}
	settings.Timezone = tz
	if err := m.Save(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// ParseNotificationTimes converts the HH:MM entries into (hour, minute)
// pairs, silently skipping malformed entries.
func ParseNotificationTimes(settings *models.Settings) []models.NotificationTime {
	var times []models.NotificationTime
	for _, entry := range settings.NotificationTimes {
		normalized, err := NormalizeTimeEntry(entry)
		if err != nil {
			continue
		}
		hStr, mStr, _ := strings.Cut(normalized, ":")
		h, _ := strconv.Atoi(hStr)
		mm, _ := strconv.Atoi(mStr)
		times = append(times, models.NotificationTime{Hour: h, Minute: mm})
	}
	return times
}

// Location resolves the configured timezone, falling back to local time when
// it cannot be loaded.
func Location(settings *models.Settings) *time.Location {
	if loc, err := time.LoadLocation(settings.Timezone); err == nil {
		return loc
	}
	return time.Local
}
