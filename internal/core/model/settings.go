package model

// Settings defines editable user preferences.
type Settings struct {
	ReminderIntervalMinutes int
	SnoozeIntervalMinutes   int
	EnabledCategories       []Category
	StretchDurationSeconds  int
	RestIntervalSeconds     int
	StretchesPerSession     int
	LaunchAtLogin           bool
}

// DefaultSettings returns default settings for LetsStretch.
func DefaultSettings() Settings {
	return Settings{
		ReminderIntervalMinutes: 45,
		SnoozeIntervalMinutes:   10,
		EnabledCategories:       []Category{CategoryDeskFriendly},
		StretchDurationSeconds:  20,
		RestIntervalSeconds:     5,
		StretchesPerSession:     5,
		LaunchAtLogin:           false,
	}
}

// ReminderConfig converts settings to ReminderConfig.
func (settings Settings) ReminderConfig() ReminderConfig {
	return ReminderConfig{
		IntervalMinutes: settings.ReminderIntervalMinutes,
		SnoozeMinutes:   settings.SnoozeIntervalMinutes,
	}
}

// SessionConfig converts settings to SessionConfig.
func (settings Settings) SessionConfig() SessionConfig {
	return SessionConfig{
		StretchDurationSeconds: settings.StretchDurationSeconds,
		RestIntervalSeconds:    settings.RestIntervalSeconds,
		StretchesPerSession:    settings.StretchesPerSession,
		Categories:             append([]Category(nil), settings.EnabledCategories...),
	}
}

// CategoryEnabled reports whether category is in the enabled set.
func (settings Settings) CategoryEnabled(category Category) bool {
	for _, enabled := range settings.EnabledCategories {
		if enabled == category {
			return true
		}
	}
	return false
}

// WithCategory returns settings with category switched on or off. Turning off
// the last enabled category is refused and reported as false.
func (settings Settings) WithCategory(category Category, enabled bool) (Settings, bool) {
	if enabled {
		if !settings.CategoryEnabled(category) {
			settings.EnabledCategories = NormalizeCategories(append(append([]Category(nil), settings.EnabledCategories...), category))
		}
		return settings, true
	}

	remaining := make([]Category, 0, len(settings.EnabledCategories))
	for _, current := range settings.EnabledCategories {
		if current != category {
			remaining = append(remaining, current)
		}
	}
	if len(remaining) == 0 {
		return settings, false
	}
	settings.EnabledCategories = remaining
	return settings, true
}

// NormalizeCategories drops unknown and repeated values and orders the rest
// like Categories.
func NormalizeCategories(categories []Category) []Category {
	present := make(map[Category]bool, len(categories))
	for _, category := range categories {
		present[category] = true
	}
	var normalized []Category
	for _, category := range Categories() {
		if present[category] {
			normalized = append(normalized, category)
		}
	}
	return normalized
}
