package model

// ReminderConfig contains the reminder scheduler settings.
type ReminderConfig struct {
	IntervalMinutes int
	SnoozeMinutes   int
}

// SessionConfig contains the settings used to build a guided session.
type SessionConfig struct {
	StretchDurationSeconds int
	RestIntervalSeconds    int
	StretchesPerSession    int
	Categories             []Category
}
