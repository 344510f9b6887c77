package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_StretchAvailableOutsideReminder(t *testing.T) {
	shown := 0
	manager := New(nil, "LetsStretch", Callbacks{OnShowStretch: func() { shown++ }})

	assert.False(t, manager.stretchItem.Disabled)
	assert.True(t, manager.snoozeItem.Disabled)
	assert.True(t, manager.skipItem.Disabled)

	manager.stretchItem.Action()
	assert.Equal(t, 1, shown)

	manager.SetReminded(true)
	assert.False(t, manager.stretchItem.Disabled)
	assert.False(t, manager.snoozeItem.Disabled)

	manager.SetReminded(false)
	assert.False(t, manager.stretchItem.Disabled)
	assert.True(t, manager.skipItem.Disabled)
}

func TestManager_SnoozeLabel(t *testing.T) {
	manager := New(nil, "LetsStretch", Callbacks{})
	assert.Equal(t, "Snooze", manager.snoozeItem.Label)

	manager.SetSnoozeMinutes(10)
	assert.Equal(t, "Snooze (10 min)", manager.snoozeItem.Label)

	manager.SetSnoozeMinutes(5)
	assert.Equal(t, "Snooze (5 min)", manager.snoozeItem.Label)
}
