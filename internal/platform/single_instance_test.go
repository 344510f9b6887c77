package platform

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueAppName(t *testing.T) string {
	return fmt.Sprintf("LetsStretchTest-%s-%d", t.Name(), time.Now().UnixNano())
}

func TestPortFromName_IsDeterministicAndInRange(t *testing.T) {
	first := portFromName("LetsStretch")
	assert.Equal(t, first, portFromName("LetsStretch"))
	assert.GreaterOrEqual(t, first, 20000)
	assert.LessOrEqual(t, first, 39999)
}

func TestAcquireSingleInstance_SecondAcquireFails(t *testing.T) {
	name := uniqueAppName(t)

	guard, err := AcquireSingleInstance(name)
	if err != nil {
		t.Skipf("port unavailable: %v", err)
	}
	defer guard.Release()

	_, err = AcquireSingleInstance(name)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, guard.Release())
	assert.NoError(t, guard.Release(), "release is idempotent")

	again, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	assert.NoError(t, again.Release())
}

func TestInstanceGuard_ActivateRunning(t *testing.T) {
	name := uniqueAppName(t)

	guard, err := AcquireSingleInstance(name)
	if err != nil {
		t.Skipf("port unavailable: %v", err)
	}
	defer guard.Release()

	var activations atomic.Int32
	go guard.Serve(func() { activations.Add(1) })

	require.NoError(t, ActivateRunning(name))
	assert.Eventually(t, func() bool { return activations.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestNilGuard(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
	guard.Serve(func() {})
}
