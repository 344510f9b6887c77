package animation

import (
	"context"
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// DefaultPulseInterval is how long each icon frame stays visible.
const DefaultPulseInterval = 600 * time.Millisecond

// PulseSpec defines the two frames of the status icon pulse.
type PulseSpec struct {
	Active   fyne.Resource
	Dim      fyne.Resource
	Interval time.Duration
}

// Pulser alternates the status icon between its active and dimmed frames.
type Pulser struct {
	mu         sync.Mutex
	spec       PulseSpec
	updateIcon func(fyne.Resource)
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewPulser creates a stopped pulser. updateIcon is called from the pulse
// goroutine and must hop to the UI thread itself.
func NewPulser(spec PulseSpec, updateIcon func(fyne.Resource)) *Pulser {
	if spec.Interval <= 0 {
		spec.Interval = DefaultPulseInterval
	}
	return &Pulser{spec: spec, updateIcon: updateIcon}
}

// Start begins pulsing. Starting a running pulser is a no-op.
func (pulser *Pulser) Start(ctx context.Context) {
	pulser.mu.Lock()
	defer pulser.mu.Unlock()
	if pulser.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	pulser.cancel = cancel
	pulser.done = done

	go pulser.run(runCtx, done)
}

// Stop ends pulsing, waits for the goroutine and restores the active frame.
func (pulser *Pulser) Stop() {
	pulser.mu.Lock()
	cancel, done := pulser.cancel, pulser.done
	pulser.cancel, pulser.done = nil, nil
	pulser.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	pulser.updateIcon(pulser.spec.Active)
}

// Running reports whether the pulse goroutine is active.
func (pulser *Pulser) Running() bool {
	pulser.mu.Lock()
	defer pulser.mu.Unlock()
	return pulser.cancel != nil
}

func (pulser *Pulser) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	dim := true
	for {
		if dim {
			pulser.updateIcon(pulser.spec.Dim)
		} else {
			pulser.updateIcon(pulser.spec.Active)
		}
		dim = !dim
		if !sleepWithContext(ctx, pulser.spec.Interval) {
			return
		}
	}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
