package trigger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTicker struct {
	deadline time.Time
	ok       bool
}

func (r *recordingTicker) OnTick(ctx context.Context) {
	r.deadline, r.ok = ctx.Deadline()
}

func TestTick_BoundsContextGenerously(t *testing.T) {
	t.Parallel()

	rec := &recordingTicker{}

	before := time.Now()
	tick(rec, 5*time.Minute)()

	require.True(t, rec.ok, "tick context should carry a deadline")

	// A cohort dispatch is paced in batches with retries; the budget has
	// to hold several minutes of that, not just the tick cadence.
	remaining := rec.deadline.Sub(before)
	assert.Greater(t, remaining, 4*time.Minute)
	assert.LessOrEqual(t, remaining, 5*time.Minute+time.Second)
}

func TestNew_DefaultsTickTimeout(t *testing.T) {
	t.Parallel()

	trig, err := New(&recordingTicker{}, 0, nil)
	require.NoError(t, err)
	require.NotNil(t, trig)

	// The default must cover a full-length dispatch the same way the
	// webhook path's timeout does.
	assert.Equal(t, 5*time.Minute, DefaultTickTimeout)
}
