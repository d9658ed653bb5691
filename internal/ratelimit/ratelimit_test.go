package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_UnderLimit(t *testing.T) {
	store := NewStore(Config{Window: time.Minute, MaxRequests: 10})
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	for i := 1; i <= 10; i++ {
		d := store.Check("1.2.3.4", now)
		assert.False(t, d.Limited, "call %d should not be limited", i)
		assert.Equal(t, 10-i, d.Remaining, "remaining should decrease by one per call")
		assert.Equal(t, now.Add(time.Minute), d.ResetTime)
	}
}

func TestCheck_OverLimit(t *testing.T) {
	store := NewStore(Config{Window: time.Minute, MaxRequests: 3})
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		store.Check("1.2.3.4", now)
	}

	d := store.Check("1.2.3.4", now)
	assert.True(t, d.Limited)
	assert.Equal(t, 0, d.Remaining)
}

func TestCheck_WindowRollover(t *testing.T) {
	store := NewStore(Config{Window: time.Minute, MaxRequests: 2})
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	store.Check("1.2.3.4", now)
	store.Check("1.2.3.4", now)
	d := store.Check("1.2.3.4", now)
	require.True(t, d.Limited)

	// Past the window the counter resets regardless of prior state.
	later := now.Add(61 * time.Second)
	d = store.Check("1.2.3.4", later)
	assert.False(t, d.Limited)
	assert.Equal(t, 1, d.Remaining)
	assert.Equal(t, later.Add(time.Minute), d.ResetTime)
}

func TestCheck_IndependentClients(t *testing.T) {
	store := NewStore(Config{Window: time.Minute, MaxRequests: 1})
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	a := store.Check("1.1.1.1", now)
	b := store.Check("2.2.2.2", now)

	assert.False(t, a.Limited)
	assert.False(t, b.Limited)

	a = store.Check("1.1.1.1", now)
	assert.True(t, a.Limited, "one client hitting its cap must not limit another")
}

func TestCheck_Scenario(t *testing.T) {
	// End-to-end fixed-window walk for a single client.
	store := NewStore(Config{Window: 60000 * time.Millisecond, MaxRequests: 2})
	base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	steps := []struct {
		at        time.Duration
		limited   bool
		remaining int
	}{
		{0, false, 1},
		{10 * time.Millisecond, false, 0},
		{20 * time.Millisecond, true, 0},
		{61000 * time.Millisecond, false, 1},
	}

	for i, step := range steps {
		d := store.Check("1.2.3.4", base.Add(step.at))
		assert.Equal(t, step.limited, d.Limited, "call %d limited", i+1)
		assert.Equal(t, step.remaining, d.Remaining, "call %d remaining", i+1)
	}
}

func TestCheck_SweepRemovesExpiredRecords(t *testing.T) {
	store := NewStore(Config{Window: time.Minute, MaxRequests: 100, CleanupInterval: 10})
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	// Nine distinct one-shot clients whose windows will have expired by
	// the time the sweep runs.
	for i := 0; i < 9; i++ {
		store.Check(string(rune('a'+i)), now)
	}
	require.Equal(t, 9, store.Len())

	// The tenth call triggers the sweep. Its own record is created after
	// the sweep, and the fresh client's window is still open, so exactly
	// one record survives.
	later := now.Add(2 * time.Minute)
	store.Check("fresh", later)
	assert.Equal(t, 1, store.Len())
}

func TestCheck_SweepRetainsLiveRecords(t *testing.T) {
	store := NewStore(Config{Window: 10 * time.Minute, MaxRequests: 100, CleanupInterval: 5})
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		store.Check(string(rune('a'+i)), now)
	}

	// Windows are 10 minutes long, so nothing is expired when the fifth
	// call sweeps.
	store.Check("e", now.Add(time.Minute))
	assert.Equal(t, 5, store.Len())
}

func TestCheck_DefaultConfig(t *testing.T) {
	store := NewStore(Config{})
	assert.Equal(t, DefaultMaxRequests, store.MaxRequests())
	assert.Equal(t, DefaultWindow, store.Window())

	d := store.Check("1.2.3.4", time.Now())
	assert.False(t, d.Limited)
	assert.Equal(t, DefaultMaxRequests-1, d.Remaining)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{
			name:      "first forwarded entry wins",
			forwarded: "1.2.3.4, 10.0.0.1",
			realIP:    "5.6.7.8",
			want:      "1.2.3.4",
		},
		{
			name:   "real ip when no forwarded header",
			realIP: "5.6.7.8",
			want:   "5.6.7.8",
		},
		{
			name:       "remote address host",
			remoteAddr: "9.9.9.9:54321",
			want:       "9.9.9.9",
		},
		{
			name: "sentinel when nothing identifies the client",
			want: UnknownClient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}

			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}
