package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, cfg Config, r Rand, clock *fakeClock) *Engine {
	t.Helper()
	engine, err := NewEngine(cfg, DefaultCatalog(), WithRand(r), WithClock(clock.Now))
	require.NoError(t, err)
	return engine
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxReports = 0

	_, err := NewEngine(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid engine config")

	catalog := DefaultCatalog()
	catalog.Usernames = nil
	_, err = NewEngine(DefaultConfig(), catalog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usernames")
}

func TestSpawnLaunchRespectsCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxLaunches = 3
	engine := newTestEngine(t, cfg, NewRand(1), newFakeClock())

	for i := 0; i < 3; i++ {
		assert.True(t, engine.SpawnLaunch())
	}
	assert.False(t, engine.SpawnLaunch())
	assert.Len(t, engine.Snapshot().Launches, 3)
}

func TestPublishersRespectCaps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxMessages, cfg.MaxReports, cfg.MaxMedia = 4, 2, 3
	engine := newTestEngine(t, cfg, NewRand(2), newFakeClock())

	var last Message
	for i := 0; i < 10; i++ {
		last = engine.PublishMessage()
		engine.PublishReport()
		engine.PublishMedia()
	}

	snap := engine.Snapshot()
	assert.Len(t, snap.Messages, 4)
	assert.Len(t, snap.Reports, 2)
	assert.Len(t, snap.Media, 3)
	assert.Equal(t, last.ID, snap.Messages[0].ID)
	assert.Equal(t, 9, snap.IntelPackets)
}

func TestTickRetainsTerminalLaunchForGraceWindow(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(t, DefaultConfig(), &scriptedRand{floats: []float64{0.5}}, clock)
	rec := &eventRecorder{}
	engine.Subscribe(rec.Observe)

	engine.launches.Push(enRouteLaunch("msl-grace001", 0.3))

	engine.Tick()
	snap := engine.Snapshot()
	require.Len(t, snap.Launches, 1)
	assert.Equal(t, StatusImpacted, snap.Launches[0].Status)
	assert.Zero(t, snap.Launches[0].ETASeconds)
	impact := snap.Launches[0].ImpactTime
	assert.Equal(t, clock.Now(), impact)

	clock.Advance(3 * time.Second)
	engine.Tick()
	snap = engine.Snapshot()
	require.Len(t, snap.Launches, 1, "still inside grace window at exactly 3000ms")
	assert.Equal(t, impact, snap.Launches[0].ImpactTime)

	clock.Advance(time.Millisecond)
	engine.Tick()
	assert.Empty(t, engine.Snapshot().Launches)

	assert.Equal(t, []EventKind{EventLaunchImpacted, EventLaunchExpired}, rec.Kinds())
}

func TestTickKeepsLiveLaunches(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(t, DefaultConfig(), NewRand(4), clock)

	for i := 0; i < 5; i++ {
		require.True(t, engine.SpawnLaunch())
	}
	before := engine.Snapshot().Launches

	engine.Tick()
	after := engine.Snapshot().Launches

	require.Len(t, after, len(before))
	for i := range after {
		assert.Equal(t, before[i].ID, after[i].ID, "tick preserves order")
		assert.Equal(t, before[i].ETASeconds-0.5, after[i].ETASeconds)
	}
}

func TestSnapshotCountsActiveThreats(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(t, DefaultConfig(), NewRand(5), clock)

	done := enRouteLaunch("msl-done0001", 0)
	done.Status = StatusIntercepted
	done.ImpactTime = clock.Now()
	engine.launches.Push(done)
	engine.launches.Push(enRouteLaunch("msl-live0001", 12))
	require.True(t, engine.SpawnLaunch())

	snap := engine.Snapshot()
	assert.Equal(t, 2, snap.ActiveThreats)
	assert.Len(t, snap.Launches, 3)
}

func TestStatusNoticesExpire(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(t, DefaultConfig(), NewRand(6), clock)

	assert.Equal(t, StatusAwaiting, engine.Snapshot().Status)

	engine.SpawnLaunch()
	assert.Equal(t, NoticeLaunch, engine.Snapshot().Status)

	clock.Advance(1500 * time.Millisecond)
	assert.Equal(t, StatusAwaiting, engine.Snapshot().Status)

	engine.PublishReport()
	clock.Advance(1999 * time.Millisecond)
	assert.Equal(t, NoticeReport, engine.Snapshot().Status)

	engine.PublishMedia()
	assert.Equal(t, NoticeMedia, engine.Snapshot().Status)

	engine.PublishMessage()
	assert.Equal(t, NoticeMedia, engine.Snapshot().Status, "messages do not announce")
}

func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.TickInterval = 2 * time.Millisecond
	cfg.LaunchInterval = 3 * time.Millisecond
	cfg.MessageInterval = 2 * time.Millisecond
	cfg.ReportInterval = 5 * time.Millisecond
	cfg.MediaInterval = 4 * time.Millisecond
	return cfg
}

func TestEngineStartStop(t *testing.T) {
	engine, err := NewEngine(fastConfig(), nil)
	require.NoError(t, err)
	rec := &eventRecorder{}
	engine.Subscribe(rec.Observe)

	ctx := context.Background()
	require.NoError(t, engine.Start(ctx))
	assert.True(t, engine.Running())
	assert.Error(t, engine.Start(ctx), "second start must fail")

	require.Eventually(t, func() bool {
		s := engine.Snapshot()
		return len(s.Launches) > 0 && len(s.Messages) > 0 && len(s.Reports) > 0 && len(s.Media) > 0
	}, 2*time.Second, 5*time.Millisecond)

	engine.Stop()
	assert.False(t, engine.Running())

	frozen := engine.Snapshot()
	time.Sleep(30 * time.Millisecond)
	after := engine.Snapshot()

	assert.Equal(t, frozen.Launches, after.Launches)
	assert.Equal(t, frozen.Messages, after.Messages)
	assert.Equal(t, frozen.Reports, after.Reports)
	assert.Equal(t, frozen.Media, after.Media)

	kinds := rec.Kinds()
	require.NotEmpty(t, kinds)
	assert.Equal(t, EventResumed, kinds[0])
	assert.Equal(t, EventPaused, kinds[len(kinds)-1])

	engine.Stop()
}

func TestEngineToggleResumes(t *testing.T) {
	engine, err := NewEngine(fastConfig(), nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, engine.Toggle(ctx))
	assert.True(t, engine.Running())

	require.NoError(t, engine.Toggle(ctx))
	assert.False(t, engine.Running())
	paused := len(engine.Snapshot().Messages)

	require.NoError(t, engine.Toggle(ctx))
	require.Eventually(t, func() bool {
		return len(engine.Snapshot().Messages) > paused
	}, 2*time.Second, 5*time.Millisecond)

	engine.Stop()
}

func TestEngineStopsWithContext(t *testing.T) {
	engine, err := NewEngine(fastConfig(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, engine.Start(ctx))
	cancel()

	done := make(chan struct{})
	go func() {
		engine.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stop did not return after context cancellation")
	}
}

func TestEngineReportsPausedWhenContextEnds(t *testing.T) {
	cfg := fastConfig()
	cfg.LaunchInterval = time.Hour
	cfg.ReportInterval = time.Hour
	cfg.MediaInterval = time.Hour
	engine, err := NewEngine(cfg, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, engine.Start(ctx))
	cancel()

	require.Eventually(t, func() bool {
		return !engine.Running()
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, StatusPaused, engine.Snapshot().Status)
	assert.False(t, engine.Snapshot().Running)

	require.NoError(t, engine.Start(context.Background()), "a run ended by its context can be restarted")
	assert.True(t, engine.Running())
	engine.Stop()
	assert.False(t, engine.Running())
}
