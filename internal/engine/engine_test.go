package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/runes/internal/config"
	"github.com/vovakirdan/runes/internal/core"
	"github.com/vovakirdan/runes/internal/ecs"
	"github.com/vovakirdan/runes/internal/gesture"
	"github.com/vovakirdan/runes/internal/levels"
	"github.com/vovakirdan/runes/internal/powerups"
)

const frame = 1.0 / 30

// recorder is a presenter that remembers what the engine asked for.
type recorder struct {
	NopPresenter
	advisories []Advisory
	removals   []RemovalStyle
	ended      int
	won        bool
	score      int
	onSpawn    func(VisualSpec)
}

func (r *recorder) SpawnVisual(spec VisualSpec) VisualHandle {
	if r.onSpawn != nil {
		r.onSpawn(spec)
	}
	return r.NopPresenter.SpawnVisual(spec)
}

func (r *recorder) PlayRemovalAnimation(pos core.Vec2, style RemovalStyle, done func()) {
	r.removals = append(r.removals, style)
	r.NopPresenter.PlayRemovalAnimation(pos, style, done)
}

func (r *recorder) ReportGameEnd(didWin bool, score int) {
	r.ended++
	r.won = didWin
	r.score = score
}

func (r *recorder) Notify(a Advisory) {
	r.advisories = append(r.advisories, a)
}

func testLevel(interval float64, waves ...levels.Wave) levels.Level {
	return levels.Level{Number: 1, Name: "test", SpawnInterval: interval, Waves: waves}
}

func newTestEngine(t *testing.T, cfg config.GameConfig, lvl levels.Level) (*Engine, *recorder) {
	t.Helper()
	rec := &recorder{}
	e, err := New(Options{Config: cfg, Level: lvl, Presenter: rec, Seed: 1})
	require.NoError(t, err)
	return e, rec
}

func onlyEnemy(t *testing.T, e *Engine) EnemyView {
	t.Helper()
	enemies := e.Enemies()
	require.Len(t, enemies, 1)
	return enemies[0]
}

func TestNewRejectsBadInput(t *testing.T) {
	cfg := config.DefaultGameConfig()

	_, err := New(Options{Config: cfg, Level: testLevel(1, levels.Wave{"dragon"})})
	assert.Error(t, err, "unknown enemy in a wave")

	_, err = New(Options{Config: cfg, Level: testLevel(1, levels.Wave{"orc1", "orc1", "orc1", "orc1"})})
	assert.Error(t, err, "wave wider than the arena")

	bad := config.DefaultGameConfig()
	bad.Arena.Lanes = 0
	_, err = New(Options{Config: bad, Level: testLevel(1, levels.Wave{"orc1"})})
	assert.Error(t, err, "no lanes")

	bad = config.DefaultGameConfig()
	bad.Gestures = nil
	_, err = New(Options{Config: bad, Level: testLevel(1, levels.Wave{"orc1"})})
	assert.ErrorIs(t, err, gesture.ErrNoTemplates)
}

func TestSpawnPlacesEnemiesInLanes(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultGameConfig(), testLevel(1, levels.Wave{"orc1", levels.Empty, "troll1"}))
	assert.Equal(t, PhaseWaiting, e.State().Phase)

	e.Update(frame)
	enemies := e.Enemies()
	require.Len(t, enemies, 2)
	assert.Equal(t, "orc1", enemies[0].Type)
	assert.InDelta(t, 100, enemies[0].Position.X, 0.5)
	assert.InDelta(t, 950, enemies[0].Position.Y, 0.5)
	assert.Equal(t, "troll1", enemies[1].Type)
	assert.InDelta(t, 500, enemies[1].Position.X, 0.5)
	for _, en := range enemies {
		assert.NotEmpty(t, en.Gesture, "every enemy carries a marker")
	}
	assert.Equal(t, 2, e.State().EnemiesOnField)
	assert.Equal(t, PhaseExhausted, e.State().Phase)
}

func TestEnemiesWalkTowardsLine(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultGameConfig(), testLevel(1, levels.Wave{"orc1"}))
	e.Update(frame)
	start := onlyEnemy(t, e).Position

	for range 60 {
		e.Update(frame)
	}
	now := onlyEnemy(t, e).Position
	assert.Less(t, now.Y, start.Y, "enemy moves down")
	assert.InDelta(t, start.X, now.X, 0.5, "enemy stays in its lane")
}

func TestKillAndRespawnGesture(t *testing.T) {
	e, rec := newTestEngine(t, config.DefaultGameConfig(), testLevel(1, levels.Wave{"orc2"}))
	e.Update(frame)

	first := onlyEnemy(t, e)
	require.Equal(t, 2, first.Health)
	oldMarker, _ := e.Store().MarkerRef(first.ID)
	oldMarkerID := oldMarker.Marker

	assert.Equal(t, 1, e.GestureActivated(first.Gesture))
	hurt, ok := e.Enemy(first.ID)
	require.True(t, ok)
	assert.Equal(t, 1, hurt.Health)
	assert.NotEmpty(t, hurt.Gesture)
	assert.NotEqual(t, first.Gesture, hurt.Gesture, "a fresh gesture replaces the cleared one")
	assert.True(t, e.Store().IsPendingRemoval(oldMarkerID))
	assert.Equal(t, 0, e.State().Score)

	assert.Equal(t, 1, e.GestureActivated(hurt.Gesture))
	assert.True(t, e.Store().IsPendingRemoval(first.ID))
	assert.Empty(t, e.Enemies(), "removed enemies are hidden before the drain")
	st := e.State()
	assert.Equal(t, 20, st.Score)
	assert.Equal(t, 1, st.Kills)
	assert.InDelta(t, 1.1, st.Multiplier, 1e-9)
	assert.Contains(t, rec.removals, RemovalDefeated)

	e.Update(frame)
	_, known := e.Store().Type(first.ID)
	assert.False(t, known, "drained entities are gone from the store")
	assert.Zero(t, e.Store().Count(ecs.TypeGestureMarker))

	assert.True(t, e.GameOver())
	assert.Equal(t, 1, rec.ended)
	assert.True(t, rec.won)
	assert.Equal(t, 20, rec.score)
}

func TestComboMultipliesScore(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultGameConfig(), testLevel(100, levels.Wave{"orc1", "orc1", "orc1"}))
	e.Update(frame)
	enemies := e.Enemies()
	require.Len(t, enemies, 3)
	for i, g := range []gesture.ID{gesture.HorizontalLine, gesture.VerticalLine, gesture.HorizontalLine2} {
		require.True(t, e.SetEnemyGesture(enemies[i].ID, g))
	}

	e.GestureActivated(gesture.HorizontalLine)
	e.GestureActivated(gesture.VerticalLine)
	e.GestureActivated(gesture.HorizontalLine2)

	// 10×1.0 + 10×1.1 + 10×1.2
	assert.Equal(t, 33, e.State().Score)
	assert.Equal(t, 3, e.State().Kills)
}

func TestLineBreachResetsCombo(t *testing.T) {
	e, rec := newTestEngine(t, config.DefaultGameConfig(), testLevel(100, levels.Wave{"orc1", "orc1", "orc1"}, levels.Wave{"orc1"}))
	e.Update(frame)
	enemies := e.Enemies()
	require.Len(t, enemies, 3)
	strokes := []gesture.ID{gesture.HorizontalLine, gesture.VerticalLine, gesture.HorizontalLine2}
	for i, g := range strokes {
		require.True(t, e.SetEnemyGesture(enemies[i].ID, g))
	}
	for _, g := range strokes {
		require.Equal(t, 1, e.GestureActivated(g))
	}
	require.Equal(t, 3, e.State().Kills)
	require.InDelta(t, 1.3, e.State().Multiplier, 1e-9)
	require.Equal(t, 33, e.State().Score)

	require.True(t, e.StartNextWave())
	b := onlyEnemy(t, e)
	require.True(t, e.SetPosition(b.ID, core.V(b.Position.X, e.Config().Arena.EndPointY)))
	e.Update(frame)

	st := e.State()
	assert.Equal(t, 2, st.Health)
	assert.Equal(t, 33, st.Score, "a breach scores nothing")
	assert.Equal(t, 0, st.Kills)
	assert.InDelta(t, 1.0, st.Multiplier, 1e-9)
	assert.Contains(t, rec.removals, RemovalBreach)
	assert.Empty(t, e.Enemies())
}

func TestSingleGestureEnemyKeepsItsGesture(t *testing.T) {
	cfg := config.DefaultGameConfig()
	for i := range cfg.Enemies {
		if cfg.Enemies[i].Name == "orc2" {
			cfg.Enemies[i].Gestures = []gesture.ID{gesture.HorizontalLine}
		}
	}
	e, _ := newTestEngine(t, cfg, testLevel(100, levels.Wave{"orc2"}, levels.Wave{"orc2"}))
	e.Update(frame)
	en := onlyEnemy(t, e)
	require.Equal(t, gesture.HorizontalLine, en.Gesture)
	before, ok := e.Store().MarkerRef(en.ID)
	require.True(t, ok)
	oldMarker := before.Marker

	require.Equal(t, 1, e.GestureActivated(gesture.HorizontalLine))
	en = onlyEnemy(t, e)
	assert.Equal(t, 1, en.Health)
	assert.Equal(t, gesture.HorizontalLine, en.Gesture, "the only gesture is reused")

	after, ok := e.Store().MarkerRef(en.ID)
	require.True(t, ok)
	assert.NotEqual(t, oldMarker, after.Marker, "a fresh marker replaces the old one")
	assert.True(t, e.Store().IsLive(after.Marker))
	assert.True(t, e.Store().IsPendingRemoval(oldMarker))

	require.Equal(t, 1, e.GestureActivated(gesture.HorizontalLine))
	assert.Zero(t, e.Store().Count(ecs.TypeEnemy))
}

func TestOrphanMarkerIsDiscarded(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultGameConfig(), testLevel(100, levels.Wave{"orc1"}, levels.Wave{"orc1"}))
	e.Update(frame)
	en := onlyEnemy(t, e)
	ref, ok := e.Store().MarkerRef(en.ID)
	require.True(t, ok)
	marker := ref.Marker

	require.True(t, e.Store().Remove(en.ID))
	require.True(t, e.Store().IsLive(marker))

	assert.Equal(t, 0, e.GestureActivated(en.Gesture), "a marker without a live enemy scores nothing")
	assert.True(t, e.Store().IsPendingRemoval(marker))
	assert.Zero(t, e.State().Score)

	e.Update(frame)
	_, known := e.Store().Type(marker)
	assert.False(t, known)
}

func TestTeardownRemovesLeftoverMarker(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultGameConfig(), testLevel(100, levels.Wave{"orc1"}, levels.Wave{"orc1"}))
	e.Update(frame)
	en := onlyEnemy(t, e)
	ref, ok := e.Store().MarkerRef(en.ID)
	require.True(t, ok)
	marker := ref.Marker

	require.True(t, e.Store().Remove(en.ID))
	require.True(t, e.Store().IsLive(marker), "the marker is still on the field")

	e.Update(frame)
	_, known := e.Store().Type(en.ID)
	assert.False(t, known)
	_, known = e.Store().Type(marker)
	assert.False(t, known, "draining the enemy takes its marker along")
	assert.Zero(t, e.Store().Count(ecs.TypeGestureMarker))
}

func TestStageClockCountsSeconds(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultGameConfig(), testLevel(100, levels.Wave{"orc1"}, levels.Wave{"orc1"}))
	assert.Equal(t, 1, e.Store().Count(ecs.TypeTimer))
	assert.Zero(t, e.State().Seconds)

	for range 31 {
		e.Update(frame)
	}
	assert.Equal(t, 1, e.State().Seconds)
	for range 60 {
		e.Update(frame)
	}
	assert.Equal(t, 3, e.State().Seconds)
	assert.Equal(t, 1, e.Store().Count(ecs.TypeTimer), "the clock never expires")
}

func TestMissBreaksCombo(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultGameConfig(), testLevel(100, levels.Wave{"orc1", "orc1"}))
	e.Update(frame)
	enemies := e.Enemies()
	require.True(t, e.SetEnemyGesture(enemies[0].ID, gesture.HorizontalLine))
	require.True(t, e.SetEnemyGesture(enemies[1].ID, gesture.VerticalLine))

	require.Equal(t, 1, e.GestureActivated(gesture.HorizontalLine))
	assert.Equal(t, 0, e.GestureActivated(gesture.Diamond))
	assert.InDelta(t, 1.0, e.State().Multiplier, 1e-9)
	assert.Equal(t, 1, e.Store().Count(ecs.TypeEnemy))
}

func TestGameLostWhenHealthDepleted(t *testing.T) {
	e, rec := newTestEngine(t, config.DefaultGameConfig(), testLevel(100, levels.Wave{"orc1"}, levels.Wave{"orc1"}))
	e.Update(frame)
	e.SetPlayerHealth(1)
	en := onlyEnemy(t, e)
	e.SetPosition(en.ID, core.V(en.Position.X, 60))

	e.Update(frame)
	assert.True(t, e.GameOver())
	assert.False(t, e.State().Won)
	assert.Equal(t, 1, rec.ended)
	assert.False(t, rec.won)

	tick := e.State().Tick
	e.Update(frame)
	assert.Equal(t, tick, e.State().Tick, "a finished stage does not advance")
	assert.Equal(t, 1, rec.ended, "the end is reported once")
	assert.Zero(t, e.GestureActivated(gesture.HorizontalLine))
}

func TestGestureDuringUpdateIsQueued(t *testing.T) {
	e, rec := newTestEngine(t, config.DefaultGameConfig(), testLevel(100, levels.Wave{"orc1"}, levels.Wave{"orc1"}))
	fired := false
	hits := -1
	rec.onSpawn = func(spec VisualSpec) {
		if spec.Type == ecs.TypeGestureMarker && !fired {
			fired = true
			hits = e.GestureActivated(gesture.ID(spec.Label))
		}
	}

	e.Update(frame)
	require.True(t, fired)
	assert.Equal(t, 0, hits, "queued gestures report no hits")
	assert.Zero(t, e.Store().Count(ecs.TypeEnemy), "queued gesture resolved in the same frame")
	assert.Zero(t, e.Store().Count(ecs.TypeGestureMarker))
	assert.Equal(t, 10, e.State().Score)
}

func TestTouchStrokeStrikesEnemy(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultGameConfig(), testLevel(100, levels.Wave{"orc1"}, levels.Wave{"orc1"}))
	e.Update(frame)
	en := onlyEnemy(t, e)
	require.True(t, e.SetEnemyGesture(en.ID, gesture.HorizontalLine))

	pts := make([]core.Vec2, 0, 11)
	for i := range 11 {
		pts = append(pts, core.V(100+20*float64(i), 500))
	}
	e.TouchesBegan(pts[0])
	e.TouchesMoved(pts[1:]...)
	res := e.TouchesEnded()

	require.Equal(t, gesture.ResultGesture, res.Kind)
	assert.Equal(t, gesture.HorizontalLine, res.Match.ID)
	assert.Empty(t, e.Enemies())
	assert.Equal(t, 10, e.State().Score)
}

func TestDropCollectAndExpire(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Mana.DropMin, cfg.Mana.DropMax = 5, 5
	cfg.Mana.RareChance, cfg.Mana.EpicChance = 0, 0
	cfg.Mana.Regenerates = false

	e, rec := newTestEngine(t, cfg, testLevel(100, levels.Wave{"orc1", "orc1"}, levels.Wave{"orc1"}))
	e.Update(frame)
	enemies := e.Enemies()
	require.True(t, e.SetEnemyGesture(enemies[0].ID, gesture.HorizontalLine))
	require.True(t, e.SetEnemyGesture(enemies[1].ID, gesture.VerticalLine))
	start := e.State().Mana

	e.GestureActivated(gesture.HorizontalLine)
	require.Equal(t, 1, e.Store().Count(ecs.TypeDroppedMana))

	e.TouchesBegan(enemies[0].Position)
	e.TouchesEnded()
	assert.Equal(t, start+5, e.State().Mana, "a tap on the drop collects it")
	assert.Contains(t, rec.removals, RemovalCollected)
	assert.False(t, e.CollectDrop(enemies[0].Position), "a drop is collected once")

	e.GestureActivated(gesture.VerticalLine)
	require.Equal(t, 1, e.Store().Count(ecs.TypeDroppedMana))
	for range 5 {
		e.Update(1)
	}
	assert.Zero(t, e.Store().Count(ecs.TypeDroppedMana))
	assert.Contains(t, rec.removals, RemovalExpired)
	assert.Equal(t, start+5, e.State().Mana)
}

func TestManaRegenerates(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultGameConfig(), testLevel(100, levels.Wave{"orc1"}))
	before := e.State().Mana
	e.Update(0.6)
	e.Update(0.6)
	assert.Equal(t, before+1, e.State().Mana)
}

func TestSnapshotIsDeterministic(t *testing.T) {
	run := func() []uint64 {
		e, err := New(Options{Config: config.DefaultGameConfig(), Level: levels.Level{}, Seed: 42})
		require.NoError(t, err)
		var out []uint64
		for range 300 {
			e.Update(frame)
			out = append(out, e.Snapshot())
		}
		return out
	}
	a, b := run(), run()
	assert.Equal(t, a, b)
	assert.NotEqual(t, a[0], a[len(a)-1])
}

func TestPowerUpSelection(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultGameConfig(), testLevel(1, levels.Wave{"orc1"}))

	assert.Equal(t, []string{powerups.DarkVortex, powerups.Hellfire, powerups.IcePrison}, e.PowerUps())
	assert.ErrorIs(t, e.SelectPowerUp(powerups.DivineShield), ErrPowerUpUnavailable)
	require.NoError(t, e.SelectPowerUpSlot(1))
	assert.Equal(t, powerups.Hellfire, e.Selected())
	assert.ErrorIs(t, e.SelectPowerUpSlot(3), ErrPowerUpUnavailable)
	require.NoError(t, e.SelectPowerUp(""))
	assert.Empty(t, e.State().Selected)
}

func TestNearestOpposingMeasuresToBounds(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultGameConfig(), testLevel(100, levels.Wave{"orc1"}))
	from := core.V(500, 300)
	unit := e.spawnUnit(core.V(500, 560))

	// The unit's centre is closer than the end point's centre, but the
	// full-width end point's edge is closer than the unit's edge.
	id, m, ok := e.NearestOpposing(from, ecs.TeamEnemy)
	require.True(t, ok)
	assert.Equal(t, e.EndPoint(), id)
	assert.NotEqual(t, unit, id)
	assert.InDelta(t, 300, m.Position.X, 1e-9)

	e.SetPosition(unit, core.V(500, 500))
	id, _, ok = e.NearestOpposing(from, ecs.TeamEnemy)
	require.True(t, ok)
	assert.Equal(t, unit, id)
}
