// Package engine drives the lane-defense simulation: it spawns waves,
// steers entities, resolves gestures and line breaches, and drains removed
// entities once per frame.
package engine

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/runes/internal/config"
	"github.com/vovakirdan/runes/internal/ecs"
	"github.com/vovakirdan/runes/internal/gesture"
	"github.com/vovakirdan/runes/internal/levels"
)

// ErrUnknownEnemy is returned when an enemy type name is not in the roster.
var ErrUnknownEnemy = errors.New("engine: unknown enemy type")

// Options configures a new Engine.
type Options struct {
	Config    config.GameConfig
	Level     levels.Level // Number 0 selects endless mode
	Presenter Presenter    // nil renders nothing
	Logger    *log.Logger  // nil discards logs
	Seed      int64
}

// State is a read-only summary for HUDs and tests.
type State struct {
	Level          int
	Score          int
	Multiplier     float64
	Kills          int
	Health         int
	MaxHealth      int
	Mana           int
	MaxMana        int
	EnemiesOnField int
	WavesLeft      int
	Phase          SpawnPhase
	Selected       string
	ShieldActive   bool
	GameOver       bool
	Won            bool
	Tick           int
	Elapsed        float64
	Seconds        int // whole seconds on the stage clock
}

// Engine owns one running stage. It is not safe for concurrent use.
type Engine struct {
	cfg        config.GameConfig
	level      levels.Level
	store      *ecs.Store
	presenter  Presenter
	logger     *log.Logger
	rng        *rand.Rand
	recognizer *gesture.Recognizer
	roster     map[string]*ecs.EnemyType
	difficulty *config.DifficultyManager
	avatar     config.AvatarConfig
	spawner    *Spawner

	player   ecs.EntityID
	endPoint ecs.EntityID
	clock    ecs.EntityID
	selected string

	enemiesOnField int
	tick           int
	elapsed        float64
	updating       bool
	queued         []gesture.ID
	over           bool
	won            bool
}

// New validates the configuration and builds a stage ready for its first frame.
func New(opts Options) (*Engine, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	templates, err := cfg.Templates()
	if err != nil {
		return nil, err
	}
	matcher, err := gesture.NewMatcher(cfg.Recognizer.Params, templates)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	roster := cfg.Roster()
	lvl := opts.Level
	if lvl.Endless() {
		lvl.SpawnInterval = cfg.Endless.SpawnInterval
		if lvl.Name == "" {
			lvl.Name = "Endless"
		}
	}
	if err := lvl.Validate(cfg.Arena.Lanes, func(name string) bool {
		_, ok := roster[name]
		return ok
	}); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e := &Engine{
		cfg:        cfg,
		level:      lvl,
		store:      ecs.NewStore(),
		presenter:  opts.Presenter,
		logger:     opts.Logger,
		rng:        rand.New(rand.NewSource(opts.Seed)),
		recognizer: gesture.NewRecognizer(matcher, cfg.Recognizer.Circle),
		roster:     roster,
		difficulty: config.NewDifficultyManager(cfg.Endless.Difficulty),
		avatar:     cfg.SelectedAvatar(),
	}
	if e.presenter == nil {
		e.presenter = &NopPresenter{}
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}

	e.endPoint = e.spawnEndPoint()
	e.player = e.spawnPlayer()
	e.clock = e.spawnClock()
	e.spawner = e.newSpawner()

	e.logger.Info("stage ready", "level", lvl.Number, "name", lvl.Name, "waves", len(lvl.Waves), "avatar", e.avatar.Name)
	return e, nil
}

// Update advances the simulation by dt seconds. Systems run in a fixed
// order; removals requested by any of them are drained at the end.
func (e *Engine) Update(dt float64) {
	if e.over || dt <= 0 {
		return
	}
	e.updating = true
	e.tick++
	e.elapsed += dt

	e.spawner.Update(dt)
	e.updateTimers(dt)
	e.updateMovement(dt)
	e.detectContacts()
	e.applyQueued()
	e.store.Drain(e.teardown)
	e.syncVisuals()

	e.updating = false
	e.checkGameEnd()
}

// applyQueued resolves gestures that arrived while the frame was running.
func (e *Engine) applyQueued() {
	for len(e.queued) > 0 {
		id := e.queued[0]
		e.queued = e.queued[1:]
		e.resolveGesture(id)
	}
}

// teardown runs for every drained entity while its components still resolve.
func (e *Engine) teardown(id ecs.EntityID) {
	if v, ok := e.store.Visual(id); ok {
		e.presenter.RemoveVisual(VisualHandle(v.Handle))
	}
	if ref, ok := e.store.MarkerRef(id); ok && e.store.IsLive(ref.Marker) {
		e.logger.Warn("gesture marker outlived its enemy", "enemy", id, "marker", ref.Marker)
		e.store.Remove(ref.Marker)
	}
}

func (e *Engine) checkGameEnd() {
	if e.over {
		return
	}
	if h, ok := e.store.Health(e.player); ok && h.Points() <= 0 {
		e.finish(false)
		return
	}
	if e.spawner.Phase() == PhaseExhausted && e.enemiesOnField <= 0 && e.store.Count(ecs.TypeEnemy) == 0 {
		e.finish(true)
	}
}

func (e *Engine) finish(won bool) {
	e.over = true
	e.won = won
	score := e.Score()
	e.logger.Info("stage finished", "won", won, "score", score, "tick", e.tick)
	e.presenter.ReportGameEnd(won, score)
}

// State returns the current summary.
func (e *Engine) State() State {
	s := State{
		Level:          e.level.Number,
		Score:          e.Score(),
		Multiplier:     1,
		EnemiesOnField: e.enemiesOnField,
		WavesLeft:      e.spawner.WavesLeft(),
		Phase:          e.spawner.Phase(),
		Selected:       e.selected,
		ShieldActive:   e.shieldActive(),
		GameOver:       e.over,
		Won:            e.won,
		Tick:           e.tick,
		Elapsed:        e.elapsed,
	}
	if t, ok := e.store.Timer(e.clock); ok {
		s.Seconds = int(t.Current)
	}
	if c, ok := e.store.Combo(e.player); ok {
		s.Multiplier = c.Multiplier
		s.Kills = c.Kills
	}
	if h, ok := e.store.Health(e.player); ok {
		s.Health, s.MaxHealth = h.Points(), h.Max()
	}
	if m, ok := e.store.Mana(e.player); ok {
		s.Mana, s.MaxMana = m.Points(), m.Max()
	}
	return s
}

// Score returns the player's total score.
func (e *Engine) Score() int {
	if sc, ok := e.store.Score(e.player); ok {
		return sc.Points
	}
	return 0
}

// Level returns the stage being played.
func (e *Engine) Level() levels.Level {
	return e.level
}

// Config returns the configuration the engine runs with.
func (e *Engine) Config() config.GameConfig {
	return e.cfg
}

// Avatar returns the selected avatar.
func (e *Engine) Avatar() config.AvatarConfig {
	return e.avatar
}

// Store exposes the entity store for read access by adapters and tests.
func (e *Engine) Store() *ecs.Store {
	return e.store
}

// Player returns the entity holding health, mana, score and combo.
func (e *Engine) Player() ecs.EntityID {
	return e.player
}

// EndPoint returns the defended line entity.
func (e *Engine) EndPoint() ecs.EntityID {
	return e.endPoint
}

// GameOver reports whether the stage has ended.
func (e *Engine) GameOver() bool {
	return e.over
}
