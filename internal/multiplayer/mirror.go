package multiplayer

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/runes/internal/ecs"
)

// Mirror keeps a local field in step with a peer and exports the local
// field as deltas. It is not safe for concurrent use.
type Mirror struct {
	id     PeerID
	field  Field
	logger *log.Logger
	newKey func() uuid.UUID

	byKey map[uuid.UUID]ecs.EntityID
	byID  map[ecs.EntityID]uuid.UUID
	sent  map[uuid.UUID]bool
	gone  []uuid.UUID
	peer  Metadata
}

// Option configures a Mirror.
type Option func(*Mirror)

// WithLogger sets the logger for skipped updates.
func WithLogger(l *log.Logger) Option {
	return func(m *Mirror) { m.logger = l }
}

// WithKeys replaces the uuid source, for reproducible runs.
func WithKeys(next func() uuid.UUID) Option {
	return func(m *Mirror) { m.newKey = next }
}

// NewMirror creates a mirror over field.
func NewMirror(field Field, opts ...Option) *Mirror {
	m := &Mirror{
		field:  field,
		logger: log.New(io.Discard),
		newKey: uuid.New,
		byKey:  make(map[uuid.UUID]ecs.EntityID),
		byID:   make(map[ecs.EntityID]uuid.UUID),
		sent:   make(map[uuid.UUID]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.id = m.newKey()
	return m
}

// ID returns the local peer id.
func (m *Mirror) ID() PeerID {
	return m.id
}

// Peer returns the last metadata received.
func (m *Mirror) Peer() Metadata {
	return m.peer
}

// Entity resolves a replicated key to the local entity.
func (m *Mirror) Entity(key uuid.UUID) (ecs.EntityID, bool) {
	id, ok := m.byKey[key]
	return id, ok
}

// Len returns the number of tracked enemies.
func (m *Mirror) Len() int {
	return len(m.byKey)
}

// Apply brings the local field in line with a delta. Enemies that cannot be
// spawned are skipped and reported in the joined error; the rest of the
// delta still applies.
func (m *Mirror) Apply(d Delta) error {
	m.forgetDead()
	var errs []error

	seen := make(map[uuid.UUID]bool, len(d.Enemies))
	for _, es := range d.Enemies {
		seen[es.Key] = true
		if err := m.upsert(es); err != nil {
			errs = append(errs, err)
		}
	}
	for _, key := range d.Removed {
		m.remove(key)
	}
	if d.Full {
		for key := range m.byKey {
			if !seen[key] {
				m.remove(key)
			}
		}
	}
	if d.Meta != nil {
		m.peer = *d.Meta
		m.field.SetPlayerHealth(d.Meta.Health)
		m.field.SetPlayerMana(d.Meta.Mana)
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("multiplayer: tick %d: %w", d.Tick, err)
	}
	return nil
}

func (m *Mirror) upsert(es EnemyState) error {
	if id, ok := m.byKey[es.Key]; ok {
		m.field.SetPosition(id, es.Position)
		if es.Gesture != "" && !m.field.SetEnemyGesture(id, es.Gesture) {
			m.logger.Warn("unknown gesture from peer", "key", es.Key, "gesture", es.Gesture)
		}
		return nil
	}
	id, err := m.field.SpawnEnemy(es.Type, es.Position)
	if err != nil {
		return fmt.Errorf("enemy %s (%s): %w", es.Key, es.Type, err)
	}
	m.track(es.Key, id)
	if es.Gesture != "" {
		m.field.SetEnemyGesture(id, es.Gesture)
	}
	return nil
}

func (m *Mirror) remove(key uuid.UUID) {
	id, ok := m.byKey[key]
	if !ok {
		return
	}
	m.field.RemoveEntity(id)
	delete(m.byKey, key)
	delete(m.byID, id)
	delete(m.sent, key)
}

func (m *Mirror) track(key uuid.UUID, id ecs.EntityID) {
	m.byKey[key] = id
	m.byID[id] = key
}

// forgetDead drops keys whose entity left the field locally. Keys already
// exported are remembered for the next export.
func (m *Mirror) forgetDead() {
	for key, id := range m.byKey {
		if _, ok := m.field.Enemy(id); !ok {
			delete(m.byKey, key)
			delete(m.byID, id)
			if m.sent[key] {
				m.gone = append(m.gone, key)
			}
			delete(m.sent, key)
		}
	}
}

// Export describes the local field. Local enemies get a key the first time
// they are exported; enemies gone since the last export are listed as
// removed.
func (m *Mirror) Export(full bool) Delta {
	m.forgetDead()
	d := Delta{From: m.id, Full: full, Removed: m.gone}
	m.gone = nil
	st := m.field.State()
	d.Tick = st.Tick
	d.Meta = &Metadata{Health: st.Health, Mana: st.Mana, Score: st.Score, Level: st.Level}

	for _, v := range m.field.Enemies() {
		key, ok := m.byID[v.ID]
		if !ok {
			key = m.newKey()
			m.track(key, v.ID)
		}
		m.sent[key] = true
		d.Enemies = append(d.Enemies, EnemyState{
			Key:      key,
			Type:     v.Type,
			Position: v.Position,
			Gesture:  v.Gesture,
		})
	}
	return d
}
