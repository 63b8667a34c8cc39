package ecs

import (
	"github.com/kamstrup/intmap"
)

// orderedSet keeps ids in insertion order with O(1) membership.
type orderedSet struct {
	ids   []EntityID
	index *intmap.Map[EntityID, int]
}

func newOrderedSet() orderedSet {
	return orderedSet{index: intmap.New[EntityID, int](64)}
}

func (s *orderedSet) has(id EntityID) bool {
	_, ok := s.index.Get(id)
	return ok
}

func (s *orderedSet) add(id EntityID) bool {
	if s.has(id) {
		return false
	}
	s.index.Put(id, len(s.ids))
	s.ids = append(s.ids, id)
	return true
}

func (s *orderedSet) remove(id EntityID) bool {
	pos, ok := s.index.Get(id)
	if !ok {
		return false
	}
	s.index.Del(id)
	copy(s.ids[pos:], s.ids[pos+1:])
	s.ids = s.ids[:len(s.ids)-1]
	for i := pos; i < len(s.ids); i++ {
		s.index.Put(s.ids[i], i)
	}
	return true
}

func (s *orderedSet) snapshot() []EntityID {
	return append([]EntityID(nil), s.ids...)
}

// table is the storage of one component kind.
type table[T any] struct {
	kind ComponentKind
	m    *intmap.Map[EntityID, *T]
}

func newTable[T any](kind ComponentKind) table[T] {
	return table[T]{kind: kind, m: intmap.New[EntityID, *T](64)}
}

func (t table[T]) get(id EntityID) (*T, bool) {
	return t.m.Get(id)
}

// Store owns every entity and component of a simulation.
// It is not safe for concurrent use.
type Store struct {
	next    EntityID
	types   *intmap.Map[EntityID, EntityType]
	live    [numTypes]orderedSet
	pending orderedSet
	systems [numKinds]orderedSet
	owned   *intmap.Map[EntityID, []ComponentKind]

	teams      table[Team]
	moves      table[Move]
	healths    table[Health]
	manas      table[Mana]
	scores     table[Score]
	gestures   table[Gesture]
	markerRefs table[MarkerRef]
	timers     table[Timer]
	enemyTypes table[*EnemyType]
	powerUps   table[PowerUp]
	drops      table[Drop]
	combos     table[Combo]
	visuals    table[Visual]
}

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{
		types:      intmap.New[EntityID, EntityType](256),
		owned:      intmap.New[EntityID, []ComponentKind](256),
		pending:    newOrderedSet(),
		teams:      newTable[Team](KindTeam),
		moves:      newTable[Move](KindMove),
		healths:    newTable[Health](KindHealth),
		manas:      newTable[Mana](KindMana),
		scores:     newTable[Score](KindScore),
		gestures:   newTable[Gesture](KindGesture),
		markerRefs: newTable[MarkerRef](KindMarkerRef),
		timers:     newTable[Timer](KindTimer),
		enemyTypes: newTable[*EnemyType](KindEnemyType),
		powerUps:   newTable[PowerUp](KindPowerUp),
		drops:      newTable[Drop](KindDrop),
		combos:     newTable[Combo](KindCombo),
		visuals:    newTable[Visual](KindVisual),
	}
	for i := range s.live {
		s.live[i] = newOrderedSet()
	}
	for i := range s.systems {
		s.systems[i] = newOrderedSet()
	}
	return s
}

// NewEntity reserves an id of the given type. The entity is not live until
// Add is called, but components can already be attached.
func (s *Store) NewEntity(t EntityType) EntityID {
	s.next++
	s.types.Put(s.next, t)
	return s.next
}

// Type returns the type tag of a known entity.
func (s *Store) Type(id EntityID) (EntityType, bool) {
	return s.types.Get(id)
}

// IsLive reports whether the entity is in the live index.
func (s *Store) IsLive(id EntityID) bool {
	t, ok := s.types.Get(id)
	return ok && s.live[t].has(id)
}

// IsPendingRemoval reports whether the entity waits for the next drain.
func (s *Store) IsPendingRemoval(id EntityID) bool {
	return s.pending.has(id)
}

// Add makes a reserved entity live and registers its components with the
// systems. It returns false for entities that are already live, pending
// removal or unknown.
func (s *Store) Add(id EntityID) bool {
	t, ok := s.types.Get(id)
	if !ok || s.pending.has(id) || !s.live[t].add(id) {
		return false
	}
	kinds, _ := s.owned.Get(id)
	for _, k := range kinds {
		s.systems[k].add(id)
	}
	return true
}

// Remove hides a live entity and queues it for the next Drain. Components
// stay readable until then. It returns false when the entity is not live.
func (s *Store) Remove(id EntityID) bool {
	t, ok := s.types.Get(id)
	if !ok || !s.live[t].remove(id) {
		return false
	}
	s.pending.add(id)
	return true
}

// PendingRemovals returns the queued entities in removal order.
func (s *Store) PendingRemovals() []EntityID {
	return s.pending.snapshot()
}

// Drain purges every queued entity. teardown, when non-nil, runs once per
// entity while its components are still resolvable; entities it removes are
// drained in the same pass. Drain returns the number of purged entities.
func (s *Store) Drain(teardown func(EntityID)) int {
	n := 0
	for len(s.pending.ids) > 0 {
		id := s.pending.ids[0]
		if teardown != nil {
			teardown(id)
		}
		s.purge(id)
		s.pending.remove(id)
		n++
	}
	return n
}

func (s *Store) purge(id EntityID) {
	kinds, _ := s.owned.Get(id)
	for _, k := range kinds {
		s.systems[k].remove(id)
	}
	s.teams.m.Del(id)
	s.moves.m.Del(id)
	s.healths.m.Del(id)
	s.manas.m.Del(id)
	s.scores.m.Del(id)
	s.gestures.m.Del(id)
	s.markerRefs.m.Del(id)
	s.timers.m.Del(id)
	s.enemyTypes.m.Del(id)
	s.powerUps.m.Del(id)
	s.drops.m.Del(id)
	s.combos.m.Del(id)
	s.visuals.m.Del(id)
	s.owned.Del(id)
	s.types.Del(id)
}

// Query returns the live entities of a type in insertion order.
func (s *Store) Query(t EntityType) []EntityID {
	if t >= numTypes {
		return nil
	}
	return s.live[t].snapshot()
}

// Count returns the number of live entities of a type.
func (s *Store) Count(t EntityType) int {
	if t >= numTypes {
		return 0
	}
	return len(s.live[t].ids)
}

// QueryTeam returns the live entities of every type fighting for a team.
func (s *Store) QueryTeam(team Team) []EntityID {
	var out []EntityID
	for _, t := range teamTypes[team] {
		out = append(out, s.live[t].ids...)
	}
	return out
}

// Registered returns the live entities carrying a component kind, in the
// order they were registered. Entities pending removal are skipped.
func (s *Store) Registered(kind ComponentKind) []EntityID {
	if kind >= numKinds {
		return nil
	}
	out := make([]EntityID, 0, len(s.systems[kind].ids))
	for _, id := range s.systems[kind].ids {
		if !s.pending.has(id) {
			out = append(out, id)
		}
	}
	return out
}

// Len returns the number of live entities.
func (s *Store) Len() int {
	n := 0
	for i := range s.live {
		n += len(s.live[i].ids)
	}
	return n
}

func attach[T any](s *Store, t table[T], id EntityID, v T) *T {
	if _, known := s.types.Get(id); !known || s.pending.has(id) {
		return nil
	}
	if cur, ok := t.m.Get(id); ok {
		*cur = v
		return cur
	}
	p := new(T)
	*p = v
	t.m.Put(id, p)
	kinds, _ := s.owned.Get(id)
	s.owned.Put(id, append(kinds, t.kind))
	if s.IsLive(id) {
		s.systems[t.kind].add(id)
	}
	return p
}

// SetTeam attaches the team of an entity. A team cannot change once set.
func (s *Store) SetTeam(id EntityID, team Team) bool {
	if _, ok := s.teams.get(id); ok {
		return false
	}
	return attach(s, s.teams, id, team) != nil
}

// Team returns the team of an entity.
func (s *Store) Team(id EntityID) (Team, bool) {
	p, ok := s.teams.get(id)
	if !ok {
		return TeamNone, false
	}
	return *p, true
}

// SetMove attaches or replaces kinematic state. It returns nil for unknown
// entities and entities pending removal.
func (s *Store) SetMove(id EntityID, m Move) *Move { return attach(s, s.moves, id, m) }

// Move returns the kinematic state of an entity.
func (s *Store) Move(id EntityID) (*Move, bool) { return s.moves.get(id) }

func (s *Store) SetHealth(id EntityID, h Health) *Health { return attach(s, s.healths, id, h) }
func (s *Store) Health(id EntityID) (*Health, bool)      { return s.healths.get(id) }

func (s *Store) SetMana(id EntityID, m Mana) *Mana { return attach(s, s.manas, id, m) }
func (s *Store) Mana(id EntityID) (*Mana, bool)    { return s.manas.get(id) }

func (s *Store) SetScore(id EntityID, sc Score) *Score { return attach(s, s.scores, id, sc) }
func (s *Store) Score(id EntityID) (*Score, bool)      { return s.scores.get(id) }

// SetGesture attaches a gesture to a marker entity. The parent is required.
func (s *Store) SetGesture(id EntityID, g Gesture) *Gesture {
	if g.Parent == NoEntity || g.ID == "" {
		return nil
	}
	return attach(s, s.gestures, id, g)
}

func (s *Store) Gesture(id EntityID) (*Gesture, bool) { return s.gestures.get(id) }

func (s *Store) SetMarkerRef(id EntityID, r MarkerRef) *MarkerRef {
	return attach(s, s.markerRefs, id, r)
}

func (s *Store) MarkerRef(id EntityID) (*MarkerRef, bool) { return s.markerRefs.get(id) }

func (s *Store) SetTimer(id EntityID, t Timer) *Timer { return attach(s, s.timers, id, t) }
func (s *Store) Timer(id EntityID) (*Timer, bool)     { return s.timers.get(id) }

// SetEnemyType attaches a shared descriptor.
func (s *Store) SetEnemyType(id EntityID, e *EnemyType) bool {
	if e == nil {
		return false
	}
	return attach(s, s.enemyTypes, id, e) != nil
}

// EnemyType returns the shared descriptor of an enemy.
func (s *Store) EnemyType(id EntityID) (*EnemyType, bool) {
	p, ok := s.enemyTypes.get(id)
	if !ok {
		return nil, false
	}
	return *p, true
}

func (s *Store) SetPowerUp(id EntityID, p PowerUp) *PowerUp { return attach(s, s.powerUps, id, p) }
func (s *Store) PowerUp(id EntityID) (*PowerUp, bool)       { return s.powerUps.get(id) }

func (s *Store) SetDrop(id EntityID, d Drop) *Drop { return attach(s, s.drops, id, d) }
func (s *Store) Drop(id EntityID) (*Drop, bool)    { return s.drops.get(id) }

func (s *Store) SetCombo(id EntityID, c Combo) *Combo { return attach(s, s.combos, id, c) }
func (s *Store) Combo(id EntityID) (*Combo, bool)     { return s.combos.get(id) }

func (s *Store) SetVisual(id EntityID, v Visual) *Visual { return attach(s, s.visuals, id, v) }
func (s *Store) Visual(id EntityID) (*Visual, bool)      { return s.visuals.get(id) }
