package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/runes/internal/core"
)

func spawn(s *Store, t EntityType, team Team) EntityID {
	id := s.NewEntity(t)
	s.SetTeam(id, team)
	s.SetMove(id, Move{Size: core.V(10, 10)})
	s.Add(id)
	return id
}

func TestAddIsIdempotent(t *testing.T) {
	s := NewStore()
	id := s.NewEntity(TypeEnemy)

	assert.True(t, s.Add(id))
	assert.False(t, s.Add(id))
	assert.Equal(t, []EntityID{id}, s.Query(TypeEnemy))

	assert.False(t, s.Add(EntityID(999)), "unknown entity")
}

func TestTwoPhaseRemoval(t *testing.T) {
	s := NewStore()
	id := spawn(s, TypeEnemy, TeamEnemy)
	s.SetHealth(id, NewHealth(2))

	require.True(t, s.Remove(id))
	assert.False(t, s.Remove(id), "second remove is a no-op")
	assert.False(t, s.IsLive(id))
	assert.True(t, s.IsPendingRemoval(id))
	assert.Empty(t, s.Query(TypeEnemy))
	assert.Empty(t, s.QueryTeam(TeamEnemy))
	assert.False(t, s.Add(id), "pending entity cannot come back")

	_, ok := s.Health(id)
	assert.True(t, ok, "components stay resolvable until drain")

	seen := 0
	n := s.Drain(func(e EntityID) {
		seen++
		h, ok := s.Health(e)
		require.True(t, ok)
		assert.Equal(t, 2, h.Points())
	})
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, seen)
	assert.False(t, s.IsPendingRemoval(id))

	_, ok = s.Health(id)
	assert.False(t, ok)
	_, ok = s.Type(id)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Drain(nil))
}

func TestDrainCascades(t *testing.T) {
	s := NewStore()
	enemy := spawn(s, TypeEnemy, TeamEnemy)
	marker := s.NewEntity(TypeGestureMarker)
	s.SetGesture(marker, Gesture{ID: "verticalLine", Parent: enemy})
	s.Add(marker)

	s.Remove(enemy)
	var order []EntityID
	n := s.Drain(func(e EntityID) {
		order = append(order, e)
		if e == enemy {
			s.Remove(marker)
		}
	})
	assert.Equal(t, 2, n)
	assert.Equal(t, []EntityID{enemy, marker}, order)
	assert.Equal(t, 0, s.Len())
}

func TestQueryOrderAndTeams(t *testing.T) {
	s := NewStore()
	a := spawn(s, TypeEnemy, TeamEnemy)
	end := spawn(s, TypeEndPoint, TeamPlayer)
	b := spawn(s, TypeEnemy, TeamEnemy)
	unit := spawn(s, TypePlayerUnit, TeamPlayer)
	c := spawn(s, TypeEnemy, TeamEnemy)

	s.Remove(b)
	assert.Equal(t, []EntityID{a, c}, s.Query(TypeEnemy))
	assert.Equal(t, []EntityID{a, c}, s.QueryTeam(TeamEnemy))
	assert.Equal(t, []EntityID{end, unit}, s.QueryTeam(TeamPlayer))
	assert.Empty(t, s.QueryTeam(TeamNone))
	assert.Equal(t, 2, s.Count(TypeEnemy))
	assert.Equal(t, 4, s.Len())
}

func TestRegistration(t *testing.T) {
	s := NewStore()
	id := s.NewEntity(TypeEnemy)
	s.SetMove(id, Move{})
	assert.Empty(t, s.Registered(KindMove), "not registered before Add")

	s.Add(id)
	assert.Equal(t, []EntityID{id}, s.Registered(KindMove))

	s.SetTimer(id, Timer{Current: 3, Countdown: true})
	assert.Equal(t, []EntityID{id}, s.Registered(KindTimer), "attach to a live entity registers at once")

	s.Remove(id)
	assert.Empty(t, s.Registered(KindMove), "pending entities are hidden from systems")
	s.Drain(nil)
	assert.Empty(t, s.Registered(KindMove))
	assert.Empty(t, s.Registered(KindTimer))
}

func TestAttachRules(t *testing.T) {
	s := NewStore()
	id := spawn(s, TypeEnemy, TeamEnemy)

	assert.False(t, s.SetTeam(id, TeamPlayer), "team is immutable")
	team, ok := s.Team(id)
	require.True(t, ok)
	assert.Equal(t, TeamEnemy, team)

	marker := s.NewEntity(TypeGestureMarker)
	assert.Nil(t, s.SetGesture(marker, Gesture{ID: "arrowUp"}), "parent is required")
	assert.NotNil(t, s.SetGesture(marker, Gesture{ID: "arrowUp", Parent: id}))

	s.Remove(id)
	assert.Nil(t, s.SetHealth(id, NewHealth(1)), "no attach while pending removal")
	assert.Nil(t, s.SetMove(EntityID(12345), Move{}))
	assert.False(t, s.SetEnemyType(id, nil))

	_, ok = s.Mana(id)
	assert.False(t, ok)
}

func TestEnemyTypeIsShared(t *testing.T) {
	s := NewStore()
	desc := &EnemyType{Name: "orc1", Health: 1, DisablesPowerUps: []string{"icePrison"}}
	a := spawn(s, TypeEnemy, TeamEnemy)
	b := spawn(s, TypeEnemy, TeamEnemy)
	require.True(t, s.SetEnemyType(a, desc))
	require.True(t, s.SetEnemyType(b, desc))

	ea, _ := s.EnemyType(a)
	eb, _ := s.EnemyType(b)
	assert.Same(t, ea, eb)
	assert.True(t, ea.Disables("icePrison"))
	assert.False(t, ea.Disables("hellfire"))
}

func TestHealthFloor(t *testing.T) {
	h := NewHealth(3)
	assert.Equal(t, 0, h.Decrease(5))
	assert.Equal(t, 0, h.Points())
	assert.Equal(t, 2, h.Increase(2))
	assert.Equal(t, 3, h.Increase(10), "capped at max")
	h.Set(-4)
	assert.Equal(t, 0, h.Points())
}

func TestManaRegeneration(t *testing.T) {
	m := NewMana(0, 5, true)
	assert.Equal(t, 0, m.Tick(0.6))
	assert.Equal(t, 1, m.Tick(0.6))
	assert.Equal(t, 2, m.Tick(2.0))
	assert.Equal(t, 3, m.Points())

	assert.False(t, m.Spend(4))
	assert.True(t, m.Spend(3))
	assert.Equal(t, 0, m.Points())
	assert.False(t, m.Spend(-1))

	m.Add(50)
	assert.Equal(t, 5, m.Points())

	still := NewMana(2, 0, false)
	assert.Equal(t, 0, still.Tick(10))
	still.Set(-3)
	assert.Equal(t, 0, still.Points())
}

func TestTimer(t *testing.T) {
	down := Timer{Current: 2, Countdown: true}
	assert.False(t, down.Tick(0.5))
	assert.True(t, down.Tick(0.5))
	assert.False(t, down.Expired())
	down.Tick(3)
	assert.True(t, down.Expired())
	assert.Equal(t, 0.0, down.Current)

	up := Timer{}
	up.Tick(2.5)
	assert.Equal(t, 2.0, up.Current)
	assert.False(t, up.Expired())
}
