package multiplayer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/runes/internal/config"
	"github.com/vovakirdan/runes/internal/core"
	"github.com/vovakirdan/runes/internal/engine"
	"github.com/vovakirdan/runes/internal/levels"
)

func newField(t *testing.T, waves ...levels.Wave) *engine.Engine {
	t.Helper()
	e, err := engine.New(engine.Options{
		Config: config.DefaultGameConfig(),
		Level:  levels.Level{Number: 1, Name: "mirror", SpawnInterval: 100, Waves: waves},
		Seed:   3,
	})
	require.NoError(t, err)
	return e
}

func sequentialKeys() func() uuid.UUID {
	var n byte
	return func() uuid.UUID {
		n++
		return uuid.UUID{15: n}
	}
}

func TestMirrorReplicatesEnemies(t *testing.T) {
	local := newField(t, levels.Wave{"orc1", "orc2", "troll1"}, levels.Wave{"orc1"})
	remote := newField(t, levels.Wave{"orc1"})
	local.Update(1.0 / 30)

	out := NewMirror(local, WithKeys(sequentialKeys()))
	in := NewMirror(remote)

	d := out.Export(true)
	require.Len(t, d.Enemies, 3)
	assert.Equal(t, out.ID(), d.From)
	require.NoError(t, in.Apply(d))

	want := local.Enemies()
	got := remote.Enemies()
	require.Len(t, got, 3)
	for i := range want {
		assert.Equal(t, want[i].Type, got[i].Type)
		assert.Equal(t, want[i].Gesture, got[i].Gesture)
		assert.Equal(t, want[i].Position, got[i].Position)
	}
	assert.Equal(t, 3, in.Len())

	again := out.Export(false)
	assert.Equal(t, d.Enemies[0].Key, again.Enemies[0].Key, "keys are stable across exports")
}

func TestMirrorRemovesKilledEnemies(t *testing.T) {
	local := newField(t, levels.Wave{"orc1", "orc1"}, levels.Wave{"orc1"})
	remote := newField(t, levels.Wave{"orc1"})
	local.Update(1.0 / 30)

	out := NewMirror(local)
	in := NewMirror(remote)
	require.NoError(t, in.Apply(out.Export(true)))
	require.Len(t, remote.Enemies(), 2)

	victim := local.Enemies()[0]
	require.True(t, local.RemoveEntity(victim.ID))
	local.Update(1.0 / 30)

	d := out.Export(false)
	require.Len(t, d.Removed, 1)
	require.NoError(t, in.Apply(d))
	assert.Len(t, remote.Enemies(), 1)
	assert.Equal(t, 1, in.Len())
}

func TestMirrorFullDeltaDropsMissing(t *testing.T) {
	remote := newField(t, levels.Wave{"orc1"})
	in := NewMirror(remote)
	a, b := uuid.New(), uuid.New()

	require.NoError(t, in.Apply(Delta{Full: true, Enemies: []EnemyState{
		{Key: a, Type: "orc1", Position: core.V(100, 900)},
		{Key: b, Type: "orc2", Position: core.V(300, 900)},
	}}))
	require.Len(t, remote.Enemies(), 2)

	require.NoError(t, in.Apply(Delta{Full: true, Enemies: []EnemyState{
		{Key: b, Type: "orc2", Position: core.V(300, 700), Gesture: "arrowUp"},
	}}))
	enemies := remote.Enemies()
	require.Len(t, enemies, 1)
	assert.Equal(t, core.V(300, 700), enemies[0].Position)
	assert.EqualValues(t, "arrowUp", enemies[0].Gesture)
	_, ok := in.Entity(a)
	assert.False(t, ok)
}

func TestMirrorAppliesMetadata(t *testing.T) {
	remote := newField(t, levels.Wave{"orc1"})
	in := NewMirror(remote)

	require.NoError(t, in.Apply(Delta{Meta: &Metadata{Health: 1, Mana: 35, Score: 90, Level: 2}}))
	st := remote.State()
	assert.Equal(t, 1, st.Health)
	assert.Equal(t, 35, st.Mana)
	assert.Equal(t, 90, in.Peer().Score)
}

func TestMirrorReportsUnknownEnemy(t *testing.T) {
	remote := newField(t, levels.Wave{"orc1"})
	in := NewMirror(remote)
	err := in.Apply(Delta{Tick: 7, Enemies: []EnemyState{
		{Key: uuid.New(), Type: "dragon"},
		{Key: uuid.New(), Type: "orc1", Position: core.V(100, 900)},
	}})
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrUnknownEnemy)
	assert.Len(t, remote.Enemies(), 1, "valid entries still apply")
}

func TestLinkDropsOldest(t *testing.T) {
	l := NewLink(2)
	for tick := 1; tick <= 3; tick++ {
		l.Send(Delta{Tick: tick})
	}
	got := l.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Tick)
	assert.Equal(t, 3, got[1].Tick)

	l.Close()
	l.Close()
	l.Send(Delta{Tick: 4})
	assert.Empty(t, l.Drain())
}

func TestRegistryBroadcastSkipsSender(t *testing.T) {
	r := NewRegistry()
	a, b := uuid.New(), uuid.New()
	la, lb := NewLink(4), NewLink(4)
	r.Register(a, la)
	r.Register(b, lb)

	r.Broadcast(Delta{From: a, Tick: 1})
	assert.Empty(t, la.Drain())
	assert.Len(t, lb.Drain(), 1)

	r.Unregister(b)
	assert.Equal(t, 1, r.Count())
	_, ok := r.Get(b)
	assert.False(t, ok)
}
