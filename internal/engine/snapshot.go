package engine

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/vovakirdan/runes/internal/ecs"
)

// Snapshot hashes the observable simulation state. Two engines fed the
// same seed, configuration and input produce equal snapshots every frame.
func (e *Engine) Snapshot() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 64)

	s := e.State()
	buf = binary.LittleEndian.AppendUint64(buf, uint64(s.Tick))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(s.Score))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(s.Multiplier))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(s.Health))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(s.Mana))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(s.WavesLeft))
	_, _ = d.Write(buf)

	for t := ecs.TypeEnemy; t <= ecs.TypeTimer; t++ {
		for _, id := range e.store.Query(t) {
			buf = buf[:0]
			buf = binary.LittleEndian.AppendUint32(buf, uint32(id))
			buf = append(buf, byte(t))
			if m, ok := e.store.Move(id); ok {
				buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(m.Position.X))
				buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(m.Position.Y))
			}
			if h, ok := e.store.Health(id); ok {
				buf = binary.LittleEndian.AppendUint32(buf, uint32(h.Points()))
			}
			_, _ = d.Write(buf)
			if g, ok := e.store.Gesture(id); ok {
				_, _ = d.WriteString(string(g.ID))
			}
		}
	}
	return d.Sum64()
}
