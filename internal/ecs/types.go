// Package ecs is the entity/component store of the simulation: entity ids
// tagged with a fixed type, a closed set of typed component tables and a
// live index with deferred, two-phase removal.
package ecs

// EntityID identifies an entity. The zero value is the null id.
type EntityID uint32

// NoEntity is the null entity id.
const NoEntity EntityID = 0

// EntityType is the fixed tag an entity is indexed under.
type EntityType uint8

const (
	TypeEnemy EntityType = iota
	TypePlayerUnit
	TypeEndPoint
	TypeGestureMarker
	TypePowerUp
	TypeDroppedMana
	TypePlayer
	TypeTimer
	numTypes
)

// String returns a human-readable name for the type.
func (t EntityType) String() string {
	switch t {
	case TypeEnemy:
		return "enemy"
	case TypePlayerUnit:
		return "player-unit"
	case TypeEndPoint:
		return "end-point"
	case TypeGestureMarker:
		return "gesture-marker"
	case TypePowerUp:
		return "power-up"
	case TypeDroppedMana:
		return "dropped-mana"
	case TypePlayer:
		return "player"
	case TypeTimer:
		return "timer"
	default:
		return "unknown"
	}
}

// Team is the side an entity fights for.
type Team uint8

const (
	TeamNone Team = iota
	TeamPlayer
	TeamEnemy
)

// Opposite returns the opposing team. TeamNone has no opponent.
func (t Team) Opposite() Team {
	switch t {
	case TeamPlayer:
		return TeamEnemy
	case TeamEnemy:
		return TeamPlayer
	default:
		return TeamNone
	}
}

// String returns a human-readable name for the team.
func (t Team) String() string {
	switch t {
	case TeamPlayer:
		return "player"
	case TeamEnemy:
		return "enemy"
	default:
		return "none"
	}
}

// teamTypes lists the entity types a team query spans. Attraction points
// such as an active vortex are power-ups and count for the player side.
var teamTypes = map[Team][]EntityType{
	TeamPlayer: {TypeEndPoint, TypePlayerUnit, TypePowerUp},
	TeamEnemy:  {TypeEnemy},
}

// ComponentKind addresses one of the component tables.
type ComponentKind uint8

const (
	KindTeam ComponentKind = iota
	KindMove
	KindHealth
	KindMana
	KindScore
	KindGesture
	KindMarkerRef
	KindTimer
	KindEnemyType
	KindPowerUp
	KindDrop
	KindCombo
	KindVisual
	numKinds
)

// String returns a human-readable name for the kind.
func (k ComponentKind) String() string {
	names := [...]string{"team", "move", "health", "mana", "score", "gesture",
		"marker-ref", "timer", "enemy-type", "power-up", "drop", "combo", "visual"}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}
