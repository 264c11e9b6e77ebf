package world

import (
	"github.com/zeusync/strike/internal/core/ecs"
	"github.com/zeusync/strike/internal/core/events/bus"
	"github.com/zeusync/strike/internal/core/observability/log"
)

// Bus topics.
const (
	TopicPhysics = "physics"
	TopicCombat  = "combat"
)

// Combat event types.
const (
	EventHit            = "hit"
	EventDespawned      = "despawned"
	EventScoreAwarded   = "score.awarded"
	EventWeaponFired    = "weapon.fired"
	EventTargetAcquired = "target.acquired"
)

// Despawn reasons.
const (
	ReasonKilled      = "killed"
	ReasonOutOfBounds = "out_of_bounds"
	ReasonSwitched    = "switched"
)

type HitEvent struct {
	A, B             ecs.EntityID
	DamageA, DamageB float64
}

type DespawnEvent struct {
	Entity ecs.EntityID
	Name   string
	Reason string
}

type ScoreEvent struct {
	Entity ecs.EntityID
	Points uint64
	Total  uint64
}

type FireEvent struct {
	Owner      ecs.EntityID
	Projectile ecs.EntityID
	Weapon     string
}

type TargetEvent struct {
	Projectile ecs.EntityID
	Target     ecs.EntityID
}

// Emit publishes data on topic for this frame. Handler errors are logged,
// never returned: notifications must not abort a system.
func (w *World) Emit(topic, eventType, source string, data any) {
	if err := w.Bus.PublishToTopic(topic, bus.NewEvent(eventType, source, w.Frame, data)); err != nil {
		w.Log.Warn("event handler failed",
			log.String("topic", topic), log.String("event", eventType), log.Error(err))
	}
}

// DespawnWith despawns id and announces it. It reports false if id was
// already gone this frame.
func (w *World) DespawnWith(id ecs.EntityID, reason, source string) bool {
	name := w.Name(id)
	if !w.Despawn(id) {
		return false
	}
	w.Log.Debug("despawned", log.Entity("entity", uint64(id)), log.String("name", name), log.String("reason", reason))
	w.Emit(TopicCombat, EventDespawned, source, DespawnEvent{Entity: id, Name: name, Reason: reason})
	return true
}
