package game

import (
	"sync/atomic"

	"github.com/zeusync/strike/internal/core/events/bus"
	"github.com/zeusync/strike/internal/core/observability/log"
	"github.com/zeusync/strike/internal/game/world"
)

// HUD is the read-only view a display collaborator polls.
type HUD struct {
	Frame       uint64
	Time        float64
	Score       uint64
	Kills       uint64
	Health      float64
	Enemies     int
	Projectiles int
	Hits        uint64
	Shots       uint64
}

func (g *Game) HUD() HUD {
	w := g.World
	h := HUD{
		Frame:       w.Frame,
		Time:        w.Time,
		Score:       w.Score.Points,
		Kills:       w.Score.Kills,
		Enemies:     w.Enemies.Len(),
		Projectiles: w.Projectiles.Len(),
		Hits:        g.stats.hits.Load(),
		Shots:       g.stats.shots.Load(),
	}
	if col, ok := w.Collidables.Get(w.Player); ok {
		h.Health = col.HealthFraction()
	}
	return h
}

// Fields renders h for structured logging.
func (h HUD) Fields() []log.Field {
	return []log.Field{
		log.Uint64("frame", h.Frame),
		log.Float64("time", h.Time),
		log.Uint64("score", h.Score),
		log.Uint64("kills", h.Kills),
		log.Float64("health", h.Health),
		log.Int("enemies", h.Enemies),
		log.Int("projectiles", h.Projectiles),
		log.Uint64("hits", h.Hits),
		log.Uint64("shots", h.Shots),
	}
}

// Stats counts combat events as they are delivered on the bus.
type Stats struct {
	hits  atomic.Uint64
	shots atomic.Uint64
}

var _ bus.EventBusObserver = (*Stats)(nil)

func newStats() *Stats { return &Stats{} }

func (s *Stats) OnPublish(topic, eventType string, _ bus.Event) {
	if topic != world.TopicCombat {
		return
	}
	switch eventType {
	case world.EventHit:
		s.hits.Add(1)
	case world.EventWeaponFired:
		s.shots.Add(1)
	}
}

func (s *Stats) OnDelivered(string, string, int, error) {}
