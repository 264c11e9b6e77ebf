// Package ship spawns the player ship and turns per-frame input intents into
// thrust, rotation and weapon slot changes.
package ship

import (
	"errors"
	"fmt"

	"github.com/zeusync/strike/internal/config"
	"github.com/zeusync/strike/internal/core/ecs"
	"github.com/zeusync/strike/internal/core/observability/log"
	"github.com/zeusync/strike/internal/core/systems"
	"github.com/zeusync/strike/internal/core/systems/physics"
	"github.com/zeusync/strike/internal/game/component"
	"github.com/zeusync/strike/internal/game/weapons"
	"github.com/zeusync/strike/internal/game/world"
)

var ErrNoSlot = errors.New("no such loadout slot")

// Intent is the player's input for one frame.
type Intent struct {
	Up, Down, Left, Right   bool
	RotateLeft, RotateRight bool
	Fire                    bool
	// SwitchSlot selects loadout slot N (1-based); 0 keeps the current one.
	SwitchSlot int
}

// Input holds the intent the systems read this frame.
type Input struct {
	current Intent
}

func (in *Input) Set(i Intent)    { in.current = i }
func (in *Input) Current() Intent { return in.current }
func (in *Input) Firing() bool    { return in.current.Fire }

// Spawn creates the persistent player ship and records it as w.Player.
func Spawn(w *world.World, cfg config.ShipConfig) ecs.EntityID {
	tr := component.At(cfg.Position.Vec())
	mv := physics.NewMovable(physics.Vec3{}, cfg.Damping)
	col := component.NewCollidable(cfg.Hitbox, cfg.Damage, cfg.HitPoints, component.TeamPlayer)
	id := w.Spawn(component.Bundle{
		Name:       "ship",
		Transform:  &tr,
		Movable:    &mv,
		Collidable: &col,
		Ship: &component.Ship{
			Thrust:   cfg.Thrust,
			TurnRate: cfg.TurnRate,
			Loadout:  append([]string(nil), cfg.Loadout...),
		},
		Persistent: true,
	})
	w.Player = id
	w.Log.Info("ship spawned", log.Entity("entity", uint64(id)))
	return id
}

// Equip switches the player to loadout slot (1-based).
func Equip(w *world.World, catalog *weapons.Catalog, slot int) error {
	s, ok := w.Ships.Get(w.Player)
	if !ok {
		return nil
	}
	if slot < 1 || slot > len(s.Loadout) {
		return fmt.Errorf("%w %d", ErrNoSlot, slot)
	}
	wp, err := catalog.Build(s.Loadout[slot-1])
	if err != nil {
		return fmt.Errorf("equip slot %d: %w", slot, err)
	}
	weapons.Switch(w, w.Player, wp)
	s.Slot = slot
	return nil
}

// Control maps movement intents to acceleration along the screen axes and
// rotation intents to a turn about +Z.
func Control(in *Input) systems.System[*world.World] {
	return systems.Func("ship.control", systems.PhaseInput, systems.PriorityNormal,
		func(dt float64, w *world.World) error {
			s, ok := w.Ships.Get(w.Player)
			if !ok {
				return nil
			}
			mv, okM := w.Movables.Get(w.Player)
			tr, okT := w.Transforms.Get(w.Player)
			if !okM || !okT {
				return nil
			}
			intent := in.Current()

			var dir physics.Vec3
			if intent.Up {
				dir[1]++
			}
			if intent.Down {
				dir[1]--
			}
			if intent.Left {
				dir[0]--
			}
			if intent.Right {
				dir[0]++
			}
			if n, ok := physics.Normalize(dir); ok {
				mv.Acceleration = n.Mul(s.Thrust)
			} else {
				mv.Acceleration = physics.Vec3{}
			}

			var turn float64
			if intent.RotateLeft {
				turn += s.TurnRate * dt
			}
			if intent.RotateRight {
				turn -= s.TurnRate * dt
			}
			if turn != 0 {
				tr.Rotation = physics.RotationZ(turn).Mul(tr.Rotation).Normalize()
			}
			return nil
		})
}

// Loadout applies slot switch intents before anything fires this frame.
func Loadout(in *Input, catalog *weapons.Catalog) systems.System[*world.World] {
	return systems.Func("ship.loadout", systems.PhaseInput, systems.PriorityHigh,
		func(_ float64, w *world.World) error {
			slot := in.Current().SwitchSlot
			s, ok := w.Ships.Get(w.Player)
			if slot == 0 || !ok || slot == s.Slot {
				return nil
			}
			if err := Equip(w, catalog, slot); err != nil {
				w.Log.Warn("weapon switch ignored", log.Int("slot", slot), log.Error(err))
			}
			return nil
		})
}
