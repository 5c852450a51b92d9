// Package system assembles the runtime pieces into a World: archetype
// storage, the per-world component registry, and the lifecycle notification
// core. The World is the storage-layer caller of the notifier: every
// mutating operation applies its storage change first, then publishes, so
// handlers always observe post-mutation state.
package system

import (
	"github.com/AlexisPollonni/Arch/internal/core/ecs"
	"github.com/AlexisPollonni/Arch/internal/core/events"
	"github.com/AlexisPollonni/Arch/internal/core/observability/log"
)

// World owns one independent instance of everything: registry, table, bus,
// notifier. Two worlds never share subscriber or type state.
//
// A World serializes nothing itself. Concurrent structural mutation requires
// external serialization by the caller; reads and subscribe/unsubscribe are
// safe alongside each other.
type World struct {
	cfg      Config
	log      log.Log
	registry *ecs.Registry
	table    *ecs.Table
	bus      *events.Bus
	notifier *events.Notifier
}

// NewWorld builds a world from cfg. The logger is used for world-level
// bookkeeping only; the mutation and publish paths never log.
func NewWorld(cfg Config, lg log.Log) *World {
	if cfg.ChunkCapacity <= 0 {
		cfg.ChunkCapacity = ecs.DefaultChunkCapacity
	}
	registry := ecs.NewRegistry()
	bus := events.NewBus()
	w := &World{
		cfg:      cfg,
		log:      lg,
		registry: registry,
		table:    ecs.NewTable(registry, cfg.ChunkCapacity),
		bus:      bus,
		notifier: events.NewNotifier(bus, registry),
	}
	lg.Info("world initialized",
		log.Int("chunk_capacity", cfg.ChunkCapacity),
		log.Bool("events", events.Enabled),
	)
	return w
}

// Bus exposes the world's event bus for subscribing and unsubscribing.
func (w *World) Bus() *events.Bus {
	return w.bus
}

// Config returns the configuration the world was built from.
func (w *World) Config() Config {
	return w.cfg
}

// Registry exposes the world's component type registry.
func (w *World) Registry() *ecs.Registry {
	return w.registry
}

// Create allocates a new entity and publishes EntityCreated. The entity is
// valid even when a handler fault is returned.
func (w *World) Create() (ecs.Entity, error) {
	e := w.table.Create()
	return e, w.notifier.EntityCreated(e)
}

// CreateN allocates n entities, publishing EntityCreated per entity. On a
// handler fault the remaining notifications are skipped; all n entities
// exist regardless.
func (w *World) CreateN(n int) ([]ecs.Entity, error) {
	entities := w.table.CreateN(n)
	for _, e := range entities {
		if err := w.notifier.EntityCreated(e); err != nil {
			return entities, err
		}
	}
	return entities, nil
}

// Destroy removes e and publishes EntityDestroyed; inside handlers the
// handle is already dead.
func (w *World) Destroy(e ecs.Entity) error {
	if err := w.table.Destroy(e); err != nil {
		return err
	}
	return w.notifier.EntityDestroyed(e)
}

// Alive reports whether e refers to a live entity.
func (w *World) Alive(e ecs.Entity) bool {
	return w.table.Alive(e)
}

// ArchetypeOf returns the archetype currently holding e, the unit the bulk
// operations act on.
func (w *World) ArchetypeOf(e ecs.Entity) (*ecs.Archetype, error) {
	return w.table.ArchetypeOf(e)
}

// AddValue attaches v under its dynamic type and publishes ComponentAdded.
func (w *World) AddValue(e ecs.Entity, v any) error {
	if err := w.table.AddValue(e, v); err != nil {
		return err
	}
	return w.notifier.ComponentAddedValue(e, v)
}

// SetValue overwrites the existing component of v's dynamic type and
// publishes ComponentSet.
func (w *World) SetValue(e ecs.Entity, v any) error {
	if err := w.table.SetValue(e, v); err != nil {
		return err
	}
	return w.notifier.ComponentSetValue(e, v)
}

// RemoveType detaches the component described by ct and publishes
// ComponentRemoved.
func (w *World) RemoveType(e ecs.Entity, ct ecs.ComponentType) error {
	if err := w.table.RemoveType(e, ct); err != nil {
		return err
	}
	return w.notifier.ComponentRemoved(e, ct)
}

// HasType reports whether e carries the component described by ct.
func (w *World) HasType(e ecs.Entity, ct ecs.ComponentType) bool {
	return w.table.HasType(e, ct)
}

// ValueOf returns a boxed copy of e's component described by ct.
func (w *World) ValueOf(e ecs.Entity, ct ecs.ComponentType) (any, error) {
	return w.table.ValueOf(e, ct)
}

// Add attaches v as component type T and publishes ComponentAdded through
// the statically-typed notify path.
func Add[T any](w *World, e ecs.Entity, v T) error {
	if err := ecs.AddComponent(w.table, e, v); err != nil {
		return err
	}
	return events.NotifyComponentAdded[T](w.notifier, e)
}

// Set overwrites e's component of type T and publishes ComponentSet.
func Set[T any](w *World, e ecs.Entity, v T) error {
	if err := ecs.SetComponent(w.table, e, v); err != nil {
		return err
	}
	return events.NotifyComponentSet[T](w.notifier, e)
}

// Remove detaches component type T from e and publishes ComponentRemoved.
func Remove[T any](w *World, e ecs.Entity) error {
	if err := ecs.RemoveComponent[T](w.table, e); err != nil {
		return err
	}
	return events.NotifyComponentRemoved[T](w.notifier, e)
}

// Get reads e's component of type T; usable from inside handlers, where it
// already observes the mutation that triggered the event.
func Get[T any](w *World, e ecs.Entity) (T, bool) {
	return ecs.GetComponent[T](w.table, e)
}

// Has reports whether e carries component type T.
func Has[T any](w *World, e ecs.Entity) bool {
	return ecs.HasComponent[T](w.table, e)
}

// AddAll attaches component type T with value v to every entity of archetype
// a in one migration step, then publishes one ComponentAdded per migrated
// entity through the bulk path.
func AddAll[T any](w *World, a *ecs.Archetype, v T) error {
	ct := ecs.Resolve[T](w.registry)
	r, err := w.table.MigrateAllAdd(a, ct)
	if err != nil {
		return err
	}
	ecs.FillRange(r, ct, v)
	w.log.Debug("bulk component add",
		log.String("component", ct.Name),
		log.Uint64("hash", ct.Hash),
		log.Int("entities", r.Len()),
	)
	return events.NotifyComponentAddedBulk(w.notifier, r, ct)
}

// RemoveAll detaches component type T from every entity of archetype a in
// one migration step, then publishes one ComponentRemoved per migrated
// entity through the bulk path.
func RemoveAll[T any](w *World, a *ecs.Archetype) error {
	ct := ecs.Resolve[T](w.registry)
	r, err := w.table.MigrateAllRemove(a, ct)
	if err != nil {
		return err
	}
	w.log.Debug("bulk component remove",
		log.String("component", ct.Name),
		log.Uint64("hash", ct.Hash),
		log.Int("entities", r.Len()),
	)
	return events.NotifyComponentRemovedBulk(w.notifier, r, ct)
}
