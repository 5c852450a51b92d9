//go:build !arch_noevents

package events

import (
	"errors"
	"testing"

	"github.com/AlexisPollonni/Arch/internal/core/ecs"
)

func TestEntityNotificationsCarryHandle(t *testing.T) {
	reg := ecs.NewRegistry()
	b := NewBus()
	n := NewNotifier(b, reg)
	if n.Bus() != b {
		t.Fatal("notifier bound to a different bus")
	}

	var created, destroyed []ecs.Entity
	Subscribe(b, func(ev EntityCreated) error { created = append(created, ev.Entity); return nil })
	Subscribe(b, func(ev EntityDestroyed) error { destroyed = append(destroyed, ev.Entity); return nil })

	e := testEntity(42)
	if err := n.EntityCreated(e); err != nil {
		t.Fatalf("created: %v", err)
	}
	if err := n.EntityDestroyed(e); err != nil {
		t.Fatalf("destroyed: %v", err)
	}
	if len(created) != 1 || created[0] != e {
		t.Fatalf("created payloads: %v", created)
	}
	if len(destroyed) != 1 || destroyed[0] != e {
		t.Fatalf("destroyed payloads: %v", destroyed)
	}
}

func TestComponentAddedShapesMatch(t *testing.T) {
	reg := ecs.NewRegistry()
	b := NewBus()
	n := NewNotifier(b, reg)

	var got []ComponentAdded
	Subscribe(b, func(ev ComponentAdded) error { got = append(got, ev); return nil })

	e := testEntity(3)
	ct := ecs.Resolve[posComp](reg)
	if err := NotifyComponentAdded[posComp](n, e); err != nil {
		t.Fatalf("typed: %v", err)
	}
	if err := n.ComponentAddedValue(e, posComp{}); err != nil {
		t.Fatalf("value: %v", err)
	}
	if err := n.ComponentAdded(e, ct); err != nil {
		t.Fatalf("descriptor: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 deliveries, got %d", len(got))
	}
	if got[0] != got[1] || got[1] != got[2] {
		t.Fatalf("shapes produced different payloads: %+v", got)
	}
	if got[0].Type != ct || got[0].Entity != e {
		t.Fatalf("payload content: %+v", got[0])
	}
}

func TestComponentRemovedShapesMatch(t *testing.T) {
	reg := ecs.NewRegistry()
	b := NewBus()
	n := NewNotifier(b, reg)

	var got []ComponentRemoved
	Subscribe(b, func(ev ComponentRemoved) error { got = append(got, ev); return nil })

	e := testEntity(4)
	ct := ecs.Resolve[velComp](reg)
	if err := NotifyComponentRemoved[velComp](n, e); err != nil {
		t.Fatalf("typed: %v", err)
	}
	if err := n.ComponentRemovedValue(e, velComp{}); err != nil {
		t.Fatalf("value: %v", err)
	}
	if err := n.ComponentRemoved(e, ct); err != nil {
		t.Fatalf("descriptor: %v", err)
	}

	if len(got) != 3 || got[0] != got[1] || got[1] != got[2] {
		t.Fatalf("shapes produced different payloads: %+v", got)
	}
	if got[0].Type != ct || got[0].Entity != e {
		t.Fatalf("payload content: %+v", got[0])
	}
}

func TestComponentSetShapesMatch(t *testing.T) {
	reg := ecs.NewRegistry()
	b := NewBus()
	n := NewNotifier(b, reg)

	var got []ComponentSet
	Subscribe(b, func(ev ComponentSet) error { got = append(got, ev); return nil })

	e := testEntity(5)
	ct := ecs.Resolve[posComp](reg)
	if err := NotifyComponentSet[posComp](n, e); err != nil {
		t.Fatalf("typed: %v", err)
	}
	if err := n.ComponentSetValue(e, posComp{}); err != nil {
		t.Fatalf("value: %v", err)
	}
	if err := n.ComponentSet(e, ct); err != nil {
		t.Fatalf("descriptor: %v", err)
	}

	if len(got) != 3 || got[0] != got[1] || got[1] != got[2] {
		t.Fatalf("shapes produced different payloads: %+v", got)
	}
	if got[0].Type != ct || got[0].Entity != e {
		t.Fatalf("payload content: %+v", got[0])
	}
}

func TestNotifierResolverUsage(t *testing.T) {
	res := &countingResolver{reg: ecs.NewRegistry()}
	b := NewBus()
	n := NewNotifier(b, res)
	e := testEntity(6)

	if err := NotifyComponentAdded[posComp](n, e); err != nil {
		t.Fatalf("typed: %v", err)
	}
	if res.typeCalls != 1 || res.valueCalls != 0 {
		t.Fatalf("typed shape resolver calls: type=%d value=%d", res.typeCalls, res.valueCalls)
	}

	if err := n.ComponentSetValue(e, posComp{}); err != nil {
		t.Fatalf("value: %v", err)
	}
	if res.typeCalls != 1 || res.valueCalls != 1 {
		t.Fatalf("value shape resolver calls: type=%d value=%d", res.typeCalls, res.valueCalls)
	}

	// The descriptor shape never resolves; the caller already did.
	ct := res.reg.ResolveValue(posComp{})
	if err := n.ComponentRemoved(e, ct); err != nil {
		t.Fatalf("descriptor: %v", err)
	}
	if res.typeCalls != 1 || res.valueCalls != 1 {
		t.Fatalf("descriptor shape touched the resolver: type=%d value=%d", res.typeCalls, res.valueCalls)
	}
}

func TestNotifierFaultPropagates(t *testing.T) {
	reg := ecs.NewRegistry()
	b := NewBus()
	n := NewNotifier(b, reg)
	Subscribe(b, func(ComponentSet) error { return errBoom })

	err := NotifyComponentSet[posComp](n, testEntity(7))
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected handler fault, got %v", err)
	}
}
