package events

import (
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/AlexisPollonni/Arch/internal/core/ecs"
)

// no-op handler that increments a counter so the compiler cannot eliminate
// the delivery.
func makeCountHandler(c *int64) func(EntityCreated) error {
	return func(EntityCreated) error {
		atomic.AddInt64(c, 1)
		return nil
	}
}

type nopObserver struct{}

func (nopObserver) OnPublish(Kind) {}

func (nopObserver) OnDelivered(Kind, int, error, int64) {}

func BenchmarkPublishSingleSubscriber(b *testing.B) {
	bus := NewBus()
	var c int64
	Subscribe(bus, makeCountHandler(&c))
	ev := EntityCreated{Entity: testEntity(1)}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Publish(bus, ev)
	}
	b.StopTimer()
	_ = c // keep referenced
}

func BenchmarkPublishSubscriberSweep(b *testing.B) {
	for _, subs := range []int{1, 4, 16, 64, 256} {
		b.Run("subs="+strconv.Itoa(subs), func(b *testing.B) {
			bus := NewBus()
			var c int64
			for i := 0; i < subs; i++ {
				Subscribe(bus, makeCountHandler(&c))
			}
			ev := EntityCreated{Entity: testEntity(1)}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = Publish(bus, ev)
			}
			b.StopTimer()
			_ = c
		})
	}
}

func BenchmarkPublishNoSubscribers(b *testing.B) {
	bus := NewBus()
	ev := EntityCreated{Entity: testEntity(1)}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Publish(bus, ev)
	}
}

func BenchmarkConcurrentPublishers(b *testing.B) {
	bus := NewBus()
	var c int64
	for i := 0; i < 64; i++ {
		Subscribe(bus, makeCountHandler(&c))
	}
	ev := EntityCreated{Entity: testEntity(1)}
	b.ReportAllocs()
	b.SetParallelism(4)
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = Publish(bus, ev)
		}
	})
	_ = c
}

func BenchmarkObserverOverhead(b *testing.B) {
	bus := NewBus()
	var c int64
	for i := 0; i < 32; i++ {
		Subscribe(bus, makeCountHandler(&c))
	}
	ev := EntityCreated{Entity: testEntity(1)}
	b.Run("no-observer", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = Publish(bus, ev)
		}
	})
	b.Run("with-observer", func(b *testing.B) {
		bus.AddObserver(nopObserver{})
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = Publish(bus, ev)
		}
	})
	_ = c
}

func BenchmarkNotifyComponentAdded(b *testing.B) {
	reg := ecs.NewRegistry()
	bus := NewBus()
	n := NewNotifier(bus, reg)
	var c int64
	Subscribe(bus, func(ComponentAdded) error {
		atomic.AddInt64(&c, 1)
		return nil
	})
	e := testEntity(1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = NotifyComponentAdded[posComp](n, e)
	}
	b.StopTimer()
	_ = c
}

func BenchmarkBulkNotify(b *testing.B) {
	reg := ecs.NewRegistry()
	tb := ecs.NewTable(reg, 256)
	es := tb.CreateN(1024)
	for _, e := range es {
		_ = ecs.AddComponent(tb, e, posComp{})
	}
	arch, _ := tb.ArchetypeOf(es[0])
	ct := reg.ResolveValue(posComp{})

	bus := NewBus()
	n := NewNotifier(bus, reg)
	var c int64
	Subscribe(bus, func(ComponentAdded) error {
		atomic.AddInt64(&c, 1)
		return nil
	})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = NotifyComponentAddedBulk(n, arch.All(), ct)
	}
	b.StopTimer()
	_ = c
}
