package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/AlexisPollonni/Arch/internal/core/ecs"
	"github.com/AlexisPollonni/Arch/internal/core/events"
	"github.com/AlexisPollonni/Arch/internal/core/observability/log"
	"github.com/AlexisPollonni/Arch/internal/core/system"
)

// Demo components. Plain value structs; the world stores them by copy.
type Position struct{ X, Y float32 }

type Velocity struct{ DX, DY float32 }

type Shield struct{ Strength float32 }

type config struct {
	LogLevel string        `yaml:"log_level"`
	Entities int           `yaml:"entities"`
	Worlds   int           `yaml:"worlds"`
	World    system.Config `yaml:"world"`
}

func defaultConfig() config {
	return config{
		LogLevel: "info",
		Entities: 512,
		Worlds:   2,
		World:    system.DefaultConfig(),
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err = yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Entities <= 0 {
		cfg.Entities = defaultConfig().Entities
	}
	if cfg.Worlds <= 0 {
		cfg.Worlds = 1
	}
	if err = cfg.World.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	configPath := flag.String("config", "", "path to YAML config")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "simulator:", err)
		os.Exit(1)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "simulator:", err)
		os.Exit(1)
	}
	lg := log.New(level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-stopCh
		cancel()
	}()

	// Each goroutine owns its own world. Worlds share no subscriber or type
	// state, so the only coordination needed is the context.
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.Worlds; i++ {
		i := i
		g.Go(func() error {
			return runWorld(ctx, cfg, lg.With(log.Int("world", i)))
		})
	}

	if err = g.Wait(); err != nil {
		lg.Error("simulation failed", log.Error(err))
		os.Exit(1)
	}
	lg.Info("simulation complete")
}

// runWorld drives one world through the full lifecycle surface: creates,
// typed and runtime component mutations, a bulk migration pair, destroys.
func runWorld(ctx context.Context, cfg config, lg log.Log) error {
	w := system.NewWorld(cfg.World, lg)
	bus := w.Bus()
	bus.AddObserver(deliveryObserver{lg: lg})

	created := events.Subscribe(bus, func(ev events.EntityCreated) error {
		lg.Debug("entity created", log.Uint32("id", ev.Entity.ID))
		return nil
	})
	events.Subscribe(bus, func(ev events.EntityDestroyed) error {
		lg.Debug("entity destroyed", log.Uint32("id", ev.Entity.ID))
		return nil
	})
	events.Subscribe(bus, func(ev events.ComponentAdded) error {
		lg.Debug("component added",
			log.Uint32("id", ev.Entity.ID),
			log.String("component", ev.Type.Name),
		)
		return nil
	})
	events.Subscribe(bus, func(ev events.ComponentRemoved) error {
		lg.Debug("component removed",
			log.Uint32("id", ev.Entity.ID),
			log.String("component", ev.Type.Name),
		)
		return nil
	})
	events.Subscribe(bus, func(ev events.ComponentSet) error {
		lg.Debug("component set",
			log.Uint32("id", ev.Entity.ID),
			log.String("component", ev.Type.Name),
		)
		return nil
	})

	entities, err := w.CreateN(cfg.Entities)
	if err != nil {
		return err
	}

	// First half gets Position only, second half Position and Velocity. The
	// halves land in distinct archetypes, which the bulk phase relies on.
	for i, e := range entities {
		if err = system.Add(w, e, Position{X: float32(i), Y: float32(-i)}); err != nil {
			return err
		}
		if i >= len(entities)/2 {
			if err = system.Add(w, e, Velocity{DX: 1, DY: 1}); err != nil {
				return err
			}
		}
	}

	// A few simulation steps over the moving half.
	for step := 0; step < 4; step++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		for _, e := range entities[len(entities)/2:] {
			pos, _ := system.Get[Position](w, e)
			vel, _ := system.Get[Velocity](w, e)
			pos.X += vel.DX
			pos.Y += vel.DY
			if err = system.Set(w, e, pos); err != nil {
				return err
			}
		}
	}

	// Bulk phase: shield the stationary archetype in one migration, then
	// strip the shields again.
	arch, err := w.ArchetypeOf(entities[0])
	if err != nil {
		return err
	}
	if err = system.AddAll(w, arch, Shield{Strength: 100}); err != nil {
		return err
	}
	shielded, err := w.ArchetypeOf(entities[0])
	if err != nil {
		return err
	}
	if err = system.RemoveAll[Shield](w, shielded); err != nil {
		return err
	}

	// Runtime-typed path, the shape scripting layers use.
	if err = w.SetValue(entities[0], Position{X: 0, Y: 0}); err != nil {
		return err
	}

	created.Cancel()

	for _, e := range entities[:len(entities)/4] {
		if err = w.Destroy(e); err != nil {
			return err
		}
	}

	m := bus.Metrics()
	lg.Info("world finished",
		log.Uint64("published", m.Published),
		log.Uint64("delivered", m.Delivered),
		log.Uint64("faults", m.Faults),
		log.Int("alive", countAlive(w, entities)),
	)
	return nil
}

func countAlive(w *system.World, entities []ecs.Entity) int {
	n := 0
	for _, e := range entities {
		if w.Alive(e) {
			n++
		}
	}
	return n
}

// deliveryObserver surfaces handler faults in the log and keeps the bus
// metrics live.
type deliveryObserver struct {
	lg log.Log
}

func (deliveryObserver) OnPublish(events.Kind) {}

func (o deliveryObserver) OnDelivered(k events.Kind, handlers int, err error, _ int64) {
	if err != nil {
		o.lg.Warn("event delivery fault",
			log.String("kind", k.String()),
			log.Int("handlers", handlers),
			log.Error(err),
		)
	}
}
