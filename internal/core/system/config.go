package system

import (
	"fmt"

	"github.com/AlexisPollonni/Arch/internal/core/ecs"
)

// Config holds the per-world tunables.
type Config struct {
	// ChunkCapacity is the slot count of each storage chunk. Zero selects
	// ecs.DefaultChunkCapacity.
	ChunkCapacity int `yaml:"chunk_capacity" json:"chunk_capacity"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		ChunkCapacity: ecs.DefaultChunkCapacity,
	}
}

// Validate reports configuration values a world cannot be built from.
func (c Config) Validate() error {
	if c.ChunkCapacity < 0 || c.ChunkCapacity > ecs.MaxChunkCapacity {
		return fmt.Errorf("chunk_capacity %d out of range [0, %d]", c.ChunkCapacity, ecs.MaxChunkCapacity)
	}
	return nil
}
