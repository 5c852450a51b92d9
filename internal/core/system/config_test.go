package system

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AlexisPollonni/Arch/internal/core/ecs"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, ecs.DefaultChunkCapacity, cfg.ChunkCapacity)
}

func TestConfigValidateRange(t *testing.T) {
	cases := []struct {
		name     string
		capacity int
		ok       bool
	}{
		{"zero picks default", 0, true},
		{"one", 1, true},
		{"max", ecs.MaxChunkCapacity, true},
		{"negative", -1, false},
		{"over max", ecs.MaxChunkCapacity + 1, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Config{ChunkCapacity: tc.capacity}.Validate()
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
