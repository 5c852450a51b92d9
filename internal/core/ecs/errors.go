package ecs

import "errors"

// Storage errors
var (
	// Entity errors

	ErrDeadEntity = errors.New("entity is not alive")

	// Composition errors

	ErrComponentPresent = errors.New("component already present on entity")
	ErrComponentMissing = errors.New("component not present on entity")

	// Registry errors

	ErrTypeNotRegistered = errors.New("component type not registered")
)
