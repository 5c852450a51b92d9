//go:build arch_noevents

package events

// Enabled is false under the arch_noevents build tag; see enabled.go.
const Enabled = false
