//go:build !arch_noevents

package events

// Enabled reports whether lifecycle notification is compiled in. In default
// builds it is the constant true; building with the arch_noevents tag flips
// it to false, and every notify operation constant-folds to a no-op: no
// resolver calls, no chunk iteration, no handler invocation.
const Enabled = true
