// Package core defines the shared contracts of the LOKAAH tutoring engine:
// events, content parts, sessions, the per-run execution context, and the
// store interfaces (session, memory, artifact) that the orchestration layer
// and the tutor agents are built on.
package core
