// Package engine is the orchestration layer that turns a student message
// into a tutor conversation turn.
//
// The Engine keeps a thread-safe registry of agents (the router and the five
// tutors), runs each invocation on its own goroutine, and owns the event
// pipeline between agents and clients:
//
//  1. The user message is persisted to session history.
//  2. The agent executes, emitting events on a buffered channel.
//  3. Event actions (state deltas, session close, escalation, transfer) are
//     applied to the backing stores.
//  4. Non-partial events are appended to session history, then forwarded to
//     the client, then the agent is signalled to resume.
//
// A transfer_to_agent action re-dispatches the same user content to the
// named agent within the same invocation, bounded by Config.MaxTransferHops.
// This is how the router's handoffs and tutor-to-tutor referrals are
// realized.
//
// Both streaming (Invoke) and collecting (InvokeSync) surfaces are provided;
// StopInvocation cancels by invocation id. Lifecycle callbacks (before/after
// agent, on transfer, on error, on state change) support logging and state
// validation without touching agent code.
package engine
