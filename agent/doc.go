// Package agent contains the tutor implementations and the supporting
// building blocks they are assembled from:
//
//  1. Base lifecycle + hierarchy plumbing (BaseAgent)
//  2. Coordination patterns (SequentialAgent, LoopAgent)
//  3. Model-centric conversational / tool-calling agent (ModelAgent)
//  4. The LOKAAH roster: Router plus the VEDA, ORACLE, SPARK, ATLAS and
//     PULSE tutors
//
// Design principles:
//   - Minimal hidden global state; explicit wiring via Engine/RunContext
//   - Composability; agents nest arbitrarily using SetSubAgents / FindAgent
//   - Observability; logging hooks at routing, flow selection and tool calls
//   - Extensibility; embed BaseAgent and implement Run plus any custom API
//
// Execution model:
//   - An agent's Run receives a *core.RunContext (shared or cloned)
//   - Composite agents (sequential / loop) coordinate child Runs
//   - ModelAgent integrates with model, tool and flow packages to stream events
//   - Tutors answer deterministically through the oracle engine tools, with an
//     optional model for open-ended teaching text
//
// Persistence, model specifics and tool registry abstractions live in their
// own packages to avoid cyclic dependencies.
package agent
