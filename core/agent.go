package core

// Agent is the contract every LOKAAH agent implements, from the five tutor
// personas down to composite plan builders. Agents receive their input
// through a RunContext, emit events on its channel, and may manage child
// agents for hierarchical workflows.
//
// Implementations must:
//   - Respect context cancellation for graceful shutdown
//   - Emit events through the provided RunContext
//   - Manage their lifecycle through Start/Stop
type Agent interface {
	Name() string
	Start(runCtx *RunContext) error
	Stop(runCtx *RunContext) error
	Run(runCtx *RunContext) error
	SetSubAgents(children ...Agent) error
	SubAgents() []Agent
	Parent() Agent
	FindAgent(name string) Agent
	Description() string
}

// AgentInfo carries identifying details about an agent used in contexts and
// events. Name is the external identifier; Type categorizes the
// implementation (e.g. "router", "tutor", "composite").
type AgentInfo struct{ Name, Type string }
