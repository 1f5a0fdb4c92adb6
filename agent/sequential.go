package agent

import (
	"fmt"

	"github.com/Roand-7/Lokaah-sub001/core"
)

// SequentialAgent coordinates the execution of multiple child agents in
// order, passing accumulated session state between them. ATLAS uses it to
// walk a study plan step by step: each step's output becomes available to the
// steps after it.
type SequentialAgent struct {
	BaseAgent
	children []core.Agent
}

// NewSequentialAgent creates a sequential execution coordinator over the
// given children, executed in the order supplied.
func NewSequentialAgent(name string, children ...core.Agent) *SequentialAgent {
	return &SequentialAgent{
		BaseAgent: NewBaseAgent(name),
		children:  children,
	}
}

// Run implements core.Agent. It executes each child agent in order with the
// shared run context; errors stop further processing immediately.
func (s *SequentialAgent) Run(runCtx *core.RunContext) error {
	for _, child := range s.children {
		if err := child.Run(runCtx); err != nil {
			return fmt.Errorf("sequential execution failed at agent %s: %w", child.Name(), err)
		}
	}

	return nil
}
