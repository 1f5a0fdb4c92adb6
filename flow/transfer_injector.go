package flow

import (
	"strings"

	"github.com/Roand-7/Lokaah-sub001/core"
	"github.com/Roand-7/Lokaah-sub001/model"
	"github.com/Roand-7/Lokaah-sub001/tool"
)

// TransferToolInjector adds the transfer_to_agent tool definition to the
// request when the agent can hand off to sub-agents. The definition lists the
// candidate tutor names so the model picks a valid target. Injection is
// idempotent per request.
type TransferToolInjector struct{}

// NewTransferToolInjector creates a new transfer tool injector.
func NewTransferToolInjector() *TransferToolInjector { return &TransferToolInjector{} }

// Name returns the processor's identifier.
func (p *TransferToolInjector) Name() string { return "transfer_tool_injector" }

// ProcessRequest injects the transfer tool definition when applicable.
func (p *TransferToolInjector) ProcessRequest(runCtx *core.RunContext, req *model.Request, agent FlowAgent) error {
	if !agent.IsTransferEnabled() {
		return nil
	}

	subAgents := agent.GetSubAgents()
	if len(subAgents) == 0 {
		return nil
	}

	transferTool := tool.NewTransferToAgentTool()

	for _, td := range req.Tools {
		if td.Function.Name == transferTool.Name() {
			return nil
		}
	}

	names := make([]string, 0, len(subAgents))
	for _, sub := range subAgents {
		names = append(names, sub.GetName())
	}

	req.Tools = append(req.Tools, model.ToolDefinition{
		Type: "function",
		Function: model.FunctionDefinition{
			Name:        transferTool.Name(),
			Description: transferTool.Description() + " Available agents: " + strings.Join(names, ", ") + ".",
			Parameters:  transferTool.Parameters(),
		},
	})

	runCtx.LogDebug("agent.transfer_tool.injected", "agent", agent.GetName(), "targets", strings.Join(names, ","))

	return nil
}
