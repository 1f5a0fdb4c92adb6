// Package tool implements the function calling subsystem that lets tutors
// invoke structured capabilities (question generation, answer checking,
// hints, worksheets) with schema-validated arguments and consistent error
// handling.
package tool

import (
	"fmt"

	"github.com/Roand-7/Lokaah-sub001/core"
	"github.com/Roand-7/Lokaah-sub001/internal/util"
)

// Tool is the interface every callable capability implements. Tools receive a
// *core.ToolContext giving access to session state, flow control signals
// (transfer, escalate, end session), memory and artifacts.
//
// Implementations should use snake_case names, declare a minimal JSON schema
// for their parameters, and be safe for concurrent use.
type Tool interface {
	// Name returns the unique tool identifier used in function call routing.
	Name() string

	// Description is shown to models so they know when to call the tool.
	Description() string

	// Parameters returns a JSON schema describing the accepted arguments.
	Parameters() map[string]any

	// Call executes the tool with validated arguments.
	Call(toolCtx *core.ToolContext, args map[string]any) (any, error)
}

// ValidationError reports a schema/argument mismatch.
type ValidationError = util.ValidationError

// ToolError is the uniform error type surfaced by tool execution.
type ToolError struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a ToolError with the given code.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}
