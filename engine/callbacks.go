package engine

import (
	"context"
	"fmt"

	"github.com/Roand-7/Lokaah-sub001/core"
)

// CallbackType names the lifecycle points where the engine executes
// registered callbacks.
type CallbackType string

const (
	// CallbackBeforeAgent fires before an agent begins execution. Returning
	// an error aborts the dispatch.
	CallbackBeforeAgent CallbackType = "before_agent"

	// CallbackAfterAgent fires after an agent finished (success or failure).
	CallbackAfterAgent CallbackType = "after_agent"

	// CallbackOnTransfer fires when the engine hands an invocation to
	// another agent.
	CallbackOnTransfer CallbackType = "on_transfer"

	// CallbackOnError fires when agent execution fails.
	CallbackOnError CallbackType = "on_error"

	// CallbackOnStateChange fires before a state delta is applied.
	// Returning an error rejects the delta and terminates the invocation.
	CallbackOnStateChange CallbackType = "on_state_change"
)

// CallbackContext carries the information available at a callback point.
// Fields not meaningful for a given type are left nil.
type CallbackContext struct {
	// RunContext of the executing agent. Nil for transfer callbacks, which
	// fire between dispatches.
	RunContext *core.RunContext

	// Event being processed, for event-scoped callbacks.
	Event *core.Event

	// AgentID names the agent this callback concerns.
	AgentID string

	// CallbackType is filled in by the engine before execution.
	CallbackType CallbackType

	// Metadata holds extra per-callback details (e.g. "from" on transfers,
	// "error" on failures).
	Metadata map[string]interface{}
}

// Callback is a lifecycle hook. Execute returning an error terminates the
// operation the callback guards.
type Callback interface {
	Type() CallbackType
	Execute(ctx context.Context, callbackCtx *CallbackContext) error
}

// FunctionCallback adapts a plain function to the Callback interface.
type FunctionCallback struct {
	callbackType CallbackType
	fn           func(ctx context.Context, callbackCtx *CallbackContext) error
}

// NewFunctionCallback wraps fn as a callback for the given type.
func NewFunctionCallback(
	callbackType CallbackType,
	fn func(ctx context.Context, callbackCtx *CallbackContext) error,
) *FunctionCallback {
	return &FunctionCallback{callbackType: callbackType, fn: fn}
}

func (c *FunctionCallback) Type() CallbackType { return c.callbackType }

func (c *FunctionCallback) Execute(ctx context.Context, callbackCtx *CallbackContext) error {
	return c.fn(ctx, callbackCtx)
}

// CallbackManager holds registered callbacks keyed by type and executes them
// in registration order. Register everything before starting invocations;
// registration is not synchronized, execution is read-only and safe for
// concurrent use.
type CallbackManager struct {
	callbacks map[CallbackType][]Callback
}

// NewCallbackManager creates an empty manager.
func NewCallbackManager() *CallbackManager {
	return &CallbackManager{callbacks: make(map[CallbackType][]Callback)}
}

// RegisterCallback appends a callback for its declared type.
func (cm *CallbackManager) RegisterCallback(callback Callback) {
	callbackType := callback.Type()
	cm.callbacks[callbackType] = append(cm.callbacks[callbackType], callback)
}

// ExecuteCallbacks runs all callbacks for the given type in order, stopping
// at the first error.
func (cm *CallbackManager) ExecuteCallbacks(
	ctx context.Context,
	callbackType CallbackType,
	callbackCtx *CallbackContext,
) error {
	callbacks, exists := cm.callbacks[callbackType]
	if !exists {
		return nil
	}

	for _, callback := range callbacks {
		if err := callback.Execute(ctx, callbackCtx); err != nil {
			return err
		}
	}

	return nil
}

// LoggingCallback forwards lifecycle events to a log function. Useful for
// tracing which tutor handled which turn without instrumenting the tutors.
type LoggingCallback struct {
	callbackType CallbackType
	logger       func(message string)
}

// NewLoggingCallback creates a logging callback for the given type.
func NewLoggingCallback(callbackType CallbackType, logger func(message string)) *LoggingCallback {
	return &LoggingCallback{callbackType: callbackType, logger: logger}
}

func (c *LoggingCallback) Type() CallbackType { return c.callbackType }

func (c *LoggingCallback) Execute(_ context.Context, callbackCtx *CallbackContext) error {
	if c.logger != nil {
		c.logger(fmt.Sprintf("[%s] agent=%s", c.callbackType, callbackCtx.AgentID))
	}
	return nil
}

// StateValidationCallback validates state deltas before they are applied.
// The validator sees only the changed keys; returning an error rejects the
// event and terminates the invocation.
type StateValidationCallback struct {
	validator func(stateDelta map[string]interface{}) error
}

// NewStateValidationCallback creates a validation callback from a validator
// function.
func NewStateValidationCallback(validator func(stateDelta map[string]interface{}) error) *StateValidationCallback {
	return &StateValidationCallback{validator: validator}
}

func (c *StateValidationCallback) Type() CallbackType { return CallbackOnStateChange }

func (c *StateValidationCallback) Execute(_ context.Context, callbackCtx *CallbackContext) error {
	if c.validator != nil && callbackCtx.Event != nil && callbackCtx.Event.Actions.StateDelta != nil {
		return c.validator(callbackCtx.Event.Actions.StateDelta)
	}
	return nil
}
