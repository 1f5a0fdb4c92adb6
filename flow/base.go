package flow

import (
	"fmt"

	"github.com/Roand-7/Lokaah-sub001/core"
	"github.com/Roand-7/Lokaah-sub001/model"
	"github.com/Roand-7/Lokaah-sub001/tool"
)

// BaseFlow is a single-agent flow implementation supporting a request ->
// LLM -> (optional tool loop) cycle with pluggable pre/post processors. Tool
// batches run through a FunctionExecutor so parallel calls and panic recovery
// are handled uniformly.
type BaseFlow struct {
	agent              FlowAgent
	requestProcessors  []RequestProcessor
	responseProcessors []ResponseProcessor
	executor           FunctionExecutor
}

// NewBaseFlow creates a new basic single-agent flow.
func NewBaseFlow(agent FlowAgent) *BaseFlow {
	return &BaseFlow{
		agent:              agent,
		requestProcessors:  []RequestProcessor{},
		responseProcessors: []ResponseProcessor{},
		executor:           NewParallelFunctionExecutor(FunctionExecutorConfig{PreserveOrder: true}),
	}
}

// AddRequestProcessor appends a request processor; registration order defines
// execution order.
func (f *BaseFlow) AddRequestProcessor(processor RequestProcessor) {
	f.requestProcessors = append(f.requestProcessors, processor)
}

// AddResponseProcessor appends a response processor executed after each model
// chunk.
func (f *BaseFlow) AddResponseProcessor(processor ResponseProcessor) {
	f.responseProcessors = append(f.responseProcessors, processor)
}

// Execute launches the flow asynchronously and returns a channel of Events.
// The channel is closed when a final response is emitted or an unrecoverable
// error occurs. Callers should range over the returned channel.
func (f *BaseFlow) Execute(runCtx *core.RunContext) (<-chan core.Event, error) {
	eventChan := make(chan core.Event, 100)

	go func() {
		defer close(eventChan)

		for {
			last := f.runOnce(runCtx, eventChan)
			if last == nil {
				break
			}
			// A function response means the model gets another turn
			if len(last.GetFunctionResponses()) > 0 {
				continue
			}
			if last.IsPartial() {
				runCtx.LogWarn("flow.final.partial", "agent", f.agent.GetName())
				break
			}
			if last.IsFinalResponse() {
				break
			}
		}
	}()

	return eventChan, nil
}

// emitError converts an internal error to a system Event.
func (f *BaseFlow) emitError(eventChan chan<- core.Event, err error) {
	ev := core.NewEvent("", "system")
	msg := err.Error()
	ev.ErrorMessage = &msg
	eventChan <- ev
}

// runOnce performs one model turn (including any tool executions) and returns
// the last emitted Event. A nil return signals termination.
func (f *BaseFlow) runOnce(runCtx *core.RunContext, eventChan chan<- core.Event) *core.Event {
	// Refresh the session snapshot so request processors see the latest
	// conversation, including tool responses from the previous turn.
	if runCtx.SessionStore != nil {
		if latest, err := runCtx.SessionStore.Get(runCtx.SessionID); err == nil && latest != nil {
			runCtx.Session = latest
		}
	}

	req := new(model.Request)
	req.Stream = f.agent.IsStreamingEnabled()

	for _, processor := range f.requestProcessors {
		if err := processor.ProcessRequest(runCtx, req, f.agent); err != nil {
			f.emitError(eventChan, fmt.Errorf("request processor %s failed: %w", processor.Name(), err))
			return nil
		}
	}

	tools := make(map[string]tool.Tool, len(f.agent.GetTools())+1)
	for name, t := range f.agent.GetTools() {
		tools[name] = t
	}

	transfer := tool.NewTransferToAgentTool()
	if f.agent.IsTransferEnabled() && len(f.agent.GetSubAgents()) > 0 {
		// The injected transfer_to_agent definition needs a live tool behind
		// it; the engine interprets the resulting event action.
		tools[transfer.Name()] = transfer
	}

	if f.agent.IsFunctionCallingEnabled() {
		for name, t := range tools {
			if name == transfer.Name() {
				continue // definition injected by TransferToolInjector
			}
			req.Tools = append(req.Tools, model.ToolDefinition{
				Type: "function",
				Function: model.FunctionDefinition{
					Name:        t.Name(),
					Description: t.Description(),
					Parameters:  t.Parameters(),
				},
			})
		}
	}

	if runCtx.Limiter != nil {
		if err := runCtx.Limiter.Increment(); err != nil {
			f.emitError(eventChan, err)
			return nil
		}
	}

	llm := f.agent.GetLLM()

	respCh, errCh := llm.Generate(runCtx.Context, *req)

	var lastEvent *core.Event

loop:
	for {
		select {
		case resp, ok := <-respCh:
			if !ok {
				break loop
			}

			for _, processor := range f.responseProcessors {
				if err := processor.ProcessResponse(runCtx, &resp, f.agent); err != nil {
					f.emitError(eventChan, fmt.Errorf("response processor %s failed: %w", processor.Name(), err))
					return nil
				}
			}

			ev := core.NewEvent(runCtx.RunID, f.agent.GetName())
			ev.Content = &resp.Content
			ev.Partial = &resp.Partial

			// Turn complete if this is a final assistant response with no
			// pending tool calls
			if !resp.Partial && len(ev.GetFunctionCalls()) == 0 {
				complete := true
				ev.TurnComplete = &complete

				if key := f.agent.GetOutputKey(); key != "" {
					if ev.Actions.StateDelta == nil {
						ev.Actions.StateDelta = map[string]any{}
					}
					ev.Actions.StateDelta[key] = resp.Content.FirstText()
				}
			}

			lastEvent = &ev

			eventChan <- ev

			// Wait for session persistence (engine sends resume after append)
			if !ev.IsPartial() && runCtx.Resume != nil {
				select {
				case <-runCtx.Context.Done():
					return lastEvent
				case <-runCtx.Resume:
				}
			}

			if fnCalls := ev.GetFunctionCalls(); len(fnCalls) > 0 {
				emit := func(respEv core.Event) error {
					respEv.RunID = runCtx.RunID
					lastEvent = &respEv
					eventChan <- respEv

					if runCtx.Resume != nil {
						select {
						case <-runCtx.Context.Done():
							return runCtx.Context.Err()
						case <-runCtx.Resume:
						}
					}
					return nil
				}

				f.executor.Execute(runCtx, f.agent, tools, fnCalls, emit)
			}
		case err, ok := <-errCh:
			if !ok {
				// Keep draining respCh; providers close both channels together.
				errCh = nil
				continue
			}
			if err != nil {
				runCtx.LogError("flow.model.error", "agent", f.agent.GetName(), "error", err.Error())
				f.emitError(eventChan, err)
				return nil
			}
		}
	}

	return lastEvent
}
