package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Roand-7/Lokaah-sub001/artifact"
	"github.com/Roand-7/Lokaah-sub001/core"
	"github.com/Roand-7/Lokaah-sub001/logging"
	"github.com/Roand-7/Lokaah-sub001/memory"
	"github.com/Roand-7/Lokaah-sub001/session"
)

// Config tunes the engine's runtime behavior.
type Config struct {
	// EventBufferSize sets the buffer of the per-invocation event channels.
	EventBufferSize int

	// MaxModelCalls caps LLM turns per invocation. Zero disables the cap.
	MaxModelCalls int

	// MaxTransferHops bounds how many times a single invocation may be
	// re-dispatched via a transfer_to_agent action before it is cut off.
	MaxTransferHops int
}

// DefaultConfig is a reasonable starting point for interactive tutoring:
// enough buffering for a streamed reply plus tool traffic, a model budget
// that allows a couple of tool round-trips, and room for one router hop
// plus a tutor-to-tutor handoff.
var DefaultConfig = Config{
	EventBufferSize: 100,
	MaxModelCalls:   10,
	MaxTransferHops: 4,
}

// Options configures an Engine. All stores default to in-memory
// implementations so the engine works out of the box in tests and the CLI.
type Options struct {
	Config        Config
	SessionStore  core.SessionStore
	ArtifactStore core.ArtifactStore
	MemoryStore   core.MemoryStore
	Logger        logging.Logger
	Callbacks     *CallbackManager
}

// WithConfig overrides the engine configuration.
func WithConfig(cfg Config) func(o *Options) {
	return func(o *Options) { o.Config = cfg }
}

// WithSessionStore sets the session persistence backend.
func WithSessionStore(s core.SessionStore) func(o *Options) {
	return func(o *Options) { o.SessionStore = s }
}

// WithArtifactStore sets the artifact storage backend.
func WithArtifactStore(s core.ArtifactStore) func(o *Options) {
	return func(o *Options) { o.ArtifactStore = s }
}

// WithMemoryStore sets the memory/recall backend.
func WithMemoryStore(s core.MemoryStore) func(o *Options) {
	return func(o *Options) { o.MemoryStore = s }
}

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = l }
}

// WithCallbacks sets the lifecycle callback manager.
func WithCallbacks(cm *CallbackManager) func(o *Options) {
	return func(o *Options) { o.Callbacks = cm }
}

// Engine orchestrates tutor execution: it owns the agent registry, runs each
// invocation on its own goroutine, applies event actions (state deltas,
// artifacts, transfers, escalations) to the backing stores, persists
// non-partial events to session history, and signals the emitting agent to
// resume only after persistence succeeded. That ordering is what lets tutors
// read their own prior turns back out of the session.
//
// A transfer_to_agent action does not merely get logged: once the current
// agent finishes, the engine dispatches the same user content to the named
// agent inside the same invocation, up to Config.MaxTransferHops times.
type Engine struct {
	sessionStore  core.SessionStore
	artifactStore core.ArtifactStore
	memoryStore   core.MemoryStore
	logger        logging.Logger
	callbacks     *CallbackManager

	config Config

	agents map[string]core.Agent
	mu     sync.RWMutex

	activeRuns map[string]context.CancelFunc
	runsMu     sync.Mutex
}

// New creates an Engine with in-memory defaults for every store.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config:        DefaultConfig,
		SessionStore:  session.NewInMemoryStore(),
		ArtifactStore: artifact.NewInMemoryStore(),
		MemoryStore:   memory.NewInMemoryStore(),
		Logger:        logging.NoOpLogger{},
		Callbacks:     NewCallbackManager(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Engine{
		sessionStore:  opts.SessionStore,
		artifactStore: opts.ArtifactStore,
		memoryStore:   opts.MemoryStore,
		logger:        opts.Logger,
		callbacks:     opts.Callbacks,
		config:        opts.Config,
		agents:        make(map[string]core.Agent),
		activeRuns:    make(map[string]context.CancelFunc),
	}
}

// Register adds an agent to the registry under its own name, replacing any
// previous agent with that name.
func (e *Engine) Register(a core.Agent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.agents[a.Name()] = a
}

// GetAgent looks up a registered agent by name.
func (e *Engine) GetAgent(name string) (core.Agent, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	a, ok := e.agents[name]
	return a, ok
}

// AgentNames returns the names of all registered agents.
func (e *Engine) AgentNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.agents))
	for name := range e.agents {
		names = append(names, name)
	}
	return names
}

// Invoke executes the named agent asynchronously against the given session.
// It returns the invocation id, a channel streaming events as the agent
// produces them, and a one-shot error channel for terminal failures. Both
// channels are closed when the invocation completes.
func (e *Engine) Invoke(
	ctx context.Context,
	sessionID string,
	agentName string,
	userContent core.Content,
) (string, <-chan core.Event, <-chan error, error) {
	agent, ok := e.GetAgent(agentName)
	if !ok {
		return "", nil, nil, fmt.Errorf("agent %s not found", agentName)
	}

	sess, err := e.sessionStore.Get(sessionID)
	if err != nil {
		return "", nil, nil, fmt.Errorf("failed to get session: %w", err)
	}

	invocationID := uuid.NewString()

	eventsCh := make(chan core.Event, e.config.EventBufferSize)
	errorsCh := make(chan error, 1)

	invocationCtx, cancel := context.WithCancel(ctx)

	e.runsMu.Lock()
	e.activeRuns[invocationID] = cancel
	e.runsMu.Unlock()

	userEvent := core.NewUserContentEvent(invocationID, &userContent)
	if err := e.sessionStore.AppendEvent(sessionID, userEvent); err != nil {
		cancel()
		e.runsMu.Lock()
		delete(e.activeRuns, invocationID)
		e.runsMu.Unlock()
		return "", nil, nil, fmt.Errorf("failed to append user event: %w", err)
	}

	go func() {
		defer func() {
			close(eventsCh)
			close(errorsCh)
			cancel()
			e.runsMu.Lock()
			delete(e.activeRuns, invocationID)
			e.runsMu.Unlock()
		}()

		current := agent
		for hop := 0; ; hop++ {
			next, err := e.dispatch(invocationCtx, sessionID, invocationID, current, userContent, sess, eventsCh)
			if err != nil {
				if invocationCtx.Err() == nil {
					errorsCh <- err
				}
				return
			}
			if next == "" {
				return
			}
			if hop+1 >= e.config.MaxTransferHops {
				e.logger.Warn("engine.transfer.hop_limit", "invocation_id", invocationID, "target", next)
				return
			}

			target, ok := e.GetAgent(next)
			if !ok {
				errorsCh <- fmt.Errorf("transfer target %s not found", next)
				return
			}

			e.fireCallbacks(invocationCtx, CallbackOnTransfer, &CallbackContext{
				AgentID:  target.Name(),
				Metadata: map[string]interface{}{"from": current.Name()},
			})
			e.logger.Info("engine.transfer", "invocation_id", invocationID, "from", current.Name(), "to", next)

			// The target sees the session as it stands after the handing-off
			// agent's events were persisted.
			if latest, err := e.sessionStore.Get(sessionID); err == nil && latest != nil {
				sess = latest
			}
			current = target
		}
	}()

	return invocationID, eventsCh, errorsCh, nil
}

// InvokeSync executes the named agent and blocks until completion, returning
// every event the invocation produced.
func (e *Engine) InvokeSync(
	ctx context.Context,
	sessionID string,
	agentName string,
	userContent core.Content,
) (string, []core.Event, error) {
	invocationID, eventsCh, errorsCh, err := e.Invoke(ctx, sessionID, agentName, userContent)
	if err != nil {
		return "", nil, err
	}

	var events []core.Event
	for {
		select {
		case <-ctx.Done():
			return invocationID, events, ctx.Err()

		case event, ok := <-eventsCh:
			if !ok {
				select {
				case err := <-errorsCh:
					return invocationID, events, err
				default:
					return invocationID, events, nil
				}
			}
			events = append(events, event)

		case err := <-errorsCh:
			if err != nil {
				return invocationID, events, err
			}
		}
	}
}

// StopInvocation cancels a running invocation by id.
func (e *Engine) StopInvocation(invocationID string) error {
	e.runsMu.Lock()
	cancel, exists := e.activeRuns[invocationID]
	e.runsMu.Unlock()

	if !exists {
		return fmt.Errorf("invocation %s not found", invocationID)
	}

	cancel()
	return nil
}

// GetSession returns a snapshot of the session by id.
func (e *Engine) GetSession(sessionID string) (*core.Session, error) {
	return e.sessionStore.Get(sessionID)
}

// dispatch runs one agent to completion inside an invocation and processes
// its event stream. It returns the transfer target requested via event
// actions, or "" when the agent finished without a handoff.
func (e *Engine) dispatch(
	ctx context.Context,
	sessionID, invocationID string,
	agent core.Agent,
	userContent core.Content,
	sess *core.Session,
	eventsCh chan<- core.Event,
) (string, error) {
	agentEmit := make(chan core.Event, e.config.EventBufferSize)
	resumeCh := make(chan struct{}, 1)
	runErrCh := make(chan error, 1)

	runCtx := core.NewRunContext(
		ctx,
		sessionID,
		invocationID,
		core.AgentInfo{Name: agent.Name(), Type: agentKind(agent)},
		userContent,
		e.config.MaxModelCalls,
		agentEmit,
		resumeCh,
		sess,
		e.sessionStore,
		e.artifactStore,
		e.memoryStore,
		e.logger,
	)

	go func() {
		defer close(agentEmit)
		runErrCh <- e.runAgent(runCtx, agent)
	}()

	transferTo := ""

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()

		case ev, ok := <-agentEmit:
			if !ok {
				if err := <-runErrCh; err != nil {
					e.fireCallbacks(ctx, CallbackOnError, &CallbackContext{
						AgentID:  agent.Name(),
						Metadata: map[string]interface{}{"error": err.Error()},
					})
					return "", fmt.Errorf("agent execution failed: %w", err)
				}
				return transferTo, nil
			}

			if target, err := e.applyEventActions(ctx, sessionID, ev); err != nil {
				return "", fmt.Errorf("failed to process event actions: %w", err)
			} else if target != "" {
				transferTo = target
			}

			if !ev.IsPartial() {
				if err := e.sessionStore.AppendEvent(sessionID, ev); err != nil {
					return "", fmt.Errorf("failed to append event to session: %w", err)
				}
			}

			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case eventsCh <- ev:
				e.logger.Debug("engine.event.delivered", "event_id", ev.ID, "session_id", sessionID, "author", ev.Author)
			}

			// Resume is the agent's signal that the event landed in history.
			if !ev.IsPartial() {
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case resumeCh <- struct{}{}:
				default:
				}
			}
		}
	}
}

func (e *Engine) runAgent(runCtx *core.RunContext, agent core.Agent) error {
	if err := e.fireCallbacks(runCtx.Context, CallbackBeforeAgent, &CallbackContext{RunContext: runCtx, AgentID: agent.Name()}); err != nil {
		return err
	}

	if err := agent.Start(runCtx); err != nil {
		return err
	}
	defer func() {
		if err := agent.Stop(runCtx); err != nil {
			e.logger.Warn("engine.agent.stop.error", "agent", agent.Name(), "error", err.Error())
		}
		e.fireCallbacks(runCtx.Context, CallbackAfterAgent, &CallbackContext{RunContext: runCtx, AgentID: agent.Name()})
	}()

	return agent.Run(runCtx)
}

// applyEventActions applies the side effects carried on an event and returns
// any requested transfer target.
func (e *Engine) applyEventActions(ctx context.Context, sessionID string, ev core.Event) (string, error) {
	if len(ev.Actions.StateDelta) > 0 {
		if err := e.fireCallbacks(ctx, CallbackOnStateChange, &CallbackContext{Event: &ev, AgentID: ev.Author}); err != nil {
			return "", err
		}
		if err := e.sessionStore.ApplyDelta(sessionID, ev.Actions.StateDelta); err != nil {
			return "", fmt.Errorf("failed to apply state delta: %w", err)
		}
	}

	if ev.Actions.EndSession != nil && *ev.Actions.EndSession {
		if err := e.sessionStore.ApplyDelta(sessionID, map[string]interface{}{core.StateKeyClosed: true}); err != nil {
			return "", fmt.Errorf("failed to close session: %w", err)
		}
	}

	if ev.Actions.Escalate != nil && *ev.Actions.Escalate {
		e.logger.Warn("engine.event.escalate", "session_id", sessionID, "author", ev.Author)
	}

	transferTo := ""
	if ev.Actions.TransferToAgent != nil && *ev.Actions.TransferToAgent != "" {
		transferTo = *ev.Actions.TransferToAgent
	}

	return transferTo, nil
}

func (e *Engine) fireCallbacks(ctx context.Context, t CallbackType, cbCtx *CallbackContext) error {
	if e.callbacks == nil {
		return nil
	}
	cbCtx.CallbackType = t
	if err := e.callbacks.ExecuteCallbacks(ctx, t, cbCtx); err != nil {
		return fmt.Errorf("callback %s failed: %w", t, err)
	}
	return nil
}

// agentKind derives the AgentInfo type from the agent's shape.
func agentKind(a core.Agent) string {
	if len(a.SubAgents()) > 0 {
		return "composite"
	}
	return "tutor"
}
