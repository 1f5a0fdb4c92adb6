package agent

import (
	"errors"
	"fmt"
	"time"

	"github.com/Roand-7/Lokaah-sub001/core"
)

// ErrEscalated is returned when a child agent signals escalation.
var ErrEscalated = errors.New("child agent escalated")

// LoopAgent coordinates the repeated execution of a child agent with
// configurable termination controls: maximum iterations, an output predicate,
// interval timing and escalation monitoring. SPARK uses it to drive challenge
// rounds until the student misses or bails out.
type LoopAgent struct {
	BaseAgent
	child       core.Agent
	maxIters    int
	interval    time.Duration
	stopOnError bool
	predicate   func(string) bool
}

// NewLoopAgent constructs a looping coordinator around a child agent.
// Defaults: 100 iterations, no interval, stop on first error.
func NewLoopAgent(name string, child core.Agent, opts ...LoopOption) *LoopAgent {
	la := &LoopAgent{
		BaseAgent:   NewBaseAgent(name),
		child:       child,
		maxIters:    100,
		interval:    0,
		stopOnError: true,
	}

	for _, o := range opts {
		o(la)
	}

	return la
}

// LoopOption configures LoopAgent behavior.
type LoopOption func(*LoopAgent)

// WithMaxIters sets the maximum number of iterations for the loop. The loop
// terminates after this many iterations even if no other condition fires.
func WithMaxIters(n int) LoopOption {
	return func(l *LoopAgent) { l.maxIters = n }
}

// WithInterval sets the delay between loop iterations. Zero means no delay.
func WithInterval(d time.Duration) LoopOption {
	return func(l *LoopAgent) { l.interval = d }
}

// WithPredicate sets a termination condition evaluated against the text of
// each final (non-partial) event the child emits. Returning true ends the
// loop after the current iteration.
//
// Example:
//
//	WithPredicate(func(output string) bool {
//	    return strings.Contains(output, "streak over")
//	})
func WithPredicate(pred func(string) bool) LoopOption {
	return func(l *LoopAgent) { l.predicate = pred }
}

// WithStopOnError controls whether a child error aborts the loop (default) or
// is logged and skipped.
func WithStopOnError(stop bool) LoopOption {
	return func(l *LoopAgent) { l.stopOnError = stop }
}

// Run implements core.Agent performing iterative execution with escalation
// detection. The same RunContext is shared across iterations so the child
// accumulates session state. A child event with Escalate=true terminates the
// loop early with a nil error.
func (l *LoopAgent) Run(runCtx *core.RunContext) error {
	for i := 0; i < l.maxIters; i++ {
		select {
		case <-runCtx.Done():
			return runCtx.Err()
		default:
		}

		runCtx.LogDebug("agent.loop.iteration", "agent", l.Name(), "iteration", i+1)

		lastText, childErr := l.runChildWithMonitoring(runCtx)

		if errors.Is(childErr, ErrEscalated) {
			runCtx.LogInfo("agent.loop.escalated", "agent", l.Name(), "iteration", i+1)
			return nil // escalation is early termination, not an error
		}

		if childErr != nil {
			if l.stopOnError {
				return fmt.Errorf("loop iteration %d failed for agent %s: %w", i+1, l.child.Name(), childErr)
			}
			runCtx.LogWarn("agent.loop.iteration.error", "agent", l.Name(), "iteration", i+1, "error", childErr.Error())
		}

		if l.predicate != nil && l.predicate(lastText) {
			runCtx.LogDebug("agent.loop.predicate.stop", "agent", l.Name(), "iteration", i+1)
			return nil
		}

		if l.interval > 0 && i < l.maxIters-1 {
			select {
			case <-runCtx.Done():
				return runCtx.Err()
			case <-time.After(l.interval):
			}
		}
	}

	runCtx.LogDebug("agent.loop.complete", "agent", l.Name(), "iterations", l.maxIters)

	return nil
}

// runChildWithMonitoring executes the child while intercepting emitted events
// to detect escalation flags and capture final text output before forwarding
// to the parent context. Returns the text of the last non-partial event.
func (l *LoopAgent) runChildWithMonitoring(runCtx *core.RunContext) (string, error) {
	interceptChan := make(chan core.Event, 10)
	resumeChan := make(chan struct{}, 10)
	childCtx := runCtx.NewChildContext(interceptChan, resumeChan, runCtx.Branch)

	done := make(chan error, 1)

	go func() {
		done <- l.child.Run(childCtx)
	}()

	var lastText string

	// forward relays one child event to the parent context, keeping resume
	// accounting balanced: the engine's resume for the forwarded event is
	// consumed before the caller releases the child. Reports whether the
	// event carried an escalation flag.
	forward := func(event core.Event) (bool, error) {
		if !event.IsPartial() {
			if text := event.Text(); text != "" {
				lastText = text
			}
		}

		if err := runCtx.EmitEvent(event); err != nil {
			return false, err
		}

		if !event.IsPartial() {
			if err := runCtx.WaitForResume(); err != nil {
				return false, err
			}
		}

		escalated := event.Actions.Escalate != nil && *event.Actions.Escalate
		if escalated {
			runCtx.LogDebug("agent.loop.escalation_event", "agent", l.Name())
		}
		return escalated, nil
	}

	for {
		select {
		case event := <-interceptChan:
			escalated, err := forward(event)
			if err != nil {
				return lastText, err
			}

			select {
			case resumeChan <- struct{}{}:
			case <-runCtx.Done():
				return lastText, runCtx.Err()
			}

			if escalated {
				<-done
				return lastText, ErrEscalated
			}

		case err := <-done:
			// The child can exit with events still buffered. Drain them so
			// nothing the student should see is dropped.
			for {
				select {
				case event := <-interceptChan:
					escalated, ferr := forward(event)
					if ferr != nil {
						return lastText, ferr
					}
					if escalated {
						return lastText, ErrEscalated
					}
				default:
					return lastText, err
				}
			}

		case <-runCtx.Done():
			return lastText, runCtx.Err()
		}
	}
}

// CreateEscalationEvent constructs an event with the escalation flag set.
// Tutors use it when a situation needs a human teacher (PULSE on repeated
// distress).
func CreateEscalationEvent(runID, author string, content *core.Content) core.Event {
	escalate := true
	ev := core.NewEvent(runID, author)
	ev.Actions.Escalate = &escalate
	ev.Content = content
	return ev
}
