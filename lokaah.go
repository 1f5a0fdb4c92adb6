// Package lokaah wires the tutoring stack together: the oracle question
// engine, the five tutors behind the keyword router, session and memory
// stores, the model backend and the orchestration engine. It is the single
// entry point the CLI and embedding applications use.
package lokaah

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/Roand-7/Lokaah-sub001/agent"
	"github.com/Roand-7/Lokaah-sub001/config"
	"github.com/Roand-7/Lokaah-sub001/core"
	"github.com/Roand-7/Lokaah-sub001/engine"
	"github.com/Roand-7/Lokaah-sub001/logging"
	"github.com/Roand-7/Lokaah-sub001/model"
	"github.com/Roand-7/Lokaah-sub001/model/anthropic"
	"github.com/Roand-7/Lokaah-sub001/model/openai"
	"github.com/Roand-7/Lokaah-sub001/oracle"
	"github.com/Roand-7/Lokaah-sub001/session"
)

// Options customizes construction beyond what the config file covers.
type Options struct {
	// Logger overrides the config-derived logger.
	Logger logging.Logger
	// Model overrides the config-selected model backend.
	Model model.Model
	// SessionStore overrides the config-selected session store.
	SessionStore core.SessionStore
	// OracleSeed pins question generation for reproducible runs. Zero keeps
	// the time-based seed.
	OracleSeed int64
}

// Tutor is the assembled tutoring service.
type Tutor struct {
	cfg    *config.Config
	engine *engine.Engine
	oracle *oracle.Engine
	logger logging.Logger
	redis  *redis.Client
}

// New assembles a Tutor from configuration.
func New(cfg *config.Config, optFns ...func(o *Options)) (*Tutor, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewSlogLogger(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format, false)
	}

	t := &Tutor{cfg: cfg, logger: logger}

	store := opts.SessionStore
	if store == nil {
		var err error
		store, err = t.buildSessionStore()
		if err != nil {
			return nil, err
		}
	}

	llm := opts.Model
	if llm == nil {
		var err error
		llm, err = buildModel(cfg)
		if err != nil {
			return nil, err
		}
	}

	t.oracle = oracle.NewEngine(func(o *oracle.EngineOptions) {
		if opts.OracleSeed != 0 {
			o.Seed = opts.OracleSeed
		}
	})

	veda := agent.NewVeda(func(o *agent.VedaOptions) {
		if llm != nil {
			o.Model = llm
			o.Oracle = t.oracle
		}
	})
	oracleTutor := agent.NewOracleTutor(t.oracle)
	spark := agent.NewSpark(t.oracle)
	atlas := agent.NewAtlas(t.oracle.Registry())
	pulse := agent.NewPulse()

	router, err := agent.NewRouter(veda, oracleTutor, spark, atlas, pulse)
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	t.engine = engine.New(
		engine.WithConfig(engine.Config{
			EventBufferSize: cfg.Engine.EventBufferSize,
			MaxModelCalls:   cfg.Engine.MaxModelCalls,
			MaxTransferHops: cfg.Engine.MaxTransferHops,
		}),
		engine.WithSessionStore(store),
		engine.WithLogger(logger),
	)

	// The router is the entry agent; the tutors register individually so
	// transfer actions can target them by name.
	t.engine.Register(router)
	for _, a := range []core.Agent{veda, oracleTutor, spark, atlas, pulse} {
		t.engine.Register(a)
	}

	return t, nil
}

// buildSessionStore selects Redis or in-memory per configuration.
func (t *Tutor) buildSessionStore() (core.SessionStore, error) {
	if !t.cfg.Redis.Enabled {
		return session.NewInMemoryStore(), nil
	}

	ropts, err := redis.ParseURL(t.cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	t.redis = redis.NewClient(ropts)
	return session.NewRedisStore(t.redis, func(o *session.RedisStoreOptions) {
		o.TTL = t.cfg.Redis.TTL.Std()
		if t.cfg.Redis.KeyPrefix != "" {
			o.KeyPrefix = t.cfg.Redis.KeyPrefix
		}
	}), nil
}

// buildModel constructs the configured model backend. The scripted provider
// returns nil so VEDA stays fully deterministic offline.
func buildModel(cfg *config.Config) (model.Model, error) {
	switch cfg.Model.Provider {
	case "scripted":
		return nil, nil

	case "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			if cfg.Model.Name != "" {
				o.Model = anthropicsdk.Model(cfg.Model.Name)
			}
			o.APIKey = cfg.Model.APIKey
			o.Temperature = cfg.Model.Temperature
			o.MaxTokens = cfg.Model.MaxTokens
		}), nil

	case "openai":
		var clientOpts []option.RequestOption
		if cfg.Model.APIKey != "" {
			clientOpts = append(clientOpts, option.WithAPIKey(cfg.Model.APIKey))
		}
		client := openaisdk.NewClient(clientOpts...)
		return openai.NewModelFromClient(&client, func(o *openai.Options) {
			if cfg.Model.Name != "" {
				o.Model = cfg.Model.Name
			}
			o.Temperature = cfg.Model.Temperature
			o.MaxCompletionTokens = cfg.Model.MaxTokens
		}), nil
	}

	return nil, fmt.Errorf("unknown model provider %q", cfg.Model.Provider)
}

// Chat sends one student message into the session and returns the events the
// tutors produced, in order.
func (t *Tutor) Chat(ctx context.Context, sessionID, text string) ([]core.Event, error) {
	_, events, err := t.engine.InvokeSync(ctx, sessionID, agent.NameRouter, core.NewTextContent("user", text))
	return events, err
}

// Ask answers a single question in a throwaway session and returns the final
// reply text.
func (t *Tutor) Ask(ctx context.Context, text string) (string, error) {
	events, err := t.Chat(ctx, "ask-"+uuid.NewString(), text)
	if err != nil {
		return "", err
	}

	for i := len(events) - 1; i >= 0; i-- {
		if reply := events[i].Text(); reply != "" {
			return reply, nil
		}
	}
	return "", fmt.Errorf("no reply produced")
}

// SessionClosed reports whether the student said goodbye in this session.
func (t *Tutor) SessionClosed(sessionID string) bool {
	sess, err := t.engine.GetSession(sessionID)
	if err != nil || sess == nil {
		return false
	}

	v, ok := sess.GetState(core.StateKeyClosed)
	if !ok {
		return false
	}
	closed, _ := v.(bool)
	return closed
}

// Patterns returns the sorted ids of every registered question pattern.
func (t *Tutor) Patterns() []string { return t.oracle.Registry().ListPatterns() }

// Topics returns the topics covered by the question registry.
func (t *Tutor) Topics() []string { return t.oracle.Registry().Topics() }

// PatternCount returns the number of registered question patterns.
func (t *Tutor) PatternCount() int { return t.oracle.Registry().Count() }

// Engine exposes the orchestration engine for advanced callers (custom
// callbacks, direct tutor invocation).
func (t *Tutor) Engine() *engine.Engine { return t.engine }

// Oracle exposes the question engine.
func (t *Tutor) Oracle() *oracle.Engine { return t.oracle }

// Close releases backend connections.
func (t *Tutor) Close() error {
	if t.redis != nil {
		return t.redis.Close()
	}
	return nil
}
