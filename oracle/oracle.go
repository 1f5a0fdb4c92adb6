// Package oracle implements the question generation engine behind the ORACLE
// and SPARK tutors. It maintains a registry of parameterized question
// patterns, each with generation logic, worked solution steps, a three-level
// hint ladder and difficulty/marks metadata. Generated questions carry a
// content hash so a student is never served the same instance twice within a
// session.
package oracle

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
)

// Difficulty grades a pattern for routing between practice and challenge.
type Difficulty string

const (
	// Easy questions suit warm-up practice (1-2 marks).
	Easy Difficulty = "easy"
	// Medium questions are standard practice material (3-4 marks).
	Medium Difficulty = "medium"
	// Hard questions back the SPARK challenge mode (5-6 marks).
	Hard Difficulty = "hard"
)

// Question is a single generated instance of a pattern: rendered text, the
// expected answer, worked solution steps, the hint ladder and the concrete
// parameter values that produced it.
type Question struct {
	PatternID  string         `json:"pattern_id"`
	Topic      string         `json:"topic"`
	Difficulty Difficulty     `json:"difficulty"`
	Marks      int            `json:"marks"`
	Text       string         `json:"text"`
	Answer     string         `json:"answer"`
	Steps      []string       `json:"steps"`
	Hints      [HintLevels]string `json:"hints"`
	Params     map[string]any `json:"params,omitempty"`
}

// Hash returns a stable identity for this question instance covering the
// pattern id and the canonicalized parameter values. Two generations of the
// same pattern with the same operands hash identically.
func (q Question) Hash() string {
	keys := make([]string, 0, len(q.Params))
	for k := range q.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(q.PatternID)
	for _, k := range keys {
		fmt.Fprintf(&b, "|%s=%v", k, q.Params[k])
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// GeneratorFunc produces a fresh question instance from a random source.
// Implementations must fill Text, Answer, Steps and all hint levels; the
// registry stamps PatternID, Topic, Difficulty and Marks afterwards.
type GeneratorFunc func(r *rand.Rand) Question

// Pattern is a parameterized math-question template registered with the
// engine.
type Pattern struct {
	ID         string
	Topic      string
	Title      string
	Difficulty Difficulty
	Marks      int
	Generate   GeneratorFunc
}

// Registry maps pattern identifiers to their generator implementations.
// It is safe for concurrent reads after registration completes.
type Registry struct {
	mu       sync.RWMutex
	patterns map[string]Pattern
}

// NewRegistry constructs an empty pattern registry.
func NewRegistry() *Registry {
	return &Registry{patterns: make(map[string]Pattern)}
}

// Register adds a pattern. It returns an error on a duplicate id or an
// incomplete definition.
func (r *Registry) Register(p Pattern) error {
	if p.ID == "" || p.Generate == nil {
		return fmt.Errorf("pattern registration requires id and generator")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.patterns[p.ID]; exists {
		return fmt.Errorf("pattern %s already registered", p.ID)
	}
	r.patterns[p.ID] = p

	return nil
}

// MustRegister registers a pattern and panics on failure. Intended for the
// built-in pattern files which register during package init.
func (r *Registry) MustRegister(p Pattern) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// Get returns a registered pattern by id.
func (r *Registry) Get(id string) (Pattern, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.patterns[id]
	return p, ok
}

// ListPatterns returns all registered pattern ids in sorted order.
func (r *Registry) ListPatterns() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.patterns))
	for id := range r.patterns {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of registered patterns.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.patterns)
}

// Topics returns the distinct topics covered by the registry, sorted.
func (r *Registry) Topics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := map[string]bool{}
	for _, p := range r.patterns {
		seen[p.Topic] = true
	}
	topics := make([]string, 0, len(seen))
	for t := range seen {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	return topics
}

// ByTopic returns patterns for a topic, sorted by id.
func (r *Registry) ByTopic(topic string) []Pattern {
	return r.filter(func(p Pattern) bool { return p.Topic == topic })
}

// ByDifficulty returns patterns of a difficulty grade, sorted by id.
func (r *Registry) ByDifficulty(d Difficulty) []Pattern {
	return r.filter(func(p Pattern) bool { return p.Difficulty == d })
}

func (r *Registry) filter(keep func(Pattern) bool) []Pattern {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Pattern
	for _, p := range r.patterns {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// defaultRegistry holds the built-in patterns registered by the topic files.
var defaultRegistry = NewRegistry()

// Register adds a pattern to the default registry.
func Register(p Pattern) error { return defaultRegistry.Register(p) }

// Get looks up a pattern in the default registry.
func Get(id string) (Pattern, bool) { return defaultRegistry.Get(id) }

// ListPatterns lists the default registry's pattern ids, sorted.
func ListPatterns() []string { return defaultRegistry.ListPatterns() }

// Count reports the size of the default registry.
func Count() int { return defaultRegistry.Count() }

// Topics lists the distinct topics in the default registry.
func Topics() []string { return defaultRegistry.Topics() }

// mustRegister is the init-time registration helper used by the topic files.
func mustRegister(p Pattern) { defaultRegistry.MustRegister(p) }

// maxGenerateAttempts bounds dedup retries before serving a repeat.
const maxGenerateAttempts = 12

// Engine draws questions from a registry with filtering and per-session
// deduplication.
type Engine struct {
	registry *Registry
	mu       sync.Mutex
	rng      *rand.Rand
}

// EngineOptions configures an Engine.
type EngineOptions struct {
	// Registry supplies the pattern set. Defaults to the built-in registry.
	Registry *Registry
	// Seed fixes the random source for reproducible generation. Zero means
	// a time-derived seed.
	Seed int64
}

// NewEngine creates a question engine over the built-in registry unless
// overridden via options.
func NewEngine(optFns ...func(o *EngineOptions)) *Engine {
	opts := EngineOptions{Registry: defaultRegistry}

	for _, fn := range optFns {
		fn(&opts)
	}

	src := rand.NewSource(opts.Seed)
	if opts.Seed == 0 {
		src = rand.NewSource(rand.Int63())
	}

	return &Engine{registry: opts.Registry, rng: rand.New(src)}
}

// Registry exposes the engine's pattern registry.
func (e *Engine) Registry() *Registry { return e.registry }

// GenerateRequest narrows the candidate pattern set for Generate.
type GenerateRequest struct {
	// Topic filters patterns to a single topic when non-empty.
	Topic string
	// Difficulty filters patterns to a grade when non-empty.
	Difficulty Difficulty
	// PatternID pins generation to one pattern when non-empty.
	PatternID string
	// Seen holds question hashes already served this session; Generate
	// avoids producing a question whose hash is present.
	Seen map[string]bool
}

// Generate produces a question matching the request. When every attempt
// collides with the seen set the last candidate is returned anyway so the
// student always gets a question.
func (e *Engine) Generate(req GenerateRequest) (Question, error) {
	candidates := e.candidates(req)
	if len(candidates) == 0 {
		return Question{}, &NoPatternError{Topic: req.Topic, Difficulty: req.Difficulty, PatternID: req.PatternID}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var last Question
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		p := candidates[e.rng.Intn(len(candidates))]

		q := p.Generate(e.rng)
		q.PatternID = p.ID
		q.Topic = p.Topic
		q.Difficulty = p.Difficulty
		q.Marks = p.Marks

		last = q
		if len(req.Seen) == 0 || !req.Seen[q.Hash()] {
			return q, nil
		}
	}

	return last, nil
}

func (e *Engine) candidates(req GenerateRequest) []Pattern {
	if req.PatternID != "" {
		if p, ok := e.registry.Get(req.PatternID); ok {
			return []Pattern{p}
		}
		return nil
	}

	return e.registry.filter(func(p Pattern) bool {
		if req.Topic != "" && p.Topic != req.Topic {
			return false
		}
		if req.Difficulty != "" && p.Difficulty != req.Difficulty {
			return false
		}
		return true
	})
}

// NoPatternError reports that no registered pattern matched a generation
// request.
type NoPatternError struct {
	Topic      string
	Difficulty Difficulty
	PatternID  string
}

func (e *NoPatternError) Error() string {
	if e.PatternID != "" {
		return fmt.Sprintf("no pattern registered with id %q", e.PatternID)
	}
	return fmt.Sprintf("no pattern matches topic=%q difficulty=%q", e.Topic, e.Difficulty)
}
