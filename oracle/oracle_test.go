package oracle

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryCount(t *testing.T) {
	assert.Equal(t, 61, Count())
}

func TestDefaultRegistryTopics(t *testing.T) {
	want := []string{
		"algebra", "arithmetic", "decimals", "fractions", "geometry",
		"numbers", "percentages", "ratio", "statistics", "word_problems",
	}
	assert.Equal(t, want, Topics())
}

func TestDefaultRegistryTopicSplit(t *testing.T) {
	counts := map[string]int{
		"arithmetic":    7,
		"fractions":     7,
		"decimals":      5,
		"percentages":   7,
		"ratio":         6,
		"algebra":       7,
		"geometry":      7,
		"numbers":       6,
		"statistics":    4,
		"word_problems": 5,
	}
	for topic, want := range counts {
		assert.Len(t, defaultRegistry.ByTopic(topic), want, "topic %s", topic)
	}
}

func TestListPatternsSorted(t *testing.T) {
	ids := ListPatterns()
	require.Len(t, ids, 61)
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	p := Pattern{ID: "dup", Topic: "t", Generate: func(r *rand.Rand) Question { return Question{} }}

	require.NoError(t, reg.Register(p))
	assert.Error(t, reg.Register(p))
}

func TestRegistryRejectsIncomplete(t *testing.T) {
	reg := NewRegistry()

	assert.Error(t, reg.Register(Pattern{ID: "no_generator"}))
	assert.Error(t, reg.Register(Pattern{Generate: func(r *rand.Rand) Question { return Question{} }}))
}

// Every built-in pattern must produce a fully populated question.
func TestBuiltinPatternsProduceCompleteQuestions(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, id := range ListPatterns() {
		p, ok := Get(id)
		require.True(t, ok, id)

		for i := 0; i < 25; i++ {
			q := p.Generate(rng)
			q.PatternID = p.ID

			assert.NotEmpty(t, q.Text, "%s text", id)
			assert.NotEmpty(t, q.Answer, "%s answer", id)
			assert.NotEmpty(t, q.Steps, "%s steps", id)
			for lvl, h := range q.Hints {
				assert.NotEmpty(t, h, "%s hint level %d", id, lvl+1)
			}
			assert.NotEmpty(t, q.Hash(), id)
		}

		assert.Greater(t, p.Marks, 0, id)
		assert.Contains(t, []Difficulty{Easy, Medium, Hard}, p.Difficulty, id)
	}
}

func TestQuestionHashStable(t *testing.T) {
	q1 := Question{PatternID: "p", Params: map[string]any{"a": 3, "b": 7}}
	q2 := Question{PatternID: "p", Params: map[string]any{"b": 7, "a": 3}}
	q3 := Question{PatternID: "p", Params: map[string]any{"a": 3, "b": 8}}

	assert.Equal(t, q1.Hash(), q2.Hash())
	assert.NotEqual(t, q1.Hash(), q3.Hash())
}

// Two instances that render identically must hash identically, so the
// per-session seen-set actually blocks repeats. A pattern that stows an
// intermediate operand in Params breaks this.
func TestIdenticalQuestionsHashIdentically(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for _, id := range ListPatterns() {
		p, ok := Get(id)
		require.True(t, ok, id)

		hashByRender := map[string]string{}
		for i := 0; i < 200; i++ {
			q := p.Generate(rng)
			q.PatternID = p.ID

			render := q.Text + "\x00" + q.Answer + "\x00" +
				strings.Join(q.Steps, "\x00") + "\x00" + strings.Join(q.Hints[:], "\x00")
			if prev, seen := hashByRender[render]; seen {
				assert.Equal(t, prev, q.Hash(), "%s: same rendered question, different hash", id)
			} else {
				hashByRender[render] = q.Hash()
			}
		}
	}
}

func TestQuestionHashDiffersAcrossPatterns(t *testing.T) {
	q1 := Question{PatternID: "p1", Params: map[string]any{"a": 3}}
	q2 := Question{PatternID: "p2", Params: map[string]any{"a": 3}}

	assert.NotEqual(t, q1.Hash(), q2.Hash())
}

func TestEngineGenerateStampsMetadata(t *testing.T) {
	e := NewEngine(func(o *EngineOptions) { o.Seed = 7 })

	q, err := e.Generate(GenerateRequest{PatternID: "simple_interest"})
	require.NoError(t, err)

	assert.Equal(t, "simple_interest", q.PatternID)
	assert.Equal(t, "percentages", q.Topic)
	assert.Equal(t, Hard, q.Difficulty)
	assert.Equal(t, 5, q.Marks)
}

func TestEngineGenerateFilters(t *testing.T) {
	e := NewEngine(func(o *EngineOptions) { o.Seed = 11 })

	q, err := e.Generate(GenerateRequest{Topic: "geometry", Difficulty: Hard})
	require.NoError(t, err)

	assert.Equal(t, "geometry", q.Topic)
	assert.Equal(t, Hard, q.Difficulty)
}

func TestEngineGenerateNoMatch(t *testing.T) {
	e := NewEngine()

	_, err := e.Generate(GenerateRequest{Topic: "calculus"})
	var npe *NoPatternError
	require.ErrorAs(t, err, &npe)
	assert.Equal(t, "calculus", npe.Topic)

	_, err = e.Generate(GenerateRequest{PatternID: "does_not_exist"})
	require.ErrorAs(t, err, &npe)
	assert.Contains(t, npe.Error(), "does_not_exist")
}

// counterPattern returns deterministic questions so dedup behavior can be
// asserted exactly.
func counterPattern(id string) (Pattern, *int) {
	n := 0
	return Pattern{
		ID: id, Topic: "test", Difficulty: Easy, Marks: 1,
		Generate: func(r *rand.Rand) Question {
			n++
			return Question{
				Text:   "q",
				Answer: "a",
				Params: map[string]any{"n": n},
			}
		},
	}, &n
}

func TestEngineGenerateAvoidsSeen(t *testing.T) {
	reg := NewRegistry()
	p, _ := counterPattern("counter")
	require.NoError(t, reg.Register(p))

	e := NewEngine(func(o *EngineOptions) { o.Registry = reg })

	first, err := e.Generate(GenerateRequest{PatternID: "counter"})
	require.NoError(t, err)

	second, err := e.Generate(GenerateRequest{
		PatternID: "counter",
		Seen:      map[string]bool{first.Hash(): true},
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.Hash(), second.Hash())
}

func TestEngineGenerateExhaustedSeenReturnsRepeat(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(Pattern{
		ID: "fixed", Topic: "test", Difficulty: Easy, Marks: 1,
		Generate: func(r *rand.Rand) Question {
			return Question{Text: "q", Answer: "a", Params: map[string]any{"n": 1}}
		},
	}))

	e := NewEngine(func(o *EngineOptions) { o.Registry = reg })

	q, err := e.Generate(GenerateRequest{PatternID: "fixed"})
	require.NoError(t, err)

	// Every candidate collides; the student still gets a question.
	repeat, err := e.Generate(GenerateRequest{
		PatternID: "fixed",
		Seen:      map[string]bool{q.Hash(): true},
	})
	require.NoError(t, err)
	assert.Equal(t, q.Hash(), repeat.Hash())
}

func TestRegistryByDifficulty(t *testing.T) {
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		ps := defaultRegistry.ByDifficulty(d)
		assert.NotEmpty(t, ps, d)
		for _, p := range ps {
			assert.Equal(t, d, p.Difficulty)
		}
	}
}
