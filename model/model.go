// Package model defines the provider-agnostic LLM abstractions used by the
// tutors. Providers (OpenAI, Anthropic) implement the Model interface so the
// agent and flow layers never touch vendor SDKs directly. A ScriptedModel is
// included for tests and offline runs.
package model

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Roand-7/Lokaah-sub001/core"
)

// ToolCall is a vendor-neutral function call request surfaced by a provider.
type ToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"` // "function"
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction names the target function and carries its raw arguments.
type ToolCallFunction struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolDefinition declaratively exposes a callable function to the model.
type ToolDefinition struct {
	Type     string             `json:"type"` // "function"
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes one tool exposed to the model. Parameters is a
// minimal JSON Schema object.
type FunctionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request is the normalized model input assembled by the flow layer.
type Request struct {
	Instructions string           `json:"instructions"`
	Contents     []core.Content   `json:"contents"`
	Tools        []ToolDefinition `json:"tools,omitempty"`
	Stream       bool             `json:"stream,omitempty"`
}

// TokenUsage carries token accounting for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is a partial or final chunk emitted by a model.
type Response struct {
	ID           string       `json:"id"`
	Partial      bool         `json:"partial"`
	Content      core.Content `json:"content"`
	FinishReason string       `json:"finish_reason"` // "stop", "length", "tool_calls"
	Usage        *TokenUsage  `json:"usage,omitempty"`
}

// Info describes a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", "scripted"
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface the tutors need to drive generation.
type Model interface {
	Generate(ctx context.Context, req Request) (<-chan Response, <-chan error)
	Info() Info
}

// ScriptedModel replays canned replies keyed by substrings of the latest user
// message. It backs tests and the offline chat mode, where tutor replies are
// templated rather than generated.
type ScriptedModel struct {
	info     Info
	exact    map[string]string
	fallback string
}

// NewScriptedModel builds a scripted model with tool support flagged on so it
// can stand in for real providers in flow tests.
func NewScriptedModel(name string) *ScriptedModel {
	return &ScriptedModel{
		info:     Info{Name: name, Provider: "scripted", SupportsTools: true},
		exact:    make(map[string]string),
		fallback: "",
	}
}

// AddReply registers a canned reply for an exact input prompt.
func (m *ScriptedModel) AddReply(prompt, reply string) { m.exact[prompt] = reply }

// SetFallback sets the reply used when no exact prompt matches.
func (m *ScriptedModel) SetFallback(reply string) { m.fallback = reply }

// Generate implements Model. It echoes the matched reply, optionally as
// per-rune streaming chunks followed by the final response.
func (m *ScriptedModel) Generate(ctx context.Context, req Request) (<-chan Response, <-chan error) {
	respCh := make(chan Response, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(respCh)
		defer close(errCh)

		if len(req.Contents) == 0 {
			errCh <- fmt.Errorf("scripted model: empty request contents")
			return
		}

		input := req.Contents[len(req.Contents)-1].FirstText()
		reply := m.exact[input]
		if reply == "" {
			reply = m.fallback
		}
		if reply == "" {
			reply = fmt.Sprintf("I heard: %s", strings.TrimSpace(input))
		}

		if req.Stream {
			for _, r := range reply {
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				case respCh <- Response{
					Partial: true,
					Content: core.NewTextContent("assistant", string(r)),
				}:
				}
			}
		}

		respCh <- Response{
			Partial:      false,
			Content:      core.NewTextContent("assistant", reply),
			FinishReason: "stop",
		}
	}()

	return respCh, errCh
}

// Info implements Model.
func (m *ScriptedModel) Info() Info { return m.info }
