package llm

import (
	"context"
	"encoding/json"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role       string // "system", "user", "assistant", "tool"
	Content    string
	ToolCallID string     // set on role "tool" messages replying to a call
	ToolCalls  []ToolCall // set on assistant messages that request tools
}

// ToolCall is a model-requested invocation of a registered tool.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// ToolDefinition describes a callable tool in JSON Schema form.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}

// CompletionResponse is the model's reply: either content, tool calls,
// or both.
type CompletionResponse struct {
	Content   string
	ToolCalls []ToolCall
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
	Tools       []ToolDefinition
	JSONMode    bool // force a JSON object response
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithTools(tools []ToolDefinition) Option {
	return func(o *Options) {
		o.Tools = tools
	}
}

func WithJSONMode() Option {
	return func(o *Options) {
		o.JSONMode = true
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response,
	// which may include tool calls when tools were offered.
	Chat(ctx context.Context, history []Message, options ...Option) (*CompletionResponse, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
