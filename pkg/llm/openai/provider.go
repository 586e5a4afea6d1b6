package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nurfahmi/Agentic-Wa/pkg/llm"

	goopenai "github.com/sashabaranov/go-openai"
)

// Provider implements llm.LLMProvider against the OpenAI chat
// completions API, including function calling.
type Provider struct {
	client       *goopenai.Client
	defaultModel string
}

func NewProvider(apiKey string, defaultModel string) llm.LLMProvider {
	return &Provider{
		client:       goopenai.NewClient(apiKey),
		defaultModel: defaultModel,
	}
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (*llm.CompletionResponse, error) {
	opts := llm.Options{
		Temperature: 0.3,
		Model:       p.defaultModel,
	}
	for _, opt := range options {
		opt(&opts)
	}

	req := goopenai.ChatCompletionRequest{
		Model:       opts.Model,
		Messages:    toOpenAIMessages(history),
		Temperature: float32(opts.Temperature),
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}
	if len(opts.Tools) > 0 {
		req.Tools = toOpenAITools(opts.Tools)
	}
	if opts.JSONMode {
		req.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	choice := resp.Choices[0].Message
	out := &llm.CompletionResponse{Content: choice.Content}
	for _, tc := range choice.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, llm.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: json.RawMessage(tc.Function.Arguments),
		})
	}

	return out, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	resp, err := p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func toOpenAIMessages(history []llm.Message) []goopenai.ChatCompletionMessage {
	messages := make([]goopenai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		msg := goopenai.ChatCompletionMessage{
			Role:       m.Role,
			Content:    m.Content,
			ToolCallID: m.ToolCallID,
		}
		for _, tc := range m.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, goopenai.ToolCall{
				ID:   tc.ID,
				Type: goopenai.ToolTypeFunction,
				Function: goopenai.FunctionCall{
					Name:      tc.Name,
					Arguments: string(tc.Arguments),
				},
			})
		}
		messages = append(messages, msg)
	}
	return messages
}

func toOpenAITools(tools []llm.ToolDefinition) []goopenai.Tool {
	out := make([]goopenai.Tool, 0, len(tools))
	for _, t := range tools {
		out = append(out, goopenai.Tool{
			Type: goopenai.ToolTypeFunction,
			Function: &goopenai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return out
}
