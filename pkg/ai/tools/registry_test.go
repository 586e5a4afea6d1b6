package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/nurfahmi/Agentic-Wa/internal/pkg/logger"
	"github.com/nurfahmi/Agentic-Wa/pkg/llm"

	"github.com/stretchr/testify/assert"
)

type fakeTool struct {
	name   string
	result string
}

func (f *fakeTool) Name() string { return f.name }
func (f *fakeTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{Name: f.name, Parameters: json.RawMessage(`{"type":"object"}`)}
}
func (f *fakeTool) Execute(ctx context.Context, args json.RawMessage) string {
	return f.result
}

func TestRegistry_ExecutesRegisteredTool(t *testing.T) {
	registry := NewRegistry(logger.NewNoopLogger())
	registry.Register(&fakeTool{name: "ocr_extract", result: `{"ok":true}`})

	out := registry.Execute(context.Background(), "ocr_extract", json.RawMessage(`{}`))

	assert.Equal(t, `{"ok":true}`, out)
}

func TestRegistry_UnknownToolReturnsErrorPayload(t *testing.T) {
	registry := NewRegistry(logger.NewNoopLogger())
	registry.Register(&fakeTool{name: "ocr_extract", result: `{}`})

	out := registry.Execute(context.Background(), "delete_database", json.RawMessage(`{}`))

	var payload map[string]string
	assert.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Contains(t, payload["error"], "unknown tool")
}

func TestRegistry_DefinitionsKeepRegistrationOrder(t *testing.T) {
	registry := NewRegistry(logger.NewNoopLogger())
	registry.Register(&fakeTool{name: "ocr_extract"})
	registry.Register(&fakeTool{name: "validate_government_staff"})
	registry.Register(&fakeTool{name: "calculate_eligibility"})

	defs := registry.Definitions()

	assert.Len(t, defs, 3)
	assert.Equal(t, "ocr_extract", defs[0].Name)
	assert.Equal(t, "validate_government_staff", defs[1].Name)
	assert.Equal(t, "calculate_eligibility", defs[2].Name)
}
