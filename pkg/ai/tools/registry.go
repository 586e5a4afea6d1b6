package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nurfahmi/Agentic-Wa/internal/pkg/logger"
	"github.com/nurfahmi/Agentic-Wa/pkg/llm"
)

// Tool is one callable capability offered to the model. The set is
// closed: only registered tools can ever be executed, whatever the
// model asks for.
type Tool interface {
	Name() string
	Definition() llm.ToolDefinition
	// Execute runs the tool and returns a JSON string for the tool
	// result message. Tool errors are returned as error JSON, not Go
	// errors, so the model can react to them.
	Execute(ctx context.Context, args json.RawMessage) string
}

// Registry holds the closed tool set.
type Registry struct {
	tools  map[string]Tool
	order  []string
	logger logger.ILogger
}

func NewRegistry(log logger.ILogger) *Registry {
	return &Registry{
		tools:  make(map[string]Tool),
		logger: log,
	}
}

func (r *Registry) Register(tool Tool) {
	if _, exists := r.tools[tool.Name()]; !exists {
		r.order = append(r.order, tool.Name())
	}
	r.tools[tool.Name()] = tool
}

// Definitions returns the tool schemas in registration order, for the
// model call.
func (r *Registry) Definitions() []llm.ToolDefinition {
	defs := make([]llm.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition())
	}
	return defs
}

// Execute dispatches a model-requested call. Unknown tool names return
// an error payload instead of executing anything.
func (r *Registry) Execute(ctx context.Context, name string, args json.RawMessage) string {
	tool, ok := r.tools[name]
	if !ok {
		r.logger.Warn("tools", "model requested unknown tool", map[string]interface{}{
			"tool": name,
		})
		return errorResult(fmt.Sprintf("unknown tool: %s", name))
	}

	r.logger.Info("tools", "executing tool", map[string]interface{}{
		"tool": name,
	})
	return tool.Execute(ctx, args)
}

func errorResult(message string) string {
	out, _ := json.Marshal(map[string]interface{}{"error": message})
	return string(out)
}
