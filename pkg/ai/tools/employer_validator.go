package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/nurfahmi/Agentic-Wa/internal/pkg/logger"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/contract"
	"github.com/nurfahmi/Agentic-Wa/pkg/llm"
)

// EmployerValidatorTool checks a claimed employer against the approved
// government employer registry.
type EmployerValidatorTool struct {
	employers contract.EmployerRepository
	logger    logger.ILogger
}

func NewEmployerValidatorTool(employers contract.EmployerRepository, log logger.ILogger) *EmployerValidatorTool {
	return &EmployerValidatorTool{
		employers: employers,
		logger:    log,
	}
}

func (t *EmployerValidatorTool) Name() string { return "validate_government_staff" }

func (t *EmployerValidatorTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        t.Name(),
		Description: "Verify whether an employer name matches an approved Malaysian government employer (Penjawat Awam). Use before confirming government staff status.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"employer_name": {
					"type": "string",
					"description": "Employer name as given by the customer or read from the salary slip"
				}
			},
			"required": ["employer_name"]
		}`),
	}
}

type employerArgs struct {
	EmployerName string `json:"employer_name"`
}

type employerResult struct {
	Verified    bool   `json:"verified"`
	MatchedName string `json:"matched_name,omitempty"`
	Ministry    string `json:"ministry,omitempty"`
	Category    string `json:"category,omitempty"`
}

func (t *EmployerValidatorTool) Execute(ctx context.Context, args json.RawMessage) string {
	var parsed employerArgs
	if err := json.Unmarshal(args, &parsed); err != nil {
		return errorResult("invalid arguments: " + err.Error())
	}

	query := strings.TrimSpace(parsed.EmployerName)
	if query == "" {
		return errorResult("employer_name is required")
	}

	matches, err := t.employers.SearchApproved(ctx, query)
	if err != nil {
		t.logger.Error("tools", "employer lookup failed", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		return errorResult("employer lookup failed")
	}

	result := employerResult{Verified: len(matches) > 0}
	if len(matches) > 0 {
		result.MatchedName = matches[0].Name
		result.Ministry = matches[0].Ministry
		result.Category = matches[0].Category
	}

	out, _ := json.Marshal(result)
	return string(out)
}
