package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/nurfahmi/Agentic-Wa/internal/pkg/logger"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/contract"
	"github.com/nurfahmi/Agentic-Wa/pkg/ai/rules"
	"github.com/nurfahmi/Agentic-Wa/pkg/llm"
)

// EligibilityCalculatorTool runs the deterministic rule engine. The
// model must call this instead of judging eligibility itself.
type EligibilityCalculatorTool struct {
	engine    *rules.Engine
	employers contract.EmployerRepository
	logger    logger.ILogger
}

func NewEligibilityCalculatorTool(engine *rules.Engine, employers contract.EmployerRepository, log logger.ILogger) *EligibilityCalculatorTool {
	return &EligibilityCalculatorTool{
		engine:    engine,
		employers: employers,
		logger:    log,
	}
}

func (t *EligibilityCalculatorTool) Name() string { return "calculate_eligibility" }

func (t *EligibilityCalculatorTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        t.Name(),
		Description: "Calculate financing eligibility from the applicant's details using the koperasi's rules. Always use this tool for eligibility decisions; never estimate eligibility yourself.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"is_penjawat_awam": {
					"type": "boolean",
					"description": "Whether the applicant claims to be a government employee"
				},
				"monthly_salary": {
					"type": "number",
					"description": "Monthly salary in MYR"
				},
				"age": {
					"type": "integer",
					"description": "Applicant age in years"
				},
				"employer": {
					"type": "string",
					"description": "Employer name, used to verify government staff status"
				}
			},
			"required": ["is_penjawat_awam", "monthly_salary", "age"]
		}`),
	}
}

type eligibilityArgs struct {
	IsPenjawatAwam bool    `json:"is_penjawat_awam"`
	MonthlySalary  float64 `json:"monthly_salary"`
	Age            int     `json:"age"`
	Employer       string  `json:"employer"`
}

type eligibilityResult struct {
	Status        string   `json:"status"`
	Score         int      `json:"score"`
	Reasons       []string `json:"reasons"`
	StaffVerified bool     `json:"staff_verified"`
}

func (t *EligibilityCalculatorTool) Execute(ctx context.Context, args json.RawMessage) string {
	var parsed eligibilityArgs
	if err := json.Unmarshal(args, &parsed); err != nil {
		return errorResult("invalid arguments: " + err.Error())
	}

	verified := false
	if parsed.IsPenjawatAwam && strings.TrimSpace(parsed.Employer) != "" {
		matches, err := t.employers.SearchApproved(ctx, strings.TrimSpace(parsed.Employer))
		if err != nil {
			t.logger.Warn("tools", "employer verification failed during eligibility check", map[string]interface{}{
				"employer": parsed.Employer,
				"error":    err.Error(),
			})
		} else {
			verified = len(matches) > 0
		}
	}

	scored := t.engine.Score(ctx, rules.Applicant{
		IsPenjawatAwam: parsed.IsPenjawatAwam,
		StaffVerified:  verified,
		MonthlySalary:  parsed.MonthlySalary,
		Age:            parsed.Age,
		Employer:       parsed.Employer,
	})

	result := eligibilityResult{
		Status:        scored.Status,
		Score:         scored.Score,
		Reasons:       scored.Reasons,
		StaffVerified: verified,
	}
	if result.Reasons == nil {
		result.Reasons = []string{}
	}

	out, _ := json.Marshal(result)
	return string(out)
}
