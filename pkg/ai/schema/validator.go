package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nurfahmi/Agentic-Wa/internal/constant"
	"github.com/nurfahmi/Agentic-Wa/internal/entity"
)

// Result is the outcome of validating one raw model response.
type Result struct {
	Valid    bool
	Decision *entity.Decision
	Err      error
}

var allowedStatuses = map[string]bool{
	constant.EligibilityPending:        true,
	constant.EligibilityPreEligible:    true,
	constant.EligibilityNotEligible:    true,
	constant.EligibilityRequiresReview: true,
}

// statusCoercions maps statuses the model sometimes invents to the
// closest real value. The system never promises approval, so anything
// approval-shaped is downgraded to PRE_ELIGIBLE.
var statusCoercions = map[string]string{
	"APPROVED": constant.EligibilityPreEligible,
	"ELIGIBLE": constant.EligibilityPreEligible,
}

// Validate parses raw model output against the decision schema. Any
// violation yields an invalid Result; the caller decides whether to
// retry or fall back.
func Validate(raw string) Result {
	raw = strings.TrimSpace(raw)
	raw = stripCodeFence(raw)

	// Absent fields must be distinguished from zero values: a missing
	// confidence and a reported 0.0 are different failures, and the same
	// goes for escalate. Pointer fields make absence observable.
	var fields struct {
		Intent            *string  `json:"intent"`
		Confidence        *float64 `json:"confidence"`
		RequiredAction    *string  `json:"required_action"`
		EligibilityStatus *string  `json:"eligibility_status"`
		Reason            *string  `json:"reason"`
		Escalate          *bool    `json:"escalate"`
		ReplyText         *string  `json:"reply_text"`
	}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return invalid(fmt.Errorf("output is not valid JSON: %w", err))
	}

	required := []struct {
		name    string
		present bool
	}{
		{"intent", fields.Intent != nil},
		{"confidence", fields.Confidence != nil},
		{"required_action", fields.RequiredAction != nil},
		{"eligibility_status", fields.EligibilityStatus != nil},
		{"reason", fields.Reason != nil},
		{"escalate", fields.Escalate != nil},
		{"reply_text", fields.ReplyText != nil},
	}
	for _, f := range required {
		if !f.present {
			return invalid(fmt.Errorf("missing required field: %s", f.name))
		}
	}

	decision := entity.Decision{
		Intent:            *fields.Intent,
		Confidence:        *fields.Confidence,
		RequiredAction:    *fields.RequiredAction,
		EligibilityStatus: *fields.EligibilityStatus,
		Reason:            *fields.Reason,
		Escalate:          *fields.Escalate,
		ReplyText:         *fields.ReplyText,
	}

	if decision.Intent == "" {
		return invalid(fmt.Errorf("intent must not be empty"))
	}
	if decision.Confidence < 0 || decision.Confidence > 1 {
		return invalid(fmt.Errorf("confidence %v out of range [0,1]", decision.Confidence))
	}
	if decision.RequiredAction == "" {
		return invalid(fmt.Errorf("required_action must not be empty"))
	}
	if decision.Reason == "" {
		return invalid(fmt.Errorf("reason must not be empty"))
	}
	if strings.TrimSpace(decision.ReplyText) == "" {
		return invalid(fmt.Errorf("reply_text must be a non-empty string"))
	}

	status := strings.ToUpper(strings.TrimSpace(decision.EligibilityStatus))
	if coerced, ok := statusCoercions[status]; ok {
		status = coerced
	}
	if !allowedStatuses[status] {
		return invalid(fmt.Errorf("unknown eligibility_status: %q", decision.EligibilityStatus))
	}
	decision.EligibilityStatus = status

	return Result{Valid: true, Decision: &decision}
}

func invalid(err error) Result {
	return Result{Valid: false, Err: err}
}

// stripCodeFence removes a markdown ```json fence the model sometimes
// wraps around its output despite instructions.
func stripCodeFence(raw string) string {
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}
