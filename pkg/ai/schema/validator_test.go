package schema

import (
	"testing"

	"github.com/nurfahmi/Agentic-Wa/internal/constant"

	"github.com/stretchr/testify/assert"
)

const validOutput = `{
	"intent": "eligibility_check",
	"confidence": 0.92,
	"required_action": "none",
	"eligibility_status": "PRE_ELIGIBLE",
	"reason": "Memenuhi syarat asas",
	"escalate": false,
	"reply_text": "Tahniah, anda layak untuk permohonan awal."
}`

func TestValidate_AcceptsWellFormedOutput(t *testing.T) {
	result := Validate(validOutput)

	assert.True(t, result.Valid)
	assert.NoError(t, result.Err)
	assert.Equal(t, "eligibility_check", result.Decision.Intent)
	assert.Equal(t, 0.92, result.Decision.Confidence)
	assert.Equal(t, constant.EligibilityPreEligible, result.Decision.EligibilityStatus)
	assert.False(t, result.Decision.Escalate)
}

func TestValidate_RejectsNonJSON(t *testing.T) {
	result := Validate("Saya rasa anda layak memohon.")

	assert.False(t, result.Valid)
	assert.Error(t, result.Err)
	assert.Nil(t, result.Decision)
}

func TestValidate_RejectsMissingFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing intent", `{"confidence":0.9,"required_action":"none","eligibility_status":"PENDING","reason":"x","escalate":false,"reply_text":"y"}`},
		{"missing confidence", `{"intent":"faq","required_action":"none","eligibility_status":"PENDING","reason":"x","escalate":false,"reply_text":"y"}`},
		{"missing required_action", `{"intent":"faq","confidence":0.9,"eligibility_status":"PENDING","reason":"x","escalate":false,"reply_text":"y"}`},
		{"missing eligibility_status", `{"intent":"faq","confidence":0.9,"required_action":"none","reason":"x","escalate":false,"reply_text":"y"}`},
		{"missing reason", `{"intent":"faq","confidence":0.9,"required_action":"none","eligibility_status":"PENDING","escalate":false,"reply_text":"y"}`},
		{"missing escalate", `{"intent":"faq","confidence":0.9,"required_action":"none","eligibility_status":"PENDING","reason":"x","reply_text":"y"}`},
		{"missing reply_text", `{"intent":"faq","confidence":0.9,"required_action":"none","eligibility_status":"PENDING","reason":"x","escalate":false}`},
		{"empty reply_text", `{"intent":"faq","confidence":0.9,"required_action":"none","eligibility_status":"PENDING","reason":"x","escalate":false,"reply_text":"  "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.raw)
			assert.False(t, result.Valid)
			assert.Error(t, result.Err)
		})
	}
}

func TestValidate_AcceptsZeroConfidenceWhenPresent(t *testing.T) {
	// A literal 0 is a legitimate reported confidence; only the absence
	// of the key is a schema violation.
	result := Validate(`{"intent":"faq","confidence":0,"required_action":"none","eligibility_status":"PENDING","reason":"x","escalate":false,"reply_text":"y"}`)

	assert.True(t, result.Valid)
	assert.Equal(t, float64(0), result.Decision.Confidence)
	assert.False(t, result.Decision.Escalate)
}

func TestValidate_RejectsConfidenceOutOfRange(t *testing.T) {
	result := Validate(`{"intent":"faq","confidence":1.4,"required_action":"none","eligibility_status":"PENDING","reason":"x","escalate":false,"reply_text":"y"}`)
	assert.False(t, result.Valid)

	result = Validate(`{"intent":"faq","confidence":-0.1,"required_action":"none","eligibility_status":"PENDING","reason":"x","escalate":false,"reply_text":"y"}`)
	assert.False(t, result.Valid)
}

func TestValidate_CoercesApprovalShapedStatuses(t *testing.T) {
	for _, status := range []string{"APPROVED", "ELIGIBLE", "approved"} {
		raw := `{"intent":"faq","confidence":0.9,"required_action":"none","eligibility_status":"` + status + `","reason":"x","escalate":false,"reply_text":"y"}`
		result := Validate(raw)

		assert.True(t, result.Valid, status)
		assert.Equal(t, constant.EligibilityPreEligible, result.Decision.EligibilityStatus)
	}
}

func TestValidate_RejectsUnknownStatus(t *testing.T) {
	result := Validate(`{"intent":"faq","confidence":0.9,"required_action":"none","eligibility_status":"MAYBE","reason":"x","escalate":false,"reply_text":"y"}`)
	assert.False(t, result.Valid)
}

func TestValidate_StripsMarkdownFence(t *testing.T) {
	result := Validate("```json\n" + validOutput + "\n```")
	assert.True(t, result.Valid)
}
