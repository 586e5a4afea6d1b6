package escalation

import (
	"testing"

	"github.com/nurfahmi/Agentic-Wa/internal/constant"
	"github.com/nurfahmi/Agentic-Wa/internal/entity"

	"github.com/stretchr/testify/assert"
)

func confidentDecision() *entity.Decision {
	return &entity.Decision{
		Intent:            "faq",
		Confidence:        0.9,
		RequiredAction:    "none",
		EligibilityStatus: constant.EligibilityPending,
		Reason:            "soalan umum",
		ReplyText:         "Baik.",
	}
}

func TestEvaluate_NoTriggersNoReasons(t *testing.T) {
	policy := NewPolicy()
	assert.Empty(t, policy.Evaluate("Berapa kadar faedah pembiayaan?", confidentDecision()))
}

func TestEvaluate_LowConfidence(t *testing.T) {
	policy := NewPolicy()
	d := confidentDecision()
	d.Confidence = 0.6

	reasons := policy.Evaluate("Berapa kadar?", d)

	assert.Equal(t, []string{constant.EscalationReasonLowConfidence}, reasons)
}

func TestEvaluate_UserRequestsHuman(t *testing.T) {
	policy := NewPolicy()

	reasons := policy.Evaluate("saya nak cakap dengan pegawai", confidentDecision())

	assert.Equal(t, []string{constant.EscalationReasonUserRequest}, reasons)
}

func TestEvaluate_AngryCustomer(t *testing.T) {
	policy := NewPolicy()

	reasons := policy.Evaluate("sistem ni tak guna langsung", confidentDecision())

	assert.Equal(t, []string{constant.EscalationReasonAngryKeywords}, reasons)
}

func TestEvaluate_OcrFailure(t *testing.T) {
	policy := NewPolicy()
	d := confidentDecision()
	d.RequiredAction = constant.RequiredActionOcrFailed

	reasons := policy.Evaluate("ini slip gaji saya", d)

	assert.Equal(t, []string{constant.EscalationReasonOcrFailure}, reasons)
}

func TestEvaluate_BorderlineEligibility(t *testing.T) {
	policy := NewPolicy()
	d := confidentDecision()
	d.EligibilityStatus = constant.EligibilityRequiresReview

	reasons := policy.Evaluate("macam mana status saya?", d)

	assert.Equal(t, []string{constant.EscalationReasonBorderline}, reasons)
}

func TestEvaluate_PriorityOrderWithMultipleTriggers(t *testing.T) {
	policy := NewPolicy()
	d := confidentDecision()
	d.Confidence = 0.5
	d.EligibilityStatus = constant.EligibilityRequiresReview

	reasons := policy.Evaluate("bodoh betul, saya nak cakap dengan pegawai", d)

	assert.Equal(t, []string{
		constant.EscalationReasonLowConfidence,
		constant.EscalationReasonAngryKeywords,
		constant.EscalationReasonBorderline,
		constant.EscalationReasonUserRequest,
	}, reasons)
}

func TestEvaluate_ModelRequestedEscalateFallsBackToUserRequest(t *testing.T) {
	policy := NewPolicy()
	d := confidentDecision()
	d.Escalate = true

	reasons := policy.Evaluate("ok", d)

	assert.Equal(t, []string{constant.EscalationReasonUserRequest}, reasons)
}

func TestEvaluate_NilDecisionOnlyChecksKeywords(t *testing.T) {
	policy := NewPolicy()

	assert.Empty(t, policy.Evaluate("terima kasih", nil))
	assert.Equal(t, []string{constant.EscalationReasonUserRequest},
		policy.Evaluate("saya nak cakap dengan pegawai", nil))
}

func TestEvaluate_CustomKeywords(t *testing.T) {
	policy := NewPolicyWithKeywords([]string{"geram"}, nil)

	reasons := policy.Evaluate("geram betul saya", confidentDecision())

	assert.Equal(t, []string{constant.EscalationReasonAngryKeywords}, reasons)
}
