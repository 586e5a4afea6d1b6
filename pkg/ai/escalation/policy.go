package escalation

import (
	"strings"

	"github.com/nurfahmi/Agentic-Wa/internal/constant"
	"github.com/nurfahmi/Agentic-Wa/internal/entity"
)

// Policy decides whether a turn must be handed to a human agent. Reasons
// are evaluated in a fixed priority order so the recorded reason is
// deterministic when several triggers fire at once.
type Policy struct {
	angryKeywords   []string
	requestKeywords []string
}

// Default keyword lists, Bahasa Malaysia plus the English the customers
// mix in.
var (
	defaultAngryKeywords = []string{
		"bodoh", "menyusahkan", "lambat sangat", "tak guna",
		"scam", "penipu", "marah", "bengang",
		"stupid", "useless", "terrible",
	}
	defaultRequestKeywords = []string{
		"cakap dengan pegawai", "nak cakap dengan orang", "pegawai sebenar",
		"human", "staf sebenar", "customer service",
		"talk to agent", "speak to a person",
	}
)

func NewPolicy() *Policy {
	return &Policy{
		angryKeywords:   defaultAngryKeywords,
		requestKeywords: defaultRequestKeywords,
	}
}

// NewPolicyWithKeywords lets operators override the keyword lists.
func NewPolicyWithKeywords(angry, request []string) *Policy {
	p := NewPolicy()
	if len(angry) > 0 {
		p.angryKeywords = angry
	}
	if len(request) > 0 {
		p.requestKeywords = request
	}
	return p
}

// Evaluate returns every triggered escalation reason, ordered by
// priority: LOW_CONFIDENCE, ANGRY_KEYWORDS, OCR_FAILURE,
// BORDERLINE_ELIGIBILITY, USER_REQUEST. The first entry is the primary
// reason recorded on the escalation.
func (p *Policy) Evaluate(customerMessage string, decision *entity.Decision) []string {
	var reasons []string
	lowered := strings.ToLower(customerMessage)

	if decision != nil && decision.Confidence < constant.MinConfidence {
		reasons = append(reasons, constant.EscalationReasonLowConfidence)
	}

	if containsAny(lowered, p.angryKeywords) {
		reasons = append(reasons, constant.EscalationReasonAngryKeywords)
	}

	if decision != nil && decision.RequiredAction == constant.RequiredActionOcrFailed {
		reasons = append(reasons, constant.EscalationReasonOcrFailure)
	}

	if decision != nil && decision.EligibilityStatus == constant.EligibilityRequiresReview {
		reasons = append(reasons, constant.EscalationReasonBorderline)
	}

	if containsAny(lowered, p.requestKeywords) {
		reasons = append(reasons, constant.EscalationReasonUserRequest)
	}

	modelRequested := decision != nil &&
		(decision.Escalate || decision.RequiredAction == constant.RequiredActionEscalate)
	if modelRequested && len(reasons) == 0 {
		// The model asked for escalation without a mechanical trigger;
		// treat it as a user request.
		reasons = append(reasons, constant.EscalationReasonUserRequest)
	}

	return reasons
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
