package constant

// Conversation lifecycle
const (
	ConversationStatusAIHandling    = "AI_HANDLING"
	ConversationStatusAgentHandling = "AGENT_HANDLING"
	ConversationStatusEscalated     = "ESCALATED"
	ConversationStatusClosed        = "CLOSED"
)

// Eligibility statuses. There is intentionally no APPROVED value:
// the highest status this system ever assigns is PRE_ELIGIBLE.
const (
	EligibilityPending        = "PENDING"
	EligibilityPreEligible    = "PRE_ELIGIBLE"
	EligibilityNotEligible    = "NOT_ELIGIBLE"
	EligibilityRequiresReview = "REQUIRES_REVIEW"
)

// Message direction
const (
	MessageDirectionInbound  = "INBOUND"
	MessageDirectionOutbound = "OUTBOUND"
)

// Message types
const (
	MessageTypeText     = "TEXT"
	MessageTypeImage    = "IMAGE"
	MessageTypeDocument = "DOCUMENT"
	MessageTypeAudio    = "AUDIO"
)

// Escalation lifecycle
const (
	EscalationStatusOpen       = "OPEN"
	EscalationStatusInProgress = "IN_PROGRESS"
	EscalationStatusResolved   = "RESOLVED"
)

// Escalation reason codes, in trigger priority order.
const (
	EscalationReasonLowConfidence  = "LOW_CONFIDENCE"
	EscalationReasonAngryKeywords  = "ANGRY_KEYWORDS"
	EscalationReasonOcrFailure     = "OCR_FAILURE"
	EscalationReasonBorderline     = "BORDERLINE_ELIGIBILITY"
	EscalationReasonUserRequest    = "USER_REQUEST"
)

// OCR processing states on Document
const (
	OcrStatusPending    = "PENDING"
	OcrStatusProcessing = "PROCESSING"
	OcrStatusCompleted  = "COMPLETED"
	OcrStatusFailed     = "FAILED"
)

// User roles
const (
	RoleSuperadmin  = "SUPERADMIN"
	RoleAdmin       = "ADMIN"
	RoleMasterAgent = "MASTER_AGENT"
	RoleAgent       = "AGENT"
)
