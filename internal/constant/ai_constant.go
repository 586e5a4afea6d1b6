package constant

// Orchestrator turn budget and guardrails
const (
	MaxValidationRetries = 2
	MinConfidence        = 0.75
	RequiredActionEscalate = "escalate"
	RequiredActionOcrFailed = "ocr_failed"

	// IntentUnknown is the intent recorded when the model never produced
	// a valid decision.
	IntentUnknown = "unknown"
)

// Fixed customer-facing fallback lines (Bahasa Malaysia). The customer is
// never shown raw model output or error text.
const (
	FallbackHandoffReply = "Saya akan sambungkan anda kepada pegawai kami."
	GuardrailHandoffReply = "Saya akan sambungkan anda kepada pegawai kami untuk bantuan lanjut."
	SystemErrorReply      = "Maaf, sistem sedang mengalami masalah. Pegawai kami akan menghubungi anda."
)

// Corrective instruction appended when the model output fails schema
// validation, before the retry call.
const InvalidSchemaRetryPrompt = "Your previous response was not valid JSON. Please respond with the required JSON schema: { intent, confidence, required_action, eligibility_status, reason, escalate, reply_text }"

// Chat roles in the provider-agnostic message format
const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
	ChatRoleTool      = "tool"
)
