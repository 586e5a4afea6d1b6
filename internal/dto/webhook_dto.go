package dto

// WhatsApp Business webhook payload, trimmed to the parts this system
// reads. The Graph API sends much more; unknown fields are ignored.

type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	Id      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Field string       `json:"field"`
	Value WebhookValue `json:"value"`
}

type WebhookValue struct {
	MessagingProduct string            `json:"messaging_product"`
	Metadata         WebhookMetadata   `json:"metadata"`
	Contacts         []WebhookContact  `json:"contacts"`
	Messages         []WebhookMessage  `json:"messages"`
	Statuses         []WebhookStatus   `json:"statuses"`
}

type WebhookMetadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberId      string `json:"phone_number_id"`
}

type WebhookContact struct {
	WaId    string         `json:"wa_id"`
	Profile ContactProfile `json:"profile"`
}

type ContactProfile struct {
	Name string `json:"name"`
}

type WebhookMessage struct {
	Id        string        `json:"id"`
	From      string        `json:"from"`
	Timestamp string        `json:"timestamp"`
	Type      string        `json:"type"` // text | image | document | audio
	Text      *TextBody     `json:"text,omitempty"`
	Image     *MediaBody    `json:"image,omitempty"`
	Document  *MediaBody    `json:"document,omitempty"`
	Audio     *MediaBody    `json:"audio,omitempty"`
}

type TextBody struct {
	Body string `json:"body"`
}

type MediaBody struct {
	Id       string `json:"id"`
	MimeType string `json:"mime_type"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
}

type WebhookStatus struct {
	Id          string `json:"id"`
	Status      string `json:"status"`
	RecipientId string `json:"recipient_id"`
}
