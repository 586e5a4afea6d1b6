package prompt

import (
	"fmt"
	"strings"

	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/pkg/store"
)

// Builder composes the system prompt for one orchestrator turn. It is a
// pure function of its inputs; nothing here talks to the network or
// database.
type Builder struct {
	conversation *entity.Conversation
	state        store.ConversationState
	chunks       []entity.RetrievedChunk
}

func NewBuilder(conversation *entity.Conversation, state store.ConversationState, chunks []entity.RetrievedChunk) *Builder {
	return &Builder{
		conversation: conversation,
		state:        state,
		chunks:       chunks,
	}
}

// Build produces the full system prompt.
func (b *Builder) Build() string {
	var prompt strings.Builder

	b.writePersona(&prompt)
	b.writeKnowledgeContext(&prompt)
	b.writeConversationContext(&prompt)
	b.writeOutputSchema(&prompt)
	b.writeGuidelines(&prompt)

	return prompt.String()
}

func (b *Builder) writePersona(prompt *strings.Builder) {
	prompt.WriteString("<persona>\n")
	prompt.WriteString("Anda ialah pembantu digital rasmi sebuah koperasi kredit di Malaysia.\n")
	prompt.WriteString("Tugas anda membantu pelanggan menyemak kelayakan awal pembiayaan peribadi untuk penjawat awam melalui WhatsApp.\n")
	prompt.WriteString("Jawab dalam Bahasa Malaysia yang mesra dan profesional. Gunakan Bahasa Inggeris hanya jika pelanggan menulis dalam Bahasa Inggeris.\n")
	prompt.WriteString("</persona>\n\n")
}

func (b *Builder) writeKnowledgeContext(prompt *strings.Builder) {
	if len(b.chunks) == 0 {
		prompt.WriteString("<knowledge_context>\n")
		prompt.WriteString("Tiada maklumat rujukan ditemui untuk soalan ini. Jika soalan memerlukan fakta tentang produk atau syarat koperasi, JANGAN meneka; tetapkan escalate kepada true dan maklumkan pelanggan bahawa pegawai akan membantu.\n")
		prompt.WriteString("</knowledge_context>\n\n")
		return
	}

	prompt.WriteString("<knowledge_context>\n")
	prompt.WriteString("Maklumat rujukan rasmi koperasi (gunakan HANYA maklumat ini untuk fakta produk):\n\n")
	for i, chunk := range b.chunks {
		prompt.WriteString(fmt.Sprintf("[%d] %s (%s)\n%s\n\n", i+1, chunk.Title, chunk.Category, chunk.Content))
	}
	prompt.WriteString("</knowledge_context>\n\n")
}

func (b *Builder) writeConversationContext(prompt *strings.Builder) {
	prompt.WriteString("<conversation_context>\n")

	if b.conversation != nil {
		if b.conversation.CustomerName != "" {
			prompt.WriteString("Nama pelanggan: " + b.conversation.CustomerName + "\n")
		}
		prompt.WriteString("Status kelayakan semasa: " + b.conversation.Eligibility + "\n")
	}

	stage := b.state.Stage
	if stage == "" {
		stage = store.StageGreeting
	}
	prompt.WriteString("Peringkat perbualan: " + stage + "\n")
	if b.state.LastIntent != "" {
		prompt.WriteString("Niat terakhir dikesan: " + b.state.LastIntent + "\n")
	}
	if len(b.state.PendingFields) > 0 {
		prompt.WriteString("Maklumat yang masih diperlukan: " + strings.Join(b.state.PendingFields, ", ") + "\n")
	}

	prompt.WriteString("</conversation_context>\n\n")
}

func (b *Builder) writeOutputSchema(prompt *strings.Builder) {
	prompt.WriteString("<output_schema>\n")
	prompt.WriteString("Balas HANYA dengan objek JSON tunggal mengikut skema ini:\n")
	prompt.WriteString(`{
  "intent": "string, niat pelanggan, cth: eligibility_check | faq | document_upload | complaint | other",
  "confidence": "number antara 0 dan 1, keyakinan anda terhadap jawapan ini",
  "required_action": "string: none | escalate | ocr_failed | request_document | request_info",
  "eligibility_status": "string: PENDING | PRE_ELIGIBLE | NOT_ELIGIBLE | REQUIRES_REVIEW",
  "reason": "string, sebab ringkas untuk keputusan anda",
  "escalate": "boolean, true jika pegawai manusia perlu mengambil alih",
  "reply_text": "string, balasan penuh kepada pelanggan dalam Bahasa Malaysia"
}`)
	prompt.WriteString("\n</output_schema>\n\n")
}

func (b *Builder) writeGuidelines(prompt *strings.Builder) {
	prompt.WriteString("<guidelines>\n")
	prompt.WriteString("1. JANGAN sesekali menentukan kelayakan sendiri; sentiasa guna tool calculate_eligibility.\n")
	prompt.WriteString("2. Guna tool validate_government_staff sebelum mengesahkan status penjawat awam.\n")
	prompt.WriteString("3. Guna tool ocr_extract apabila pelanggan memuat naik slip gaji.\n")
	prompt.WriteString("4. JANGAN berjanji kelulusan. Status tertinggi ialah PRE_ELIGIBLE, iaitu layak untuk permohonan awal sahaja.\n")
	prompt.WriteString("5. Jika tool ocr_extract gagal, tetapkan required_action kepada ocr_failed.\n")
	prompt.WriteString("6. Jika tidak pasti, tetapkan confidence rendah dan escalate kepada true.\n")
	prompt.WriteString("7. Jangan minta maklumat peribadi yang tidak diperlukan untuk semakan kelayakan.\n")
	prompt.WriteString("</guidelines>\n")
}
