package prompt

import (
	"testing"

	"github.com/nurfahmi/Agentic-Wa/internal/constant"
	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestBuild_IncludesRetrievedChunks(t *testing.T) {
	conv := &entity.Conversation{
		CustomerName: "Ahmad",
		Eligibility:  constant.EligibilityPending,
	}
	chunks := []entity.RetrievedChunk{
		{Title: "Syarat Kelayakan", Category: "RULES", Content: "Gaji minimum RM1800.", Score: 0.9},
		{Title: "Dokumen Diperlukan", Category: "DOCUMENTS", Content: "Slip gaji terkini.", Score: 0.8},
	}

	out := NewBuilder(conv, store.ConversationState{Stage: store.StageCollectingInfo}, chunks).Build()

	assert.Contains(t, out, "Syarat Kelayakan")
	assert.Contains(t, out, "Gaji minimum RM1800.")
	assert.Contains(t, out, "[2] Dokumen Diperlukan (DOCUMENTS)")
	assert.Contains(t, out, "Nama pelanggan: Ahmad")
	assert.Contains(t, out, "Peringkat perbualan: "+store.StageCollectingInfo)
}

func TestBuild_NoContextBiasesTowardEscalation(t *testing.T) {
	out := NewBuilder(nil, store.ConversationState{}, nil).Build()

	assert.Contains(t, out, "Tiada maklumat rujukan ditemui")
	assert.Contains(t, out, "escalate")
	assert.NotContains(t, out, "Maklumat rujukan rasmi koperasi")
}

func TestBuild_DefaultsStageToGreeting(t *testing.T) {
	out := NewBuilder(nil, store.ConversationState{}, nil).Build()

	assert.Contains(t, out, "Peringkat perbualan: "+store.StageGreeting)
}

func TestBuild_IncludesOutputSchemaAndGuardrails(t *testing.T) {
	out := NewBuilder(nil, store.ConversationState{}, nil).Build()

	assert.Contains(t, out, `"reply_text"`)
	assert.Contains(t, out, "PRE_ELIGIBLE")
	assert.Contains(t, out, "calculate_eligibility")
	assert.Contains(t, out, "validate_government_staff")
	assert.Contains(t, out, "JANGAN berjanji kelulusan")
}

func TestBuild_ListsPendingFields(t *testing.T) {
	state := store.ConversationState{
		Stage:         store.StageCollectingInfo,
		PendingFields: []string{"gaji bulanan", "umur"},
	}

	out := NewBuilder(nil, state, nil).Build()

	assert.Contains(t, out, "gaji bulanan, umur")
}
