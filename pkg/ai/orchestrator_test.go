package ai

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nurfahmi/Agentic-Wa/internal/constant"
	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/pkg/logger"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/specification"
	"github.com/nurfahmi/Agentic-Wa/pkg/ai/escalation"
	"github.com/nurfahmi/Agentic-Wa/pkg/llm"
	"github.com/nurfahmi/Agentic-Wa/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type scriptedProvider struct {
	responses []*llm.CompletionResponse
	errs      []error
	calls     int
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (*llm.CompletionResponse, error) {
	i := p.calls
	p.calls++
	if i < len(p.errs) && p.errs[i] != nil {
		return nil, p.errs[i]
	}
	if i < len(p.responses) {
		return p.responses[i], nil
	}
	return nil, errors.New("no scripted response")
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

type stubRetriever struct {
	chunks []entity.RetrievedChunk
}

func (s *stubRetriever) Search(ctx context.Context, query string) []entity.RetrievedChunk {
	return s.chunks
}

type stubToolExecutor struct {
	executed []string
	result   string
}

func (s *stubToolExecutor) Definitions() []llm.ToolDefinition { return nil }
func (s *stubToolExecutor) Execute(ctx context.Context, name string, args json.RawMessage) string {
	s.executed = append(s.executed, name)
	return s.result
}

type stubMessageRepo struct {
	history []*entity.Message
}

func (s *stubMessageRepo) Create(ctx context.Context, message *entity.Message) error { return nil }
func (s *stubMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	return nil, nil
}
func (s *stubMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	return s.history, nil
}
func (s *stubMessageRepo) FindRecentByConversation(ctx context.Context, conversationId uuid.UUID, limit int) ([]*entity.Message, error) {
	return s.history, nil
}
func (s *stubMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(s.history)), nil
}

type capturingLogRepo struct {
	rows []*entity.DecisionLog
	err  error
}

func (c *capturingLogRepo) Create(ctx context.Context, log *entity.DecisionLog) error {
	c.rows = append(c.rows, log)
	return c.err
}
func (c *capturingLogRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DecisionLog, error) {
	return c.rows, nil
}
func (c *capturingLogRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(c.rows)), nil
}

func textResponse(content string) *llm.CompletionResponse {
	return &llm.CompletionResponse{Content: content}
}

func validDecisionJSON(confidence float64, status string) string {
	raw, _ := json.Marshal(map[string]interface{}{
		"intent":             "eligibility_check",
		"confidence":         confidence,
		"required_action":    "none",
		"eligibility_status": status,
		"reason":             "semakan lengkap",
		"escalate":           false,
		"reply_text":         "Terima kasih, semakan anda selesai.",
	})
	return string(raw)
}

type fixture struct {
	orchestrator *Orchestrator
	provider     *scriptedProvider
	tools        *stubToolExecutor
	logs         *capturingLogRepo
	conversation *entity.Conversation
	message      *entity.Message
}

func newFixture(provider *scriptedProvider) *fixture {
	tools := &stubToolExecutor{result: `{"ok":true}`}
	logs := &capturingLogRepo{}
	orch := NewOrchestrator(
		provider,
		&stubRetriever{},
		tools,
		escalation.NewPolicy(),
		store.NewMemoryStateStore(),
		&stubMessageRepo{},
		logs,
		logger.NewNoopLogger(),
	)
	conv := &entity.Conversation{
		Id:          uuid.New(),
		WaId:        "60123456789",
		Status:      constant.ConversationStatusAIHandling,
		Eligibility: constant.EligibilityPending,
	}
	msg := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conv.Id,
		Direction:      constant.MessageDirectionInbound,
		Type:           constant.MessageTypeText,
		Content:        "Saya nak semak kelayakan pembiayaan.",
	}
	return &fixture{orchestrator: orch, provider: provider, tools: tools, logs: logs, conversation: conv, message: msg}
}

func TestProcessTurn_ValidConfidentOutput(t *testing.T) {
	f := newFixture(&scriptedProvider{
		responses: []*llm.CompletionResponse{textResponse(validDecisionJSON(0.9, constant.EligibilityPending))},
	})

	result := f.orchestrator.ProcessTurn(context.Background(), f.conversation, f.message)

	assert.Equal(t, "Terima kasih, semakan anda selesai.", result.Reply)
	assert.False(t, result.Escalate)
	assert.Empty(t, result.EscalationReasons)
	assert.Equal(t, 1, f.provider.calls)

	assert.Len(t, f.logs.rows, 1)
	row := f.logs.rows[0]
	assert.True(t, row.OutputValid)
	assert.Equal(t, 0, row.RetryCount)
	assert.Equal(t, "eligibility_check", row.Intent)
}

func TestProcessTurn_InvalidOutputRetriesThenFallsBack(t *testing.T) {
	f := newFixture(&scriptedProvider{
		responses: []*llm.CompletionResponse{
			textResponse("bukan json"),
			textResponse("masih bukan json"),
			textResponse("{}"),
		},
	})

	result := f.orchestrator.ProcessTurn(context.Background(), f.conversation, f.message)

	assert.Equal(t, constant.FallbackHandoffReply, result.Reply)
	assert.True(t, result.Escalate)
	assert.Equal(t, constant.EscalationReasonLowConfidence, result.EscalationReasons[0])
	assert.Equal(t, constant.MaxValidationRetries+1, f.provider.calls)

	// The fallback decision carries the full fixed shape.
	assert.NotNil(t, result.Decision)
	assert.Equal(t, constant.IntentUnknown, result.Decision.Intent)
	assert.Equal(t, float64(0), result.Decision.Confidence)
	assert.Equal(t, constant.RequiredActionEscalate, result.Decision.RequiredAction)
	assert.Equal(t, constant.EligibilityPending, result.Decision.EligibilityStatus)
	assert.True(t, result.Decision.Escalate)

	assert.Len(t, f.logs.rows, 1)
	row := f.logs.rows[0]
	assert.False(t, row.OutputValid)
	assert.Equal(t, constant.MaxValidationRetries, row.RetryCount)
	assert.Equal(t, constant.IntentUnknown, row.Intent)
	assert.Equal(t, constant.RequiredActionEscalate, row.RequiredAction)
}

func TestProcessTurn_InvalidThenValidRecordsOneRetry(t *testing.T) {
	f := newFixture(&scriptedProvider{
		responses: []*llm.CompletionResponse{
			textResponse("bukan json"),
			textResponse(validDecisionJSON(0.9, constant.EligibilityPending)),
		},
	})

	result := f.orchestrator.ProcessTurn(context.Background(), f.conversation, f.message)

	assert.False(t, result.Escalate)
	assert.Equal(t, 1, f.logs.rows[0].RetryCount)
	assert.True(t, f.logs.rows[0].OutputValid)
}

func TestProcessTurn_LowConfidenceTriggersGuardrail(t *testing.T) {
	f := newFixture(&scriptedProvider{
		responses: []*llm.CompletionResponse{textResponse(validDecisionJSON(0.5, constant.EligibilityPending))},
	})

	result := f.orchestrator.ProcessTurn(context.Background(), f.conversation, f.message)

	assert.True(t, result.Escalate)
	assert.Contains(t, result.EscalationReasons, constant.EscalationReasonLowConfidence)

	// The decision is forced to the handoff action but the model's
	// validated reply is still the one sent.
	assert.NotNil(t, result.Decision)
	assert.True(t, result.Decision.Escalate)
	assert.Equal(t, constant.RequiredActionEscalate, result.Decision.RequiredAction)
	assert.Equal(t, "Terima kasih, semakan anda selesai.", result.Reply)

	assert.True(t, f.logs.rows[0].OutputValid)
	assert.Equal(t, constant.RequiredActionEscalate, f.logs.rows[0].RequiredAction)
}

func TestProcessTurn_ModelEscalateForcesHandoffAction(t *testing.T) {
	raw, _ := json.Marshal(map[string]interface{}{
		"intent":             "complaint",
		"confidence":         0.9,
		"required_action":    "none",
		"eligibility_status": constant.EligibilityPending,
		"reason":             "aduan pelanggan",
		"escalate":           true,
		"reply_text":         "Pegawai kami akan membantu anda.",
	})
	f := newFixture(&scriptedProvider{
		responses: []*llm.CompletionResponse{textResponse(string(raw))},
	})

	result := f.orchestrator.ProcessTurn(context.Background(), f.conversation, f.message)

	assert.True(t, result.Escalate)
	assert.Equal(t, constant.RequiredActionEscalate, result.Decision.RequiredAction)
	assert.Equal(t, "Pegawai kami akan membantu anda.", result.Reply)
}

func TestProcessTurn_ToolCallsAreExecutedAndLogged(t *testing.T) {
	args := json.RawMessage(`{"is_penjawat_awam":true,"monthly_salary":3000,"age":35}`)
	f := newFixture(&scriptedProvider{
		responses: []*llm.CompletionResponse{
			{ToolCalls: []llm.ToolCall{{ID: "call_1", Name: "calculate_eligibility", Arguments: args}}},
			textResponse(validDecisionJSON(0.9, constant.EligibilityPreEligible)),
		},
	})

	result := f.orchestrator.ProcessTurn(context.Background(), f.conversation, f.message)

	assert.False(t, result.Escalate)
	assert.Equal(t, []string{"calculate_eligibility"}, f.tools.executed)
	assert.Equal(t, []string{"calculate_eligibility"}, f.logs.rows[0].ToolsCalled)
}

func TestProcessTurn_ApprovedStatusIsCoerced(t *testing.T) {
	f := newFixture(&scriptedProvider{
		responses: []*llm.CompletionResponse{textResponse(validDecisionJSON(0.9, "APPROVED"))},
	})

	result := f.orchestrator.ProcessTurn(context.Background(), f.conversation, f.message)

	assert.Equal(t, constant.EligibilityPreEligible, result.Decision.EligibilityStatus)
}

func TestProcessTurn_UserRequestedHumanEscalates(t *testing.T) {
	f := newFixture(&scriptedProvider{
		responses: []*llm.CompletionResponse{textResponse(validDecisionJSON(0.9, constant.EligibilityPending))},
	})
	f.message.Content = "saya nak cakap dengan pegawai"

	result := f.orchestrator.ProcessTurn(context.Background(), f.conversation, f.message)

	assert.True(t, result.Escalate)
	assert.Equal(t, []string{constant.EscalationReasonUserRequest}, result.EscalationReasons)
	// The validated reply is still used; escalation rides alongside.
	assert.Equal(t, "Terima kasih, semakan anda selesai.", result.Reply)
}

func TestProcessTurn_ProviderErrorsConsumeRetries(t *testing.T) {
	f := newFixture(&scriptedProvider{
		errs: []error{errors.New("timeout"), errors.New("timeout"), errors.New("timeout")},
	})

	result := f.orchestrator.ProcessTurn(context.Background(), f.conversation, f.message)

	assert.Equal(t, constant.FallbackHandoffReply, result.Reply)
	assert.True(t, result.Escalate)
	assert.Equal(t, constant.MaxValidationRetries+1, f.provider.calls)
	assert.False(t, f.logs.rows[0].OutputValid)
}

func TestProcessTurn_LogWriteFailureDoesNotLoseReply(t *testing.T) {
	f := newFixture(&scriptedProvider{
		responses: []*llm.CompletionResponse{textResponse(validDecisionJSON(0.9, constant.EligibilityPending))},
	})
	f.logs.err = errors.New("db down")

	result := f.orchestrator.ProcessTurn(context.Background(), f.conversation, f.message)

	assert.Equal(t, "Terima kasih, semakan anda selesai.", result.Reply)
	assert.NotNil(t, result.Log)
}
