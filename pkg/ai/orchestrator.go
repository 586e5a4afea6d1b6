package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nurfahmi/Agentic-Wa/internal/constant"
	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/pkg/logger"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/contract"
	"github.com/nurfahmi/Agentic-Wa/pkg/ai/escalation"
	"github.com/nurfahmi/Agentic-Wa/pkg/ai/prompt"
	"github.com/nurfahmi/Agentic-Wa/pkg/ai/schema"
	"github.com/nurfahmi/Agentic-Wa/pkg/llm"
	"github.com/nurfahmi/Agentic-Wa/pkg/store"

	"github.com/google/uuid"
)

const (
	// modelCallTimeout bounds one model call; a timed-out call consumes
	// a retry like any other failure.
	modelCallTimeout = 30 * time.Second

	// maxToolRounds caps tool-call round trips within a single turn so a
	// looping model cannot spin forever.
	maxToolRounds = 5

	historyLimit = 10
)

// Retriever supplies knowledge context for the turn.
type Retriever interface {
	Search(ctx context.Context, query string) []entity.RetrievedChunk
}

// ToolExecutor exposes the closed tool set to the orchestrator.
type ToolExecutor interface {
	Definitions() []llm.ToolDefinition
	Execute(ctx context.Context, name string, args json.RawMessage) string
}

var errTooManyToolRounds = errors.New("model exceeded tool call round limit")

// TurnResult is what one processed turn produces: the reply to send and
// the escalation outcome. Reply is always safe to show the customer.
type TurnResult struct {
	Reply             string
	Decision          *entity.Decision
	Escalate          bool
	EscalationReasons []string
	Log               *entity.DecisionLog
}

// Orchestrator runs the per-turn pipeline: compose, call, tools,
// validate, retry, fall back, guardrail, persist. One instance is safe
// for concurrent turns; all per-turn state is local.
type Orchestrator struct {
	provider     llm.LLMProvider
	retriever    Retriever
	tools        ToolExecutor
	policy       *escalation.Policy
	states       store.StateStore
	messages     contract.MessageRepository
	decisionLogs contract.DecisionLogRepository
	logger       logger.ILogger
}

func NewOrchestrator(
	provider llm.LLMProvider,
	retriever Retriever,
	tools ToolExecutor,
	policy *escalation.Policy,
	states store.StateStore,
	messages contract.MessageRepository,
	decisionLogs contract.DecisionLogRepository,
	log logger.ILogger,
) *Orchestrator {
	return &Orchestrator{
		provider:     provider,
		retriever:    retriever,
		tools:        tools,
		policy:       policy,
		states:       states,
		messages:     messages,
		decisionLogs: decisionLogs,
		logger:       log,
	}
}

// ProcessTurn handles one inbound customer message end to end. It never
// returns an error: every failure path degrades to a safe fallback
// reply, and a decision log row is written no matter what happened.
func (o *Orchestrator) ProcessTurn(ctx context.Context, conversation *entity.Conversation, message *entity.Message) (result *TurnResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("orchestrator", "panic during turn", map[string]interface{}{
				"conversation_id": conversation.Id.String(),
				"panic":           fmt.Sprintf("%v", r),
			})
			result = &TurnResult{
				Reply:             constant.SystemErrorReply,
				Escalate:          true,
				EscalationReasons: []string{constant.EscalationReasonLowConfidence},
			}
		}
	}()

	state, err := o.states.Get(ctx, conversation.Id.String())
	if err != nil {
		o.logger.Warn("orchestrator", "state read failed, starting fresh", map[string]interface{}{
			"conversation_id": conversation.Id.String(),
			"error":           err.Error(),
		})
	}

	chunks := o.retriever.Search(ctx, message.Content)
	systemPrompt := prompt.NewBuilder(conversation, state, chunks).Build()
	turnMessages := o.composeMessages(ctx, conversation, message, systemPrompt)

	decision, rawOutput, toolsUsed, retryCount := o.callWithRetries(ctx, turnMessages)

	result = o.decide(message, decision)

	o.persistLog(ctx, conversation, message, decision, rawOutput, toolsUsed, chunks, retryCount, start, result)
	o.updateState(ctx, conversation, result.Decision, state)

	return result
}

// composeMessages assembles system prompt, recent history and the
// current customer message.
func (o *Orchestrator) composeMessages(ctx context.Context, conversation *entity.Conversation, message *entity.Message, systemPrompt string) []llm.Message {
	msgs := []llm.Message{{Role: constant.ChatRoleSystem, Content: systemPrompt}}

	history, err := o.messages.FindRecentByConversation(ctx, conversation.Id, historyLimit)
	if err != nil {
		o.logger.Warn("orchestrator", "history load failed, continuing without it", map[string]interface{}{
			"conversation_id": conversation.Id.String(),
			"error":           err.Error(),
		})
		history = nil
	}

	for _, m := range history {
		if m.Id == message.Id {
			continue
		}
		role := constant.ChatRoleUser
		if m.Direction == constant.MessageDirectionOutbound {
			role = constant.ChatRoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Content})
	}

	msgs = append(msgs, llm.Message{Role: constant.ChatRoleUser, Content: message.Content})
	return msgs
}

// callWithRetries runs the model call loop, executing tool calls and
// re-prompting on schema violations, up to the retry budget.
func (o *Orchestrator) callWithRetries(ctx context.Context, msgs []llm.Message) (decision *entity.Decision, rawOutput string, toolsUsed []string, retryCount int) {
	for attempt := 0; attempt <= constant.MaxValidationRetries; attempt++ {
		retryCount = attempt

		content, usedNow, err := o.runModelExchange(ctx, &msgs)
		if len(usedNow) > 0 {
			toolsUsed = append(toolsUsed, usedNow...)
		}
		if err != nil {
			rawOutput = err.Error()
			o.logger.Warn("orchestrator", "model call failed", map[string]interface{}{
				"attempt": attempt,
				"error":   err.Error(),
			})
			continue
		}

		rawOutput = content
		validated := schema.Validate(content)
		if validated.Valid {
			return validated.Decision, rawOutput, toolsUsed, retryCount
		}

		o.logger.Warn("orchestrator", "model output failed validation", map[string]interface{}{
			"attempt": attempt,
			"error":   validated.Err.Error(),
		})
		msgs = append(msgs,
			llm.Message{Role: constant.ChatRoleAssistant, Content: content},
			llm.Message{Role: constant.ChatRoleUser, Content: constant.InvalidSchemaRetryPrompt},
		)
	}

	return nil, rawOutput, toolsUsed, retryCount
}

// runModelExchange performs one logical model call, resolving any tool
// calls the model makes before it commits to a final answer.
func (o *Orchestrator) runModelExchange(ctx context.Context, msgs *[]llm.Message) (string, []string, error) {
	var toolsUsed []string

	for round := 0; round <= maxToolRounds; round++ {
		callCtx, cancel := context.WithTimeout(ctx, modelCallTimeout)
		resp, err := o.provider.Chat(callCtx, *msgs,
			llm.WithTools(o.tools.Definitions()),
			llm.WithJSONMode(),
		)
		cancel()
		if err != nil {
			return "", toolsUsed, err
		}

		if len(resp.ToolCalls) == 0 {
			return resp.Content, toolsUsed, nil
		}

		*msgs = append(*msgs, llm.Message{
			Role:      constant.ChatRoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})
		for _, call := range resp.ToolCalls {
			toolsUsed = append(toolsUsed, call.Name)
			result := o.tools.Execute(ctx, call.Name, call.Arguments)
			*msgs = append(*msgs, llm.Message{
				Role:       constant.ChatRoleTool,
				ToolCallID: call.ID,
				Content:    result,
			})
		}
	}

	return "", toolsUsed, errTooManyToolRounds
}

// decide applies the fallback and guardrail stages and produces the
// final customer-facing outcome.
func (o *Orchestrator) decide(message *entity.Message, decision *entity.Decision) *TurnResult {
	if decision == nil {
		// Retry budget exhausted: synthesize the fixed handoff decision
		// so the audit trail carries a complete shape instead of empty
		// intent and action fields.
		decision = &entity.Decision{
			Intent:            constant.IntentUnknown,
			Confidence:        0,
			RequiredAction:    constant.RequiredActionEscalate,
			EligibilityStatus: constant.EligibilityPending,
			Reason:            "AI failed to produce valid response",
			Escalate:          true,
			ReplyText:         constant.FallbackHandoffReply,
		}
		reasons := o.policy.Evaluate(message.Content, decision)
		reasons = prependUnique(reasons, constant.EscalationReasonLowConfidence)
		return &TurnResult{
			Decision:          decision,
			Reply:             decision.ReplyText,
			Escalate:          true,
			EscalationReasons: reasons,
		}
	}

	reasons := o.policy.Evaluate(message.Content, decision)
	result := &TurnResult{
		Decision:          decision,
		Reply:             decision.ReplyText,
		Escalate:          decision.Escalate || len(reasons) > 0,
		EscalationReasons: reasons,
	}

	// Low confidence or a model escalation verdict forces the handoff
	// action onto the decision itself so the persisted log reflects it.
	// The model's validated reply is kept unless it is empty.
	if decision.Confidence < constant.MinConfidence || decision.Escalate {
		decision.Escalate = true
		decision.RequiredAction = constant.RequiredActionEscalate
		result.Escalate = true
		if decision.ReplyText == "" {
			decision.ReplyText = constant.GuardrailHandoffReply
		}
		result.Reply = decision.ReplyText
	}

	return result
}

// persistLog writes the audit row for the turn. Log failures are
// swallowed: losing an audit row must not lose the customer reply.
func (o *Orchestrator) persistLog(
	ctx context.Context,
	conversation *entity.Conversation,
	message *entity.Message,
	decision *entity.Decision,
	rawOutput string,
	toolsUsed []string,
	chunks []entity.RetrievedChunk,
	retryCount int,
	start time.Time,
	result *TurnResult,
) {
	logRow := &entity.DecisionLog{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		RawInput:       message.Content,
		RawOutput:      rawOutput,
		OutputValid:    decision != nil,
		ToolsCalled:    toolsUsed,
		RagContext:     chunks,
		RetryCount:     retryCount,
		ProcessingMs:   time.Since(start).Milliseconds(),
	}
	// The logged action comes from the final decision, after the fallback
	// and guardrail stages, so the audit row matches what was sent.
	if result.Decision != nil {
		logRow.Intent = result.Decision.Intent
		logRow.Confidence = result.Decision.Confidence
		logRow.RequiredAction = result.Decision.RequiredAction
	}

	if err := o.decisionLogs.Create(ctx, logRow); err != nil {
		o.logger.Error("orchestrator", "failed to persist decision log", map[string]interface{}{
			"conversation_id": conversation.Id.String(),
			"error":           err.Error(),
		})
	}
	result.Log = logRow
}

// updateState advances the conversation stage. State write failures are
// logged and swallowed.
func (o *Orchestrator) updateState(ctx context.Context, conversation *entity.Conversation, decision *entity.Decision, state store.ConversationState) {
	if decision == nil {
		return
	}

	state.LastIntent = decision.Intent
	state.LastConfidence = decision.Confidence

	switch {
	case decision.EligibilityStatus == constant.EligibilityPreEligible,
		decision.EligibilityStatus == constant.EligibilityNotEligible:
		state.Stage = store.StageDecided
	case decision.RequiredAction == "request_document":
		state.Stage = store.StageAwaitingDocument
	default:
		state.Stage = store.StageCollectingInfo
	}

	if err := o.states.Set(ctx, conversation.Id.String(), state); err != nil {
		o.logger.Warn("orchestrator", "state write failed", map[string]interface{}{
			"conversation_id": conversation.Id.String(),
			"error":           err.Error(),
		})
	}
}

func prependUnique(reasons []string, reason string) []string {
	for _, r := range reasons {
		if r == reason {
			return reasons
		}
	}
	return append([]string{reason}, reasons...)
}
