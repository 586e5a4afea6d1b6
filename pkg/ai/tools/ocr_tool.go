package tools

import (
	"context"
	"encoding/json"
	"os"

	"github.com/nurfahmi/Agentic-Wa/internal/constant"
	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/pkg/logger"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/contract"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/specification"
	"github.com/nurfahmi/Agentic-Wa/pkg/events"
	"github.com/nurfahmi/Agentic-Wa/pkg/llm"
	pktNats "github.com/nurfahmi/Agentic-Wa/pkg/nats"

	"github.com/google/uuid"
)

// OcrTool extracts structured fields from an uploaded salary slip. The
// document row is updated with the extraction outcome as a side effect.
type OcrTool struct {
	documents      contract.DocumentRepository
	extractor      SlipExtractor
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewOcrTool(documents contract.DocumentRepository, extractor SlipExtractor, eventPublisher *pktNats.Publisher, log logger.ILogger) *OcrTool {
	return &OcrTool{
		documents:      documents,
		extractor:      extractor,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (t *OcrTool) Name() string { return "ocr_extract" }

func (t *OcrTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        t.Name(),
		Description: "Extract structured fields (name, employer, employment type, monthly salary) from an uploaded salary slip document.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {
					"type": "string",
					"description": "UUID of the uploaded document to process"
				}
			},
			"required": ["document_id"]
		}`),
	}
}

type ocrArgs struct {
	DocumentID string `json:"document_id"`
}

func (t *OcrTool) Execute(ctx context.Context, args json.RawMessage) string {
	var parsed ocrArgs
	if err := json.Unmarshal(args, &parsed); err != nil {
		return errorResult("invalid arguments: " + err.Error())
	}

	docID, err := uuid.Parse(parsed.DocumentID)
	if err != nil {
		return errorResult("document_id is not a valid UUID")
	}

	doc, err := t.documents.FindOne(ctx, specification.ByID{ID: docID})
	if err != nil {
		return errorResult("failed to load document")
	}
	if doc == nil {
		return errorResult("document not found")
	}

	doc.OcrStatus = constant.OcrStatusProcessing
	if err := t.documents.Update(ctx, doc); err != nil {
		t.logger.Warn("tools", "failed to mark document processing", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
	}

	image, err := os.ReadFile(doc.FilePath)
	if err != nil {
		return t.fail(ctx, doc, "failed to read document file")
	}

	text, err := t.extractor.ExtractText(ctx, image, doc.MimeType)
	if err != nil {
		return t.fail(ctx, doc, "text extraction failed")
	}

	fields := ParseSlipFields(text)
	doc.OcrStatus = constant.OcrStatusCompleted
	doc.OcrResult = fields
	if err := t.documents.Update(ctx, doc); err != nil {
		t.logger.Error("tools", "failed to store ocr result", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
	}

	t.publishProcessed(ctx, doc)

	out, _ := json.Marshal(fields)
	return string(out)
}

func (t *OcrTool) publishProcessed(ctx context.Context, doc *entity.Document) {
	if t.eventPublisher == nil {
		return
	}
	evt := events.NewDocumentProcessed(doc.Id.String(), doc.ConversationId.String(), doc.OcrStatus)
	if err := t.eventPublisher.Publish(ctx, evt); err != nil {
		t.logger.Warn("tools", "failed to publish document event", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
	}
}

// fail records the failure on the document and returns an error payload
// the model can react to with required_action "ocr_failed".
func (t *OcrTool) fail(ctx context.Context, doc *entity.Document, reason string) string {
	doc.OcrStatus = constant.OcrStatusFailed
	if err := t.documents.Update(ctx, doc); err != nil {
		t.logger.Warn("tools", "failed to mark document failed", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
	}
	t.publishProcessed(ctx, doc)
	return errorResult(reason)
}
