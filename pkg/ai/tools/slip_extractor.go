package tools

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nurfahmi/Agentic-Wa/internal/entity"

	goopenai "github.com/sashabaranov/go-openai"
)

// SlipExtractor turns a payslip image into raw text.
type SlipExtractor interface {
	ExtractText(ctx context.Context, image []byte, mimeType string) (string, error)
}

// VisionExtractor transcribes payslips with a vision-capable chat model.
type VisionExtractor struct {
	client *goopenai.Client
	model  string
}

func NewVisionExtractor(apiKey string, model string) *VisionExtractor {
	return &VisionExtractor{
		client: goopenai.NewClient(apiKey),
		model:  model,
	}
}

const visionPrompt = "Transcribe all text from this Malaysian salary slip (slip gaji) exactly as printed, line by line. Include labels such as Nama, Majikan, Jawatan, Gaji Pokok, Gaji Bersih if present. Output plain text only."

func (e *VisionExtractor) ExtractText(ctx context.Context, image []byte, mimeType string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	resp, err := e.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: e.model,
		Messages: []goopenai.ChatCompletionMessage{
			{
				Role: goopenai.ChatMessageRoleUser,
				MultiContent: []goopenai.ChatMessagePart{
					{Type: goopenai.ChatMessagePartTypeText, Text: visionPrompt},
					{
						Type:     goopenai.ChatMessagePartTypeImageURL,
						ImageURL: &goopenai.ChatMessageImageURL{URL: dataURL},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("vision extraction failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("vision extraction returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

var (
	namePattern     = regexp.MustCompile(`(?im)^\s*(?:nama|name)\s*[:\-]\s*(.+)$`)
	employerPattern = regexp.MustCompile(`(?im)^\s*(?:majikan|employer|jabatan|kementerian)\s*[:\-]\s*(.+)$`)
	typePattern     = regexp.MustCompile(`(?im)^\s*(?:jawatan|taraf jawatan|position|employment type)\s*[:\-]\s*(.+)$`)
	salaryPattern   = regexp.MustCompile(`(?im)(?:gaji\s*(?:pokok|bersih|kasar)?|basic\s*salary|net\s*salary)\s*[:\-]?\s*(?:rm)?\s*([\d,]+(?:\.\d{1,2})?)`)
)

// ParseSlipFields extracts structured fields from transcribed slip text.
// The slip is considered valid only when an employer and a positive
// salary were both found.
func ParseSlipFields(text string) *entity.SlipFields {
	fields := &entity.SlipFields{}

	if m := namePattern.FindStringSubmatch(text); m != nil {
		fields.Name = strings.TrimSpace(m[1])
	}
	if m := employerPattern.FindStringSubmatch(text); m != nil {
		fields.Employer = strings.TrimSpace(m[1])
	}
	if m := typePattern.FindStringSubmatch(text); m != nil {
		fields.EmploymentType = strings.TrimSpace(m[1])
	}
	if m := salaryPattern.FindStringSubmatch(text); m != nil {
		raw := strings.ReplaceAll(m[1], ",", "")
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			fields.MonthlySalary = v
		}
	}

	fields.DocumentValid = fields.Employer != "" && fields.MonthlySalary > 0
	return fields
}
