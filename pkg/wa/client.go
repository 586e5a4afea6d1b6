package wa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the WhatsApp Business Cloud API (Graph API).
type Client struct {
	token         string
	phoneNumberID string
	apiVersion    string
	baseURL       string
	httpClient    *http.Client
}

func NewClient(token, phoneNumberID, apiVersion string) *Client {
	if apiVersion == "" {
		apiVersion = "v20.0"
	}
	return &Client{
		token:         token,
		phoneNumberID: phoneNumberID,
		apiVersion:    apiVersion,
		baseURL:       "https://graph.facebook.com",
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

type textMessageRequest struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             textPayload `json:"text"`
}

type textPayload struct {
	Body string `json:"body"`
}

type templateMessageRequest struct {
	MessagingProduct string          `json:"messaging_product"`
	To               string          `json:"to"`
	Type             string          `json:"type"`
	Template         templatePayload `json:"template"`
}

type templatePayload struct {
	Name     string           `json:"name"`
	Language templateLanguage `json:"language"`
}

type templateLanguage struct {
	Code string `json:"code"`
}

type markReadRequest struct {
	MessagingProduct string `json:"messaging_product"`
	Status           string `json:"status"`
	MessageID        string `json:"message_id"`
}

type mediaURLResponse struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
}

// SendText sends a plain text reply to a customer phone number.
func (c *Client) SendText(ctx context.Context, to string, body string) error {
	req := textMessageRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             textPayload{Body: body},
	}
	endpoint := fmt.Sprintf("%s/%s/%s/messages", c.baseURL, c.apiVersion, c.phoneNumberID)
	return c.post(ctx, endpoint, req)
}

// SendTemplate sends a pre-approved template message, used to re-open
// conversations outside the 24h customer service window.
func (c *Client) SendTemplate(ctx context.Context, to string, templateName string, languageCode string) error {
	req := templateMessageRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "template",
		Template: templatePayload{
			Name:     templateName,
			Language: templateLanguage{Code: languageCode},
		},
	}
	endpoint := fmt.Sprintf("%s/%s/%s/messages", c.baseURL, c.apiVersion, c.phoneNumberID)
	return c.post(ctx, endpoint, req)
}

// MarkAsRead marks an inbound message as read so the customer sees the
// blue ticks while the agent is thinking.
func (c *Client) MarkAsRead(ctx context.Context, messageID string) error {
	req := markReadRequest{
		MessagingProduct: "whatsapp",
		Status:           "read",
		MessageID:        messageID,
	}
	endpoint := fmt.Sprintf("%s/%s/%s/messages", c.baseURL, c.apiVersion, c.phoneNumberID)
	return c.post(ctx, endpoint, req)
}

// DownloadMedia resolves a media id to its temporary URL and downloads
// the bytes. Used for payslip images attached to messages.
func (c *Client) DownloadMedia(ctx context.Context, mediaID string) ([]byte, string, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.apiVersion, mediaID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve media url: %w", err)
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, "", err
	}
	if res.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("error from graph api, code %d, body %s", res.StatusCode, string(resByte))
	}

	var mediaURL mediaURLResponse
	if err := json.Unmarshal(resByte, &mediaURL); err != nil {
		return nil, "", err
	}

	dlReq, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL.URL, nil)
	if err != nil {
		return nil, "", err
	}
	dlReq.Header.Set("Authorization", "Bearer "+c.token)

	dlRes, err := c.httpClient.Do(dlReq)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download media: %w", err)
	}
	defer dlRes.Body.Close()

	data, err := io.ReadAll(dlRes.Body)
	if err != nil {
		return nil, "", err
	}
	if dlRes.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("error downloading media, code %d", dlRes.StatusCode)
	}

	return data, mediaURL.MimeType, nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call graph api: %w", err)
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("error from graph api, code %d, body %s", res.StatusCode, string(resByte))
	}

	return nil
}
