// Package whatsapp implementa el envío de mensajes salientes a través de
// la Cloud API de WhatsApp (Graph API).
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://graph.facebook.com/v17.0"

// Sender envía un mensaje de texto a un destinatario
type Sender interface {
	Send(ctx context.Context, to, text string) error
}

// Client es el cliente de la Cloud API de WhatsApp
type Client struct {
	httpClient    *http.Client
	baseURL       string
	token         string
	phoneNumberID string
}

// NewClient crea un nuevo cliente de WhatsApp
func NewClient(token, phoneNumberID string) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		baseURL:       defaultBaseURL,
		token:         token,
		phoneNumberID: phoneNumberID,
	}
}

// NewClientWithBaseURL crea un cliente apuntando a otra URL base (tests)
func NewClientWithBaseURL(token, phoneNumberID, baseURL string) *Client {
	c := NewClient(token, phoneNumberID)
	c.baseURL = baseURL
	return c
}

type outboundMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Text             outboundText `json:"text"`
}

type outboundText struct {
	Body string `json:"body"`
}

// Send envía un mensaje de texto al número indicado
func (c *Client) Send(ctx context.Context, to, text string) error {
	payload := outboundMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Text:             outboundText{Body: text},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error al serializar mensaje: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error al crear request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error al enviar mensaje: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("la API de WhatsApp respondió %d: %s", resp.StatusCode, string(detail))
	}

	return nil
}
