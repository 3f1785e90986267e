package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"quadras/config"
	"quadras/utils"

	"go.uber.org/zap"
)

// WhatsAppSender delivers messages through an external WhatsApp gateway API.
// Unconfigured environments log and drop.
type WhatsAppSender struct {
	HTTPClient *http.Client
}

// NewWhatsAppSender creates a WhatsAppSender with a sane default client.
func NewWhatsAppSender() *WhatsAppSender {
	return &WhatsAppSender{HTTPClient: &http.Client{Timeout: 10 * time.Second}}
}

// Send posts one message to the gateway.
func (s *WhatsAppSender) Send(ctx context.Context, phone, message string) error {
	cfg := config.AppConfig
	if cfg.WhatsAppURL == "" {
		utils.GetLogger().Info("whatsapp gateway not configured, dropping message",
			zap.String("phone", phone))
		return nil
	}

	body, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal whatsapp message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.WhatsAppURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build whatsapp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cfg.WhatsAppKey != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.WhatsAppKey)
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}
	return nil
}
