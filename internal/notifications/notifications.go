// Package notifications sends ntfy-style push alerts for critical
// daemon events, adapted from the teacher's internal/notifications
// (which posted to ntfy.sh) into an injectable Notifier instead of
// package-level globals wired to the deleted env package.
package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Notifier posts alert messages to an ntfy topic. A zero-value
// Notifier (no URL configured) is inert: Send returns nil without
// making a request, so callers never need a nil check.
type Notifier struct {
	client  *http.Client
	baseURL string
	topic   string
}

// New builds a Notifier. baseURL defaults to https://ntfy.sh when
// empty. An empty topic disables delivery.
func New(baseURL, topic string) *Notifier {
	if baseURL == "" {
		baseURL = "https://ntfy.sh"
	}
	n := &Notifier{baseURL: baseURL, topic: topic}
	if topic != "" {
		n.client = &http.Client{Timeout: 10 * time.Second}
		log.Info().Str("topic", topic).Str("url", baseURL).Msg("ntfy notifications initialized")
	} else {
		log.Warn().Msg("ntfy topic not configured, notifications disabled")
	}
	return n
}

// Send posts title/message to the configured topic. A no-op when the
// Notifier has no topic configured.
func (n *Notifier) Send(title, message string) error {
	if n.client == nil {
		return nil
	}

	url := fmt.Sprintf("%s/%s", n.baseURL, n.topic)

	payload := map[string]string{
		"topic":   n.topic,
		"title":   title,
		"message": message,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ntfy returned non-success status: %d", resp.StatusCode)
	}

	log.Debug().Str("title", title).Int("status", resp.StatusCode).Msg("notification sent")
	return nil
}
