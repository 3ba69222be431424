package discord

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"timeline-stats/internal/stats"
)

const (
	// Colors for Discord embeds
	colorRed   = 15158332 // 0xE74C3C - for failures
	colorGreen = 5763719  // 0x57F287 - for processed matches

	// Default timeout for webhook requests
	defaultWebhookTimeout = 10 * time.Second

	// Max retries for rate limiting
	maxRetries = 3
)

// WebhookPayload represents a Discord webhook message
type WebhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Embed represents a Discord embed
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

// EmbedField represents a field in a Discord embed
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// EmbedFooter represents the footer of a Discord embed
type EmbedFooter struct {
	Text string `json:"text"`
}

// NewMatchProcessedPayload creates a payload summarizing a computed match
func NewMatchProcessedPayload(matchID string, m *stats.MatchStats) WebhookPayload {
	firstBlood := "none recorded"
	if m.FirstBloodBy != 0 {
		firstBlood = participantLabel(m, m.FirstBloodBy)
	}

	return WebhookPayload{
		Embeds: []Embed{
			{
				Title: fmt.Sprintf("Match %s processed", matchID),
				Color: colorGreen,
				Fields: []EmbedField{
					{
						Name:   "Blue Objectives",
						Value:  objectiveSummary(&m.Blue),
						Inline: true,
					},
					{
						Name:   "Red Objectives",
						Value:  objectiveSummary(&m.Red),
						Inline: true,
					},
					{
						Name:   "First Blood",
						Value:  firstBlood,
						Inline: true,
					},
					{
						Name:  "Kill Leader",
						Value: killLeader(m),
					},
				},
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			},
		},
	}
}

// NewMatchFailedPayload creates a payload for a match that failed to process
func NewMatchFailedPayload(matchID string, procErr error) WebhookPayload {
	return WebhookPayload{
		Embeds: []Embed{
			{
				Title:       fmt.Sprintf("Match %s failed", matchID),
				Description: procErr.Error(),
				Color:       colorRed,
				Footer: &EmbedFooter{
					Text: "Remaining match IDs were still attempted",
				},
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			},
		},
	}
}

// objectiveSummary renders a team's objective counts for an embed field
func objectiveSummary(t *stats.TeamStats) string {
	return fmt.Sprintf("%d dragons, %d heralds\n%d plates",
		t.Dragons, t.Heralds,
		t.Top.Plates+t.Mid.Plates+t.Bot.Plates)
}

// killLeader returns the participant with the most kills as "name (K/D/A)"
func killLeader(m *stats.MatchStats) string {
	leaderID := 0
	leaderKills := -1
	for id, s := range m.ParticipantStats {
		if s.Kills > leaderKills || (s.Kills == leaderKills && id < leaderID) {
			leaderID = id
			leaderKills = s.Kills
		}
	}
	if leaderID == 0 {
		return "n/a"
	}
	s := m.ParticipantStats[leaderID]
	return fmt.Sprintf("%s (%d/%d/%d)", participantLabel(m, leaderID), s.Kills, s.Deaths, s.Assists)
}

// participantLabel returns the resolved name for a participant, falling back
// to the numeric ID
func participantLabel(m *stats.MatchStats, id int) string {
	if name, ok := m.ParticipantNames[id]; ok && name != "" {
		return name
	}
	return "#" + strconv.Itoa(id)
}

// WebhookClient sends notifications to Discord webhooks
type WebhookClient struct {
	webhookURL string
	httpClient *http.Client
}

// NewWebhookClient creates a new WebhookClient
func NewWebhookClient(webhookURL string) *WebhookClient {
	return &WebhookClient{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: defaultWebhookTimeout,
		},
	}
}

// SendMatchProcessed sends a match summary notification
func (c *WebhookClient) SendMatchProcessed(ctx context.Context, matchID string, m *stats.MatchStats) error {
	return c.sendPayload(ctx, NewMatchProcessedPayload(matchID, m))
}

// SendMatchFailed sends a match failure notification
func (c *WebhookClient) SendMatchFailed(ctx context.Context, matchID string, procErr error) error {
	return c.sendPayload(ctx, NewMatchFailedPayload(matchID, procErr))
}

// sendPayload sends a webhook payload with retry on rate limiting
func (c *WebhookClient) sendPayload(ctx context.Context, payload WebhookPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, "POST", c.webhookURL, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		resp.Body.Close()

		// Success - Discord returns 204 No Content
		if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusOK {
			return nil
		}

		// Rate limited - wait and retry
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := resp.Header.Get("Retry-After")
			waitDuration := time.Second // Default wait
			if retryAfter != "" {
				if seconds, err := strconv.Atoi(retryAfter); err == nil {
					waitDuration = time.Duration(seconds) * time.Second
				}
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(waitDuration):
				continue
			}
		}

		// Other error
		return fmt.Errorf("webhook request failed with status %d", resp.StatusCode)
	}

	return fmt.Errorf("webhook request failed after %d retries", maxRetries)
}
