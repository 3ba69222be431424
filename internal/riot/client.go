package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"
)

const (
	// API base URLs
	americasBaseURL = "https://americas.api.riotgames.com"

	// Rate limits for dev key (using conservative values to be safe)
	requestsPerSecond = 15 // Actual: 20, using 15 for safety
	requestsPer2Min   = 90 // Actual: 100, using 90 for safety
)

// Client is a rate-limited Riot API client
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	// Rate limiting
	mu          sync.Mutex
	shortWindow []time.Time // Requests in last second
	longWindow  []time.Time // Requests in last 2 minutes
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithClientBaseURL sets a custom base URL (useful for testing)
func WithClientBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates a new Riot API client using the RIOT_API_KEY env var
func NewClient(opts ...ClientOption) (*Client, error) {
	apiKey := os.Getenv("RIOT_API_KEY")
	if apiKey == "" {
		// Also check alternative env var name
		apiKey = os.Getenv("RIOT-DEV-KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("RIOT_API_KEY or RIOT-DEV-KEY environment variable not set")
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: americasBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		shortWindow: make([]time.Time, 0),
		longWindow:  make([]time.Time, 0),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// waitForRateLimit blocks until we can make another request
func (c *Client) waitForRateLimit() {
	for {
		c.mu.Lock()

		now := time.Now()

		// Clean up old entries
		oneSecondAgo := now.Add(-1 * time.Second)
		twoMinutesAgo := now.Add(-2 * time.Minute)

		// Filter short window
		newShort := make([]time.Time, 0)
		for _, t := range c.shortWindow {
			if t.After(oneSecondAgo) {
				newShort = append(newShort, t)
			}
		}
		c.shortWindow = newShort

		// Filter long window
		newLong := make([]time.Time, 0)
		for _, t := range c.longWindow {
			if t.After(twoMinutesAgo) {
				newLong = append(newLong, t)
			}
		}
		c.longWindow = newLong

		// Check if we need to wait for short window
		if len(c.shortWindow) >= requestsPerSecond {
			waitTime := c.shortWindow[0].Add(time.Second).Sub(now) + 100*time.Millisecond
			c.mu.Unlock()
			time.Sleep(waitTime)
			continue // Re-check after waiting
		}

		// Check if we need to wait for long window
		if len(c.longWindow) >= requestsPer2Min {
			waitTime := c.longWindow[0].Add(2*time.Minute).Sub(now) + 100*time.Millisecond
			c.mu.Unlock()
			fmt.Printf("      [Rate limit] %d req/2min, waiting %.1fs...\n", len(c.longWindow), waitTime.Seconds())
			time.Sleep(waitTime)
			continue // Re-check after waiting
		}

		// Record this request and exit loop
		c.shortWindow = append(c.shortWindow, time.Now())
		c.longWindow = append(c.longWindow, time.Now())
		c.mu.Unlock()
		return
	}
}

// doRequest makes a rate-limited request
func (c *Client) doRequest(ctx context.Context, url string, result interface{}) error {
	c.waitForRateLimit()

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Riot-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == 429 {
		// Rate limited - wait and retry
		retryAfter := resp.Header.Get("Retry-After")
		waitTime := 10 // Default 10 seconds
		if retryAfter != "" {
			fmt.Sscanf(retryAfter, "%d", &waitTime)
		}
		fmt.Printf("      [429 Rate Limited] Waiting %d seconds...\n", waitTime)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(waitTime) * time.Second):
		}
		return c.doRequest(ctx, url, result)
	}

	if resp.StatusCode == 403 {
		return fmt.Errorf("API returned 403 Forbidden - check if your API key is valid")
	}

	if resp.StatusCode == 404 {
		return fmt.Errorf("API returned 404 Not Found - player/match may not exist")
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

// GetAccountByPUUID fetches account info (game name and tag line) by PUUID
func (c *Client) GetAccountByPUUID(ctx context.Context, puuid string) (*AccountResponse, error) {
	url := fmt.Sprintf("%s/riot/account/v1/accounts/by-puuid/%s", c.baseURL, puuid)

	var account AccountResponse
	err := c.doRequest(ctx, url, &account)
	return &account, err
}

// GetAccountByRiotID fetches account info by Riot ID (gameName#tagLine)
func (c *Client) GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*AccountResponse, error) {
	url := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.baseURL, gameName, tagLine)

	var account AccountResponse
	err := c.doRequest(ctx, url, &account)
	return &account, err
}

// GetTimeline fetches match timeline
func (c *Client) GetTimeline(ctx context.Context, matchID string) (*TimelineResponse, error) {
	url := fmt.Sprintf("%s/lol/match/v5/matches/%s/timeline", c.baseURL, matchID)

	var timeline TimelineResponse
	err := c.doRequest(ctx, url, &timeline)
	return &timeline, err
}

// ResolveName returns the display name for a PUUID ("GameName#TagLine").
// Satisfies the stats.NameResolver interface.
func (c *Client) ResolveName(ctx context.Context, puuid string) (string, error) {
	account, err := c.GetAccountByPUUID(ctx, puuid)
	if err != nil {
		return "", fmt.Errorf("account lookup for %s failed: %w", truncatePUUID(puuid), err)
	}
	return account.DisplayName(), nil
}

// truncatePUUID shortens a PUUID for log output
func truncatePUUID(puuid string) string {
	if len(puuid) <= 16 {
		return puuid
	}
	return puuid[:16] + "..."
}
