// Package ai checks message content against the OpenAI moderation
// endpoint. The verdict is advisory; automod treats an API failure as
// not flagged.
package ai

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

const (
	moderationsURL  = "https://api.openai.com/v1/moderations"
	moderationModel = "omni-moderation-latest"
)

// Verdict is the outcome of one moderation check
type Verdict struct {
	Flagged    bool
	Categories []string
}

// Client llama al endpoint de moderación de OpenAI
type Client struct {
	apiKey     string
	httpClient *http.Client
}

var (
	instance *Client
	once     sync.Once
)

// Init creates the shared moderation client
func Init(apiKey string) *Client {
	once.Do(func() {
		instance = NewClient(apiKey)
	})
	return instance
}

// Get returns the shared client, or nil before Init
func Get() *Client {
	return instance
}

// NewClient builds a standalone client
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type moderationRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type moderationResponse struct {
	Results []struct {
		Flagged    bool            `json:"flagged"`
		Categories map[string]bool `json:"categories"`
	} `json:"results"`
}

// Moderate classifies a piece of text
func (c *Client) Moderate(text string) (*Verdict, error) {
	payload, err := json.Marshal(moderationRequest{Model: moderationModel, Input: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", moderationsURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai devolvió estado %d", resp.StatusCode)
	}

	var result moderationResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if len(result.Results) == 0 {
		return &Verdict{}, nil
	}

	verdict := &Verdict{Flagged: result.Results[0].Flagged}
	for category, hit := range result.Results[0].Categories {
		if hit {
			verdict.Categories = append(verdict.Categories, category)
		}
	}
	return verdict, nil
}
