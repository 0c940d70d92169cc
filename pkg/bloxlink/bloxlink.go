// Package bloxlink resolves Discord users to their linked Roblox
// accounts through the public Bloxlink API.
package bloxlink

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

const defaultBaseURL = "https://api.blox.link"

// ErrNotLinked indicates the Discord user has no Roblox account linked
var ErrNotLinked = errors.New("no linked Roblox account")

// Client llama a la API pública de Bloxlink
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var (
	instance *Client
	once     sync.Once
)

// Init creates the shared Bloxlink client
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
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type resolveResponse struct {
	RobloxID string `json:"robloxID"`
	Error    string `json:"error"`
}

// ResolveRobloxID returns the Roblox user ID linked to a Discord user
// within a guild. Returns ErrNotLinked when no link exists.
func (c *Client) ResolveRobloxID(guildID, discordUserID string) (string, error) {
	url := fmt.Sprintf("%s/v4/public/guilds/%s/discord-to-roblox/%s", c.baseURL, guildID, discordUserID)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrNotLinked
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bloxlink devolvió estado %d", resp.StatusCode)
	}

	var result resolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.RobloxID == "" {
		return "", ErrNotLinked
	}
	return result.RobloxID, nil
}
