// Package roblox wraps the Roblox web APIs the bot needs: username
// lookups, group role listings and rank changes.
//
// Rank changes are authenticated with a .ROBLOSECURITY cookie and the
// X-CSRF-TOKEN handshake: Roblox rejects the first mutating request
// with 403 and hands the token back in a response header.
package roblox

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

const (
	usersBaseURL  = "https://users.roblox.com"
	groupsBaseURL = "https://groups.roblox.com"
)

var (
	// ErrUserNotFound indicates no Roblox user matched the lookup
	ErrUserNotFound = errors.New("usuario de Roblox no encontrado")
	// ErrNotInGroup indicates the user is not a member of the group
	ErrNotInGroup = errors.New("el usuario no pertenece al grupo")
	// ErrNoHigherRank indicates the user already holds the top promotable rank
	ErrNoHigherRank = errors.New("no hay un rango superior disponible")
)

// User is one resolved Roblox account
type User struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// GroupRole is one role of the configured group
type GroupRole struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

// Client calls the Roblox web APIs
type Client struct {
	cookie     string
	groupID    string
	httpClient *http.Client

	mu        sync.Mutex
	csrfToken string
}

var (
	instance *Client
	once     sync.Once
)

// Init creates the shared Roblox client
func Init(cookie, groupID string) *Client {
	once.Do(func() {
		instance = NewClient(cookie, groupID)
	})
	return instance
}

// Get returns the shared client, or nil before Init
func Get() *Client {
	return instance
}

// NewClient builds a standalone client
func NewClient(cookie, groupID string) *Client {
	return &Client{
		cookie:     cookie,
		groupID:    groupID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GroupID returns the configured group
func (c *Client) GroupID() string {
	return c.groupID
}

// Username returns the account name of a Roblox user ID
func (c *Client) Username(userID string) (string, error) {
	req, err := http.NewRequest("GET", fmt.Sprintf("%s/v1/users/%s", usersBaseURL, userID), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrUserNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("roblox devolvió estado %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", err
	}
	return user.Name, nil
}

type usersByNamesRequest struct {
	Usernames          []string `json:"usernames"`
	ExcludeBannedUsers bool     `json:"excludeBannedUsers"`
}

type usersByNamesResponse struct {
	Data []struct {
		RequestedUsername string `json:"requestedUsername"`
		ID                int64  `json:"id"`
		Name              string `json:"name"`
		DisplayName       string `json:"displayName"`
	} `json:"data"`
}

// UsersByUsernames resolves usernames to accounts in one call.
// Usernames with no match are absent from the result.
func (c *Client) UsersByUsernames(usernames []string) (map[string]User, error) {
	payload, err := json.Marshal(usersByNamesRequest{Usernames: usernames, ExcludeBannedUsers: true})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", usersBaseURL+"/v1/usernames/users", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("roblox devolvió estado %d", resp.StatusCode)
	}

	var result usersByNamesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	users := make(map[string]User, len(result.Data))
	for _, entry := range result.Data {
		users[entry.RequestedUsername] = User{ID: entry.ID, Name: entry.Name, DisplayName: entry.DisplayName}
	}
	return users, nil
}

type groupRolesResponse struct {
	Roles []GroupRole `json:"roles"`
}

// GroupRoles lists the roles of the configured group ordered by rank
func (c *Client) GroupRoles() ([]GroupRole, error) {
	req, err := http.NewRequest("GET", fmt.Sprintf("%s/v1/groups/%s/roles", groupsBaseURL, c.groupID), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("roblox devolvió estado %d", resp.StatusCode)
	}

	var result groupRolesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Roles, nil
}

type userGroupsResponse struct {
	Data []struct {
		Group struct {
			ID int64 `json:"id"`
		} `json:"group"`
		Role GroupRole `json:"role"`
	} `json:"data"`
}

// UserGroupRole returns the role a user holds in the configured group
func (c *Client) UserGroupRole(userID int64) (*GroupRole, error) {
	url := fmt.Sprintf("%s/v2/users/%d/groups/roles", groupsBaseURL, userID)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("roblox devolvió estado %d", resp.StatusCode)
	}

	var result userGroupsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	groupID, err := strconv.ParseInt(c.groupID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("group ID inválido: %w", err)
	}

	for _, entry := range result.Data {
		if entry.Group.ID == groupID {
			role := entry.Role
			return &role, nil
		}
	}
	return nil, ErrNotInGroup
}

// SetUserRole assigns a group role to a user
func (c *Client) SetUserRole(userID, roleID int64) error {
	payload, err := json.Marshal(map[string]int64{"roleId": roleID})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/v1/groups/%s/users/%d", groupsBaseURL, c.groupID, userID)
	resp, err := c.doAuthenticated("PATCH", url, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("roblox devolvió estado %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// doAuthenticated sends a mutating request with the session cookie,
// fetching a fresh CSRF token and retrying once when Roblox rejects
// the cached one.
func (c *Client) doAuthenticated(method, url string, payload []byte) (*http.Response, error) {
	c.mu.Lock()
	token := c.csrfToken
	c.mu.Unlock()

	resp, err := c.send(method, url, payload, token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusForbidden {
		fresh := resp.Header.Get("X-Csrf-Token")
		resp.Body.Close()
		if fresh == "" {
			return nil, fmt.Errorf("roblox rechazó la petición sin entregar token CSRF")
		}
		c.mu.Lock()
		c.csrfToken = fresh
		c.mu.Unlock()
		return c.send(method, url, payload, fresh)
	}

	return resp, nil
}

func (c *Client) send(method, url string, payload []byte, csrfToken string) (*http.Response, error) {
	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", ".ROBLOSECURITY="+c.cookie)
	if csrfToken != "" {
		req.Header.Set("X-Csrf-Token", csrfToken)
	}
	return c.httpClient.Do(req)
}
