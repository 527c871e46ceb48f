package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"adpulse/internal/interfaces"
	"adpulse/internal/models"
)

// AgentClient talks to the external CampaignAgent service over HTTP. It
// logs in with username/password, caches the bearer token for tokenTTL and
// re-authenticates on expiry. Responses are returned as raw JSON so the
// handlers stay a pass-through.
type AgentClient struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	tokenTTL   time.Duration

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

var _ interfaces.CampaignAgent = (*AgentClient)(nil)

func NewAgentClient(baseURL, username, password string, timeout time.Duration) *AgentClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &AgentClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: timeout},
		tokenTTL:   30 * time.Minute,
	}
}

func (c *AgentClient) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		c.httpClient = hc
	}
}

func (c *AgentClient) SetTokenTTL(ttl time.Duration) {
	if ttl > 0 {
		c.tokenTTL = ttl
	}
}

func (c *AgentClient) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && time.Now().Before(c.tokenExp) {
		t := c.token
		c.mu.Unlock()
		return t, nil
	}
	c.mu.Unlock()

	tok, err := c.login(ctx)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.token = tok
	c.tokenExp = time.Now().Add(c.tokenTTL)
	c.mu.Unlock()

	return tok, nil
}

func (c *AgentClient) login(ctx context.Context) (string, error) {
	if strings.TrimSpace(c.baseURL) == "" {
		return "", errors.New("agent baseURL is required")
	}
	if strings.TrimSpace(c.username) == "" || strings.TrimSpace(c.password) == "" {
		return "", errors.New("agent username/password are required")
	}

	payload := map[string]string{
		"username": c.username,
		"password": c.password,
	}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("agent login failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("agent login: invalid json: %w", err)
	}

	// Try common token field names.
	for _, k := range []string{"token", "access", "access_token", "jwt"} {
		if v, ok := out[k]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return s, nil
			}
		}
	}

	return "", errors.New("agent login response did not include token")
}

// ScheduleCampaign submits the scheduling input as-is and returns the
// agent's response body verbatim.
func (c *AgentClient) ScheduleCampaign(ctx context.Context, input models.ScheduleCampaignInput) (json.RawMessage, error) {
	b, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "/campaigns/schedule", b)
}

// EvaluateCampaignEffectiveness asks the agent for its effectiveness read
// of one campaign and returns the response body verbatim.
func (c *AgentClient) EvaluateCampaignEffectiveness(ctx context.Context, campaignID string) (json.RawMessage, error) {
	if strings.TrimSpace(campaignID) == "" {
		return nil, errors.New("campaign id is required")
	}
	return c.do(ctx, http.MethodGet, "/campaigns/"+campaignID+"/effectiveness", nil)
}

func (c *AgentClient) do(ctx context.Context, method, path string, payload []byte) (json.RawMessage, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("agent %s %s failed: status=%d body=%s", method, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.RawMessage(body), nil
}
