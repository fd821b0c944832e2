package mailgun

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a thin wrapper over the Mailgun HTTP API. It covers the three
// operations this application needs: sending a message, and creating/deleting
// the inbound route that backs a mailbox.
type Client struct {
	baseURL    string
	apiKey     string
	domain     string
	signingKey string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, domain, signingKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		domain:     domain,
		signingKey: signingKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SendRequest describes one outbound message.
type SendRequest struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

type sendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Send submits a message to the messages API and returns the provider's
// message id. Non-2xx responses are returned as errors carrying the provider
// body verbatim so the caller can see the provider's diagnostic.
func (c *Client) Send(ctx context.Context, req SendRequest) (string, error) {
	form := url.Values{}
	form.Set("from", req.From)
	form.Set("to", req.To)
	form.Set("subject", req.Subject)
	if req.Text != "" {
		form.Set("text", req.Text)
	}
	if req.HTML != "" {
		form.Set("html", req.HTML)
	}

	endpoint := fmt.Sprintf("%s/v3/%s/messages", c.baseURL, c.domain)
	body, err := c.do(ctx, http.MethodPost, endpoint, form)
	if err != nil {
		return "", err
	}

	var resp sendResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("mailgun: decode send response: %w", err)
	}
	return resp.ID, nil
}

type routeResponse struct {
	Route struct {
		ID string `json:"id"`
	} `json:"route"`
}

// CreateRoute registers an inbound route matching the given address and
// forwarding deliveries to forwardURL. Returns the provider route id.
func (c *Client) CreateRoute(ctx context.Context, address, forwardURL string) (string, error) {
	form := url.Values{}
	form.Set("priority", "0")
	form.Set("description", "mailbox "+address)
	form.Set("expression", fmt.Sprintf("match_recipient(%q)", address))
	form.Add("action", fmt.Sprintf("forward(%q)", forwardURL))
	form.Add("action", "stop()")

	body, err := c.do(ctx, http.MethodPost, c.baseURL+"/v3/routes", form)
	if err != nil {
		return "", err
	}

	var resp routeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("mailgun: decode route response: %w", err)
	}
	return resp.Route.ID, nil
}

func (c *Client) DeleteRoute(ctx context.Context, routeID string) error {
	_, err := c.do(ctx, http.MethodDelete, c.baseURL+"/v3/routes/"+routeID, nil)
	return err
}

// VerifySignature checks a webhook's timestamp/token/signature triple against
// the configured signing key (HMAC-SHA256 over timestamp+token). Returns true
// when no signing key is configured.
func (c *Client) VerifySignature(timestamp, token, signature string) bool {
	if c.signingKey == "" {
		return true
	}
	mac := hmac.New(sha256.New, []byte(c.signingKey))
	mac.Write([]byte(timestamp + token))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *Client) do(ctx context.Context, method, endpoint string, form url.Values) ([]byte, error) {
	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth("api", c.apiKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mailgun: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("mailgun: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Forward the provider body unmodified so callers can tell a
		// credential problem from a transient failure.
		return nil, fmt.Errorf("mailgun: %s %s: status %d: %s", method, endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
