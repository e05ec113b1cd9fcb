package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const stripeBaseURL = "https://api.stripe.com/v1"

// StripeClient talks to the Stripe PaymentIntents API directly. Calls are
// bounded by the HTTP client timeout; there are no automatic retries, the
// caller re-requests on failure.
type StripeClient struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewStripeClient(secretKey string) *StripeClient {
	return &StripeClient{
		secretKey: secretKey,
		baseURL:   stripeBaseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type stripeError struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type intentResponse struct {
	ID            string       `json:"id"`
	ClientSecret  string       `json:"client_secret"`
	Status        string       `json:"status"`
	PaymentMethod string       `json:"payment_method"`
	Error         *stripeError `json:"error"`
}

func (c *StripeClient) CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountMinor, 10))
	form.Set("currency", strings.ToLower(currency))
	form.Set("automatic_payment_methods[enabled]", "true")
	for key, value := range metadata {
		form.Set("metadata["+key+"]", value)
	}

	return c.do(ctx, http.MethodPost, "/payment_intents", strings.NewReader(form.Encode()))
}

func (c *StripeClient) RetrieveIntent(ctx context.Context, intentID string) (*Intent, error) {
	return c.do(ctx, http.MethodGet, "/payment_intents/"+url.PathEscape(intentID), nil)
}

func (c *StripeClient) do(ctx context.Context, method, path string, body io.Reader) (*Intent, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build stripe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read stripe response: %w", err)
	}

	var parsed intentResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode stripe response: %w", err)
	}
	if resp.StatusCode >= 400 || parsed.Error != nil {
		if parsed.Error != nil {
			return nil, fmt.Errorf("stripe rejected the request: %s", parsed.Error.Message)
		}
		return nil, fmt.Errorf("stripe returned status %d", resp.StatusCode)
	}

	return &Intent{
		ID:            parsed.ID,
		ClientSecret:  parsed.ClientSecret,
		Status:        parsed.Status,
		PaymentMethod: parsed.PaymentMethod,
	}, nil
}
