package movieapi

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Subscription plan identifiers offered by the backend.
const (
	Plan1Day    = "1-day"
	Plan1Month  = "1-month"
	Plan3Months = "3-months"
)

// Plans lists all known plan identifiers.
func Plans() []string {
	return []string{Plan1Day, Plan1Month, Plan3Months}
}

// SubscriptionStatus is the normalized subscription state of the user.
type SubscriptionStatus struct {
	Active    bool
	PlanType  string
	ExpiresAt time.Time
}

// subscriptionStatusResponse tolerates the two field spellings the
// backend has used for plan and expiry.
type subscriptionStatusResponse struct {
	Active         bool   `json:"active"`
	Plan           string `json:"plan"`
	PlanType       string `json:"plan_type"`
	ExpiresAt      string `json:"expiresAt"`
	ExpiresAtSnake string `json:"expires_at"`
}

type createSubscriptionRequest struct {
	PlanType string `json:"plan_type"`
}

// createSubscriptionResponse covers the three historical locations of the
// checkout URL in the response body.
type createSubscriptionResponse struct {
	Error       string `json:"error"`
	CheckoutURL string `json:"checkoutUrl"`
	URL         string `json:"url"`
	Data        struct {
		CheckoutURL string `json:"checkoutUrl"`
	} `json:"data"`
}

// CreateSubscription starts a checkout for the given plan and returns the
// checkout URL the user must be redirected to.
func (c *Client) CreateSubscription(ctx context.Context, planType string) (string, error) {
	var resp createSubscriptionResponse
	if err := c.doJSON(ctx, http.MethodPost, "/user_subscriptions", nil, createSubscriptionRequest{PlanType: planType}, &resp); err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", &Error{Kind: KindServer, Message: resp.Error}
	}

	checkoutURL := resp.CheckoutURL
	if checkoutURL == "" {
		checkoutURL = resp.Data.CheckoutURL
	}
	if checkoutURL == "" {
		checkoutURL = resp.URL
	}
	if checkoutURL == "" {
		return "", &Error{Kind: KindServer, Message: "no checkout URL returned from server"}
	}
	return checkoutURL, nil
}

// GetSubscriptionStatus fetches the current subscription state.
func (c *Client) GetSubscriptionStatus(ctx context.Context) (*SubscriptionStatus, error) {
	var resp subscriptionStatusResponse
	if err := c.doJSON(ctx, http.MethodGet, "/user_subscriptions/status", nil, nil, &resp); err != nil {
		return nil, err
	}

	status := &SubscriptionStatus{Active: resp.Active, PlanType: resp.PlanType}
	if status.PlanType == "" {
		status.PlanType = resp.Plan
	}
	raw := resp.ExpiresAt
	if raw == "" {
		raw = resp.ExpiresAtSnake
	}
	if raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			status.ExpiresAt = t
		}
	}
	return status, nil
}

// VerifyCheckout confirms a completed checkout session.
func (c *Client) VerifyCheckout(ctx context.Context, sessionID string) (*SubscriptionStatus, error) {
	query := url.Values{}
	query.Set("session_id", sessionID)

	var resp subscriptionStatusResponse
	if err := c.doJSON(ctx, http.MethodGet, "/user_subscriptions/success", query, nil, &resp); err != nil {
		return nil, err
	}
	status := &SubscriptionStatus{Active: resp.Active, PlanType: resp.PlanType}
	if status.PlanType == "" {
		status.PlanType = resp.Plan
	}
	return status, nil
}

// CancelSubscription cancels the active subscription.
func (c *Client) CancelSubscription(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/user_subscriptions/cancel", nil, nil, nil)
}
