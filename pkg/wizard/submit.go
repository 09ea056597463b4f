package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client submits completed drafts to the booking API
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a submit client with a default HTTP timeout
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SubmitResult carries the stored booking id and the payment redirect
type SubmitResult struct {
	BookingID   string
	RedirectURL string
}

type bookingPayload struct {
	CustomerName       string `json:"customerName"`
	CustomerEmail      string `json:"customerEmail"`
	CustomerPhone      string `json:"customerPhone,omitempty"`
	CompanyName        string `json:"companyName,omitempty"`
	PackageSlug        string `json:"packageSlug"`
	PackageTitle       string `json:"packageTitle"`
	PackagePrice       int64  `json:"packagePrice"`
	DepositAmount      int64  `json:"depositAmount"`
	PreferredDate      string `json:"preferredDate"`
	PreferredTime      string `json:"preferredTime"`
	Timezone           string `json:"timezone,omitempty"`
	ProjectDescription string `json:"projectDescription"`
	ProjectGoals       string `json:"projectGoals,omitempty"`
	CurrentWebsite     string `json:"currentWebsite,omitempty"`
}

type apiError struct {
	Error string `json:"error"`
}

// Submit stores the booking, then requests a checkout session for its
// deposit. The two calls are sequential; a failure in either aborts and
// surfaces the server's error message.
func (c *Client) Submit(ctx context.Context, draft Draft, pkg Package) (*SubmitResult, error) {
	payload := bookingPayload{
		CustomerName:       draft.CustomerName,
		CustomerEmail:      draft.CustomerEmail,
		CustomerPhone:      draft.CustomerPhone,
		CompanyName:        draft.CompanyName,
		PackageSlug:        pkg.Slug,
		PackageTitle:       pkg.Title,
		PackagePrice:       pkg.Price,
		DepositAmount:      pkg.DepositAmount(),
		PreferredDate:      draft.PreferredDate,
		PreferredTime:      draft.PreferredTime,
		Timezone:           draft.Timezone,
		ProjectDescription: draft.ProjectDescription,
		ProjectGoals:       draft.ProjectGoals,
		CurrentWebsite:     draft.CurrentWebsite,
	}

	var created struct {
		BookingID string `json:"bookingId"`
	}
	if err := c.post(ctx, "/api/v1/bookings", payload, http.StatusCreated, &created); err != nil {
		return nil, err
	}
	if created.BookingID == "" {
		return nil, fmt.Errorf("booking was stored without an id")
	}

	var checkout struct {
		URL string `json:"url"`
	}
	if err := c.post(ctx, "/api/v1/checkout", map[string]string{"bookingId": created.BookingID}, http.StatusOK, &checkout); err != nil {
		return nil, err
	}
	if checkout.URL == "" {
		return nil, fmt.Errorf("checkout session has no redirect URL")
	}

	return &SubmitResult{BookingID: created.BookingID, RedirectURL: checkout.URL}, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}, wantStatus int, out interface{}) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var apiErr apiError
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", path, apiErr.Error)
		}
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
