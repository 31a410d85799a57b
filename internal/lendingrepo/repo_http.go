// Package lendingrepo submits borrow requests to the lending service API.
package lendingrepo

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/reloop-app/reloop-core/internal/domain"
)

// Client submits borrows over HTTP. No retries: a resubmission after a
// transport timeout risks a duplicate borrow, so the decision is left to
// the caller.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a lending client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SubmitBorrow posts one borrow request. Rejections come back as
// *domain.LendingError so the service layer can classify them.
func (c *Client) SubmitBorrow(ctx context.Context, borrow domain.BorrowRequest) error {
	payload, err := json.Marshal(borrow)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/borrows", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	lendingErr := &domain.LendingError{
		Code:    resp.StatusCode,
		Message: http.StatusText(resp.StatusCode),
	}

	var body struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Code != 0 {
			lendingErr.Code = body.Code
		}

		if body.Message != "" {
			lendingErr.Message = body.Message
		}
	}

	return lendingErr
}
