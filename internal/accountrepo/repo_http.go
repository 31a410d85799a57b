// Package accountrepo provides read access to the wallet account API.
package accountrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/reloop-app/reloop-core/internal/domain"
	"github.com/reloop-app/reloop-core/pkg/errorspkg"
)

// Client fetches account snapshots over HTTP. There is deliberately no
// caching here: balance changes between screens, so every decision needs
// a fresh read.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns an account query client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Snapshot fetches the current wallet balance.
func (c *Client) Snapshot(ctx context.Context) (domain.AccountSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/account", nil)
	if err != nil {
		return domain.AccountSnapshot{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.AccountSnapshot{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.AccountSnapshot{}, fmt.Errorf("%w: account answered %d",
			errorspkg.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var snapshot domain.AccountSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return domain.AccountSnapshot{}, err
	}

	return snapshot, nil
}
