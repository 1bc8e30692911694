/*
Package profile implements the HTTP client for the external profile lookup API.

A lookup is a single GET by plain nick returning the account record as JSON.
There is no retry: a failed lookup leaves the user's profile at its defaults
and is only logged.
*/
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"poplobby/internal/app/user"
	"poplobby/internal/pkg/logx"
)

// requestTimeout bounds one profile lookup.
const requestTimeout = 10 * time.Second

// Client looks up user profiles over HTTP. It implements user.Fetcher.
type Client struct {
	// baseURL is the root of the profile API.
	baseURL string

	// httpClient is the underlying HTTP client.
	httpClient *http.Client

	// structured logger with client context.
	logger zerolog.Logger
}

// NewClient constructs a profile Client for the given API base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logx.Logger().With().Str("component", "profile").Logger(),
	}
}

// FetchProfile requests the profile record for the given plain nick.
func (c *Client) FetchProfile(ctx context.Context, nick string) (user.Profile, error) {
	endpoint := c.baseURL + "user.php?json&username=" + url.QueryEscape(nick)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return user.Profile{}, fmt.Errorf("build profile request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return user.Profile{}, fmt.Errorf("request profile: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return user.Profile{}, fmt.Errorf("profile API returned status %d", res.StatusCode)
	}

	var profile user.Profile
	if err := json.NewDecoder(res.Body).Decode(&profile); err != nil {
		return user.Profile{}, fmt.Errorf("decode profile response: %w", err)
	}

	c.logger.Debug().Str("nick", nick).Int("user_id", profile.ID).Msg("Profile resolved")

	return profile, nil
}
