// Package farcaster implements the social-graph client used for
// address-to-identity resolution and cast retrieval.
package farcaster

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/higher-steaks/hs-leaderboard/internal/adapter"
	"github.com/higher-steaks/hs-leaderboard/internal/domain"
)

// MaxAddressBatch is the provider's upper bound on addresses per
// bulk-by-address request.
const MaxAddressBatch = 350

// Client defines the social-graph operations the pipeline needs
//
//go:generate mockgen -source=client.go -destination=../../mocks/farcaster.go -package=mocks -mock_names=Client=MockFarcasterClient
type Client interface {
	// BulkByAddress resolves wallet addresses to the identities that have
	// verified them. Addresses with no identity are absent from the result.
	// The batch must not exceed MaxAddressBatch addresses.
	BulkByAddress(ctx context.Context, addresses []string) (map[string][]domain.Identity, error)

	// UserCasts returns an identity's most recent casts, newest first
	UserCasts(ctx context.Context, fid uint64, limit int) ([]domain.Cast, error)
}

// Config holds the client configuration
type Config struct {
	BaseURL string
	APIKey  string
	// RequestsPerSecond bounds the request rate against the provider.
	// Zero disables client-side rate limiting.
	RequestsPerSecond float64
}

type client struct {
	http    adapter.HTTPClient
	baseURL string
	apiKey  string
	limiter *rate.Limiter
}

// NewClient creates a new social-graph API client
func NewClient(cfg Config, httpClient adapter.HTTPClient) Client {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &client{
		http:    httpClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		limiter: limiter,
	}
}

// userDTO is the provider's user shape
type userDTO struct {
	FID          uint64 `json:"fid"`
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	PfpURL       string `json:"pfp_url"`
	Verified struct {
		EthAddresses []string `json:"eth_addresses"`
	} `json:"verified_addresses"`
}

// castDTO is the provider's cast shape
type castDTO struct {
	Hash      string    `json:"hash"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Channel   *struct {
		ID string `json:"id"`
	} `json:"channel"`
}

func (u *userDTO) toIdentity() domain.Identity {
	addresses := make([]string, 0, len(u.Verified.EthAddresses))
	for _, addr := range u.Verified.EthAddresses {
		addresses = append(addresses, strings.ToLower(addr))
	}

	return domain.Identity{
		FID:               u.FID,
		Username:          u.Username,
		DisplayName:       u.DisplayName,
		PfpURL:            u.PfpURL,
		VerifiedAddresses: addresses,
	}
}

// BulkByAddress resolves wallet addresses to identities in one request
func (c *client) BulkByAddress(ctx context.Context, addresses []string) (map[string][]domain.Identity, error) {
	if len(addresses) == 0 {
		return map[string][]domain.Identity{}, nil
	}
	if len(addresses) > MaxAddressBatch {
		return nil, fmt.Errorf("batch of %d addresses exceeds provider limit %d", len(addresses), MaxAddressBatch)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v2/farcaster/user/bulk-by-address?addresses=%s",
		c.baseURL, url.QueryEscape(strings.Join(addresses, ",")))

	var resp map[string][]userDTO
	if err := c.http.Get(ctx, endpoint, c.headers(), &resp); err != nil {
		return nil, fmt.Errorf("bulk-by-address failed: %w", err)
	}

	result := make(map[string][]domain.Identity, len(resp))
	for addr, users := range resp {
		identities := make([]domain.Identity, 0, len(users))
		for _, u := range users {
			identities = append(identities, u.toIdentity())
		}
		result[strings.ToLower(addr)] = identities
	}

	return result, nil
}

// UserCasts returns an identity's most recent casts, newest first
func (c *client) UserCasts(ctx context.Context, fid uint64, limit int) ([]domain.Cast, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v2/farcaster/feed/user/casts?fid=%d&limit=%d&include_replies=false",
		c.baseURL, fid, limit)

	var resp struct {
		Casts []castDTO `json:"casts"`
	}
	if err := c.http.Get(ctx, endpoint, c.headers(), &resp); err != nil {
		return nil, fmt.Errorf("user casts failed for fid %d: %w", fid, err)
	}

	casts := make([]domain.Cast, 0, len(resp.Casts))
	for _, dto := range resp.Casts {
		cast := domain.Cast{
			Hash:      dto.Hash,
			Text:      dto.Text,
			Timestamp: dto.Timestamp,
		}
		if dto.Channel != nil {
			cast.ChannelID = dto.Channel.ID
		}
		casts = append(casts, cast)
	}

	return casts, nil
}

func (c *client) headers() map[string]string {
	return map[string]string{
		"x-api-key": c.apiKey,
		"accept":    "application/json",
	}
}
