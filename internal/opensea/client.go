// Package opensea fetches asset pages from the OpenSea v1 assets API or
// from a local JSON file in the same shape.
package opensea

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

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"nft-gallery/internal/gallery"
)

const (
	DefaultBaseURL = "https://api.opensea.io"
	assetsPath     = "/api/v1/assets"

	// MaxLimit is the largest page the v1 API serves
	MaxLimit = 50

	// responses larger than this are rejected rather than buffered
	maxResponseBytes = 8 << 20
)

// ErrInvalidOwner is returned for owners that are neither a hex address nor an ENS name
var ErrInvalidOwner = errors.New("owner must be a 0x address or an ENS name")

// StatusError is returned when the API answers with a non-200 status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("opensea: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client fetches assets from the OpenSea API
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at another host (tests, proxies)
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithAPIKey sets the X-API-KEY header
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the HTTP client entirely
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a new OpenSea client
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		baseURL:   DefaultBaseURL,
		userAgent: "nft-gallery/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type assetsResponse struct {
	Assets []gallery.Asset `json:"assets"`
}

// AssetsByOwner fetches one page of assets held by owner, newest first
func (c *Client) AssetsByOwner(ctx context.Context, owner string, offset, limit int) (*gallery.AssetPage, error) {
	if !ValidOwner(owner) {
		return nil, ErrInvalidOwner
	}
	offset, limit = clampPage(offset, limit)

	q := url.Values{}
	q.Set("owner", owner)
	q.Set("order_direction", "desc")
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+assetsPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "opensea: building request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.apiKey != "" {
		req.Header.Set("X-API-KEY", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "opensea: fetching assets for %s", owner)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrap(err, "opensea: reading response")
	}

	if resp.StatusCode != http.StatusOK {
		snippet := string(body)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: snippet}
	}

	var parsed assetsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.Wrap(err, "opensea: decoding assets")
	}

	return &gallery.AssetPage{
		Owner:  owner,
		Offset: offset,
		Limit:  limit,
		Assets: parsed.Assets,
	}, nil
}

// ValidOwner accepts 0x hex addresses and ENS names (*.eth).
// ENS names are passed to the API unresolved.
func ValidOwner(owner string) bool {
	if common.IsHexAddress(owner) {
		return strings.HasPrefix(owner, "0x") || strings.HasPrefix(owner, "0X")
	}
	name := strings.ToLower(owner)
	if !strings.HasSuffix(name, ".eth") || len(name) <= len(".eth") {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.':
		default:
			return false
		}
	}
	return !strings.Contains(name, "..") && !strings.HasPrefix(name, ".")
}

func clampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > MaxLimit {
		limit = MaxLimit
	}
	return offset, limit
}
