package hostaway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

var (
	// ErrMissingCredentials signals no client id/secret is configured; callers
	// treat this as "aggregator unavailable" and fall back to local data.
	ErrMissingCredentials = errors.New("hostaway: missing client credentials")
	// ErrNotFound signals the aggregator has no record for the requested id.
	ErrNotFound = errors.New("hostaway: not found")
)

// tokenSkew is subtracted from the token lifetime so a token is refreshed
// shortly before the aggregator would reject it.
const tokenSkew = 60 * time.Second

// amenityTTL bounds how long the amenity id->label map is reused.
const amenityTTL = 6 * time.Hour

// HTTPClient matches net/http.Client Do signature for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config defines settings for the Hostaway client.
type Config struct {
	ClientID     string
	ClientSecret string
	Scope        string
	BaseURL      string
	Mock         bool
	// Now is the clock used for cache expiry checks; defaults to time.Now.
	Now func() time.Time
}

// Client calls the Hostaway API, caching the OAuth2 access token and the
// amenity lookup map. Both caches live on the client instance so tests can
// drive expiry with a fake clock.
type Client struct {
	clientID     string
	clientSecret string
	scope        string
	baseURL      string
	httpClient   HTTPClient
	mock         bool
	now          func() time.Time

	tokenMu     sync.Mutex
	token       string
	tokenExpiry time.Time

	amenityMu        sync.Mutex
	amenities        map[string]string
	amenitiesLoaded  bool
	amenitiesFetched time.Time
}

// New creates a Hostaway client.
func New(httpClient HTTPClient, cfg Config) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.hostaway.com/v1"
	}
	scope := cfg.Scope
	if scope == "" {
		scope = "general"
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		scope:        scope,
		baseURL:      strings.TrimRight(base, "/"),
		httpClient:   httpClient,
		mock:         cfg.Mock,
		now:          now,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope,omitempty"`
}

// accessToken returns a cached token or performs the client-credentials
// exchange. Concurrent refreshes are serialized; worst case is a redundant
// exchange after expiry, never a stale token being served past its skew.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	now := c.now()
	if c.token != "" && now.Before(c.tokenExpiry.Add(-tokenSkew)) {
		return c.token, nil
	}

	if c.clientID == "" || c.clientSecret == "" {
		return "", ErrMissingCredentials
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("scope", c.scope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/accessTokens", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token request failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", errors.New("hostaway: empty access token in response")
	}

	c.token = tok.AccessToken
	c.tokenExpiry = now.Add(time.Duration(tok.ExpiresIn) * time.Second)
	return c.token, nil
}

// ReviewQuery filters a reviews fetch.
type ReviewQuery struct {
	ListingID string
	Limit     int
	Offset    int
}

// FetchReviews returns raw review records for the given query.
func (c *Client) FetchReviews(ctx context.Context, q ReviewQuery) ([]map[string]any, error) {
	if c.mock {
		return mockReviews(), nil
	}

	params := url.Values{}
	if q.ListingID != "" {
		params.Set("listingId", q.ListingID)
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	params.Set("limit", fmt.Sprintf("%d", limit))
	if q.Offset > 0 {
		params.Set("offset", fmt.Sprintf("%d", q.Offset))
	}

	payload, err := c.getJSON(ctx, "/reviews", params)
	if err != nil {
		return nil, err
	}
	return unwrapList(payload, "data", "result", "reviews"), nil
}

// ListingQuery filters a listings fetch. Zero values are omitted.
type ListingQuery struct {
	Limit          int
	Offset         int
	SortOrder      string
	City           string
	Match          string
	Country        string
	ContactName    string
	PropertyTypeID string
}

// FetchListings returns raw listing records for the given query.
func (c *Client) FetchListings(ctx context.Context, q ListingQuery) ([]map[string]any, error) {
	if c.mock {
		return mockListings(), nil
	}

	params := url.Values{}
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	params.Set("limit", fmt.Sprintf("%d", limit))
	if q.Offset > 0 {
		params.Set("offset", fmt.Sprintf("%d", q.Offset))
	}
	for key, val := range map[string]string{
		"sortOrder":      q.SortOrder,
		"city":           q.City,
		"match":          q.Match,
		"country":        q.Country,
		"contactName":    q.ContactName,
		"propertyTypeId": q.PropertyTypeID,
	} {
		if val != "" {
			params.Set(key, val)
		}
	}

	payload, err := c.getJSON(ctx, "/listings", params)
	if err != nil {
		return nil, err
	}
	return unwrapList(payload, "data", "result", "listings"), nil
}

// FetchListingByID returns one raw listing record, or ErrNotFound.
func (c *Client) FetchListingByID(ctx context.Context, id string) (map[string]any, error) {
	if c.mock {
		for _, l := range mockListings() {
			if fmt.Sprintf("%v", l["id"]) == id {
				return l, nil
			}
		}
		return nil, ErrNotFound
	}

	payload, err := c.getJSON(ctx, "/listings/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return unwrapObject(payload, "result", "data"), nil
}

// FetchAmenityMap returns the amenity id -> label lookup, cached for six hours.
func (c *Client) FetchAmenityMap(ctx context.Context) (map[string]string, error) {
	c.amenityMu.Lock()
	defer c.amenityMu.Unlock()

	now := c.now()
	if c.amenitiesLoaded && now.Sub(c.amenitiesFetched) < amenityTTL {
		return c.amenities, nil
	}

	if c.mock {
		c.amenities = map[string]string{"1": "WiFi", "2": "Kitchen", "7": "Washer"}
		c.amenitiesLoaded = true
		c.amenitiesFetched = now
		return c.amenities, nil
	}

	payload, err := c.getJSON(ctx, "/amenities", nil)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string)
	for _, entry := range unwrapList(payload, "result", "data") {
		id := stringValue(entry["id"])
		name := stringValue(entry["name"])
		if id == "" || name == "" {
			continue
		}
		result[id] = name
	}
	c.amenities = result
	c.amenitiesLoaded = true
	c.amenitiesFetched = now
	return result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values) (any, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("hostaway %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	return payload, nil
}

// unwrapList handles the aggregator's habit of wrapping list payloads: a bare
// array is accepted as-is, otherwise the named wrapper keys are tried in order.
func unwrapList(payload any, keys ...string) []map[string]any {
	if list, ok := payload.([]any); ok {
		return toRecords(list)
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	for _, key := range keys {
		if list, ok := obj[key].([]any); ok {
			return toRecords(list)
		}
	}
	return nil
}

func unwrapObject(payload any, keys ...string) map[string]any {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	for _, key := range keys {
		if inner, ok := obj[key].(map[string]any); ok {
			return inner
		}
	}
	return obj
}

func toRecords(list []any) []map[string]any {
	records := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if rec, ok := item.(map[string]any); ok {
			records = append(records, rec)
		}
	}
	return records
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", val))
	}
}
