package news

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hoanghai1803/headliner/internal/articles"
)

const (
	gnewsBaseURL = "https://gnews.io/api/v4"

	// MaxGNewsArticles is the per-request cap imposed by the GNews API.
	MaxGNewsArticles = 10

	gnewsTimeLayout = "2006-01-02T15:04:05Z"
)

// GNewsParams describes one GNews search.
type GNewsParams struct {
	Query     string
	Lang      string
	Country   string
	Max       int
	HoursBack int
}

// GNewsClient searches the GNews API.
type GNewsClient struct {
	apiKey  string
	params  GNewsParams
	baseURL string
	client  *http.Client
	cache   *ResponseCache
	now     func() time.Time
}

// NewGNewsClient creates a client for the given search. cache may be nil.
func NewGNewsClient(apiKey string, params GNewsParams, cache *ResponseCache) *GNewsClient {
	return &GNewsClient{
		apiKey:  apiKey,
		params:  params,
		baseURL: gnewsBaseURL,
		client:  newHTTPClient(),
		cache:   cache,
		now:     time.Now,
	}
}

// Name implements Source.
func (c *GNewsClient) Name() string { return "gnews" }

// Fetch runs the search and decodes the response envelope. Malformed
// elements are counted in FetchResult.Skipped.
func (c *GNewsClient) Fetch(ctx context.Context) (*FetchResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("gnews: API key is not configured")
	}

	params := c.queryParams()
	key := queryCacheKey(params)

	body, cached := c.cachedBody(ctx, key)
	if !cached {
		var err error
		body, err = c.search(ctx, params)
		if err != nil {
			return nil, err
		}
	}

	records, skipped, err := articles.DecodeRaw(body)
	if err != nil {
		return nil, fmt.Errorf("gnews: decoding response: %w", err)
	}

	if !cached && c.cache != nil {
		if err := c.cache.Set(ctx, key, body); err != nil {
			slog.Warn("failed to cache gnews response", "error", err)
		}
	}

	slog.Info("fetched gnews articles", "query", c.params.Query, "articles", len(records), "skipped", skipped, "cached", cached)
	return &FetchResult{Records: records, Skipped: skipped}, nil
}

func (c *GNewsClient) cachedBody(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	body, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("gnews cache unavailable, fetching from network", "error", err)
		return nil, false
	}
	return body, ok
}

func (c *GNewsClient) queryParams() url.Values {
	now := c.now().UTC()

	maxArticles := c.params.Max
	if maxArticles <= 0 || maxArticles > MaxGNewsArticles {
		maxArticles = MaxGNewsArticles
	}

	v := url.Values{}
	v.Set("q", c.params.Query)
	if c.params.Lang != "" {
		v.Set("lang", c.params.Lang)
	}
	if c.params.Country != "" {
		v.Set("country", c.params.Country)
	}
	v.Set("max", strconv.Itoa(maxArticles))
	if c.params.HoursBack > 0 {
		from := now.Add(-time.Duration(c.params.HoursBack) * time.Hour)
		v.Set("from", from.Format(gnewsTimeLayout))
		v.Set("to", now.Format(gnewsTimeLayout))
	}
	v.Set("sortby", "publishedAt")
	v.Set("apikey", c.apiKey)
	return v
}

func (c *GNewsClient) search(ctx context.Context, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("gnews: creating request: %w", err)
	}

	slog.Debug("calling GNews API", "query", c.params.Query)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gnews: sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gnews: reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gnews: unexpected status code %d: %s", resp.StatusCode, truncateBody(body))
	}
	return body, nil
}

func truncateBody(b []byte) string {
	const limit = 200
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
