package rakuten

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
)

// DefaultEndpoint is the Ichiba item search API
const DefaultEndpoint = "https://app.rakuten.co.jp/services/api/IchibaItem/Search/20220601"

// DefaultHits is how many products one search returns
const DefaultHits = 20

// imageSizeSuffix is the thumbnail size query the API appends to image URLs
var imageSizeSuffix = regexp.MustCompile(`\?_ex=\d+x\d+`)

// Config holds the credentials and endpoint for the search API
type Config struct {
	ApplicationID string
	AffiliateID   string
	Endpoint      string
	Hits          int
	Timeout       time.Duration
}

// Client searches Rakuten Ichiba for products
// This implements the ports.ProductSearcher interface
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a search client; ApplicationID is required
func NewClient(cfg Config) (*Client, error) {
	if cfg.ApplicationID == "" {
		return nil, fmt.Errorf("rakuten application id is required")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Hits <= 0 {
		cfg.Hits = DefaultHits
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// searchResponse mirrors the parts of the API response we use
type searchResponse struct {
	Items []struct {
		Item item `json:"Item"`
	} `json:"Items"`
}

type item struct {
	ItemName        string     `json:"itemName"`
	ItemPrice       int        `json:"itemPrice"`
	ItemURL         string     `json:"itemUrl"`
	AffiliateURL    string     `json:"affiliateUrl"`
	MediumImageURLs []imageURL `json:"mediumImageUrls"`
	SmallImageURLs  []imageURL `json:"smallImageUrls"`
	ShopName        string     `json:"shopName"`
	ReviewAverage   *float64   `json:"reviewAverage"`
	ReviewCount     int        `json:"reviewCount"`
}

type imageURL struct {
	ImageURL string `json:"imageUrl"`
}

// Search queries the API for keyword
func (c *Client) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, domain.ErrEmptyKeyword
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(keyword), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}

	log.Debug().Str("keyword", keyword).Msg("searching products")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrSearchUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	products := make([]domain.Product, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		products = append(products, toProduct(entry.Item))
	}

	log.Debug().Str("keyword", keyword).Int("count", len(products)).Msg("products found")
	return products, nil
}

func (c *Client) searchURL(keyword string) string {
	q := url.Values{}
	q.Set("applicationId", c.cfg.ApplicationID)
	q.Set("keyword", keyword)
	q.Set("hits", strconv.Itoa(c.cfg.Hits))
	q.Set("sort", "standard")
	if c.cfg.AffiliateID != "" {
		q.Set("affiliateId", c.cfg.AffiliateID)
	}
	return c.cfg.Endpoint + "?" + q.Encode()
}

// toProduct converts an API item, preferring medium images and
// stripping the thumbnail size so the full image is served
func toProduct(it item) domain.Product {
	image := ""
	switch {
	case len(it.MediumImageURLs) > 0 && it.MediumImageURLs[0].ImageURL != "":
		image = it.MediumImageURLs[0].ImageURL
	case len(it.SmallImageURLs) > 0:
		image = it.SmallImageURLs[0].ImageURL
	}

	affiliate := it.AffiliateURL
	if affiliate == "" {
		affiliate = it.ItemURL
	}

	return domain.Product{
		Name:          it.ItemName,
		Price:         it.ItemPrice,
		URL:           it.ItemURL,
		AffiliateURL:  affiliate,
		ImageURL:      imageSizeSuffix.ReplaceAllString(image, ""),
		ShopName:      it.ShopName,
		ReviewAverage: it.ReviewAverage,
		ReviewCount:   it.ReviewCount,
	}
}
