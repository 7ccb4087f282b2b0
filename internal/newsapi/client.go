// Package newsapi is a minimal client for the NewsAPI "everything" endpoint.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/bilgisen/gamenews/internal/models"
	"github.com/go-resty/resty/v2"
)

const everythingPath = "/v2/everything"

// Config is everything the client needs; nothing is read from the environment.
type Config struct {
	BaseURL  string
	APIKey   string
	Query    string
	From     string
	SortBy   string
	Language string
	PageSize int
	Timeout  time.Duration
}

// Params returns the query parameters sent with every request
func (c Config) Params() map[string]string {
	params := map[string]string{"q": c.Query}
	if c.From != "" {
		params["from"] = c.From
	}
	if c.SortBy != "" {
		params["sortBy"] = c.SortBy
	}
	if c.Language != "" {
		params["language"] = c.Language
	}
	if c.PageSize > 0 {
		params["pageSize"] = strconv.Itoa(c.PageSize)
	}
	return params
}

// Client fetches articles from NewsAPI
type Client struct {
	client *resty.Client
	cfg    Config
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		client: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(timeout),
		cfg: cfg,
	}
}

// Config returns the configuration the client was built with
func (c *Client) Config() Config {
	return c.cfg
}

// Everything performs a single search request. There are no retries.
func (c *Client) Everything(ctx context.Context) ([]models.Article, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetHeader("X-Api-Key", c.cfg.APIKey).
		SetQueryParams(c.cfg.Params()).
		Get(everythingPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch articles: %w", err)
	}

	var body models.ArticlesResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		if resp.IsError() {
			return nil, fmt.Errorf("unexpected status code %d from newsapi", resp.StatusCode())
		}
		return nil, fmt.Errorf("failed to parse newsapi response: %w", err)
	}

	if resp.IsError() || body.Status == models.StatusError {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Code:       body.Code,
			Message:    body.Message,
		}
	}

	if body.Articles == nil {
		return []models.Article{}, nil
	}
	return body.Articles, nil
}

// APIError is returned when NewsAPI answers with an error payload
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("newsapi returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("newsapi error %s (status %d): %s", e.Code, e.StatusCode, e.Message)
}
