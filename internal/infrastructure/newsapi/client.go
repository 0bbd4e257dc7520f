package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"CowsayNews/internal/config"
	"CowsayNews/internal/domain"
	"CowsayNews/internal/ports"
)

// Client fetches top headlines with bounded retry on transport failures.
// A response that decodes but carries an error status is trusted as a
// configuration problem and fails immediately.
type Client struct {
	baseURL     string
	apiKey      string
	country     string
	pageSize    int
	maxAttempts int
	retryPacer  ports.Pacer
	httpClient  *http.Client
	logger      *slog.Logger
}

var _ ports.HeadlineSource = (*Client)(nil)

// NewClient builds the source from configuration; retryPacer supplies the
// inter-attempt delay so tests can run at zero delay.
func NewClient(cfg config.NewsConfig, retryPacer ports.Pacer, client *http.Client, logger *slog.Logger) *Client {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}

	return &Client{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		country:     cfg.Country,
		pageSize:    cfg.PageSize,
		maxAttempts: cfg.MaxAttempts,
		retryPacer:  retryPacer,
		httpClient:  client,
		logger:      logger,
	}
}

// Fetch returns the current headline records or fails the run.
func (c *Client) Fetch(ctx context.Context) ([]domain.HeadlineRecord, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		records, retryable, err := c.fetchOnce(ctx)
		if err == nil {
			return records, nil
		}
		if !retryable {
			return nil, err
		}

		lastErr = err
		c.warn("headline fetch attempt failed", "attempt", attempt, "error", err)

		if attempt < c.maxAttempts {
			c.retryPacer.Pace(ctx)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("top headlines after %d attempts: %w", c.maxAttempts, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context) ([]domain.HeadlineRecord, bool, error) {
	endpoint := fmt.Sprintf("%s/v2/top-headlines?%s", c.baseURL, url.Values{
		"country":  {c.country},
		"pageSize": {strconv.Itoa(c.pageSize)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("request headlines: %w", err)
	}
	defer resp.Body.Close()

	var payload topHeadlinesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, true, fmt.Errorf("decode headlines: %w", err)
	}

	if payload.Status != "ok" {
		return nil, false, fmt.Errorf("news source status %q (code %s): %s",
			payload.Status, payload.Code, payload.Message)
	}

	records := make([]domain.HeadlineRecord, 0, len(payload.Articles))
	for _, article := range payload.Articles {
		records = append(records, domain.HeadlineRecord{
			Title:  article.Title,
			URL:    article.URL,
			Source: article.Source.Name,
		})
	}

	return records, false, nil
}

type topHeadlinesResponse struct {
	Status   string       `json:"status"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Articles []rawArticle `json:"articles"`
}

type rawArticle struct {
	Title  string    `json:"title"`
	URL    string    `json:"url"`
	Source rawSource `json:"source"`
}

type rawSource struct {
	Name string `json:"name"`
}

func (c *Client) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
