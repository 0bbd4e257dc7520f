package ghost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"CowsayNews/internal/config"
	"CowsayNews/internal/domain"
	"CowsayNews/internal/ports"
)

const tokenValidity = 5 * time.Minute

// Publisher drives the two-phase draft/publish exchange against the
// Ghost admin API. One signed token covers the whole exchange.
type Publisher struct {
	baseURL           string
	keyID             string
	keySecret         []byte
	authorID          string
	defaultNewsletter string
	httpClient        *http.Client
	logger            *slog.Logger
	now               func() time.Time
}

var _ ports.PostPublisher = (*Publisher)(nil)

// NewPublisher wires the admin API target from configuration.
func NewPublisher(cfg config.GhostConfig, client *http.Client, logger *slog.Logger) *Publisher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	return &Publisher{
		baseURL:           strings.TrimSuffix(cfg.BaseURL, "/"),
		keyID:             cfg.KeyID,
		keySecret:         cfg.KeySecret,
		authorID:          cfg.AuthorID,
		defaultNewsletter: cfg.DefaultNewsletter,
		httpClient:        client,
		logger:            logger,
		now:               time.Now,
	}
}

// Publish creates a draft post and transitions it to published with an
// email broadcast. A rejected creation is fatal; a rejected transition
// leaves a recoverable draft behind and is reported as such.
func (p *Publisher) Publish(ctx context.Context, title, html string) (domain.PublishResult, error) {
	token, err := p.adminToken()
	if err != nil {
		return domain.PublishResult{}, fmt.Errorf("sign admin token: %w", err)
	}

	newsletter := p.resolveNewsletter(ctx, token)

	result, err := p.createDraft(ctx, token, title, html)
	if err != nil {
		return domain.PublishResult{}, fmt.Errorf("%w: %v", domain.ErrDraftCreate, err)
	}
	p.info("draft created", "post_id", result.PostID)

	published, err := p.publishDraft(ctx, token, result, newsletter)
	if err != nil {
		// The draft survives on the target; hand back what exists.
		return result, fmt.Errorf("%w: %v", domain.ErrPublishTransition, err)
	}

	return published, nil
}

// adminToken mints the short-lived HS256 token the admin API expects:
// key id in the header, issued-at, expiry, and the admin audience claim.
func (p *Publisher) adminToken() (string, error) {
	if p.keyID == "" || len(p.keySecret) == 0 {
		return "", fmt.Errorf("admin key not configured")
	}

	issuedAt := p.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": issuedAt.Unix(),
		"exp": issuedAt.Add(tokenValidity).Unix(),
		"aud": "/admin/",
	})
	token.Header["kid"] = p.keyID

	return token.SignedString(p.keySecret)
}

// resolveNewsletter picks the first active newsletter, falling back to
// the configured default. Best effort only.
func (p *Publisher) resolveNewsletter(ctx context.Context, token string) string {
	endpoint := p.baseURL + "/ghost/api/admin/newsletters/"

	var parsed struct {
		Newsletters []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"newsletters"`
	}

	if err := p.call(ctx, http.MethodGet, endpoint, token, nil, &parsed); err != nil {
		p.warn("newsletter lookup failed, using default", "error", err, "default", p.defaultNewsletter)
		return p.defaultNewsletter
	}

	for _, nl := range parsed.Newsletters {
		if nl.Status == "active" {
			return nl.ID
		}
	}

	p.warn("no active newsletter, using default", "default", p.defaultNewsletter)
	return p.defaultNewsletter
}

func (p *Publisher) createDraft(ctx context.Context, token, title, html string) (domain.PublishResult, error) {
	post := map[string]any{
		"title":  title,
		"html":   html,
		"status": "draft",
	}
	if p.authorID != "" {
		post["authors"] = []map[string]string{{"id": p.authorID}}
	}

	endpoint := p.baseURL + "/ghost/api/admin/posts/?source=html"

	var parsed postsResponse
	if err := p.call(ctx, http.MethodPost, endpoint, token, map[string]any{"posts": []map[string]any{post}}, &parsed); err != nil {
		return domain.PublishResult{}, err
	}
	if len(parsed.Posts) == 0 {
		return domain.PublishResult{}, fmt.Errorf("no post in creation response")
	}

	return domain.PublishResult{
		PostID:   parsed.Posts[0].ID,
		Revision: parsed.Posts[0].UpdatedAt,
	}, nil
}

// publishDraft resubmits the exact revision marker captured at creation
// so the target can reject a concurrent modification instead of silently
// overwriting it.
func (p *Publisher) publishDraft(ctx context.Context, token string, draft domain.PublishResult, newsletter string) (domain.PublishResult, error) {
	endpoint := fmt.Sprintf("%s/ghost/api/admin/posts/%s/", p.baseURL, draft.PostID)
	if newsletter != "" {
		endpoint += "?" + url.Values{"newsletter": {newsletter}}.Encode()
	}

	body := map[string]any{
		"posts": []map[string]any{{
			"status":     "published",
			"updated_at": draft.Revision,
		}},
	}

	var parsed postsResponse
	if err := p.call(ctx, http.MethodPut, endpoint, token, body, &parsed); err != nil {
		return domain.PublishResult{}, err
	}
	if len(parsed.Posts) == 0 {
		return domain.PublishResult{}, fmt.Errorf("no post in publish response")
	}

	published := domain.PublishResult{
		PostID:   draft.PostID,
		Revision: parsed.Posts[0].UpdatedAt,
		URL:      parsed.Posts[0].URL,
	}
	if parsed.Posts[0].Email != nil {
		published.EmailStatus = parsed.Posts[0].Email.Status
		published.EmailRecipients = parsed.Posts[0].Email.EmailCount
	}

	return published, nil
}

func (p *Publisher) call(ctx context.Context, method, endpoint, token string, payload, v any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Ghost "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("ghost error %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

type postsResponse struct {
	Posts []struct {
		ID        string `json:"id"`
		UpdatedAt string `json:"updated_at"`
		URL       string `json:"url"`
		Email     *struct {
			Status     string `json:"status"`
			EmailCount int    `json:"email_count"`
		} `json:"email"`
	} `json:"posts"`
}

func (p *Publisher) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Publisher) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
