package classify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"CowsayNews/internal/config"
	"CowsayNews/internal/domain"
	"CowsayNews/internal/ports"
)

const promptTemplate = `Classify the following news headline into ONLY one of these categories:
%s

Headline: "%s"

Respond with the category name and nothing else.
Category:`

// Classifier files candidates into capped category groups, one model
// call per headline.
type Classifier struct {
	model       ports.TextModel
	pacer       ports.Pacer
	categoryCap int
	otherCap    int
	logger      *slog.Logger
}

// New constructs a classifier with the configured caps.
func New(model ports.TextModel, pacer ports.Pacer, cfg config.ClassifyConfig, logger *slog.Logger) *Classifier {
	return &Classifier{
		model:       model,
		pacer:       pacer,
		categoryCap: cfg.CategoryCap,
		otherCap:    cfg.OtherCap,
		logger:      logger,
	}
}

// Classify maps one headline to a category. Any model failure degrades
// to Other; classification never aborts the run.
func (c *Classifier) Classify(ctx context.Context, candidate domain.Candidate) domain.Category {
	prompt := fmt.Sprintf(promptTemplate, categoryList(), candidate.Headline)

	label, err := c.model.Generate(ctx, prompt)
	c.pacer.Pace(ctx)
	if err != nil {
		c.warn("classification failed", "headline", candidate.Headline, "error", err)
		return domain.CategoryOther
	}

	return domain.ParseCategory(label)
}

// Group classifies candidates strictly sequentially and accumulates them
// under the per-category caps.
func (c *Classifier) Group(ctx context.Context, candidates []domain.Candidate) *domain.Grouped {
	grouped := domain.NewGrouped(c.categoryCap, c.otherCap)

	for _, candidate := range candidates {
		category := c.Classify(ctx, candidate)
		if !grouped.Assign(candidate, category) {
			c.debug("dropped at cap", "category", category, "headline", candidate.Headline)
		}
	}

	return grouped
}

func categoryList() string {
	cats := domain.Categories()
	names := make([]string, len(cats))
	for i, cat := range cats {
		names[i] = string(cat)
	}
	return strings.Join(names, ", ")
}

func (c *Classifier) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

func (c *Classifier) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
