package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"CowsayNews/internal/config"
	"CowsayNews/internal/domain"
	"CowsayNews/internal/ports"
)

// NoNotableHeadlines is returned for an empty run without touching the
// model.
const NoNotableHeadlines = "no notable headlines"

// FallbackNarrative substitutes a failed summary call.
const FallbackNarrative = "Today's headlines cover a busy news cycle across several topics; the full list is below."

const (
	// StrategyHeadlines derives the punny title from the classified
	// headlines themselves.
	StrategyHeadlines = "headlines"
	// StrategySummary derives it from the narrative paragraph instead.
	StrategySummary = "summary"
)

const narrativePrompt = `You are writing the opening paragraph of a daily news digest.
Below are today's classified headlines, one per line, tagged with category and source.

%s
Write a single narrative paragraph of at most 5 sentences that synthesizes the day,
prioritizing the 2-3 most impactful stories. Respond with the paragraph only.`

const titlePrompt = `Write one short, pun-flavored headline for a daily news digest published on %s.
It must start with the date or day name and work as a blog post title.
Base it on the following:

%s
Respond with the title only, no quotes.`

// Synthesizer produces the narrative paragraph and the stylized title.
// The two calls are independent; both degrade to fixed fallbacks.
type Synthesizer struct {
	model    ports.TextModel
	pacer    ports.Pacer
	strategy string
	now      func() time.Time
	logger   *slog.Logger
}

// New constructs a synthesizer with the configured title strategy.
func New(model ports.TextModel, pacer ports.Pacer, cfg config.SummaryConfig, logger *slog.Logger) *Synthesizer {
	strategy := cfg.TitleStrategy
	if strategy != StrategySummary {
		strategy = StrategyHeadlines
	}

	return &Synthesizer{
		model:    model,
		pacer:    pacer,
		strategy: strategy,
		now:      time.Now,
		logger:   logger,
	}
}

// Summarize produces the narrative paragraph over the full classified set.
func (s *Synthesizer) Summarize(ctx context.Context, grouped *domain.Grouped) string {
	if grouped.Empty() {
		return NoNotableHeadlines
	}

	prompt := fmt.Sprintf(narrativePrompt, taggedHeadlines(grouped))

	narrative, err := s.model.Generate(ctx, prompt)
	s.pacer.Pace(ctx)
	if err != nil {
		s.warn("summary failed", "error", err)
		return FallbackNarrative
	}

	return narrative
}

// Title produces the punny, date-prefixed post title from either the
// classified headlines or the narrative, per the configured strategy.
func (s *Synthesizer) Title(ctx context.Context, grouped *domain.Grouped, narrative string) string {
	if grouped.Empty() {
		return s.fallbackTitle()
	}

	basis := taggedHeadlines(grouped)
	if s.strategy == StrategySummary {
		basis = narrative
	}

	prompt := fmt.Sprintf(titlePrompt, s.now().Format("January 2, 2006"), basis)

	title, err := s.model.Generate(ctx, prompt)
	s.pacer.Pace(ctx)
	if err != nil || strings.TrimSpace(title) == "" {
		s.warn("title generation failed", "error", err)
		return s.fallbackTitle()
	}

	return title
}

func (s *Synthesizer) fallbackTitle() string {
	return "Your Daily Cowsay News - " + s.now().Format("January 2, 2006")
}

// taggedHeadlines lists every kept headline with category and source,
// in declaration then insertion order.
func taggedHeadlines(grouped *domain.Grouped) string {
	var sb strings.Builder
	for _, category := range domain.Categories() {
		for _, item := range grouped.Items(category) {
			fmt.Fprintf(&sb, "[%s] %s (%s)\n", category, item.Headline, item.Source)
		}
	}
	return sb.String()
}

func (s *Synthesizer) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
