package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"CowsayNews/internal/classify"
	"CowsayNews/internal/domain"
	"CowsayNews/internal/filter"
	"CowsayNews/internal/ports"
	"CowsayNews/internal/render"
	"CowsayNews/internal/summary"
)

// PipelineDeps wires all collaborators into the daily-digest pipeline.
type PipelineDeps struct {
	Source      ports.HeadlineSource
	Filter      *filter.Rules
	Classifier  *classify.Classifier
	Synthesizer *summary.Synthesizer
	Publisher   ports.PostPublisher
	Logger      *slog.Logger
}

// Pipeline implements one linear run: fetch, filter, classify, synthesize,
// render, publish. Data flows strictly forward.
type Pipeline struct {
	source      ports.HeadlineSource
	filter      *filter.Rules
	classifier  *classify.Classifier
	synthesizer *summary.Synthesizer
	publisher   ports.PostPublisher
	logger      *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:      deps.Source,
		filter:      deps.Filter,
		classifier:  deps.Classifier,
		synthesizer: deps.Synthesizer,
		publisher:   deps.Publisher,
		logger:      deps.Logger,
	}
}

// Run executes one full pass and returns the publish outcome. A fetch
// failure or rejected draft creation aborts the run; a rejected publish
// transition returns the draft result alongside the wrapped error.
func (p *Pipeline) Run(ctx context.Context, day time.Time) (domain.PublishResult, error) {
	p.info("run started", "day", day.Format("2006-01-02"))

	records, err := p.source.Fetch(ctx)
	if err != nil {
		return domain.PublishResult{}, fmt.Errorf("fetch headlines: %w", err)
	}
	p.info("headlines fetched", "count", len(records))

	candidates := p.filter.Normalize(records)
	p.info("headlines filtered", "kept", len(candidates), "dropped", len(records)-len(candidates))

	grouped := p.classifier.Group(ctx, candidates)
	p.info("headlines classified", "kept", grouped.Total())

	dailySummary := domain.DailySummary{
		Narrative: p.synthesizer.Summarize(ctx, grouped),
	}
	dailySummary.Title = p.synthesizer.Title(ctx, grouped, dailySummary.Narrative)
	p.info("summary synthesized", "title", dailySummary.Title)

	document := render.Document(grouped, dailySummary.Narrative)

	result, err := p.publisher.Publish(ctx, dailySummary.Title, document)
	if err != nil {
		return result, fmt.Errorf("publish digest: %w", err)
	}

	p.info("digest published", "url", result.URL,
		"email_status", result.EmailStatus, "email_recipients", result.EmailRecipients)
	return result, nil
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}
