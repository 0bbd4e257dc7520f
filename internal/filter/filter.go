package filter

import (
	"strings"

	"CowsayNews/internal/config"
	"CowsayNews/internal/domain"
)

// Rules normalizes raw headlines and drops unwanted items. Titles are
// truncated at the source-name separator first; the keyword blocklist
// then applies to the truncated title only, so a keyword living purely
// in the stripped source fragment does not exclude the headline.
type Rules struct {
	separator string
	keywords  []string
	domains   []string
}

// New compiles filter configuration into a reusable rule set.
func New(cfg config.FilterConfig) *Rules {
	keywords := make([]string, 0, len(cfg.BlockedKeywords))
	for _, kw := range cfg.BlockedKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}

	return &Rules{
		separator: cfg.SourceSeparator,
		keywords:  keywords,
		domains:   cfg.BlockedDomains,
	}
}

// Normalize maps each record to at most one candidate, preserving order.
func (r *Rules) Normalize(records []domain.HeadlineRecord) []domain.Candidate {
	candidates := make([]domain.Candidate, 0, len(records))
	for _, record := range records {
		title := r.truncate(record.Title)

		if r.blockedKeyword(title) {
			continue
		}
		if r.blockedDomain(record.URL) {
			continue
		}

		candidates = append(candidates, domain.Candidate{
			Headline: title,
			Source:   record.Source,
			URL:      record.URL,
		})
	}

	return candidates
}

// truncate keeps the text before the first separator occurrence.
func (r *Rules) truncate(title string) string {
	if r.separator == "" {
		return title
	}
	if idx := strings.Index(title, r.separator); idx >= 0 {
		return title[:idx]
	}
	return title
}

func (r *Rules) blockedKeyword(title string) bool {
	lowered := strings.ToLower(title)
	for _, kw := range r.keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// blockedDomain matches entries as substrings of the full URL; the
// source does not guarantee well-formed hosts worth strict parsing.
func (r *Rules) blockedDomain(url string) bool {
	for _, dom := range r.domains {
		if dom != "" && strings.Contains(url, dom) {
			return true
		}
	}
	return false
}
