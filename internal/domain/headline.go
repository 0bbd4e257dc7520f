package domain

// HeadlineRecord is a raw item as returned by the news source.
type HeadlineRecord struct {
	Title  string
	URL    string
	Source string
}

// Candidate is a headline that survived normalization and filtering
// and is eligible for classification.
type Candidate struct {
	Headline string
	Source   string
	URL      string
}

// DailySummary carries the two synthesized texts for one run.
type DailySummary struct {
	Narrative string
	Title     string
}

// PublishResult describes the outcome of the two-phase publish exchange.
// PostID and Revision are set as soon as the draft exists; URL and the
// email fields only after the transition to published succeeded.
type PublishResult struct {
	PostID          string
	Revision        string
	URL             string
	EmailStatus     string
	EmailRecipients int
}
