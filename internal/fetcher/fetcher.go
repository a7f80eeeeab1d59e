// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetcher aggregates recent arXiv papers across several topics.
//
// Each topic is searched newest first. Consumption of a topic stops at the
// first paper older than the recency window, papers already seen under an
// earlier topic are skipped, and the union is returned newest first.
package fetcher

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/pdiddy/arxiv-digest/internal/arxiv"
	"github.com/pdiddy/arxiv-digest/internal/logging"
	"github.com/pdiddy/arxiv-digest/internal/metrics"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// defaultNumRetries is the client-level retry count for transient failures.
const defaultNumRetries = 3

// Searcher runs one arXiv query and yields its results lazily. Breaking out
// of the sequence must stop any further requests.
type Searcher interface {
	Results(ctx context.Context, s arxiv.Search) iter.Seq2[arxiv.Result, error]
}

// TopicError reports the topic whose search failed. The remaining topics of
// the call are not searched.
type TopicError struct {
	Topic string
	Err   error
}

func (e *TopicError) Error() string {
	return fmt.Sprintf("searching topic %q: %v", e.Topic, e.Err)
}

func (e *TopicError) Unwrap() error { return e.Err }

// Aggregator searches topics and merges the results. It keeps no per-call
// state, so one Aggregator may serve concurrent calls.
type Aggregator struct {
	cfg       types.FetchConfig
	searcher  Searcher
	logger    log.FieldLogger
	metrics   *metrics.Metrics
	now       func() time.Time
	userAgent string
}

// Option customizes an Aggregator.
type Option func(*Aggregator)

// WithSearcher replaces the default arXiv client.
func WithSearcher(s Searcher) Option {
	return func(a *Aggregator) { a.searcher = s }
}

// WithLogger sets the structured logger (default: discard).
func WithLogger(l log.FieldLogger) Option {
	return func(a *Aggregator) { a.logger = l }
}

// WithMetrics records search statistics in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Aggregator) { a.metrics = m }
}

// WithClock overrides the time source used to compute the cutoff.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// WithUserAgent sets the User-Agent of the default arXiv client.
func WithUserAgent(ua string) Option {
	return func(a *Aggregator) { a.userAgent = ua }
}

// New returns an Aggregator for cfg. Unset fields of cfg take the built-in
// defaults; use FetchConfig.Resolve to layer per-run overrides over loaded
// settings first. Without WithSearcher, New builds an arXiv client paced at
// cfg.Delay with page size cfg.MaxResults.
func New(cfg types.FetchConfig, opts ...Option) *Aggregator {
	a := &Aggregator{
		cfg:    cfg.WithDefaults(),
		logger: logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.searcher == nil {
		a.searcher = arxiv.NewClient(arxiv.ClientConfig{
			PageSize:   a.cfg.MaxResults,
			Delay:      a.cfg.Delay,
			NumRetries: defaultNumRetries,
			UserAgent:  a.userAgent,
		})
	}

	a.logger.WithFields(log.Fields{
		"max_results":   a.cfg.MaxResults,
		"delay_seconds": a.cfg.Delay.Seconds(),
		"hours_back":    a.cfg.HoursBack,
	}).Info("arXiv client initialized")
	return a
}

// Config returns the effective search parameters.
func (a *Aggregator) Config() types.FetchConfig { return a.cfg }

// SearchPapers searches every topic in order and returns the unique papers
// published within the recency window, newest first. Papers with equal
// timestamps keep the order in which they were found.
//
// An empty topic list returns an empty result without any request. The
// first search failure aborts the call and is returned as a *TopicError.
func (a *Aggregator) SearchPapers(ctx context.Context, topics []string) ([]types.Paper, error) {
	started := a.now()
	cutoff := started.UTC().Add(-a.cfg.Window())
	logger := a.logger.WithField("run_id", uuid.NewString())

	seen := make(map[string]struct{})
	papers := make([]types.Paper, 0)

	for _, topic := range topics {
		if err := ctx.Err(); err != nil {
			a.observeFailure()
			return nil, &TopicError{Topic: topic, Err: err}
		}
		logger.WithField("topic", topic).Info("searching arXiv")

		search := arxiv.Search{
			Query:      topic,
			MaxResults: a.cfg.MaxResults,
			SortBy:     arxiv.SortBySubmittedDate,
			SortOrder:  arxiv.Descending,
		}
		ordered := newestFirst(search)

		found := 0
		for res, err := range a.searcher.Results(ctx, search) {
			if err != nil {
				a.observeFailure()
				return nil, &TopicError{Topic: topic, Err: err}
			}

			if res.Published.Before(cutoff) {
				if !ordered {
					continue
				}
				// Results are newest first, so everything after this is older too.
				logger.WithFields(log.Fields{
					"topic":     topic,
					"published": res.Published,
				}).Debug("reached cutoff time")
				break
			}

			id := res.ShortID()
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			papers = append(papers, newPaper(id, res))
			found++
		}

		a.observeTopic(topic, found)
		logger.WithFields(log.Fields{
			"topic":               topic,
			"found":               found,
			"total_unique_so_far": len(papers),
		}).Info("topic search complete")
	}

	slices.SortStableFunc(papers, func(x, y types.Paper) int {
		return y.Published.Compare(x.Published)
	})

	a.observeSuccess(len(papers), a.now().Sub(started))
	logger.WithFields(log.Fields{
		"topics_count":          len(topics),
		"total_papers_returned": len(papers),
		"hours_back":            a.cfg.HoursBack,
	}).Info("search complete")

	return papers, nil
}

// SearchSingleTopic searches one topic with the same contract as SearchPapers.
func (a *Aggregator) SearchSingleTopic(ctx context.Context, query string) ([]types.Paper, error) {
	return a.SearchPapers(ctx, []string{query})
}

// FetchPapersForTopics builds a fresh Aggregator from settings and searches
// topics. It is the entry point for schedulers and the CLI.
func FetchPapersForTopics(ctx context.Context, settings types.Settings, topics []string, opts ...Option) ([]types.Paper, error) {
	all := append([]Option{WithUserAgent(settings.ArxivUserAgent)}, opts...)
	return New(settings.FetchConfig(), all...).SearchPapers(ctx, topics)
}

// newestFirst reports whether s yields results in descending submission
// order, which is what makes stopping at the cutoff safe.
func newestFirst(s arxiv.Search) bool {
	return s.SortBy == arxiv.SortBySubmittedDate && s.SortOrder == arxiv.Descending
}

func newPaper(id string, res arxiv.Result) types.Paper {
	authors := make([]string, len(res.Authors))
	for i, au := range res.Authors {
		authors[i] = au.String()
	}
	return types.Paper{
		ID:         id,
		Title:      res.Title,
		Authors:    authors,
		Abstract:   strings.ReplaceAll(res.Summary, "\n", " "),
		PDFURL:     res.PDFURL,
		Published:  res.Published,
		Categories: slices.Clone(res.Categories),
	}
}

func (a *Aggregator) observeTopic(topic string, found int) {
	if a.metrics == nil {
		return
	}
	a.metrics.TopicsSearched.Inc()
	a.metrics.PapersFound.WithLabelValues(topic).Add(float64(found))
}

func (a *Aggregator) observeFailure() {
	if a.metrics == nil {
		return
	}
	a.metrics.SearchErrors.Inc()
}

func (a *Aggregator) observeSuccess(returned int, elapsed time.Duration) {
	if a.metrics == nil {
		return
	}
	a.metrics.PapersReturned.Set(float64(returned))
	a.metrics.SearchDuration.Observe(elapsed.Seconds())
	a.metrics.LastSuccessTime.SetToCurrentTime()
}
