package scanner

import (
	"context"
	"event-scanner-service/analyzer"
	"event-scanner-service/config"
	"event-scanner-service/fetcher"
	"event-scanner-service/metrics"
	"event-scanner-service/model"
	"event-scanner-service/store"
	"log"
	"time"
)

// Scanner runs one full scan: load store, fetch comments, extract events,
// merge and persist. It is strictly sequential; the caller decides when and
// how often to run it.
type Scanner struct {
	fetcher  *fetcher.Fetcher
	analyzer *analyzer.Analyzer
	store    *store.Store
	archive  *store.Archive // nil when no Mongo archive is configured
}

func New(cfg *config.Config, archive *store.Archive) *Scanner {
	return &Scanner{
		fetcher:  fetcher.NewFetcher(cfg.YouTubeAPIKey),
		analyzer: analyzer.New(),
		store:    store.New(cfg.DataFile),
		archive:  archive,
	}
}

// OptionsFromConfig maps the configured targeting knobs onto fetch options.
func OptionsFromConfig(cfg *config.Config) fetcher.FetchOptions {
	return fetcher.FetchOptions{
		VideoID:         cfg.VideoID,
		ChannelID:       cfg.ChannelID,
		CategoryID:      cfg.CategoryID,
		Keyword:         cfg.SearchKeyword,
		MaxVideos:       cfg.MaxVideos,
		MaxResults:      cfg.MaxResults,
		MinCommentCount: cfg.MinCommentCount,
		DaysOldMax:      cfg.DaysOldMax,
	}
}

// Run executes one scan. Fetching nothing and extracting nothing are benign
// no-ops, not errors; only a failed save returns an error.
func (s *Scanner) Run(ctx context.Context, opts fetcher.FetchOptions) (model.ScanResult, error) {
	result := model.ScanResult{ProcessedAt: time.Now()}

	existing := s.store.Load()
	log.Printf("[INFO] Existing events: %d", len(existing))

	comments := s.fetcher.FetchComments(ctx, opts)
	result.CommentsFetched = len(comments)
	metrics.CommentsFetched.Add(float64(len(comments)))

	if len(comments) == 0 {
		log.Printf("[WARN] No comments retrieved")
		result.Success = true
		return result, nil
	}

	events := s.analyzer.AnalyzeComments(comments)
	result.EventsExtracted = len(events)
	metrics.EventsExtracted.Add(float64(len(events)))

	if len(events) == 0 {
		log.Printf("[INFO] No new events found")
		result.Success = true
		return result, nil
	}

	merged := store.Merge(existing, events)

	if len(merged) == len(existing) {
		log.Printf("[INFO] No new events to add")
		result.Success = true
		return result, nil
	}

	if err := s.store.Save(merged); err != nil {
		log.Printf("[ERROR] Failed to save events: %v", err)
		result.Error = err.Error()
		return result, err
	}

	result.EventsAdded = len(merged) - len(existing)
	log.Printf("[INFO] Added %d new events", result.EventsAdded)

	if s.archive != nil {
		if _, err := s.archive.ArchiveEvents(ctx, events); err != nil {
			log.Printf("[WARN] Archive failed, JSON store already saved: %v", err)
		}
	}

	result.Success = true
	return result, nil
}
