package fetcher

import (
	"context"
	"event-scanner-service/model"
	"log"
)

// recentVideoLimit bounds how many of a channel's latest uploads are scanned.
const recentVideoLimit = 5

// FetchOptions selects what to scan. Exactly one targeting field is used,
// in precedence order VideoID > ChannelID > CategoryID > Keyword.
type FetchOptions struct {
	VideoID    string
	ChannelID  string
	CategoryID string
	Keyword    string

	MaxVideos       int
	MaxResults      int
	MinCommentCount int
	DaysOldMax      int
}

// FetchComments is the aggregation entry point: it resolves the target to a
// video set and collects at most MaxResults comments across it.
func (f *Fetcher) FetchComments(ctx context.Context, opts FetchOptions) []model.Comment {
	switch {
	case opts.VideoID != "":
		return f.VideoComments(ctx, opts.VideoID, opts.MaxResults)

	case opts.ChannelID != "":
		videoIDs := f.ChannelRecentVideos(ctx, opts.ChannelID, recentVideoLimit)
		return f.collectComments(ctx, videoIDs, opts.MaxResults)

	case opts.CategoryID != "":
		videoIDs := f.SearchVideosByCategory(ctx, opts.CategoryID, opts.MaxVideos, "date")
		if len(videoIDs) == 0 {
			log.Printf("[WARN] No videos found for category %s", opts.CategoryID)
			return nil
		}
		return f.collectComments(ctx, videoIDs, opts.MaxResults)

	case opts.Keyword != "":
		videoIDs := f.SearchVideosByKeyword(ctx, opts.Keyword, opts.MaxVideos, opts.MinCommentCount, opts.DaysOldMax)
		if len(videoIDs) == 0 {
			log.Printf("[WARN] No videos found for keyword '%s'", opts.Keyword)
			return nil
		}
		return f.collectComments(ctx, videoIDs, opts.MaxResults)

	default:
		log.Printf("[ERROR] One of VideoID, ChannelID, CategoryID or Keyword must be set")
		return nil
	}
}

// collectComments splits the global comment budget across the selected
// videos. Each video gets maxResults/N + 1 to cover per-video shortfall;
// accumulation stops at the budget and the result is truncated to it.
func (f *Fetcher) collectComments(ctx context.Context, videoIDs []string, maxResults int) []model.Comment {
	if len(videoIDs) == 0 {
		return nil
	}

	perVideo := maxResults/len(videoIDs) + 1

	var all []model.Comment
	for _, videoID := range videoIDs {
		all = append(all, f.VideoComments(ctx, videoID, perVideo)...)
		if len(all) >= maxResults {
			break
		}
	}

	if len(all) > maxResults {
		all = all[:maxResults]
	}
	return all
}
