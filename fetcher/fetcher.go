package fetcher

import (
	"context"
	"encoding/json"
	"event-scanner-service/metrics"
	"event-scanner-service/model"
	"event-scanner-service/utils"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// Fetcher wraps the YouTube Data API v3. Every public method degrades to an
// empty result on failure: callers treat "empty" as "nothing available" and
// the pipeline keeps flowing. Errors never cross this boundary.
type Fetcher struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewFetcher(apiKey string) *Fetcher {
	return &Fetcher{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// apiError carries the HTTP status so callers can tell quota/auth failures
// from not-found.
type apiError struct {
	StatusCode int
	Body       string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("YouTube API HTTP %d: %s", e.StatusCode, e.Body)
}

func (f *Fetcher) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	params.Set("key", f.apiKey)
	apiURL := fmt.Sprintf("%s/%s?%s", f.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		metrics.YouTubeAPICalls.WithLabelValues(endpoint, "error").Inc()
		return err
	}
	defer resp.Body.Close()

	metrics.YouTubeAPICalls.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return &apiError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// logAPIError reports a failed call with enough context to tell an invalid
// key or exhausted quota from a missing resource.
func logAPIError(operation, target string, err error) {
	if apiErr, ok := err.(*apiError); ok {
		switch apiErr.StatusCode {
		case http.StatusForbidden:
			log.Printf("[ERROR] %s: API key invalid or quota exhausted: %s", operation, apiErr.Body)
		case http.StatusNotFound:
			log.Printf("[ERROR] %s: not found: %s", operation, target)
		default:
			log.Printf("[ERROR] %s: %v", operation, err)
		}
		return
	}
	log.Printf("[ERROR] %s: %v", operation, err)
}

// VideoComments fetches up to maxResults top-level comments for a video,
// most recent first. Pages of at most 100 are consumed while a nextPageToken
// is present and the budget is unmet. Any failure returns an empty slice.
func (f *Fetcher) VideoComments(ctx context.Context, videoID string, maxResults int) []model.Comment {
	var comments []model.Comment
	pageToken := ""

	for {
		pageSize := maxResults - len(comments)
		if pageSize > utils.MaxCommentsPerPage {
			pageSize = utils.MaxCommentsPerPage
		}

		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("videoId", videoID)
		params.Set("maxResults", strconv.Itoa(pageSize))
		params.Set("order", "time")
		params.Set("textFormat", "plainText")
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var resp model.CommentThreadResponse
		if err := f.getJSON(ctx, "commentThreads", params, &resp); err != nil {
			logAPIError("fetch comments", videoID, err)
			return nil
		}

		for _, item := range resp.Items {
			if len(comments) >= maxResults {
				break
			}
			top := item.Snippet.TopLevelComment
			comments = append(comments, model.Comment{
				CommentID:   top.ID,
				Text:        top.Snippet.TextDisplay,
				Author:      top.Snippet.AuthorDisplayName,
				PublishedAt: top.Snippet.PublishedAt,
			})
		}

		if resp.NextPageToken == "" || len(comments) >= maxResults {
			break
		}
		pageToken = resp.NextPageToken
	}

	log.Printf("[INFO] Fetched %d comments for video %s", len(comments), videoID)
	return comments
}

// ChannelRecentVideos resolves the channel's uploads playlist and lists up
// to maxResults most recent video ids from it. Failure of the channel lookup
// aborts with an empty result.
func (f *Fetcher) ChannelRecentVideos(ctx context.Context, channelID string, maxResults int) []string {
	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", channelID)

	var channelResp model.ChannelListResponse
	if err := f.getJSON(ctx, "channels", params, &channelResp); err != nil {
		logAPIError("fetch channel", channelID, err)
		return nil
	}

	if len(channelResp.Items) == 0 {
		log.Printf("[ERROR] Channel not found: %s", channelID)
		return nil
	}

	uploadsPlaylistID := channelResp.Items[0].ContentDetails.RelatedPlaylists.Uploads

	params = url.Values{}
	params.Set("part", "contentDetails")
	params.Set("playlistId", uploadsPlaylistID)
	params.Set("maxResults", strconv.Itoa(maxResults))

	var playlistResp model.PlaylistItemsResponse
	if err := f.getJSON(ctx, "playlistItems", params, &playlistResp); err != nil {
		logAPIError("fetch playlist items", uploadsPlaylistID, err)
		return nil
	}

	var videoIDs []string
	for _, item := range playlistResp.Items {
		videoIDs = append(videoIDs, item.ContentDetails.VideoID)
	}

	log.Printf("[INFO] Fetched %d videos from channel %s", len(videoIDs), channelID)
	return videoIDs
}

// VideoStatistics looks up statistics for the given video ids, batched 50
// ids per call. A failed batch discards the whole lookup.
func (f *Fetcher) VideoStatistics(ctx context.Context, videoIDs []string) map[string]model.VideoStats {
	if len(videoIDs) == 0 {
		return map[string]model.VideoStats{}
	}

	statistics := make(map[string]model.VideoStats)

	for i := 0; i < len(videoIDs); i += utils.StatsBatchSize {
		end := i + utils.StatsBatchSize
		if end > len(videoIDs) {
			end = len(videoIDs)
		}

		params := url.Values{}
		params.Set("part", "statistics,snippet")
		params.Set("id", strings.Join(videoIDs[i:end], ","))

		var resp model.VideoStatsResponse
		if err := f.getJSON(ctx, "videos", params, &resp); err != nil {
			logAPIError("fetch video statistics", "", err)
			return map[string]model.VideoStats{}
		}

		for _, item := range resp.Items {
			commentCount, _ := strconv.Atoi(item.Statistics.CommentCount)
			viewCount, _ := strconv.Atoi(item.Statistics.ViewCount)
			statistics[item.ID] = model.VideoStats{
				VideoID:      item.ID,
				CommentCount: commentCount,
				ViewCount:    viewCount,
				PublishedAt:  item.Snippet.PublishedAt,
				Title:        item.Snippet.Title,
			}
		}
	}

	return statistics
}

// SearchVideosByKeyword searches videos for a keyword and filters them by
// comment count and age. The candidate pool is 3x maxVideos to compensate
// for attrition under filtering. Survivors are sorted most-commented first,
// ties broken by most recent, then truncated to maxVideos.
func (f *Fetcher) SearchVideosByKeyword(ctx context.Context, keyword string, maxVideos, minCommentCount, daysOldMax int) []string {
	searchLimit := maxVideos * 3
	candidateIDs := f.searchVideoIDs(ctx, searchLimit, func(params url.Values) {
		params.Set("q", keyword)
		params.Set("order", "date")
	})

	if len(candidateIDs) == 0 {
		log.Printf("[WARN] No videos found for keyword '%s'", keyword)
		return nil
	}

	statistics := f.VideoStatistics(ctx, candidateIDs)

	var filtered []model.CandidateVideo
	now := time.Now().UTC()

	for _, videoID := range candidateIDs {
		stats, ok := statistics[videoID]
		if !ok {
			continue
		}

		if stats.CommentCount < minCommentCount {
			continue
		}

		publishedAt, err := time.Parse(time.RFC3339, stats.PublishedAt)
		if err != nil {
			// Unparseable publish time skips this candidate only.
			continue
		}
		daysOld := int(now.Sub(publishedAt.UTC()).Hours() / 24)
		if daysOld > daysOldMax {
			continue
		}

		filtered = append(filtered, model.CandidateVideo{
			VideoID:      videoID,
			CommentCount: stats.CommentCount,
			DaysOld:      daysOld,
			PublishedAt:  stats.PublishedAt,
		})
	}

	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].CommentCount != filtered[j].CommentCount {
			return filtered[i].CommentCount > filtered[j].CommentCount
		}
		return filtered[i].DaysOld < filtered[j].DaysOld
	})

	if len(filtered) > maxVideos {
		filtered = filtered[:maxVideos]
	}

	videoIDs := make([]string, 0, len(filtered))
	for _, v := range filtered {
		videoIDs = append(videoIDs, v.VideoID)
	}

	log.Printf("[INFO] Keyword '%s': %d videos selected (candidates: %d, after filter: %d)",
		keyword, len(videoIDs), len(candidateIDs), len(videoIDs))
	return videoIDs
}

// SearchVideosByCategory lists up to maxVideos video ids in a category. No
// statistics filtering is applied: category search is assumed pre-curated.
func (f *Fetcher) SearchVideosByCategory(ctx context.Context, categoryID string, maxVideos int, order string) []string {
	videoIDs := f.searchVideoIDs(ctx, maxVideos, func(params url.Values) {
		params.Set("videoCategoryId", categoryID)
		params.Set("order", order)
	})

	log.Printf("[INFO] Category %s (%s): %d videos found", categoryID, utils.CategoryName(categoryID), len(videoIDs))
	return videoIDs
}

// searchVideoIDs pages through search.list collecting video ids while a
// nextPageToken is present and the limit is unmet.
func (f *Fetcher) searchVideoIDs(ctx context.Context, limit int, customize func(url.Values)) []string {
	var videoIDs []string
	pageToken := ""

	for {
		pageSize := limit - len(videoIDs)
		if pageSize > utils.MaxSearchPerPage {
			pageSize = utils.MaxSearchPerPage
		}

		params := url.Values{}
		params.Set("part", "id")
		params.Set("type", "video")
		params.Set("maxResults", strconv.Itoa(pageSize))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}
		customize(params)

		var resp model.SearchListResponse
		if err := f.getJSON(ctx, "search", params, &resp); err != nil {
			logAPIError("search videos", "", err)
			return nil
		}

		for _, item := range resp.Items {
			if len(videoIDs) >= limit {
				break
			}
			if item.ID.Kind == "youtube#video" {
				videoIDs = append(videoIDs, item.ID.VideoID)
			}
		}

		if resp.NextPageToken == "" || len(videoIDs) >= limit {
			break
		}
		pageToken = resp.NextPageToken
	}

	return videoIDs
}
