package model

// VideoStats holds the per-video statistics used during filtering.
type VideoStats struct {
	VideoID      string
	CommentCount int
	ViewCount    int
	PublishedAt  string
	Title        string
}

// YouTube videos.list response structure (part=statistics,snippet)
type VideoStatsResponse struct {
	Items []struct {
		ID         string `json:"id"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
		Snippet struct {
			Title       string `json:"title"`
			PublishedAt string `json:"publishedAt"`
			ChannelID   string `json:"channelId"`
		} `json:"snippet"`
	} `json:"items"`
}
