package model

// Comment is a single top-level comment as collected from the platform.
// Immutable once fetched.
type Comment struct {
	CommentID   string `json:"comment_id"`
	Text        string `json:"text"`
	Author      string `json:"author"`
	PublishedAt string `json:"published_at"`
}

// YouTube commentThreads.list response structures
type CommentThreadResponse struct {
	Items         []CommentThread `json:"items"`
	NextPageToken string          `json:"nextPageToken,omitempty"`
}

type CommentThread struct {
	ID      string `json:"id"`
	Snippet struct {
		TopLevelComment struct {
			ID      string `json:"id"`
			Snippet struct {
				TextDisplay       string `json:"textDisplay"`
				AuthorDisplayName string `json:"authorDisplayName"`
				PublishedAt       string `json:"publishedAt"`
			} `json:"snippet"`
		} `json:"topLevelComment"`
		TotalReplyCount int `json:"totalReplyCount"`
	} `json:"snippet"`
}
