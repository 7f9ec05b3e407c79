package model

import "time"

// EventRecord is a comment classified as a candidate event announcement.
// CommentID is the identity key: the persisted store holds at most one
// record per id.
type EventRecord struct {
	CommentID   string `json:"comment_id" bson:"commentId"`
	Text        string `json:"text" bson:"text"`
	Author      string `json:"author" bson:"author"`
	PublishedAt string `json:"published_at" bson:"publishedAt"`
	ExtractedAt string `json:"extracted_at" bson:"extractedAt"`
}

// CandidateVideo is derived from VideoStats during keyword search filtering.
type CandidateVideo struct {
	VideoID      string `json:"video_id"`
	CommentCount int    `json:"comment_count"`
	DaysOld      int    `json:"days_old"`
	PublishedAt  string `json:"published_at"`
}

// ScanRequest triggers one scan via NATS.
type ScanRequest struct {
	VideoID    string `json:"videoId,omitempty"`
	ChannelID  string `json:"channelId,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
	Keyword    string `json:"keyword,omitempty"`
	MaxVideos  int    `json:"maxVideos"`
	MaxResults int    `json:"maxResults"`
	Priority   string `json:"priority"` // "high", "normal", "low"
	RequestID  string `json:"requestId"`
}

// ScanResult is the outcome of one scan.
type ScanResult struct {
	Success         bool      `json:"success"`
	CommentsFetched int       `json:"commentsFetched"`
	EventsExtracted int       `json:"eventsExtracted"`
	EventsAdded     int       `json:"eventsAdded"`
	Error           string    `json:"error,omitempty"`
	RequestID       string    `json:"requestId,omitempty"`
	ProcessedAt     time.Time `json:"processedAt"`
}
