package analyzer

import (
	"event-scanner-service/model"
	"log"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultEventKeywords is the vocabulary a comment must touch to count as an
// event announcement.
var DefaultEventKeywords = []string{
	"開催", "集合", "ライブ", "オフ会", "発売", "スタート",
	"場所", "チケット", "イベント", "会場", "参加", "予約",
	"開始", "終了", "開催日", "日程", "日時",
}

// DefaultDatePatterns match explicit dates, relative day terms, days of the
// week and hour-of-day forms.
var DefaultDatePatterns = []string{
	`\d{1,2}月\d{1,2}日`, // 1月1日, 12月25日
	`\d{1,2}/\d{1,2}`,   // 1/1, 12/25
	`\d{1,2}-\d{1,2}`,   // 1-1, 12-25
	`明日`,
	`明後日`,
	`来週`,
	`来月`,
	`今週`,
	`今月`,
	`土曜`,
	`日曜`,
	`月曜`,
	`火曜`,
	`水曜`,
	`木曜`,
	`金曜`,
	`\d{1,2}時`,      // 1時, 12時
	`\d{1,2}:\d{2}`, // 12:30
	`午前\d{1,2}時`,
	`午後\d{1,2}時`,
	`AM\d{1,2}`,
	`PM\d{1,2}`,
}

const defaultURLPattern = `https?://[^\s]+|www\.[^\s]+|\.com|\.net|\.org|\.jp`

const (
	minCommentRunes = 5
	maxCommentRunes = 500
)

// Analyzer classifies comments with fixed rule tables. The tables are
// immutable configuration set at construction; tests may substitute their
// own via NewWithRules.
type Analyzer struct {
	eventKeywords []string
	datePatterns  []*regexp.Regexp
	urlPattern    *regexp.Regexp
	now           func() time.Time
}

func New() *Analyzer {
	return NewWithRules(DefaultEventKeywords, DefaultDatePatterns)
}

func NewWithRules(eventKeywords []string, datePatterns []string) *Analyzer {
	compiled := make([]*regexp.Regexp, 0, len(datePatterns))
	for _, p := range datePatterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return &Analyzer{
		eventKeywords: eventKeywords,
		datePatterns:  compiled,
		urlPattern:    regexp.MustCompile(defaultURLPattern),
		now:           time.Now,
	}
}

// IsSpam reports whether the text contains a URL-like pattern or its trimmed
// length is outside the 5..500 rune window.
func (a *Analyzer) IsSpam(text string) bool {
	if a.urlPattern.MatchString(text) {
		return true
	}

	textLength := utf8.RuneCountInString(strings.TrimSpace(text))
	return textLength < minCommentRunes || textLength > maxCommentRunes
}

// ContainsFutureDate reports whether any date/time pattern matches.
func (a *Analyzer) ContainsFutureDate(text string) bool {
	for _, pattern := range a.datePatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// ContainsEventKeyword reports whether any vocabulary entry occurs as a
// substring of the lowercased text.
func (a *Analyzer) ContainsEventKeyword(text string) bool {
	textLower := strings.ToLower(text)
	for _, keyword := range a.eventKeywords {
		if strings.Contains(textLower, keyword) {
			return true
		}
	}
	return false
}

// ExtractEventInfo evaluates the spam, future-date and vocabulary checks in
// order, short-circuiting on the first failure. A passing comment yields an
// EventRecord with a freshly stamped extraction time.
func (a *Analyzer) ExtractEventInfo(comment model.Comment) (model.EventRecord, bool) {
	text := comment.Text

	if a.IsSpam(text) {
		return model.EventRecord{}, false
	}

	if !a.ContainsFutureDate(text) {
		return model.EventRecord{}, false
	}

	if !a.ContainsEventKeyword(text) {
		return model.EventRecord{}, false
	}

	return model.EventRecord{
		CommentID:   comment.CommentID,
		Text:        text,
		Author:      comment.Author,
		PublishedAt: comment.PublishedAt,
		ExtractedAt: a.extractionTime(),
	}, true
}

// AnalyzeComments extracts event records from a comment batch.
func (a *Analyzer) AnalyzeComments(comments []model.Comment) []model.EventRecord {
	var events []model.EventRecord

	for _, comment := range comments {
		event, ok := a.ExtractEventInfo(comment)
		if !ok {
			continue
		}
		events = append(events, event)
		log.Printf("[DEBUG] Extracted event from comment %s", event.CommentID)
	}

	log.Printf("[INFO] Extracted %d events from %d comments", len(events), len(comments))
	return events
}

// extractionTime is UTC ISO-8601 with fixed-width microseconds and a literal
// Z suffix, so lexicographic order on the strings is chronological order.
func (a *Analyzer) extractionTime() string {
	return a.now().UTC().Format("2006-01-02T15:04:05.000000") + "Z"
}
