package store

import (
	"os"
	"path/filepath"
	"testing"

	"event-scanner-service/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope", "events.json"))

	events := s.Load()
	assert.Empty(t, events)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	events := New(path).Load()
	assert.Empty(t, events)
}

func TestLoadNonArrayFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"comment_id":"c1"}`), 0o644))

	events := New(path).Load()
	assert.Empty(t, events)
}

func TestSaveCreatesDirectoryAndRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "events.json")
	s := New(path)

	events := []model.EventRecord{
		{CommentID: "c1", Text: "来週オフ会を開催します", Author: "alice", PublishedAt: "2024-06-01T12:00:00Z", ExtractedAt: "2024-06-02T00:00:00.000000Z"},
		{CommentID: "c2", Text: "明日18時スタート", Author: "bob", PublishedAt: "2024-06-01T13:00:00Z", ExtractedAt: "2024-06-01T00:00:00.000000Z"},
	}

	require.NoError(t, s.Save(events))

	loaded := s.Load()
	assert.Equal(t, events, loaded)
}

func TestSaveOverwritesWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	s := New(path)

	require.NoError(t, s.Save([]model.EventRecord{{CommentID: "c1"}, {CommentID: "c2"}}))
	require.NoError(t, s.Save([]model.EventRecord{{CommentID: "c3"}}))

	loaded := s.Load()
	require.Len(t, loaded, 1)
	assert.Equal(t, "c3", loaded[0].CommentID)
}

func TestMergeDedupIdempotence(t *testing.T) {
	existing := []model.EventRecord{
		{CommentID: "c1", Text: "old text", ExtractedAt: "2024-06-01T00:00:00.000000Z"},
	}
	incoming := []model.EventRecord{
		{CommentID: "c1", Text: "new text", ExtractedAt: "2024-06-02T00:00:00.000000Z"},
	}

	merged := Merge(existing, incoming)
	require.Len(t, merged, 1)

	// Last write wins, wholesale.
	assert.Equal(t, "new text", merged[0].Text)
	assert.Equal(t, "2024-06-02T00:00:00.000000Z", merged[0].ExtractedAt)

	// Merging again changes nothing.
	again := Merge(merged, incoming)
	assert.Equal(t, merged, again)
}

func TestMergeSortOrder(t *testing.T) {
	existing := []model.EventRecord{
		{CommentID: "old", ExtractedAt: "2024-01-01T00:00:00.000000Z"},
		{CommentID: "missing"}, // no extraction time sorts last
	}
	incoming := []model.EventRecord{
		{CommentID: "newest", ExtractedAt: "2024-06-01T00:00:00.000000Z"},
		{CommentID: "mid", ExtractedAt: "2024-03-01T00:00:00.000000Z"},
	}

	merged := Merge(existing, incoming)
	require.Len(t, merged, 4)

	assert.Equal(t, "newest", merged[0].CommentID)
	assert.Equal(t, "mid", merged[1].CommentID)
	assert.Equal(t, "old", merged[2].CommentID)
	assert.Equal(t, "missing", merged[3].CommentID)
}

func TestMergeDisjoint(t *testing.T) {
	existing := []model.EventRecord{{CommentID: "c1", ExtractedAt: "2024-01-01T00:00:00.000000Z"}}
	incoming := []model.EventRecord{{CommentID: "c2", ExtractedAt: "2024-02-01T00:00:00.000000Z"}}

	merged := Merge(existing, incoming)
	assert.Len(t, merged, 2)
}
