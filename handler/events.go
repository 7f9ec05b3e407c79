package handler

import (
	"event-scanner-service/metrics"
	"event-scanner-service/model"
	"event-scanner-service/store"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

var eventStore *store.Store

// InitStore wires the handlers to the persisted event store.
func InitStore(s *store.Store) {
	eventStore = s
}

func GetEvents(c *gin.Context) {
	author := c.Query("author")
	limitStr := c.DefaultQuery("limit", "0")
	log.Printf("[INFO] GetEvents called with author=%q, limit=%s", author, limitStr)

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 0 {
		log.Printf("[WARN] Invalid limit parameter in GetEvents request: %s", limitStr)
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return
	}

	events := eventStore.Load()

	if author != "" {
		var filtered []model.EventRecord
		for _, event := range events {
			if event.Author == author {
				filtered = append(filtered, event)
			}
		}
		events = filtered
	}

	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}

	if events == nil {
		events = []model.EventRecord{}
	}

	metrics.EventsServed.WithLabelValues("/api/events").Add(float64(len(events)))
	log.Printf("[INFO] Serving %d events", len(events))
	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

func GetEvent(c *gin.Context) {
	commentID := c.Param("id")
	log.Printf("[INFO] GetEvent called with id: %s", commentID)

	for _, event := range eventStore.Load() {
		if event.CommentID == commentID {
			metrics.EventsServed.WithLabelValues("/api/events/:id").Inc()
			c.JSON(http.StatusOK, event)
			return
		}
	}

	log.Printf("[WARN] Event not found: %s", commentID)
	c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
}

func GetEventCount(c *gin.Context) {
	count := len(eventStore.Load())
	log.Printf("[INFO] GetEventCount called, count=%d", count)
	c.JSON(http.StatusOK, gin.H{"count": count})
}
